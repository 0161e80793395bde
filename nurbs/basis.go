package nurbs

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

var errBadKnots = errors.New("bad knot vector")

// hvec is a control point in homogeneous coordinates.
type hvec struct {
	v r3.Vec // weighted position
	w float64
}

func homogeneous(p r3.Vec, w float64) hvec {
	return hvec{v: r3.Scale(w, p), w: w}
}

func (h hvec) point() r3.Vec {
	return r3.Scale(1/h.w, h.v)
}

func lerpH(a, b hvec, t float64) hvec {
	return hvec{
		v: r3.Add(r3.Scale(1-t, a.v), r3.Scale(t, b.v)),
		w: (1-t)*a.w + t*b.w,
	}
}

// checkKnots validates a clamped or unclamped knot vector for ncontrol
// control points of the given degree.
func checkKnots(degree, ncontrol int, knots []float64) error {
	switch {
	case degree < 1:
		return fmt.Errorf("degree %d: %w", degree, errBadKnots)
	case ncontrol < degree+1:
		return fmt.Errorf("%d control points for degree %d: %w", ncontrol, degree, errBadKnots)
	case len(knots) != ncontrol+degree+1:
		return fmt.Errorf("want %d knots, got %d: %w", ncontrol+degree+1, len(knots), errBadKnots)
	case floats.HasNaN(knots):
		return fmt.Errorf("NaN knot: %w", errBadKnots)
	case !sort.Float64sAreSorted(knots):
		return fmt.Errorf("knots not non-decreasing: %w", errBadKnots)
	}
	return nil
}

// findSpan returns the knot span index i such that knots[i] <= u < knots[i+1],
// with n the index of the last control point.
func findSpan(n, p int, u float64, knots []float64) int {
	if u >= knots[n+1] {
		return n
	}
	if u <= knots[p] {
		return p
	}
	low, high := p, n+1
	mid := (low + high) / 2
	for u < knots[mid] || u >= knots[mid+1] {
		if u < knots[mid] {
			high = mid
		} else {
			low = mid
		}
		mid = (low + high) / 2
	}
	return mid
}

// basisFuns returns the p+1 non-vanishing basis functions at u in span.
func basisFuns(span int, u float64, p int, knots []float64) []float64 {
	N := make([]float64, p+1)
	left := make([]float64, p+1)
	right := make([]float64, p+1)
	N[0] = 1
	for j := 1; j <= p; j++ {
		left[j] = u - knots[span+1-j]
		right[j] = knots[span+j] - u
		saved := 0.0
		for r := 0; r < j; r++ {
			temp := N[r] / (right[r+1] + left[j-r])
			N[r] = saved + right[r+1]*temp
			saved = left[j-r] * temp
		}
		N[j] = saved
	}
	return N
}

func multiplicity(u float64, knots []float64) (s int) {
	for _, k := range knots {
		if k == u {
			s++
		}
	}
	return s
}

// insertKnot inserts u once into the knot vector and returns the new
// knots and homogeneous control points. The curve shape is unchanged.
func insertKnot(p int, u float64, knots []float64, ctrl []hvec) ([]float64, []hvec) {
	n := len(ctrl) - 1
	k := findSpan(n, p, u, knots)
	q := make([]hvec, n+2)
	for i := 0; i <= k-p; i++ {
		q[i] = ctrl[i]
	}
	for i := k - p + 1; i <= k; i++ {
		a := (u - knots[i]) / (knots[i+p] - knots[i])
		q[i] = lerpH(ctrl[i-1], ctrl[i], a)
	}
	for i := k + 1; i <= n+1; i++ {
		q[i] = ctrl[i-1]
	}
	nk := make([]float64, 0, len(knots)+1)
	nk = append(nk, knots[:k+1]...)
	nk = append(nk, u)
	nk = append(nk, knots[k+1:]...)
	return nk, q
}
