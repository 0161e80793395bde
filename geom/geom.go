// Package geom holds the geometric collaborators of the B-rep kernel:
// planes with their 2D/3D transform pair and the curve and surface
// contracts that topology refers to.
package geom

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// Tolerance is the length below which two points are considered coincident.
	Tolerance = 1e-9
	epsilon   = 1e-12
)

// ErrDegenerate is returned when geometry cannot be derived from
// coincident or collinear input.
var ErrDegenerate = errors.New("degenerate geometry")

// Curve is a parametric 3D curve used to carry edges.
type Curve interface {
	// Point evaluates the curve at parameter u.
	Point(u float64) r3.Vec
	// Domain returns the parameter range of the curve.
	Domain() (u0, u1 float64)
	// Param returns the parameter of the curve point closest to p.
	Param(p r3.Vec) float64
	// Split divides the curve at u. The first curve covers [u0,u] and
	// the second [u,u1].
	Split(u float64) (Curve, Curve)
}

// Surface is a parametric surface used to carry faces.
type Surface interface {
	// Point evaluates the surface at (u,v).
	Point(u, v float64) r3.Vec
	// Normal returns the unit surface normal at (u,v).
	Normal(u, v float64) r3.Vec
}

// NormalOfCCWSeq returns the unit normal of a closed polygon whose points
// run counter-clockwise around it. The normal is computed from the
// polygon's vector area so concave polygons are handled. It returns
// ErrDegenerate when fewer than three distinct points are given or the
// points are collinear.
func NormalOfCCWSeq(points []r3.Vec) (r3.Vec, error) {
	if CountDistinct(points, Tolerance) < 3 {
		return r3.Vec{}, ErrDegenerate
	}
	// Accumulate relative to the first point and compare against the
	// squared extent so the collinearity test does not depend on scale.
	o := points[0]
	var n r3.Vec
	var extent2 float64
	for i := range points {
		a := r3.Sub(points[i], o)
		b := r3.Sub(points[(i+1)%len(points)], o)
		n = r3.Add(n, r3.Cross(a, b))
		extent2 = math.Max(extent2, r3.Norm2(a))
	}
	length := r3.Norm(n)
	if length <= epsilon*extent2 {
		return r3.Vec{}, ErrDegenerate
	}
	return r3.Scale(1/length, n), nil
}

// CountDistinct counts points that are more than tol apart from every
// point preceding them in the slice.
func CountDistinct(points []r3.Vec, tol float64) int {
	count := 0
	tol2 := tol * tol
outer:
	for i := range points {
		for j := 0; j < i; j++ {
			if r3.Norm2(r3.Sub(points[i], points[j])) <= tol2 {
				continue outer
			}
		}
		count++
	}
	return count
}

func isFinite(v r3.Vec) bool {
	return !math.IsNaN(v.X+v.Y+v.Z) && !math.IsInf(v.X+v.Y+v.Z, 0)
}
