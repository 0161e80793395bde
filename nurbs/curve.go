package nurbs

import (
	"fmt"
	"math"

	"github.com/shicaiyuan/brep/geom"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

var _ geom.Curve = (*Curve)(nil)

// Curve is a non-uniform rational B-spline curve.
type Curve struct {
	degree  int
	knots   []float64
	control []hvec
}

// NewCurve returns a NURBS curve. A nil weights slice gives a
// non-rational curve.
func NewCurve(degree int, knots []float64, control []r3.Vec, weights []float64) (*Curve, error) {
	if err := checkKnots(degree, len(control), knots); err != nil {
		return nil, err
	}
	if weights != nil && len(weights) != len(control) {
		return nil, fmt.Errorf("%d weights for %d control points", len(weights), len(control))
	}
	c := &Curve{
		degree:  degree,
		knots:   append([]float64(nil), knots...),
		control: make([]hvec, len(control)),
	}
	for i, p := range control {
		w := 1.0
		if weights != nil {
			w = weights[i]
			if w <= 0 {
				return nil, fmt.Errorf("non-positive weight %g at control point %d", w, i)
			}
		}
		c.control[i] = homogeneous(p, w)
	}
	return c, nil
}

// Line returns the degree 1 curve from a to b over the domain [0,1].
func Line(a, b r3.Vec) *Curve {
	return &Curve{
		degree:  1,
		knots:   []float64{0, 0, 1, 1},
		control: []hvec{homogeneous(a, 1), homogeneous(b, 1)},
	}
}

// Degree returns the polynomial degree of the curve.
func (c *Curve) Degree() int { return c.degree }

// Knots returns a copy of the knot vector.
func (c *Curve) Knots() []float64 { return append([]float64(nil), c.knots...) }

// ControlPoints returns the euclidean control points and their weights.
func (c *Curve) ControlPoints() (points []r3.Vec, weights []float64) {
	points = make([]r3.Vec, len(c.control))
	weights = make([]float64, len(c.control))
	for i, h := range c.control {
		points[i] = h.point()
		weights[i] = h.w
	}
	return points, weights
}

// Domain returns the parameter range of the curve.
func (c *Curve) Domain() (u0, u1 float64) {
	return c.knots[c.degree], c.knots[len(c.knots)-c.degree-1]
}

// Point evaluates the curve at u. Parameters outside the domain are clamped.
func (c *Curve) Point(u float64) r3.Vec {
	u0, u1 := c.Domain()
	if u1 <= u0 {
		return c.control[0].point()
	}
	u = math.Max(u0, math.Min(u, u1))
	n := len(c.control) - 1
	span := findSpan(n, c.degree, u, c.knots)
	N := basisFuns(span, u, c.degree, c.knots)
	var sum hvec
	for i := 0; i <= c.degree; i++ {
		h := c.control[span-c.degree+i]
		sum.v = r3.Add(sum.v, r3.Scale(N[i], h.v))
		sum.w += N[i] * h.w
	}
	return sum.point()
}

// Start returns the point at the beginning of the domain.
func (c *Curve) Start() r3.Vec {
	u0, _ := c.Domain()
	return c.Point(u0)
}

// End returns the point at the end of the domain.
func (c *Curve) End() r3.Vec {
	_, u1 := c.Domain()
	return c.Point(u1)
}

// Param returns the parameter of the curve point closest to p. The curve
// is sampled to bracket the closest point which is then refined by golden
// section search.
func (c *Curve) Param(p r3.Vec) float64 {
	u0, u1 := c.Domain()
	if u1 <= u0 {
		return u0
	}
	dist2 := func(u float64) float64 { return r3.Norm2(r3.Sub(c.Point(u), p)) }
	samples := 8 * len(c.control)
	if samples < 32 {
		samples = 32
	}
	us := floats.Span(make([]float64, samples), u0, u1)
	best := 0
	bestDist := math.Inf(1)
	for i, u := range us {
		if d := dist2(u); d < bestDist {
			best, bestDist = i, d
		}
	}
	lo := us[max(best-1, 0)]
	hi := us[min(best+1, samples-1)]
	const invPhi = 0.6180339887498949
	a, b := lo, hi
	x1 := b - invPhi*(b-a)
	x2 := a + invPhi*(b-a)
	f1, f2 := dist2(x1), dist2(x2)
	for i := 0; i < 100 && b-a > 1e-15*(u1-u0); i++ {
		if f1 < f2 {
			b, x2, f2 = x2, x1, f1
			x1 = b - invPhi*(b-a)
			f1 = dist2(x1)
		} else {
			a, x1, f1 = x1, x2, f2
			x2 = a + invPhi*(b-a)
			f2 = dist2(x2)
		}
	}
	u := (a + b) / 2
	// Endpoints are not reached by the open bracket refinement.
	for _, end := range [2]float64{lo, hi} {
		if dist2(end) < dist2(u) {
			u = end
		}
	}
	return u
}

// Split divides the curve at u. The returned curves keep the parametrization
// of the original curve: the first covers [u0,u] and the second [u,u1].
// Splitting at or beyond a domain end yields a single point curve on that side.
func (c *Curve) Split(u float64) (geom.Curve, geom.Curve) {
	a, b := c.SplitAt(u)
	return a, b
}

// SplitAt is Split returning concrete curves.
func (c *Curve) SplitAt(u float64) (*Curve, *Curve) {
	u0, u1 := c.Domain()
	switch {
	case u <= u0:
		return c.pointCurve(u0, c.Start()), c.clone()
	case u >= u1:
		return c.clone(), c.pointCurve(u1, c.End())
	}
	knots, ctrl := c.knots, c.control
	for s := multiplicity(u, knots); s < c.degree+1; s++ {
		knots, ctrl = insertKnot(c.degree, u, knots, ctrl)
	}
	j := 0
	for knots[j] != u {
		j++
	}
	left := &Curve{
		degree:  c.degree,
		knots:   append([]float64(nil), knots[:j+c.degree+1]...),
		control: append([]hvec(nil), ctrl[:j]...),
	}
	right := &Curve{
		degree:  c.degree,
		knots:   append([]float64(nil), knots[j:]...),
		control: append([]hvec(nil), ctrl[j:]...),
	}
	return left, right
}

// Reverse returns the curve traversed in the opposite direction over the
// same domain.
func (c *Curve) Reverse() *Curve {
	u0, u1 := c.Domain()
	r := &Curve{
		degree:  c.degree,
		knots:   make([]float64, len(c.knots)),
		control: make([]hvec, len(c.control)),
	}
	for i, k := range c.knots {
		r.knots[len(c.knots)-1-i] = u0 + u1 - k
	}
	for i, h := range c.control {
		r.control[len(c.control)-1-i] = h
	}
	return r
}

func (c *Curve) clone() *Curve {
	return &Curve{
		degree:  c.degree,
		knots:   append([]float64(nil), c.knots...),
		control: append([]hvec(nil), c.control...),
	}
}

func (c *Curve) pointCurve(u float64, p r3.Vec) *Curve {
	ctrl := make([]hvec, c.degree+1)
	knots := make([]float64, 2*(c.degree+1))
	for i := range ctrl {
		ctrl[i] = homogeneous(p, 1)
	}
	for i := range knots {
		knots[i] = u
	}
	return &Curve{degree: c.degree, knots: knots, control: ctrl}
}
