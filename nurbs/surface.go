package nurbs

import (
	"fmt"
	"math"

	"github.com/shicaiyuan/brep/geom"
	"gonum.org/v1/gonum/spatial/r3"
)

var _ geom.Surface = (*Surface)(nil)

// Surface is a tensor product non-uniform rational B-spline surface.
// Control points are indexed [u][v].
type Surface struct {
	degreeU, degreeV int
	knotsU, knotsV   []float64
	control          [][]hvec
}

// NewSurface returns a NURBS surface. A nil weights grid gives a
// non-rational surface.
func NewSurface(degreeU, degreeV int, knotsU, knotsV []float64, control [][]r3.Vec, weights [][]float64) (*Surface, error) {
	if len(control) == 0 {
		return nil, fmt.Errorf("empty control grid: %w", errBadKnots)
	}
	if err := checkKnots(degreeU, len(control), knotsU); err != nil {
		return nil, fmt.Errorf("u direction: %w", err)
	}
	if err := checkKnots(degreeV, len(control[0]), knotsV); err != nil {
		return nil, fmt.Errorf("v direction: %w", err)
	}
	s := &Surface{
		degreeU: degreeU,
		degreeV: degreeV,
		knotsU:  append([]float64(nil), knotsU...),
		knotsV:  append([]float64(nil), knotsV...),
		control: make([][]hvec, len(control)),
	}
	for i, row := range control {
		if len(row) != len(control[0]) {
			return nil, fmt.Errorf("ragged control grid at row %d", i)
		}
		s.control[i] = make([]hvec, len(row))
		for j, p := range row {
			w := 1.0
			if weights != nil {
				w = weights[i][j]
			}
			if w <= 0 {
				return nil, fmt.Errorf("non-positive weight %g at control point (%d,%d)", w, i, j)
			}
			s.control[i][j] = homogeneous(p, w)
		}
	}
	return s, nil
}

// Bilinear returns the degree (1,1) patch with clamped knots [0,0,1,1] in
// both directions and unit weights. Corner pij is the surface point at
// (u,v) = (i,j).
func Bilinear(p00, p01, p10, p11 r3.Vec) *Surface {
	return &Surface{
		degreeU: 1,
		degreeV: 1,
		knotsU:  []float64{0, 0, 1, 1},
		knotsV:  []float64{0, 0, 1, 1},
		control: [][]hvec{
			{homogeneous(p00, 1), homogeneous(p01, 1)},
			{homogeneous(p10, 1), homogeneous(p11, 1)},
		},
	}
}

// Degree returns the degrees in u and v.
func (s *Surface) Degree() (u, v int) { return s.degreeU, s.degreeV }

// Knots returns copies of the knot vectors.
func (s *Surface) Knots() (u, v []float64) {
	return append([]float64(nil), s.knotsU...), append([]float64(nil), s.knotsV...)
}

// ControlPoints returns the euclidean control grid.
func (s *Surface) ControlPoints() [][]r3.Vec {
	grid := make([][]r3.Vec, len(s.control))
	for i, row := range s.control {
		grid[i] = make([]r3.Vec, len(row))
		for j, h := range row {
			grid[i][j] = h.point()
		}
	}
	return grid
}

// Domain returns the parameter rectangle of the surface.
func (s *Surface) Domain() (u0, u1, v0, v1 float64) {
	return s.knotsU[s.degreeU], s.knotsU[len(s.knotsU)-s.degreeU-1],
		s.knotsV[s.degreeV], s.knotsV[len(s.knotsV)-s.degreeV-1]
}

// Point evaluates the surface at (u,v). Parameters are clamped to the domain.
func (s *Surface) Point(u, v float64) r3.Vec {
	u0, u1, v0, v1 := s.Domain()
	u = math.Max(u0, math.Min(u, u1))
	v = math.Max(v0, math.Min(v, v1))
	spanU := findSpan(len(s.control)-1, s.degreeU, u, s.knotsU)
	spanV := findSpan(len(s.control[0])-1, s.degreeV, v, s.knotsV)
	Nu := basisFuns(spanU, u, s.degreeU, s.knotsU)
	Nv := basisFuns(spanV, v, s.degreeV, s.knotsV)
	var sum hvec
	for i := 0; i <= s.degreeU; i++ {
		row := s.control[spanU-s.degreeU+i]
		for j := 0; j <= s.degreeV; j++ {
			h := row[spanV-s.degreeV+j]
			k := Nu[i] * Nv[j]
			sum.v = r3.Add(sum.v, r3.Scale(k, h.v))
			sum.w += k * h.w
		}
	}
	return sum.point()
}

// Normal returns the unit normal at (u,v) computed from the cross product
// of the partial derivatives du x dv, estimated by finite differences.
// It returns the zero vector where the surface is degenerate.
func (s *Surface) Normal(u, v float64) r3.Vec {
	u0, u1, v0, v1 := s.Domain()
	hu := 1e-6 * (u1 - u0)
	hv := 1e-6 * (v1 - v0)
	ua, ub := math.Max(u0, u-hu), math.Min(u1, u+hu)
	va, vb := math.Max(v0, v-hv), math.Min(v1, v+hv)
	du := r3.Sub(s.Point(ub, v), s.Point(ua, v))
	dv := r3.Sub(s.Point(u, vb), s.Point(u, va))
	n := r3.Cross(du, dv)
	if r3.Norm(n) == 0 {
		return r3.Vec{}
	}
	return r3.Unit(n)
}
