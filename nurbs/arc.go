package nurbs

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Arc returns the circular arc of the given radius about center in the plane
// spanned by the orthonormal axes x and y, running counter-clockwise from
// angle start to angle end. The sweep must be in (0, 2π]. The arc is made of
// rational quadratic pieces no wider than a quarter turn.
func Arc(center, x, y r3.Vec, radius, start, end float64) (*Curve, error) {
	sweep := end - start
	if !(sweep > 0 && sweep <= 2*math.Pi+1e-12) || !(radius > 0) {
		return nil, fmt.Errorf("arc of radius %g sweeping %g", radius, sweep)
	}
	n := int(math.Ceil(sweep/(math.Pi/2) - 1e-9))
	dt := sweep / float64(n)
	w1 := math.Cos(dt / 2)
	at := func(theta, r float64) r3.Vec {
		s, c := math.Sincos(theta)
		return r3.Add(center, r3.Add(r3.Scale(r*c, x), r3.Scale(r*s, y)))
	}
	control := make([]r3.Vec, 0, 2*n+1)
	weights := make([]float64, 0, 2*n+1)
	knots := make([]float64, 0, 2*n+4)
	knots = append(knots, 0, 0, 0)
	for i := 0; i < n; i++ {
		theta := start + float64(i)*dt
		control = append(control, at(theta, radius), at(theta+dt/2, radius/w1))
		weights = append(weights, 1, w1)
		if i > 0 {
			u := float64(i) / float64(n)
			knots = append(knots, u, u)
		}
	}
	control = append(control, at(end, radius))
	weights = append(weights, 1)
	knots = append(knots, 1, 1, 1)
	return NewCurve(2, knots, control, weights)
}
