package d3

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestBasisRoundTrip(t *testing.T) {
	const tol = 1e-12
	s := math.Sqrt2 / 2
	x := r3.Vec{X: s, Y: s}
	y := r3.Vec{X: -s, Y: s}
	z := r3.Vec{Z: 1}
	origin := r3.Vec{X: 1, Y: -2, Z: 3}
	to := FromBasis(x, y, z, origin)
	from := ToBasis(x, y, z, origin)
	for _, p := range []r3.Vec{{}, {X: 1}, {X: 4, Y: 5, Z: -6}, origin} {
		if got := from.Transform(to.Transform(p)); !EqualWithin(got, p, tol) {
			t.Errorf("world round trip of %v got %v", p, got)
		}
		if got := to.Transform(from.Transform(p)); !EqualWithin(got, p, tol) {
			t.Errorf("frame round trip of %v got %v", p, got)
		}
	}
	if got := to.Transform(origin); !EqualWithin(got, r3.Vec{}, tol) {
		t.Errorf("origin should map to zero, got %v", got)
	}
	if got := to.Transform(r3.Add(origin, x)); !EqualWithin(got, r3.Vec{X: 1}, tol) {
		t.Errorf("x axis should map to unit X, got %v", got)
	}
	if got := from.Transform(r3.Vec{Y: 2}); !EqualWithin(got, r3.Add(origin, r3.Scale(2, y)), tol) {
		t.Errorf("frame Y should map along y axis, got %v", got)
	}
}

func TestMulComposes(t *testing.T) {
	a := Translation(r3.Vec{X: 1})
	b := Translation(r3.Vec{Y: 2, Z: -1})
	if got := a.Mul(b).Transform(r3.Vec{X: 1, Y: 1, Z: 1}); got != (r3.Vec{X: 2, Y: 3, Z: 0}) {
		t.Errorf("composed translation got %v", got)
	}
	if a.Mul(Transform{}) != a || (Transform{}).Mul(b) != b {
		t.Error("identity should leave the other operand unchanged")
	}
	// Rotation by a quarter turn about Z applied after a translation.
	rot := FromBasis(r3.Vec{Y: 1}, r3.Vec{X: -1}, r3.Vec{Z: 1}, r3.Vec{})
	if got := rot.Mul(a).Transform(r3.Vec{}); !EqualWithin(got, r3.Vec{Y: -1}, 1e-15) {
		t.Errorf("rotate after translate got %v", got)
	}
}
