package geom_test

import (
	"errors"
	"math"
	"testing"

	"github.com/shicaiyuan/brep/geom"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

const tol = 1e-9

func near(a, b r3.Vec) bool {
	return r3.Norm(r3.Sub(a, b)) <= tol
}

func TestNormalOfCCWSeq(t *testing.T) {
	for _, test := range []struct {
		name   string
		points []r3.Vec
		want   r3.Vec
	}{
		{
			name:   "unit square",
			points: []r3.Vec{{}, {X: 1}, {X: 1, Y: 1}, {Y: 1}},
			want:   r3.Vec{Z: 1},
		},
		{
			name:   "clockwise square",
			points: []r3.Vec{{}, {Y: 1}, {X: 1, Y: 1}, {X: 1}},
			want:   r3.Vec{Z: -1},
		},
		{
			// Concave L shape whose first three points turn clockwise.
			name: "concave first corner",
			points: []r3.Vec{
				{X: 2, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 2},
				{X: 0, Y: 2}, {}, {X: 2},
			},
			want: r3.Vec{Z: 1},
		},
		{
			name:   "tilted triangle",
			points: []r3.Vec{{Z: 1}, {X: 1, Z: 1}, {Y: 1, Z: 2}},
			want:   r3.Unit(r3.Vec{Y: -1, Z: 1}),
		},
	} {
		got, err := geom.NormalOfCCWSeq(test.points)
		if err != nil {
			t.Errorf("%s: %v", test.name, err)
			continue
		}
		if !near(got, test.want) {
			t.Errorf("%s: got normal %v, want %v", test.name, got, test.want)
		}
	}
}

func TestNormalOfDegenerateSeq(t *testing.T) {
	for _, points := range [][]r3.Vec{
		nil,
		{{X: 1}, {X: 2}},
		{{X: 1}, {X: 1}, {X: 2}, {X: 2}},
		{{}, {X: 1}, {X: 2}},
	} {
		_, err := geom.NormalOfCCWSeq(points)
		if !errors.Is(err, geom.ErrDegenerate) {
			t.Errorf("points %v: expected ErrDegenerate, got %v", points, err)
		}
	}
}

func TestNormalOfCCWSeqScale(t *testing.T) {
	for _, side := range []float64{1e6, 1, 1e-3, 1e-5, 1e-7} {
		square := []r3.Vec{{}, {X: side}, {X: side, Y: side}, {Y: side}}
		got, err := geom.NormalOfCCWSeq(square)
		if err != nil {
			t.Errorf("side %g: %v", side, err)
			continue
		}
		if !near(got, r3.Vec{Z: 1}) {
			t.Errorf("side %g: got normal %v", side, got)
		}
		line := []r3.Vec{{}, {X: side, Y: 3 * side}, {X: 2 * side, Y: 6 * side}}
		if _, err := geom.NormalOfCCWSeq(line); !errors.Is(err, geom.ErrDegenerate) {
			t.Errorf("side %g: collinear points gave %v", side, err)
		}
	}
}

func TestPlaneTransformPair(t *testing.T) {
	planes := []geom.Plane{
		{Normal: r3.Vec{Z: 1}},
		{Normal: r3.Vec{Y: 1}, W: 2},
		{Normal: r3.Unit(r3.Vec{X: 1, Y: 1, Z: 1}), W: -3},
	}
	for _, pl := range planes {
		x, y, z := pl.Basis()
		if math.Abs(r3.Dot(x, y)) > tol || math.Abs(r3.Dot(y, z)) > tol || !near(r3.Cross(x, y), z) {
			t.Errorf("plane %v: basis not right handed orthonormal: %v %v %v", pl, x, y, z)
		}
		to2, to3 := pl.To2D(), pl.To3D()
		for _, p := range []r2.Vec{{}, {X: 1}, {X: -2.5, Y: 4}} {
			world := to3.Apply(p)
			if d := pl.SignedDistance(world); math.Abs(d) > tol {
				t.Errorf("plane %v: point %v lifted off plane by %v", pl, p, d)
			}
			back := to2.Apply(world)
			if r2.Norm(r2.Sub(back, p)) > tol {
				t.Errorf("plane %v: round trip %v -> %v", pl, p, back)
			}
		}
	}
}

func TestXYPlaneIsWorldFrame(t *testing.T) {
	pl, err := geom.NewPlane(r3.Vec{Z: 2}, 0)
	if err != nil {
		t.Fatal(err)
	}
	got := pl.To2D().Apply(r3.Vec{X: 3, Y: 4, Z: 7})
	if got != (r2.Vec{X: 3, Y: 4}) {
		t.Errorf("got %v", got)
	}
}

func TestNewPlaneDegenerate(t *testing.T) {
	_, err := geom.NewPlane(r3.Vec{}, 1)
	if !errors.Is(err, geom.ErrDegenerate) {
		t.Errorf("expected ErrDegenerate, got %v", err)
	}
	pl, err := geom.PlaneThrough(r3.Vec{Z: 4}, r3.Vec{X: 1, Z: 3})
	if err != nil || pl.W != 3 {
		t.Errorf("PlaneThrough got %v, %v", pl, err)
	}
}
