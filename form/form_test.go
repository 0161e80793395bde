package form_test

import (
	"math"
	"testing"

	"github.com/shicaiyuan/brep"
	"github.com/shicaiyuan/brep/form"
	"github.com/shicaiyuan/brep/render"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func area(t *testing.T, s *brep.Shell) (a float64) {
	t.Helper()
	model, err := render.RenderAll(render.NewShellRenderer(s))
	if err != nil {
		t.Fatal(err)
	}
	for _, tri := range model {
		a += tri.Area()
	}
	return a
}

func TestSheet(t *testing.T) {
	s, err := form.Sheet(2, 3)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Validate(); err != nil {
		t.Fatal(err)
	}
	if st := s.Stats(); st.Faces != 5 || st.CapFaces != 4 {
		t.Errorf("got %+v", st)
	}
	if a := area(t, s); math.Abs(a-6) > 1e-9 {
		t.Errorf("area %g", a)
	}
}

func TestBox(t *testing.T) {
	s, err := form.Box(r3.Vec{X: 1, Y: 2, Z: 3})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Validate(); err != nil {
		t.Fatal(err)
	}
	if st := s.Stats(); st.Faces != 6 || st.CapFaces != 0 || st.Edges != 12 {
		t.Errorf("got %+v", st)
	}
	if a := area(t, s); math.Abs(a-22) > 1e-9 {
		t.Errorf("area %g, want 22", a)
	}
	b := s.Bounds()
	if b.Min != (r3.Vec{X: -0.5, Y: -1, Z: -1.5}) || b.Max != (r3.Vec{X: 0.5, Y: 1, Z: 1.5}) {
		t.Errorf("bounds %+v", b)
	}
}

func TestPrismWithHole(t *testing.T) {
	outer := []r2.Vec{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}}
	// Given counter-clockwise; the hole is rewound.
	hole := []r2.Vec{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 2, Y: 2}, {X: 1, Y: 2}}
	s, err := form.Prism(outer, [][]r2.Vec{hole}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Validate(); err != nil {
		t.Fatal(err)
	}
	st := s.Stats()
	if st.Faces != 10 || st.CapFaces != 0 {
		t.Errorf("got %+v", st)
	}
	// Two caps of 15, outer walls 4*4 and hole walls 4*1.
	if a := area(t, s); math.Abs(a-(2*15+16+4)) > 1e-9 {
		t.Errorf("area %g", a)
	}
	// Euler-Poincare: V - E + F - H = 2 - 2G with two hole loops and genus 1.
	if v, e, f, h := 16, st.Edges, st.Faces, st.Loops-st.Faces; v-e+f-h != 0 {
		t.Errorf("V-E+F-H = %d", v-e+f-h)
	}
}

func TestSector(t *testing.T) {
	const r = 2.0
	for _, angle := range []float64{math.Pi / 2, math.Pi, 1.25 * math.Pi} {
		s, err := form.Sector(r, angle)
		if err != nil {
			t.Fatal(err)
		}
		if err := s.Validate(); err != nil {
			t.Fatal(err)
		}
		if st := s.Stats(); st.CapFaces != 3 {
			t.Errorf("angle %g: got %+v", angle, st)
		}
		want := angle * r * r / 2
		if a := area(t, s); math.Abs(a-want)/want > 0.08 {
			t.Errorf("angle %g: area %g, want about %g", angle, a, want)
		}
	}
}

func TestBadArguments(t *testing.T) {
	if _, err := form.Sheet(0, 1); err == nil {
		t.Error("zero width sheet")
	}
	if _, err := form.Box(r3.Vec{X: 1, Y: -1, Z: 1}); err == nil {
		t.Error("negative box")
	}
	if _, err := form.Prism([]r2.Vec{{}, {X: 1}}, nil, 1); err == nil {
		t.Error("two point prism")
	}
	if _, err := form.Sector(1, 2*math.Pi); err == nil {
		t.Error("full turn sector")
	}
}
