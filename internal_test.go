package brep

import (
	"errors"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestRegistryConsistency(t *testing.T) {
	s := &Shell{}
	x := NewEdgeIndex(s)
	a, b, c := NewVertex(r3.Vec{}), NewVertex(r3.Vec{X: 1}), NewVertex(r3.Vec{Y: 1})
	ab, err := x.Resolve(a, b, nil, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	bc, err := x.Resolve(b, c, nil, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	if x.Len() != 2 {
		t.Errorf("want 2 edges, got %d", x.Len())
	}
	if h, ok := x.Lookup(b, a); !ok || h != s.halfEdges[ab].twin {
		t.Errorf("lookup of reverse direction got %d %v", h, ok)
	}

	// A reverse direction recorded with a half-edge that is not the twin.
	x.edges[[2]*Vertex{b, a}] = bc
	if _, err := x.Resolve(a, b, nil, false, nil); !errors.Is(err, ErrRegistryConsistency) {
		t.Errorf("mismatched twin got %v", err)
	}
	delete(x.edges, [2]*Vertex{b, a})
	if _, err := x.Resolve(b, a, nil, false, nil); !errors.Is(err, ErrRegistryConsistency) {
		t.Errorf("missing direction got %v", err)
	}
	if _, err := x.Resolve(a, nil, nil, false, nil); !errors.Is(err, ErrDegenerateEdge) {
		t.Errorf("nil vertex got %v", err)
	}
}

func TestBuildRecoversPanic(t *testing.T) {
	b := NewBuilder()
	v0, v1, v2 := b.Vertex(0, 0, 0), b.Vertex(1, 0, 0), b.Vertex(0, 1, 0)
	b.Face(nil).Loop(v0, v1, v2)
	b.shell.halfEdges[0].twin = 99
	s, err := b.Build()
	if s != nil {
		t.Error("shell returned from failed build")
	}
	stack, ok := IsBuildPanic(err)
	if !ok {
		t.Fatalf("got %v", err)
	}
	if !strings.Contains(stack, "Build") {
		t.Errorf("stack does not show Build:\n%s", stack)
	}
	if errors.Unwrap(err) == nil {
		t.Error("runtime error not unwrapped")
	}
}

func TestLinkIdempotent(t *testing.T) {
	b := NewBuilder()
	b.Face(nil).Loop(b.Vertex(0, 0, 0), b.Vertex(1, 0, 0), b.Vertex(1, 1, 0), b.Vertex(0, 1, 0))
	s, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	l := s.faces[0].outer
	before := append([]HalfEdge(nil), s.halfEdges...)
	s.link(l)
	s.link(l)
	if n := len(s.loops[l].halfEdges); n != 4 {
		t.Fatalf("loop grew to %d", n)
	}
	for h, he := range before {
		if s.halfEdges[h] != he {
			t.Errorf("half-edge %d changed after relinking", h)
		}
	}
}
