package brep

import "fmt"

// EdgeIndex resolves vertex pairs to half-edges so that every pair of
// vertices is joined by at most one edge. It is not safe for concurrent use.
type EdgeIndex struct {
	shell *Shell
	edges map[[2]*Vertex]HalfEdgeID
}

// NewEdgeIndex returns a registry allocating its edges in s.
func NewEdgeIndex(s *Shell) *EdgeIndex {
	return &EdgeIndex{
		shell: s,
		edges: make(map[[2]*Vertex]HalfEdgeID),
	}
}

// Resolve returns the half-edge running from a to b. The first request for
// either direction creates the edge and its twin; curve, inverted and tag are
// only used then. Later requests return the recorded half-edge.
func (x *EdgeIndex) Resolve(a, b *Vertex, curve CurveFunc, inverted bool, tag any) (HalfEdgeID, error) {
	if a == nil || b == nil {
		return NoHalfEdge, fmt.Errorf("nil vertex: %w", ErrDegenerateEdge)
	}
	if a == b {
		return NoHalfEdge, fmt.Errorf("vertex %v to itself: %w", a.Point, ErrDegenerateEdge)
	}
	h, fwd := x.edges[[2]*Vertex{a, b}]
	t, rev := x.edges[[2]*Vertex{b, a}]
	switch {
	case fwd && rev:
		if x.shell.halfEdges[h].twin != t {
			return NoHalfEdge, fmt.Errorf("%v -> %v: recorded half-edges %d and %d are not twins: %w",
				a.Point, b.Point, h, t, ErrRegistryConsistency)
		}
		return h, nil
	case fwd || rev:
		return NoHalfEdge, fmt.Errorf("%v -> %v: one direction recorded without its twin: %w",
			a.Point, b.Point, ErrRegistryConsistency)
	}
	h = x.shell.newEdge(a, b, curve, inverted, tag)
	x.edges[[2]*Vertex{a, b}] = h
	x.edges[[2]*Vertex{b, a}] = x.shell.halfEdges[h].twin
	return h, nil
}

// Lookup returns the half-edge from a to b if it was resolved before.
func (x *EdgeIndex) Lookup(a, b *Vertex) (HalfEdgeID, bool) {
	h, ok := x.edges[[2]*Vertex{a, b}]
	return h, ok
}

// Len returns the number of edges in the registry.
func (x *EdgeIndex) Len() int { return len(x.edges) / 2 }
