// Package brep assembles boundary representation shells from face, loop and
// edge declarations. Topology lives in arenas owned by a Shell and refers to
// itself through integer handles, so twins and back references never form
// pointer cycles.
package brep

import (
	"fmt"

	"github.com/shicaiyuan/brep/geom"
	"github.com/shicaiyuan/brep/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Handles into the arenas of a Shell.
type (
	HalfEdgeID int
	EdgeID     int
	LoopID     int
	FaceID     int
)

// Sentinel handles for unset references.
const (
	NoHalfEdge HalfEdgeID = -1
	NoEdge     EdgeID     = -1
	NoLoop     LoopID     = -1
	NoFace     FaceID     = -1
)

// samplesPerCurve is the number of segments a curved edge is divided into
// when a loop is tessellated.
const samplesPerCurve = 8

// Vertex is a point of the shell. Edges are identified by the pointer
// identity of their vertices, not by coordinates.
type Vertex struct {
	Point r3.Vec
}

// NewVertex returns a new vertex at p.
func NewVertex(p r3.Vec) *Vertex {
	return &Vertex{Point: p}
}

// CurveFunc computes the curve carrying an edge. It is called at most once,
// the first time the curve is requested.
type CurveFunc func() (geom.Curve, error)

// HalfEdge is one directed side of an edge.
type HalfEdge struct {
	start, end *Vertex
	twin       HalfEdgeID
	edge       EdgeID
	loop       LoopID
	next, prev HalfEdgeID
	inverted   bool
}

func (h HalfEdge) Start() *Vertex   { return h.start }
func (h HalfEdge) End() *Vertex     { return h.end }
func (h HalfEdge) Twin() HalfEdgeID { return h.twin }
func (h HalfEdge) Edge() EdgeID     { return h.edge }
func (h HalfEdge) Loop() LoopID     { return h.loop }
func (h HalfEdge) Next() HalfEdgeID { return h.next }
func (h HalfEdge) Prev() HalfEdgeID { return h.prev }

// Inverted reports whether the carrier curve runs from End to Start.
func (h HalfEdge) Inverted() bool { return h.inverted }

// Edge is the undirected edge shared by a pair of twin half-edges.
type Edge struct {
	halves    [2]HalfEdgeID
	curveFn   CurveFunc
	curve     geom.Curve
	curveErr  error
	evaluated bool
	tag       any
}

// HalfEdges returns the twin pair. The first was created for the direction
// in which the edge was first declared.
func (e Edge) HalfEdges() (HalfEdgeID, HalfEdgeID) { return e.halves[0], e.halves[1] }

// Tag returns the client metadata attached when the edge was created.
func (e Edge) Tag() any { return e.tag }

// Loop is a cyclic sequence of half-edges bounding a face.
type Loop struct {
	halfEdges []HalfEdgeID
	face      FaceID
	linked    bool
}

// HalfEdges returns the half-edges of the loop in order.
func (l Loop) HalfEdges() []HalfEdgeID { return append([]HalfEdgeID(nil), l.halfEdges...) }
func (l Loop) Face() FaceID            { return l.face }
func (l Loop) Len() int                { return len(l.halfEdges) }

// Linked reports whether next/previous adjacency has been established.
func (l Loop) Linked() bool { return l.linked }

// Face is bounded by one outer loop and any number of inner loops.
type Face struct {
	surface geom.Surface
	outer   LoopID
	inner   []LoopID
	cap     bool
}

// Surface returns the carrier surface of the face, nil if unset.
func (f Face) Surface() geom.Surface { return f.surface }
func (f Face) OuterLoop() LoopID     { return f.outer }

// InnerLoops returns the hole loops of the face.
func (f Face) InnerLoops() []LoopID { return append([]LoopID(nil), f.inner...) }

// IsCap reports whether the face was synthesized to close an open boundary.
func (f Face) IsCap() bool { return f.cap }

// Loops returns the outer loop followed by the inner loops.
func (f Face) Loops() []LoopID {
	loops := make([]LoopID, 0, 1+len(f.inner))
	if f.outer != NoLoop {
		loops = append(loops, f.outer)
	}
	return append(loops, f.inner...)
}

// Shell is an ordered collection of faces together with the arenas
// holding all of their topology. A Shell is not safe for concurrent use.
type Shell struct {
	faces     []Face
	loops     []Loop
	halfEdges []HalfEdge
	edges     []Edge
}

// Faces returns the handles of every face in declaration order. Capping
// faces follow the declared ones.
func (s *Shell) Faces() []FaceID {
	ids := make([]FaceID, len(s.faces))
	for i := range ids {
		ids[i] = FaceID(i)
	}
	return ids
}

func (s *Shell) NumFaces() int     { return len(s.faces) }
func (s *Shell) NumHalfEdges() int { return len(s.halfEdges) }

func (s *Shell) Face(id FaceID) Face             { return s.faces[id] }
func (s *Shell) Loop(id LoopID) Loop             { return s.loops[id] }
func (s *Shell) HalfEdge(id HalfEdgeID) HalfEdge { return s.halfEdges[id] }
func (s *Shell) Edge(id EdgeID) Edge             { return s.edges[id] }

// Curve returns the curve carrying the edge of h, evaluating its CurveFunc on
// first access. A half-edge without curve returns nil.
func (s *Shell) Curve(h HalfEdgeID) (geom.Curve, error) {
	e := &s.edges[s.halfEdges[h].edge]
	if !e.evaluated {
		e.evaluated = true
		if e.curveFn != nil {
			e.curve, e.curveErr = e.curveFn()
			e.curveFn = nil
		}
	}
	return e.curve, e.curveErr
}

// FaceHalfEdges returns the half-edges of every loop of the face.
func (s *Shell) FaceHalfEdges(f FaceID) []HalfEdgeID {
	var hs []HalfEdgeID
	for _, l := range s.faces[f].Loops() {
		hs = append(hs, s.loops[l].halfEdges...)
	}
	return hs
}

// link establishes cyclic next/previous adjacency for the half-edges of the
// loop and points each of them back to it. Linking is idempotent.
func (s *Shell) link(l LoopID) {
	loop := &s.loops[l]
	n := len(loop.halfEdges)
	for i, h := range loop.halfEdges {
		he := &s.halfEdges[h]
		he.loop = l
		he.next = loop.halfEdges[(i+1)%n]
		he.prev = loop.halfEdges[(i+n-1)%n]
	}
	loop.linked = true
}

// LoopPoints tessellates a linked loop into its ordered boundary points:
// the start vertex of every half-edge followed by interior samples of its
// curve, if any, in traversal direction.
func (s *Shell) LoopPoints(l LoopID) ([]r3.Vec, error) {
	loop := s.loops[l]
	if !loop.linked {
		return nil, fmt.Errorf("loop %d: %w", l, ErrUnlinked)
	}
	points := make([]r3.Vec, 0, len(loop.halfEdges))
	for _, h := range loop.halfEdges {
		he := s.halfEdges[h]
		points = append(points, he.start.Point)
		c, err := s.Curve(h)
		if err != nil {
			return nil, fmt.Errorf("half-edge %d curve: %w", h, err)
		}
		if c == nil {
			continue
		}
		u0, u1 := c.Domain()
		if he.inverted {
			u0, u1 = u1, u0
		}
		for k := 1; k < samplesPerCurve; k++ {
			t := float64(k) / samplesPerCurve
			points = append(points, c.Point(u0+t*(u1-u0)))
		}
	}
	return points, nil
}

// Bounds returns the bounding box of every vertex referenced by the shell.
func (s *Shell) Bounds() d3.Box {
	b := d3.EmptyBox()
	for _, he := range s.halfEdges {
		b = b.Include(he.start.Point)
	}
	return b
}

// Stats summarizes the contents of a shell.
type Stats struct {
	Faces     int
	CapFaces  int
	Loops     int
	HalfEdges int
	Edges     int
}

func (s *Shell) Stats() Stats {
	st := Stats{
		Faces:     len(s.faces),
		Loops:     len(s.loops),
		HalfEdges: len(s.halfEdges),
		Edges:     len(s.edges),
	}
	for _, f := range s.faces {
		if f.cap {
			st.CapFaces++
		}
	}
	return st
}

func (s *Shell) newFace(surface geom.Surface) FaceID {
	s.faces = append(s.faces, Face{surface: surface, outer: NoLoop})
	return FaceID(len(s.faces) - 1)
}

func (s *Shell) newLoop(f FaceID) LoopID {
	s.loops = append(s.loops, Loop{face: f})
	return LoopID(len(s.loops) - 1)
}

// newEdge allocates an edge with its twin pair and returns the half-edge
// running from a to b.
func (s *Shell) newEdge(a, b *Vertex, curve CurveFunc, inverted bool, tag any) HalfEdgeID {
	e := EdgeID(len(s.edges))
	h := HalfEdgeID(len(s.halfEdges))
	t := h + 1
	s.halfEdges = append(s.halfEdges,
		HalfEdge{start: a, end: b, twin: t, edge: e, loop: NoLoop, next: NoHalfEdge, prev: NoHalfEdge, inverted: inverted},
		HalfEdge{start: b, end: a, twin: h, edge: e, loop: NoLoop, next: NoHalfEdge, prev: NoHalfEdge, inverted: !inverted},
	)
	s.edges = append(s.edges, Edge{halves: [2]HalfEdgeID{h, t}, curveFn: curve, tag: tag})
	return h
}
