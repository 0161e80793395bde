package brep

import (
	"errors"
	"fmt"
	"io"
	"log"
	"runtime/debug"

	"github.com/shicaiyuan/brep/geom"
	"gonum.org/v1/gonum/spatial/r3"
)

// Builder assembles a Shell from face, loop and edge declarations.
// Declarations go to the face and loop opened last. The first failure is
// kept and returned by Err and Build; declarations after it do nothing.
//
// A Builder is not safe for concurrent use. Independent shells need
// independent builders.
type Builder struct {
	shell *Shell
	index *EdgeIndex
	face  FaceID
	loop  LoopID
	err   error
	built bool
	log   *log.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLogger makes the builder report finalization passes to l.
func WithLogger(l *log.Logger) BuilderOption {
	return func(b *Builder) {
		if l != nil {
			b.log = l
		}
	}
}

// NewBuilder returns a builder over an empty shell.
func NewBuilder(opts ...BuilderOption) *Builder {
	s := &Shell{}
	b := &Builder{
		shell: s,
		index: NewEdgeIndex(s),
		face:  NoFace,
		loop:  NoLoop,
		log:   log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Err returns the first error encountered by the builder.
func (b *Builder) Err() error { return b.err }

// Shell returns the shell under construction.
func (b *Builder) Shell() *Shell { return b.shell }

// Vertex returns a new vertex. Vertices are never merged by coordinates: two
// calls with equal arguments return distinct vertices.
func (b *Builder) Vertex(x, y, z float64) *Vertex {
	return NewVertex(r3.Vec{X: x, Y: y, Z: z})
}

// Face opens a new face. A nil surface leaves the carrier to be synthesized
// from the outer loop on Build. Note a typed nil pointer is a set surface.
func (b *Builder) Face(surface geom.Surface) *Builder {
	if !b.ok() {
		return b
	}
	b.face = b.shell.newFace(surface)
	b.loop = NoLoop
	return b
}

// Loop opens the outer loop of the current face, or a hole loop if the outer
// loop exists. Given vertices v0..vn-1 it then declares the edges vi->vi+1
// and vn-1->v0.
func (b *Builder) Loop(vertices ...*Vertex) *Builder {
	if !b.ok() {
		return b
	}
	if b.face == NoFace {
		return b.fail(fmt.Errorf("loop before face: %w", ErrSequence))
	}
	l := b.shell.newLoop(b.face)
	f := &b.shell.faces[b.face]
	if f.outer == NoLoop {
		f.outer = l
	} else {
		f.inner = append(f.inner, l)
	}
	b.loop = l
	n := len(vertices)
	for i := range vertices {
		b.Edge(vertices[i], vertices[(i+1)%n])
	}
	return b
}

// EdgeOption sets an optional attribute of a declared edge. Attributes only
// apply when the declaration creates the edge.
type EdgeOption func(*edgeConfig)

type edgeConfig struct {
	curve    CurveFunc
	inverted bool
	tag      any
}

// WithCurve sets the function computing the curve of the edge on first use.
func WithCurve(fn CurveFunc) EdgeOption {
	return func(c *edgeConfig) { c.curve = fn }
}

// WithInverted marks the curve as running against the declared direction.
func WithInverted(inverted bool) EdgeOption {
	return func(c *edgeConfig) { c.inverted = inverted }
}

// WithTag attaches client data to the edge.
func WithTag(tag any) EdgeOption {
	return func(c *edgeConfig) { c.tag = tag }
}

// Edge appends the half-edge from v0 to v1 to the current loop. The edge is
// shared with any earlier declaration between the same two vertices.
func (b *Builder) Edge(v0, v1 *Vertex, opts ...EdgeOption) *Builder {
	if !b.ok() {
		return b
	}
	if b.loop == NoLoop {
		return b.fail(fmt.Errorf("edge before loop: %w", ErrSequence))
	}
	var cfg edgeConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	h, err := b.index.Resolve(v0, v1, cfg.curve, cfg.inverted, cfg.tag)
	if err != nil {
		return b.fail(err)
	}
	loop := &b.shell.loops[b.loop]
	loop.halfEdges = append(loop.halfEdges, h)
	return b
}

// EdgeTrim declares the edge from v0 to v1 carried by the part of curve
// between the points of v0 and v1. The curve is trimmed on first use.
func (b *Builder) EdgeTrim(v0, v1 *Vertex, curve geom.Curve) *Builder {
	if !b.ok() {
		return b
	}
	if curve == nil {
		return b.fail(fmt.Errorf("trim of nil curve: %w", ErrDegenerateGeometry))
	}
	if v0 == nil || v1 == nil {
		return b.fail(fmt.Errorf("trim to nil vertex: %w", ErrDegenerateEdge))
	}
	return b.Edge(v0, v1, WithCurve(trimmed(curve, v0.Point, v1.Point)))
}

func trimmed(c geom.Curve, from, to r3.Vec) CurveFunc {
	return func() (geom.Curve, error) {
		_, tail := c.Split(c.Param(from))
		head, _ := tail.Split(tail.Param(to))
		return head, nil
	}
}

// LastHalfEdge returns the half-edge appended last to the current loop.
func (b *Builder) LastHalfEdge() (HalfEdgeID, error) {
	if b.loop == NoLoop {
		return NoHalfEdge, fmt.Errorf("no open loop: %w", ErrSequence)
	}
	hs := b.shell.loops[b.loop].halfEdges
	if len(hs) == 0 {
		return NoHalfEdge, fmt.Errorf("loop %d is empty: %w", b.loop, ErrSequence)
	}
	return hs[len(hs)-1], nil
}

// Build links every loop, synthesizes the carrier of faces declared without
// one and closes the shell by capping every half-edge whose twin was never
// placed in a loop. No shell is returned on failure.
func (b *Builder) Build() (s *Shell, err error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.built {
		return nil, fmt.Errorf("shell already built: %w", ErrSequence)
	}
	b.built = true
	defer func() {
		if a := recover(); a != nil {
			s = nil
			err = &buildError{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	declared := len(b.shell.faces)
	for i := range b.shell.loops {
		b.shell.link(LoopID(i))
	}
	b.log.Printf("linked %d loops of %d faces", len(b.shell.loops), declared)

	var inferred int
	for i := 0; i < declared; i++ {
		f := &b.shell.faces[i]
		if f.surface != nil {
			continue
		}
		if f.outer == NoLoop {
			return nil, fmt.Errorf("face %d has neither surface nor loop: %w", i, ErrDegenerateGeometry)
		}
		points, err := b.shell.LoopPoints(f.outer)
		if err != nil {
			return nil, fmt.Errorf("face %d: %w", i, err)
		}
		surf, err := BoundingSurface(points, nil)
		if err != nil {
			return nil, fmt.Errorf("face %d: %w", i, err)
		}
		f.surface = surf
		inferred++
	}
	b.log.Printf("synthesized %d carrier surfaces", inferred)

	for i := 0; i < declared; i++ {
		for _, h := range b.shell.FaceHalfEdges(FaceID(i)) {
			twin := b.shell.halfEdges[h].twin
			if b.shell.halfEdges[twin].loop != NoLoop {
				continue
			}
			b.capWith(FaceID(i), twin)
		}
	}
	b.log.Printf("capped %d open half-edges", len(b.shell.faces)-declared)
	return b.shell, nil
}

// capWith closes the open half-edge h with a face carried by the surface of f.
func (b *Builder) capWith(f FaceID, h HalfEdgeID) {
	c := b.shell.newFace(b.shell.faces[f].surface)
	l := b.shell.newLoop(c)
	b.shell.loops[l].halfEdges = []HalfEdgeID{h}
	capFace := &b.shell.faces[c]
	capFace.outer = l
	capFace.cap = true
	b.shell.link(l)
}

func (b *Builder) ok() bool {
	if b.err != nil {
		return false
	}
	if b.built {
		b.err = fmt.Errorf("declaration after build: %w", ErrSequence)
		return false
	}
	return true
}

func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// IsBuildPanic reports whether err carries a panic recovered during Build
// and returns the stack it was raised with.
func IsBuildPanic(err error) (stack string, ok bool) {
	var be *buildError
	if errors.As(err, &be) {
		return be.stack, true
	}
	return "", false
}
