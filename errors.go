package brep

import (
	"errors"
	"fmt"

	"github.com/shicaiyuan/brep/geom"
)

var (
	// ErrSequence is returned when a declaration is made out of order, such as
	// a loop before any face or an edge before any loop.
	ErrSequence = errors.New("brep: declaration out of sequence")
	// ErrRegistryConsistency is returned when the edge registry finds a vertex
	// pair whose recorded half-edges are not twins of each other.
	ErrRegistryConsistency = errors.New("brep: inconsistent edge registry")
	// ErrDegenerateEdge is returned for an edge that starts and ends on the same vertex.
	ErrDegenerateEdge = errors.New("brep: degenerate edge")
	// ErrDegenerateGeometry is returned when a surface cannot be synthesized
	// from the boundary it was given.
	ErrDegenerateGeometry = geom.ErrDegenerate
	// ErrUnlinked is returned when a loop is traversed before being linked.
	ErrUnlinked = errors.New("brep: loop not linked")
)

// buildError carries a panic recovered while finalizing a shell.
type buildError struct {
	panicObj any
	stack    string
}

func (b *buildError) Error() string {
	return fmt.Sprintf("brep: build: %v", b.panicObj)
}

func (b *buildError) Unwrap() error {
	err, _ := b.panicObj.(error)
	return err
}

// ValidationError describes a half-edge breaking a shell invariant.
type ValidationError struct {
	HalfEdge HalfEdgeID
	Message  string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("half-edge %d: %s", e.HalfEdge, e.Message)
}
