package d2

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Box is a 2d bounding box.
type Box r2.Box

// EmptyBox returns an inverted box that any call to Include turns into
// a valid box around the included point.
func EmptyBox() Box {
	return Box{
		Min: Elem(math.Inf(1)),
		Max: Elem(math.Inf(-1)),
	}
}

// BoxOf returns the smallest box containing all points of the set.
// The box of an empty set is EmptyBox.
func BoxOf(s Set) Box {
	b := EmptyBox()
	for _, v := range s {
		b = b.Include(v)
	}
	return b
}

// Empty reports whether no point has been included in the box.
func (a Box) Empty() bool {
	return a.Min.X > a.Max.X || a.Min.Y > a.Max.Y
}

// Equals test the equality of 2d boxes.
func (a Box) Equals(b Box, tol float64) bool {
	return EqualWithin(a.Min, b.Min, tol) && EqualWithin(a.Max, b.Max, tol)
}

// Include enlarges a 2d box to include a point.
func (a Box) Include(v r2.Vec) Box {
	return Box{MinElem(a.Min, v), MaxElem(a.Max, v)}
}

// Size returns the size of a 2d box.
func (a Box) Size() r2.Vec {
	return r2.Sub(a.Max, a.Min)
}

// Width is the extent of the box along X.
func (a Box) Width() float64 { return a.Max.X - a.Min.X }

// Height is the extent of the box along Y.
func (a Box) Height() float64 { return a.Max.Y - a.Min.Y }

// Center returns the center of a 2d box.
func (a Box) Center() r2.Vec {
	return r2.Add(a.Min, r2.Scale(0.5, a.Size()))
}

// Enlarge returns a new 2d box enlarged by a size vector.
// Half of v is added on each side.
func (a Box) Enlarge(v r2.Vec) Box {
	v = r2.Scale(0.5, v)
	return Box{r2.Sub(a.Min, v), r2.Add(a.Max, v)}
}

// Polygon returns the box corners as a counter-clockwise polygon
// starting at the bottom left corner.
func (a Box) Polygon() [4]r2.Vec {
	return [4]r2.Vec{
		a.Min,
		{X: a.Max.X, Y: a.Min.Y},
		a.Max,
		{X: a.Min.X, Y: a.Max.Y},
	}
}
