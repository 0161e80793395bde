package brep

import (
	"fmt"

	"github.com/shicaiyuan/brep/geom"
	"github.com/shicaiyuan/brep/internal/d2"
	"github.com/shicaiyuan/brep/nurbs"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// BoundsOptions pads the box of a bounding surface.
type BoundsOptions struct {
	// MinWidth and MinHeight widen a box narrower than them about its center.
	MinWidth, MinHeight float64
	// Offset is added to both box dimensions, half on each side.
	// Negative offsets shrink the box.
	Offset float64
}

// BoundingSurface returns a planar patch covering the polygon points. If
// plane is nil it is derived from the points, which must then run
// counter-clockwise about the face they bound.
func BoundingSurface(points []r3.Vec, plane *geom.Plane) (*nurbs.Surface, error) {
	if n := geom.CountDistinct(points, geom.Tolerance); n < 3 {
		return nil, fmt.Errorf("bounding surface of %d distinct points: %w", n, ErrDegenerateGeometry)
	}
	var pl geom.Plane
	if plane != nil {
		pl = *plane
	} else {
		normal, err := geom.NormalOfCCWSeq(points)
		if err != nil {
			return nil, fmt.Errorf("bounding surface plane: %w", err)
		}
		pl = geom.Plane{Normal: normal, W: r3.Dot(points[0], normal)}
	}
	return BoundingSurfaceFrom2D(pl.To2D().ApplyAll(points), pl, BoundsOptions{})
}

// BoundingSurfaceFrom2D returns the patch spanning the padded bounding box
// of points given in the coordinates of plane.
func BoundingSurfaceFrom2D(points []r2.Vec, plane geom.Plane, opts BoundsOptions) (*nurbs.Surface, error) {
	box := d2.BoxOf(points)
	if box.Empty() {
		return nil, fmt.Errorf("bounding surface of no points: %w", ErrDegenerateGeometry)
	}
	c := box.Center()
	if opts.MinWidth > box.Width() {
		box.Min.X = c.X - opts.MinWidth/2
		box.Max.X = c.X + opts.MinWidth/2
	}
	if opts.MinHeight > box.Height() {
		box.Min.Y = c.Y - opts.MinHeight/2
		box.Max.Y = c.Y + opts.MinHeight/2
	}
	if opts.Offset != 0 {
		box = box.Enlarge(d2.Elem(opts.Offset))
	}
	if box.Width() <= 0 || box.Height() <= 0 {
		return nil, fmt.Errorf("bounding box of size %v: %w", box.Size(), ErrDegenerateGeometry)
	}
	return BoundingSurfaceFromBox(r2.Box(box), plane), nil
}

// BoundingSurfaceFromBox returns the bilinear patch whose corners are the
// corners of box lifted onto plane. The patch normal agrees with the
// plane normal.
func BoundingSurfaceFromBox(box r2.Box, plane geom.Plane) *nurbs.Surface {
	to3D := plane.To3D()
	poly := d2.Box(box).Polygon()
	var c [4]r3.Vec
	for i, p := range poly {
		c[i] = to3D.Apply(p)
	}
	return nurbs.Bilinear(c[3], c[2], c[0], c[1])
}
