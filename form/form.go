// Package form builds common shells: flat sheets, closed boxes, extruded
// polygons with holes and circular sectors.
package form

import (
	"fmt"
	"math"
	"runtime/debug"

	"github.com/shicaiyuan/brep"
	"github.com/shicaiyuan/brep/internal/d2"
	"github.com/shicaiyuan/brep/nurbs"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

type shapeErr struct {
	panicObj any
	stack    string
}

func (s *shapeErr) Error() string {
	return fmt.Sprintf("%s", s.panicObj)
}

// Sheet returns an open rectangular sheet in the XY plane centered at the
// origin. Its four boundary edges are capped.
func Sheet(width, height float64, opts ...brep.BuilderOption) (s *brep.Shell, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	if width <= 0 || height <= 0 {
		panic("size <= 0")
	}
	b := brep.NewBuilder(opts...)
	w, h := width/2, height/2
	b.Face(nil).Loop(
		b.Vertex(-w, -h, 0),
		b.Vertex(w, -h, 0),
		b.Vertex(w, h, 0),
		b.Vertex(-w, h, 0),
	)
	return b.Build()
}

// Box returns a closed box centered at the origin.
func Box(size r3.Vec, opts ...brep.BuilderOption) (s *brep.Shell, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		panic("size <= 0")
	}
	half := r3.Scale(0.5, size)
	rect := d2.Box{Min: r2.Vec{X: -half.X, Y: -half.Y}, Max: r2.Vec{X: half.X, Y: half.Y}}
	poly := rect.Polygon()
	b := brep.NewBuilder(opts...)
	prism(b, poly[:], nil, -half.Z, half.Z)
	return b.Build()
}

// Prism returns the closed solid swept by extruding the polygon outer, less
// its holes, from z=0 to z=height. Polygons may be given in either winding.
func Prism(outer []r2.Vec, holes [][]r2.Vec, height float64, opts ...brep.BuilderOption) (s *brep.Shell, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	if height <= 0 {
		panic("height <= 0")
	}
	if len(outer) < 3 {
		panic("outer polygon needs at least 3 vertices")
	}
	for _, h := range holes {
		if len(h) < 3 {
			panic("hole needs at least 3 vertices")
		}
	}
	b := brep.NewBuilder(opts...)
	prism(b, outer, holes, 0, height)
	return b.Build()
}

// Sector returns the flat circular sector of the given radius in the XY plane
// between the +X axis and the direction at angle radians. The arc edge is
// trimmed from a wider carrier arc.
func Sector(radius, angle float64, opts ...brep.BuilderOption) (s *brep.Shell, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	if radius <= 0 {
		panic("radius <= 0")
	}
	if angle <= 0 || angle > 1.5*math.Pi {
		panic("angle must be in (0, 3π/2]")
	}
	const margin = math.Pi / 4
	carrier, err := nurbs.Arc(r3.Vec{}, r3.Vec{X: 1}, r3.Vec{Y: 1}, radius, -margin, angle+margin)
	if err != nil {
		return nil, err
	}
	b := brep.NewBuilder(opts...)
	sin, cos := math.Sincos(angle)
	center := b.Vertex(0, 0, 0)
	v0 := b.Vertex(radius, 0, 0)
	v1 := b.Vertex(radius*cos, radius*sin, 0)
	b.Face(nil).Loop().
		Edge(center, v0).
		EdgeTrim(v0, v1, carrier).
		Edge(v1, center)
	return b.Build()
}

// prism declares the faces of an extrusion between heights z0 and z1.
// Face loops run counter-clockwise seen from outside the solid.
func prism(b *brep.Builder, outer []r2.Vec, holes [][]r2.Vec, z0, z1 float64) {
	ring := func(poly []r2.Vec, ccw bool) (bot, top []*brep.Vertex) {
		pts := append([]r2.Vec(nil), poly...)
		if (d2.Set(pts).SignedArea() > 0) != ccw {
			for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
				pts[i], pts[j] = pts[j], pts[i]
			}
		}
		for _, p := range pts {
			bot = append(bot, b.Vertex(p.X, p.Y, z0))
			top = append(top, b.Vertex(p.X, p.Y, z1))
		}
		return bot, top
	}
	walls := func(bot, top []*brep.Vertex) {
		n := len(bot)
		for i := range bot {
			j := (i + 1) % n
			b.Face(nil).Loop(bot[i], bot[j], top[j], top[i])
		}
	}
	outerBot, outerTop := ring(outer, true)
	holeBot := make([][]*brep.Vertex, len(holes))
	holeTop := make([][]*brep.Vertex, len(holes))
	for i, h := range holes {
		holeBot[i], holeTop[i] = ring(h, false)
	}

	b.Face(nil).Loop(reversed(outerBot)...)
	for _, h := range holeBot {
		b.Loop(reversed(h)...)
	}
	b.Face(nil).Loop(outerTop...)
	for _, h := range holeTop {
		b.Loop(h...)
	}
	walls(outerBot, outerTop)
	for i := range holes {
		walls(holeBot[i], holeTop[i])
	}
}

func reversed(vs []*brep.Vertex) []*brep.Vertex {
	out := make([]*brep.Vertex, len(vs))
	for i, v := range vs {
		out[len(vs)-1-i] = v
	}
	return out
}
