package geom

import (
	"fmt"
	"math"

	"github.com/shicaiyuan/brep/internal/d3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Plane is the set of points p with Dot(Normal, p) == W.
type Plane struct {
	Normal r3.Vec
	W      float64
}

// NewPlane returns the plane with the given normal and offset. The normal
// is normalized; a zero or non-finite normal yields ErrDegenerate.
func NewPlane(normal r3.Vec, w float64) (Plane, error) {
	length := r3.Norm(normal)
	if length < epsilon || !isFinite(normal) {
		return Plane{}, fmt.Errorf("plane normal %v: %w", normal, ErrDegenerate)
	}
	return Plane{Normal: r3.Scale(1/length, normal), W: w / length}, nil
}

// PlaneThrough returns the plane with the given normal containing point p.
func PlaneThrough(normal, p r3.Vec) (Plane, error) {
	pl, err := NewPlane(normal, 0)
	if err != nil {
		return Plane{}, err
	}
	pl.W = r3.Dot(pl.Normal, p)
	return pl, nil
}

// Basis returns a right handed orthonormal frame (x, y, Normal) of the plane.
// The frame of the XY plane is the world frame.
func (p Plane) Basis() (x, y, z r3.Vec) {
	z = p.Normal
	var align r3.Vec
	if math.Abs(r3.Dot(z, r3.Vec{Y: 1})) < 0.5 {
		align = r3.Cross(z, r3.Vec{Y: 1})
	} else {
		align = r3.Cross(z, r3.Vec{Z: 1})
	}
	y = r3.Unit(r3.Cross(align, z))
	x = r3.Unit(r3.Cross(y, z))
	return x, y, z
}

// Origin returns the point of the plane closest to the world origin.
func (p Plane) Origin() r3.Vec {
	return r3.Scale(p.W, p.Normal)
}

// SignedDistance returns the distance from pt to the plane, positive on the
// side the normal points to.
func (p Plane) SignedDistance(pt r3.Vec) float64 {
	return r3.Dot(p.Normal, pt) - p.W
}

// To2D returns the transformation of world points into plane coordinates.
func (p Plane) To2D() To2D {
	x, y, z := p.Basis()
	return To2D{t: d3.FromBasis(x, y, z, p.Origin())}
}

// To3D returns the transformation of plane coordinates into world points.
// It is the inverse of To2D.
func (p Plane) To3D() To3D {
	x, y, z := p.Basis()
	return To3D{t: d3.ToBasis(x, y, z, p.Origin())}
}

// To2D projects world points onto a plane's 2D parametrization.
type To2D struct {
	t d3.Transform
}

// Apply returns the plane coordinates of the projection of v.
func (t To2D) Apply(v r3.Vec) r2.Vec {
	return d3.ToR2(t.t.Transform(v))
}

// ApplyAll projects every point of vs.
func (t To2D) ApplyAll(vs []r3.Vec) []r2.Vec {
	out := make([]r2.Vec, len(vs))
	for i, v := range vs {
		out[i] = t.Apply(v)
	}
	return out
}

// To3D maps plane coordinates back to world points on the plane.
type To3D struct {
	t d3.Transform
}

// Apply returns the world point at plane coordinates v.
func (t To3D) Apply(v r2.Vec) r3.Vec {
	return t.t.Transform(d3.FromR2(v, 0))
}
