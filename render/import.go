package render

import (
	"errors"
	"fmt"

	"github.com/shicaiyuan/brep"
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	_ kdtree.Interface  = kdPoints{}
	_ kdtree.Comparable = kdPoint{}
)

// ImportShell builds a shell with one face per triangle of model. Triangle
// corners closer than tol are welded into a single vertex so neighbouring
// triangles share edges; open boundaries are capped by the builder.
// Triangles that collapse when welded are dropped.
func ImportShell(model []Triangle3, tol float64, opts ...brep.BuilderOption) (*brep.Shell, error) {
	if len(model) == 0 {
		return nil, errors.New("render: import of empty model")
	}
	if tol < 0 {
		return nil, fmt.Errorf("render: negative weld tolerance %g", tol)
	}
	b := brep.NewBuilder(opts...)
	verts := weld(model, tol, b)
	for i := range model {
		v0, v1, v2 := verts[3*i], verts[3*i+1], verts[3*i+2]
		if v0 == v1 || v1 == v2 || v2 == v0 {
			continue
		}
		b.Face(nil).Loop(v0, v1, v2)
	}
	s, err := b.Build()
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("render: model is not an oriented manifold: %w", err)
	}
	return s, nil
}

// weld returns a vertex for every triangle corner of model, in order.
// Corners are visited in order and each unassigned corner claims every
// unassigned corner within tol of it.
func weld(model []Triangle3, tol float64, b *brep.Builder) []*brep.Vertex {
	pts := make(kdPoints, 0, 3*len(model))
	for _, t := range model {
		for _, v := range t.V {
			pts = append(pts, kdPoint{Vec: v, idx: len(pts)})
		}
	}
	corners := append(kdPoints(nil), pts...)
	// New reorders its argument.
	tree := kdtree.New(pts, false)
	verts := make([]*brep.Vertex, len(corners))
	for i, c := range corners {
		if verts[i] != nil {
			continue
		}
		v := b.Vertex(c.X, c.Y, c.Z)
		verts[i] = v
		keep := kdtree.NewDistKeeper(tol * tol)
		tree.NearestSet(keep, c)
		for _, near := range keep.Heap {
			if near.Comparable == nil {
				continue
			}
			j := near.Comparable.(kdPoint).idx
			if verts[j] == nil {
				verts[j] = v
			}
		}
	}
	return verts
}

type kdPoint struct {
	r3.Vec
	idx int
}

// Compare returns the signed distance of a from the plane passing through
// b and perpendicular to the dimension d.
func (a kdPoint) Compare(b kdtree.Comparable, d kdtree.Dim) float64 {
	return kdComp(a, b.(kdPoint), int(d))
}

// Dims returns the number of dimensions described in the Comparable.
func (a kdPoint) Dims() int { return 3 }

// Distance returns the squared Euclidean distance between the receiver and
// the parameter.
func (a kdPoint) Distance(b kdtree.Comparable) float64 {
	return r3.Norm2(r3.Sub(a.Vec, b.(kdPoint).Vec))
}

// c = a.dim - b.dim
func kdComp(a, b kdPoint, dim int) float64 {
	switch dim {
	case 0:
		return a.X - b.X
	case 1:
		return a.Y - b.Y
	}
	return a.Z - b.Z
}

type kdPoints []kdPoint

func (k kdPoints) Index(i int) kdtree.Comparable { return k[i] }

// Len returns the length of the list.
func (k kdPoints) Len() int { return len(k) }

// Pivot partitions the list based on the dimension specified.
func (k kdPoints) Pivot(d kdtree.Dim) int {
	p := kdPlane{dim: int(d), points: k}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

// Slice returns a slice of the list using zero-based half
// open indexing equivalent to built-in slice indexing.
func (k kdPoints) Slice(start, end int) kdtree.Interface { return k[start:end] }

type kdPlane struct {
	dim    int
	points kdPoints
}

func (p kdPlane) Less(i, j int) bool {
	return kdComp(p.points[i], p.points[j], p.dim) < 0
}
func (p kdPlane) Swap(i, j int) {
	p.points[i], p.points[j] = p.points[j], p.points[i]
}
func (p kdPlane) Len() int {
	return len(p.points)
}
func (p kdPlane) Slice(start, end int) kdtree.SortSlicer {
	p.points = p.points[start:end]
	return p
}
