package render

import (
	"fmt"
	"io"

	"github.com/shicaiyuan/brep"
	"github.com/shicaiyuan/brep/geom"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// ShellRenderer tessellates the faces of a finished shell one at a time.
// Capping faces and faces whose boundary has fewer than three points
// produce no triangles.
type ShellRenderer struct {
	shell     *brep.Shell
	next      int
	unwritten triangle3Buffer
}

var _ Renderer = (*ShellRenderer)(nil)

// NewShellRenderer returns a renderer of the faces of s. The shell must
// have been built.
func NewShellRenderer(s *brep.Shell) *ShellRenderer {
	return &ShellRenderer{shell: s}
}

// ReadTriangles writes triangles of the shell into dst.
func (r *ShellRenderer) ReadTriangles(dst []Triangle3) (n int, err error) {
	if len(dst) == 0 {
		panic("cannot write to empty triangle slice")
	}
	for {
		n += r.unwritten.Read(dst[n:])
		if n == len(dst) {
			return n, nil
		}
		if r.next >= r.shell.NumFaces() {
			return n, io.EOF
		}
		f := brep.FaceID(r.next)
		r.next++
		tris, err := r.face(f)
		if err != nil {
			return n, fmt.Errorf("face %d: %w", f, err)
		}
		r.unwritten.Write(tris)
	}
}

func (r *ShellRenderer) face(f brep.FaceID) ([]Triangle3, error) {
	face := r.shell.Face(f)
	if face.IsCap() || face.OuterLoop() == brep.NoLoop {
		return nil, nil
	}
	outer, err := r.shell.LoopPoints(face.OuterLoop())
	if err != nil {
		return nil, err
	}
	if geom.CountDistinct(outer, geom.Tolerance) < 3 {
		return nil, nil
	}
	normal, err := geom.NormalOfCCWSeq(outer)
	if err != nil {
		return nil, err
	}
	plane, err := geom.PlaneThrough(normal, outer[0])
	if err != nil {
		return nil, err
	}
	to2D := plane.To2D()
	all := append([]r3.Vec(nil), outer...)
	var holes [][]r2.Vec
	for _, l := range face.InnerLoops() {
		pts, err := r.shell.LoopPoints(l)
		if err != nil {
			return nil, err
		}
		if len(pts) < 3 {
			continue
		}
		holes = append(holes, to2D.ApplyAll(pts))
		all = append(all, pts...)
	}
	idx, err := triangulate(to2D.ApplyAll(outer), holes)
	if err != nil {
		return nil, err
	}
	tris := make([]Triangle3, len(idx))
	for i, t := range idx {
		tris[i] = Triangle3{V: [3]r3.Vec{all[t[0]], all[t[1]], all[t[2]]}}
	}
	return tris, nil
}
