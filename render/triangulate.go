package render

import (
	"errors"
	"math"
	"sort"

	"github.com/shicaiyuan/brep/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

var errNoEar = errors.New("render: polygon has no ear to clip")

// triangulate splits the polygon with boundary outer and holes into
// triangles by ear clipping. Holes are first bridged into the outer boundary.
// Triangles are index triples into the concatenation of outer and holes and
// run counter-clockwise.
func triangulate(outer []r2.Vec, holes [][]r2.Vec) ([][3]int, error) {
	pts := append([]r2.Vec(nil), outer...)
	ring := make([]int, len(outer))
	for i := range ring {
		ring[i] = i
	}
	if d2.Set(outer).SignedArea() < 0 {
		reverse(ring)
	}
	holeRings := make([][]int, 0, len(holes))
	for _, h := range holes {
		if len(h) < 3 {
			continue
		}
		hr := make([]int, len(h))
		for i := range hr {
			hr[i] = len(pts) + i
		}
		pts = append(pts, h...)
		if d2.Set(h).SignedArea() > 0 {
			reverse(hr)
		}
		holeRings = append(holeRings, hr)
	}
	// Bridge holes rightmost first so later bridges cannot cross earlier ones.
	sort.Slice(holeRings, func(i, j int) bool {
		return pts[rightmost(pts, holeRings[i])].X > pts[rightmost(pts, holeRings[j])].X
	})
	for k, hr := range holeRings {
		var err error
		ring, err = bridge(pts, ring, hr, holeRings[k+1:])
		if err != nil {
			return nil, err
		}
	}
	return clipEars(pts, ring)
}

func clipEars(pts []r2.Vec, ring []int) ([][3]int, error) {
	tris := make([][3]int, 0, len(ring))
	for len(ring) > 3 {
		clipped := false
		n := len(ring)
		for i := 0; i < n; i++ {
			a, b, c := ring[(i+n-1)%n], ring[i], ring[(i+1)%n]
			area := d2.Cross(r2.Sub(pts[b], pts[a]), r2.Sub(pts[c], pts[b]))
			if math.Abs(area) <= areaTol(pts[a], pts[b], pts[c]) {
				// Collinear or folded back: drop without a triangle.
				ring = append(ring[:i], ring[i+1:]...)
				clipped = true
				break
			}
			if area < 0 || !isEar(pts, ring, a, b, c) {
				continue
			}
			tris = append(tris, [3]int{a, b, c})
			ring = append(ring[:i], ring[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			return tris, errNoEar
		}
	}
	if len(ring) == 3 {
		a, b, c := pts[ring[0]], pts[ring[1]], pts[ring[2]]
		if d2.Cross(r2.Sub(b, a), r2.Sub(c, b)) > areaTol(a, b, c) {
			tris = append(tris, [3]int{ring[0], ring[1], ring[2]})
		}
	}
	return tris, nil
}

// isEar reports whether no other ring vertex lies in the triangle abc.
// Vertices coincident with a corner, such as both ends of a bridge, are ignored.
func isEar(pts []r2.Vec, ring []int, a, b, c int) bool {
	pa, pb, pc := pts[a], pts[b], pts[c]
	for _, i := range ring {
		p := pts[i]
		if p == pa || p == pb || p == pc {
			continue
		}
		if d2.Cross(r2.Sub(pb, pa), r2.Sub(p, pa)) >= 0 &&
			d2.Cross(r2.Sub(pc, pb), r2.Sub(p, pb)) >= 0 &&
			d2.Cross(r2.Sub(pa, pc), r2.Sub(p, pc)) >= 0 {
			return false
		}
	}
	return true
}

// bridge splices hole into ring through a segment joining the rightmost hole
// vertex to the closest ring vertex it can see.
func bridge(pts []r2.Vec, ring, hole []int, others [][]int) ([]int, error) {
	hi := rightmost(pts, hole)
	m := pts[hole[hi]]
	candidates := make([]int, len(ring))
	for i := range candidates {
		candidates[i] = i
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return r2.Norm2(r2.Sub(pts[ring[candidates[i]]], m)) < r2.Norm2(r2.Sub(pts[ring[candidates[j]]], m))
	})
	for _, ci := range candidates {
		p := pts[ring[ci]]
		if p == m || crossesAny(pts, m, p, ring) || crossesAny(pts, m, p, hole) {
			continue
		}
		blocked := false
		for _, o := range others {
			if crossesAny(pts, m, p, o) {
				blocked = true
				break
			}
		}
		if blocked {
			continue
		}
		out := make([]int, 0, len(ring)+len(hole)+2)
		out = append(out, ring[:ci+1]...)
		for k := 0; k <= len(hole); k++ {
			out = append(out, hole[(hi+k)%len(hole)])
		}
		out = append(out, ring[ci:]...)
		return out, nil
	}
	return nil, errors.New("render: hole cannot be bridged to its boundary")
}

// crossesAny reports whether segment pq properly crosses an edge of ring.
// Edges sharing an endpoint with pq are not counted.
func crossesAny(pts []r2.Vec, p, q r2.Vec, ring []int) bool {
	n := len(ring)
	for i := range ring {
		a, b := pts[ring[i]], pts[ring[(i+1)%n]]
		if a == p || a == q || b == p || b == q {
			continue
		}
		if segmentsCross(p, q, a, b) {
			return true
		}
	}
	return false
}

func segmentsCross(p, q, a, b r2.Vec) bool {
	s1 := d2.Cross(r2.Sub(q, p), r2.Sub(a, p))
	s2 := d2.Cross(r2.Sub(q, p), r2.Sub(b, p))
	s3 := d2.Cross(r2.Sub(b, a), r2.Sub(p, a))
	s4 := d2.Cross(r2.Sub(b, a), r2.Sub(q, a))
	return s1*s2 < 0 && s3*s4 < 0
}

func rightmost(pts []r2.Vec, ring []int) int {
	best := 0
	for i, idx := range ring {
		if pts[idx].X > pts[ring[best]].X {
			best = i
		}
	}
	return best
}

// areaTol scales the collinearity threshold to the size of the corner.
func areaTol(a, b, c r2.Vec) float64 {
	const rel = 1e-12
	s := r2.Norm2(r2.Sub(b, a)) + r2.Norm2(r2.Sub(c, b))
	return rel * s
}

func reverse(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
