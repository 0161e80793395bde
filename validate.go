package brep

import "errors"

// Validate checks the invariants of a finished shell: every half-edge has a
// twin running the opposite way, belongs to exactly one linked loop of a face
// and has a twin placed in some loop, and every loop chains end to start.
// All violations are reported as ValidationError values joined into one error.
func (s *Shell) Validate() error {
	var errs []error
	report := func(h HalfEdgeID, msg string) {
		errs = append(errs, ValidationError{HalfEdge: h, Message: msg})
	}
	owners := make([]int, len(s.halfEdges))
	for l, loop := range s.loops {
		if loop.face == NoFace {
			for _, h := range loop.halfEdges {
				report(h, "loop has no face")
			}
		}
		for _, h := range loop.halfEdges {
			owners[h]++
			if s.halfEdges[h].loop != LoopID(l) {
				report(h, "loop back reference does not match its loop")
			}
		}
		if s.isCapLoop(LoopID(l)) {
			continue
		}
		n := len(loop.halfEdges)
		for i, h := range loop.halfEdges {
			next := loop.halfEdges[(i+1)%n]
			if s.halfEdges[h].end != s.halfEdges[next].start {
				report(h, "end vertex is not the start of the next half-edge")
			}
			if loop.linked && s.halfEdges[h].next != next {
				report(h, "next does not follow loop order")
			}
		}
	}
	for i, he := range s.halfEdges {
		h := HalfEdgeID(i)
		if he.twin < 0 || int(he.twin) >= len(s.halfEdges) {
			report(h, "missing twin")
			continue
		}
		twin := s.halfEdges[he.twin]
		if twin.twin != h {
			report(h, "twin of twin is not the half-edge")
		}
		if twin.start != he.end || twin.end != he.start {
			report(h, "twin does not reverse the endpoints")
		}
		switch owners[i] {
		case 0:
			report(h, "not in any loop")
		case 1:
		default:
			report(h, "in more than one loop")
		}
		if twin.loop == NoLoop {
			report(h, "twin is not in any loop")
		}
	}
	return errors.Join(errs...)
}

func (s *Shell) isCapLoop(l LoopID) bool {
	f := s.loops[l].face
	return f != NoFace && s.faces[f].cap
}
