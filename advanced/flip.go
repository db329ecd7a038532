package advanced

import (
	"github.com/osuushi/cdt/predicates"
	"go.uber.org/zap"
)

// Flip edges until every unconstrained edge reachable from the candidates is
// locally Delaunay. Every edge not among the candidates must already be
// locally Delaunay, which holds between public operations.
//
// Detached, twinless and constrained candidates are skipped. Each flip queues
// the four sides of its quadrilateral.
func (t *Topology) RestoreDelaunayProperty(candidates []EdgeID) {
	stack := append([]EdgeID(nil), candidates...)
	flips := 0
	limit := 16*len(t.edges)*len(t.edges) + 64
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !t.needsFlip(e) {
			continue
		}
		flips++
		if flips > limit {
			fatalf("Delaunay restoration did not converge after %d flips", flips)
		}
		stack = append(stack, t.flip(e)...)
	}
	if flips > 0 {
		t.logger.Debug("restored Delaunay property", zap.Int("flips", flips))
	}
}

func (t *Topology) needsFlip(e EdgeID) bool {
	if !t.live(e) || t.edges[e].Constrained {
		return false
	}
	f := t.twin(e)
	if f == NoEdge {
		return false
	}
	a, b := t.pos(t.origin(e)), t.pos(t.dest(e))
	c := t.pos(t.opposite(e))
	d := t.pos(t.opposite(f))
	if predicates.InCircle(a, b, c, d) <= 0 {
		return false
	}
	// A locally non-Delaunay edge always has a convex quad, but check anyway
	// rather than create an inverted triangle.
	return orientSign(a, d, c) > 0 && orientSign(b, c, d) > 0
}

// Flip the diagonal of the quad formed by e's triangle and its twin's,
// reusing both edge slots. Returns the four sides of the quad.
//
//	   c                 c
//	  / \               /|\
//	 / e \             / | \
//	a --- b    =>     a  |  b
//	 \ f /             \ | /
//	  \ /               \|/
//	   d                 d
func (t *Topology) flip(e EdgeID) []EdgeID {
	f := t.twin(e)
	e1 := t.next(e)
	e2 := t.next(e1)
	f1 := t.next(f)
	f2 := t.next(f1)
	c := t.origin(e2)
	d := t.origin(f2)

	// e becomes d->c in triangle (a, d, c)
	t.edges[e].Origin = d
	t.edges[e].Next = e2
	t.edges[e2].Next = f1
	t.edges[f1].Next = e

	// f becomes c->d in triangle (b, c, d)
	t.edges[f].Origin = c
	t.edges[f].Next = f2
	t.edges[f2].Next = e1
	t.edges[e1].Next = f

	t.hints[d] = e
	t.hints[c] = f
	t.hints[t.origin(e1)] = e1
	t.hints[t.origin(f1)] = f1
	return []EdgeID{e1, e2, f1, f2}
}
