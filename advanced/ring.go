package advanced

import (
	"math"

	"go.uber.org/zap"
)

// Constrain the segment from ring vertex a to ring vertex b as framing, where b
// currently follows a in the ring. Vertices the segment runs through join the
// ring between them.
func (t *Topology) frameSegment(a, b int) {
	if t.boundary.Next(a) != b {
		fatalf("%d does not follow %d in the ring", b, a)
	}
	path := t.constrain(Real(a), Real(b))
	prev := a
	for _, w := range path[1 : len(path)-1] {
		if !w.IsReal() || t.boundary.Contains(w.Index) {
			fatalf("framing edge %d-%d runs through %v", a, b, w)
		}
		t.boundary.InsertAfter(prev, w.Index)
		prev = w.Index
	}
}

// Make sure a freshly placed vertex is framed: either build the ring, or
// extend it to take in the vertex if it lies outside.
func (t *Topology) frame(index int) {
	if t.boundary.Len() == 0 {
		t.buildRing()
		return
	}
	if t.boundary.Contains(index) || t.ringContains(t.vertices[index].Position) {
		return
	}
	if t.attach(index) {
		if t.maybeLoose {
			t.reframe()
		}
	} else {
		t.maybeLoose = true
	}
}

// Try again to frame every vertex left outside the ring
func (t *Topology) reframe() {
	if t.boundary.Len() == 0 {
		t.buildRing()
		return
	}
	for progress := true; progress; {
		progress = false
		stillLoose := false
		for i := range t.vertices {
			if t.boundary.Contains(i) || t.ringContains(t.vertices[i].Position) {
				continue
			}
			if t.attach(i) {
				progress = true
			} else {
				stillLoose = true
			}
		}
		t.maybeLoose = stillLoose
	}
}

// Start the ring as the convex hull of all vertices, once there are at least
// three that are not collinear.
func (t *Topology) buildRing() bool {
	indices := make([]int, len(t.vertices))
	for i := range indices {
		indices[i] = i
	}
	hull := t.hull(indices)
	if len(hull) < 3 {
		t.maybeLoose = len(t.vertices) > 0
		return false
	}
	t.boundary.Reset(hull)
	for i, v := range hull {
		w := hull[CircularIndex(i+1, len(hull))]
		if !t.canConstrain(Real(v), Real(w)) {
			fatalf("hull edge %d-%d crosses a constrained edge", v, w)
		}
		t.frameSegment(v, w)
	}
	t.maybeLoose = false
	t.logger.Debug("built boundary ring", zap.Ints("ring", t.boundary.Vertices()))
	return true
}

// Whether the ring edge a-b is visible from p, which lies outside the ring:
// p is strictly on its outer side, the sight lines to both ends touch the ring
// only at those ends, and no ring vertex lies in the triangle between them.
func (t *Topology) canSee(index int, a, b int, ring []int) bool {
	p := t.vertices[index].Position
	pa, pb := t.vertices[a].Position, t.vertices[b].Position
	if orientSign(pa, pb, p) >= 0 {
		return false
	}
	for i, u := range ring {
		w := ring[CircularIndex(i+1, len(ring))]
		pu, pw := t.vertices[u].Position, t.vertices[w].Position
		if u != a && w != a && segmentsIntersect(p, pa, pu, pw) {
			return false
		}
		if u != b && w != b && segmentsIntersect(p, pb, pu, pw) {
			return false
		}
		if u != a && u != b && inTriangle(pu, pa, p, pb) {
			return false
		}
	}
	return true
}

// Extend the ring through a vertex outside it. The ring edges visible from
// the vertex are replaced by two framing edges running to the vertex:
//
//	first ---- last              first       last
//	  |  chain   |       =>        |  \     /  |
//	                               |    p      |
//	       p
//
// Returns false if no ring edge is visible. The vertex is then left loose.
func (t *Topology) attach(index int) bool {
	ring := t.boundary.Vertices()
	n := len(ring)
	p := t.vertices[index].Position

	visible := make([]bool, n)
	best := -1
	bestDistance := math.Inf(1)
	count := 0
	for i, a := range ring {
		b := ring[CircularIndex(i+1, n)]
		if !t.canSee(index, a, b, ring) {
			continue
		}
		visible[i] = true
		count++
		if d := distanceToSegment(p, t.vertices[a].Position, t.vertices[b].Position); d < bestDistance {
			best, bestDistance = i, d
		}
	}
	if best < 0 || count == n {
		t.logger.Debug("vertex cannot see the ring", zap.Int("vertex", index))
		return false
	}

	// Grow the visible run around the closest edge
	start, end := best, best
	for visible[CircularIndex(start-1, n)] {
		start = CircularIndex(start-1, n)
	}
	for visible[CircularIndex(end+1, n)] {
		end = CircularIndex(end+1, n)
	}
	first := ring[start]
	last := ring[CircularIndex(end+1, n)]
	if !t.canConstrain(Real(first), Real(index)) || !t.canConstrain(Real(index), Real(last)) {
		t.logger.Debug("framing edges blocked", zap.Int("vertex", index))
		return false
	}

	var released []EdgeID
	for i := start; ; i = CircularIndex(i+1, n) {
		a, b := ring[i], ring[CircularIndex(i+1, n)]
		if e := t.findEdge(Real(a), Real(b)); e != NoEdge {
			t.setConstrained(e, false)
			released = append(released, e)
		}
		if i != start {
			t.boundary.Remove(a)
		}
		if i == end {
			break
		}
	}

	t.boundary.InsertAfter(first, index)
	t.frameSegment(first, index)
	t.frameSegment(index, last)
	t.RestoreDelaunayProperty(released)
	return true
}

// Drop the ring entirely, releasing its framing edges
func (t *Topology) dissolveRing() []EdgeID {
	var released []EdgeID
	ring := t.boundary.Vertices()
	for i, a := range ring {
		b := ring[CircularIndex(i+1, len(ring))]
		if e := t.findEdge(Real(a), Real(b)); e != NoEdge {
			t.setConstrained(e, false)
			released = append(released, e)
		}
	}
	t.boundary.Clear()
	t.maybeLoose = true
	return released
}
