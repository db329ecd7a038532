package advanced

import (
	"github.com/golang/geo/r2"
	"go.uber.org/zap"
)

// Remove a vertex and retriangulate the hole it leaves. Returns false if the
// index is invalid.
//
// The last vertex is moved into the freed slot, so the index of the vertex
// that was last changes to the removed index.
//
// If the vertex is on the boundary ring, its two ring neighbors are joined
// directly when that leaves a valid ring. Otherwise the ring is rebuilt as the
// convex hull of the remaining vertices.
func (t *Topology) RemoveVertex(index int) bool {
	if !t.canMutate("RemoveVertex") || !t.validIndex(index) {
		return false
	}
	v := Real(index)

	lidA, lidB := -1, -1
	var released []EdgeID
	if t.boundary.Contains(index) {
		a, b := t.boundary.Prev(index), t.boundary.Next(index)
		if t.boundary.Len() > 3 && t.canMerge(a, index, b) {
			released = append(released, t.unframe(index)...)
			lidA, lidB = a, b
		} else {
			released = append(released, t.dissolveRing()...)
		}
	}

	if corner, ok := t.cornerAt(index); ok {
		released = append(released, t.demoteCorner(corner, index)...)
	} else {
		released = append(released, t.lift(v)...)
	}
	t.RestoreDelaunayProperty(released)
	if lidA >= 0 {
		t.frameSegment(lidA, lidB)
	}

	t.swapRemove(index)
	t.maybeLoose = true
	t.reframe()
	t.logger.Debug("removed vertex", zap.Int("vertex", index))
	t.commit("RemoveVertex")
	return true
}

// Take a vertex out of the ring, releasing its two framing edges. Its
// neighbors end up adjacent in the ring, with no framing edge between them yet.
func (t *Topology) unframe(index int) []EdgeID {
	var released []EdgeID
	a, b := t.boundary.Prev(index), t.boundary.Next(index)
	for _, pair := range [][2]int{{a, index}, {index, b}} {
		if e := t.findEdge(Real(pair[0]), Real(pair[1])); e != NoEdge {
			t.setConstrained(e, false)
			released = append(released, e)
		}
	}
	t.boundary.Remove(index)
	return released
}

// Whether ring vertex v can be cut out of the ring by joining its neighbors a
// and b directly. The lid a-b must not touch the rest of the ring or cross a
// constraint, no ring vertex may sit in the triangle it cuts off, and the ring
// must keep a positive orientation.
func (t *Topology) canMerge(a, v, b int) bool {
	pa, pv, pb := t.vertices[a].Position, t.vertices[v].Position, t.vertices[b].Position
	ring := t.boundary.Vertices()

	var remaining []int
	for i, u := range ring {
		w := ring[CircularIndex(i+1, len(ring))]
		pu, pw := t.vertices[u].Position, t.vertices[w].Position
		if u != v {
			remaining = append(remaining, u)
		}
		if u != a && u != b && u != v {
			if orientSign(pa, pv, pb) >= 0 && inTriangle(pu, pa, pv, pb) {
				return false
			}
			if orientSign(pa, pv, pb) < 0 && inTriangle(pu, pa, pb, pv) {
				return false
			}
		}
		if u == a || u == b || w == a || w == b {
			continue
		}
		if segmentsIntersect(pa, pb, pu, pw) {
			return false
		}
	}
	if polygonOrientSign(t.positionsOf(remaining)) <= 0 {
		return false
	}
	return !t.segmentBlocked(pa, pb, v)
}

// Whether the segment p-q properly crosses a constrained edge, ignoring edges
// that touch the given vertex.
func (t *Topology) segmentBlocked(p, q r2.Point, ignore int) bool {
	skip := Real(ignore)
	for i := range t.edges {
		e := EdgeID(i)
		if !t.live(e) || !t.edges[e].Constrained {
			continue
		}
		twin := t.twin(e)
		if twin != NoEdge && twin < e {
			continue
		}
		a, b := t.origin(e), t.dest(e)
		if a == skip || b == skip {
			continue
		}
		if segmentsCross(p, q, t.pos(a), t.pos(b)) {
			return true
		}
	}
	return false
}

// Remove a vertex from the mesh, keeping its index, and ear clip the polygon
// left behind by its star. Returns the new edges.
func (t *Topology) lift(v VertexRef) []EdgeID {
	fan := t.outgoing(v)
	if len(fan) == 0 {
		fatalf("vertex %v is not in the mesh", v)
	}
	polygon := make([]VertexRef, 0, len(fan)+1)
	for _, e := range fan {
		polygon = append(polygon, t.dest(e))
	}
	onBorder := t.twin(fan[0]) == NoEdge
	if onBorder {
		polygon = append(polygon, t.origin(t.prev(fan[len(fan)-1])))
	}

	sides := t.carve(fan)
	if onBorder {
		// The border closes over where the vertex was
		sides[key(polygon[len(polygon)-1], polygon[0])] = side{outer: NoEdge}
	}
	tris, ok := t.earClip(polygon)
	if !ok {
		fatalf("could not triangulate the star of %v", v)
	}
	created := t.sew(tris, sides)
	delete(t.hints, v)
	return t.edgeList(created)
}

// Fill the slot of a removed vertex with the last vertex
func (t *Topology) swapRemove(index int) {
	last := len(t.vertices) - 1
	delete(t.hints, Real(index))
	if index != last {
		t.vertices[index] = t.vertices[last]
		t.relabel(Real(last), Real(index))
		t.boundary.Rename(last, index)
	}
	t.vertices = t.vertices[:last]
}
