package advanced

import (
	"slices"

	"github.com/golang/geo/r2"
)

// The far side of a polygon edge that is about to be retriangulated: the
// half-edge across it (NoEdge on the border of the mesh) and its constraint.
type side struct {
	outer       EdgeID
	constrained bool
}

// Record the outer sides of a set of triangles about to be removed. Edges
// shared between two removed triangles are skipped.
func (t *Topology) collectSides(tris []EdgeID) map[dirKey]side {
	removed := make(map[EdgeID]bool, 3*len(tris))
	for _, e := range tris {
		for _, edge := range t.triangle(e) {
			removed[edge] = true
		}
	}
	sides := make(map[dirKey]side)
	for edge := range removed {
		twin := t.twin(edge)
		if twin != NoEdge && removed[twin] {
			continue
		}
		sides[key(t.origin(edge), t.dest(edge))] = side{outer: twin, constrained: t.edges[edge].Constrained}
	}
	return sides
}

// Create triangles and stitch them into the mesh. New edges are twinned with
// each other where they meet, and with the recorded outer sides otherwise.
// Returns every new edge, keyed by its endpoints.
func (t *Topology) sew(tris [][3]VertexRef, sides map[dirKey]side) map[dirKey]EdgeID {
	created := make(map[dirKey]EdgeID, 3*len(tris))
	for _, tri := range tris {
		edges := t.makeTriangle(tri[0], tri[1], tri[2])
		for i, e := range edges {
			k := key(tri[i], tri[(i+1)%3])
			if _, ok := created[k]; ok {
				fatalf("duplicate half-edge %v-%v while sewing", k[0], k[1])
			}
			created[k] = e
		}
	}

	for k, e := range created {
		if t.twin(e) != NoEdge {
			continue
		}
		if reverse, ok := created[key(k[1], k[0])]; ok {
			t.link(e, reverse)
			continue
		}
		if s, ok := sides[k]; ok {
			t.link(e, s.outer)
			t.setConstrained(e, s.constrained)
		}
	}
	return created
}

// Remove triangles, capturing their outline first
func (t *Topology) carve(tris []EdgeID) map[dirKey]side {
	sides := t.collectSides(tris)
	for _, e := range tris {
		t.removeTriangle(e)
	}
	return sides
}

func (t *Topology) edgeList(created map[dirKey]EdgeID) []EdgeID {
	result := make([]EdgeID, 0, len(created))
	for _, e := range created {
		result = append(result, e)
	}
	slices.Sort(result)
	return result
}

// Ear clipping for a simple counterclockwise polygon, in O(n²). A vertex is an
// ear when its corner is strictly convex and no other polygon vertex lies in or
// on the triangle it cuts off. Returns false if the polygon has no ear left
// before it is done, which only happens for polygons that are not simple.
func (t *Topology) earClip(polygon []VertexRef) ([][3]VertexRef, bool) {
	remaining := append([]VertexRef(nil), polygon...)
	var result [][3]VertexRef

	for len(remaining) > 3 {
		found := false
		n := len(remaining)
		for i := 0; i < n; i++ {
			prev := remaining[CircularIndex(i-1, n)]
			cur := remaining[i]
			next := remaining[CircularIndex(i+1, n)]
			if !t.isEar(prev, cur, next, remaining) {
				continue
			}
			result = append(result, [3]VertexRef{prev, cur, next})
			remaining = append(remaining[:i], remaining[i+1:]...)
			found = true
			break
		}
		if !found {
			return nil, false
		}
	}

	if orientSign(t.pos(remaining[0]), t.pos(remaining[1]), t.pos(remaining[2])) <= 0 {
		return nil, false
	}
	return append(result, [3]VertexRef{remaining[0], remaining[1], remaining[2]}), true
}

func (t *Topology) isEar(prev, cur, next VertexRef, polygon []VertexRef) bool {
	a, b, c := t.pos(prev), t.pos(cur), t.pos(next)
	if orientSign(a, b, c) <= 0 {
		return false
	}
	for _, v := range polygon {
		if v == prev || v == cur || v == next {
			continue
		}
		if inTriangle(t.pos(v), a, b, c) {
			return false
		}
	}
	return true
}

func (t *Topology) positions(refs []VertexRef) []r2.Point {
	points := make([]r2.Point, len(refs))
	for i, v := range refs {
		points[i] = t.pos(v)
	}
	return points
}
