package advanced

import (
	"github.com/golang/geo/r2"
	"github.com/osuushi/cdt/predicates"
	"go.uber.org/zap"
)

// Add a vertex to the triangulation. Returns false, leaving the topology
// untouched, if the position is not finite, lies outside the editable region,
// or coincides with an existing vertex.
//
// A vertex inside the boundary ring becomes part of the triangulation
// directly. A vertex outside it extends the ring to take it in, if it can see
// the ring. The first three non-collinear vertices create the ring.
func (t *Topology) AddVertex(v Vertex) bool {
	if !t.canMutate("AddVertex") {
		return false
	}
	if !isFinite(v.Position) || !isFinite(v.UV) {
		return false
	}

	index := len(t.vertices)
	t.vertices = append(t.vertices, v)
	if !t.place(index, t.options.edgeHitRadius) {
		t.vertices = t.vertices[:index]
		t.logger.Debug("rejected vertex", zap.Any("position", v.Position))
		return false
	}
	t.frame(index)
	t.commit("AddVertex")
	return true
}

// Put the real vertex with the given index into the mesh at its current
// position. The edge radius is a parameter rather than the configured one so
// that translation can force a tolerance when clamping onto the ring.
func (t *Topology) place(index int, edgeRadius float64) bool {
	result, e := t.locate(t.vertices[index].Position, NoEdge, t.options.vertexHitRadius, edgeRadius)
	return t.placeLocated(index, result, e)
}

// Like place, with the location already found
func (t *Topology) placeLocated(index int, result LocateResult, e EdgeID) bool {
	p := t.vertices[index].Position
	if result == OnEdge {
		if t.splitEdge(index, e) {
			return true
		}
		// Snapping onto the edge would have inverted a triangle, so settle for
		// wherever the point exactly is.
		result, e = t.locate(p, e, 0, 0)
		if result == OnEdge {
			if !t.splitEdge(index, e) {
				fatalf("cannot split edge %v at exact point %v", e, p)
			}
			return true
		}
	}

	switch result {
	case SameVertex:
		hit := t.origin(e)
		if hit.IsReal() {
			return false
		}
		t.promoteCorner(hit.Index, index)
		return true
	case OnEdge:
		return true
	case InsideTriangle:
		t.insertInTriangle(Real(index), e)
		return true
	}
	return false
}

// Split e (and its twin's triangle, if any) at the vertex. A point off the
// edge's line is projected onto it first. Returns false without touching
// anything if the split would leave a triangle with non-positive area.
//
//	   c                 c
//	  / \               /|\
//	 /   \             / | \
//	a --e-- b   =>    a--v--b
//	 \   /             \ | /
//	  \ /               \|/
//	   d                 d
func (t *Topology) splitEdge(index int, e EdgeID) bool {
	v := Real(index)
	a, b := t.origin(e), t.dest(e)
	c := t.opposite(e)
	pa, pb, pc := t.pos(a), t.pos(b), t.pos(c)
	p := t.vertices[index].Position
	if orientSign(pa, pb, p) != 0 {
		p = projectOntoSegment(p, pa, pb)
	}

	if orientSign(pa, p, pc) <= 0 || orientSign(p, pb, pc) <= 0 {
		return false
	}
	f := t.twin(e)
	var d VertexRef
	if f != NoEdge {
		d = t.opposite(f)
		pd := t.pos(d)
		if orientSign(pb, p, pd) <= 0 || orientSign(p, pa, pd) <= 0 {
			return false
		}
	}

	t.vertices[index].Position = p
	constrained := t.edges[e].Constrained
	tris := []EdgeID{e}
	if f != NoEdge {
		tris = append(tris, f)
	}
	sides := t.carve(tris)

	newTris := [][3]VertexRef{{a, v, c}, {v, b, c}}
	if f != NoEdge {
		newTris = append(newTris, [3]VertexRef{b, v, d}, [3]VertexRef{v, a, d})
	} else {
		sides[key(a, v)] = side{outer: NoEdge, constrained: constrained}
		sides[key(v, b)] = side{outer: NoEdge, constrained: constrained}
	}
	created := t.sew(newTris, sides)
	if constrained {
		t.setConstrained(created[key(a, v)], true)
		t.setConstrained(created[key(v, b)], true)
	}

	if a.IsReal() && b.IsReal() && t.boundary.IsFraming(a.Index, b.Index) {
		if t.boundary.Next(a.Index) == b.Index {
			t.boundary.InsertAfter(a.Index, index)
		} else {
			t.boundary.InsertAfter(b.Index, index)
		}
	}

	t.RestoreDelaunayProperty(t.edgeList(created))
	return true
}

type cavity struct {
	tris   []EdgeID
	member map[EdgeID]bool
}

func (c *cavity) add(t *Topology, e EdgeID) {
	c.tris = append(c.tris, e)
	for _, edge := range t.triangle(e) {
		c.member[edge] = true
	}
}

// Bowyer–Watson insertion of a vertex strictly inside e's triangle: remove
// every triangle whose circumcircle contains the vertex, reachable without
// crossing a constrained edge, and fan the hole out from the vertex.
func (t *Topology) insertInTriangle(v VertexRef, e EdgeID) {
	p := t.pos(v)
	c := t.cavity(p, e)
	outline, ok := t.cavityOutline(c, p)
	if !ok {
		// The cavity is not star-shaped from p. Split the containing triangle
		// and let flipping do the rest.
		t.logger.Debug("falling back to triangle split", zap.Stringer("vertex", v))
		c = &cavity{member: make(map[EdgeID]bool)}
		c.add(t, e)
		tri := t.triangle(e)
		outline = []VertexRef{t.origin(tri[0]), t.origin(tri[1]), t.origin(tri[2])}
	}

	sides := t.carve(c.tris)
	fan := make([][3]VertexRef, len(outline))
	for i, a := range outline {
		fan[i] = [3]VertexRef{a, outline[CircularIndex(i+1, len(outline))], v}
	}
	created := t.sew(fan, sides)
	t.RestoreDelaunayProperty(t.edgeList(created))
}

func (t *Topology) cavity(p r2.Point, e EdgeID) *cavity {
	c := &cavity{member: make(map[EdgeID]bool)}
	c.add(t, e)
	queue := []EdgeID{e}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, edge := range t.triangle(cur) {
			if t.edges[edge].Constrained {
				continue
			}
			twin := t.twin(edge)
			if twin == NoEdge || c.member[twin] {
				continue
			}
			tri := t.triangle(twin)
			if predicates.InCircle(t.pos(t.origin(tri[0])), t.pos(t.origin(tri[1])), t.pos(t.origin(tri[2])), p) <= 0 {
				continue
			}
			// Never swallow a constrained edge whole
			swallows := false
			for _, g := range tri {
				if t.edges[g].Constrained && t.twin(g) != NoEdge && c.member[t.twin(g)] {
					swallows = true
				}
			}
			if swallows {
				continue
			}
			c.add(t, twin)
			queue = append(queue, twin)
		}
	}
	return c
}

// The cavity's boundary as a counterclockwise polygon. Fails unless the
// boundary is a simple cycle and every boundary edge has p strictly on its
// left.
func (t *Topology) cavityOutline(c *cavity, p r2.Point) ([]VertexRef, bool) {
	from := make(map[VertexRef]EdgeID)
	count := 0
	for edge := range c.member {
		twin := t.twin(edge)
		if twin != NoEdge && c.member[twin] {
			continue
		}
		origin := t.origin(edge)
		if _, ok := from[origin]; ok {
			return nil, false
		}
		if orientSign(t.pos(origin), t.pos(t.dest(edge)), p) <= 0 {
			return nil, false
		}
		from[origin] = edge
		count++
	}
	// A vertex with no boundary edge would be swallowed by the fan
	for edge := range c.member {
		if _, ok := from[t.origin(edge)]; !ok {
			return nil, false
		}
	}

	// Start from the cavity's first triangle so the outline order is stable
	var start VertexRef
	found := false
	for _, edge := range t.triangle(c.tris[0]) {
		if _, ok := from[t.origin(edge)]; ok {
			start, found = t.origin(edge), true
			break
		}
	}
	if !found {
		return nil, false
	}

	outline := make([]VertexRef, 0, count)
	v := start
	for {
		edge, ok := from[v]
		if !ok {
			return nil, false
		}
		outline = append(outline, v)
		v = t.dest(edge)
		if v == start {
			break
		}
		if len(outline) > count {
			return nil, false
		}
	}
	return outline, len(outline) == count
}
