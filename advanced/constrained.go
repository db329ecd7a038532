package advanced

import "go.uber.org/zap"

// An edge touching a vertex, and the vertex at its other end. The edge may
// point either way: vertices on the border of the mesh have one incoming
// border edge with no outgoing twin.
type spoke struct {
	v VertexRef
	e EdgeID
}

func (t *Topology) spokes(v VertexRef) []spoke {
	fan := t.outgoing(v)
	result := make([]spoke, 0, len(fan)+1)
	for _, e := range fan {
		result = append(result, spoke{t.dest(e), e})
	}
	if len(fan) > 0 {
		incoming := t.prev(fan[len(fan)-1])
		if t.twin(incoming) == NoEdge {
			result = append(result, spoke{t.origin(incoming), incoming})
		}
	}
	return result
}

// One straight piece of a constrained edge, from some vertex up to either the
// target or the first vertex found exactly on the segment.
type channel struct {
	end VertexRef
	// Set when the piece is already an edge of the mesh
	edge EdgeID
	// Triangles the piece crosses, and the vertices on either side of it, in
	// order from the start of the piece.
	tris        []EdgeID
	left, right []VertexRef
}

// Walk from cur toward b. Fails if the way is blocked by a constrained edge.
// Never modifies the mesh.
func (t *Topology) walkSegment(cur, b VertexRef) (channel, bool) {
	pc, pb := t.pos(cur), t.pos(b)
	spokes := t.spokes(cur)
	for _, s := range spokes {
		if s.v == b {
			return channel{end: b, edge: s.e}, true
		}
	}
	for _, s := range spokes {
		px := t.pos(s.v)
		if orientSign(pc, pb, px) == 0 && px.Sub(pc).Dot(pb.Sub(pc)) > 0 {
			return channel{end: s.v, edge: s.e}, true
		}
	}

	// Find the triangle at cur whose wedge the segment leaves through
	start := NoEdge
	for _, e := range t.outgoing(cur) {
		if orientSign(pc, t.pos(t.dest(e)), pb) > 0 && orientSign(pc, t.pos(t.opposite(e)), pb) < 0 {
			start = e
			break
		}
	}
	if start == NoEdge {
		return channel{}, false
	}

	// The crossed edge always runs from the right side of the segment to the left
	result := channel{
		edge:  NoEdge,
		tris:  []EdgeID{start},
		right: []VertexRef{t.dest(start)},
		left:  []VertexRef{t.opposite(start)},
	}
	h := t.next(start)
	for guard := 0; guard <= len(t.edges); guard++ {
		if t.edges[h].Constrained {
			return channel{}, false
		}
		twin := t.twin(h)
		if twin == NoEdge {
			return channel{}, false
		}
		result.tris = append(result.tris, twin)
		opposite := t.opposite(twin)
		if opposite == b {
			result.end = b
			return result, true
		}
		switch orientSign(pc, pb, t.pos(opposite)) {
		case 0:
			result.end = opposite
			return result, true
		case 1:
			result.left = append(result.left, opposite)
			h = t.next(twin)
		default:
			result.right = append(result.right, opposite)
			h = t.prev(twin)
		}
	}
	fatalf("segment walk from %v to %v did not terminate", cur, b)
	return channel{}, false
}

// Whether a constrained edge from a to b can be inserted without crossing an
// existing one
func (t *Topology) canConstrain(a, b VertexRef) bool {
	for cur, steps := a, 0; cur != b; steps++ {
		c, ok := t.walkSegment(cur, b)
		if !ok || steps > len(t.edges) {
			return false
		}
		cur = c.end
	}
	return true
}

// Insert a constrained edge from a to b, which must pass canConstrain.
// Returns the vertices the constraint runs through, a and b included: a vertex
// lying exactly on the segment splits it into collinear pieces.
func (t *Topology) constrain(a, b VertexRef) []VertexRef {
	path := []VertexRef{a}
	for cur := a; cur != b; {
		c, ok := t.walkSegment(cur, b)
		if !ok || len(path) > len(t.edges) {
			fatalf("constrained edge %v-%v became blocked at %v", a, b, cur)
		}
		if c.edge != NoEdge {
			t.setConstrained(c.edge, true)
		} else {
			t.retriangulateChannel(cur, c)
		}
		cur = c.end
		path = append(path, cur)
	}
	return path
}

// Replace the triangles crossed by a piece with the piece itself as a
// constrained edge, ear clipping the pseudo-polygon on each side of it.
//
//	  L2 ------ L1
//	 /  \      / \
//	end ------------ cur
//	  \     /  \   /
//	   R2 ------ R1
func (t *Topology) retriangulateChannel(cur VertexRef, c channel) {
	sides := t.carve(c.tris)

	above := []VertexRef{cur, c.end}
	for i := len(c.left) - 1; i >= 0; i-- {
		above = append(above, c.left[i])
	}
	below := append([]VertexRef{c.end, cur}, c.right...)

	var tris [][3]VertexRef
	for _, polygon := range [][]VertexRef{above, below} {
		pieces, ok := t.earClip(polygon)
		if !ok {
			fatalf("could not triangulate %v beside constrained edge %v-%v", polygon, cur, c.end)
		}
		tris = append(tris, pieces...)
	}

	created := t.sew(tris, sides)
	t.setConstrained(created[key(cur, c.end)], true)
	t.RestoreDelaunayProperty(t.edgeList(created))
}

// Constrain the edge between two vertices, so that Delaunay restoration never
// flips it. If the segment passes exactly through other vertices, it is
// constrained piece by piece. Returns false without changing anything if
// either index is invalid, the indices are equal, or the segment would cross
// an existing constrained edge.
func (t *Topology) InsertConstrainedEdge(a, b int) bool {
	if !t.canMutate("InsertConstrainedEdge") {
		return false
	}
	if !t.validIndex(a) || !t.validIndex(b) || a == b {
		return false
	}
	if !t.canConstrain(Real(a), Real(b)) {
		t.logger.Debug("constrained edge blocked", zap.Int("a", a), zap.Int("b", b))
		return false
	}
	t.constrain(Real(a), Real(b))
	t.commit("InsertConstrainedEdge")
	return true
}

// The chain of constrained edges making up a constraint from a to b
func (t *Topology) constrainedPath(a, b VertexRef) ([]EdgeID, bool) {
	var path []EdgeID
	pb := t.pos(b)
	for cur := a; cur != b; {
		if len(path) > len(t.edges) {
			return nil, false
		}
		pc := t.pos(cur)
		next := spoke{e: NoEdge}
		for _, s := range t.spokes(cur) {
			if !t.edges[s.e].Constrained {
				continue
			}
			if s.v == b {
				next = s
				break
			}
			px := t.pos(s.v)
			if orientSign(pc, pb, px) == 0 && px.Sub(pc).Dot(pb.Sub(pc)) > 0 {
				next = s
			}
		}
		if next.e == NoEdge {
			return nil, false
		}
		path = append(path, next.e)
		cur = next.v
	}
	return path, true
}

// Remove a constraint inserted with InsertConstrainedEdge and restore the
// Delaunay property around it. Returns false if there is no such constraint,
// or if it is part of the boundary ring.
func (t *Topology) RemoveConstrainedEdge(a, b int) bool {
	if !t.canMutate("RemoveConstrainedEdge") {
		return false
	}
	if !t.validIndex(a) || !t.validIndex(b) || a == b {
		return false
	}
	path, ok := t.constrainedPath(Real(a), Real(b))
	if !ok {
		return false
	}
	for _, e := range path {
		if t.isFraming(e) {
			return false
		}
	}
	for _, e := range path {
		t.setConstrained(e, false)
	}
	t.RestoreDelaunayProperty(path)
	t.commit("RemoveConstrainedEdge")
	return true
}

func (t *Topology) validIndex(index int) bool {
	return index >= 0 && index < len(t.vertices)
}
