package advanced

import (
	"iter"
	"sort"
)

// The face of the triangle containing e, which must be enclosed by the ring,
// starting from the triangle's representative edge.
func (t *Topology) face(e EdgeID) Face {
	tri := t.triangle(e)
	start := 0
	for i, edge := range tri {
		if t.isTriangleRepresentative(edge) {
			start = i
		}
	}
	var f Face
	for i := 0; i < 3; i++ {
		edge := tri[(start+i)%3]
		origin := t.origin(edge)
		if !origin.IsReal() {
			fatalf("face of %v has synthetic vertex %v", edge, origin)
		}
		f.Vertices[i] = origin.Index
		f.Edges[i] = EdgeInfo{IsConstrained: t.edges[edge].Constrained, IsFraming: t.isFraming(edge)}
	}
	return f
}

// The faces of the triangulation with details about their edges. Triangles
// outside the ring, and the scaffolding between the ring and the bounding
// figure, are left out. The topology must not be modified during iteration.
func (t *Topology) FacesWithInfo() iter.Seq[Face] {
	return func(yield func(Face) bool) {
		if t.boundary.Len() < 3 {
			return
		}
		inside := t.insideEdges()
		for e := range t.iterateEdges(t.seed()) {
			if !inside.Test(uint(e)) || !t.isTriangleRepresentative(e) {
				continue
			}
			if !yield(t.face(e)) {
				return
			}
		}
	}
}

// The faces of the triangulation as counterclockwise vertex index triples
func (t *Topology) Faces() iter.Seq[[3]int] {
	return func(yield func([3]int) bool) {
		for f := range t.FacesWithInfo() {
			if !yield(f.Vertices) {
				return
			}
		}
	}
}

func (t *Topology) FaceCount() int {
	count := 0
	for range t.FacesWithInfo() {
		count++
	}
	return count
}

// Every constrained edge between two real vertices, once each, including the
// framing edges of the ring. Sorted by endpoints, with A < B.
func (t *Topology) ConstrainedEdges() []Edge {
	var result []Edge
	for i := range t.edges {
		e := EdgeID(i)
		if !t.live(e) || !t.edges[e].Constrained {
			continue
		}
		if twin := t.twin(e); twin != NoEdge && twin < e {
			continue
		}
		a, b := t.origin(e), t.dest(e)
		if !a.IsReal() || !b.IsReal() {
			continue
		}
		edge := Edge{A: a.Index, B: b.Index, IsFraming: t.isFraming(e)}
		if edge.A > edge.B {
			edge.A, edge.B = edge.B, edge.A
		}
		result = append(result, edge)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].A != result[j].A {
			return result[i].A < result[j].A
		}
		return result[i].B < result[j].B
	})
	return result
}

// Number of edges between real vertices that belong to some face
func (t *Topology) EdgeCount() int {
	inside := t.insideEdges()
	count := 0
	for i := range t.edges {
		e := EdgeID(i)
		if !t.live(e) || !inside.Test(uint(e)) {
			continue
		}
		// Count interior edges once, from the lower id
		if twin := t.twin(e); twin != NoEdge && inside.Test(uint(twin)) && twin < e {
			continue
		}
		count++
	}
	return count
}
