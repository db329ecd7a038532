package advanced

import (
	"iter"

	"github.com/bits-and-blooms/bitset"
)

// Arena of half-edges. Slots of detached edges go on a free list and are
// reused by later allocations, so an EdgeID is only meaningful while its edge
// is live.
type mesh struct {
	edges []HalfEdge
	free  []EdgeID
	// Some edge leaving each vertex. Entries go stale as the mesh changes, so
	// they are verified on every lookup.
	hints map[VertexRef]EdgeID
}

func newMesh() mesh {
	return mesh{hints: make(map[VertexRef]EdgeID)}
}

func (m *mesh) alloc(origin VertexRef) EdgeID {
	var e EdgeID
	if n := len(m.free); n > 0 {
		e = m.free[n-1]
		m.free = m.free[:n-1]
	} else {
		e = EdgeID(len(m.edges))
		m.edges = append(m.edges, HalfEdge{})
	}
	m.edges[e] = HalfEdge{Origin: origin, Next: NoEdge, Twin: NoEdge}
	m.hints[origin] = e
	return e
}

// Detach an edge: null its Next, break the twin link and recycle the slot.
func (m *mesh) release(e EdgeID) {
	if twin := m.edges[e].Twin; twin != NoEdge && m.edges[twin].Twin == e {
		m.edges[twin].Twin = NoEdge
	}
	m.edges[e] = HalfEdge{Next: NoEdge, Twin: NoEdge}
	m.free = append(m.free, e)
}

func (m *mesh) live(e EdgeID) bool {
	return e >= 0 && int(e) < len(m.edges) && m.edges[e].Next != NoEdge
}

func (m *mesh) next(e EdgeID) EdgeID {
	return m.edges[e].Next
}

// Triangles are 3-cycles, so the previous edge is two steps ahead.
func (m *mesh) prev(e EdgeID) EdgeID {
	return m.edges[m.edges[e].Next].Next
}

func (m *mesh) twin(e EdgeID) EdgeID {
	return m.edges[e].Twin
}

func (m *mesh) origin(e EdgeID) VertexRef {
	return m.edges[e].Origin
}

func (m *mesh) dest(e EdgeID) VertexRef {
	return m.edges[m.edges[e].Next].Origin
}

// The vertex of e's triangle that is not on e
func (m *mesh) opposite(e EdgeID) VertexRef {
	return m.edges[m.prev(e)].Origin
}

func (m *mesh) triangle(e EdgeID) [3]EdgeID {
	e1 := m.edges[e].Next
	return [3]EdgeID{e, e1, m.edges[e1].Next}
}

func (m *mesh) link(e, f EdgeID) {
	m.edges[e].Twin = f
	if f != NoEdge {
		m.edges[f].Twin = e
	}
}

// Set the constrained flag on both halves of an edge
func (m *mesh) setConstrained(e EdgeID, constrained bool) {
	m.edges[e].Constrained = constrained
	if twin := m.edges[e].Twin; twin != NoEdge {
		m.edges[twin].Constrained = constrained
	}
}

func (m *mesh) makeTriangle(a, b, c VertexRef) [3]EdgeID {
	e0 := m.alloc(a)
	e1 := m.alloc(b)
	e2 := m.alloc(c)
	m.edges[e0].Next = e1
	m.edges[e1].Next = e2
	m.edges[e2].Next = e0
	return [3]EdgeID{e0, e1, e2}
}

func (m *mesh) removeTriangle(e EdgeID) {
	for _, edge := range m.triangle(e) {
		m.release(edge)
	}
}

// Any live edge leaving v, or NoEdge if v is not in the mesh
func (m *mesh) edgeFrom(v VertexRef) EdgeID {
	if e, ok := m.hints[v]; ok && m.live(e) && m.edges[e].Origin == v {
		return e
	}
	for i := range m.edges {
		e := EdgeID(i)
		if m.live(e) && m.edges[e].Origin == v {
			m.hints[v] = e
			return e
		}
	}
	delete(m.hints, v)
	return NoEdge
}

// Find the half-edge from a to b, if the mesh has one
func (m *mesh) findEdge(a, b VertexRef) EdgeID {
	for _, e := range m.outgoing(a) {
		if m.dest(e) == b {
			return e
		}
	}
	return NoEdge
}

// Rename a vertex throughout the mesh
func (m *mesh) relabel(from, to VertexRef) {
	for i := range m.edges {
		if m.edges[i].Next != NoEdge && m.edges[i].Origin == from {
			m.edges[i].Origin = to
		}
	}
	if e, ok := m.hints[from]; ok {
		m.hints[to] = e
		delete(m.hints, from)
	}
}

// Edges leaving v in counterclockwise order. For a vertex on the outer border
// of the mesh, the first edge is the border edge leaving v, and the fan ends
// at the incoming border edge.
//
//	   x2    x1
//	    \    /
//	     \  /
//	x3 -- v -- x0
func (m *mesh) outgoing(v VertexRef) []EdgeID {
	start := m.edgeFrom(v)
	if start == NoEdge {
		return nil
	}

	// Rotate clockwise until we hit the border or come back around
	first := start
	for guard := 0; ; guard++ {
		if guard > len(m.edges) {
			fatalf("vertex %v has a corrupt edge fan", v)
		}
		twin := m.edges[first].Twin
		if twin == NoEdge {
			break
		}
		cw := m.edges[twin].Next
		if cw == start {
			first = start
			break
		}
		first = cw
	}

	result := []EdgeID{first}
	for e := first; ; {
		if len(result) > len(m.edges) {
			fatalf("vertex %v has a corrupt edge fan", v)
		}
		ccw := m.edges[m.prev(e)].Twin
		if ccw == NoEdge || ccw == first {
			break
		}
		result = append(result, ccw)
		e = ccw
	}
	return result
}

// An edge iterator walks every edge reachable from a root exactly once,
// breadth first, crossing both next and twin links. Behavior is undefined if
// the mesh is modified during iteration.
type EdgeIterator struct {
	mesh  *mesh
	queue []EdgeID
	seen  *bitset.BitSet
}

func (m *mesh) newEdgeIterator(root EdgeID) *EdgeIterator {
	it := &EdgeIterator{mesh: m, seen: bitset.New(uint(len(m.edges)))}
	if m.live(root) {
		it.queue = append(it.queue, root)
		it.seen.Set(uint(root))
	}
	return it
}

// The next edge, or NoEdge once the walk is done
func (it *EdgeIterator) Next() EdgeID {
	if len(it.queue) == 0 {
		return NoEdge
	}
	e := it.queue[0]
	it.queue = it.queue[1:]
	edge := it.mesh.edges[e]
	for _, neighbor := range []EdgeID{edge.Next, edge.Twin} {
		if neighbor == NoEdge || it.seen.Test(uint(neighbor)) {
			continue
		}
		it.seen.Set(uint(neighbor))
		it.queue = append(it.queue, neighbor)
	}
	return e
}

func (m *mesh) iterateEdges(root EdgeID) iter.Seq[EdgeID] {
	return func(yield func(EdgeID) bool) {
		it := m.newEdgeIterator(root)
		for e := it.Next(); e != NoEdge; e = it.Next() {
			if !yield(e) {
				return
			}
		}
	}
}

// One edge per triangle: the one with the smallest id
func (m *mesh) isTriangleRepresentative(e EdgeID) bool {
	e1 := m.edges[e].Next
	e2 := m.edges[e1].Next
	return e < e1 && e < e2
}

func (m *mesh) liveEdgeCount() int {
	return len(m.edges) - len(m.free)
}
