package advanced

// The boundary ring: a counterclockwise cycle of real vertex indices. The
// edges between consecutive ring vertices are the framing edges, and the faces
// of the triangulation are exactly the triangles the ring encloses.
//
// All operations are O(1) except Vertices, which walks the ring.
type Boundary struct {
	next  map[int]int
	prev  map[int]int
	first int
}

func NewBoundary() *Boundary {
	return &Boundary{next: make(map[int]int), prev: make(map[int]int)}
}

func (b *Boundary) Len() int {
	return len(b.next)
}

func (b *Boundary) Contains(v int) bool {
	_, ok := b.next[v]
	return ok
}

func (b *Boundary) Next(v int) int {
	return b.next[v]
}

func (b *Boundary) Prev(v int) int {
	return b.prev[v]
}

// Replace the ring with the given counterclockwise cycle
func (b *Boundary) Reset(cycle []int) {
	b.Clear()
	for i, v := range cycle {
		w := cycle[CircularIndex(i+1, len(cycle))]
		b.next[v] = w
		b.prev[w] = v
	}
	if len(cycle) > 0 {
		b.first = cycle[0]
	}
}

func (b *Boundary) Clear() {
	b.next = make(map[int]int)
	b.prev = make(map[int]int)
}

// Insert v directly after a
func (b *Boundary) InsertAfter(a, v int) {
	if !b.Contains(a) {
		fatalf("ring does not contain %d", a)
	}
	if b.Contains(v) {
		fatalf("ring already contains %d", v)
	}
	after := b.next[a]
	b.next[a] = v
	b.prev[v] = a
	b.next[v] = after
	b.prev[after] = v
}

func (b *Boundary) Remove(v int) {
	if !b.Contains(v) {
		return
	}
	p, n := b.prev[v], b.next[v]
	delete(b.next, v)
	delete(b.prev, v)
	if p == v {
		// That was the last element
		return
	}
	b.next[p] = n
	b.prev[n] = p
	if b.first == v {
		b.first = n
	}
}

// Give a ring vertex a new index, following a swap-remove in the vertex list
func (b *Boundary) Rename(from, to int) {
	if !b.Contains(from) {
		return
	}
	if b.Contains(to) {
		fatalf("cannot rename %d to %d, which is already in the ring", from, to)
	}
	p, n := b.prev[from], b.next[from]
	if p == from {
		p, n = to, to
	}
	delete(b.next, from)
	delete(b.prev, from)
	b.next[to] = n
	b.prev[to] = p
	b.next[p] = to
	b.prev[n] = to
	if b.first == from {
		b.first = to
	}
}

// The ring in counterclockwise order
func (b *Boundary) Vertices() []int {
	if b.Len() == 0 {
		return nil
	}
	result := make([]int, 0, b.Len())
	v := b.first
	for {
		result = append(result, v)
		v = b.next[v]
		if v == b.first || len(result) > b.Len() {
			break
		}
	}
	return result
}

// Whether a to b is a framing edge, in either direction
func (b *Boundary) IsFraming(a, c int) bool {
	if !b.Contains(a) || !b.Contains(c) {
		return false
	}
	return b.next[a] == c || b.next[c] == a
}
