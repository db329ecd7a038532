package advanced

import (
	"sort"

	"go.uber.org/zap"
)

// Convex hull of the given vertices, counterclockwise, using Andrew's monotone
// chain. Vertices lying exactly on a hull edge are included, so that every
// hull edge can become an edge of the mesh. Fewer than three results means the
// vertices are collinear.
func (t *Topology) hull(indices []int) []int {
	if len(indices) < 3 {
		return nil
	}
	sorted := append([]int(nil), indices...)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := t.vertices[sorted[i]].Position, t.vertices[sorted[j]].Position
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Y < b.Y
	})

	chain := func(order []int) []int {
		var result []int
		for _, v := range order {
			for len(result) >= 2 &&
				orientSign(t.vertices[result[len(result)-2]].Position, t.vertices[result[len(result)-1]].Position, t.vertices[v].Position) <= 0 {
				result = result[:len(result)-1]
			}
			result = append(result, v)
		}
		return result
	}

	lower := chain(sorted)
	reversed := make([]int, len(sorted))
	for i, v := range sorted {
		reversed[len(sorted)-1-i] = v
	}
	upper := chain(reversed)
	corners := append(lower[:len(lower)-1], upper[:len(upper)-1]...)
	if len(corners) < 3 {
		return nil
	}

	// Put back the vertices lying on hull edges
	var result []int
	for i, a := range corners {
		b := corners[CircularIndex(i+1, len(corners))]
		pa, pb := t.vertices[a].Position, t.vertices[b].Position
		var between []int
		for _, v := range indices {
			if v == a || v == b {
				continue
			}
			pv := t.vertices[v].Position
			if orientSign(pa, pb, pv) == 0 && inSegmentBox(pv, pa, pb) {
				between = append(between, v)
			}
		}
		sort.Slice(between, func(i, j int) bool {
			return distance(pa, t.vertices[between[i]].Position) < distance(pa, t.vertices[between[j]].Position)
		})
		result = append(result, a)
		result = append(result, between...)
	}
	return result
}

// Extend the ring to its convex hull by filling in pockets one triangle at a
// time. A pocket is filled at a reflex ring vertex when the lid across it
// touches nothing else on the ring and crosses no constraint. Returns false if
// there is no ring. An already convex ring is left alone without bumping the
// version or notifying handlers.
func (t *Topology) ToConvexHull() bool {
	if !t.canMutate("ToConvexHull") {
		return false
	}
	if t.boundary.Len() < 3 {
		return false
	}
	filled := 0
	for limit := len(t.vertices) * len(t.vertices); filled <= limit && t.fillPocket(); {
		filled++
	}
	if filled == 0 {
		return true
	}
	t.reframe()
	t.logger.Debug("filled ring pockets", zap.Int("count", filled))
	t.commit("ToConvexHull")
	return true
}

func (t *Topology) fillPocket() bool {
	ring := t.boundary.Vertices()
	n := len(ring)
	if n <= 3 {
		return false
	}
	for i, v := range ring {
		a := ring[CircularIndex(i-1, n)]
		c := ring[CircularIndex(i+1, n)]
		pa, pv, pc := t.vertices[a].Position, t.vertices[v].Position, t.vertices[c].Position
		if orientSign(pa, pv, pc) >= 0 {
			continue
		}
		if !t.canMerge(a, v, c) || !t.canConstrain(Real(a), Real(c)) {
			continue
		}

		var released []EdgeID
		for _, pair := range [][2]int{{a, v}, {v, c}} {
			if e := t.findEdge(Real(pair[0]), Real(pair[1])); e != NoEdge {
				t.setConstrained(e, false)
				released = append(released, e)
			}
		}
		t.boundary.Remove(v)
		t.frameSegment(a, c)
		t.RestoreDelaunayProperty(released)
		return true
	}
	return false
}
