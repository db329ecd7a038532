package advanced

import (
	"math"

	"github.com/golang/geo/r2"
	"go.uber.org/zap"
)

// Work left over after a vertex has been pulled out of the mesh and put back:
// constraints to draw again from the moved vertex, and the ring edges to frame
// again if it is a ring vertex.
type repairSet struct {
	vertex      int
	constraints []VertexRef
	onRing      bool
	ringPrev    int
	ringNext    int
}

func (r *repairSet) apply(t *Topology) {
	if r.onRing {
		t.frameSegment(r.ringPrev, r.vertex)
		t.frameSegment(r.vertex, r.ringNext)
	}
	for _, other := range r.constraints {
		if !t.canConstrain(Real(r.vertex), other) {
			t.logger.Debug("could not restore constraint after move",
				zap.Int("vertex", r.vertex), zap.Stringer("other", other))
			continue
		}
		t.constrain(Real(r.vertex), other)
	}
	r.constraints = nil
}

// Move a vertex by positionDelta and shift its UV by uvDelta. Returns false,
// leaving the topology untouched, if the index is invalid, the new position is
// outside the editable region or on another vertex, or the move would fold
// the boundary ring or drag a constraint across another one.
//
// A vertex inside the ring that is moved past it is clamped onto the nearest
// ring edge. Constraints ending at the vertex follow it.
func (t *Topology) TranslateVertex(index int, positionDelta, uvDelta r2.Point) bool {
	if !t.canMutate("TranslateVertex") || !t.validIndex(index) {
		return false
	}
	if !isFinite(positionDelta) || !isFinite(uvDelta) {
		return false
	}
	old := t.vertices[index]
	uv := old.UV.Add(uvDelta)
	if !isFinite(uv) {
		return false
	}
	if positionDelta == (r2.Point{}) {
		if uvDelta == (r2.Point{}) {
			return true
		}
		t.vertices[index].UV = uv
		t.commit("TranslateVertex")
		return true
	}

	target := old.Position.Add(positionDelta)
	if !isFinite(target) || !t.options.region.ContainsPoint(target) {
		return false
	}

	repair := &repairSet{vertex: index}
	edgeRadius := t.options.edgeHitRadius
	if t.boundary.Contains(index) {
		repair.onRing = true
		repair.ringPrev, repair.ringNext = t.boundary.Prev(index), t.boundary.Next(index)
		if !t.canMoveRingVertex(index, target) {
			t.logger.Debug("move would fold the ring", zap.Int("vertex", index))
			return false
		}
	} else if t.boundary.Len() >= 3 && t.ringContains(old.Position) && !t.ringContains(target) {
		target = t.clampToRing(target)
		size := t.options.region.Size()
		edgeRadius = math.Max(edgeRadius, 1e-9*math.Max(size.X, size.Y))
	}
	if t.occupied(target, index) {
		return false
	}

	for _, s := range t.spokes(Real(index)) {
		if !t.edges[s.e].Constrained || t.isFraming(s.e) {
			continue
		}
		if !s.v.IsReal() || t.segmentBlocked(target, t.pos(s.v), index) {
			t.logger.Debug("move would cross a constraint", zap.Int("vertex", index))
			return false
		}
		repair.constraints = append(repair.constraints, s.v)
	}
	if repair.onRing {
		for _, end := range []int{repair.ringPrev, repair.ringNext} {
			if t.segmentBlocked(target, t.vertices[end].Position, index) {
				return false
			}
		}
	}

	// From here on the move cannot fail. A ring vertex keeps its place in the
	// ring while its framing edges are gone.
	var released []EdgeID
	if corner, ok := t.cornerAt(index); ok {
		released = append(released, t.demoteCorner(corner, index)...)
	} else {
		released = append(released, t.lift(Real(index))...)
	}
	t.RestoreDelaunayProperty(released)

	result, e := t.locate(target, NoEdge, t.options.vertexHitRadius, edgeRadius)
	if result == OnEdge && !t.canSnap(index, target, e, repair) {
		result, e = t.locate(target, e, 0, 0)
	}
	t.vertices[index].Position = target
	t.vertices[index].UV = uv
	if !t.placeLocated(index, result, e) {
		fatalf("could not place vertex %d at %v after checking the move", index, target)
	}
	repair.apply(t)

	t.maybeLoose = true
	t.reframe()
	t.logger.Debug("translated vertex", zap.Int("vertex", index), zap.Any("position", t.vertices[index].Position))
	t.commit("TranslateVertex")
	return true
}

// Whether the vertex being moved to target may snap onto edge e of the mesh it
// was lifted from. The checks made on target are repeated for the snapped
// point, since it can lie on the far side of a constraint or fold the ring.
// A ring vertex never snaps onto a framing edge, as that would put it into the
// ring twice.
func (t *Topology) canSnap(index int, target r2.Point, e EdgeID, repair *repairSet) bool {
	if repair.onRing && t.isFraming(e) {
		return false
	}
	pa, pb := t.pos(t.origin(e)), t.pos(t.dest(e))
	snapped := target
	if orientSign(pa, pb, target) != 0 {
		snapped = projectOntoSegment(target, pa, pb)
	}
	if snapped == target {
		return true
	}
	if !t.options.region.ContainsPoint(snapped) || t.occupied(snapped, index) {
		return false
	}
	if repair.onRing {
		if !t.canMoveRingVertex(index, snapped) {
			return false
		}
		for _, end := range []int{repair.ringPrev, repair.ringNext} {
			if t.segmentBlocked(snapped, t.vertices[end].Position, index) {
				return false
			}
		}
	}
	for _, other := range repair.constraints {
		if t.segmentBlocked(snapped, t.pos(other), index) {
			return false
		}
	}
	return true
}

// Whether some vertex other than skip sits at p, as far as placement is
// concerned
func (t *Topology) occupied(p r2.Point, skip int) bool {
	for i, v := range t.vertices {
		if i == skip {
			continue
		}
		if d := distance(p, v.Position); d == 0 || d <= t.options.vertexHitRadius {
			return true
		}
	}
	return false
}

// The closest point to p on the ring
func (t *Topology) clampToRing(p r2.Point) r2.Point {
	ring := t.ringPolygon()
	best := p
	bestDistance := math.Inf(1)
	for i, a := range ring {
		b := ring[CircularIndex(i+1, len(ring))]
		q := projectOntoSegment(p, a, b)
		if d := distance(p, q); d < bestDistance {
			best, bestDistance = q, d
		}
	}
	return best
}

// Whether ring vertex index can move to target without the ring crossing or
// overlapping itself, or turning clockwise.
func (t *Topology) canMoveRingVertex(index int, target r2.Point) bool {
	ring := t.boundary.Vertices()
	moved := make([]r2.Point, len(ring))
	for i, v := range ring {
		if v == index {
			moved[i] = target
		} else {
			moved[i] = t.vertices[v].Position
		}
	}
	if polygonOrientSign(moved) <= 0 {
		return false
	}

	prev, next := t.boundary.Prev(index), t.boundary.Next(index)
	pPrev, pNext := t.vertices[prev].Position, t.vertices[next].Position
	if orientSign(pPrev, target, pNext) == 0 && pPrev.Sub(target).Dot(pNext.Sub(target)) > 0 {
		return false
	}

	// Whether the ring edge u-w, which shares the end vertex with the new edge
	// end-target, folds back along it
	overlaps := func(pEnd, pOther r2.Point) bool {
		return orientSign(pEnd, pOther, target) == 0 && target.Sub(pEnd).Dot(pOther.Sub(pEnd)) > 0
	}
	for _, end := range []int{prev, next} {
		pEnd := t.vertices[end].Position
		for i, u := range ring {
			w := ring[CircularIndex(i+1, len(ring))]
			if u == index || w == index {
				continue
			}
			pu, pw := t.vertices[u].Position, t.vertices[w].Position
			switch end {
			case u:
				if overlaps(pEnd, pw) {
					return false
				}
			case w:
				if overlaps(pEnd, pu) {
					return false
				}
			default:
				if segmentsIntersect(pEnd, target, pu, pw) {
					return false
				}
			}
		}
	}
	return true
}
