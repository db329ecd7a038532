package advanced

import (
	"math"

	"github.com/golang/geo/r2"
)

// Find where p falls in the mesh, using the configured hit test radii.
//
// The returned edge depends on the result: for SameVertex it leaves the hit
// vertex, for OnEdge it is the hit edge, and for InsideTriangle it is an edge of
// the containing triangle. It is NoEdge for OutsideTriangulation.
func (t *Topology) LocateClosestTriangle(p r2.Point) (LocateResult, EdgeID) {
	return t.locate(p, NoEdge, t.options.vertexHitRadius, t.options.edgeHitRadius)
}

// Walking point location. Starting from the hint (or the root), step across
// any edge that has p strictly on its right until no such edge remains. The
// edge order is shuffled at each step, which keeps the walk from cycling in
// triangulations that are not Delaunay.
func (t *Topology) locate(p r2.Point, hint EdgeID, vertexRadius, edgeRadius float64) (LocateResult, EdgeID) {
	if !isFinite(p) || !t.options.region.ContainsPoint(p) {
		return OutsideTriangulation, NoEdge
	}

	e := hint
	if !t.live(e) {
		e = t.seed()
	}

	maxSteps := 4*len(t.edges) + 16
	for step := 0; step < maxSteps; step++ {
		tri := t.triangle(e)
		offset := t.rng.Intn(3)
		moved := false
		for k := 0; k < 3; k++ {
			edge := tri[(offset+k)%3]
			if orientSign(t.pos(t.origin(edge)), t.pos(t.dest(edge)), p) < 0 {
				twin := t.twin(edge)
				if twin == NoEdge {
					// Walked off the bounding quad
					return OutsideTriangulation, NoEdge
				}
				e = twin
				moved = true
				break
			}
		}
		if !moved {
			return t.classify(p, e, vertexRadius, edgeRadius)
		}
	}

	// Give up on walking and scan every triangle
	for i := range t.edges {
		e := EdgeID(i)
		if !t.live(e) || !t.isTriangleRepresentative(e) {
			continue
		}
		tri := t.triangle(e)
		if inTriangle(p, t.pos(t.origin(tri[0])), t.pos(t.origin(tri[1])), t.pos(t.origin(tri[2]))) {
			return t.classify(p, e, vertexRadius, edgeRadius)
		}
	}
	return OutsideTriangulation, NoEdge
}

// Classify p against the triangle of e, which contains it. The nearest feature
// wins among the triangle's vertices, then its edges.
func (t *Topology) classify(p r2.Point, e EdgeID, vertexRadius, edgeRadius float64) (LocateResult, EdgeID) {
	tri := t.triangle(e)

	best := NoEdge
	bestDistance := math.Inf(1)
	for _, edge := range tri {
		d := distance(p, t.pos(t.origin(edge)))
		if (d == 0 || d <= vertexRadius) && d < bestDistance {
			best, bestDistance = edge, d
		}
	}
	if best != NoEdge {
		return SameVertex, best
	}

	for _, edge := range tri {
		a, b := t.pos(t.origin(edge)), t.pos(t.dest(edge))
		var d float64
		if orientSign(a, b, p) == 0 {
			d = 0
		} else if edgeRadius > 0 {
			d = distanceToSegment(p, a, b)
		} else {
			continue
		}
		if d <= edgeRadius && d < bestDistance {
			best, bestDistance = edge, d
		}
	}
	if best != NoEdge {
		return OnEdge, best
	}
	return InsideTriangle, e
}
