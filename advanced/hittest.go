package advanced

import (
	"fmt"

	"github.com/golang/geo/r2"
)

type HitKind int

const (
	HitNone HitKind = iota
	HitVertex
	HitEdge
	HitFace
)

func (k HitKind) String() string {
	switch k {
	case HitNone:
		return "None"
	case HitVertex:
		return "Vertex"
	case HitEdge:
		return "Edge"
	case HitFace:
		return "Face"
	}
	return fmt.Sprintf("HitKind(%d)", int(k))
}

// Result of a hit test. Which fields are set depends on Kind: Vertex for
// HitVertex, Edge and Constrained for HitEdge, and Face for HitFace.
type Hit struct {
	Kind        HitKind
	Vertex      int
	Edge        Edge
	Constrained bool
	Face        [3]int
}

// Find the feature of the triangulation under p, preferring vertices within
// vertexRadius, then edges within edgeRadius, then the face containing p.
// Synthetic vertices, edges touching them, and anything outside the boundary
// ring are never hit, apart from real vertices left outside the ring.
func (t *Topology) HitTest(p r2.Point, vertexRadius, edgeRadius float64) Hit {
	result, e := t.locate(p, NoEdge, vertexRadius, edgeRadius)
	if result == SameVertex {
		if v := t.origin(e); v.IsReal() {
			return Hit{Kind: HitVertex, Vertex: v.Index}
		}
		// Close to a corner only. Look again for an edge or face.
		result, e = t.locate(p, e, 0, edgeRadius)
	}

	inside := t.insideEdges()
	switch result {
	case OnEdge:
		a, b := t.origin(e), t.dest(e)
		twin := t.twin(e)
		enclosed := inside.Test(uint(e)) || (twin != NoEdge && inside.Test(uint(twin)))
		if a.IsReal() && b.IsReal() && enclosed {
			return Hit{
				Kind:        HitEdge,
				Edge:        Edge{A: a.Index, B: b.Index, IsFraming: t.isFraming(e)},
				Constrained: t.edges[e].Constrained,
			}
		}
		// The point is near an edge that cannot be hit, so fall back to the
		// triangle it is actually in.
		if orientSign(t.pos(a), t.pos(b), p) < 0 {
			if twin == NoEdge {
				return Hit{}
			}
			e = twin
		}
		fallthrough
	case InsideTriangle:
		if inside.Test(uint(e)) {
			return Hit{Kind: HitFace, Face: t.face(e).Vertices}
		}
	}
	return Hit{}
}
