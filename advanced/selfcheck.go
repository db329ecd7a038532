package advanced

import (
	"fmt"

	"github.com/golang/geo/r2"
	"github.com/osuushi/cdt/dbg"
	"github.com/osuushi/cdt/predicates"
	"go.uber.org/multierr"
)

type ViolationKind string

const (
	BrokenCycle         ViolationKind = "broken triangle cycle"
	AsymmetricTwin      ViolationKind = "asymmetric twin"
	ConstraintMismatch  ViolationKind = "constraint flag differs across twins"
	InvertedTriangle    ViolationKind = "non-positive triangle"
	NotDelaunay         ViolationKind = "not locally Delaunay"
	StrayBorderEdge     ViolationKind = "twinless edge inside the region"
	BadRing             ViolationKind = "bad boundary ring"
	UnframedRingSegment ViolationKind = "ring segment is not a constrained edge"
)

// A broken invariant found by SelfCheck. Edge is NoEdge for violations that
// are not about a particular edge.
type InvariantViolation struct {
	Kind   ViolationKind
	Edge   EdgeID
	Detail string
}

func (v *InvariantViolation) Error() string {
	if v.Edge == NoEdge {
		return fmt.Sprintf("%s: %s", v.Kind, v.Detail)
	}
	return fmt.Sprintf("%s at %s (%d): %s", v.Kind, dbg.Name(v.Edge), v.Edge, v.Detail)
}

// Check every structural invariant of the mesh and the ring. Returns nil if
// all hold, otherwise every violation found, combined with multierr. Only
// meant for diagnostics and tests: it is linear in the size of the mesh at
// best.
func (t *Topology) SelfCheck() error {
	var err error
	report := func(kind ViolationKind, e EdgeID, format string, args ...interface{}) {
		err = multierr.Append(err, &InvariantViolation{Kind: kind, Edge: e, Detail: fmt.Sprintf(format, args...)})
	}

	region := t.options.region
	for i := range t.edges {
		e := EdgeID(i)
		if !t.live(e) {
			continue
		}
		edge := t.edges[e]
		if !t.live(edge.Next) || !t.live(t.next(edge.Next)) || t.next(t.next(edge.Next)) != e {
			report(BrokenCycle, e, "next links do not form a 3-cycle")
			continue
		}
		if !t.validRef(edge.Origin) || !t.validRef(t.dest(e)) || !t.validRef(t.opposite(e)) {
			report(BrokenCycle, e, "triangle of %v has a missing vertex", edge.Origin)
			continue
		}

		if edge.Twin == NoEdge {
			a, b := t.pos(edge.Origin), t.pos(t.dest(e))
			if !onRegionBorder(region.Lo(), region.Hi(), a, b) {
				report(StrayBorderEdge, e, "%v-%v", edge.Origin, t.dest(e))
			}
		} else {
			twin := t.edges[edge.Twin]
			if !t.live(edge.Twin) || twin.Twin != e || twin.Origin != t.dest(e) {
				report(AsymmetricTwin, e, "twin %d does not point back", edge.Twin)
			} else if twin.Constrained != edge.Constrained {
				report(ConstraintMismatch, e, "%v vs %v", edge.Constrained, twin.Constrained)
			}
		}

		if !t.isTriangleRepresentative(e) {
			continue
		}
		tri := t.triangle(e)
		a, b, c := t.pos(t.origin(tri[0])), t.pos(t.origin(tri[1])), t.pos(t.origin(tri[2]))
		if orientSign(a, b, c) <= 0 {
			report(InvertedTriangle, e, "%v %v %v", a, b, c)
		}
	}

	// Local Delaunay property, checked once per unconstrained twin pair
	for i := range t.edges {
		e := EdgeID(i)
		if !t.live(e) || t.edges[e].Constrained {
			continue
		}
		f := t.twin(e)
		if f == NoEdge || f < e || !t.live(f) {
			continue
		}
		a, b := t.pos(t.origin(e)), t.pos(t.dest(e))
		c, d := t.pos(t.opposite(e)), t.pos(t.opposite(f))
		if predicates.InCircle(a, b, c, d) > 0 {
			report(NotDelaunay, e, "%v-%v", t.origin(e), t.dest(e))
		}
	}

	ring := t.boundary.Vertices()
	if len(ring) != t.boundary.Len() {
		report(BadRing, NoEdge, "ring walk visits %d of %d vertices", len(ring), t.boundary.Len())
	}
	if len(ring) > 0 && len(ring) < 3 {
		report(BadRing, NoEdge, "ring has %d vertices", len(ring))
	}
	for i, v := range ring {
		if !t.validIndex(v) {
			report(BadRing, NoEdge, "ring vertex %d does not exist", v)
			return err
		}
		w := ring[CircularIndex(i+1, len(ring))]
		if e := t.findEdge(Real(v), Real(w)); e == NoEdge || !t.edges[e].Constrained {
			report(UnframedRingSegment, e, "%d-%d", v, w)
		}
	}
	if len(ring) >= 3 && polygonOrientSign(t.ringPolygon()) <= 0 {
		report(BadRing, NoEdge, "ring is not counterclockwise")
	}
	return err
}

// Whether segment a-b lies along a side of the rectangle lo-hi
func onRegionBorder(lo, hi, a, b r2.Point) bool {
	return (a.X == b.X && (a.X == lo.X || a.X == hi.X)) ||
		(a.Y == b.Y && (a.Y == lo.Y || a.Y == hi.Y))
}

func (t *Topology) validRef(v VertexRef) bool {
	if v.IsReal() {
		return t.validIndex(v.Index)
	}
	return v.Index >= 0 && v.Index < len(t.corners)
}
