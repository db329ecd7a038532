package advanced

import (
	"math/rand"

	"github.com/bits-and-blooms/bitset"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// A dynamic constrained Delaunay triangulation.
//
// A single half-edge mesh triangulates the whole editable region, starting
// from the two triangles of the bounding quad. Real vertices are added inside
// it, and the boundary ring of framing edges marks out which triangles are
// faces of the triangulation. Everything outside the ring is scaffolding that
// never shows up in the output.
//
// A Topology is not safe for concurrent use.
type Topology struct {
	mesh
	options  options
	logger   *zap.Logger
	vertices []Vertex
	corners  [4]r2.Point
	boundary *Boundary
	root     EdgeID
	// Walk order for point location. Seeded, so runs are reproducible.
	rng *rand.Rand

	// Set when some vertex may be outside the ring without being framed
	maybeLoose bool

	handlers  []func(*Topology)
	notifying bool
	version   uint64

	insideVersion uint64
	inside        *bitset.BitSet
}

func New(opts ...Option) (*Topology, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.region.IsEmpty() || !isFinite(o.region.Lo()) || !isFinite(o.region.Hi()) {
		return nil, errors.Errorf("invalid region %v", o.region)
	}
	size := o.region.Size()
	if size.X <= 0 || size.Y <= 0 {
		return nil, errors.Errorf("region %v has no area", o.region)
	}
	if o.vertexHitRadius < 0 || o.edgeHitRadius < 0 {
		return nil, errors.Errorf("negative hit test radius (%v, %v)", o.vertexHitRadius, o.edgeHitRadius)
	}

	t := &Topology{
		mesh:     newMesh(),
		options:  o,
		logger:   o.logger,
		corners:  o.region.Vertices(),
		boundary: NewBoundary(),
		rng:      rand.New(rand.NewSource(0)),
	}

	// The bounding quad, split along its lower-left to upper-right diagonal
	lower := t.makeTriangle(Corner(CornerLowerLeft), Corner(CornerLowerRight), Corner(CornerUpperRight))
	upper := t.makeTriangle(Corner(CornerLowerLeft), Corner(CornerUpperRight), Corner(CornerUpperLeft))
	t.link(lower[2], upper[0])
	t.root = lower[0]
	return t, nil
}

func (t *Topology) Region() r2.Rect {
	return t.options.region
}

func (t *Topology) VertexCount() int {
	return len(t.vertices)
}

func (t *Topology) Vertex(index int) (Vertex, bool) {
	if index < 0 || index >= len(t.vertices) {
		return Vertex{}, false
	}
	return t.vertices[index], true
}

// A copy of the vertex list
func (t *Topology) Vertices() []Vertex {
	return append([]Vertex(nil), t.vertices...)
}

// The boundary ring, counterclockwise. Empty until at least three
// non-collinear vertices exist.
func (t *Topology) Boundary() []int {
	return t.boundary.Vertices()
}

// Counter bumped by every completed mutation
func (t *Topology) Version() uint64 {
	return t.version
}

// Register a handler fired once after every completed mutation. Handlers may
// read the topology, but mutations attempted from inside a handler are refused.
func (t *Topology) OnTopologyChanged(handler func(*Topology)) {
	t.handlers = append(t.handlers, handler)
}

func (t *Topology) pos(v VertexRef) r2.Point {
	if v.IsReal() {
		return t.vertices[v.Index].Position
	}
	if v.Index < 0 || v.Index >= len(t.corners) {
		fatalf("no position for %v", v)
	}
	return t.corners[v.Index]
}

// A live edge to start walks from
func (t *Topology) seed() EdgeID {
	if t.live(t.root) {
		return t.root
	}
	for i := range t.edges {
		if t.live(EdgeID(i)) {
			t.root = EdgeID(i)
			return t.root
		}
	}
	fatalf("mesh has no live edges")
	return NoEdge
}

// Whether a mutation may start. Handlers of TopologyChanged must not re-enter.
func (t *Topology) canMutate(op string) bool {
	if t.notifying {
		t.logger.Warn("mutation refused during TopologyChanged", zap.String("op", op))
		return false
	}
	return true
}

// Finish a successful mutation: optional self-check, then notify.
func (t *Topology) commit(op string) {
	t.version++
	if t.options.selfCheck {
		if err := t.SelfCheck(); err != nil {
			for _, violation := range multierr.Errors(err) {
				fields := []zap.Field{zap.String("op", op), zap.Error(violation)}
				if v, ok := violation.(*InvariantViolation); ok && v.Edge != NoEdge {
					fields = append(fields, zap.String("edge", t.dbgString(v.Edge)))
				}
				t.logger.Warn("self-check violation", fields...)
			}
		}
	}

	t.notifying = true
	defer func() { t.notifying = false }()
	for _, handler := range t.handlers {
		handler(t)
	}
}

func (t *Topology) isFraming(e EdgeID) bool {
	a, b := t.origin(e), t.dest(e)
	return a.IsReal() && b.IsReal() && t.boundary.IsFraming(a.Index, b.Index)
}

func (t *Topology) positionsOf(indices []int) []r2.Point {
	points := make([]r2.Point, len(indices))
	for i, v := range indices {
		points[i] = t.vertices[v].Position
	}
	return points
}

func (t *Topology) ringPolygon() []r2.Point {
	return t.positionsOf(t.boundary.Vertices())
}

// Whether p is inside the ring or on it
func (t *Topology) ringContains(p r2.Point) bool {
	if t.boundary.Len() < 3 {
		return false
	}
	return polygonContains(t.ringPolygon(), p)
}

// Edges of the triangles enclosed by the ring, found by flooding out from the
// inner side of every framing edge without crossing framing edges.
func (t *Topology) insideEdges() *bitset.BitSet {
	if t.inside != nil && t.insideVersion == t.version {
		return t.inside
	}
	inside := bitset.New(uint(len(t.edges)))
	var queue []EdgeID
	ring := t.boundary.Vertices()
	for i, v := range ring {
		w := ring[CircularIndex(i+1, len(ring))]
		e := t.findEdge(Real(v), Real(w))
		if e == NoEdge || inside.Test(uint(e)) {
			continue
		}
		queue = append(queue, e)
		for _, edge := range t.triangle(e) {
			inside.Set(uint(edge))
		}
	}
	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]
		for _, edge := range t.triangle(e) {
			twin := t.twin(edge)
			if twin == NoEdge || inside.Test(uint(twin)) || t.isFraming(edge) {
				continue
			}
			for _, neighbor := range t.triangle(twin) {
				inside.Set(uint(neighbor))
			}
			queue = append(queue, twin)
		}
	}
	t.inside = inside
	t.insideVersion = t.version
	return inside
}
