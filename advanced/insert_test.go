package advanced

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNew(t *testing.T) {
	topology := newTopology(t)
	assert.Equal(t, 6, topology.liveEdgeCount())
	assert.Equal(t, 0, topology.VertexCount())
	assert.Empty(t, topology.Boundary())
	assert.Equal(t, 0, topology.FaceCount())
	assertValid(t, topology)

	_, err := New(WithRegion(r2.RectFromPoints(r2.Point{X: 0, Y: 0}, r2.Point{X: 0, Y: 1})))
	assert.Error(t, err)
	_, err = New(WithRegion(r2.EmptyRect()))
	assert.Error(t, err)
	_, err = New(WithHitTestRadii(-1, 0))
	assert.Error(t, err)
	_, err = New(WithRegion(r2.RectFromPoints(r2.Point{X: 0, Y: 0}, r2.Point{X: math.Inf(1), Y: 1})))
	assert.Error(t, err)
}

func TestAddVertexUnitSquareWithCenter(t *testing.T) {
	topology := newTopology(t, WithLogger(zaptest.NewLogger(t)))
	addPoints(t, topology, unitSquare()...)
	assert.Equal(t, []int{0, 1, 2, 3}, topology.Boundary())
	assert.Equal(t, 2, topology.FaceCount())

	addPoints(t, topology, r2.Point{X: 0.5, Y: 0.5})
	faces := faceSet(topology)
	require.Len(t, faces, 4)
	for _, face := range faces {
		assert.Contains(t, face, 4)
	}
	assertValid(t, topology)
}

func TestAddVertexRejects(t *testing.T) {
	topology := newTopology(t)
	addPoints(t, topology, innerSquare()...)
	version := topology.Version()

	for _, p := range []r2.Point{
		{X: math.NaN(), Y: 0.5},
		{X: 0.5, Y: math.Inf(1)},
		{X: 1.5, Y: 0.5},
		{X: -0.01, Y: 0.5},
		{X: 0.2, Y: 0.2},
	} {
		assert.False(t, topology.AddVertex(Vertex{Position: p}), "adding %v", p)
	}
	assert.False(t, topology.AddVertex(Vertex{Position: r2.Point{X: 0.5, Y: 0.5}, UV: r2.Point{X: math.NaN()}}))
	assert.Equal(t, 4, topology.VertexCount())
	assert.Equal(t, version, topology.Version())
	assertValid(t, topology)
}

func TestAddVertexOnEdge(t *testing.T) {
	topology := newTopology(t)
	addPoints(t, topology, innerSquare()...)

	// On a framing edge, so the ring grows
	addPoints(t, topology, r2.Point{X: 0.5, Y: 0.2})
	assert.Equal(t, []int{0, 4, 1, 2, 3}, topology.Boundary())
	assertValid(t, topology)

	// On the edge between two bounding corners
	addPoints(t, topology, r2.Point{X: 0.5, Y: 0})
	assertValid(t, topology)
}

func TestAddVertexSnapsToEdge(t *testing.T) {
	topology := newTopology(t, WithHitTestRadii(0, 0.01))
	addPoints(t, topology, innerSquare()...)

	addPoints(t, topology, r2.Point{X: 0.5, Y: 0.205})
	v, ok := topology.Vertex(4)
	require.True(t, ok)
	assert.InDelta(t, 0.2, v.Position.Y, 1e-12)
	assert.Contains(t, topology.Boundary(), 4)
	assertValid(t, topology)
}

func TestAddVertexNearVertex(t *testing.T) {
	topology := newTopology(t, WithHitTestRadii(0.01, 0))
	addPoints(t, topology, innerSquare()...)
	assert.False(t, topology.AddVertex(Vertex{Position: r2.Point{X: 0.205, Y: 0.2}}))
	assert.True(t, topology.AddVertex(Vertex{Position: r2.Point{X: 0.25, Y: 0.25}}))
	assertValid(t, topology)
}

func TestAddVertexOutsideRing(t *testing.T) {
	topology := newTopology(t)
	addPoints(t, topology, innerSquare()...)

	addPoints(t, topology, r2.Point{X: 0.9, Y: 0.5})
	assert.Equal(t, []int{0, 1, 4, 2, 3}, topology.Boundary())
	assertValid(t, topology)

	// Sees two ring edges at once
	addPoints(t, topology, r2.Point{X: 0.95, Y: 0.95})
	assert.NotContains(t, topology.Boundary(), 2)
	assertValid(t, topology)
}

func TestAddVertexCollinearStart(t *testing.T) {
	topology := newTopology(t)
	addPoints(t, topology,
		r2.Point{X: 0.1, Y: 0.5},
		r2.Point{X: 0.3, Y: 0.5},
		r2.Point{X: 0.7, Y: 0.5},
	)
	assert.Empty(t, topology.Boundary())
	assert.Equal(t, 0, topology.FaceCount())

	addPoints(t, topology, r2.Point{X: 0.5, Y: 0.9})
	assert.Len(t, topology.Boundary(), 4)
	assert.Equal(t, 2, topology.FaceCount())
	assertValid(t, topology)
}

func TestAddVertexRandom(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		topology := newTopology(t)
		points := randomPoints(seed, 200)
		addPoints(t, topology, points...)
		assertValid(t, topology)
		assert.Equal(t, len(topology.hull(allIndices(topology))), len(topology.Boundary()))
	}
}

func TestAddVertexGrid(t *testing.T) {
	// Lots of cocircular points
	topology := newTopology(t)
	for i := 1; i < 10; i++ {
		for j := 1; j < 10; j++ {
			addPoints(t, topology, r2.Point{X: float64(i) / 10, Y: float64(j) / 10})
		}
	}
	assertValid(t, topology)
	assert.Equal(t, 2*8*8, topology.FaceCount())
}

func TestTopologyChanged(t *testing.T) {
	topology := newTopology(t)
	calls := 0
	topology.OnTopologyChanged(func(topology *Topology) {
		calls++
		assert.False(t, topology.AddVertex(Vertex{Position: r2.Point{X: 0.1, Y: 0.1}}))
		assert.False(t, topology.RemoveVertex(0))
	})

	addPoints(t, topology, innerSquare()...)
	assert.Equal(t, 4, calls)
	assert.Equal(t, 4, topology.VertexCount())

	assert.False(t, topology.AddVertex(Vertex{Position: r2.Point{X: 0.2, Y: 0.2}}))
	assert.Equal(t, 4, calls)

	require.True(t, topology.InsertConstrainedEdge(0, 2))
	assert.Equal(t, 5, calls)
	assert.Equal(t, uint64(5), topology.Version())
}

func TestSelfCheckOption(t *testing.T) {
	topology := newTopology(t, WithSelfCheck(true), WithLogger(zaptest.NewLogger(t)))
	addPoints(t, topology, randomPoints(7, 30)...)
	assertValid(t, topology)
}

func TestLocateClosestTriangle(t *testing.T) {
	topology := newTopology(t)
	addPoints(t, topology, innerSquare()...)

	result, e := topology.LocateClosestTriangle(r2.Point{X: 0.2, Y: 0.8})
	assert.Equal(t, SameVertex, result)
	assert.Equal(t, Real(3), topology.origin(e))

	result, e = topology.LocateClosestTriangle(r2.Point{X: 0.8, Y: 0.5})
	assert.Equal(t, OnEdge, result)
	assert.ElementsMatch(t, []VertexRef{Real(1), Real(2)}, []VertexRef{topology.origin(e), topology.dest(e)})

	result, _ = topology.LocateClosestTriangle(r2.Point{X: 0.3, Y: 0.6})
	assert.Equal(t, InsideTriangle, result)

	result, e = topology.LocateClosestTriangle(r2.Point{X: 2, Y: 2})
	assert.Equal(t, OutsideTriangulation, result)
	assert.Equal(t, NoEdge, e)
	assert.Equal(t, "OutsideTriangulation", result.String())
}

func allIndices(topology *Topology) []int {
	indices := make([]int, topology.VertexCount())
	for i := range indices {
		indices[i] = i
	}
	return indices
}
