package advanced

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertConstrained(t *testing.T, topology *Topology, a, b int) {
	t.Helper()
	e := topology.findEdge(Real(a), Real(b))
	require.NotEqual(t, NoEdge, e, "no edge %d-%d", a, b)
	assert.True(t, topology.edges[e].Constrained, "edge %d-%d", a, b)
	twin := topology.twin(e)
	require.NotEqual(t, NoEdge, twin)
	assert.True(t, topology.edges[twin].Constrained, "twin of edge %d-%d", a, b)
}

func TestConstrainSquareDiagonal(t *testing.T) {
	for _, diagonal := range [][2]int{{0, 2}, {1, 3}} {
		topology := newTopology(t)
		addPoints(t, topology, innerSquare()...)

		require.True(t, topology.InsertConstrainedEdge(diagonal[0], diagonal[1]))
		assertConstrained(t, topology, diagonal[0], diagonal[1])
		faces := faceSet(topology)
		require.Len(t, faces, 2)
		for _, face := range faces {
			assert.Contains(t, face, diagonal[0])
			assert.Contains(t, face, diagonal[1])
		}
		assertValid(t, topology)
	}
}

func TestConstrainSquareDiagonalWithInteriorPoint(t *testing.T) {
	topology := newTopology(t)
	addPoints(t, topology, innerSquare()...)
	// Above the 1-3 diagonal, close to it
	addPoints(t, topology, r2.Point{X: 0.52, Y: 0.5})

	require.True(t, topology.InsertConstrainedEdge(1, 3))
	assertConstrained(t, topology, 1, 3)

	// One triangle below the diagonal, three above it around the interior point
	below, above := 0, 0
	for face := range topology.FacesWithInfo() {
		for i, info := range face.Edges {
			a, b := face.Vertices[i], face.Vertices[(i+1)%3]
			if (a == 1 && b == 3) || (a == 3 && b == 1) {
				assert.True(t, info.IsConstrained)
				assert.False(t, info.IsFraming)
			}
		}
		if contains(face.Vertices, 4) {
			above++
		} else {
			below++
		}
	}
	assert.Equal(t, 1, below)
	assert.Equal(t, 3, above)
	assertValid(t, topology)
}

func TestConstrainThroughCollinearVertex(t *testing.T) {
	topology := newTopology(t)
	addPoints(t, topology, innerSquare()...)
	addPoints(t, topology, r2.Point{X: 0.5, Y: 0.5}, r2.Point{X: 0.3, Y: 0.6}, r2.Point{X: 0.7, Y: 0.4})

	require.True(t, topology.InsertConstrainedEdge(0, 2))
	assertConstrained(t, topology, 0, 4)
	assertConstrained(t, topology, 4, 2)
	assert.Len(t, nonFraming(topology.ConstrainedEdges()), 2)
	assertValid(t, topology)

	// The pieces come off together
	require.True(t, topology.RemoveConstrainedEdge(2, 0))
	assert.Empty(t, nonFraming(topology.ConstrainedEdges()))
	assertValid(t, topology)
}

func TestConstrainCrossingRejected(t *testing.T) {
	topology := newTopology(t)
	addPoints(t, topology, innerSquare()...)
	addPoints(t, topology, r2.Point{X: 0.5, Y: 0.3}, r2.Point{X: 0.5, Y: 0.7})
	require.True(t, topology.InsertConstrainedEdge(4, 5))
	before := faceSet(topology)
	version := topology.Version()

	assert.False(t, topology.InsertConstrainedEdge(0, 2))
	assert.False(t, topology.InsertConstrainedEdge(3, 1))
	assert.Equal(t, before, faceSet(topology))
	assert.Equal(t, version, topology.Version())

	// Touching the end of a constraint is fine
	assert.True(t, topology.InsertConstrainedEdge(0, 4))
	assertValid(t, topology)
}

func TestConstrainInvalid(t *testing.T) {
	topology := newTopology(t)
	addPoints(t, topology, innerSquare()...)
	assert.False(t, topology.InsertConstrainedEdge(0, 0))
	assert.False(t, topology.InsertConstrainedEdge(-1, 2))
	assert.False(t, topology.InsertConstrainedEdge(0, 9))
	assert.False(t, topology.RemoveConstrainedEdge(0, 2))
	assert.False(t, topology.RemoveConstrainedEdge(0, 9))

	// Framing edges belong to the ring
	assert.False(t, topology.RemoveConstrainedEdge(0, 1))
	assertConstrained(t, topology, 0, 1)
}

func TestConstrainThenUnconstrainRestoresFaces(t *testing.T) {
	topology := newTopology(t)
	addPoints(t, topology, randomPoints(11, 80)...)
	before := faceSet(topology)

	pairs := [][2]int{{0, 1}, {5, 40}, {17, 63}, {2, 79}, {30, 31}}
	for _, pair := range pairs {
		require.True(t, topology.InsertConstrainedEdge(pair[0], pair[1]), "%v", pair)
		assertValid(t, topology)
		require.True(t, topology.RemoveConstrainedEdge(pair[0], pair[1]), "%v", pair)
		assert.Equal(t, before, faceSet(topology), "%v", pair)
	}
	assertValid(t, topology)
}

func TestConstrainMany(t *testing.T) {
	topology := newTopology(t)
	addPoints(t, topology, randomPoints(12, 100)...)

	inserted := 0
	for i := 0; i+1 < topology.VertexCount(); i += 2 {
		if topology.InsertConstrainedEdge(i, i+1) {
			inserted++
		}
	}
	assert.Greater(t, inserted, 0)
	assertValid(t, topology)

	// None of the constraints cross each other
	edges := nonFraming(topology.ConstrainedEdges())
	for i, e := range edges {
		for _, f := range edges[i+1:] {
			p1, p2 := topology.vertices[e.A].Position, topology.vertices[e.B].Position
			q1, q2 := topology.vertices[f.A].Position, topology.vertices[f.B].Position
			assert.False(t, segmentsCross(p1, p2, q1, q2), "%v crosses %v", e, f)
		}
	}
}

func contains(face [3]int, v int) bool {
	return face[0] == v || face[1] == v || face[2] == v
}

func nonFraming(edges []Edge) []Edge {
	var result []Edge
	for _, e := range edges {
		if !e.IsFraming {
			result = append(result, e)
		}
	}
	return result
}
