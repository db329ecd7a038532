package advanced

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Regular polygon around the center of the unit square
func regularPolygon(n int, radius float64) []r2.Point {
	points := make([]r2.Point, n)
	for i := range points {
		angle := 2 * math.Pi * float64(i) / float64(n)
		points[i] = r2.Point{X: 0.5 + radius*math.Cos(angle), Y: 0.5 + radius*math.Sin(angle)}
	}
	return points
}

func TestRemoveInteriorVertexOfPolygon(t *testing.T) {
	for _, n := range []int{3, 5, 8, 13} {
		topology := newTopology(t)
		addPoints(t, topology, regularPolygon(n, 0.4)...)
		addPoints(t, topology, r2.Point{X: 0.51, Y: 0.48})
		assert.Equal(t, n, topology.FaceCount())

		require.True(t, topology.RemoveVertex(n))
		assert.Equal(t, n, topology.VertexCount())
		assert.Equal(t, n-2, topology.FaceCount())
		assert.Len(t, topology.Boundary(), n)
		assertValid(t, topology)
	}
}

func TestInsertThenRemoveRestoresFaces(t *testing.T) {
	topology := newTopology(t)
	addPoints(t, topology, randomPoints(3, 60)...)
	before := faceSet(topology)

	for _, p := range randomPoints(4, 20) {
		ring := topology.Boundary()
		if !topology.ringContains(p) {
			continue
		}
		require.True(t, topology.AddVertex(Vertex{Position: p}))
		require.True(t, topology.RemoveVertex(topology.VertexCount()-1))
		assert.Equal(t, before, faceSet(topology))
		assert.Equal(t, ring, topology.Boundary())
	}
	assertValid(t, topology)
}

func TestRemoveRingVertex(t *testing.T) {
	topology := newTopology(t)
	addPoints(t, topology, innerSquare()...)
	addPoints(t, topology, r2.Point{X: 0.5, Y: 0.5})

	// The ring closes over the removed corner of the square
	require.True(t, topology.RemoveVertex(1))
	assert.Equal(t, 4, topology.VertexCount())
	assert.Len(t, topology.Boundary(), 4)
	assertValid(t, topology)

	// The last vertex took the freed slot
	v, ok := topology.Vertex(1)
	require.True(t, ok)
	assert.Equal(t, r2.Point{X: 0.5, Y: 0.5}, v.Position)
}

func TestRemoveRingVertexLeavesVertexOutside(t *testing.T) {
	topology := newTopology(t)
	addPoints(t, topology, innerSquare()...)
	// Just inside the corner at 1, so the lid from 0 to 2 would leave it out
	addPoints(t, topology, r2.Point{X: 0.7, Y: 0.3})

	require.True(t, topology.RemoveVertex(1))
	assert.Len(t, topology.Boundary(), 4)
	assert.Contains(t, topology.Boundary(), 1)
	assert.Equal(t, 2, topology.FaceCount())
	assertValid(t, topology)
}

func TestRemoveDownToNothing(t *testing.T) {
	topology := newTopology(t)
	addPoints(t, topology, innerSquare()...)
	addPoints(t, topology, r2.Point{X: 0.4, Y: 0.6}, r2.Point{X: 0.6, Y: 0.3})

	for topology.VertexCount() > 0 {
		require.True(t, topology.RemoveVertex(0))
		assertValid(t, topology)
		if topology.VertexCount() < 3 {
			assert.Empty(t, topology.Boundary())
		}
	}
	assert.Equal(t, 6, topology.liveEdgeCount())
	assert.False(t, topology.RemoveVertex(0))
}

func TestRemoveCornerVertex(t *testing.T) {
	topology := newTopology(t)
	addPoints(t, topology, unitSquare()...)
	addPoints(t, topology, r2.Point{X: 0.5, Y: 0.5})

	require.True(t, topology.RemoveVertex(0))
	assert.Equal(t, 4, topology.VertexCount())
	assert.Len(t, topology.Boundary(), 4)
	assertValid(t, topology)

	// The corner can be taken again, and the center drops back inside
	addPoints(t, topology, r2.Point{X: 0, Y: 0})
	assert.Len(t, topology.Boundary(), 4)
	assert.NotContains(t, topology.Boundary(), 0)
	assert.Equal(t, 4, topology.FaceCount())
	assertValid(t, topology)
}

func TestRemoveBorderVertex(t *testing.T) {
	topology := newTopology(t)
	addPoints(t, topology, innerSquare()...)
	addPoints(t, topology, r2.Point{X: 0.5, Y: 0})
	assertValid(t, topology)

	require.True(t, topology.RemoveVertex(4))
	assert.Equal(t, []int{0, 1, 2, 3}, topology.Boundary())
	assertValid(t, topology)
}

func TestRemoveVertexDropsConstraints(t *testing.T) {
	topology := newTopology(t)
	addPoints(t, topology, innerSquare()...)
	addPoints(t, topology, r2.Point{X: 0.5, Y: 0.5})
	require.True(t, topology.InsertConstrainedEdge(0, 4))
	require.True(t, topology.InsertConstrainedEdge(4, 2))

	require.True(t, topology.RemoveVertex(4))
	for _, e := range topology.ConstrainedEdges() {
		assert.True(t, e.IsFraming, "%v", e)
	}
	assertValid(t, topology)
}

func TestRemoveVertexInvalid(t *testing.T) {
	topology := newTopology(t)
	addPoints(t, topology, innerSquare()...)
	assert.False(t, topology.RemoveVertex(-1))
	assert.False(t, topology.RemoveVertex(4))
	assert.Equal(t, 4, topology.VertexCount())
}
