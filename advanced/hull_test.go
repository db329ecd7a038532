package advanced

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHullKeepsCollinearVertices(t *testing.T) {
	topology := newTopology(t)
	addPoints(t, topology,
		r2.Point{X: 0.2, Y: 0.2},
		r2.Point{X: 0.5, Y: 0.2},
		r2.Point{X: 0.8, Y: 0.2},
		r2.Point{X: 0.5, Y: 0.8},
	)
	assert.Equal(t, []int{0, 1, 2, 3}, topology.hull(allIndices(topology)))
	assert.Equal(t, []int{0, 1, 2, 3}, topology.Boundary())
	assert.Equal(t, 2, topology.FaceCount())
	assertValid(t, topology)

	assert.Nil(t, topology.hull([]int{0, 1, 2}))
	assert.Nil(t, topology.hull([]int{0, 3}))
}

func TestToConvexHullFillsPocket(t *testing.T) {
	topology := newTopology(t)
	addPoints(t, topology, innerSquare()...)

	// Pull a corner in past the diagonal, leaving a reflex ring vertex
	require.True(t, topology.TranslateVertex(1, r2.Point{X: -0.4, Y: 0.3}, r2.Point{}))
	assert.Equal(t, []int{0, 1, 2, 3}, topology.Boundary())
	assert.Equal(t, 2, topology.FaceCount())
	assertValid(t, topology)
	version := topology.Version()

	require.True(t, topology.ToConvexHull())
	assert.Equal(t, version+1, topology.Version())
	assert.Equal(t, []int{0, 2, 3}, topology.Boundary())
	assert.Equal(t, 3, topology.FaceCount())
	for face := range topology.Faces() {
		assert.Contains(t, face, 1)
	}
	assertValid(t, topology)
}

func TestToConvexHullAlreadyConvex(t *testing.T) {
	topology := newTopology(t)
	assert.False(t, topology.ToConvexHull())

	addPoints(t, topology, randomPoints(5, 40)...)
	before := faceSet(topology)
	ring := topology.Boundary()
	version := topology.Version()
	notified := 0
	topology.OnTopologyChanged(func(*Topology) { notified++ })

	require.True(t, topology.ToConvexHull())
	assert.Equal(t, before, faceSet(topology))
	assert.Equal(t, ring, topology.Boundary())
	assert.Equal(t, version, topology.Version())
	assert.Zero(t, notified)
}

func TestToConvexHullAfterRemovals(t *testing.T) {
	topology := newTopology(t)
	addPoints(t, topology, randomPoints(6, 50)...)
	for i := 0; i < 10; i++ {
		require.True(t, topology.RemoveVertex(topology.Boundary()[0]))
	}
	require.True(t, topology.ToConvexHull())
	assert.Equal(t, len(topology.hull(allIndices(topology))), len(topology.Boundary()))
	assertValid(t, topology)
}
