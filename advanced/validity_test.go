package advanced

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

// Assert that the mesh passes its self-check, that every face is
// counterclockwise, and that the faces form a disk: V - E + F = 1.
func assertValid(t *testing.T, topology *Topology) {
	t.Helper()
	err := topology.SelfCheck()
	for _, violation := range multierr.Errors(err) {
		t.Errorf("%v", violation)
	}
	if err != nil {
		return
	}

	used := make(map[int]bool)
	faces := 0
	for face := range topology.Faces() {
		faces++
		a := topology.vertices[face[0]].Position
		b := topology.vertices[face[1]].Position
		c := topology.vertices[face[2]].Position
		assert.Equal(t, 1, orientSign(a, b, c), "face %v is not counterclockwise", face)
		for _, v := range face {
			used[v] = true
		}
	}
	if faces == 0 {
		return
	}
	assert.Equal(t, 1, len(used)-topology.EdgeCount()+faces, "Euler characteristic")
}

// Faces in a canonical form: each rotated to start at its smallest index, then
// sorted, so that two triangulations can be compared.
func faceSet(topology *Topology) [][3]int {
	var result [][3]int
	for face := range topology.Faces() {
		for face[0] > face[1] || face[0] > face[2] {
			face = [3]int{face[1], face[2], face[0]}
		}
		result = append(result, face)
	}
	sort.Slice(result, func(i, j int) bool {
		for k := 0; k < 3; k++ {
			if result[i][k] != result[j][k] {
				return result[i][k] < result[j][k]
			}
		}
		return false
	})
	return result
}

func newTopology(t *testing.T, opts ...Option) *Topology {
	t.Helper()
	topology, err := New(opts...)
	require.NoError(t, err)
	return topology
}

func addPoints(t *testing.T, topology *Topology, points ...r2.Point) {
	t.Helper()
	for _, p := range points {
		require.True(t, topology.AddVertex(Vertex{Position: p}), "adding %v", p)
	}
}

// Random points kept away from the region's border
func randomPoints(seed int64, n int) []r2.Point {
	rng := rand.New(rand.NewSource(seed))
	points := make([]r2.Point, n)
	for i := range points {
		points[i] = r2.Point{X: 0.05 + 0.9*rng.Float64(), Y: 0.05 + 0.9*rng.Float64()}
	}
	return points
}

// The square from 0.2 to 0.8, counterclockwise from the lower left
func innerSquare() []r2.Point {
	return []r2.Point{{X: 0.2, Y: 0.2}, {X: 0.8, Y: 0.2}, {X: 0.8, Y: 0.8}, {X: 0.2, Y: 0.8}}
}

func unitSquare() []r2.Point {
	return []r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
}
