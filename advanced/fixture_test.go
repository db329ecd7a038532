package advanced

import (
	"embed"
	"math"
	"strings"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Simple polygons drawn as svgs, available by name in the fixtures/ directory,
// sans extension.
//
//go:embed fixtures
var fixtures embed.FS

// Load a fixture outline, scaled into [0.1, 0.9] on its longer side
func loadFixture(t *testing.T, name string) []r2.Point {
	t.Helper()
	fixture, err := fixtures.Open("fixtures/" + name + ".svg")
	require.NoError(t, err)
	defer fixture.Close()

	outline, err := ParseSVGPolygon(fixture)
	require.NoError(t, err)

	bounds := r2.RectFromPoints(outline...)
	size := bounds.Size()
	scale := 0.8 / math.Max(size.X, size.Y)
	for i, p := range outline {
		outline[i] = r2.Point{X: 0.1 + (p.X-bounds.X.Lo)*scale, Y: 0.1 + (p.Y-bounds.Y.Lo)*scale}
	}
	return outline
}

func TestFixtures(t *testing.T) {
	for _, name := range []string{"star", "comb", "spiral"} {
		t.Run(name, func(t *testing.T) {
			outline := loadFixture(t, name)
			require.Greater(t, signedArea(outline), 0.0)

			topology := newTopology(t)
			addPoints(t, topology, outline...)
			n := len(outline)
			for i := range outline {
				require.True(t, topology.InsertConstrainedEdge(i, (i+1)%n), "edge %d", i)
			}
			assertValid(t, topology)

			for i := range outline {
				assertConstrained(t, topology, i, (i+1)%n)
			}

			// Constrained outline edges split the faces cleanly into those inside
			// the polygon and those outside it
			inside := 0
			for face := range topology.Faces() {
				a, b, c := outline[face[0]], outline[face[1]], outline[face[2]]
				centroid := a.Add(b).Add(c).Mul(1.0 / 3)
				if polygonContains(outline, centroid) {
					inside++
				}
			}
			assert.Equal(t, n-2, inside)

			report := topology.Quality()
			assert.Equal(t, topology.FaceCount(), report.Faces)
			assert.Greater(t, report.MinAngle, 0.0)
			assert.InDelta(t, hullArea(topology), report.TotalArea, 1e-9)
		})
	}
}

func TestFixturesWithoutConstraints(t *testing.T) {
	for _, name := range []string{"star", "comb", "spiral"} {
		outline := loadFixture(t, name)
		topology := newTopology(t)
		addPoints(t, topology, outline...)
		assertValid(t, topology)

		// Removing everything in reverse leaves the bounding figure
		for i := len(outline) - 1; i >= 0; i-- {
			require.True(t, topology.RemoveVertex(i), "%s: removing %d", name, i)
			assertValid(t, topology)
		}
		assert.Equal(t, 6, topology.liveEdgeCount())
	}
}

func TestParseSVGPolygonErrors(t *testing.T) {
	for _, svg := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg"></svg>`,
		`<svg xmlns="http://www.w3.org/2000/svg"><polygon points="0,0 1,0 1,1"/><polygon points="0,0 1,0 1,1"/></svg>`,
		`<svg xmlns="http://www.w3.org/2000/svg"><polygon points="0,0 1,0"/></svg>`,
		`<svg xmlns="http://www.w3.org/2000/svg"><polygon points="0,0 1;0 1,1"/></svg>`,
		`<svg xmlns="http://www.w3.org/2000/svg"><polygon points="0,0 x,0 1,1"/></svg>`,
	} {
		_, err := ParseSVGPolygon(strings.NewReader(svg))
		assert.Error(t, err, svg)
	}
}

func TestParseSVGPolygonReversesClockwise(t *testing.T) {
	points, err := ParseSVGPolygon(strings.NewReader(
		`<svg xmlns="http://www.w3.org/2000/svg"><polygon points="0,0 0,1 1,1 1,0"/></svg>`))
	require.NoError(t, err)
	assert.Equal(t, []r2.Point{{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 0, Y: 0}}, points)
}

func hullArea(topology *Topology) float64 {
	return signedArea(topology.ringPolygon()) / 2
}
