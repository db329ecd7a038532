// A dynamic constrained Delaunay triangulation package for Go.
//
// The triangulation lives on a half-edge mesh that can be edited in place:
// vertices can be added, removed and moved, and edges can be constrained and
// unconstrained, with the Delaunay property restored locally after each edit.
// Geometric decisions use exact adaptive predicates, so the result never
// depends on floating point luck.
//
// This package is the simple entry point. See the advanced package for the
// editable Topology itself.
package cdt

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/osuushi/cdt/advanced"
	"github.com/pkg/errors"
)

type Topology = advanced.Topology
type Vertex = advanced.Vertex
type Option = advanced.Option
type Face = advanced.Face
type Edge = advanced.Edge
type Hit = advanced.Hit

var (
	WithRegion       = advanced.WithRegion
	WithHitTestRadii = advanced.WithHitTestRadii
	WithSelfCheck    = advanced.WithSelfCheck
	WithLogger       = advanced.WithLogger
)

// Create an empty topology. See the advanced package for the options.
func New(opts ...Option) (*Topology, error) {
	return advanced.New(opts...)
}

// Triangulate a point set, forcing the given edges (pairs of indices into
// points) into the result. The faces cover the convex hull of the points and
// are returned as counterclockwise index triples.
//
// Duplicate points, edges that cross each other, and point sets with no area
// are errors.
func Triangulate(points []r2.Point, constraints [][2]int) (result [][3]int, err error) {
	defer func() {
		recoveredErr := advanced.HandleTopologyPanicRecover(recover())
		if recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()

	if len(points) < 3 {
		return nil, errors.Errorf("need at least 3 points, got %d", len(points))
	}
	bounds := r2.EmptyRect()
	for i, p := range points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return nil, errors.Errorf("point %d is not finite: %v", i, p)
		}
		bounds = bounds.AddPoint(p)
	}
	size := bounds.Size()
	margin := 0.01 * math.Max(math.Max(size.X, size.Y), 1)
	topology, err := advanced.New(advanced.WithRegion(bounds.ExpandedByMargin(margin)))
	if err != nil {
		return nil, err
	}

	for i, p := range points {
		if !topology.AddVertex(advanced.Vertex{Position: p}) {
			return nil, errors.Errorf("point %d at %v duplicates another point", i, p)
		}
	}
	if !topology.ToConvexHull() {
		return nil, errors.New("points are collinear")
	}
	for _, c := range constraints {
		if !topology.InsertConstrainedEdge(c[0], c[1]) {
			return nil, errors.Errorf("cannot constrain edge %d-%d", c[0], c[1])
		}
	}

	for face := range topology.Faces() {
		result = append(result, face)
	}
	return result, nil
}
