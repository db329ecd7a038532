package advanced

import (
	"fmt"

	"github.com/golang/geo/r2"
)

// A vertex as stored by the topology. Positions and UVs live in the
// topology's normalized space. The payload is carried along untouched.
type Vertex struct {
	Position r2.Point
	UV       r2.Point
	Payload  interface{}
}

type VertexKind uint8

const (
	RealVertex VertexKind = iota
	// One of the synthetic vertices of the bounding figure
	CornerVertex
)

// Corners of the bounding figure, counterclockwise from the lower left. The
// point at infinity is never materialized in the mesh: the twinless outer
// edges of the bounding quad play its part.
const (
	CornerLowerLeft = iota
	CornerLowerRight
	CornerUpperRight
	CornerUpperLeft
	CornerInfinity
)

// Reference to either a real vertex (by index) or a synthetic vertex of the
// bounding figure.
type VertexRef struct {
	Kind  VertexKind
	Index int
}

func Real(index int) VertexRef {
	return VertexRef{RealVertex, index}
}

func Corner(corner int) VertexRef {
	return VertexRef{CornerVertex, corner}
}

func (v VertexRef) IsReal() bool {
	return v.Kind == RealVertex
}

func (v VertexRef) String() string {
	if v.IsReal() {
		return fmt.Sprintf("v%d", v.Index)
	}
	if v.Index == CornerInfinity {
		return "∞"
	}
	return fmt.Sprintf("corner%d", v.Index)
}

// Handle into the half-edge arena
type EdgeID int32

const NoEdge EdgeID = -1

// Half-edge record. An edge is live while Next is set. Twin is NoEdge on the
// outer border of the bounding figure, and Constrained always matches across a
// twin pair.
type HalfEdge struct {
	Origin      VertexRef
	Next        EdgeID
	Twin        EdgeID
	Constrained bool
}

type LocateResult int

const (
	SameVertex LocateResult = iota
	OnEdge
	InsideTriangle
	OutsideTriangulation
)

func (r LocateResult) String() string {
	switch r {
	case SameVertex:
		return "SameVertex"
	case OnEdge:
		return "OnEdge"
	case InsideTriangle:
		return "InsideTriangle"
	case OutsideTriangulation:
		return "OutsideTriangulation"
	}
	return fmt.Sprintf("LocateResult(%d)", int(r))
}

// Undirected edge between two real vertices
type Edge struct {
	A, B      int
	IsFraming bool
}

type EdgeInfo struct {
	IsConstrained bool
	IsFraming     bool
}

// A face of the triangulation, counterclockwise. Edges[i] describes the edge
// from Vertices[i] to Vertices[(i+1)%3].
type Face struct {
	Vertices [3]int
	Edges    [3]EdgeInfo
}

type dirKey [2]VertexRef

func key(a, b VertexRef) dirKey {
	return dirKey{a, b}
}
