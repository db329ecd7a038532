package advanced

import (
	"math"

	"github.com/golang/geo/r2"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary of the shape of the faces, in degrees. Delaunay triangulations
// maximize the smallest angle, so MinAngle is the figure of merit.
type QualityReport struct {
	Faces          int
	MinAngle       float64
	MeanMinAngle   float64
	StdDevMinAngle float64
	TotalArea      float64
	SmallestAngle  [3]int
}

// Measure the smallest angle of every face. Returns a zero report when there
// are no faces.
func (t *Topology) Quality() QualityReport {
	var angles, areas []float64
	var faces [][3]int
	for f := range t.Faces() {
		a, b, c := t.vertices[f[0]].Position, t.vertices[f[1]].Position, t.vertices[f[2]].Position
		ab, bc, ca := distance(a, b), distance(b, c), distance(c, a)
		angles = append(angles, floats.Min([]float64{
			angleOpposite(bc, ab, ca),
			angleOpposite(ca, ab, bc),
			angleOpposite(ab, bc, ca),
		}))
		areas = append(areas, signedArea([]r2.Point{a, b, c})/2)
		faces = append(faces, f)
	}
	if len(angles) == 0 {
		return QualityReport{}
	}
	mean, std := stat.MeanStdDev(angles, nil)
	if len(angles) == 1 {
		std = 0
	}
	smallest := floats.MinIdx(angles)
	return QualityReport{
		Faces:          len(angles),
		MinAngle:       angles[smallest],
		MeanMinAngle:   mean,
		StdDevMinAngle: std,
		TotalArea:      floats.Sum(areas),
		SmallestAngle:  faces[smallest],
	}
}

// The angle opposite side a in a triangle with sides a, b, c, in degrees
func angleOpposite(a, b, c float64) float64 {
	cos := (b*b + c*c - a*a) / (2 * b * c)
	return math.Acos(math.Max(-1, math.Min(1, cos))) * 180 / math.Pi
}
