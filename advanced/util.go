package advanced

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/osuushi/cdt/predicates"
)

// Often we want to treat an array as a circular buffer. This gives the modular
// index given length n, but unlike the raw modulo operator, it only gives positive values
func CircularIndex(i, n int) int {
	return (i%n + n) % n
}

func isFinite(p r2.Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

func orientSign(a, b, c r2.Point) int {
	o := predicates.Orient2D(a, b, c)
	switch {
	case o > 0:
		return 1
	case o < 0:
		return -1
	}
	return 0
}

// Exact sign of a polygon's winding. Use this rather than signedArea for
// decisions, since rounding can flip the sign of a thin polygon's area.
func polygonOrientSign(points []r2.Point) int {
	o := predicates.PolygonOrientation(points)
	switch {
	case o > 0:
		return 1
	case o < 0:
		return -1
	}
	return 0
}

// Whether p lies within the bounding box of segment a-b. Combined with a zero
// orientation, this means p is on the segment.
func inSegmentBox(p, a, b r2.Point) bool {
	return math.Min(a.X, b.X) <= p.X && p.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= p.Y && p.Y <= math.Max(a.Y, b.Y)
}

// Whether segments p1-p2 and q1-q2 share any point, touching included.
func segmentsIntersect(p1, p2, q1, q2 r2.Point) bool {
	o1 := orientSign(p1, p2, q1)
	o2 := orientSign(p1, p2, q2)
	o3 := orientSign(q1, q2, p1)
	o4 := orientSign(q1, q2, p2)

	if o1*o2 < 0 && o3*o4 < 0 {
		return true
	}
	return (o1 == 0 && inSegmentBox(q1, p1, p2)) ||
		(o2 == 0 && inSegmentBox(q2, p1, p2)) ||
		(o3 == 0 && inSegmentBox(p1, q1, q2)) ||
		(o4 == 0 && inSegmentBox(p2, q1, q2))
}

// Whether the segments cross at a single point interior to both
func segmentsCross(p1, p2, q1, q2 r2.Point) bool {
	return orientSign(p1, p2, q1)*orientSign(p1, p2, q2) < 0 &&
		orientSign(q1, q2, p1)*orientSign(q1, q2, p2) < 0
}

// Closest point to p on segment a-b
func projectOntoSegment(p, a, b r2.Point) r2.Point {
	ab := b.Sub(a)
	lengthSquared := ab.Dot(ab)
	if lengthSquared == 0 {
		return a
	}
	t := p.Sub(a).Dot(ab) / lengthSquared
	t = math.Max(0, math.Min(1, t))
	return a.Add(ab.Mul(t))
}

func distance(a, b r2.Point) float64 {
	return a.Sub(b).Norm()
}

func distanceToSegment(p, a, b r2.Point) float64 {
	return distance(p, projectOntoSegment(p, a, b))
}

// Twice the signed area, positive for counterclockwise polygons. Rounded, so
// only fit for measurement.
func signedArea(points []r2.Point) float64 {
	var area float64
	for i, p := range points {
		q := points[CircularIndex(i+1, len(points))]
		area += p.X*q.Y - q.X*p.Y
	}
	return area
}

// Point in triangle test, boundary included
func inTriangle(p, a, b, c r2.Point) bool {
	return orientSign(a, b, p) >= 0 && orientSign(b, c, p) >= 0 && orientSign(c, a, p) >= 0
}

// Winding number test against a counterclockwise polygon. Points on the
// polygon's edges count as inside.
func polygonContains(polygon []r2.Point, p r2.Point) bool {
	winding := 0
	for i, a := range polygon {
		b := polygon[CircularIndex(i+1, len(polygon))]
		o := orientSign(a, b, p)
		if o == 0 && inSegmentBox(p, a, b) {
			return true
		}
		if a.Y <= p.Y {
			if b.Y > p.Y && o > 0 {
				winding++
			}
		} else if b.Y <= p.Y && o < 0 {
			winding--
		}
	}
	return winding != 0
}
