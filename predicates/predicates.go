// Robust orientation and in-circle tests.
//
// Both predicates first evaluate the determinant in plain floating point, and
// only when the result is within the rounding error bound do they fall back to
// progressively more exact evaluation. The sign of the result is always
// correct, and degenerate inputs (collinear or cocircular points) give exactly
// zero. Callers must not pass NaN or infinite coordinates.
package predicates

import (
	"math"

	"github.com/golang/geo/r2"
)

// Positive if a, b, c wind counterclockwise, negative if clockwise, and zero if
// they are collinear. The magnitude approximates twice the signed area of the
// triangle.
func Orient2D(a, b, c r2.Point) float64 {
	detLeft := float64((a.X - c.X) * (b.Y - c.Y))
	detRight := float64((a.Y - c.Y) * (b.X - c.X))
	det := detLeft - detRight

	var detSum float64
	switch {
	case detLeft > 0:
		if detRight <= 0 {
			return det
		}
		detSum = detLeft + detRight
	case detLeft < 0:
		if detRight >= 0 {
			return det
		}
		detSum = -detLeft - detRight
	default:
		return det
	}

	errBound := ccwErrBoundA * detSum
	if det >= errBound || -det >= errBound {
		return det
	}
	return orient2DAdapt(a, b, c, detSum)
}

func orient2DAdapt(a, b, c r2.Point, detSum float64) float64 {
	acx := a.X - c.X
	bcx := b.X - c.X
	acy := a.Y - c.Y
	bcy := b.Y - c.Y

	// The determinant of the rounded differences, computed exactly
	b4 := twoTwoDiff(acx, bcy, acy, bcx)
	det := estimate(b4)
	errBound := ccwErrBoundB * detSum
	if det >= errBound || -det >= errBound {
		return det
	}

	acxTail := twoDiffTail(a.X, c.X, acx)
	bcxTail := twoDiffTail(b.X, c.X, bcx)
	acyTail := twoDiffTail(a.Y, c.Y, acy)
	bcyTail := twoDiffTail(b.Y, c.Y, bcy)
	if acxTail == 0 && acyTail == 0 && bcxTail == 0 && bcyTail == 0 {
		return det
	}

	// First order correction using the tails
	errBound = ccwErrBoundC*detSum + resultErrBound*math.Abs(det)
	det += (float64(acx*bcyTail) + float64(bcy*acxTail)) - (float64(acy*bcxTail) + float64(bcx*acyTail))
	if det >= errBound || -det >= errBound {
		return det
	}

	// Give up on cleverness and multiply out the exact differences
	acxExact := diffExpansion(a.X, c.X)
	bcxExact := diffExpansion(b.X, c.X)
	acyExact := diffExpansion(a.Y, c.Y)
	bcyExact := diffExpansion(b.Y, c.Y)
	exact := expansionDiff(mulExpansion(acxExact, bcyExact), mulExpansion(acyExact, bcxExact))
	return mostSignificant(exact)
}

// Positive if d lies inside the circle through a, b, c, negative if it lies
// outside, and zero if the four points are cocircular. The points a, b, c must
// wind counterclockwise, otherwise the sign is reversed.
func InCircle(a, b, c, d r2.Point) float64 {
	adx := a.X - d.X
	bdx := b.X - d.X
	cdx := c.X - d.X
	ady := a.Y - d.Y
	bdy := b.Y - d.Y
	cdy := c.Y - d.Y

	bdxcdy := float64(bdx * cdy)
	cdxbdy := float64(cdx * bdy)
	aLift := float64(adx*adx) + float64(ady*ady)

	cdxady := float64(cdx * ady)
	adxcdy := float64(adx * cdy)
	bLift := float64(bdx*bdx) + float64(bdy*bdy)

	adxbdy := float64(adx * bdy)
	bdxady := float64(bdx * ady)
	cLift := float64(cdx*cdx) + float64(cdy*cdy)

	det := float64(aLift*(bdxcdy-cdxbdy)) +
		float64(bLift*(cdxady-adxcdy)) +
		float64(cLift*(adxbdy-bdxady))

	permanent := float64((math.Abs(bdxcdy)+math.Abs(cdxbdy))*aLift) +
		float64((math.Abs(cdxady)+math.Abs(adxcdy))*bLift) +
		float64((math.Abs(adxbdy)+math.Abs(bdxady))*cLift)
	errBound := iccErrBoundA * permanent
	if det > errBound || -det > errBound {
		return det
	}
	return inCircleAdapt(a, b, c, d, permanent)
}

func inCircleAdapt(a, b, c, d r2.Point, permanent float64) float64 {
	adx := a.X - d.X
	bdx := b.X - d.X
	cdx := c.X - d.X
	ady := a.Y - d.Y
	bdy := b.Y - d.Y
	cdy := c.Y - d.Y

	// Exact determinant of the rounded differences
	bc := twoTwoDiff(bdx, cdy, cdx, bdy)
	ca := twoTwoDiff(cdx, ady, adx, cdy)
	ab := twoTwoDiff(adx, bdy, bdx, ady)
	aDet := expansionSum(
		scaleExpansion(scaleExpansion(bc, adx), adx),
		scaleExpansion(scaleExpansion(bc, ady), ady),
	)
	bDet := expansionSum(
		scaleExpansion(scaleExpansion(ca, bdx), bdx),
		scaleExpansion(scaleExpansion(ca, bdy), bdy),
	)
	cDet := expansionSum(
		scaleExpansion(scaleExpansion(ab, cdx), cdx),
		scaleExpansion(scaleExpansion(ab, cdy), cdy),
	)
	fin := expansionSum(expansionSum(aDet, bDet), cDet)
	det := estimate(fin)
	errBound := iccErrBoundB * permanent
	if det >= errBound || -det >= errBound {
		return det
	}

	adxTail := twoDiffTail(a.X, d.X, adx)
	bdxTail := twoDiffTail(b.X, d.X, bdx)
	cdxTail := twoDiffTail(c.X, d.X, cdx)
	adyTail := twoDiffTail(a.Y, d.Y, ady)
	bdyTail := twoDiffTail(b.Y, d.Y, bdy)
	cdyTail := twoDiffTail(c.Y, d.Y, cdy)
	if adxTail == 0 && bdxTail == 0 && cdxTail == 0 &&
		adyTail == 0 && bdyTail == 0 && cdyTail == 0 {
		// The differences were exact, so fin is the exact determinant
		return mostSignificant(fin)
	}

	return inCircleExact(a, b, c, d)
}

func inCircleExact(a, b, c, d r2.Point) float64 {
	adx := diffExpansion(a.X, d.X)
	bdx := diffExpansion(b.X, d.X)
	cdx := diffExpansion(c.X, d.X)
	ady := diffExpansion(a.Y, d.Y)
	bdy := diffExpansion(b.Y, d.Y)
	cdy := diffExpansion(c.Y, d.Y)

	lift := func(x, y []float64) []float64 {
		return expansionSum(mulExpansion(x, x), mulExpansion(y, y))
	}
	cross := func(x1, y1, x2, y2 []float64) []float64 {
		return expansionDiff(mulExpansion(x1, y2), mulExpansion(x2, y1))
	}

	aTerm := mulExpansion(lift(adx, ady), cross(bdx, bdy, cdx, cdy))
	bTerm := mulExpansion(lift(bdx, bdy), cross(cdx, cdy, adx, ady))
	cTerm := mulExpansion(lift(cdx, cdy), cross(adx, ady, bdx, bdy))
	return mostSignificant(expansionSum(expansionSum(aTerm, bTerm), cTerm))
}

// Positive if the polygon winds counterclockwise, negative if clockwise, and
// zero if its signed area is exactly zero. The shoelace sum is accumulated as
// an expansion, so the sign is exact. The magnitude approximates twice the
// signed area.
func PolygonOrientation(points []r2.Point) float64 {
	if len(points) < 3 {
		return 0
	}
	var sum []float64
	for i, p := range points {
		q := points[(i+1)%len(points)]
		sum = expansionSum(sum, twoTwoDiff(p.X, q.Y, q.X, p.Y))
	}
	sign := mostSignificant(sum)
	if sign == 0 {
		return 0
	}
	// The rounded total can lose the sign when the area is tiny
	if area := estimate(sum); area != 0 && (area > 0) == (sign > 0) {
		return area
	}
	return sign
}
