package predicates

import "math"

// Floating point expansions, as described in Shewchuk's "Adaptive Precision
// Floating-Point Arithmetic and Fast Robust Geometric Predicates". An
// expansion is a slice of non-overlapping components sorted by increasing
// magnitude, whose exact sum is the value being represented. Zero components
// are eliminated as we go, so an expansion is never longer than it has to be.
//
// Every product below is wrapped in an explicit float64 conversion. The Go
// compiler is allowed to fuse a*b+c into a single FMA instruction, which would
// silently break the error-free transformations.

// Half an ulp of 1.0
const epsilon = 1.0 / (1 << 53)

var (
	resultErrBound = (3 + 8*epsilon) * epsilon
	ccwErrBoundA   = (3 + 16*epsilon) * epsilon
	ccwErrBoundB   = (2 + 12*epsilon) * epsilon
	ccwErrBoundC   = (9 + 64*epsilon) * epsilon * epsilon
	iccErrBoundA   = (10 + 96*epsilon) * epsilon
	iccErrBoundB   = (4 + 48*epsilon) * epsilon
)

// x + y == a + b exactly, with x the rounded sum
func twoSum(a, b float64) (x, y float64) {
	x = a + b
	bVirtual := x - a
	aVirtual := x - bVirtual
	bRoundoff := b - bVirtual
	aRoundoff := a - aVirtual
	y = aRoundoff + bRoundoff
	return
}

// Roundoff of x = a - b, where x was already computed
func twoDiffTail(a, b, x float64) float64 {
	bVirtual := a - x
	aVirtual := x + bVirtual
	bRoundoff := bVirtual - b
	aRoundoff := a - aVirtual
	return aRoundoff + bRoundoff
}

// x + y == a - b exactly
func twoDiff(a, b float64) (x, y float64) {
	x = a - b
	y = twoDiffTail(a, b, x)
	return
}

// x + y == a * b exactly. The FMA computes the product's roundoff without
// Dekker splitting.
func twoProduct(a, b float64) (x, y float64) {
	x = float64(a * b)
	y = math.FMA(a, b, -x)
	return
}

// Add a single float to an expansion
func growExpansion(e []float64, b float64) []float64 {
	h := make([]float64, 0, len(e)+1)
	q := b
	for _, component := range e {
		var roundoff float64
		q, roundoff = twoSum(q, component)
		if roundoff != 0 {
			h = append(h, roundoff)
		}
	}
	if q != 0 || len(h) == 0 {
		h = append(h, q)
	}
	return h
}

func expansionSum(e, f []float64) []float64 {
	h := e
	for _, component := range f {
		h = growExpansion(h, component)
	}
	return h
}

func negateExpansion(e []float64) []float64 {
	h := make([]float64, len(e))
	for i, component := range e {
		h[i] = -component
	}
	return h
}

func expansionDiff(e, f []float64) []float64 {
	return expansionSum(e, negateExpansion(f))
}

// Multiply an expansion by a single float
func scaleExpansion(e []float64, b float64) []float64 {
	if len(e) == 0 {
		return e
	}
	h := make([]float64, 0, 2*len(e))
	q, roundoff := twoProduct(e[0], b)
	if roundoff != 0 {
		h = append(h, roundoff)
	}
	for _, component := range e[1:] {
		productHigh, productLow := twoProduct(component, b)
		sum, roundoff := twoSum(q, productLow)
		if roundoff != 0 {
			h = append(h, roundoff)
		}
		q, roundoff = twoSum(productHigh, sum)
		if roundoff != 0 {
			h = append(h, roundoff)
		}
	}
	if q != 0 || len(h) == 0 {
		h = append(h, q)
	}
	return h
}

func mulExpansion(e, f []float64) []float64 {
	var h []float64
	for _, component := range f {
		h = expansionSum(h, scaleExpansion(e, component))
	}
	if len(h) == 0 {
		return []float64{0}
	}
	return h
}

// Approximate value of an expansion
func estimate(e []float64) float64 {
	var sum float64
	for _, component := range e {
		sum += component
	}
	return sum
}

// The largest component has the sign of the whole expansion
func mostSignificant(e []float64) float64 {
	if len(e) == 0 {
		return 0
	}
	return e[len(e)-1]
}

// Exact a*b - c*d for plain floats, as an expansion
func twoTwoDiff(a, b, c, d float64) []float64 {
	left1, left0 := twoProduct(a, b)
	right1, right0 := twoProduct(c, d)
	return expansionDiff([]float64{left0, left1}, []float64{right0, right1})
}

// Exact difference a - b as a two component expansion
func diffExpansion(a, b float64) []float64 {
	x, y := twoDiff(a, b)
	if y == 0 {
		return []float64{x}
	}
	return []float64{y, x}
}
