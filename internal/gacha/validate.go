package gacha

import (
	"math"
)

// tieEpsilon is the relative tolerance under which two probabilities are
// treated as equal.
const tieEpsilon = 1e-12

// probIn reports whether p is a finite probability in (0,1), or in (0,1]
// when closed is set.
func probIn(p float64, closed bool) bool {
	if math.IsNaN(p) || math.IsInf(p, 0) || p <= 0 {
		return false
	}
	if closed {
		return p <= 1
	}
	return p < 1
}

// probEqual compares two probabilities with a relative tolerance so that
// rounding noise never decides a tie.
func probEqual(a, b float64) bool {
	diff := math.Abs(a - b)
	scale := math.Max(math.Abs(a), math.Abs(b))
	if scale < 1 {
		scale = 1
	}
	return diff <= tieEpsilon*scale
}
