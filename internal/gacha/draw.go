package gacha

// hit performs one Bernoulli trial with success probability p.
// Values outside [0,1] saturate, and no random value is consumed when the
// outcome is already certain.
func hit(p float64, rng RandomSource) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return rng.Float64() < p
}
