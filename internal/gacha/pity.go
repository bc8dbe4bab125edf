package gacha

// tierPity holds the two tier counters every banner shares.
type tierPity struct {
	sinceRare     int // draws since last rare hit
	sinceNearRare int // draws since last near-rare hit
}

// roll performs the tier decision for one draw with a single uniform value:
// - u < pRare => rare
// - u < pRare + pNearRare => near-rare
// - otherwise common
// The drawn tier's counter resets to 0; the other counters increment.
func (tp *tierPity) roll(rare, nearRare TierCurve, rng RandomSource) Tier {
	countRare := tp.sinceRare + 1
	countNearRare := tp.sinceNearRare + 1
	pRare := rare.Prob(countRare)
	pNearRare := nearRare.Prob(countNearRare)

	u := rng.Float64()
	switch {
	case u < pRare:
		tp.sinceRare = 0
		tp.sinceNearRare = countNearRare
		return TierRare
	case u < pRare+pNearRare:
		tp.sinceRare = countRare
		tp.sinceNearRare = 0
		return TierNearRare
	default:
		tp.sinceRare = countRare
		tp.sinceNearRare = countNearRare
		return TierCommon
	}
}
