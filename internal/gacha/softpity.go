package gacha

import "errors"

var ErrBannerConfig = errors.New("invalid banner config")

// softPityRamp is the per-draw slope past the threshold, in units of Base.
const softPityRamp = 10.0

// TierCurve defines the soft/hard pity curve of one tier.
// Example: Base=0.006, Threshold=73, Ceiling=90 → draw #74 has p=0.066,
// every further draw adds 0.06, and draw #90 is certain.
type TierCurve struct {
	Base             float64 // probability up to and including Threshold
	Threshold        int     // last count that still uses Base
	Ceiling          int     // hard pity: count at which a hit is certain
	BalanceThreshold int     // threshold of the halved per-category curve; 0 if unbalanced
}

// validate checks the curve; balanced tiers also need a BalanceThreshold.
func (c TierCurve) validate(name string, balanced bool) []string {
	var errs []string
	if !probIn(c.Base, false) {
		errs = append(errs, name+".base must be in (0,1)")
	}
	if c.Threshold < 0 {
		errs = append(errs, name+".threshold must be >= 0")
	}
	if c.Ceiling <= c.Threshold {
		errs = append(errs, name+".ceiling must be > threshold")
	}
	if balanced && c.BalanceThreshold <= 0 {
		errs = append(errs, name+".balance_threshold must be >= 1")
	}
	return errs
}

// ramp is the shared soft pity shape: flat base, then a steep linear climb.
func ramp(base float64, threshold, count int) float64 {
	if count > threshold {
		return base * (1 + softPityRamp*float64(count-threshold))
	}
	return base
}

// Prob returns the probability that the count-th draw since the last hit of
// this tier lands on it. Counts are 1-based: the first draw after a hit is 1.
// At or beyond Ceiling the result is never below 1.
func (c TierCurve) Prob(count int) float64 {
	p := ramp(c.Base, c.Threshold, count)
	if c.Ceiling > 0 && count >= c.Ceiling && p < 1 {
		p = 1
	}
	return p
}

// BalanceProb is the curve each balance category sees: half the tier's base
// with its own ramp past BalanceThreshold.
func (c TierCurve) BalanceProb(count int) float64 {
	return ramp(c.Base*0.5, c.BalanceThreshold, count)
}
