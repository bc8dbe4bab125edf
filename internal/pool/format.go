package pool

import (
	"fmt"

	"github.com/xtding233/gacha-sim/internal/gacha"
)

// 24-bit ANSI styles per tier; common items stay plain.
const (
	ansiReset    = "\x1b[0m"
	ansiRare     = "\x1b[01m\x1b[38;2;186;106;53m"
	ansiNearRare = "\x1b[01m\x1b[38;2;160;90;215m"
)

// Format wraps name in the color of the outcome's tier.
func Format(o gacha.Outcome, name string, color bool) string {
	if !color {
		return name
	}
	switch o.Tier() {
	case gacha.TierRare:
		return fmt.Sprint(ansiRare, name, ansiReset)
	case gacha.TierNearRare:
		return fmt.Sprint(ansiNearRare, name, ansiReset)
	}
	return name
}

// Display resolves and formats an outcome in one step.
func (p Pool) Display(o gacha.Outcome, rng gacha.RandomSource, color bool) string {
	return Format(o, p.Name(o, rng), color)
}
