package gacha

import "fmt"

// WantState tracks the chosen rare up slot on the weapon banner.
type WantState struct {
	Target int `json:"target"` // up slot being chased
	Since  int `json:"since"`  // rare hits since the target was last won
}

// want is the tagged optional want state: nil means untracked.
type want struct {
	state *WantState
}

func (w *want) get() (WantState, bool) {
	if w.state == nil {
		return WantState{}, false
	}
	return *w.state, true
}

// rareHit applies the want policy to one rare hit:
// - untracked => ordinary up selection
// - Since reached ceiling => target is forced, counter and guarantee reset
// - otherwise ordinary up selection; winning the target clears the counter,
// anything else advances it (or clears it on any up if resetOnAnyUp)
func (w *want) rareHit(g *upGuarantee, cfg WeaponConfig, rng RandomSource) UpResult {
	if w.state == nil {
		return g.selectUp(cfg.RareUp, rng)
	}
	if w.state.Since >= cfg.WantCeiling {
		w.state.Since = 0
		g.lastWasUp = true
		return UpResult{Up: true, Slot: w.state.Target}
	}

	res := g.selectUp(cfg.RareUp, rng)
	switch {
	case res.Up && res.Slot == w.state.Target:
		w.state.Since = 0
	case res.Up && cfg.WantResetOnAnyUp:
		w.state.Since = 0
	default:
		// A different up slot counts as a miss unless WantResetOnAnyUp.
		w.state.Since++
	}
	return res
}

// setTarget starts tracking slot with a fresh counter.
func (w *want) setTarget(slot, slots int) error {
	if slot < 0 || slot >= slots {
		return fmt.Errorf("%w: want slot %d out of range [0,%d)", ErrBannerConfig, slot, slots)
	}
	w.state = &WantState{Target: slot}
	return nil
}

func (w *want) clear() { w.state = nil }
