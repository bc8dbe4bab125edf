package gacha

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScriptedWeapon(t *testing.T, cfg WeaponConfig, rng RandomSource) *WeaponBanner {
	t.Helper()
	b, err := NewWeaponBannerWith(cfg, rng)
	require.NoError(t, err)
	return b
}

func TestWeaponFreshState(t *testing.T) {
	b := NewWeaponBanner()
	w, ok := b.Want()
	require.True(t, ok)
	assert.Equal(t, WantState{Target: 0, Since: 0}, w)
	assert.True(t, b.LastRareWasUp())
	assert.True(t, b.LastNearRareWasUp())
	assert.Equal(t, 0, b.SinceLastRare())
	assert.Equal(t, 0, b.SinceLastNearRare())
}

func TestWeaponWantCeilingForcesTarget(t *testing.T) {
	rng := script(t, []float64{uRare})
	b := newScriptedWeapon(t, DefaultWeaponConfig(), rng)
	b.want.state = &WantState{Target: 1, Since: 2}
	b.rareUp.lastWasUp = true

	assert.Equal(t, Outcome{Kind: KindRareUp, Slot: 1}, b.Draw())
	assert.True(t, rng.drained(), "forced target must not consume randomness")
	w, _ := b.Want()
	assert.Equal(t, WantState{Target: 1, Since: 0}, w)
	assert.True(t, b.LastRareWasUp())
}

func TestWeaponWantProgression(t *testing.T) {
	rng := script(t,
		[]float64{
			uRare, 0.1, // up roll passes, slot from IntN
			uRare, 0.9, // off-banner
			uRare, // want ceiling reached
		},
		1,
	)
	b := newScriptedWeapon(t, DefaultWeaponConfig(), rng)

	assert.Equal(t, Outcome{Kind: KindRareUp, Slot: 1}, b.Draw())
	w, _ := b.Want()
	assert.Equal(t, 1, w.Since, "an up hit on another slot still counts toward the want")

	assert.Equal(t, Outcome{Kind: KindRareOther}, b.Draw())
	w, _ = b.Want()
	assert.Equal(t, 2, w.Since)
	assert.False(t, b.LastRareWasUp())

	assert.Equal(t, Outcome{Kind: KindRareUp, Slot: 0}, b.Draw())
	w, _ = b.Want()
	assert.Equal(t, 0, w.Since)
	assert.True(t, rng.drained())
}

func TestWeaponWantResetOnTarget(t *testing.T) {
	b := newScriptedWeapon(t, DefaultWeaponConfig(), script(t, []float64{uRare, 0.1}, 0))
	b.want.state = &WantState{Target: 0, Since: 1}
	assert.Equal(t, Outcome{Kind: KindRareUp, Slot: 0}, b.Draw())
	w, _ := b.Want()
	assert.Equal(t, 0, w.Since)
}

func TestWeaponWantResetOnAnyUp(t *testing.T) {
	cfg := DefaultWeaponConfig()
	cfg.WantResetOnAnyUp = true
	b := newScriptedWeapon(t, cfg, script(t, []float64{uRare, 0.1}, 1))
	b.want.state = &WantState{Target: 0, Since: 1}

	assert.Equal(t, Outcome{Kind: KindRareUp, Slot: 1}, b.Draw())
	w, _ := b.Want()
	assert.Equal(t, 0, w.Since)
}

func TestWeaponUntrackedWant(t *testing.T) {
	cfg := DefaultWeaponConfig()
	cfg.WantTarget = nil
	rng := script(t, []float64{uRare, 0.9, uRare}, 1)
	b := newScriptedWeapon(t, cfg, rng)
	_, ok := b.Want()
	require.False(t, ok)
	assert.Nil(t, b.Counters().Want)

	assert.Equal(t, Outcome{Kind: KindRareOther}, b.Draw())
	// guarantee still applies without a want
	assert.Equal(t, Outcome{Kind: KindRareUp, Slot: 1}, b.Draw())
	assert.True(t, rng.drained())
}

func TestWeaponSetWant(t *testing.T) {
	b := NewWeaponBanner()
	require.NoError(t, b.SetWant(1))
	w, ok := b.Want()
	require.True(t, ok)
	assert.Equal(t, WantState{Target: 1}, w)

	assert.ErrorIs(t, b.SetWant(2), ErrBannerConfig)
	assert.ErrorIs(t, b.SetWant(-1), ErrBannerConfig)

	b.ClearWant()
	_, ok = b.Want()
	assert.False(t, ok)
}

func TestWeaponNearRareUpCreditsWeapons(t *testing.T) {
	// weapon near-rare: base 0.06, so 0.03 is still near-rare after the 0.007 rare band
	rng := script(t, []float64{0.03, 0.5}, 4)
	b := newScriptedWeapon(t, DefaultWeaponConfig(), rng)

	assert.Equal(t, Outcome{Kind: KindNearRareUp, Slot: 4}, b.Draw())
	a, w := b.NearRareBalance()
	assert.Equal(t, 1, a)
	assert.Equal(t, 0, w)
}

func TestWeaponWantWindowInvariant(t *testing.T) {
	cfg := DefaultWeaponConfig()
	b := newScriptedWeapon(t, cfg, NewSeededRNG(77))

	var rares []Outcome
	for i := 0; i < 400000; i++ {
		o := b.Draw()
		if o.Tier() == TierRare {
			rares = append(rares, o)
		}
		if w, ok := b.Want(); ok {
			require.LessOrEqual(t, w.Since, cfg.WantCeiling)
		}
	}
	require.Greater(t, len(rares), 3000)

	window := cfg.WantCeiling + 1
	for i := 0; i+window <= len(rares); i++ {
		found := false
		for _, o := range rares[i : i+window] {
			if o.Kind == KindRareUp && o.Slot == *cfg.WantTarget {
				found = true
				break
			}
		}
		require.True(t, found, "no target in rare hits %d..%d: %v", i, i+window-1, rares[i:i+window])
	}
}

func TestWeaponGuaranteeInvariant(t *testing.T) {
	b := newScriptedWeapon(t, DefaultWeaponConfig(), NewSeededRNG(3))
	var last *Outcome
	for i := 0; i < 300000; i++ {
		o := b.Draw()
		if o.Tier() != TierRare {
			continue
		}
		if last != nil && last.Kind == KindRareOther {
			require.Equal(t, KindRareUp, o.Kind, "draw %d", i)
		}
		last = &o
	}
}
