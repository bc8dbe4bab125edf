package gacha

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierCurveBaseBelowThreshold(t *testing.T) {
	c := DefaultCharacterConfig().Rare
	for count := 1; count <= c.Threshold; count++ {
		assert.Equal(t, c.Base, c.Prob(count), "count=%d", count)
	}
}

func TestTierCurveSoftPityRamp(t *testing.T) {
	c := TierCurve{Base: 0.006, Threshold: 73, Ceiling: 90}

	assert.InDelta(t, 0.066, c.Prob(74), 1e-12)
	assert.InDelta(t, 0.126, c.Prob(75), 1e-12)
	for count := 74; count < 90; count++ {
		assert.InDelta(t, c.Base*softPityRamp, c.Prob(count+1)-c.Prob(count), 1e-12)
	}
	assert.GreaterOrEqual(t, c.Prob(90), 1.0)
	assert.GreaterOrEqual(t, c.Prob(120), 1.0)
}

func TestTierCurveWeaponConstants(t *testing.T) {
	c := DefaultWeaponConfig().Rare
	assert.Equal(t, 0.007, c.Prob(62))
	assert.InDelta(t, 0.077, c.Prob(63), 1e-12)
	assert.GreaterOrEqual(t, c.Prob(80), 1.0)
}

func TestTierCurveCeilingIsHardPity(t *testing.T) {
	// the ramp alone would only reach 0.21 here
	c := TierCurve{Base: 0.01, Threshold: 5, Ceiling: 7}
	assert.InDelta(t, 0.11, c.Prob(6), 1e-12)
	assert.Equal(t, 1.0, c.Prob(7))
}

func TestBalanceProbIsHalved(t *testing.T) {
	c := TierCurve{Base: 0.051, Threshold: 8, Ceiling: 10, BalanceThreshold: 17}
	assert.InDelta(t, 0.0255, c.BalanceProb(1), 1e-12)
	assert.InDelta(t, 0.0255, c.BalanceProb(17), 1e-12)
	assert.InDelta(t, 0.0255*11, c.BalanceProb(18), 1e-12)
}
