package gacha

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardRareIsBalanced(t *testing.T) {
	rng := script(t, []float64{uRare}, 0)
	b, err := NewStandardBannerWith(DefaultStandardConfig(), rng)
	require.NoError(t, err)

	assert.Equal(t, Outcome{Kind: KindRareA}, b.Draw())
	assert.True(t, rng.drained())
	ra, rb := b.RareBalance()
	na, nb := b.NearRareBalance()
	assert.Equal(t, []int{0, 1}, []int{ra, rb})
	assert.Equal(t, []int{1, 1}, []int{na, nb})
}

func TestStandardNearRareAndCommon(t *testing.T) {
	rng := script(t, []float64{uCommon, uNearRare}, 1)
	b, err := NewStandardBannerWith(DefaultStandardConfig(), rng)
	require.NoError(t, err)

	assert.Equal(t, Outcome{Kind: KindCommon}, b.Draw())
	c := b.Counters()
	assert.Equal(t, 1, c.RareBalanceA)
	assert.Equal(t, 1, c.RareBalanceB)
	assert.Equal(t, 1, c.NearRareBalanceA)
	assert.Equal(t, 1, c.NearRareBalanceB)

	assert.Equal(t, Outcome{Kind: KindNearRareB}, b.Draw())
	c = b.Counters()
	assert.Equal(t, 2, c.SinceRare)
	assert.Equal(t, 0, c.SinceNearRare)
	assert.Equal(t, 2, c.RareBalanceA)
	assert.Equal(t, 2, c.RareBalanceB)
	assert.Equal(t, 2, c.NearRareBalanceA)
	assert.Equal(t, 0, c.NearRareBalanceB)
}

func TestStandardLongRunParity(t *testing.T) {
	b, err := NewStandardBannerWith(DefaultStandardConfig(), NewSeededRNG(8))
	require.NoError(t, err)
	res, err := Tally(t.Context(), b, 2000000, nil)
	require.NoError(t, err)

	nearA, nearB := res.Counts[KindNearRareA], res.Counts[KindNearRareB]
	assert.InDelta(t, 0.5, float64(nearA)/float64(nearA+nearB), 0.01)
	rareA, rareB := res.Counts[KindRareA], res.Counts[KindRareB]
	assert.InDelta(t, 0.5, float64(rareA)/float64(rareA+rareB), 0.05)
}
