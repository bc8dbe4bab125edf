package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/gacha-sim/internal/gacha"
)

func seeded(seed uint64) Option {
	return WithRNG(func() gacha.RandomSource { return gacha.NewSeededRNG(seed) })
}

func TestCreateDrawDelete(t *testing.T) {
	s := NewStore(gacha.DefaultBannerSet(), seeded(1))

	id, err := s.Create(gacha.BannerCharacter)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())

	out, c, err := s.Draw(id, 10)
	require.NoError(t, err)
	assert.Len(t, out, 10)
	assert.Nil(t, c.Want)

	info, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, 10, info.Draws)
	assert.Equal(t, gacha.BannerCharacter, info.Kind)

	require.NoError(t, s.Delete(id))
	_, _, err = s.Draw(id, 1)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(id), ErrNotFound)
}

func TestCreateUnknownKind(t *testing.T) {
	s := NewStore(gacha.DefaultBannerSet())
	_, err := s.Create("limited")
	assert.ErrorIs(t, err, gacha.ErrBannerConfig)
	assert.Zero(t, s.Len())
}

func TestDrawCountBounds(t *testing.T) {
	s := NewStore(gacha.DefaultBannerSet(), seeded(1))
	id, err := s.Create(gacha.BannerStandard)
	require.NoError(t, err)

	for _, n := range []int{0, -1, MaxDrawsPerCall + 1} {
		_, _, err := s.Draw(id, n)
		assert.ErrorIs(t, err, ErrInvalidCount, "n=%d", n)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	s := NewStore(gacha.DefaultBannerSet(), seeded(7))
	a, err := s.Create(gacha.BannerCharacter)
	require.NoError(t, err)
	b, err := s.Create(gacha.BannerCharacter)
	require.NoError(t, err)

	outA, _, err := s.Draw(a, 200)
	require.NoError(t, err)
	// same seed, so b replays a exactly despite a having drawn first
	outB, _, err := s.Draw(b, 200)
	require.NoError(t, err)
	assert.Equal(t, outA, outB)
}

func TestSetWant(t *testing.T) {
	s := NewStore(gacha.DefaultBannerSet(), seeded(3))
	w, err := s.Create(gacha.BannerWeapon)
	require.NoError(t, err)

	c, err := s.SetWant(w, 1)
	require.NoError(t, err)
	require.NotNil(t, c.Want)
	assert.Equal(t, gacha.WantState{Target: 1}, *c.Want)

	_, err = s.SetWant(w, 5)
	assert.ErrorIs(t, err, gacha.ErrBannerConfig)

	c, err = s.SetWant(w, -1)
	require.NoError(t, err)
	assert.Nil(t, c.Want)

	ch, err := s.Create(gacha.BannerCharacter)
	require.NoError(t, err)
	_, err = s.SetWant(ch, 0)
	assert.ErrorIs(t, err, ErrNoWant)

	_, err = s.SetWant("nope", 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetBanners(t *testing.T) {
	s := NewStore(gacha.DefaultBannerSet())
	bad := gacha.DefaultBannerSet()
	bad.Weapon.RareUp.Slots = 0
	assert.Error(t, s.SetBanners(bad))

	next := gacha.DefaultBannerSet()
	next.Weapon.WantCeiling = 1
	require.NoError(t, s.SetBanners(next))
	assert.Equal(t, 1, s.Banners().Weapon.WantCeiling)
}

func TestConcurrentDraws(t *testing.T) {
	s := NewStore(gacha.DefaultBannerSet(), seeded(9))
	id, err := s.Create(gacha.BannerWeapon)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				_, _, err := s.Draw(id, 10)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	info, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, 8*50*10, info.Draws)
}

func TestItems(t *testing.T) {
	outs := []gacha.Outcome{
		{Kind: gacha.KindNearRareUp, Slot: 2},
		{Kind: gacha.KindCommon},
		{Kind: gacha.KindNearRareOtherB},
		{Kind: gacha.KindRareA},
	}
	items := Items(outs, nil)
	assert.Equal(t, []Item{
		{Kind: "near_rare_up", Tier: "near_rare", Up: true, Slot: 2},
		{Kind: "common", Tier: "common"},
		{Kind: "near_rare_other_weapon", Tier: "near_rare", Category: "weapon"},
		{Kind: "rare_character", Tier: "rare", Category: "character"},
	}, items)

	named := Items(outs[:1], func(o gacha.Outcome) string { return o.String() })
	assert.Equal(t, "near_rare_up(2)", named[0].Name)
}
