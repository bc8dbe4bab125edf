package gacha

// WeaponBanner is the limited weapon banner: up sets on both tiers and a want
// counter that forces the chosen rare up slot after WantCeiling misses.
type WeaponBanner struct {
	cfg WeaponConfig
	rng RandomSource

	pity        tierPity
	nearRareBal balance
	rareUp      upGuarantee
	nearRareUp  upGuarantee
	want        want
}

// NewWeaponBanner returns a weapon banner with default rates, chasing slot 0.
func NewWeaponBanner() *WeaponBanner {
	b, err := NewWeaponBannerWith(DefaultWeaponConfig(), nil)
	if err != nil {
		panic(err) // defaults are valid
	}
	return b
}

// NewWeaponBannerWith validates cfg and returns a fresh banner.
// A nil rng selects DefaultRNG.
func NewWeaponBannerWith(cfg WeaponConfig, rng RandomSource) (*WeaponBanner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	b := &WeaponBanner{
		cfg:        cfg,
		rng:        rng,
		rareUp:     newUpGuarantee(),
		nearRareUp: newUpGuarantee(),
	}
	if cfg.WantTarget != nil {
		if err := b.want.setTarget(*cfg.WantTarget, cfg.RareUp.Slots); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Draw performs one draw.
func (b *WeaponBanner) Draw() Outcome {
	switch b.pity.roll(b.cfg.Rare, b.cfg.NearRare, b.rng) {
	case TierRare:
		b.nearRareBal.miss()
		if up := b.want.rareHit(&b.rareUp, b.cfg, b.rng); up.Up {
			return Outcome{Kind: KindRareUp, Slot: up.Slot}
		}
		return Outcome{Kind: KindRareOther}
	case TierNearRare:
		return drawNearRare(&b.nearRareUp, &b.nearRareBal, b.cfg.NearRareUp, b.cfg.NearRare, b.rng)
	default:
		b.nearRareBal.miss()
		return common()
	}
}

// SetWant switches the chased slot and restarts its counter.
func (b *WeaponBanner) SetWant(slot int) error {
	return b.want.setTarget(slot, b.cfg.RareUp.Slots)
}

// ClearWant stops tracking a target.
func (b *WeaponBanner) ClearWant() { b.want.clear() }

// Want reports the tracked target, if any.
func (b *WeaponBanner) Want() (WantState, bool) { return b.want.get() }

func (b *WeaponBanner) Counters() Counters {
	c := Counters{
		SinceRare:         b.pity.sinceRare,
		SinceNearRare:     b.pity.sinceNearRare,
		NearRareBalanceA:  b.nearRareBal.sinceA,
		NearRareBalanceB:  b.nearRareBal.sinceB,
		LastRareWasUp:     b.rareUp.lastWasUp,
		LastNearRareWasUp: b.nearRareUp.lastWasUp,
	}
	if w, ok := b.want.get(); ok {
		c.Want = &w
	}
	return c
}
