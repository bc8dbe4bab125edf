package gacha

// StandardBanner is the permanent banner: two-tier pity with a character /
// weapon balance on both tiers and no up set.
type StandardBanner struct {
	cfg StandardConfig
	rng RandomSource

	pity        tierPity
	rareBal     balance
	nearRareBal balance
}

// NewStandardBanner returns a standard banner with default rates.
func NewStandardBanner() *StandardBanner {
	b, err := NewStandardBannerWith(DefaultStandardConfig(), nil)
	if err != nil {
		panic(err) // defaults are valid
	}
	return b
}

// NewStandardBannerWith validates cfg and returns a fresh banner.
// A nil rng selects DefaultRNG.
func NewStandardBannerWith(cfg StandardConfig, rng RandomSource) (*StandardBanner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	return &StandardBanner{cfg: cfg, rng: rng}, nil
}

// Draw performs one draw.
func (b *StandardBanner) Draw() Outcome {
	switch b.pity.roll(b.cfg.Rare, b.cfg.NearRare, b.rng) {
	case TierRare:
		b.nearRareBal.miss()
		if b.rareBal.resolve(b.cfg.Rare.BalanceProb, b.rng) == CategoryA {
			return Outcome{Kind: KindRareA}
		}
		return Outcome{Kind: KindRareB}
	case TierNearRare:
		b.rareBal.miss()
		if b.nearRareBal.resolve(b.cfg.NearRare.BalanceProb, b.rng) == CategoryA {
			return Outcome{Kind: KindNearRareA}
		}
		return Outcome{Kind: KindNearRareB}
	default:
		b.rareBal.miss()
		b.nearRareBal.miss()
		return common()
	}
}

func (b *StandardBanner) Counters() Counters {
	return Counters{
		SinceRare:        b.pity.sinceRare,
		SinceNearRare:    b.pity.sinceNearRare,
		RareBalanceA:     b.rareBal.sinceA,
		RareBalanceB:     b.rareBal.sinceB,
		NearRareBalanceA: b.nearRareBal.sinceA,
		NearRareBalanceB: b.nearRareBal.sinceB,
		// no up set: nothing is ever off-banner
		LastRareWasUp:     true,
		LastNearRareWasUp: true,
	}
}
