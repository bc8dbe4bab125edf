package gacha

// CharacterBanner is the limited character banner: one up item on the rare
// tier and an up set on the near-rare tier. Only off-banner near-rare hits are
// split between characters and weapons.
type CharacterBanner struct {
	cfg CharacterConfig
	rng RandomSource

	pity        tierPity
	nearRareBal balance
	rareUp      upGuarantee
	nearRareUp  upGuarantee
}

// NewCharacterBanner returns a character banner with default rates.
func NewCharacterBanner() *CharacterBanner {
	b, err := NewCharacterBannerWith(DefaultCharacterConfig(), nil)
	if err != nil {
		panic(err) // defaults are valid
	}
	return b
}

// NewCharacterBannerWith validates cfg and returns a fresh banner.
// A nil rng selects DefaultRNG.
func NewCharacterBannerWith(cfg CharacterConfig, rng RandomSource) (*CharacterBanner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	return &CharacterBanner{
		cfg:        cfg,
		rng:        rng,
		rareUp:     newUpGuarantee(),
		nearRareUp: newUpGuarantee(),
	}, nil
}

// Draw performs one draw.
func (b *CharacterBanner) Draw() Outcome {
	switch b.pity.roll(b.cfg.Rare, b.cfg.NearRare, b.rng) {
	case TierRare:
		b.nearRareBal.miss()
		if up := b.rareUp.selectUp(b.cfg.RareUp, b.rng); up.Up {
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

// drawNearRare resolves a near-rare hit on a banner with a near-rare up set.
// Up hits credit the up set's category; off-banner hits are contested.
func drawNearRare(g *upGuarantee, bal *balance, up UpConfig, curve TierCurve, rng RandomSource) Outcome {
	if res := g.selectUp(up, rng); res.Up {
		bal.award(up.Category)
		return Outcome{Kind: KindNearRareUp, Slot: res.Slot}
	}
	if bal.resolve(curve.BalanceProb, rng) == CategoryA {
		return Outcome{Kind: KindNearRareOtherA}
	}
	return Outcome{Kind: KindNearRareOtherB}
}

func (b *CharacterBanner) Counters() Counters {
	return Counters{
		SinceRare:         b.pity.sinceRare,
		SinceNearRare:     b.pity.sinceNearRare,
		NearRareBalanceA:  b.nearRareBal.sinceA,
		NearRareBalanceB:  b.nearRareBal.sinceB,
		LastRareWasUp:     b.rareUp.lastWasUp,
		LastNearRareWasUp: b.nearRareUp.lastWasUp,
	}
}
