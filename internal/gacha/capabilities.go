package gacha

// Read-only views of banner state. Each banner implements exactly the
// capabilities its rules use; callers type-assert a Drawer to reach them.

// PityInfo exposes the tier counters.
type PityInfo interface {
	SinceLastRare() int
	SinceLastNearRare() int
}

// UpInfo exposes the guarantee flags of banners with up sets.
type UpInfo interface {
	LastRareWasUp() bool
	LastNearRareWasUp() bool
}

// BalanceInfo exposes the near-rare balance counters.
type BalanceInfo interface {
	NearRareBalance() (sinceA, sinceB int)
}

// RareBalanceInfo exposes the rare balance counters.
type RareBalanceInfo interface {
	RareBalance() (sinceA, sinceB int)
}

// WantInfo exposes the want state.
type WantInfo interface {
	Want() (WantState, bool)
}

// WantSetter lets the owner pick the chased slot.
type WantSetter interface {
	SetWant(slot int) error
	ClearWant()
}

var (
	_ interface {
		Drawer
		PityInfo
		BalanceInfo
		RareBalanceInfo
	} = (*StandardBanner)(nil)
	_ interface {
		Drawer
		PityInfo
		UpInfo
		BalanceInfo
	} = (*CharacterBanner)(nil)
	_ interface {
		Drawer
		PityInfo
		UpInfo
		BalanceInfo
		WantInfo
		WantSetter
	} = (*WeaponBanner)(nil)
)

func (p tierPity) SinceLastRare() int     { return p.sinceRare }
func (p tierPity) SinceLastNearRare() int { return p.sinceNearRare }

func (b *StandardBanner) SinceLastRare() int          { return b.pity.SinceLastRare() }
func (b *StandardBanner) SinceLastNearRare() int      { return b.pity.SinceLastNearRare() }
func (b *StandardBanner) RareBalance() (int, int)     { return b.rareBal.sinceA, b.rareBal.sinceB }
func (b *StandardBanner) NearRareBalance() (int, int) { return b.nearRareBal.sinceA, b.nearRareBal.sinceB }

func (b *CharacterBanner) SinceLastRare() int          { return b.pity.SinceLastRare() }
func (b *CharacterBanner) SinceLastNearRare() int      { return b.pity.SinceLastNearRare() }
func (b *CharacterBanner) LastRareWasUp() bool         { return b.rareUp.lastWasUp }
func (b *CharacterBanner) LastNearRareWasUp() bool     { return b.nearRareUp.lastWasUp }
func (b *CharacterBanner) NearRareBalance() (int, int) { return b.nearRareBal.sinceA, b.nearRareBal.sinceB }

func (b *WeaponBanner) SinceLastRare() int          { return b.pity.SinceLastRare() }
func (b *WeaponBanner) SinceLastNearRare() int      { return b.pity.SinceLastNearRare() }
func (b *WeaponBanner) LastRareWasUp() bool         { return b.rareUp.lastWasUp }
func (b *WeaponBanner) LastNearRareWasUp() bool     { return b.nearRareUp.lastWasUp }
func (b *WeaponBanner) NearRareBalance() (int, int) { return b.nearRareBal.sinceA, b.nearRareBal.sinceB }
