package gacha

import "fmt"

// UpResult is the up-set decision for one tier hit.
type UpResult struct {
	Up   bool
	Slot int // valid when Up
}

// NonUp is the off-banner result.
var NonUp = UpResult{}

// SelectUp decides up vs off-banner for one hit of a tier.
// - If the previous hit of the tier was off-banner => forced up.
// - Otherwise up with probability prob.
// Up picks slot 0 when slots == 1, else a uniform slot in [0, slots).
func SelectUp(wasLastUp bool, prob float64, slots int, rng RandomSource) UpResult {
	if wasLastUp && !hit(prob, rng) {
		return NonUp
	}
	if slots <= 1 {
		return UpResult{Up: true, Slot: 0}
	}
	return UpResult{Up: true, Slot: rng.IntN(slots)}
}

// upGuarantee carries the "previous hit was up" flag of one tier.
// The flag starts true: the first hit is an ordinary up/off roll.
type upGuarantee struct {
	lastWasUp bool
}

func newUpGuarantee() upGuarantee { return upGuarantee{lastWasUp: true} }

// selectUp runs SelectUp and records the result.
func (g *upGuarantee) selectUp(cfg UpConfig, rng RandomSource) UpResult {
	res := SelectUp(g.lastWasUp, cfg.Prob, cfg.Slots, rng)
	g.lastWasUp = res.Up
	return res
}

// Drawer is what every banner state machine offers its owner.
type Drawer interface {
	Draw() Outcome
	Counters() Counters
}

// Counters is a read-only snapshot of a banner's state.
// Fields that a banner does not track stay zero / nil.
type Counters struct {
	SinceRare         int        `json:"since_rare"`
	SinceNearRare     int        `json:"since_near_rare"`
	RareBalanceA      int        `json:"rare_balance_a,omitempty"`
	RareBalanceB      int        `json:"rare_balance_b,omitempty"`
	NearRareBalanceA  int        `json:"near_rare_balance_a"`
	NearRareBalanceB  int        `json:"near_rare_balance_b"`
	LastRareWasUp     bool       `json:"last_rare_was_up"`
	LastNearRareWasUp bool       `json:"last_near_rare_was_up"`
	Want              *WantState `json:"want,omitempty"`
}

// BannerKind selects a banner state machine.
type BannerKind string

const (
	BannerStandard  BannerKind = "standard"
	BannerCharacter BannerKind = "character"
	BannerWeapon    BannerKind = "weapon"
)

// ParseBannerKind validates a banner name.
func ParseBannerKind(s string) (BannerKind, error) {
	switch k := BannerKind(s); k {
	case BannerStandard, BannerCharacter, BannerWeapon:
		return k, nil
	}
	return "", fmt.Errorf("unknown banner %q", s)
}

// NewBanner builds a fresh banner of the given kind from set.
func NewBanner(kind BannerKind, set BannerSet, rng RandomSource) (Drawer, error) {
	switch kind {
	case BannerStandard:
		b, err := NewStandardBannerWith(set.Standard, rng)
		if err != nil {
			return nil, err
		}
		return b, nil
	case BannerCharacter:
		b, err := NewCharacterBannerWith(set.Character, rng)
		if err != nil {
			return nil, err
		}
		return b, nil
	case BannerWeapon:
		b, err := NewWeaponBannerWith(set.Weapon, rng)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
	return nil, fmt.Errorf("%w: unknown banner %q", ErrBannerConfig, kind)
}
