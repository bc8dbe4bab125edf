package gacha

import (
	"fmt"
	"strings"
)

// Tier is the rarity tier a draw lands on.
type Tier int

const (
	TierCommon Tier = iota
	TierNearRare
	TierRare
)

func (t Tier) String() string {
	switch t {
	case TierRare:
		return "rare"
	case TierNearRare:
		return "near_rare"
	default:
		return "common"
	}
}

// Category splits a tier between its two item pools.
type Category int

const (
	CategoryNone Category = iota
	CategoryA             // characters
	CategoryB             // weapons
)

func (c Category) String() string {
	switch c {
	case CategoryA:
		return "character"
	case CategoryB:
		return "weapon"
	default:
		return "none"
	}
}

// ParseCategory accepts "a"/"character" and "b"/"weapon".
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "a", "character":
		return CategoryA, nil
	case "b", "weapon":
		return CategoryB, nil
	}
	return CategoryNone, fmt.Errorf("unknown category %q", s)
}

// Kind classifies one draw.
type Kind int

const (
	KindCommon Kind = iota

	// standard banner
	KindRareA
	KindRareB
	KindNearRareA
	KindNearRareB

	// banners with an up set
	KindRareUp
	KindRareOther
	KindNearRareUp
	KindNearRareOtherA
	KindNearRareOtherB
)

var kindNames = map[Kind]string{
	KindCommon:         "common",
	KindRareA:          "rare_character",
	KindRareB:          "rare_weapon",
	KindNearRareA:      "near_rare_character",
	KindNearRareB:      "near_rare_weapon",
	KindRareUp:         "rare_up",
	KindRareOther:      "rare_other",
	KindNearRareUp:     "near_rare_up",
	KindNearRareOtherA: "near_rare_other_character",
	KindNearRareOtherB: "near_rare_other_weapon",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Outcome is the immutable classification of one draw. Slot is meaningful
// only for KindRareUp and KindNearRareUp.
type Outcome struct {
	Kind Kind
	Slot int
}

func (o Outcome) Tier() Tier {
	switch o.Kind {
	case KindRareA, KindRareB, KindRareUp, KindRareOther:
		return TierRare
	case KindNearRareA, KindNearRareB, KindNearRareUp, KindNearRareOtherA, KindNearRareOtherB:
		return TierNearRare
	}
	return TierCommon
}

func (o Outcome) IsUp() bool {
	return o.Kind == KindRareUp || o.Kind == KindNearRareUp
}

// Category reports the balance category for outcomes that carry one.
func (o Outcome) Category() Category {
	switch o.Kind {
	case KindRareA, KindNearRareA, KindNearRareOtherA:
		return CategoryA
	case KindRareB, KindNearRareB, KindNearRareOtherB:
		return CategoryB
	}
	return CategoryNone
}

func (o Outcome) String() string {
	if o.IsUp() {
		return fmt.Sprintf("%s(%d)", o.Kind, o.Slot)
	}
	return o.Kind.String()
}

func common() Outcome { return Outcome{Kind: KindCommon} }
