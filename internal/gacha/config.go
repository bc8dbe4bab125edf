package gacha

import (
	"fmt"
	"strings"
)

// UpConfig describes the up set of one tier.
type UpConfig struct {
	Prob     float64  // chance a hit is up when the previous hit was up
	Slots    int      // number of up items
	Category Category // balance category of the up items (near-rare tier only)
}

func (u UpConfig) validate(name string, needCategory bool) []string {
	var errs []string
	if !probIn(u.Prob, true) {
		errs = append(errs, name+".prob must be in (0,1]")
	}
	if u.Slots < 1 {
		errs = append(errs, name+".slots must be >= 1")
	}
	if needCategory && u.Category != CategoryA && u.Category != CategoryB {
		errs = append(errs, name+".category must be character or weapon")
	}
	return errs
}

// StandardConfig configures the standard (no up) banner.
type StandardConfig struct {
	Rare     TierCurve
	NearRare TierCurve
}

// CharacterConfig configures the character banner.
type CharacterConfig struct {
	Rare       TierCurve
	NearRare   TierCurve
	RareUp     UpConfig
	NearRareUp UpConfig
}

// WeaponConfig configures the weapon banner and its want guarantee.
type WeaponConfig struct {
	Rare       TierCurve
	NearRare   TierCurve
	RareUp     UpConfig
	NearRareUp UpConfig

	WantCeiling int  // non-target rare hits allowed before the target is forced
	WantTarget  *int // initial want slot; nil starts untracked
	// WantResetOnAnyUp clears the want counter on every up hit instead of
	// only on the target.
	WantResetOnAnyUp bool
}

// BannerSet bundles one config per banner kind.
type BannerSet struct {
	Standard  StandardConfig
	Character CharacterConfig
	Weapon    WeaponConfig
}

func DefaultStandardConfig() StandardConfig {
	return StandardConfig{
		Rare:     TierCurve{Base: 0.006, Threshold: 73, Ceiling: 90, BalanceThreshold: 146},
		NearRare: TierCurve{Base: 0.051, Threshold: 8, Ceiling: 10, BalanceThreshold: 17},
	}
}

func DefaultCharacterConfig() CharacterConfig {
	return CharacterConfig{
		Rare:       TierCurve{Base: 0.006, Threshold: 73, Ceiling: 90},
		NearRare:   TierCurve{Base: 0.051, Threshold: 8, Ceiling: 10, BalanceThreshold: 17},
		RareUp:     UpConfig{Prob: 0.5, Slots: 1},
		NearRareUp: UpConfig{Prob: 0.5, Slots: 3, Category: CategoryA},
	}
}

func DefaultWeaponConfig() WeaponConfig {
	target := 0
	return WeaponConfig{
		Rare:        TierCurve{Base: 0.007, Threshold: 62, Ceiling: 80},
		NearRare:    TierCurve{Base: 0.06, Threshold: 7, Ceiling: 10, BalanceThreshold: 14},
		RareUp:      UpConfig{Prob: 0.75, Slots: 2},
		NearRareUp:  UpConfig{Prob: 0.75, Slots: 5, Category: CategoryB},
		WantCeiling: 2,
		WantTarget:  &target,
	}
}

func DefaultBannerSet() BannerSet {
	return BannerSet{
		Standard:  DefaultStandardConfig(),
		Character: DefaultCharacterConfig(),
		Weapon:    DefaultWeaponConfig(),
	}
}

func configError(banner string, errs []string) error {
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s: %s", ErrBannerConfig, banner, strings.Join(errs, "; "))
}

func (c StandardConfig) Validate() error {
	var errs []string
	errs = append(errs, c.Rare.validate("rare", true)...)
	errs = append(errs, c.NearRare.validate("near_rare", true)...)
	return configError("standard", errs)
}

func (c CharacterConfig) Validate() error {
	var errs []string
	errs = append(errs, c.Rare.validate("rare", false)...)
	errs = append(errs, c.NearRare.validate("near_rare", true)...)
	errs = append(errs, c.RareUp.validate("rare_up", false)...)
	errs = append(errs, c.NearRareUp.validate("near_rare_up", true)...)
	return configError("character", errs)
}

func (c WeaponConfig) Validate() error {
	var errs []string
	errs = append(errs, c.Rare.validate("rare", false)...)
	errs = append(errs, c.NearRare.validate("near_rare", true)...)
	errs = append(errs, c.RareUp.validate("rare_up", false)...)
	errs = append(errs, c.NearRareUp.validate("near_rare_up", true)...)
	if c.WantCeiling < 0 {
		errs = append(errs, "want.ceiling must be >= 0")
	}
	if c.WantTarget != nil && (*c.WantTarget < 0 || *c.WantTarget >= c.RareUp.Slots) {
		errs = append(errs, fmt.Sprintf("want.target must be in [0,%d)", c.RareUp.Slots))
	}
	return configError("weapon", errs)
}

func (s BannerSet) Validate() error {
	for _, err := range []error{s.Standard.Validate(), s.Character.Validate(), s.Weapon.Validate()} {
		if err != nil {
			return err
		}
	}
	return nil
}
