// resolve.go
package game

import (
	"fmt"

	"github.com/xtding233/gacha-sim/internal/gacha"
	"github.com/xtding233/gacha-sim/internal/token"
)

// Overrides carries per-run tweaks from flags or requests, applied after the
// file layers.
type Overrides struct {
	WantTarget       *int
	WantCeiling      *int
	DisableWant      bool
	CharacterRareUp  *float64
	WeaponRareUp     *float64
	WantResetOnAnyUp *bool
}

type Resolver interface {
	// Returns merged RawConfig and normalized EngineParams
	Resolve(game, pool string, o Overrides) (RawConfig, EngineParams, error)
}

var _ Resolver = (*Loader)(nil)

// Resolve merges default → game → pool → overrides into engine params.
func (l *Loader) Resolve(game, pool string, o Overrides) (RawConfig, EngineParams, error) {
	raw, err := l.LoadMerged(game, pool)
	if err != nil {
		return RawConfig{}, EngineParams{}, err
	}
	if err := ValidateRaw(raw); err != nil {
		return raw, EngineParams{}, err
	}
	params, err := Normalize(raw, o)
	return raw, params, err
}

// Normalize turns a merged RawConfig into engine params, starting from the
// built-in defaults. The result is validated by the gacha package.
func Normalize(raw RawConfig, o Overrides) (EngineParams, error) {
	set := gacha.DefaultBannerSet()

	if b := raw.Banners.Standard; b != nil {
		applyCurve(&set.Standard.Rare, b.Rare)
		applyCurve(&set.Standard.NearRare, b.NearRare)
	}
	if b := raw.Banners.Character; b != nil {
		applyCurve(&set.Character.Rare, b.Rare)
		applyCurve(&set.Character.NearRare, b.NearRare)
		if err := applyUp(&set.Character.RareUp, b.RareUp); err != nil {
			return EngineParams{}, err
		}
		if err := applyUp(&set.Character.NearRareUp, b.NearRareUp); err != nil {
			return EngineParams{}, err
		}
	}
	if b := raw.Banners.Weapon; b != nil {
		applyCurve(&set.Weapon.Rare, b.Rare)
		applyCurve(&set.Weapon.NearRare, b.NearRare)
		if err := applyUp(&set.Weapon.RareUp, b.RareUp); err != nil {
			return EngineParams{}, err
		}
		if err := applyUp(&set.Weapon.NearRareUp, b.NearRareUp); err != nil {
			return EngineParams{}, err
		}
		if w := b.Want; w != nil {
			if w.Ceiling != nil {
				set.Weapon.WantCeiling = *w.Ceiling
			}
			if w.Target != nil {
				v := *w.Target
				set.Weapon.WantTarget = &v
			}
			if w.Disabled {
				set.Weapon.WantTarget = nil
			}
			if w.ResetOnAnyUp != nil {
				set.Weapon.WantResetOnAnyUp = *w.ResetOnAnyUp
			}
		}
	}

	// overrides
	if o.CharacterRareUp != nil {
		set.Character.RareUp.Prob = *o.CharacterRareUp
	}
	if o.WeaponRareUp != nil {
		set.Weapon.RareUp.Prob = *o.WeaponRareUp
	}
	if o.WantCeiling != nil {
		set.Weapon.WantCeiling = *o.WantCeiling
	}
	if o.WantTarget != nil {
		v := *o.WantTarget
		set.Weapon.WantTarget = &v
	}
	if o.DisableWant {
		set.Weapon.WantTarget = nil
	}
	if o.WantResetOnAnyUp != nil {
		set.Weapon.WantResetOnAnyUp = *o.WantResetOnAnyUp
	}

	if err := set.Validate(); err != nil {
		return EngineParams{}, err
	}

	tok := token.Default()
	if t := raw.Tokens; t != nil {
		if t.Name != "" {
			tok.Name = t.Name
		}
		if t.PerDraw != nil {
			tok.PerDraw = *t.PerDraw
		}
		if t.PerTenDraw != nil {
			tok.PerTenDraw = *t.PerTenDraw
		}
	}

	return EngineParams{Banners: set, Token: tok, Version: raw.Version}, nil
}

func applyCurve(dst *gacha.TierCurve, c *CurveCfg) {
	if c == nil {
		return
	}
	if c.Base != nil {
		dst.Base = *c.Base
	}
	if c.Threshold != nil {
		dst.Threshold = *c.Threshold
	}
	if c.Ceiling != nil {
		dst.Ceiling = *c.Ceiling
	}
	if c.BalanceThreshold != nil {
		dst.BalanceThreshold = *c.BalanceThreshold
	}
}

func applyUp(dst *gacha.UpConfig, u *UpCfg) error {
	if u == nil {
		return nil
	}
	if u.Prob != nil {
		dst.Prob = *u.Prob
	}
	if u.Slots != nil {
		dst.Slots = *u.Slots
	}
	if u.Category != "" {
		c, err := gacha.ParseCategory(u.Category)
		if err != nil {
			return fmt.Errorf("%w: %v", gacha.ErrBannerConfig, err)
		}
		dst.Category = c
	}
	return nil
}
