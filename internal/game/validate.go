package game

import (
	"fmt"
	"strings"

	"github.com/xtding233/gacha-sim/internal/gacha"
)

// ValidateRaw checks semantic constraints of a RawConfig. Only fields that are
// present are checked; the merged engine params are validated again by the
// gacha package.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	for _, b := range []struct {
		name string
		cfg  *BannerConfig
	}{
		{"standard", cfg.Banners.Standard},
		{"character", cfg.Banners.Character},
		{"weapon", cfg.Banners.Weapon},
	} {
		if b.cfg == nil {
			continue
		}
		prefix := "banners." + b.name
		errs = append(errs, validateCurve(prefix+".rare", b.cfg.Rare)...)
		errs = append(errs, validateCurve(prefix+".near_rare", b.cfg.NearRare)...)
		if b.name == "standard" && (b.cfg.RareUp != nil || b.cfg.NearRareUp != nil) {
			errs = append(errs, prefix+" has no up set; remove rare_up/near_rare_up")
		}
		errs = append(errs, validateUp(prefix+".rare_up", b.cfg.RareUp)...)
		errs = append(errs, validateUp(prefix+".near_rare_up", b.cfg.NearRareUp)...)
		if b.cfg.Want != nil {
			if b.name != "weapon" {
				errs = append(errs, prefix+".want is only supported on the weapon banner")
			}
			if w := b.cfg.Want; w.Ceiling != nil && *w.Ceiling < 0 {
				errs = append(errs, prefix+".want.ceiling must be >= 0")
			}
			if w := b.cfg.Want; w.Target != nil && *w.Target < 0 {
				errs = append(errs, prefix+".want.target must be >= 0")
			}
		}
	}

	// tokens (optional)
	if cfg.Tokens != nil {
		if cfg.Tokens.PerDraw != nil && *cfg.Tokens.PerDraw < 0 {
			errs = append(errs, "tokens.per_draw must be >= 0")
		}
		if cfg.Tokens.PerTenDraw != nil && *cfg.Tokens.PerTenDraw < 0 {
			errs = append(errs, "tokens.per_ten_draw must be >= 0")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateCurve(prefix string, c *CurveCfg) []string {
	if c == nil {
		return nil
	}
	var errs []string
	if c.Base != nil && (*c.Base <= 0 || *c.Base >= 1) {
		errs = append(errs, prefix+".base must be in (0,1)")
	}
	if c.Threshold != nil && *c.Threshold < 0 {
		errs = append(errs, prefix+".threshold must be >= 0")
	}
	if c.Threshold != nil && c.Ceiling != nil && *c.Ceiling <= *c.Threshold {
		errs = append(errs, prefix+".ceiling must be > threshold")
	}
	if c.BalanceThreshold != nil && *c.BalanceThreshold <= 0 {
		errs = append(errs, prefix+".balance_threshold must be >= 1")
	}
	return errs
}

func validateUp(prefix string, u *UpCfg) []string {
	if u == nil {
		return nil
	}
	var errs []string
	if u.Prob != nil && (*u.Prob <= 0 || *u.Prob > 1) {
		errs = append(errs, prefix+".prob must be in (0,1]")
	}
	if u.Slots != nil && *u.Slots < 1 {
		errs = append(errs, prefix+".slots must be >= 1")
	}
	if u.Category != "" {
		if _, err := gacha.ParseCategory(u.Category); err != nil {
			errs = append(errs, prefix+".category must be one of: character, weapon")
		}
	}
	return errs
}
