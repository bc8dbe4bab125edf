// types.go
package game

import (
	"github.com/xtding233/gacha-sim/internal/gacha"
	"github.com/xtding233/gacha-sim/internal/token"
)

// Raw config loaded from YAML. Every field is optional so that files can be
// layered default → game → pool.
type RawConfig struct {
	Version string        `yaml:"version"`
	Banners BannersConfig `yaml:"banners"`
	Tokens  *TokenConfig  `yaml:"tokens,omitempty"`
	Notes   string        `yaml:"notes,omitempty"`
}

type BannersConfig struct {
	Standard  *BannerConfig `yaml:"standard,omitempty"`
	Character *BannerConfig `yaml:"character,omitempty"`
	Weapon    *BannerConfig `yaml:"weapon,omitempty"`
}

type BannerConfig struct {
	Rare       *CurveCfg `yaml:"rare,omitempty"`
	NearRare   *CurveCfg `yaml:"near_rare,omitempty"`
	RareUp     *UpCfg    `yaml:"rare_up,omitempty"`
	NearRareUp *UpCfg    `yaml:"near_rare_up,omitempty"`
	Want       *WantCfg  `yaml:"want,omitempty"` // weapon only
}

type CurveCfg struct {
	Base             *float64 `yaml:"base,omitempty"`
	Threshold        *int     `yaml:"threshold,omitempty"`
	Ceiling          *int     `yaml:"ceiling,omitempty"`
	BalanceThreshold *int     `yaml:"balance_threshold,omitempty"`
}

type UpCfg struct {
	Prob     *float64 `yaml:"prob,omitempty"`
	Slots    *int     `yaml:"slots,omitempty"`
	Category string   `yaml:"category,omitempty"` // "character" | "weapon"
}

type WantCfg struct {
	Ceiling      *int  `yaml:"ceiling,omitempty"`
	Target       *int  `yaml:"target,omitempty"`
	Disabled     bool  `yaml:"disabled,omitempty"` // start untracked
	ResetOnAnyUp *bool `yaml:"reset_on_any_up,omitempty"`
}

type TokenConfig struct {
	Name       string `yaml:"name,omitempty"`
	PerDraw    *int   `yaml:"per_draw"`
	PerTenDraw *int   `yaml:"per_ten_draw"`
}

// Normalized engine params used by internal/gacha.
type EngineParams struct {
	Banners gacha.BannerSet
	Token   token.Token
	Version string // effective config version for tracing
}
