package game

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Paths helper for default/game/pool files.
type Paths struct {
	BaseDir string // base directory, e.g., /opt/app/config
}

func (p Paths) DefaultPath() string {
	return filepath.Join(p.BaseDir, "games", "default.yaml")
}
func (p Paths) GamePath(game string) string {
	return filepath.Join(p.BaseDir, "games", game+".yaml")
}
func (p Paths) PoolPath(game, pool string) string {
	return filepath.Join(p.BaseDir, "games", game, "pools", pool+".yaml")
}

// Loader reads YAML configs and merges default → game → pool.
type Loader struct {
	paths Paths

	mu    sync.RWMutex
	cache map[string]RawConfig // key: "game" or "game/pool"
}

// NewLoader creates a config loader with the given base directory.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[string]RawConfig),
	}
}

// Paths returns the file layout the loader reads from.
func (l *Loader) Paths() Paths { return l.paths }

// WatchList returns the files that feed LoadMerged(game, pool).
func (l *Loader) WatchList(game, pool string) []string {
	out := []string{l.paths.DefaultPath()}
	if game != "" {
		out = append(out, l.paths.GamePath(game))
		if pool != "" {
			out = append(out, l.paths.PoolPath(game, pool))
		}
	}
	return out
}

func cacheKey(game, pool string) string {
	if pool == "" {
		return game
	}
	return game + "/" + pool
}

// LoadMerged loads and merges default → game → pool (game and pool optional).
// It returns the merged RawConfig (without normalization).
func (l *Loader) LoadMerged(game, pool string) (RawConfig, error) {
	key := cacheKey(game, pool)
	l.mu.RLock()
	if cfg, ok := l.cache[key]; ok {
		l.mu.RUnlock()
		return cfg, nil
	}
	l.mu.RUnlock()

	// default file may be absent: the built-in defaults stand in for it
	defCfg, err := readYAML(l.paths.DefaultPath())
	if err != nil {
		return RawConfig{}, fmt.Errorf("read default: %w", err)
	}
	var gameCfg, poolCfg RawConfig
	if game != "" {
		if gameCfg, err = readYAML(l.paths.GamePath(game)); err != nil {
			return RawConfig{}, fmt.Errorf("read game %q: %w", game, err)
		}
		if pool != "" {
			if poolCfg, err = readYAML(l.paths.PoolPath(game, pool)); err != nil {
				return RawConfig{}, fmt.Errorf("read pool %q: %w", pool, err)
			}
		}
	}

	// Merge: default <- game <- pool
	gameMerged := mergeRaw(defCfg, gameCfg)
	merged := mergeRaw(gameMerged, poolCfg)

	l.mu.Lock()
	l.cache[cacheKey(game, "")] = gameMerged
	l.cache[key] = merged
	l.mu.Unlock()

	return merged, nil
}

// Invalidate clears loader's cache. Call after hot-reload detects changes.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]RawConfig)
}

// readYAML loads a YAML file into RawConfig. Missing files return zero cfg, no error.
func readYAML(path string) (RawConfig, error) {
	var cfg RawConfig
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, nil
		}
		return RawConfig{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// pick returns b when set, else a.
func pick[T any](a, b *T) *T {
	if b != nil {
		return b
	}
	return a
}

// mergeRaw performs a deep merge: 'b' overrides 'a' where non-zero/non-nil.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}

	out.Banners.Standard = mergeBanner(a.Banners.Standard, b.Banners.Standard)
	out.Banners.Character = mergeBanner(a.Banners.Character, b.Banners.Character)
	out.Banners.Weapon = mergeBanner(a.Banners.Weapon, b.Banners.Weapon)

	switch {
	case a.Tokens == nil && b.Tokens != nil:
		c := *b.Tokens
		out.Tokens = &c
	case a.Tokens != nil && b.Tokens != nil:
		c := *a.Tokens
		if b.Tokens.Name != "" {
			c.Name = b.Tokens.Name
		}
		c.PerDraw = pick(c.PerDraw, b.Tokens.PerDraw)
		c.PerTenDraw = pick(c.PerTenDraw, b.Tokens.PerTenDraw)
		out.Tokens = &c
	}

	return out
}

func mergeBanner(a, b *BannerConfig) *BannerConfig {
	if b == nil {
		return a
	}
	if a == nil {
		c := *b
		return &c
	}
	return &BannerConfig{
		Rare:       mergeCurve(a.Rare, b.Rare),
		NearRare:   mergeCurve(a.NearRare, b.NearRare),
		RareUp:     mergeUp(a.RareUp, b.RareUp),
		NearRareUp: mergeUp(a.NearRareUp, b.NearRareUp),
		Want:       mergeWant(a.Want, b.Want),
	}
}

func mergeCurve(a, b *CurveCfg) *CurveCfg {
	if a == nil || b == nil {
		return pick(a, b)
	}
	return &CurveCfg{
		Base:             pick(a.Base, b.Base),
		Threshold:        pick(a.Threshold, b.Threshold),
		Ceiling:          pick(a.Ceiling, b.Ceiling),
		BalanceThreshold: pick(a.BalanceThreshold, b.BalanceThreshold),
	}
}

func mergeUp(a, b *UpCfg) *UpCfg {
	if a == nil || b == nil {
		return pick(a, b)
	}
	c := UpCfg{
		Prob:     pick(a.Prob, b.Prob),
		Slots:    pick(a.Slots, b.Slots),
		Category: a.Category,
	}
	if b.Category != "" {
		c.Category = b.Category
	}
	return &c
}

func mergeWant(a, b *WantCfg) *WantCfg {
	if a == nil || b == nil {
		return pick(a, b)
	}
	return &WantCfg{
		Ceiling:      pick(a.Ceiling, b.Ceiling),
		Target:       pick(a.Target, b.Target),
		Disabled:     b.Disabled || (a.Disabled && b.Target == nil),
		ResetOnAnyUp: pick(a.ResetOnAnyUp, b.ResetOnAnyUp),
	}
}
