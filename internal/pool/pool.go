// Package pool maps draw outcomes to item names for display.
package pool

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/xtding233/gacha-sim/internal/gacha"
)

var ErrPoolConfig = errors.New("invalid pool config")

// Pool holds the item names of one banner. Up lists are indexed by slot.
type Pool struct {
	RareUp            []string `yaml:"rare_up" json:"rare_up"`
	RareOther         []string `yaml:"rare_other" json:"rare_other"`
	RareCharacter     []string `yaml:"rare_character" json:"rare_character"`
	RareWeapon        []string `yaml:"rare_weapon" json:"rare_weapon"`
	NearRareUp        []string `yaml:"near_rare_up" json:"near_rare_up"`
	NearRareCharacter []string `yaml:"near_rare_character" json:"near_rare_character"`
	NearRareWeapon    []string `yaml:"near_rare_weapon" json:"near_rare_weapon"`
	Common            []string `yaml:"common" json:"common"`
}

// Pools is a named set of pools, e.g. one per banner phase.
type Pools map[string]Pool

// Load reads a pool file. JSON files load too, being valid YAML.
func Load(path string) (Pools, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pools: %w", err)
	}
	var p Pools
	if err := yaml.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrPoolConfig, path, err)
	}
	if len(p) == 0 {
		return nil, fmt.Errorf("%w: %s: no pools defined", ErrPoolConfig, path)
	}
	return p, nil
}

// Get returns the named pool.
func (ps Pools) Get(name string) (Pool, error) {
	p, ok := ps[name]
	if !ok {
		return Pool{}, fmt.Errorf("%w: unknown pool %q (have %s)", ErrPoolConfig, name, strings.Join(ps.Names(), ", "))
	}
	return p, nil
}

// Names lists pool names in order.
func (ps Pools) Names() []string {
	out := make([]string, 0, len(ps))
	for k := range ps {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Validate rejects a pool that cannot name every outcome the banner can
// produce. It must pass before the first draw.
func (p Pool) Validate(kind gacha.BannerKind, set gacha.BannerSet) error {
	var errs []string
	need := func(field string, list []string, n int) {
		if len(list) < n {
			errs = append(errs, fmt.Sprintf("%s needs at least %d names, has %d", field, n, len(list)))
		}
	}

	need("common", p.Common, 1)
	switch kind {
	case gacha.BannerStandard:
		need("rare_character", p.RareCharacter, 1)
		need("rare_weapon", p.RareWeapon, 1)
		need("near_rare_character", p.NearRareCharacter, 1)
		need("near_rare_weapon", p.NearRareWeapon, 1)
	case gacha.BannerCharacter:
		need("rare_up", p.RareUp, set.Character.RareUp.Slots)
		need("rare_other", p.RareOther, 1)
		need("near_rare_up", p.NearRareUp, set.Character.NearRareUp.Slots)
		need("near_rare_character", p.NearRareCharacter, 1)
		need("near_rare_weapon", p.NearRareWeapon, 1)
	case gacha.BannerWeapon:
		need("rare_up", p.RareUp, set.Weapon.RareUp.Slots)
		need("rare_other", p.RareOther, 1)
		need("near_rare_up", p.NearRareUp, set.Weapon.NearRareUp.Slots)
		need("near_rare_character", p.NearRareCharacter, 1)
		need("near_rare_weapon", p.NearRareWeapon, 1)
	default:
		errs = append(errs, fmt.Sprintf("unknown banner %q", kind))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s: %s", ErrPoolConfig, kind, strings.Join(errs, "; "))
	}
	return nil
}

// Name resolves an outcome to an item name. Up outcomes are fixed by slot;
// other categories pick uniformly with rng, which must not be the banner's
// own random source. The pool must have passed Validate.
func (p Pool) Name(o gacha.Outcome, rng gacha.RandomSource) string {
	choose := func(list []string) string {
		if len(list) == 0 {
			return ""
		}
		return list[rng.IntN(len(list))]
	}
	at := func(list []string, i int) string {
		if i < 0 || i >= len(list) {
			return ""
		}
		return list[i]
	}

	switch o.Kind {
	case gacha.KindRareUp:
		return at(p.RareUp, o.Slot)
	case gacha.KindRareOther:
		return choose(p.RareOther)
	case gacha.KindRareA:
		return choose(p.RareCharacter)
	case gacha.KindRareB:
		return choose(p.RareWeapon)
	case gacha.KindNearRareUp:
		return at(p.NearRareUp, o.Slot)
	case gacha.KindNearRareA, gacha.KindNearRareOtherA:
		return choose(p.NearRareCharacter)
	case gacha.KindNearRareB, gacha.KindNearRareOtherB:
		return choose(p.NearRareWeapon)
	default:
		return choose(p.Common)
	}
}
