package gacha

import (
	"context"
	"errors"
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// TrialGoal selects what the simulation measures per trial.
type TrialGoal string

const (
	// Draws until the first rare hit (ignores the up layer).
	GoalFirstRare TrialGoal = "first_rare"
	// Draws until the first rare up hit (respects guarantee rules).
	GoalFirstUP TrialGoal = "first_up"
	// Draws until the weapon banner's want target is won.
	GoalFirstTarget TrialGoal = "first_target"
	// Given a fixed budget N, count rare up hits (rare hits on the standard banner).
	GoalFixedBudget TrialGoal = "fixed_budget"
)

var ErrSimParams = errors.New("invalid simulation params")

// ctxCheckEvery is how many draws run between cancellation checks.
const ctxCheckEvery = 1024

// SimParams describes one simulation run.
type SimParams struct {
	Kind    BannerKind
	Goal    TrialGoal
	Trials  int
	Budget  int    // draws per trial for GoalFixedBudget
	Seed    uint64 // trial i uses NewSeededRNG(Seed+i)
	Workers int    // <= 0 means GOMAXPROCS
	Banners BannerSet
}

// Stats summarizes simulation results.
type Stats struct {
	Mean   float64
	Var    float64
	StdDev float64
	P50    float64
	P90    float64
	P99    float64
	// Optional: raw samples if caller needs histograms/exports
	Samples []int `json:"-"`
}

// calcStats computes mean/variance/percentiles for integer samples.
func calcStats(xs []int) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}
	var sum float64
	for _, v := range xs {
		sum += float64(v)
	}
	mean := sum / float64(n)

	// variance (population)
	var acc float64
	for _, v := range xs {
		d := float64(v) - mean
		acc += d * d
	}
	variance := acc / float64(n)

	cp := append([]int(nil), xs...)
	sort.Ints(cp)
	percentile := func(p float64) float64 {
		if n == 1 || p <= 0 {
			return float64(cp[0])
		}
		if p >= 1 {
			return float64(cp[n-1])
		}
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		f := pos - float64(i)
		if i+1 >= n {
			return float64(cp[i])
		}
		return float64(cp[i])*(1-f) + float64(cp[i+1])*f
	}

	return Stats{
		Mean:    mean,
		Var:     variance,
		StdDev:  math.Sqrt(variance),
		P50:     percentile(0.50),
		P90:     percentile(0.90),
		P99:     percentile(0.99),
		Samples: xs,
	}
}

// trialMatch returns the per-draw predicate a goal counts or waits for.
func trialMatch(p SimParams) func(Outcome) bool {
	isRare := func(o Outcome) bool { return o.Tier() == TierRare }
	isRareUp := func(o Outcome) bool { return o.Kind == KindRareUp }

	switch p.Goal {
	case GoalFirstRare:
		return isRare
	case GoalFirstUP, GoalFixedBudget:
		if p.Kind == BannerStandard {
			// no up layer: fall back to any rare
			return isRare
		}
		return isRareUp
	case GoalFirstTarget:
		if p.Kind != BannerWeapon || p.Banners.Weapon.WantTarget == nil {
			if p.Kind == BannerStandard {
				return isRare
			}
			return isRareUp
		}
		target := *p.Banners.Weapon.WantTarget
		return func(o Outcome) bool { return o.Kind == KindRareUp && o.Slot == target }
	}
	return nil
}

// simulateOne runs one trial on its own banner and random source.
// - first_* goals: number of draws until the predicate holds
// - GoalFixedBudget: number of matching draws within p.Budget
func simulateOne(ctx context.Context, p SimParams, match func(Outcome) bool, trial int) (int, error) {
	banner, err := NewBanner(p.Kind, p.Banners, NewSeededRNG(p.Seed+uint64(trial)))
	if err != nil {
		return 0, err
	}

	if p.Goal == GoalFixedBudget {
		count := 0
		for i := 0; i < p.Budget; i++ {
			if i%ctxCheckEvery == 0 {
				if err := ctx.Err(); err != nil {
					return 0, err
				}
			}
			if match(banner.Draw()) {
				count++
			}
		}
		return count, nil
	}

	for draws := 1; ; draws++ {
		if draws%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
		if match(banner.Draw()) {
			return draws, nil
		}
	}
}

// RunMonteCarlo repeats independent trials and returns summary stats.
// Trials run concurrently; each owns its banner and seeded RNG, so the result
// depends only on the params, never on scheduling.
func RunMonteCarlo(ctx context.Context, p SimParams) (Stats, error) {
	if p.Trials <= 0 {
		return Stats{}, nil
	}
	match := trialMatch(p)
	if match == nil {
		return Stats{}, ErrSimParams
	}
	if p.Goal == GoalFixedBudget && p.Budget <= 0 {
		return Stats{}, ErrSimParams
	}
	// surface config errors once instead of per trial
	if _, err := NewBanner(p.Kind, p.Banners, NewSeededRNG(p.Seed)); err != nil {
		return Stats{}, err
	}

	workers := p.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	samples := make([]int, p.Trials)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < p.Trials; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			v, err := simulateOne(gctx, p, match, i)
			if err != nil {
				return err
			}
			samples[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}
	return calcStats(samples), nil
}

// TallyResult counts outcomes of a sequential run.
type TallyResult struct {
	Draws  int
	Counts map[Kind]int
	Up     map[Outcome]int // up outcomes by slot
}

// Rate returns the share of draws that produced any of kinds.
func (t TallyResult) Rate(kinds ...Kind) float64 {
	if t.Draws == 0 {
		return 0
	}
	n := 0
	for _, k := range kinds {
		n += t.Counts[k]
	}
	return float64(n) / float64(t.Draws)
}

// SlotRate returns the share of draws that produced the up outcome kind on slot.
func (t TallyResult) SlotRate(kind Kind, slot int) float64 {
	if t.Draws == 0 {
		return 0
	}
	return float64(t.Up[Outcome{Kind: kind, Slot: slot}]) / float64(t.Draws)
}

// Tally draws n times from d and counts outcome kinds. visit, if non-nil, sees
// every outcome in order.
func Tally(ctx context.Context, d Drawer, n int, visit func(Outcome)) (TallyResult, error) {
	res := TallyResult{Counts: make(map[Kind]int), Up: make(map[Outcome]int)}
	for i := 0; i < n; i++ {
		if i%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}
		o := d.Draw()
		res.Draws++
		res.Counts[o.Kind]++
		if o.IsUp() {
			res.Up[o]++
		}
		if visit != nil {
			visit(o)
		}
	}
	return res, nil
}
