package main

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/spf13/cobra"

	"github.com/xtding233/gacha-sim/internal/console"
	"github.com/xtding233/gacha-sim/internal/gacha"
	"github.com/xtding233/gacha-sim/internal/game"
	"github.com/xtding233/gacha-sim/internal/logger"
	"github.com/xtding233/gacha-sim/internal/pool"
)

type interactiveOptions struct {
	banner   string
	poolName string // defaults to the banner name
	trials   int
}

func newInteractiveCmd(o *rootOptions) *cobra.Command {
	iopts := interactiveOptions{}
	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Draw interactively, naming items from the --file-path pool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInteractive(cmd, o, iopts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&iopts.banner, "banner", "character", "standard, character or weapon")
	f.StringVar(&iopts.poolName, "pool-name", "", "pool within --file-path; defaults to the banner name")
	f.IntVar(&iopts.trials, "summary-trials", 2000, "Monte Carlo trials behind the probability summary")
	return cmd
}

func runInteractive(cmd *cobra.Command, o *rootOptions, iopts interactiveOptions) error {
	p, err := o.params(cmd)
	if err != nil {
		return err
	}
	kind, err := gacha.ParseBannerKind(iopts.banner)
	if err != nil {
		return err
	}
	name := iopts.poolName
	if name == "" {
		name = string(kind)
	}
	if iopts.trials < 1 {
		iopts.trials = 2000
	}

	load := func() (pool.Pool, error) {
		pools, err := pool.Load(o.filePath)
		if err != nil {
			return pool.Pool{}, err
		}
		pl, err := pools.Get(name)
		if err != nil {
			return pool.Pool{}, err
		}
		return pl, pl.Validate(kind, p.Banners)
	}
	first, err := load()
	if err != nil {
		return err
	}
	var current atomic.Pointer[pool.Pool]
	current.Store(&first)

	ctx := cmd.Context()
	watcher := game.NewFileWatcher([]string{o.filePath}, 0, func(path string) {
		next, err := load()
		if err != nil {
			logger.Warn("pool reload rejected, keeping previous", "path", path, "err", err)
			return
		}
		current.Store(&next)
		logger.Info("pool reloaded", "path", path)
	})
	watcher.Start(ctx)
	defer watcher.Stop()

	banner, err := gacha.NewBanner(kind, p.Banners, rngFor(o.seed, 0))
	if err != nil {
		return err
	}

	return console.Run(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), banner, first, rngFor(o.seed, 1),
		console.WithColor(!o.noColor),
		console.WithPoolSource(func() pool.Pool { return *current.Load() }),
		console.WithSummary(summary(kind, p, o.seed, iopts.trials)),
	)
}

// summary reports the expected draws to the next up item for a fresh banner.
func summary(kind gacha.BannerKind, p game.EngineParams, seed uint64, trials int) console.SummaryFunc {
	goal := gacha.GoalFirstUP
	if kind == gacha.BannerStandard {
		goal = gacha.GoalFirstRare
	}
	return func(ctx context.Context, w io.Writer) error {
		st, err := gacha.RunMonteCarlo(ctx, gacha.SimParams{
			Kind:    kind,
			Goal:    goal,
			Trials:  trials,
			Seed:    seed,
			Banners: p.Banners,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s banner, %s over %d trials\n", kind, goal, trials)
		fmt.Fprintf(w, "  mean %.1f draws (p50 %.0f, p90 %.0f, p99 %.0f)\n", st.Mean, st.P50, st.P90, st.P99)
		fmt.Fprintf(w, "  mean cost %d %s\n", p.Token.TokensForDraws(int(st.Mean+0.5)), p.Token.Name)
		return nil
	}
}
