package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/xtding233/gacha-sim/internal/gacha"
	"github.com/xtding233/gacha-sim/internal/logger"
)

type monteCarloOptions struct {
	banner  string
	goal    string
	budget  int
	workers int
}

func newMonteCarloCmd(o *rootOptions) *cobra.Command {
	mo := monteCarloOptions{}
	cmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "Run --num-sim independent trials and summarize draws per goal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := o.params(cmd)
			if err != nil {
				return err
			}
			kind, err := gacha.ParseBannerKind(mo.banner)
			if err != nil {
				return err
			}
			seed := o.seed
			if seed == 0 {
				seed = uint64(time.Now().UnixNano())
			}

			sp := gacha.SimParams{
				Kind:    kind,
				Goal:    gacha.TrialGoal(mo.goal),
				Trials:  o.numSim,
				Budget:  mo.budget,
				Seed:    seed,
				Workers: mo.workers,
				Banners: p.Banners,
			}
			start := time.Now()
			st, err := gacha.RunMonteCarlo(cmd.Context(), sp)
			if err != nil {
				return err
			}
			logger.Debug("monte carlo done", "trials", sp.Trials, "elapsed", time.Since(start), "seed", seed)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "banner=%s goal=%s trials=%d seed=%d\n", kind, sp.Goal, sp.Trials, seed)
			fmt.Fprintf(out, "mean=%.3f stddev=%.3f p50=%.0f p90=%.0f p99=%.0f\n", st.Mean, st.StdDev, st.P50, st.P90, st.P99)
			if sp.Goal != gacha.GoalFixedBudget {
				fmt.Fprintf(out, "mean cost: %d %s\n", p.Token.TokensForDraws(int(st.Mean+0.5)), p.Token.Name)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&mo.banner, "banner", "character", "standard, character or weapon")
	f.StringVar(&mo.goal, "goal", string(gacha.GoalFirstUP), "first_rare, first_up, first_target or fixed_budget")
	f.IntVar(&mo.budget, "budget", 900, "draws per trial for fixed_budget")
	f.IntVar(&mo.workers, "workers", 0, "parallel workers; 0 uses GOMAXPROCS")
	return cmd
}
