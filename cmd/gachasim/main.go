// Command gachasim simulates banner draws from the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/xtding233/gacha-sim/internal/game"
	"github.com/xtding233/gacha-sim/internal/logger"
)

type rootOptions struct {
	configDir   string
	game        string
	pool        string
	seed        uint64
	logLevel    string
	noColor     bool
	numSim      int
	filePath    string
	interactive bool

	wantTarget   int
	wantCeiling  int
	noWant       bool
	resetOnAnyUp bool
}

// overrides turns explicitly set flags into config overrides.
func (o *rootOptions) overrides(cmd *cobra.Command) game.Overrides {
	var ov game.Overrides
	flags := cmd.Flags()
	if flags.Changed("want-target") {
		ov.WantTarget = &o.wantTarget
	}
	if flags.Changed("want-ceiling") {
		ov.WantCeiling = &o.wantCeiling
	}
	if flags.Changed("want-reset-on-any-up") {
		ov.WantResetOnAnyUp = &o.resetOnAnyUp
	}
	ov.DisableWant = o.noWant
	return ov
}

// params resolves the layered config plus flag overrides.
func (o *rootOptions) params(cmd *cobra.Command) (game.EngineParams, error) {
	_, p, err := game.NewLoader(o.configDir).Resolve(o.game, o.pool, o.overrides(cmd))
	if err != nil {
		return game.EngineParams{}, fmt.Errorf("resolve config: %w", err)
	}
	logger.Debug("config resolved", "dir", o.configDir, "game", o.game, "pool", o.pool, "version", p.Version)
	return p, nil
}

func newRootCmd() *cobra.Command {
	o := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "gachasim",
		Short:         "Genshin-style gacha simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			logger.Init(&logger.Options{Level: logger.ParseLevel(o.logLevel), NoColor: o.noColor})
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if o.interactive {
				return runInteractive(cmd, o, interactiveOptions{banner: "character"})
			}
			return runSimulate(cmd, o)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&o.configDir, "config-dir", "configs", "directory holding games/default.yaml and per-game overrides")
	pf.StringVar(&o.game, "game", "", "game config layer to apply")
	pf.StringVar(&o.pool, "pool", "", "pool config layer to apply (needs --game)")
	pf.Uint64Var(&o.seed, "seed", 0, "seed for reproducible runs; 0 draws from crypto/rand")
	pf.StringVar(&o.logLevel, "log-level", "info", "debug, info, warn or error")
	pf.BoolVar(&o.noColor, "no-color", false, "disable colored output")
	pf.IntVarP(&o.numSim, "num-sim", "n", 10000, "number of draws or trials to simulate")
	pf.StringVarP(&o.filePath, "file-path", "f", "pool.yaml", "item name pool file (YAML or JSON)")
	pf.IntVar(&o.wantTarget, "want-target", 0, "weapon rare up slot to chase")
	pf.IntVar(&o.wantCeiling, "want-ceiling", 2, "non-target weapon rare hits before the target is forced")
	pf.BoolVar(&o.noWant, "no-want", false, "start the weapon banner without a want target")
	pf.BoolVar(&o.resetOnAnyUp, "want-reset-on-any-up", false, "any rare up hit resets the want counter")
	cmd.Flags().BoolVarP(&o.interactive, "interactive", "i", false, "interactive mode")

	cmd.AddCommand(
		newSimulateCmd(o),
		newMonteCarloCmd(o),
		newInteractiveCmd(o),
		newCostCmd(o),
	)
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logger.Error("gachasim failed", "err", err)
		os.Exit(1)
	}
}
