package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/xtding233/gacha-sim/internal/pricing"
)

type costOptions struct {
	draws     int
	held      int
	firstTime bool
	taxRate   string
	budget    string
}

func newCostCmd(o *rootOptions) *cobra.Command {
	co := costOptions{}
	cmd := &cobra.Command{
		Use:   "cost",
		Short: "Cheapest store plan for --draws, or most tokens for --budget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := o.params(cmd)
			if err != nil {
				return err
			}
			cat := pricing.DefaultCatalog()
			if cat.TaxRate, err = decimal.NewFromString(co.taxRate); err != nil {
				return fmt.Errorf("--tax: %w", err)
			}
			first := pricing.FirstTimeState{}
			if co.firstTime {
				first = pricing.AllFirstTime(cat)
			}

			var plan pricing.Plan
			if co.budget != "" {
				b, err := decimal.NewFromString(co.budget)
				if err != nil {
					return fmt.Errorf("--budget: %w", err)
				}
				plan = pricing.MaxTokensUnderBudget(cat, b.Shift(2).IntPart(), first)
			} else {
				if co.draws < 1 {
					return fmt.Errorf("--draws must be >= 1")
				}
				plan = pricing.PlanForDraws(cat, p.Token, co.draws, co.held, first)
			}

			out := cmd.OutOrStdout()
			for _, pu := range plan.Purchases {
				fmt.Fprintf(out, "%3d x %-22s %6d %s each\n", pu.Qty, pu.Name, pu.UnitTokens, cat.TokenName)
			}
			fmt.Fprintf(out, "tokens: %d %s\n", plan.TotalTokens, cat.TokenName)
			fmt.Fprintf(out, "total: %s %s (tax %s)\n", plan.Total(), plan.Currency, decimal.New(plan.TaxCents, -2).StringFixed(2))
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&co.draws, "draws", 90, "draws to pay for")
	f.IntVar(&co.held, "held", 0, "draw currency already held")
	f.BoolVar(&co.firstTime, "first-time", false, "first-purchase x2 bonus still available on every pack")
	f.StringVar(&co.taxRate, "tax", "0", "sales tax rate, e.g. 0.13")
	f.StringVar(&co.budget, "budget", "", "spend limit in currency units; switches to max tokens under budget")
	return cmd
}
