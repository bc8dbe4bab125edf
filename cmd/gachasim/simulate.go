package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/xtding233/gacha-sim/internal/gacha"
)

func newSimulateCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "simulate",
		Short: "Draw --num-sim times on the character and weapon banners and print rare rates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSimulate(cmd, o)
		},
	}
}

// rateReport holds the per-draw rates printed by simulate.
type rateReport struct {
	Draws          int
	CharacterUp    float64
	CharacterRare  float64
	WeaponWant     float64
	WeaponUp       float64
	WeaponRare     float64
	WantTarget     int
	Tokens         int
	TokenName      string
	WeaponWantSeen bool
}

func runSimulate(cmd *cobra.Command, o *rootOptions) error {
	p, err := o.params(cmd)
	if err != nil {
		return err
	}
	if o.numSim < 1 {
		return fmt.Errorf("--num-sim must be >= 1")
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Simulating %d draws...\n", o.numSim)

	ch, err := gacha.NewCharacterBannerWith(p.Banners.Character, rngFor(o.seed, 0))
	if err != nil {
		return err
	}
	wp, err := gacha.NewWeaponBannerWith(p.Banners.Weapon, rngFor(o.seed, 1))
	if err != nil {
		return err
	}

	chRes, err := gacha.Tally(ctx, ch, o.numSim, nil)
	if err != nil {
		return err
	}
	wpRes, err := gacha.Tally(ctx, wp, o.numSim, nil)
	if err != nil {
		return err
	}

	r := rateReport{
		Draws:         o.numSim,
		CharacterUp:   chRes.Rate(gacha.KindRareUp),
		CharacterRare: chRes.Rate(gacha.KindRareUp, gacha.KindRareOther),
		WeaponUp:      wpRes.Rate(gacha.KindRareUp),
		WeaponRare:    wpRes.Rate(gacha.KindRareUp, gacha.KindRareOther),
		Tokens:        p.Token.TokensForDraws(o.numSim),
		TokenName:     p.Token.Name,
	}
	if w, ok := wp.Want(); ok {
		r.WeaponWantSeen = true
		r.WantTarget = w.Target
		r.WeaponWant = wpRes.SlotRate(gacha.KindRareUp, w.Target)
	}
	printRates(out, r)
	return nil
}

func printRates(w io.Writer, r rateReport) {
	pct := func(f float64) string { return fmt.Sprintf("%.4f%%", f*100) }
	fmt.Fprintf(w, "Character up rare probability: %s\n", pct(r.CharacterUp))
	fmt.Fprintf(w, "Character rare probability: %s\n", pct(r.CharacterRare))
	if r.WeaponWantSeen {
		fmt.Fprintf(w, "Weapon want (slot %d) rare probability: %s\n", r.WantTarget, pct(r.WeaponWant))
	}
	fmt.Fprintf(w, "Weapon up rare probability: %s\n", pct(r.WeaponUp))
	fmt.Fprintf(w, "Weapon rare probability: %s\n", pct(r.WeaponRare))
	fmt.Fprintf(w, "Cost of %d draws: %d %s\n", r.Draws, r.Tokens, r.TokenName)
}
