// Package console runs the interactive draw session on a line-based terminal.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xtding233/gacha-sim/internal/gacha"
	"github.com/xtding233/gacha-sim/internal/logger"
	"github.com/xtding233/gacha-sim/internal/pool"
)

const (
	menuPrompt = "select mode: (1) real draws (2) probability summary (q) quit"
	drawPrompt = "draw count (q to quit):"

	// MaxDrawsPerLine caps one line so a typo cannot stall the terminal.
	MaxDrawsPerLine = 10000
)

type stage int

const (
	stageMenu stage = iota
	stageDraw
)

// SummaryFunc writes the probability report for mode 2.
type SummaryFunc func(ctx context.Context, w io.Writer) error

type options struct {
	color   bool
	summary SummaryFunc
	pool    func() pool.Pool
}

type Option func(*options)

// WithColor toggles ANSI tier colors.
func WithColor(on bool) Option { return func(o *options) { o.color = on } }

// WithSummary adds a report after the live banner state in mode 2.
func WithSummary(f SummaryFunc) Option { return func(o *options) { o.summary = f } }

// WithPoolSource resolves names against the pool returned by f on every
// line, so a reloaded pool file takes effect without restarting.
func WithPoolSource(f func() pool.Pool) Option { return func(o *options) { o.pool = f } }

// Run drives banner from the lines of in until q, EOF or ctx is done.
// names is the presentation random source used for non-up item names.
func Run(ctx context.Context, in io.Reader, out io.Writer, banner gacha.Drawer, p pool.Pool, names gacha.RandomSource, opts ...Option) error {
	o := options{pool: func() pool.Pool { return p }}
	for _, f := range opts {
		f(&o)
	}

	sc := bufio.NewScanner(in)
	st := stageMenu
	fmt.Fprintln(out, menuPrompt)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, "q") {
			return nil
		}

		switch st {
		case stageMenu:
			switch line {
			case "1":
				st = stageDraw
				fmt.Fprintln(out, drawPrompt)
			case "2":
				writeState(out, banner)
				if o.summary != nil {
					if err := o.summary(ctx, out); err != nil {
						return err
					}
				}
				fmt.Fprintln(out, menuPrompt)
			}
		case stageDraw:
			n, err := strconv.Atoi(line)
			if err != nil || n < 1 {
				continue
			}
			if n > MaxDrawsPerLine {
				logger.Warn("draw count capped", "requested", n, "max", MaxDrawsPerLine)
				n = MaxDrawsPerLine
			}
			cur := o.pool()
			var b strings.Builder
			for range n {
				res := banner.Draw()
				b.WriteString(cur.Display(res, names, o.color))
				b.WriteByte(' ')
			}
			fmt.Fprintln(out, b.String())
		}
	}
	return sc.Err()
}

// writeState prints whichever counters banner exposes.
func writeState(w io.Writer, banner gacha.Drawer) {
	if p, ok := banner.(gacha.PityInfo); ok {
		fmt.Fprintf(w, "draws since rare: %d\n", p.SinceLastRare())
		fmt.Fprintf(w, "draws since near-rare: %d\n", p.SinceLastNearRare())
	}
	if u, ok := banner.(gacha.UpInfo); ok {
		fmt.Fprintf(w, "next rare guaranteed up: %t\n", !u.LastRareWasUp())
		fmt.Fprintf(w, "next near-rare guaranteed up: %t\n", !u.LastNearRareWasUp())
	}
	if b, ok := banner.(gacha.RareBalanceInfo); ok {
		a, c := b.RareBalance()
		fmt.Fprintf(w, "rare balance: character %d, weapon %d\n", a, c)
	}
	if b, ok := banner.(gacha.BalanceInfo); ok {
		a, c := b.NearRareBalance()
		fmt.Fprintf(w, "near-rare balance: character %d, weapon %d\n", a, c)
	}
	if wi, ok := banner.(gacha.WantInfo); ok {
		if st, on := wi.Want(); on {
			fmt.Fprintf(w, "want slot %d, misses %d\n", st.Target, st.Since)
		} else {
			fmt.Fprintln(w, "want: none")
		}
	}
}
