package console

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/gacha-sim/internal/gacha"
	"github.com/xtding233/gacha-sim/internal/pool"
)

// fakeBanner returns a common outcome every draw.
type fakeBanner struct{ draws int }

func (f *fakeBanner) Draw() gacha.Outcome {
	f.draws++
	return gacha.Outcome{Kind: gacha.KindCommon}
}

func (f *fakeBanner) Counters() gacha.Counters {
	return gacha.Counters{SinceRare: f.draws, SinceNearRare: f.draws % 10}
}

func (f *fakeBanner) SinceLastRare() int     { return f.draws }
func (f *fakeBanner) SinceLastNearRare() int { return f.draws % 10 }

var testPool = pool.Pool{Common: []string{"Slingshot"}}

func run(t *testing.T, input string, b gacha.Drawer, opts ...Option) string {
	t.Helper()
	var out bytes.Buffer
	err := Run(context.Background(), strings.NewReader(input), &out, b, testPool, gacha.NewSeededRNG(1), opts...)
	require.NoError(t, err)
	return out.String()
}

func TestRealModeDraws(t *testing.T) {
	b := &fakeBanner{}
	out := run(t, "1\n3\nabc\n\n2\nq\n1\n", b)

	assert.Equal(t, 5, b.draws, "q must stop before the trailing line")
	assert.Contains(t, out, "Slingshot Slingshot Slingshot \n")
	assert.Contains(t, out, "Slingshot Slingshot \n")
	assert.Equal(t, 1, strings.Count(out, menuPrompt))
}

func TestMenuIgnoresInvalidChoice(t *testing.T) {
	b := &fakeBanner{}
	out := run(t, "x\n5\n3\nq\n", b)
	assert.Zero(t, b.draws)
	assert.Equal(t, 1, strings.Count(out, menuPrompt))
}

func TestSummaryMode(t *testing.T) {
	b := &fakeBanner{draws: 12}
	out := run(t, "2\nq\n", b)
	assert.Contains(t, out, "draws since rare: 12")
	assert.Contains(t, out, "draws since near-rare: 2")
	assert.NotContains(t, out, "guaranteed up", "fake banner has no up set")
	assert.NotContains(t, out, "want")
	assert.Equal(t, 2, strings.Count(out, menuPrompt))

	out = run(t, "2\n", b, WithSummary(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "report\n")
		return err
	}))
	assert.Less(t, strings.Index(out, "draws since rare: 12"), strings.Index(out, "report"))
}

func TestSummaryReadsBannerCapabilities(t *testing.T) {
	w := gacha.NewWeaponBanner()
	require.NoError(t, w.SetWant(1))
	out := run(t, "2\nq\n", w)
	assert.Contains(t, out, "draws since rare: 0")
	assert.Contains(t, out, "next rare guaranteed up: false")
	assert.Contains(t, out, "next near-rare guaranteed up: false")
	assert.Contains(t, out, "near-rare balance: character 0, weapon 0")
	assert.Contains(t, out, "want slot 1, misses 0")
	assert.NotContains(t, out, "\nrare balance", "weapon banner has no rare balance")

	out = run(t, "2\nq\n", gacha.NewStandardBanner())
	assert.Contains(t, out, "\nrare balance: character 0, weapon 0")
	assert.NotContains(t, out, "guaranteed up")
	assert.NotContains(t, out, "want")

	out = run(t, "2\nq\n", gacha.NewCharacterBanner())
	assert.NotContains(t, out, "want")
	assert.Contains(t, out, "next rare guaranteed up: false")
}

func TestEOFEndsSession(t *testing.T) {
	b := &fakeBanner{}
	run(t, "1\n2", b)
	assert.Equal(t, 2, b.draws)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Run(ctx, strings.NewReader("1\n1\n"), io.Discard, &fakeBanner{}, testPool, gacha.NewSeededRNG(1))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPoolSourceAndColor(t *testing.T) {
	b := gacha.NewCharacterBanner()
	swapped := pool.Pool{Common: []string{"Debate Club"}, NearRareUp: []string{"a", "b", "c"},
		NearRareCharacter: []string{"n"}, NearRareWeapon: []string{"w"}, RareUp: []string{"r"}, RareOther: []string{"o"}}
	out := run(t, "1\n20\n", b,
		WithPoolSource(func() pool.Pool { return swapped }),
		WithColor(false))
	assert.NotContains(t, out, "Slingshot")
	assert.NotContains(t, out, "\x1b[")
}
