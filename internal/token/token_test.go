package token

import "testing"

func TestTokensForDraws(t *testing.T) {
	tok := Default()
	if got := tok.TokensForDraws(90); got != 14400 {
		t.Fatalf("90 draws: got %d, want 14400", got)
	}
	if got := tok.TokensForDraws(0); got != 0 {
		t.Fatalf("0 draws: got %d", got)
	}

	bundle := Token{Name: "Star Stone", PerDraw: 250, PerTenDraw: 2250}
	if got := bundle.TokensForDraws(23); got != 2*2250+3*250 {
		t.Fatalf("23 draws with bundle: got %d", got)
	}
	// a bundle that is not cheaper is ignored
	pricey := Token{PerDraw: 100, PerTenDraw: 1200}
	if got := pricey.TokensForDraws(10); got != 1000 {
		t.Fatalf("pricey bundle: got %d", got)
	}
}

func TestDrawsForTokens(t *testing.T) {
	tok := Default()
	if got := tok.DrawsForTokens(16000); got != 100 {
		t.Fatalf("got %d, want 100", got)
	}
	bundle := Token{PerDraw: 250, PerTenDraw: 2250}
	if got := bundle.DrawsForTokens(2250 + 600); got != 12 {
		t.Fatalf("got %d, want 12", got)
	}
	if got := (Token{}).DrawsForTokens(100); got != 0 {
		t.Fatalf("zero price must yield 0 draws, got %d", got)
	}
}
