package token

// Token defines how much premium currency one draw costs.
type Token struct {
	Name       string // e.g. "Primogem"
	PerDraw    int    // tokens per single draw, e.g. 160
	PerTenDraw int    // optional bundle price for ten draws; 0 => 10 * PerDraw
}

// Default is the usual 160-per-draw pricing with no ten-draw discount.
func Default() Token {
	return Token{Name: "Primogem", PerDraw: 160}
}

// TokensForDraws returns how many tokens are required for n draws.
// Ten-draw bundles are used for every full ten when they are cheaper.
func (t Token) TokensForDraws(n int) int {
	if n <= 0 {
		return 0
	}
	if t.PerTenDraw > 0 && t.PerTenDraw < 10*t.PerDraw {
		return (n/10)*t.PerTenDraw + (n%10)*t.PerDraw
	}
	return n * t.PerDraw
}

// DrawsForTokens returns how many draws a balance pays for.
func (t Token) DrawsForTokens(tokens int) int {
	if tokens <= 0 || t.PerDraw <= 0 {
		return 0
	}
	if t.PerTenDraw > 0 && t.PerTenDraw < 10*t.PerDraw {
		tens := tokens / t.PerTenDraw
		return tens*10 + (tokens-tens*t.PerTenDraw)/t.PerDraw
	}
	return tokens / t.PerDraw
}
