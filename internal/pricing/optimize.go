package pricing

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/xtding233/gacha-sim/internal/token"
)

// MinCostAtLeastTokens finds the minimum-cost combination to obtain at least targetTokens.
// First-time x2 variants can be bought at most once; normal variants are unbounded.
func MinCostAtLeastTokens(cat Catalog, targetTokens int, first FirstTimeState) Plan {
	if targetTokens <= 0 || len(cat.Packs) == 0 {
		return Plan{Currency: cat.Currency}
	}
	effs := expand(cat, first)

	// DP over tokens up to target + maxPack to permit slight overshoot with minimal cost.
	maxTok := 0
	for _, e := range effs {
		maxTok = max(maxTok, e.tok)
	}
	if maxTok == 0 {
		return Plan{Currency: cat.Currency}
	}
	limit := targetTokens + maxTok

	const inf = int64(math.MaxInt64)
	// dp[t] = min cost to reach exactly t tokens; choice[t] records how.
	dp := make([]int64, limit+1)
	choice := make([][]int, limit+1)
	for t := range dp {
		dp[t] = inf
	}
	dp[0] = 0
	choice[0] = make([]int, len(effs))

	for t := 0; t <= limit; t++ {
		if dp[t] == inf {
			continue
		}
		for i, e := range effs {
			if e.once && choice[t][i] > 0 {
				continue
			}
			nt := min(t+e.tok, limit)
			cost := dp[t] + e.price
			if cost < dp[nt] {
				dp[nt] = cost
				c := append([]int(nil), choice[t]...)
				c[i]++
				choice[nt] = c
			}
		}
	}

	best := -1
	for t := targetTokens; t <= limit; t++ {
		if dp[t] != inf && (best < 0 || dp[t] < dp[best]) {
			best = t
		}
	}
	if best < 0 {
		return Plan{Currency: cat.Currency}
	}
	return buildPlan(cat, effs, choice[best])
}

// MaxTokensUnderBudget computes the maximum tokens purchasable with budgetCents
// (tax included).
func MaxTokensUnderBudget(cat Catalog, budgetCents int64, first FirstTimeState) Plan {
	if budgetCents <= 0 || len(cat.Packs) == 0 {
		return Plan{Currency: cat.Currency}
	}
	effs := expand(cat, first)

	// Reduce the budget by tax to get the pre-tax spend ceiling.
	effBudget := budgetCents
	if cat.TaxRate.IsPositive() {
		effBudget = decimal.NewFromInt(budgetCents).Div(decimal.NewFromInt(1).Add(cat.TaxRate)).Floor().IntPart()
	}

	// dp[c] = max tokens with cost exactly c
	dp := make([]int, effBudget+1)
	reach := make([]bool, effBudget+1)
	choice := make([][]int, effBudget+1)
	reach[0] = true
	choice[0] = make([]int, len(effs))
	for c := int64(0); c <= effBudget; c++ {
		if !reach[c] {
			continue
		}
		for i, e := range effs {
			if e.once && choice[c][i] > 0 {
				continue
			}
			nc := c + e.price
			if nc > effBudget {
				continue
			}
			if val := dp[c] + e.tok; !reach[nc] || val > dp[nc] {
				dp[nc] = val
				reach[nc] = true
				ch := append([]int(nil), choice[c]...)
				ch[i]++
				choice[nc] = ch
			}
		}
	}

	best := int64(0)
	for c := int64(0); c <= effBudget; c++ {
		if reach[c] && dp[c] > dp[best] {
			best = c
		}
	}
	plan := buildPlan(cat, effs, choice[best])
	// rounding can push the taxed total one cent over; drop to the next best if so
	if plan.TotalCents > budgetCents && best > 0 {
		return MaxTokensUnderBudget(cat, budgetCents-1, first)
	}
	return plan
}

// PlanForDraws prices n draws: tokens needed, minus what the player already
// holds, bought at minimum cost.
func PlanForDraws(cat Catalog, tok token.Token, draws, held int, first FirstTimeState) Plan {
	need := tok.TokensForDraws(draws) - held
	return MinCostAtLeastTokens(cat, need, first)
}
