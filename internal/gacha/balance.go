package gacha

// balance tracks, per category, the draws since that category last won a tier.
type balance struct {
	sinceA int
	sinceB int
}

// miss advances both categories when the tier was not drawn.
func (b *balance) miss() {
	b.sinceA++
	b.sinceB++
}

// award gives the tier to c without a contest (e.g. an up hit whose items
// belong to c).
func (b *balance) award(c Category) {
	if c == CategoryA {
		b.sinceA, b.sinceB = 0, b.sinceB+1
		return
	}
	b.sinceA, b.sinceB = b.sinceA+1, 0
}

// resolve contests the tier between both categories and records the winner.
func (b *balance) resolve(prob func(int) float64, rng RandomSource) Category {
	var c Category
	c, b.sinceA, b.sinceB = ResolveBalance(b.sinceA, b.sinceB, prob, rng)
	return c
}

// ResolveBalance decides which category wins a tier's draw.
// Both counts advance by one for this draw and are scored with prob:
// - equal scores => fair coin
// - otherwise u*min(pA+pB, 1) is compared against the larger score,
// biasing toward the category that has waited longer
// The winner's counter is returned as 0 and the loser's as its advanced count.
func ResolveBalance(sinceA, sinceB int, prob func(int) float64, rng RandomSource) (winner Category, nextA, nextB int) {
	countA := sinceA + 1
	countB := sinceB + 1
	pA := prob(countA)
	pB := prob(countB)

	var pickA bool
	switch {
	case probEqual(pA, pB):
		pickA = rng.IntN(2) == 0
	case pA < pB:
		pickA = rng.Float64()*min(pA+pB, 1) >= pB
	default:
		pickA = rng.Float64()*min(pA+pB, 1) < pA
	}

	if pickA {
		return CategoryA, 0, countB
	}
	return CategoryB, countA, 0
}
