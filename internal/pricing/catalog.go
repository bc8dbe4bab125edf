package pricing

import (
	"github.com/shopspring/decimal"
)

// Pack models a purchasable SKU in the store.
type Pack struct {
	ID          string // SKU id, e.g., "6480"
	Name        string // display name, e.g., "6480 Pack"
	Tokens      int    // base tokens granted
	BonusTokens int    // permanent extra tokens (non-first-time)
	FirstTimeX2 bool   // if true, first-time purchase doubles base Tokens (not BonusTokens)
	PriceCents  int64  // price in minor units (e.g., cents)
}

// Catalog is a regional product catalog and tax info.
type Catalog struct {
	TokenName string // e.g., "Genesis Crystal"
	Currency  string // ISO code, e.g., "USD"
	// TaxRate applies to the subtotal; zero for tax-inclusive prices.
	TaxRate decimal.Decimal
	Packs   []Pack
}

// DefaultCatalog is the usual six-tier crystal shop.
func DefaultCatalog() Catalog {
	return Catalog{
		TokenName: "Genesis Crystal",
		Currency:  "USD",
		Packs: []Pack{
			{ID: "60", Name: "60 Crystals", Tokens: 60, FirstTimeX2: true, PriceCents: 99},
			{ID: "300", Name: "300 Crystals", Tokens: 300, BonusTokens: 30, FirstTimeX2: true, PriceCents: 499},
			{ID: "980", Name: "980 Crystals", Tokens: 980, BonusTokens: 110, FirstTimeX2: true, PriceCents: 1499},
			{ID: "1980", Name: "1980 Crystals", Tokens: 1980, BonusTokens: 260, FirstTimeX2: true, PriceCents: 2999},
			{ID: "3280", Name: "3280 Crystals", Tokens: 3280, BonusTokens: 600, FirstTimeX2: true, PriceCents: 4999},
			{ID: "6480", Name: "6480 Crystals", Tokens: 6480, BonusTokens: 1600, FirstTimeX2: true, PriceCents: 9999},
		},
	}
}

// FirstTimeState describes per-pack first-time eligibility.
type FirstTimeState map[string]bool // packID -> true if first-time x2 is still available

// AllFirstTime marks every first-time-eligible pack of cat as still available.
func AllFirstTime(cat Catalog) FirstTimeState {
	st := FirstTimeState{}
	for _, p := range cat.Packs {
		if p.FirstTimeX2 {
			st[p.ID] = true
		}
	}
	return st
}

// Plan summarizes a purchase plan.
type Plan struct {
	Purchases   []Purchase
	SubCents    int64 // subtotal before tax
	TaxCents    int64
	TotalCents  int64
	TotalTokens int
	Currency    string
}

// Total renders TotalCents as a decimal amount, e.g. "99.99".
func (p Plan) Total() string {
	return decimal.New(p.TotalCents, -2).StringFixed(2)
}

// Purchase is one line item in the plan.
type Purchase struct {
	PackID     string
	Name       string
	Qty        int
	UnitPrice  int64 // cents
	UnitTokens int   // tokens received per unit in this plan (x2/bonus applied)
	Subtotal   int64 // cents
}

// applyTax computes tax (rounded half away from zero) and total given a subtotal.
func applyTax(sub int64, taxRate decimal.Decimal) (tax int64, total int64) {
	if !taxRate.IsPositive() {
		return 0, sub
	}
	t := decimal.NewFromInt(sub).Mul(taxRate).Round(0).IntPart()
	return t, sub + t
}

// variant is a pack as it can be bought right now: first-time doubling
// appears as its own variant, usable once.
type variant struct {
	id, name string
	tok      int
	price    int64
	once     bool
}

func expand(cat Catalog, first FirstTimeState) []variant {
	var out []variant
	for _, p := range cat.Packs {
		if p.FirstTimeX2 && first[p.ID] {
			out = append(out, variant{
				id:    p.ID + "#x2",
				name:  p.Name + " (x2)",
				tok:   p.Tokens*2 + p.BonusTokens, // x2 applies to base Tokens only
				price: p.PriceCents,
				once:  true,
			})
		}
		out = append(out, variant{id: p.ID, name: p.Name, tok: p.Tokens + p.BonusTokens, price: p.PriceCents})
	}
	return out
}

func buildPlan(cat Catalog, effs []variant, counts []int) Plan {
	plan := Plan{Currency: cat.Currency}
	for i, qty := range counts {
		if qty == 0 {
			continue
		}
		e := effs[i]
		sub := e.price * int64(qty)
		plan.Purchases = append(plan.Purchases, Purchase{
			PackID:     e.id,
			Name:       e.name,
			Qty:        qty,
			UnitPrice:  e.price,
			UnitTokens: e.tok,
			Subtotal:   sub,
		})
		plan.SubCents += sub
		plan.TotalTokens += e.tok * qty
	}
	plan.TaxCents, plan.TotalCents = applyTax(plan.SubCents, cat.TaxRate)
	return plan
}
