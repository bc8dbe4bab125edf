package session

import "github.com/xtding233/gacha-sim/internal/gacha"

// Item is the wire form of one outcome.
type Item struct {
	Kind string `json:"kind"`
	Tier string `json:"tier"`
	Up   bool   `json:"up"`
	Slot int    `json:"slot"`
	// Category is the balance category of non-up near-rare and standard
	// banner hits.
	Category string `json:"category,omitempty"`
	Name     string `json:"name,omitempty"`
}

// Items converts outcomes in draw order. name may be nil.
func Items(outs []gacha.Outcome, name func(gacha.Outcome) string) []Item {
	items := make([]Item, len(outs))
	for i, o := range outs {
		items[i] = Item{
			Kind: o.Kind.String(),
			Tier: o.Tier().String(),
			Up:   o.IsUp(),
			Slot: o.Slot,
		}
		if c := o.Category(); c != gacha.CategoryNone {
			items[i].Category = c.String()
		}
		if name != nil {
			items[i].Name = name(o)
		}
	}
	return items
}
