package sheet

import "cmp"

// Item is an inventory entry
type Item struct {
	Quantity           int    `json:"quantity"`
	Name               string `json:"name"`
	Plural             string `json:"plural,omitempty"`
	RequiresAttunement bool   `json:"requires_attunement"`
}

// DisplayName uses the plural form for stacks other than one
func (i Item) DisplayName() string {
	if i.Quantity != 1 && i.Plural != "" {
		return i.Plural
	}
	return i.Name
}

// CompareItems orders by name, then quantity
func CompareItems(a, b Item) int {
	return cmp.Or(
		cmp.Compare(a.Name, b.Name),
		cmp.Compare(a.Quantity, b.Quantity),
	)
}

// Coin names a currency slot
type Coin int

const (
	Copper Coin = iota
	Silver
	Electrum
	Gold
	Platinum
)

// Coins is the purse: copper, silver, electrum, gold, platinum
type Coins [5]int

// Add puts n coins of the given kind in the purse
func (c *Coins) Add(kind Coin, n int) {
	c[kind] += n
}

func (c Coins) Copper() int   { return c[Copper] }
func (c Coins) Silver() int   { return c[Silver] }
func (c Coins) Electrum() int { return c[Electrum] }
func (c Coins) Gold() int     { return c[Gold] }
func (c Coins) Platinum() int { return c[Platinum] }
