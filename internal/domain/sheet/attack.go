package sheet

import (
	"cmp"
	"fmt"
	"strconv"
)

// BonusKind says whether an attack is rolled against AC or forces a save
type BonusKind int

const (
	BonusAttack BonusKind = iota
	BonusDC
)

func (k BonusKind) String() string {
	if k == BonusDC {
		return "dc"
	}
	return "attack"
}

func (k BonusKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// AttackBonus is either a to-hit bonus or a save DC
type AttackBonus struct {
	Kind  BonusKind `json:"kind"`
	Value int       `json:"value"`
}

// ToHit builds a to-hit bonus
func ToHit(v int) AttackBonus {
	return AttackBonus{Kind: BonusAttack, Value: v}
}

// SaveDC builds a save DC
func SaveDC(v int) AttackBonus {
	return AttackBonus{Kind: BonusDC, Value: v}
}

// String renders "+5", "-1", "0" or "DC 13"
func (b AttackBonus) String() string {
	if b.Kind == BonusDC {
		return fmt.Sprintf("DC %d", b.Value)
	}
	return SignedBonus(b.Value)
}

// SignedBonus prefixes positive numbers with a plus sign
func SignedBonus(v int) string {
	if v > 0 {
		return "+" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}

// Attack is one row of the attack table
type Attack struct {
	Name   string      `json:"name"`
	Bonus  AttackBonus `json:"bonus"`
	Damage string      `json:"damage"`
}

// CompareAttacks orders by name, then bonus, then damage text
func CompareAttacks(a, b Attack) int {
	return cmp.Or(
		cmp.Compare(a.Name, b.Name),
		cmp.Compare(a.Bonus.Kind, b.Bonus.Kind),
		cmp.Compare(a.Bonus.Value, b.Bonus.Value),
		cmp.Compare(a.Damage, b.Damage),
	)
}

// SelectAttacks returns at most max attacks in display order.
// A non-positive max returns every attack.
func SelectAttacks(attacks []Attack, max int) []Attack {
	sorted := sortedCopy(attacks, CompareAttacks)
	if max > 0 && len(sorted) > max {
		sorted = sorted[:max]
	}
	return sorted
}
