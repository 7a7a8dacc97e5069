package resolver

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/KirkDiggler/dicecloud-sheet/internal/domain/sheet"
)

const damageSeparator = ", "

// attackIndex collects attacks by the id of the action that defines them.
// Damage may arrive before its action, so entries can start out nameless.
type attackIndex struct {
	entries *orderedmap.OrderedMap[string, *sheet.Attack]
}

func newAttackIndex() *attackIndex {
	return &attackIndex{entries: orderedmap.New[string, *sheet.Attack]()}
}

// define sets the attack's name and bonus, keeping any damage already recorded
func (x *attackIndex) define(id, name string, bonus sheet.AttackBonus) {
	if a, ok := x.entries.Get(id); ok {
		a.Name = name
		a.Bonus = bonus
		return
	}
	x.entries.Set(id, &sheet.Attack{Name: name, Bonus: bonus})
}

// addDamage appends a damage term to the attack owned by parentID
func (x *attackIndex) addDamage(parentID, term string) {
	a, ok := x.entries.Get(parentID)
	if !ok {
		a = &sheet.Attack{}
		x.entries.Set(parentID, a)
	}
	if a.Damage == "" {
		a.Damage = term
		return
	}
	a.Damage += damageSeparator + term
}

// drain returns named attacks in first-seen order; placeholders are dropped
func (x *attackIndex) drain() (attacks []sheet.Attack, dropped int) {
	for pair := x.entries.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.Name == "" {
			dropped++
			continue
		}
		attacks = append(attacks, *pair.Value)
	}
	return attacks, dropped
}

// spellListIndex collects spell lists by record id
type spellListIndex struct {
	entries *orderedmap.OrderedMap[string, *sheet.SpellList]
}

func newSpellListIndex() *spellListIndex {
	return &spellListIndex{entries: orderedmap.New[string, *sheet.SpellList]()}
}

// define inserts or updates a list, keeping spells already filed under it
func (x *spellListIndex) define(id string, list sheet.SpellList) {
	if existing, ok := x.entries.Get(id); ok {
		existing.Name = list.Name
		existing.SaveDC = list.SaveDC
		existing.AttackBonus = list.AttackBonus
		existing.MaxPrepared = list.MaxPrepared
		return
	}
	l := list
	x.entries.Set(id, &l)
}

// nearest returns the first ancestor, nearest first, that is a known list
func (x *spellListIndex) nearest(ancestors []string) (*sheet.SpellList, bool) {
	for _, id := range ancestors {
		if l, ok := x.entries.Get(id); ok {
			return l, true
		}
	}
	return nil, false
}

// drain returns named lists in first-seen order; unnamed lists are dropped
func (x *spellListIndex) drain() (lists []*sheet.SpellList, dropped int) {
	for pair := x.entries.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.Name == "" {
			dropped++
			continue
		}
		lists = append(lists, pair.Value)
	}
	return lists, dropped
}
