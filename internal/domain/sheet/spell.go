package sheet

import (
	"cmp"
	"maps"
	"slices"
	"strings"
)

// MaxSpellLevel is the highest spell level; cantrips are level 0
const MaxSpellLevel = 9

// Preparation is whether a spell is ready to cast
type Preparation int

const (
	NotPrepared Preparation = iota
	Prepared
	AlwaysPrepared
)

func (p Preparation) String() string {
	switch p {
	case AlwaysPrepared:
		return "always"
	case Prepared:
		return "prepared"
	default:
		return "not_prepared"
	}
}

func (p Preparation) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Spell is one known or prepared spell
type Spell struct {
	Name          string      `json:"name"`
	Level         int         `json:"level"`
	CastingTime   ActionType  `json:"casting_time"`
	Duration      string      `json:"duration"`
	School        string      `json:"school"`
	Range         string      `json:"range"`
	Verbal        bool        `json:"verbal"`
	Somatic       bool        `json:"somatic"`
	Concentration bool        `json:"concentration"`
	Ritual        bool        `json:"ritual"`
	Material      string      `json:"material,omitempty"`
	Preparation   Preparation `json:"preparation"`
}

// Components renders the VSCR flags, e.g. "VS" or "VSCR"
func (s Spell) Components() string {
	var b strings.Builder
	if s.Verbal {
		b.WriteByte('V')
	}
	if s.Somatic {
		b.WriteByte('S')
	}
	if s.Concentration {
		b.WriteByte('C')
	}
	if s.Ritual {
		b.WriteByte('R')
	}
	return b.String()
}

// CompareSpells orders by name, then level
func CompareSpells(a, b Spell) int {
	return cmp.Or(
		cmp.Compare(a.Name, b.Name),
		cmp.Compare(a.Level, b.Level),
	)
}

// SpellLevel holds the spells of one level within a list
type SpellLevel struct {
	Level  int     `json:"level"`
	Spells []Spell `json:"spells"`
}

// SortedSpells returns the level's spells ordered by name
func (l *SpellLevel) SortedSpells() []Spell {
	return sortedCopy(l.Spells, CompareSpells)
}

// SpellList is a named group of spells sharing a save DC, attack bonus and preparation cap
type SpellList struct {
	Name        string              `json:"name"`
	Levels      map[int]*SpellLevel `json:"levels"`
	SaveDC      int                 `json:"save_dc"`
	AttackBonus int                 `json:"attack_bonus"`
	MaxPrepared int                 `json:"max_prepared"`
}

// Add files a spell under its level, creating the level bucket if needed
func (l *SpellList) Add(spell Spell) {
	if l.Levels == nil {
		l.Levels = make(map[int]*SpellLevel)
	}
	bucket, ok := l.Levels[spell.Level]
	if !ok {
		bucket = &SpellLevel{Level: spell.Level}
		l.Levels[spell.Level] = bucket
	}
	bucket.Spells = append(bucket.Spells, spell)
}

// Clone returns a copy that shares no buckets or spell slices with l
func (l *SpellList) Clone() *SpellList {
	out := *l
	if l.Levels != nil {
		out.Levels = make(map[int]*SpellLevel, len(l.Levels))
		for lvl, bucket := range l.Levels {
			out.Levels[lvl] = &SpellLevel{Level: bucket.Level, Spells: slices.Clone(bucket.Spells)}
		}
	}
	return &out
}

// MaxLevel is the highest level holding a bucket, or -1 for an empty list
func (l *SpellList) MaxLevel() int {
	if len(l.Levels) == 0 {
		return -1
	}
	return slices.Max(slices.Collect(maps.Keys(l.Levels)))
}

// Count is the number of spells across every level
func (l *SpellList) Count() int {
	n := 0
	for _, lvl := range l.Levels {
		n += len(lvl.Spells)
	}
	return n
}

// CompareSpellLists puts larger preparation caps and higher spell levels first,
// then falls back to name, save DC and attack bonus.
func CompareSpellLists(a, b *SpellList) int {
	return cmp.Or(
		cmp.Compare(b.MaxPrepared, a.MaxPrepared),
		cmp.Compare(b.MaxLevel(), a.MaxLevel()),
		cmp.Compare(a.Name, b.Name),
		cmp.Compare(a.SaveDC, b.SaveDC),
		cmp.Compare(a.AttackBonus, b.AttackBonus),
	)
}
