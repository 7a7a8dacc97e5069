// Package property holds the typed form of DiceCloud creature property records.
// Each export record is decoded once into one of the variants below; nothing
// downstream reads raw JSON paths.
package property

import "strings"

// Type is the record discriminator from the export's "type" field
type Type string

const (
	TypeAttribute        Type = "attribute"
	TypeSkill            Type = "skill"
	TypeFeature          Type = "feature"
	TypeNote             Type = "note"
	TypeAction           Type = "action"
	TypeDamage           Type = "damage"
	TypeClass            Type = "class"
	TypeItem             Type = "item"
	TypeSpellList        Type = "spellList"
	TypeSpell            Type = "spell"
	TypeDamageMultiplier Type = "damageMultiplier"
	TypeConstant         Type = "constant"
)

// Record is implemented by every decoded variant
type Record interface {
	Common() *Base
}

// Base carries the fields shared by every record type
type Base struct {
	ID                  string
	Type                Type
	Name                string
	Order               int
	Removed             bool
	Inactive            bool
	DeactivatedByToggle bool
	Tags                []string
	ParentID            string
	// Ancestors are the ids of enclosing records, nearest first
	Ancestors []string
}

// Common returns the shared fields
func (b *Base) Common() *Base { return b }

// HasTag reports whether the record carries the tag, ignoring case
func (b *Base) HasTag(tag string) bool {
	for _, t := range b.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Disabled is true for records switched off by the builder
func (b *Base) Disabled() bool {
	return b.Inactive || b.DeactivatedByToggle
}

// Attribute types the resolver understands
const (
	AttributeAbility   = "ability"
	AttributeHitDice   = "hitDice"
	AttributeSpellSlot = "spellSlot"
	AttributeResource  = "resource"
)

type Attribute struct {
	Base
	AttributeType  string
	VariableName   string
	Total          int
	Value          int
	HasValue       bool
	SpellSlotLevel int
	HitDiceSize    string
}

// Skill types the resolver understands
const (
	SkillSkill    = "skill"
	SkillSave     = "save"
	SkillCheck    = "check"
	SkillArmor    = "armor"
	SkillWeapon   = "weapon"
	SkillLanguage = "language"
	SkillTool     = "tool"
)

type Skill struct {
	Base
	SkillType    string
	Value        int
	Proficiency  float64
	PassiveBonus int
}

type Feature struct {
	Base
	Summary     string
	Description string
}

// Text prefers the summary over the full description
func (f *Feature) Text() string {
	return firstNonEmpty(f.Summary, f.Description)
}

type Note struct {
	Base
	Summary     string
	Description string
}

// Text prefers the summary over the full description
func (n *Note) Text() string {
	return firstNonEmpty(n.Summary, n.Description)
}

// Action types as written by the exporter
const (
	ActionAction   = "action"
	ActionBonus    = "bonus"
	ActionAttack   = "attack"
	ActionReaction = "reaction"
	ActionFree     = "free"
	ActionLong     = "long"
	ActionEvent    = "event"
)

type Action struct {
	Base
	ActionType    string
	AttackRoll    int
	HasAttackRoll bool
	DC            int
	HasDC         bool
	Uses          int
	HasUses       bool
	UsesUsed      int
	CastingTime   string
}

type Damage struct {
	Base
	// Calculation is the raw amount formula, e.g. "1d8 + strength.modifier"
	Calculation string
	// Bonus is the flat amount of the first effect on the roll
	Bonus      int
	DamageType string
}

type Class struct {
	Base
	Level int
}

type Item struct {
	Base
	Quantity           int
	Plural             string
	RequiresAttunement bool
}

type SpellList struct {
	Base
	MaxPrepared int
	DC          int
	AttackBonus int
}

type Spell struct {
	Base
	Level          int
	School         string
	CastingTime    string
	ActionType     string
	Duration       string
	Range          string
	Material       string
	Verbal         bool
	Somatic        bool
	Concentration  bool
	Ritual         bool
	AlwaysPrepared bool
	Prepared       bool
	AttackRoll     int
	HasAttackRoll  bool
	DC             int
	HasDC          bool
}

type DamageMultiplier struct {
	Base
	// Value is 0 for immunity, 0.5 for resistance and 2 for vulnerability
	Value       float64
	DamageTypes []string
}

type Constant struct {
	Base
	VariableName string
	Calculation  string
}

// Other is any record type the resolver has no arm for, such as a folder.
// It is kept because its tags can still carry race information.
type Other struct {
	Base
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
