package resolver

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/KirkDiggler/dicecloud-sheet/internal/dice"
	"github.com/KirkDiggler/dicecloud-sheet/internal/domain/property"
	"github.com/KirkDiggler/dicecloud-sheet/internal/domain/sheet"
)

// Names of records that feed scalar stats
const (
	statArmorClass       = "Armor Class"
	statSpeed            = "Speed"
	statHitPoints        = "Hit Points"
	statProficiencyBonus = "Proficiency Bonus"
	statInitiative       = "Initiative"
	skillPerception      = "Perception"
)

// Tags and constant names that carry identity information
const (
	tagRace            = "race"
	tagSubrace         = "subrace"
	tagBackground      = "background"
	constRace          = "race"
	constSubrace       = "subRace"
	constStartingClass = "startingClass"
)

type pendingSpell struct {
	id        string
	spell     sheet.Spell
	ancestors []string
}

// scan is the state of one resolve call
type scan struct {
	log  *slog.Logger
	fold cases.Caser

	char       *sheet.Character
	attacks    *attackIndex
	spellLists *spellListIndex
	spells     []pendingSpell

	race          string
	subrace       string
	startingClass string

	skipped int
}

func newScan(logger *slog.Logger) *scan {
	return &scan{
		log:        logger,
		fold:       cases.Fold(),
		char:       &sheet.Character{},
		attacks:    newAttackIndex(),
		spellLists: newSpellListIndex(),
	}
}

func (s *scan) skip(b *property.Base, reason string) {
	s.skipped++
	s.log.Debug("skipping record", "id", b.ID, "type", b.Type, "name", b.Name, "reason", reason)
}

// key is the index key for a record; records without an id get one
// nothing else can reference
func key(b *property.Base, pos int) string {
	if b.ID != "" {
		return b.ID
	}
	return fmt.Sprintf("\x00%d", pos)
}

func (s *scan) visit(pos int, rec property.Record) {
	b := rec.Common()
	if b.Removed {
		return
	}
	if b.Disabled() {
		// unprepared spells and unequipped items are still on the sheet
		switch rec.(type) {
		case *property.Spell, *property.Item:
		default:
			return
		}
	}

	s.identitySignals(rec)

	switch p := rec.(type) {
	case *property.Attribute:
		s.attribute(p)
	case *property.Skill:
		s.skill(p)
	case *property.Feature:
		s.feature(p)
	case *property.Note:
		s.note(p)
	case *property.Action:
		s.action(pos, p)
	case *property.Damage:
		s.damage(p)
	case *property.Class:
		s.class(p)
	case *property.Item:
		s.item(p)
	case *property.SpellList:
		s.spellLists.define(key(b, pos), sheet.SpellList{
			Name:        p.Name,
			SaveDC:      p.DC,
			AttackBonus: p.AttackBonus,
			MaxPrepared: p.MaxPrepared,
		})
	case *property.Spell:
		s.spell(pos, p)
	case *property.DamageMultiplier:
		s.damageMultiplier(p)
	case *property.Constant:
		if named(p, constStartingClass) && s.startingClass == "" {
			s.startingClass = unquote(p.Calculation)
		}
	}
}

// identitySignals picks up race, sub-race and background names. The first
// signal of each kind wins.
func (s *scan) identitySignals(rec property.Record) {
	b := rec.Common()

	if c, ok := rec.(*property.Constant); ok {
		switch {
		case named(c, constRace):
			s.setRace(unquote(c.Calculation))
		case named(c, constSubrace):
			s.setSubrace(unquote(c.Calculation))
		}
	}
	if b.HasTag(tagRace) {
		s.setRace(b.Name)
	}
	if b.HasTag(tagSubrace) {
		s.setSubrace(b.Name)
	}

	switch rec.(type) {
	case *property.Note, *property.Other:
		if b.HasTag(tagBackground) && s.char.Background.Name == "" {
			s.char.Background.Name = b.Name
		}
	}
}

func (s *scan) setRace(v string) {
	if s.race == "" {
		s.race = v
	}
}

func (s *scan) setSubrace(v string) {
	if s.subrace == "" {
		s.subrace = v
	}
}

func named(c *property.Constant, name string) bool {
	return strings.EqualFold(c.VariableName, name) || strings.EqualFold(c.Name, name)
}

func (s *scan) attribute(a *property.Attribute) {
	score := a.Total
	if a.HasValue {
		score = a.Value
	}

	switch a.Name {
	case statArmorClass:
		s.char.ArmorClass = score
		return
	case statSpeed:
		s.char.Speed = score
		return
	case statHitPoints:
		s.char.HitPoints = a.Total
		return
	case statProficiencyBonus:
		s.char.ProficiencyBonus = score
		return
	case statInitiative:
		s.char.Initiative = score
		return
	}

	switch a.AttributeType {
	case property.AttributeAbility:
		s.char.AbilityScores = append(s.char.AbilityScores, sheet.AbilityScore{Name: a.Name, Score: score})
	case property.AttributeHitDice:
		size, err := dice.ParseSize(a.HitDiceSize)
		if err != nil {
			s.skip(&a.Base, "hit dice size "+strconv.Quote(a.HitDiceSize))
			return
		}
		if a.Total > 0 {
			s.char.HitDice = append(s.char.HitDice, dice.Die{Size: size, Count: a.Total})
		}
	case property.AttributeSpellSlot:
		if a.SpellSlotLevel < 1 || a.SpellSlotLevel > sheet.MaxSpellLevel {
			s.skip(&a.Base, "spell slot level "+strconv.Itoa(a.SpellSlotLevel))
			return
		}
		s.char.SpellSlots[a.SpellSlotLevel-1] += a.Total
	case property.AttributeResource:
		s.char.Resources = append(s.char.Resources, sheet.Resource{Name: a.Name, Total: a.Total})
	}
}

func (s *scan) skill(k *property.Skill) {
	if k.Name == statInitiative {
		s.char.Initiative = k.Value
		return
	}

	entry := sheet.Skill{
		Name:        k.Name,
		Bonus:       k.Value,
		Proficiency: ClassifyProficiency(k.Proficiency),
	}

	others := &s.char.OtherProficiencies
	switch k.SkillType {
	case property.SkillSkill:
		s.char.Skills = append(s.char.Skills, entry)
		if k.Name == skillPerception {
			s.char.PassiveBonus = k.PassiveBonus
		}
	case property.SkillSave:
		s.char.SavingThrows = append(s.char.SavingThrows, entry)
	case property.SkillArmor:
		others.Armor = appendProficient(others.Armor, k)
	case property.SkillWeapon:
		others.Weapons = appendProficient(others.Weapons, k)
	case property.SkillLanguage:
		others.Languages = appendProficient(others.Languages, k)
	case property.SkillTool:
		others.Tools = appendProficient(others.Tools, k)
	}
}

func appendProficient(list []string, k *property.Skill) []string {
	if k.Proficiency <= 0 || k.Name == "" {
		return list
	}
	return append(list, k.Name)
}

func (s *scan) feature(f *property.Feature) {
	if f.HasTag(tagBackground) {
		s.char.Background.Feature = sheet.Feature{Name: f.Name, Description: f.Text()}
		return
	}
	if f.Name != "" {
		s.char.Features = append(s.char.Features, f.Name)
	}
}

func (s *scan) note(n *property.Note) {
	traits := &s.char.Traits
	switch n.Name {
	case "Personality Traits", "Personality Trait":
		traits.Personality = n.Text()
	case "Ideals", "Ideal":
		traits.Ideals = n.Text()
	case "Bonds", "Bond":
		traits.Bonds = n.Text()
	case "Flaws", "Flaw":
		traits.Flaws = n.Text()
	}
}

func (s *scan) action(pos int, a *property.Action) {
	isAttack := a.ActionType == property.ActionAttack
	if isAttack || a.HasAttackRoll {
		bonus := sheet.ToHit(a.AttackRoll)
		if !a.HasAttackRoll && a.HasDC {
			bonus = sheet.SaveDC(a.DC)
		}
		s.attacks.define(key(&a.Base, pos), a.Name, bonus)
	}
	if isAttack {
		return
	}

	typ, ok := actionType(a.ActionType, a.CastingTime)
	if !ok {
		return
	}
	uses := sheet.UnlimitedUses
	if a.HasUses {
		uses = max(a.Uses-a.UsesUsed, 0)
	}
	s.char.Actions = append(s.char.Actions, sheet.Action{Name: a.Name, Type: typ, Uses: uses})
}

// actionType maps the exported action type onto the action economy. Event
// actions are triggered by the builder itself and report false.
func actionType(exported, castingTime string) (sheet.ActionType, bool) {
	switch strings.ToLower(exported) {
	case property.ActionAction, property.ActionAttack:
		return sheet.ActionType{Kind: sheet.ActionAction}, true
	case property.ActionBonus:
		return sheet.ActionType{Kind: sheet.ActionBonus}, true
	case property.ActionReaction:
		return sheet.ActionType{Kind: sheet.ActionReaction}, true
	case property.ActionFree:
		return sheet.ActionType{Kind: sheet.ActionFree}, true
	case property.ActionLong:
		return sheet.LongAction(castingTime), true
	case property.ActionEvent:
		return sheet.ActionType{}, false
	case "":
		return castingTimeType(castingTime), true
	default:
		return sheet.ActionType{Kind: sheet.ActionAction}, true
	}
}

// castingTimeType reads free text such as "1 bonus action" or "10 minutes"
func castingTimeType(text string) sheet.ActionType {
	lower := strings.ToLower(text)
	switch {
	case lower == "":
		return sheet.ActionType{Kind: sheet.ActionAction}
	case strings.Contains(lower, "bonus"):
		return sheet.ActionType{Kind: sheet.ActionBonus}
	case strings.Contains(lower, "reaction"):
		return sheet.ActionType{Kind: sheet.ActionReaction}
	case strings.Contains(lower, "free"):
		return sheet.ActionType{Kind: sheet.ActionFree}
	case strings.Contains(lower, "action"):
		return sheet.ActionType{Kind: sheet.ActionAction}
	default:
		return sheet.LongAction(text)
	}
}

func (s *scan) damage(d *property.Damage) {
	if d.ParentID == "" {
		s.skip(&d.Base, "damage without parent")
		return
	}
	s.attacks.addDamage(d.ParentID, damageTerm(d))
}

// damageTerm renders one damage record as "1d8+3 pir."
func damageTerm(d *property.Damage) string {
	var b strings.Builder

	if die, ok := dice.Find(d.Calculation); ok {
		b.WriteString(die.String())
		if d.Bonus > 0 {
			b.WriteByte('+')
		}
		if d.Bonus != 0 {
			b.WriteString(strconv.Itoa(d.Bonus))
		}
	} else {
		// variable references like "strength.modifier" are evaluated into Bonus
		flat, numeric := flatAmount(d.Calculation)
		if numeric || d.Bonus != 0 {
			b.WriteString(strconv.Itoa(flat + d.Bonus))
		}
	}

	if d.DamageType != "" {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(AbbreviateDamage(d.DamageType))
	}
	return b.String()
}

// flatAmount sums the integer terms of a "+" separated calculation
func flatAmount(calc string) (sum int, numeric bool) {
	for _, term := range strings.Split(calc, "+") {
		n, err := strconv.Atoi(strings.TrimSpace(term))
		if err != nil {
			continue
		}
		sum += n
		numeric = true
	}
	return sum, numeric
}

func (s *scan) class(c *property.Class) {
	if c.Name == "" {
		s.skip(&c.Base, "class without name")
		return
	}
	s.char.Classes = append(s.char.Classes, sheet.Class{Name: c.Name, Level: c.Level})
}

func (s *scan) item(i *property.Item) {
	item := sheet.Item{
		Quantity:           i.Quantity,
		Name:               i.Name,
		Plural:             i.Plural,
		RequiresAttunement: i.RequiresAttunement,
	}
	if coin, ok := matchCoin(s.fold, item.DisplayName()); ok {
		s.char.Coins.Add(coin, item.Quantity)
		return
	}
	s.char.Items = append(s.char.Items, item)
}

func (s *scan) spell(pos int, p *property.Spell) {
	if p.Level < 0 || p.Level > sheet.MaxSpellLevel {
		s.skip(&p.Base, "spell level "+strconv.Itoa(p.Level))
		return
	}

	// only castable spells show up in the attack table
	if !p.Disabled() && (p.HasAttackRoll || p.HasDC) {
		bonus := sheet.ToHit(p.AttackRoll)
		if !p.HasAttackRoll {
			bonus = sheet.SaveDC(p.DC)
		}
		s.attacks.define(key(&p.Base, pos), p.Name, bonus)
	}

	prep := sheet.NotPrepared
	switch {
	case p.AlwaysPrepared:
		prep = sheet.AlwaysPrepared
	case p.Prepared:
		prep = sheet.Prepared
	}

	castingTime, ok := actionType(p.ActionType, p.CastingTime)
	if !ok {
		castingTime = castingTimeType(p.CastingTime)
	}

	s.spells = append(s.spells, pendingSpell{
		id:        p.ID,
		ancestors: p.Ancestors,
		spell: sheet.Spell{
			Name:          p.Name,
			Level:         p.Level,
			CastingTime:   castingTime,
			Duration:      p.Duration,
			School:        p.School,
			Range:         p.Range,
			Verbal:        p.Verbal,
			Somatic:       p.Somatic,
			Concentration: p.Concentration,
			Ritual:        p.Ritual,
			Material:      p.Material,
			Preparation:   prep,
		},
	})
}

func (s *scan) damageMultiplier(m *property.DamageMultiplier) {
	var kind sheet.MultKind
	switch {
	case m.Value == 0:
		kind = sheet.Immune
	case m.Value == 2:
		kind = sheet.Vuln
	case m.Value > 0 && m.Value < 1:
		kind = sheet.Resist
	default:
		s.skip(&m.Base, "multiplier "+strconv.FormatFloat(m.Value, 'g', -1, 64))
		return
	}
	for _, t := range m.DamageTypes {
		s.char.DamageMults = append(s.char.DamageMults, sheet.DamageMult{Kind: kind, DamageType: t})
	}
}

// finish runs the post-pass over everything the scan collected
func (s *scan) finish(races map[string]string) *sheet.Character {
	char := s.char

	attacks, dropped := s.attacks.drain()
	if dropped > 0 {
		s.log.Debug("discarded unnamed attacks", "count", dropped)
	}
	char.Attacks = attacks

	// spells bind against the complete index so list order does not matter
	for _, p := range s.spells {
		list, ok := s.spellLists.nearest(p.ancestors)
		if !ok {
			s.log.Debug("spell outside any spell list", "id", p.id, "name", p.spell.Name)
			continue
		}
		list.Add(p.spell)
	}
	lists, dropped := s.spellLists.drain()
	if dropped > 0 {
		s.log.Debug("discarded unnamed spell lists", "count", dropped)
	}
	char.SpellLists = lists

	if s.startingClass != "" {
		want := s.fold.String(s.startingClass)
		for i := range char.Classes {
			if s.fold.String(char.Classes[i].Name) == want {
				char.Classes[i].StartingClass = true
			}
		}
	}

	char.Race = NormalizeRace(composeRace(s.race, s.subrace), races)
	return char
}
