package property

import (
	"github.com/tidwall/gjson"

	dnderr "github.com/KirkDiggler/dicecloud-sheet/internal/errors"
)

// Paths of the mandatory creature identity fields
const (
	PathName      = "creatures.0.name"
	PathAlignment = "creatures.0.alignment"
	PathXP        = "creatures.0.denormalizedStats.xp"
)

// PathProperties is the array of property records
const PathProperties = "creatureProperties"

// Creature is the identity block of an export. Name, Alignment and XP are nil
// when the export does not carry them at all.
type Creature struct {
	ID            string
	Name          *string
	Alignment     *string
	XP            *int
	Picture       string
	AvatarPicture string
}

// Export is a decoded creature export
type Export struct {
	Creature   Creature
	Properties []Record
	// Skipped counts property entries that could not be decoded
	Skipped int
}

// ParseExport decodes a creature export document. Invalid JSON and a
// creatureProperties value that is not an array are errors; entries that are
// not usable records are counted in Skipped.
func ParseExport(data []byte) (*Export, error) {
	if !gjson.ValidBytes(data) {
		return nil, dnderr.InvalidArgument("export is not valid JSON")
	}

	doc := gjson.ParseBytes(data)
	out := &Export{
		Creature: decodeCreature(doc),
	}

	props := doc.Get(PathProperties)
	if props.Exists() && !props.IsArray() {
		return nil, dnderr.Newf(dnderr.CodeSchema, "%s is not an array", PathProperties).
			WithMeta("field", PathProperties)
	}

	props.ForEach(func(_, v gjson.Result) bool {
		rec, ok := Decode(v)
		if !ok {
			out.Skipped++
			return true
		}
		out.Properties = append(out.Properties, rec)
		return true
	})

	return out, nil
}

func decodeCreature(doc gjson.Result) Creature {
	c := Creature{
		ID:            doc.Get("creatures.0._id").String(),
		Picture:       doc.Get("creatures.0.picture").String(),
		AvatarPicture: doc.Get("creatures.0.avatarPicture").String(),
	}
	if v := doc.Get(PathName); present(v) {
		s := v.String()
		c.Name = &s
	}
	if v := doc.Get(PathAlignment); present(v) {
		s := v.String()
		c.Alignment = &s
	}
	if v := doc.Get(PathXP); present(v) {
		n := int(v.Int())
		c.XP = &n
	}
	return c
}

// Decode turns one raw property into its typed variant. It reports false
// for values that are not objects or have no type.
func Decode(v gjson.Result) (Record, bool) {
	if !v.IsObject() {
		return nil, false
	}
	typ := v.Get("type").String()
	if typ == "" {
		return nil, false
	}

	base := decodeBase(v, Type(typ))

	switch base.Type {
	case TypeAttribute:
		val := v.Get("value")
		return &Attribute{
			Base:           base,
			AttributeType:  v.Get("attributeType").String(),
			VariableName:   v.Get("variableName").String(),
			Total:          int(v.Get("total").Int()),
			Value:          int(val.Int()),
			HasValue:       present(val),
			SpellSlotLevel: int(v.Get("spellSlotLevel.value").Int()),
			HitDiceSize:    v.Get("hitDiceSize").String(),
		}, true
	case TypeSkill:
		return &Skill{
			Base:         base,
			SkillType:    v.Get("skillType").String(),
			Value:        int(v.Get("value").Int()),
			Proficiency:  v.Get("proficiency").Float(),
			PassiveBonus: int(v.Get("passiveBonus").Int()),
		}, true
	case TypeFeature:
		return &Feature{
			Base:        base,
			Summary:     v.Get("summary.text").String(),
			Description: v.Get("description.text").String(),
		}, true
	case TypeNote:
		return &Note{
			Base:        base,
			Summary:     v.Get("summary.text").String(),
			Description: v.Get("description.text").String(),
		}, true
	case TypeAction:
		atk := v.Get("attackRoll.value")
		dc := v.Get("dc.value")
		uses := v.Get("uses.value")
		return &Action{
			Base:          base,
			ActionType:    v.Get("actionType").String(),
			AttackRoll:    int(atk.Int()),
			HasAttackRoll: present(atk),
			DC:            int(dc.Int()),
			HasDC:         present(dc),
			Uses:          int(uses.Int()),
			HasUses:       present(uses),
			UsesUsed:      int(v.Get("usesUsed").Int()),
			CastingTime:   v.Get("castingTime").String(),
		}, true
	case TypeDamage:
		return &Damage{
			Base:        base,
			Calculation: v.Get("amount.calculation").String(),
			Bonus:       int(v.Get("amount.effects.0.amount.value").Int()),
			DamageType:  v.Get("damageType").String(),
		}, true
	case TypeClass:
		return &Class{
			Base:  base,
			Level: int(v.Get("level").Int()),
		}, true
	case TypeItem:
		qty := v.Get("quantity")
		item := &Item{
			Base:               base,
			Quantity:           int(qty.Int()),
			Plural:             v.Get("plural").String(),
			RequiresAttunement: v.Get("requiresAttunement").Bool(),
		}
		if !present(qty) {
			item.Quantity = 1
		}
		return item, true
	case TypeSpellList:
		return &SpellList{
			Base:        base,
			MaxPrepared: int(v.Get("maxPrepared.value").Int()),
			DC:          int(v.Get("dc.value").Int()),
			AttackBonus: int(v.Get("attackRollBonus.value").Int()),
		}, true
	case TypeSpell:
		atk := v.Get("attackRoll.value")
		dc := v.Get("dc.value")
		return &Spell{
			Base:           base,
			Level:          int(v.Get("level").Int()),
			School:         v.Get("school").String(),
			CastingTime:    v.Get("castingTime").String(),
			ActionType:     v.Get("actionType").String(),
			Duration:       v.Get("duration").String(),
			Range:          v.Get("range").String(),
			Material:       v.Get("material").String(),
			Verbal:         v.Get("verbal").Bool(),
			Somatic:        v.Get("somatic").Bool(),
			Concentration:  v.Get("concentration").Bool(),
			Ritual:         v.Get("ritual").Bool(),
			AlwaysPrepared: v.Get("alwaysPrepared").Bool(),
			Prepared:       v.Get("prepared").Bool(),
			AttackRoll:     int(atk.Int()),
			HasAttackRoll:  present(atk),
			DC:             int(dc.Int()),
			HasDC:          present(dc),
		}, true
	case TypeDamageMultiplier:
		return &DamageMultiplier{
			Base:        base,
			Value:       v.Get("value").Float(),
			DamageTypes: stringArray(v.Get("damageTypes")),
		}, true
	case TypeConstant:
		return &Constant{
			Base:         base,
			VariableName: v.Get("variableName").String(),
			Calculation:  v.Get("calculation").String(),
		}, true
	default:
		return &Other{Base: base}, true
	}
}

func decodeBase(v gjson.Result, typ Type) Base {
	b := Base{
		ID:                  v.Get("_id").String(),
		Type:                typ,
		Name:                v.Get("name").String(),
		Order:               int(v.Get("order").Int()),
		Removed:             v.Get("removed").Bool(),
		Inactive:            v.Get("inactive").Bool(),
		DeactivatedByToggle: v.Get("deactivatedByToggle").Bool(),
		Tags:                stringArray(v.Get("tags")),
		ParentID:            v.Get("parent.id").String(),
	}
	v.Get("ancestors").ForEach(func(_, a gjson.Result) bool {
		if id := a.Get("id").String(); id != "" {
			b.Ancestors = append(b.Ancestors, id)
		}
		return true
	})
	return b
}

func stringArray(v gjson.Result) []string {
	if !v.IsArray() {
		return nil
	}
	var out []string
	for _, s := range v.Array() {
		if s.Type == gjson.String && s.Str != "" {
			out = append(out, s.Str)
		}
	}
	return out
}

func present(v gjson.Result) bool {
	return v.Exists() && v.Type != gjson.Null
}
