package resolver_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/dicecloud-sheet/internal/dice"
	"github.com/KirkDiggler/dicecloud-sheet/internal/domain/property"
	"github.com/KirkDiggler/dicecloud-sheet/internal/domain/sheet"
	dnderr "github.com/KirkDiggler/dicecloud-sheet/internal/errors"
	"github.com/KirkDiggler/dicecloud-sheet/internal/resolver"
)

const creatureJSON = `{"_id":"c1","name":"Vex","alignment":"Chaotic Good","picture":"p.png","denormalizedStats":{"xp":900}}`

// characterProps is a small but complete character. Every record has a
// distinct order so any permutation sorts back to the same sequence.
var characterProps = []string{
	`{"_id":"race","type":"folder","name":"Elf","tags":["race"],"order":0}`,
	`{"_id":"str","type":"attribute","attributeType":"ability","name":"Strength","value":10,"total":10,"order":1}`,
	`{"_id":"dex","type":"attribute","attributeType":"ability","name":"Dexterity","value":16,"total":16,"order":2}`,
	`{"_id":"ac","type":"attribute","attributeType":"stat","name":"Armor Class","value":15,"total":15,"order":3}`,
	`{"_id":"spd","type":"attribute","attributeType":"stat","name":"Speed","value":30,"total":30,"order":4}`,
	`{"_id":"hp","type":"attribute","attributeType":"healthBar","name":"Hit Points","value":20,"total":27,"order":5}`,
	`{"_id":"pb","type":"attribute","attributeType":"modifier","name":"Proficiency Bonus","value":3,"total":3,"order":6}`,
	`{"_id":"hd","type":"attribute","attributeType":"hitDice","name":"Hit Dice","hitDiceSize":"d8","total":3,"order":7}`,
	`{"_id":"slot1a","type":"attribute","attributeType":"spellSlot","spellSlotLevel":{"value":1},"total":2,"order":8}`,
	`{"_id":"slot1b","type":"attribute","attributeType":"spellSlot","spellSlotLevel":{"value":1},"total":2,"order":9}`,
	`{"_id":"slot3","type":"attribute","attributeType":"spellSlot","spellSlotLevel":{"value":3},"total":1,"order":10}`,
	`{"_id":"sp","type":"attribute","attributeType":"resource","name":"Sorcery Points","total":5,"order":11}`,
	`{"_id":"stealth","type":"skill","skillType":"skill","name":"Stealth","value":7,"proficiency":2,"order":12}`,
	`{"_id":"perc","type":"skill","skillType":"skill","name":"Perception","value":4,"proficiency":1,"passiveBonus":5,"order":13}`,
	`{"_id":"ath","type":"skill","skillType":"skill","name":"Athletics","value":2,"proficiency":0.49,"order":14}`,
	`{"_id":"dexsave","type":"skill","skillType":"save","name":"Dexterity Save","value":6,"proficiency":1,"order":15}`,
	`{"_id":"elvish","type":"skill","skillType":"language","name":"Elvish","proficiency":1,"order":16}`,
	`{"_id":"draconic","type":"skill","skillType":"language","name":"Draconic","proficiency":0,"order":17}`,
	`{"_id":"swords","type":"skill","skillType":"weapon","name":"Longswords","proficiency":1,"order":18}`,
	`{"_id":"init","type":"attribute","attributeType":"modifier","name":"Initiative","value":3,"total":3,"order":19}`,
	`{"_id":"sneak","type":"feature","name":"Sneak Attack","order":20}`,
	`{"_id":"shelter","type":"feature","name":"Shelter of the Faithful","tags":["background"],"description":{"text":"You command respect"},"order":21}`,
	`{"_id":"dark","type":"feature","name":"Darkvision","inactive":true,"order":22}`,
	`{"_id":"acolyte","type":"note","name":"Acolyte","tags":["background"],"order":23}`,
	`{"_id":"ideals","type":"note","name":"Ideals","summary":{"text":"Tradition"},"order":24}`,
	`{"_id":"rogue","type":"class","name":"Rogue","level":3,"order":25}`,
	`{"_id":"wiz","type":"class","name":"Wizard","level":2,"order":26}`,
	`{"_id":"start","type":"constant","variableName":"startingClass","calculation":"'wizard'","order":27}`,
	`{"_id":"d1","type":"damage","parent":{"id":"sword"},"amount":{"calculation":"1d8 + strength.modifier","effects":[{"amount":{"value":3}}]},"damageType":"slashing","order":29}`,
	`{"_id":"sword","type":"action","actionType":"attack","name":"Longsword","attackRoll":{"value":5},"order":30}`,
	`{"_id":"d2","type":"damage","parent":{"id":"sword"},"amount":{"calculation":"1d6"},"damageType":"fire","order":31}`,
	`{"_id":"breath","type":"action","actionType":"action","name":"Breath Weapon","dc":{"value":13},"uses":{"value":1},"usesUsed":0,"order":32}`,
	`{"_id":"cunning","type":"action","actionType":"bonus","name":"Cunning Action","order":33}`,
	`{"_id":"lvl","type":"action","actionType":"event","name":"Level Up","order":34}`,
	`{"_id":"blast","type":"action","actionType":"action","name":"Eldritch Blast","attackRoll":{"value":7},"order":35}`,
	`{"_id":"d3","type":"damage","parent":{"id":"ghost"},"amount":{"calculation":"2d6"},"damageType":"cold","order":36}`,
	`{"_id":"oldbow","type":"action","actionType":"attack","name":"Old Bow","removed":true,"attackRoll":{"value":4},"order":37}`,
	`{"_id":"d4","type":"damage","parent":{"id":"oldbow"},"amount":{"calculation":"1d6"},"damageType":"piercing","order":38}`,
	`{"_id":"resist","type":"damageMultiplier","value":0.5,"damageTypes":["fire"],"order":39}`,
	`{"_id":"immune","type":"damageMultiplier","value":0,"damageTypes":["poison"],"order":40}`,
	`{"_id":"gold","type":"item","name":"Gold piece","plural":"Gold pieces","quantity":15,"order":41}`,
	`{"_id":"copper","type":"item","name":"Copper piece","plural":"Copper pieces","quantity":1,"order":42}`,
	`{"_id":"rope","type":"item","name":"Rope","quantity":1,"order":43}`,
	`{"_id":"ring","type":"item","name":"Ring of Protection","requiresAttunement":true,"inactive":true,"order":44}`,
	`{"_id":"torch","type":"item","name":"Torch","removed":true,"order":45}`,
	`{"_id":"shield","type":"spell","name":"Shield","level":1,"prepared":true,"ancestors":[{"id":"list1"},{"id":"c1"}],"order":49}`,
	`{"_id":"list1","type":"spellList","name":"Wizard Spells","dc":{"value":14},"attackRollBonus":{"value":6},"maxPrepared":{"value":7},"order":50}`,
	`{"_id":"list2","type":"spellList","name":"Innate","order":51}`,
	`{"_id":"oldlist","type":"spellList","name":"Old List","removed":true,"order":52}`,
	`{"_id":"firebolt","type":"spell","name":"Fire Bolt","level":0,"alwaysPrepared":true,"ancestors":[{"id":"list2"},{"id":"list1"}],"order":53}`,
	`{"_id":"misty","type":"spell","name":"Misty Step","level":2,"castingTime":"1 bonus action","ancestors":[{"id":"oldlist"},{"id":"list1"}],"order":54}`,
	`{"_id":"loose","type":"spell","name":"Floating Disk","level":1,"ancestors":[{"id":"c1"}],"order":55}`,
	`{"_id":"sleep","type":"spell","name":"Sleep","level":1,"inactive":true,"ancestors":[{"id":"list1"}],"order":56}`,
	`{"_id":"list3","type":"spellList","order":57}`,
	`{"_id":"high","type":"constant","variableName":"subRace","calculation":"\"High\"","order":58}`,
}

func buildExport(t *testing.T, creature string, props ...string) *property.Export {
	t.Helper()
	doc := `{"creatures":[` + creature + `],"creatureProperties":[` + strings.Join(props, ",") + `]}`
	export, err := property.ParseExport([]byte(doc))
	require.NoError(t, err)
	return export
}

type ResolverTestSuite struct {
	suite.Suite
	resolver *resolver.Resolver
}

func (s *ResolverTestSuite) SetupTest() {
	s.resolver = resolver.New(nil)
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverTestSuite))
}

func (s *ResolverTestSuite) resolve(props ...string) *sheet.Character {
	char, err := s.resolver.Resolve(buildExport(s.T(), creatureJSON, props...), nil)
	s.Require().NoError(err)
	return char
}

func (s *ResolverTestSuite) TestResolve_Identity() {
	char := s.resolve(characterProps...)

	s.Equal("c1", char.ID)
	s.Equal("Vex", char.Name)
	s.Equal("Chaotic Good", char.Alignment)
	s.Equal(900, char.XP)
	s.Equal("p.png", char.Portrait)
	s.Equal("High Elf", char.Race)
	s.Equal(sheet.Background{
		Name:    "Acolyte",
		Feature: sheet.Feature{Name: "Shelter of the Faithful", Description: "You command respect"},
	}, char.Background)
	s.Equal("Tradition", char.Traits.Ideals)
	s.Empty(char.Traits.Bonds)
}

func (s *ResolverTestSuite) TestResolve_Stats() {
	char := s.resolve(characterProps...)

	s.Equal([]sheet.AbilityScore{{Name: "Strength", Score: 10}, {Name: "Dexterity", Score: 16}}, char.AbilityScores)
	s.Equal(15, char.ArmorClass)
	s.Equal(30, char.Speed)
	s.Equal(27, char.HitPoints, "hit points use the total, not the current value")
	s.Equal(3, char.ProficiencyBonus)
	s.Equal(3, char.Initiative)
	s.Equal([]dice.Die{{Size: 8, Count: 3}}, char.HitDice)
	s.Equal([]sheet.Resource{{Name: "Sorcery Points", Total: 5}}, char.Resources)

	var slots [sheet.MaxSpellLevel]int
	slots[0] = 4
	slots[2] = 1
	s.Equal(slots, char.SpellSlots)
}

func (s *ResolverTestSuite) TestResolve_Skills() {
	char := s.resolve(characterProps...)

	s.Equal([]sheet.Skill{
		{Name: "Stealth", Bonus: 7, Proficiency: sheet.ProficiencyExpert},
		{Name: "Perception", Bonus: 4, Proficiency: sheet.ProficiencyProficient},
		{Name: "Athletics", Bonus: 2, Proficiency: sheet.ProficiencyHalf},
	}, char.Skills)
	s.Equal([]sheet.Skill{{Name: "Dexterity Save", Bonus: 6, Proficiency: sheet.ProficiencyProficient}}, char.SavingThrows)
	s.Equal(5, char.PassiveBonus)
	s.Equal(19, char.PassivePerception())
	s.Equal([]string{"Elvish"}, char.OtherProficiencies.Languages)
	s.Equal([]string{"Longswords"}, char.OtherProficiencies.Weapons)
	s.Empty(char.OtherProficiencies.Armor)
}

func (s *ResolverTestSuite) TestResolve_FeaturesAndClasses() {
	char := s.resolve(characterProps...)

	s.Equal([]string{"Sneak Attack"}, char.Features, "inactive and background features are left out")
	s.Equal([]sheet.Class{
		{Name: "Rogue", Level: 3},
		{Name: "Wizard", Level: 2, StartingClass: true},
	}, char.Classes)
}

func (s *ResolverTestSuite) TestResolve_AttacksAndActions() {
	char := s.resolve(characterProps...)

	s.Equal([]sheet.Attack{
		{Name: "Longsword", Bonus: sheet.ToHit(5), Damage: "1d8+3 sla., 1d6 fire"},
		{Name: "Eldritch Blast", Bonus: sheet.ToHit(7)},
	}, char.Attacks)

	s.Equal([]sheet.Action{
		{Name: "Breath Weapon", Type: sheet.ActionType{Kind: sheet.ActionAction}, Uses: 1},
		{Name: "Cunning Action", Type: sheet.ActionType{Kind: sheet.ActionBonus}, Uses: sheet.UnlimitedUses},
		{Name: "Eldritch Blast", Type: sheet.ActionType{Kind: sheet.ActionAction}, Uses: sheet.UnlimitedUses},
	}, char.Actions)

	s.Equal([]sheet.DamageMult{
		{Kind: sheet.Resist, DamageType: "fire"},
		{Kind: sheet.Immune, DamageType: "poison"},
	}, char.DamageMults)
}

func (s *ResolverTestSuite) TestResolve_Inventory() {
	char := s.resolve(characterProps...)

	s.Equal(15, char.Coins.Gold())
	s.Equal(1, char.Coins.Copper())
	s.Zero(char.Coins.Silver())
	s.Equal([]sheet.Item{
		{Quantity: 1, Name: "Rope"},
		{Quantity: 1, Name: "Ring of Protection", RequiresAttunement: true},
	}, char.Items)
}

func (s *ResolverTestSuite) TestResolve_SpellLists() {
	char := s.resolve(characterProps...)

	s.Require().Len(char.SpellLists, 2, "removed and unnamed lists are dropped")

	wizard := char.SpellLists[0]
	s.Equal("Wizard Spells", wizard.Name)
	s.Equal(14, wizard.SaveDC)
	s.Equal(6, wizard.AttackBonus)
	s.Equal(7, wizard.MaxPrepared)
	s.Equal(3, wizard.Count())
	s.Equal(2, wizard.MaxLevel())

	s.Require().Contains(wizard.Levels, 1)
	level1 := wizard.Levels[1].SortedSpells()
	s.Require().Len(level1, 2)
	s.Equal("Shield", level1[0].Name)
	s.Equal(sheet.Prepared, level1[0].Preparation)
	s.Equal("Sleep", level1[1].Name)
	s.Equal(sheet.NotPrepared, level1[1].Preparation)

	s.Require().Contains(wizard.Levels, 2)
	misty := wizard.Levels[2].Spells[0]
	s.Equal("Misty Step", misty.Name)
	s.Equal(sheet.ActionType{Kind: sheet.ActionBonus}, misty.CastingTime)

	innate := char.SpellLists[1]
	s.Equal("Innate", innate.Name)
	s.Equal(1, innate.Count())
	s.Require().Contains(innate.Levels, 0)
	s.Equal("Fire Bolt", innate.Levels[0].Spells[0].Name)
	s.Equal(sheet.AlwaysPrepared, innate.Levels[0].Spells[0].Preparation)
}

func (s *ResolverTestSuite) TestResolve_OrderIndependent() {
	want := s.resolve(characterProps...)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 10; i++ {
		props := append([]string(nil), characterProps...)
		rng.Shuffle(len(props), func(a, b int) { props[a], props[b] = props[b], props[a] })

		s.Equal(want, s.resolve(props...), "permutation %d", i)
	}
}

func (s *ResolverTestSuite) TestResolve_NearestSpellList() {
	char := s.resolve(
		`{"_id":"outer","type":"spellList","name":"Outer","order":1}`,
		`{"_id":"inner","type":"spellList","name":"Inner","order":2}`,
		`{"_id":"sp","type":"spell","name":"Bless","level":1,"ancestors":[{"id":"inner"},{"id":"outer"}],"order":3}`,
	)

	s.Require().Len(char.SpellLists, 2)
	s.Zero(char.SpellLists[0].Count())
	s.Equal(1, char.SpellLists[1].Count())
}

func (s *ResolverTestSuite) TestResolve_DamageWithoutAttack() {
	char := s.resolve(
		`{"_id":"d","type":"damage","parent":{"id":"nowhere"},"amount":{"calculation":"1d4"},"damageType":"acid","order":1}`,
		`{"_id":"n","type":"damage","amount":{"calculation":"1d4"},"order":2}`,
	)

	s.Empty(char.Attacks)
}

func (s *ResolverTestSuite) TestResolve_DamageFormatting() {
	char := s.resolve(
		`{"_id":"a","type":"action","actionType":"attack","name":"Dagger","attackRoll":{"value":-1},"order":1}`,
		`{"_id":"d1","type":"damage","parent":{"id":"a"},"amount":{"calculation":"d4 + dexterity.modifier","effects":[{"amount":{"value":-2}}]},"damageType":"piercing","order":2}`,
		`{"_id":"d2","type":"damage","parent":{"id":"a"},"amount":{"calculation":"2"},"damageType":"radiant","order":3}`,
		`{"_id":"save","type":"action","actionType":"attack","name":"Poison Spray","dc":{"value":13},"order":4}`,
	)

	s.Equal([]sheet.Attack{
		{Name: "Dagger", Bonus: sheet.ToHit(-1), Damage: "1d4-2 pir., 2 rad."},
		{Name: "Poison Spray", Bonus: sheet.SaveDC(13)},
	}, char.Attacks)
}

func (s *ResolverTestSuite) TestResolve_FlatDamage() {
	char := s.resolve(
		`{"_id":"a","type":"action","actionType":"attack","name":"Unarmed Strike","attackRoll":{"value":4},"order":1}`,
		`{"_id":"d1","type":"damage","parent":{"id":"a"},"amount":{"calculation":"1 + strength.modifier","effects":[{"amount":{"value":2}}]},"damageType":"bludgeoning","order":2}`,
		`{"_id":"d2","type":"damage","parent":{"id":"a"},"amount":{"calculation":"strength.modifier","effects":[{"amount":{"value":3}}]},"damageType":"slashing","order":3}`,
		`{"_id":"d3","type":"damage","parent":{"id":"a"},"amount":{"calculation":"4","effects":[{"amount":{"value":1}}]},"damageType":"fire","order":4}`,
	)

	s.Require().Len(char.Attacks, 1)
	s.Equal("3 blu., 3 sla., 5 fire", char.Attacks[0].Damage)
}

func (s *ResolverTestSuite) TestResolve_SpellAttacks() {
	char := s.resolve(
		`{"_id":"list","type":"spellList","name":"Wizard","order":1}`,
		`{"_id":"fb","type":"spell","name":"Fire Bolt","level":0,"attackRoll":{"value":6},"ancestors":[{"id":"list"}],"order":2}`,
		`{"_id":"fbd","type":"damage","parent":{"id":"fb"},"amount":{"calculation":"1d10"},"damageType":"fire","order":3}`,
		`{"_id":"sf","type":"spell","name":"Sacred Flame","level":0,"dc":{"value":13},"ancestors":[{"id":"list"}],"order":4}`,
		`{"_id":"sfd","type":"damage","parent":{"id":"sf"},"amount":{"calculation":"1d8"},"damageType":"radiant","order":5}`,
		`{"_id":"off","type":"spell","name":"Ray of Frost","level":0,"inactive":true,"attackRoll":{"value":6},"ancestors":[{"id":"list"}],"order":6}`,
	)

	s.Equal([]sheet.Attack{
		{Name: "Fire Bolt", Bonus: sheet.ToHit(6), Damage: "1d10 fire"},
		{Name: "Sacred Flame", Bonus: sheet.SaveDC(13), Damage: "1d8 rad."},
	}, char.Attacks)
	s.Require().Len(char.SpellLists, 1)
	s.Equal(3, char.SpellLists[0].Count(), "spell attacks stay in their list")
}

func (s *ResolverTestSuite) TestResolve_ActionUses() {
	char := s.resolve(
		`{"_id":"a","type":"action","actionType":"reaction","name":"Uncanny Dodge","uses":{"value":2},"usesUsed":5,"order":1}`,
		`{"_id":"b","type":"action","actionType":"long","name":"Ritual","castingTime":"10 minutes","order":2}`,
	)

	s.Equal([]sheet.Action{
		{Name: "Uncanny Dodge", Type: sheet.ActionType{Kind: sheet.ActionReaction}, Uses: 0},
		{Name: "Ritual", Type: sheet.LongAction("10 minutes"), Uses: sheet.UnlimitedUses},
	}, char.Actions)
}

func (s *ResolverTestSuite) TestResolve_DeactivatedByToggle() {
	char := s.resolve(
		`{"_id":"a","type":"attribute","attributeType":"ability","name":"Strength","value":18,"deactivatedByToggle":true,"order":1}`,
		`{"_id":"b","type":"attribute","attributeType":"ability","name":"Strength","value":10,"order":2}`,
	)

	s.Equal([]sheet.AbilityScore{{Name: "Strength", Score: 10}}, char.AbilityScores)
}

func (s *ResolverTestSuite) TestResolve_RaceLookup() {
	export := buildExport(s.T(), creatureJSON,
		`{"_id":"r","type":"constant","variableName":"race","calculation":"\"Tiefling\"","order":1}`,
	)

	char, err := s.resolver.Resolve(export, map[string]string{"Tiefling": "Feral Tiefling"})
	s.Require().NoError(err)
	s.Equal("Feral Tiefling", char.Race)
}

func (s *ResolverTestSuite) TestResolve_RaceRunTogether() {
	char := s.resolve(
		`{"_id":"r","type":"constant","variableName":"race","calculation":"'Dwarf'","order":1}`,
		`{"_id":"s","type":"constant","variableName":"subRace","calculation":"'HillDwarf'","order":2}`,
	)

	s.Equal("Hill Dwarf", char.Race)
}

func (s *ResolverTestSuite) TestResolve_NoRace() {
	char := s.resolve()

	s.Empty(char.Race)
	s.Empty(char.Attacks)
	s.Empty(char.SpellLists)
}

func (s *ResolverTestSuite) TestResolve_StartingClassBeforeClasses() {
	char := s.resolve(
		`{"_id":"k","type":"constant","variableName":"startingClass","calculation":"\"Fighter\"","order":1}`,
		`{"_id":"f","type":"class","name":"Fighter","level":1,"order":2}`,
		`{"_id":"c","type":"class","name":"Cleric","level":1,"order":3}`,
	)

	s.Equal([]sheet.Class{
		{Name: "Fighter", Level: 1, StartingClass: true},
		{Name: "Cleric", Level: 1},
	}, char.Classes)
}

func (s *ResolverTestSuite) TestResolve_AvatarPreferred() {
	export := buildExport(s.T(), `{"name":"A","alignment":"N","picture":"p.png","avatarPicture":"a.png","denormalizedStats":{"xp":0}}`)

	char, err := s.resolver.Resolve(export, nil)
	s.Require().NoError(err)
	s.Equal("a.png", char.Portrait)
}

func TestResolve_MissingIdentity(t *testing.T) {
	tests := []struct {
		name     string
		creature string
		field    string
	}{
		{
			name:     "name",
			creature: `{"alignment":"N","denormalizedStats":{"xp":0}}`,
			field:    property.PathName,
		},
		{
			name:     "alignment",
			creature: `{"name":"A","alignment":null,"denormalizedStats":{"xp":0}}`,
			field:    property.PathAlignment,
		},
		{
			name:     "xp",
			creature: `{"name":"A","alignment":"N"}`,
			field:    property.PathXP,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			char, err := resolver.Resolve(buildExport(t, tt.creature), nil)

			require.Error(t, err)
			assert.Nil(t, char)
			assert.True(t, dnderr.IsSchema(err))
			assert.Equal(t, tt.field, dnderr.GetMeta(err)["field"])
		})
	}
}

func TestResolve_NilExport(t *testing.T) {
	_, err := resolver.New(&resolver.Config{}).Resolve(nil, nil)

	require.Error(t, err)
	assert.True(t, dnderr.IsInvalidArgument(err))
}
