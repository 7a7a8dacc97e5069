package sheet

import (
	"slices"

	"github.com/KirkDiggler/dicecloud-sheet/internal/dice"
)

// Traits are the four role-play prompts from the character's notes
type Traits struct {
	Personality string `json:"personality"`
	Ideals      string `json:"ideals"`
	Bonds       string `json:"bonds"`
	Flaws       string `json:"flaws"`
}

// OtherProficiencies are the proficiencies that are not skills or saves
type OtherProficiencies struct {
	Armor     []string `json:"armor"`
	Weapons   []string `json:"weapons"`
	Languages []string `json:"languages"`
	Tools     []string `json:"tools"`
}

// Character is the resolved character sheet model. It is built once by the
// resolver and is read-only afterwards; the Sorted helpers return copies.
type Character struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Alignment string `json:"alignment"`
	XP        int    `json:"xp"`
	Race      string `json:"race"`
	Portrait  string `json:"portrait,omitempty"`

	Background Background `json:"background"`
	Traits     Traits     `json:"traits"`

	AbilityScores []AbilityScore `json:"ability_scores"`
	Skills        []Skill        `json:"skills"`
	SavingThrows  []Skill        `json:"saving_throws"`
	Classes       []Class        `json:"classes"`

	ArmorClass       int        `json:"armor_class"`
	Speed            int        `json:"speed"`
	HitPoints        int        `json:"hit_points"`
	HitDice          []dice.Die `json:"hit_dice"`
	ProficiencyBonus int        `json:"proficiency_bonus"`
	Initiative       int        `json:"initiative"`
	PassiveBonus     int        `json:"passive_bonus"`

	Attacks     []Attack     `json:"attacks"`
	Actions     []Action     `json:"actions"`
	Features    []string     `json:"features"`
	Resources   []Resource   `json:"resources"`
	DamageMults []DamageMult `json:"damage_mults"`

	Items              []Item             `json:"items"`
	Coins              Coins              `json:"coins"`
	OtherProficiencies OtherProficiencies `json:"other_proficiencies"`

	SpellLists []*SpellList       `json:"spell_lists"`
	SpellSlots [MaxSpellLevel]int `json:"spell_slots"`
}

// PassivePerception is 10 + the Perception bonus + any passive bonus
func (c *Character) PassivePerception() int {
	total := 10 + c.PassiveBonus
	for _, s := range c.Skills {
		if s.Name == "Perception" {
			total += s.Bonus
			break
		}
	}
	return total
}

func (c *Character) SortedClasses() []Class {
	return sortedCopy(c.Classes, CompareClasses)
}

func (c *Character) SortedSkills() []Skill {
	return sortedCopy(c.Skills, CompareSkills)
}

func (c *Character) SortedItems() []Item {
	return sortedCopy(c.Items, CompareItems)
}

func (c *Character) SortedActions() []Action {
	return sortedCopy(c.Actions, CompareActions)
}

func (c *Character) SortedResources() []Resource {
	return sortedCopy(c.Resources, CompareResources)
}

func (c *Character) SortedDamageMults() []DamageMult {
	return sortedCopy(c.DamageMults, CompareDamageMults)
}

// SortedSpellLists returns deep copies of the lists in display order
func (c *Character) SortedSpellLists() []*SpellList {
	lists := make([]*SpellList, 0, len(c.SpellLists))
	for _, l := range c.SpellLists {
		lists = append(lists, l.Clone())
	}
	slices.SortStableFunc(lists, CompareSpellLists)
	return lists
}

func sortedCopy[T any](in []T, compare func(a, b T) int) []T {
	out := slices.Clone(in)
	slices.SortStableFunc(out, compare)
	return out
}
