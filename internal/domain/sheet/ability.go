package sheet

import (
	"cmp"
	"fmt"
)

// AbilityScore is one of the six ability scores
type AbilityScore struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Modifier is floor(score/2) - 5
func (a AbilityScore) Modifier() int {
	// integer division truncates toward zero, so go through the
	// (score-10) form to floor odd negative scores correctly
	diff := a.Score - 10
	if diff < 0 && diff%2 != 0 {
		return diff/2 - 1
	}
	return diff / 2
}

func (a AbilityScore) String() string {
	return fmt.Sprintf("%d (%+d)", a.Score, a.Modifier())
}

// Proficiency is the proficiency rank a skill or save is trained at
type Proficiency int

const (
	ProficiencyNone Proficiency = iota
	ProficiencyHalf
	ProficiencyProficient
	ProficiencyExpert
)

func (p Proficiency) String() string {
	switch p {
	case ProficiencyHalf:
		return "half"
	case ProficiencyProficient:
		return "proficient"
	case ProficiencyExpert:
		return "expert"
	default:
		return "none"
	}
}

// MarshalText keeps debug dumps readable
func (p Proficiency) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Skill is a skill check or saving throw with its final bonus
type Skill struct {
	Name        string      `json:"name"`
	Bonus       int         `json:"bonus"`
	Proficiency Proficiency `json:"proficiency"`
}

// CompareSkills orders by name, then rank, then bonus
func CompareSkills(a, b Skill) int {
	return cmp.Or(
		cmp.Compare(a.Name, b.Name),
		cmp.Compare(a.Proficiency, b.Proficiency),
		cmp.Compare(a.Bonus, b.Bonus),
	)
}
