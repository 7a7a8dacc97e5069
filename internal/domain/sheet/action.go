package sheet

import (
	"cmp"
	"fmt"
	"strings"
)

// ActionKind is the action economy slot something takes
type ActionKind int

const (
	ActionFree ActionKind = iota
	ActionReaction
	ActionBonus
	ActionAction
	ActionLong
)

func (k ActionKind) String() string {
	switch k {
	case ActionFree:
		return "Free"
	case ActionReaction:
		return "Reaction"
	case ActionBonus:
		return "Bonus"
	case ActionAction:
		return "Action"
	default:
		return "Long"
	}
}

func (k ActionKind) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(k.String())), nil
}

// ActionType is an action economy slot; Long carries its own text
// such as "1 minute" or "8 hours".
type ActionType struct {
	Kind ActionKind `json:"kind"`
	Text string     `json:"text,omitempty"`
}

// LongAction builds a Long action type with the given duration text
func LongAction(text string) ActionType {
	return ActionType{Kind: ActionLong, Text: text}
}

func (t ActionType) String() string {
	if t.Kind == ActionLong && t.Text != "" {
		return t.Text
	}
	return t.Kind.String()
}

// UnlimitedUses marks an action without a use counter
const UnlimitedUses = -1

// Action is something the character can do
type Action struct {
	Name string     `json:"name"`
	Type ActionType `json:"type"`
	Uses int        `json:"uses"`
}

func (a Action) String() string {
	if a.Uses == UnlimitedUses {
		return fmt.Sprintf("%s (%s)", a.Name, a.Type)
	}
	return fmt.Sprintf("%s (%s) [%d]", a.Name, a.Type, a.Uses)
}

// CompareActions orders by action type, then name
func CompareActions(a, b Action) int {
	return cmp.Or(
		cmp.Compare(a.Type.Kind, b.Type.Kind),
		cmp.Compare(a.Type.Text, b.Type.Text),
		cmp.Compare(a.Name, b.Name),
		cmp.Compare(a.Uses, b.Uses),
	)
}

// Resource is a pool such as ki points or sorcery points
type Resource struct {
	Name  string `json:"name"`
	Total int    `json:"total"`
}

func (r Resource) String() string {
	return fmt.Sprintf("%s: %d", r.Name, r.Total)
}

// CompareResources orders by name, then total
func CompareResources(a, b Resource) int {
	return cmp.Or(
		cmp.Compare(a.Name, b.Name),
		cmp.Compare(a.Total, b.Total),
	)
}

// MultKind is how a damage type is scaled
type MultKind int

const (
	Immune MultKind = iota
	Resist
	Vuln
)

func (k MultKind) String() string {
	switch k {
	case Immune:
		return "Immune"
	case Resist:
		return "Resistant"
	default:
		return "Vulnerable"
	}
}

func (k MultKind) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(k.String())), nil
}

// DamageMult is an immunity, resistance or vulnerability to one damage type
type DamageMult struct {
	Kind       MultKind `json:"kind"`
	DamageType string   `json:"damage_type"`
}

func (d DamageMult) String() string {
	return fmt.Sprintf("%s: %s", d.Kind, d.DamageType)
}

// CompareDamageMults orders by kind, then damage type
func CompareDamageMults(a, b DamageMult) int {
	return cmp.Or(
		cmp.Compare(a.Kind, b.Kind),
		cmp.Compare(a.DamageType, b.DamageType),
	)
}
