package sheet

import (
	"cmp"
	"fmt"
	"strings"
)

// Class is one class the character has levels in
type Class struct {
	Name          string `json:"name"`
	Level         int    `json:"level"`
	StartingClass bool   `json:"starting_class"`
}

// Short is the three letter form used when several classes share a line, e.g. "Wiz."
func (c Class) Short() string {
	runes := []rune(c.Name)
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return string(runes) + "."
}

// CompareClasses puts the starting class first, then higher levels, then name
func CompareClasses(a, b Class) int {
	if a.StartingClass != b.StartingClass {
		if a.StartingClass {
			return -1
		}
		return 1
	}
	return cmp.Or(
		cmp.Compare(b.Level, a.Level),
		cmp.Compare(a.Name, b.Name),
	)
}

// ClassSummary renders "Wizard 5" for a single class and
// "Fig. 3 Wiz. 2" when the character is multiclassed.
func ClassSummary(classes []Class) string {
	sorted := sortedCopy(classes, CompareClasses)
	parts := make([]string, 0, len(sorted))
	for _, c := range sorted {
		name := c.Name
		if len(sorted) > 1 {
			name = c.Short()
		}
		parts = append(parts, fmt.Sprintf("%s %d", name, c.Level))
	}
	return strings.Join(parts, " ")
}

// Background is the character background and the feature it grants
type Background struct {
	Name    string  `json:"name"`
	Feature Feature `json:"feature"`
}

// Feature is a named piece of rules text
type Feature struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
