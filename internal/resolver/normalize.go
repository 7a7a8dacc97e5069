package resolver

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"github.com/KirkDiggler/dicecloud-sheet/internal/domain/sheet"
)

// NormalizeRace turns an exported race name into display form.
// Lookup hits win; names that already contain a space are left alone;
// anything else is treated as run-together words, so "HalfOrc" becomes "Half Orc".
func NormalizeRace(raw string, lookup map[string]string) string {
	if raw == "" {
		return raw
	}
	if mapped, ok := lookup[raw]; ok {
		return mapped
	}
	if strings.Contains(raw, " ") {
		return raw
	}

	first, size := utf8.DecodeRuneInString(raw)

	var b strings.Builder
	b.Grow(len(raw) + 4)
	b.WriteRune(unicode.ToUpper(first))
	for _, r := range raw[size:] {
		// caseless scripts report false for both, so they never split words
		if unicode.IsUpper(r) && !unicode.IsLower(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// AbbreviateDamage shortens a damage type for the attack table.
// Output must stay stable: "fire" -> "fire", "piercing" -> "pir.", "radiant" -> "rad.".
func AbbreviateDamage(damageType string) string {
	if utf8.RuneCountInString(damageType) < 5 {
		return damageType
	}
	if damageType == "piercing" {
		return "pir."
	}
	return string([]rune(damageType)[:3]) + "."
}

// halfTolerance absorbs float jitter from the exporter, which has been seen
// writing half proficiency as both 0.5 and 0.49.
const halfTolerance = 0.05

// ClassifyProficiency maps the exported proficiency multiplier onto a rank.
// Exactly 1 is proficient, exactly 2 is expertise, 0.45 to 0.55 is half.
func ClassifyProficiency(p float64) sheet.Proficiency {
	switch {
	case p == 1:
		return sheet.ProficiencyProficient
	case p == 2:
		return sheet.ProficiencyExpert
	case math.Abs(p-0.5) <= halfTolerance:
		return sheet.ProficiencyHalf
	default:
		return sheet.ProficiencyNone
	}
}

var currencies = [...]struct {
	coin sheet.Coin
	name string
}{
	{coin: sheet.Copper, name: "copper piece"},
	{coin: sheet.Silver, name: "silver piece"},
	{coin: sheet.Electrum, name: "electrum piece"},
	{coin: sheet.Gold, name: "gold piece"},
	{coin: sheet.Platinum, name: "platinum piece"},
}

// MatchCoin reports which currency an item display name refers to
func MatchCoin(displayName string) (sheet.Coin, bool) {
	return matchCoin(cases.Fold(), displayName)
}

func matchCoin(fold cases.Caser, displayName string) (sheet.Coin, bool) {
	folded := fold.String(displayName)
	for _, c := range currencies {
		if strings.Contains(folded, c.name) {
			return c.coin, true
		}
	}
	return 0, false
}

var quoteStripper = strings.NewReplacer(`"`, "", "`", "")

// unquote cleans a constant's calculation text, which stores strings as
// formula literals such as "\"Tiefling\"" or "'Fighter'".
func unquote(calc string) string {
	return strings.Trim(quoteStripper.Replace(strings.TrimSpace(calc)), "' ")
}

// composeRace folds the sub-race into the race text once per character
func composeRace(race, subrace string) string {
	switch {
	case subrace == "":
		return race
	case race == "":
		return subrace
	case strings.Contains(subrace, race):
		return subrace
	case strings.Contains(race, subrace):
		return race
	default:
		return subrace + " " + race
	}
}
