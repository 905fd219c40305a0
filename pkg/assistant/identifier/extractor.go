package identifier

import (
	"regexp"
	"strings"
)

// Rules are tried in this order; the first match wins.
var (
	// 1. any digit run bounded by word boundaries
	digitRunPattern = regexp.MustCompile(`\b(\d+)\b`)

	// 2. digits grouped by spaces, dashes or dots (123-456-789, 123 456 789)
	groupedDigitsPattern = regexp.MustCompile(`\b(\d+[-.\s]?\d+[-.\s]?\d+)\b`)

	// 3. Arabic-Indic and Extended Arabic-Indic digits
	arabicDigitsPattern = regexp.MustCompile(`[\x{0660}-\x{0669}\x{06F0}-\x{06F9}]+`)

	// 4. "my ID is1234", "identity:55", "رقم الهوية 123"
	keywordPattern = regexp.MustCompile(`(?i)(?:id|identity|national\s+id|هوية|رقم\s+الهوية)[\s:]*(\d+)`)
)

var separatorStripper = strings.NewReplacer("-", "", ".", "", " ", "", "\t", "", "\n", "", "\r", "", "\f", "", "\v", "")

// Extract pulls a numeric identifier out of free text. It returns false when
// no rule matches.
func Extract(text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}

	if m := digitRunPattern.FindStringSubmatch(text); m != nil {
		return m[1], true
	}

	if m := groupedDigitsPattern.FindStringSubmatch(text); m != nil {
		return separatorStripper.Replace(m[1]), true
	}

	if m := arabicDigitsPattern.FindString(text); m != "" {
		return Transliterate(m), true
	}

	if m := keywordPattern.FindStringSubmatch(text); m != nil {
		return m[1], true
	}

	return "", false
}

// Transliterate maps Arabic-Indic (U+0660..U+0669) and Extended Arabic-Indic
// (U+06F0..U+06F9) digits to ASCII digits. Other runes are kept as-is.
func Transliterate(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= '٠' && r <= '٩':
			b.WriteRune('0' + (r - '٠'))
		case r >= '۰' && r <= '۹':
			b.WriteRune('0' + (r - '۰'))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
