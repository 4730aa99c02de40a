package delivery

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes characters and drops combining marks, so "Télavi"
// and "Telavi" compare equal.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func normalizeCityName(name string) string {
	trimmed := strings.TrimSpace(name)
	stripped, _, err := transform.String(stripMarks, trimmed)
	if err != nil {
		stripped = trimmed
	}
	return cases.Fold().String(stripped)
}
