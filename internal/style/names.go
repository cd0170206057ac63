package style

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/matsen/bibpage/internal/bibtex"
	"github.com/matsen/bibpage/internal/reference"
)

// formatName renders a person as "First Middle von Last, Jr".
func formatName(p reference.Person) string {
	var parts []string
	for _, part := range []string{p.First, p.Middle, p.Prelast, p.Last} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	name := bibtex.ToText(strings.Join(parts, " "))
	if p.Lineage != "" {
		name += ", " + bibtex.ToText(p.Lineage)
	}
	return name
}

// capitalizeFirst upper-cases the first letter and leaves the rest alone.
func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || !unicode.IsLower(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
