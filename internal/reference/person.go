package reference

import (
	"strings"
	"unicode"
)

// Person is a structured name as understood by BibTeX.
// Each part holds space-separated raw (LaTeX) words.
type Person struct {
	First   string `json:"first,omitempty"`
	Middle  string `json:"middle,omitempty"`
	Prelast string `json:"prelast,omitempty"` // "von" part
	Last    string `json:"last"`
	Lineage string `json:"lineage,omitempty"` // "Jr" part
}

// othersName is the BibTeX marker for a truncated name list.
const othersName = "others"

// Others returns the marker person used for "and others".
func Others() Person {
	return Person{Last: othersName}
}

// IsOthers reports whether the person is the "and others" marker.
func (p Person) IsOthers() bool {
	return p.Last == othersName && p.First == "" && p.Middle == "" && p.Prelast == "" && p.Lineage == ""
}

// String returns the name in BibTeX "von Last, Jr, First Middle" form.
func (p Person) String() string {
	if p.IsOthers() {
		return othersName
	}
	last := joinWords(p.Prelast, p.Last)
	given := joinWords(p.First, p.Middle)
	switch {
	case p.Lineage != "":
		return last + ", " + p.Lineage + ", " + given
	case given != "":
		return last + ", " + given
	default:
		return last
	}
}

// ParsePerson splits a single BibTeX name into its parts.
// Accepted forms: "First von Last", "von Last, First", "von Last, Jr, First".
func ParsePerson(name string) Person {
	name = strings.TrimSpace(name)
	if name == othersName {
		return Others()
	}

	parts := splitTopLevel(name, ',')
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	var p Person
	switch len(parts) {
	case 1:
		words := splitWords(parts[0])
		if len(words) == 0 {
			return p
		}
		// The last word is always part of the last name.
		vonStart, vonEnd := -1, -1
		for i, w := range words[:len(words)-1] {
			if isLowerWord(w) {
				if vonStart < 0 {
					vonStart = i
				}
				vonEnd = i
			}
		}
		if vonStart < 0 {
			p.Last = words[len(words)-1]
			p.setGiven(words[:len(words)-1])
		} else {
			p.setGiven(words[:vonStart])
			p.Prelast = strings.Join(words[vonStart:vonEnd+1], " ")
			p.Last = strings.Join(words[vonEnd+1:], " ")
		}
	default:
		p.setVonLast(splitWords(parts[0]))
		given := parts[len(parts)-1]
		if len(parts) >= 3 {
			p.Lineage = strings.Join(parts[1:len(parts)-1], ", ")
		}
		p.setGiven(splitWords(given))
	}
	return p
}

// ParsePersons splits a BibTeX name list on top-level "and".
func ParsePersons(value string) []Person {
	var persons []Person
	for _, name := range splitNames(value) {
		if name == "" {
			continue
		}
		persons = append(persons, ParsePerson(name))
	}
	return persons
}

// FormatPersons joins persons back into a BibTeX name list.
func FormatPersons(persons []Person) string {
	names := make([]string, len(persons))
	for i, p := range persons {
		names[i] = p.String()
	}
	return strings.Join(names, " and ")
}

func (p *Person) setGiven(words []string) {
	if len(words) == 0 {
		return
	}
	p.First = words[0]
	p.Middle = strings.Join(words[1:], " ")
}

// setVonLast splits "von Last": leading lowercase words form the von part,
// but at least one word always remains for the last name.
func (p *Person) setVonLast(words []string) {
	if len(words) == 0 {
		return
	}
	end := 0
	for i, w := range words[:len(words)-1] {
		if isLowerWord(w) {
			end = i + 1
		}
	}
	p.Prelast = strings.Join(words[:end], " ")
	p.Last = strings.Join(words[end:], " ")
}

func joinWords(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + " " + b
}

// splitNames splits on the word "and" at brace depth zero.
func splitNames(s string) []string {
	var names []string
	var current []string
	for _, w := range splitWords(s) {
		if strings.EqualFold(w, "and") {
			names = append(names, strings.Join(current, " "))
			current = nil
			continue
		}
		current = append(current, w)
	}
	return append(names, strings.Join(current, " "))
}

// splitWords splits on whitespace at brace depth zero.
func splitWords(s string) []string {
	var words []string
	var b strings.Builder
	depth := 0
	flush := func() {
		if b.Len() > 0 {
			words = append(words, b.String())
			b.Reset()
		}
	}
	for _, r := range s {
		switch {
		case r == '{':
			depth++
		case r == '}':
			if depth > 0 {
				depth--
			}
		case unicode.IsSpace(r) || r == '~':
			if depth == 0 {
				flush()
				continue
			}
		}
		b.WriteRune(r)
	}
	flush()
	return words
}

// splitTopLevel splits s on sep where sep is outside braces.
func splitTopLevel(s string, sep rune) []string {
	var parts []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// isLowerWord reports whether the first letter of a word is lowercase.
// Letters inside a brace group count only when the group starts with a
// control sequence ({\"o}); otherwise the group is case-less.
func isLowerWord(w string) bool {
	depth := 0
	runes := []rune(w)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '{':
			if depth == 0 && i+1 < len(runes) && runes[i+1] == '\\' {
				return specialCharIsLower(runes[i+2:])
			}
			depth++
		case r == '}':
			if depth > 0 {
				depth--
			}
		case depth == 0 && unicode.IsLetter(r):
			return unicode.IsLower(r)
		}
	}
	return false
}

// specialCharIsLower inspects the text after "{\" in a special character.
func specialCharIsLower(rest []rune) bool {
	// Skip the control sequence name, then look at the first letter argument.
	i := 0
	for i < len(rest) && unicode.IsLetter(rest[i]) {
		i++
	}
	if i > 0 && i < len(rest) && !unicode.IsLetter(rest[i]) {
		for _, r := range rest[i:] {
			if unicode.IsLetter(r) {
				return unicode.IsLower(r)
			}
		}
	}
	if i > 0 {
		// Commands like \ae or \o: the command name itself is the letter.
		return unicode.IsLower(rest[0])
	}
	for _, r := range rest {
		if unicode.IsLetter(r) {
			return unicode.IsLower(r)
		}
	}
	return false
}
