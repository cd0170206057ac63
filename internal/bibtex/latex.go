package bibtex

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// accentMarks maps LaTeX accent commands to Unicode combining marks.
var accentMarks = map[string]rune{
	"'":  '\u0301',
	"`":  '\u0300',
	"^":  '\u0302',
	"\"": '\u0308',
	"~":  '\u0303',
	"=":  '\u0304',
	".":  '\u0307',
	"c":  '\u0327',
	"v":  '\u030c',
	"u":  '\u0306',
	"H":  '\u030b',
	"k":  '\u0328',
	"r":  '\u030a',
	"d":  '\u0323',
	"b":  '\u0331',
}

// specialLetters maps letter-like LaTeX commands to their characters.
var specialLetters = map[string]string{
	"ss": "ß",
	"ae": "æ",
	"AE": "Æ",
	"oe": "œ",
	"OE": "Œ",
	"o":  "ø",
	"O":  "Ø",
	"aa": "å",
	"AA": "Å",
	"l":  "ł",
	"L":  "Ł",
	"i":  "ı",
	"j":  "ȷ",
}

const (
	escapable = `&%$#_{}`
	nbsp      = '\u00a0'
)

// ToText converts a raw LaTeX field value into display text.
// Braces are dropped, escapes and accents resolved, ties become
// no-break spaces and whitespace is collapsed.
func ToText(raw string) string {
	c := converter{src: []rune(raw)}
	c.run(len(c.src))
	out := collapseSpace(c.out.String())
	out = strings.ReplaceAll(out, "---", "—")
	out = strings.ReplaceAll(out, "--", "–")
	return norm.NFC.String(out)
}

// unescaper resolves backslash escapes of the characters in escapable.
var unescaper = strings.NewReplacer(
	`\&`, "&", `\%`, "%", `\$`, "$", `\#`, "#", `\_`, "_", `\{`, "{", `\}`, "}",
)

// Unescape resolves escaped special characters such as \_ and \% and
// leaves everything else raw. It is meant for URLs and identifiers, which
// must not go through the full LaTeX conversion.
func Unescape(raw string) string {
	return unescaper.Replace(raw)
}

// Capitalize upper-cases the first character of a raw LaTeX value and
// lower-cases the rest. Text inside braces and control sequence names keep
// their case. The result is still raw LaTeX.
func Capitalize(raw string) string {
	raw = strings.TrimSpace(raw)
	// Casers are stateful, so each call gets its own.
	upper := cases.Upper(language.Und)
	lower := cases.Lower(language.Und)

	var b strings.Builder
	var run strings.Builder
	flush := func() {
		b.WriteString(lower.String(run.String()))
		run.Reset()
	}

	runes := []rune(raw)
	depth := 0
	first := true
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\\':
			flush()
			b.WriteRune(r)
			start := i + 1
			// Copy the control sequence name verbatim.
			if i+1 < len(runes) && isCommandLetter(runes[i+1]) {
				for i+1 < len(runes) && isCommandLetter(runes[i+1]) {
					i++
					b.WriteRune(runes[i])
				}
			} else if i+1 < len(runes) {
				i++
				b.WriteRune(runes[i])
			}
			name := string(runes[start : i+1])
			if _, ok := accentMarks[name]; ok && depth == 0 {
				caser := lower
				if first {
					caser = upper
				}
				i = accentArgument(runes, i, isCommandLetter(runes[start]), caser, &b)
			}
			first = false
		case r == '{':
			flush()
			first = false
			depth++
			b.WriteRune(r)
		case r == '}':
			flush()
			if depth > 0 {
				depth--
			}
			b.WriteRune(r)
		case depth > 0:
			b.WriteRune(r)
		case first:
			first = false
			b.WriteString(upper.String(string(r)))
		default:
			run.WriteRune(r)
		}
	}
	flush()
	return b.String()
}

// accentArgument copies the argument of the accent command ending at
// runes[i] into b, passing its first letter through caser. It returns the
// index of the last rune consumed.
func accentArgument(runes []rune, i int, letterName bool, caser cases.Caser, b *strings.Builder) int {
	if letterName {
		for i+1 < len(runes) && runes[i+1] == ' ' {
			i++
			b.WriteRune(' ')
		}
	}
	if i+1 >= len(runes) {
		return i
	}
	if runes[i+1] != '{' {
		if runes[i+1] == '\\' || runes[i+1] == '}' {
			return i
		}
		i++
		b.WriteString(caser.String(string(runes[i])))
		return i
	}

	i++
	b.WriteRune('{')
	if i+1 < len(runes) && runes[i+1] != '}' && runes[i+1] != '{' && runes[i+1] != '\\' {
		i++
		b.WriteString(caser.String(string(runes[i])))
	}
	for level := 1; level > 0 && i+1 < len(runes); {
		i++
		switch runes[i] {
		case '{':
			level++
		case '}':
			level--
		}
		b.WriteRune(runes[i])
	}
	return i
}

type converter struct {
	src []rune
	pos int
	out strings.Builder
}

// run converts runes until end (exclusive).
func (c *converter) run(end int) {
	for c.pos < end {
		r := c.src[c.pos]
		switch r {
		case '{', '}':
			c.pos++
		case '~':
			c.out.WriteRune(nbsp)
			c.pos++
		case '\\':
			c.command(end)
		default:
			c.out.WriteRune(r)
			c.pos++
		}
	}
}

// command handles a control sequence starting at c.pos.
func (c *converter) command(end int) {
	c.pos++ // backslash
	if c.pos >= end {
		return
	}
	r := c.src[c.pos]

	if strings.ContainsRune(escapable, r) {
		c.out.WriteRune(r)
		c.pos++
		return
	}
	if r == '\\' {
		c.out.WriteRune(' ')
		c.pos++
		return
	}

	var name string
	if isCommandLetter(r) {
		start := c.pos
		for c.pos < end && isCommandLetter(c.src[c.pos]) {
			c.pos++
		}
		name = string(c.src[start:c.pos])
	} else {
		name = string(r)
		c.pos++
	}

	if mark, ok := accentMarks[name]; ok {
		c.accent(mark, end, isCommandLetter(r))
		return
	}
	if letter, ok := specialLetters[name]; ok {
		c.skipCommandSpace(end)
		c.out.WriteString(letter)
		return
	}
	// Unknown command: drop its name, keep its arguments.
	c.skipCommandSpace(end)
}

// accent reads the accent argument and writes it with a combining mark.
func (c *converter) accent(mark rune, end int, letterCommand bool) {
	if letterCommand {
		c.skipCommandSpace(end)
	}
	if c.pos >= end {
		return
	}

	var base string
	switch c.src[c.pos] {
	case '{':
		closing := c.matching(c.pos, end)
		inner := converter{src: c.src, pos: c.pos + 1}
		inner.run(closing)
		base = inner.out.String()
		c.pos = closing + 1
	case '\\':
		inner := converter{src: c.src, pos: c.pos}
		inner.command(end)
		base = inner.out.String()
		c.pos = inner.pos
	default:
		base = string(c.src[c.pos])
		c.pos++
	}

	// Accented dotless i/j should compose with the dotted letter.
	base = strings.Replace(base, "ı", "i", 1)
	base = strings.Replace(base, "ȷ", "j", 1)

	runes := []rune(base)
	if len(runes) == 0 {
		c.out.WriteRune(mark)
		return
	}
	c.out.WriteRune(runes[0])
	c.out.WriteRune(mark)
	c.out.WriteString(string(runes[1:]))
}

// matching returns the index of the brace closing the one at open,
// or end-1 if it is unbalanced.
func (c *converter) matching(open, end int) int {
	depth := 0
	for i := open; i < end; i++ {
		switch c.src[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return end - 1
}

func (c *converter) skipCommandSpace(end int) {
	for c.pos < end && c.src[c.pos] == ' ' {
		c.pos++
	}
}

func isCommandLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// collapseSpace trims s and replaces whitespace runs with a single space.
// No-break spaces are kept as they are.
func collapseSpace(s string) string {
	var b strings.Builder
	space := false
	for _, r := range s {
		if r != nbsp && unicode.IsSpace(r) {
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}
