package bibtex

import (
	"fmt"
	"io"
	"strings"

	"github.com/matsen/bibpage/internal/reference"
)

// ToBibTeX renders a single record as a standalone BibTeX entry.
// Field values are raw LaTeX and are written back unchanged in braces,
// so parsing the output yields the same key, category and fields.
func ToBibTeX(rec *reference.Record) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("@%s{%s,\n", rec.Category, rec.Key))

	// Persons
	if len(rec.Authors) > 0 {
		b.WriteString(fmt.Sprintf("  author = {%s},\n", reference.FormatPersons(rec.Authors)))
	}
	if len(rec.Editors) > 0 {
		b.WriteString(fmt.Sprintf("  editor = {%s},\n", reference.FormatPersons(rec.Editors)))
	}

	for _, name := range rec.OrderedFields() {
		b.WriteString(fmt.Sprintf("  %s = {%s},\n", name, balanceBraces(rec.Fields[name])))
	}

	b.WriteString("}\n")

	return b.String()
}

// ToBibTeXList renders multiple records separated by blank lines.
func ToBibTeXList(recs []*reference.Record) string {
	var entries []string
	for _, rec := range recs {
		entries = append(entries, ToBibTeX(rec))
	}
	return strings.Join(entries, "\n")
}

// Write writes every entry of a bibliography to w.
func Write(w io.Writer, bib *Bibliography) error {
	if bib.Preamble != "" {
		if _, err := fmt.Fprintf(w, "@preamble{{%s}}\n\n", balanceBraces(bib.Preamble)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, ToBibTeXList(bib.Entries))
	return err
}

// balanceBraces escapes stray braces so that hand-built values still
// produce a parseable entry. Values coming from the parser are balanced
// already and pass through untouched.
func balanceBraces(s string) string {
	if braceBalanced(s) {
		return s
	}
	replacer := strings.NewReplacer(
		`\{`, `\{`,
		`\}`, `\}`,
		"{", `\{`,
		"}", `\}`,
	)
	return replacer.Replace(s)
}

func braceBalanced(s string) bool {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}
