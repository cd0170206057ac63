package template

import (
	"html"
	"strings"

	"github.com/matsen/bibpage/internal/reference"
)

// NameFormatter renders one person as plain text.
type NameFormatter func(reference.Person) string

// Names renders the persons with the given role as "A", "A and B" or
// "A, B, and C". A trailing "others" marker renders as "et al.".
// Nothing is rendered, and the result is marked missing, if the record
// has no such persons.
func Names(role string, format NameFormatter) Template {
	return Func(func(rec *reference.Record) Result {
		persons := rec.Persons(role)
		truncated := false
		if n := len(persons); n > 0 && persons[n-1].IsOthers() {
			persons = persons[:n-1]
			truncated = true
		}

		var names []string
		for _, p := range persons {
			if name := format(p); name != "" {
				names = append(names, name)
			}
		}
		if len(names) == 0 {
			return Result{Missing: true}
		}

		var plain string
		switch len(names) {
		case 1:
			plain = names[0]
		case 2:
			plain = names[0] + " and " + names[1]
		default:
			plain = strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
		}
		if truncated {
			plain += " et al."
		}
		return Result{Markup: html.EscapeString(plain), Plain: plain}
	})
}
