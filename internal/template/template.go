// Package template provides composable rendering rules over bibliography
// records. A template renders a Result; an empty Result means the template
// had nothing to say, which is never an error.
package template

import (
	"html"
	"strings"

	"github.com/matsen/bibpage/internal/bibtex"
	"github.com/matsen/bibpage/internal/reference"
)

// Result is the rendered output of a template.
type Result struct {
	Markup string // HTML
	Plain  string // Markup without tags, used for punctuation decisions

	// Missing is set when a field the template refers to is absent.
	// Optional groups collapse to nothing when any part is missing.
	Missing bool
}

// Empty reports whether nothing was rendered.
func (r Result) Empty() bool {
	return r.Markup == ""
}

// Template renders part of a citation from a record.
// Implementations must not modify the record.
type Template interface {
	Render(rec *reference.Record) Result
}

// Func adapts a function to the Template interface.
type Func func(rec *reference.Record) Result

// Render calls f(rec).
func (f Func) Render(rec *reference.Record) Result {
	return f(rec)
}

// Render evaluates t against rec and returns the HTML.
func Render(t Template, rec *reference.Record) string {
	return t.Render(rec).Markup
}

// Nothing renders nothing. It is used to switch off a template step.
var Nothing Template = Func(func(*reference.Record) Result { return Result{} })

// Text renders a literal string.
func Text(s string) Template {
	r := Result{Markup: html.EscapeString(s), Plain: s}
	return Func(func(*reference.Record) Result { return r })
}

// FieldOption customizes Field.
type FieldOption func(*fieldTemplate)

// Apply transforms the raw LaTeX value before it is converted for display.
func Apply(fn func(raw string) string) FieldOption {
	return func(f *fieldTemplate) { f.apply = fn }
}

// Verbatim renders the raw value without LaTeX conversion (URLs, identifiers).
// Only escaped special characters such as \_ are resolved.
func Verbatim() FieldOption {
	return func(f *fieldTemplate) { f.verbatim = true }
}

type fieldTemplate struct {
	name     string
	apply    func(string) string
	verbatim bool
}

// Field renders the value of the named field, or nothing if it is absent.
func Field(name string, opts ...FieldOption) Template {
	f := &fieldTemplate{name: name}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *fieldTemplate) Render(rec *reference.Record) Result {
	raw, ok := rec.Field(f.name)
	if !ok {
		return Result{Missing: true}
	}
	if f.apply != nil {
		raw = f.apply(raw)
	}
	if f.verbatim {
		raw = strings.TrimSpace(bibtex.Unescape(raw))
		return Result{Markup: html.EscapeString(raw), Plain: raw}
	}
	plain := bibtex.ToText(raw)
	return Result{Markup: html.EscapeString(plain), Plain: plain}
}

// OptionalField is shorthand for Optional(Field(name, opts...)).
func OptionalField(name string, opts ...FieldOption) Template {
	return Optional(Field(name, opts...))
}

// Optional renders its parts concatenated, but only if none of them
// refers to a missing field. Otherwise it renders nothing.
func Optional(parts ...Template) Template {
	inner := Join("", parts...)
	return Func(func(rec *reference.Record) Result {
		r := inner.Render(rec)
		if r.Missing {
			return Result{}
		}
		return r
	})
}

// FirstOf renders the first alternative that produces output without
// missing fields. If none does, it renders nothing.
func FirstOf(alternatives ...Template) Template {
	return Func(func(rec *reference.Record) Result {
		for _, alt := range alternatives {
			r := alt.Render(rec)
			if !r.Missing && !r.Empty() {
				return r
			}
		}
		return Result{}
	})
}

// Join renders each part and joins the non-empty ones with sep.
// Empty parts are skipped without leaving stray separators.
func Join(sep string, parts ...Template) Template {
	return Func(func(rec *reference.Record) Result {
		var out Result
		var markup, plain []string
		for _, part := range parts {
			r := part.Render(rec)
			if r.Missing {
				out.Missing = true
			}
			if r.Empty() {
				continue
			}
			markup = append(markup, r.Markup)
			plain = append(plain, r.Plain)
		}
		out.Markup = strings.Join(markup, html.EscapeString(sep))
		out.Plain = strings.Join(plain, sep)
		return out
	})
}

// Words joins non-empty parts with single spaces.
func Words(parts ...Template) Template {
	return Join(" ", parts...)
}

// Sentence joins non-empty parts with ", " and terminates the result with
// a period, unless it is empty or already ends in terminal punctuation.
func Sentence(parts ...Template) Template {
	inner := Join(", ", parts...)
	return Func(func(rec *reference.Record) Result {
		r := inner.Render(rec)
		if r.Empty() || isTerminated(r.Plain) {
			return r
		}
		r.Markup += "."
		r.Plain += "."
		return r
	})
}

// Tag wraps the rendered output of t in an inline HTML element.
func Tag(name string, t Template) Template {
	return Func(func(rec *reference.Record) Result {
		r := t.Render(rec)
		if r.Empty() {
			return r
		}
		r.Markup = "<" + name + ">" + r.Markup + "</" + name + ">"
		return r
	})
}

// Bold renders t in bold.
func Bold(t Template) Template {
	return Tag("b", t)
}

// Italic renders t emphasized.
func Italic(t Template) Template {
	return Tag("em", t)
}

// Href renders an anchor pointing at the output of url with the output of
// label as its text. Nothing is rendered when url is empty; an empty label
// falls back to the URL itself.
func Href(url, label Template) Template {
	return Func(func(rec *reference.Record) Result {
		u := url.Render(rec)
		if u.Empty() {
			return Result{Missing: u.Missing}
		}
		l := label.Render(rec)
		if l.Empty() {
			l = Result{Markup: html.EscapeString(u.Plain), Plain: u.Plain}
		}
		return Result{
			Markup:  `<a href="` + html.EscapeString(u.Plain) + `">` + l.Markup + `</a>`,
			Plain:   l.Plain,
			Missing: u.Missing || l.Missing,
		}
	})
}

// isTerminated reports whether text ends in sentence-final punctuation.
func isTerminated(plain string) bool {
	plain = strings.TrimRight(plain, " ")
	return strings.HasSuffix(plain, ".") || strings.HasSuffix(plain, "?") || strings.HasSuffix(plain, "!")
}

// Prefix renders a literal followed by the output of t, or nothing when t
// renders nothing.
func Prefix(prefix string, t Template) Template {
	return Func(func(rec *reference.Record) Result {
		r := t.Render(rec)
		if r.Empty() {
			return r
		}
		r.Markup = html.EscapeString(prefix) + " " + r.Markup
		r.Plain = prefix + " " + r.Plain
		return r
	})
}
