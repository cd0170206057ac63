// Package style formats bibliography records as HTML citations.
//
// Each category has a template built from the template package. Article,
// unpublished and technical report entries use custom layouts; every other
// category falls back to a standard unsorted-list layout.
package style

import (
	"strings"

	"github.com/matsen/bibpage/internal/bibtex"
	"github.com/matsen/bibpage/internal/reference"
	"github.com/matsen/bibpage/internal/template"
)

// Category is a BibTeX entry type.
type Category string

// Known categories.
const (
	Article       Category = "article"
	Unpublished   Category = "unpublished"
	TechReport    Category = "techreport"
	Book          Category = "book"
	InProceedings Category = "inproceedings"
	Conference    Category = "conference"
	InCollection  Category = "incollection"
	PhDThesis     Category = "phdthesis"
	MastersThesis Category = "mastersthesis"
	Manual        Category = "manual"
	Misc          Category = "misc"
)

// CategoryOf returns the category of a record.
func CategoryOf(rec *reference.Record) Category {
	return Category(strings.ToLower(rec.Category))
}

// blockSep separates the blocks of a citation (title, authors, ...).
const blockSep = "\n"

// Style holds one template per known category plus a fallback.
// A Style is immutable and safe to share.
type Style struct {
	formats  map[Category]template.Template
	fallback template.Template
}

// New builds the citation style.
func New() *Style {
	return &Style{
		formats: map[Category]template.Template{
			Article:       formatArticle(),
			Unpublished:   formatUnpublished(),
			TechReport:    formatTechReport(),
			Book:          formatBook(),
			InProceedings: formatInProceedings(),
			Conference:    formatInProceedings(),
			InCollection:  formatInCollection(),
			PhDThesis:     formatThesis("PhD thesis"),
			MastersThesis: formatThesis("Master's thesis"),
			Manual:        formatManual(),
			Misc:          formatMisc(),
		},
		fallback: formatMisc(),
	}
}

// Template returns the template used for a category.
func (s *Style) Template(c Category) template.Template {
	if t, ok := s.formats[c]; ok {
		return t
	}
	return s.fallback
}

// Format renders a record as HTML. It never fails: missing fields are
// left out of the citation.
func (s *Style) Format(rec *reference.Record) string {
	return template.Render(s.Template(CategoryOf(rec)), rec)
}

// toplevel joins the blocks of a citation.
func toplevel(blocks ...template.Template) template.Template {
	return template.Join(blockSep, blocks...)
}

// title renders a field capitalized and in bold, as a sentence.
func title(field string) template.Template {
	return template.Sentence(template.Bold(template.Field(field, template.Apply(bibtex.Capitalize))))
}

// btitle renders a book-like title emphasized, as part of a sentence.
func btitle(field string) template.Template {
	return template.Italic(template.Field(field, template.Apply(bibtex.Capitalize)))
}

func names(role string) template.Template {
	return template.Sentence(template.Names(role, formatName))
}

// editors renders "A and B, editors".
func editors() template.Template {
	return template.Func(func(rec *reference.Record) template.Result {
		label := "editor"
		if len(rec.Editors) > 1 {
			label = "editors"
		}
		return template.Join(", ", template.Names(reference.RoleEditor, formatName), template.Text(label)).Render(rec)
	})
}

func authorOrEditor() template.Template {
	return template.FirstOf(
		names(reference.RoleAuthor),
		template.Sentence(editors()),
	)
}

var (
	date  = template.Words(template.OptionalField("month"), template.Field("year"))
	pages = template.Field("pages")
)

func note() template.Template {
	return template.Sentence(template.OptionalField("note"))
}

// webRefs renders links to the online versions of an entry.
func webRefs() template.Template {
	return template.Sentence(
		template.Optional(url()),
		template.Optional(eprint()),
		template.Optional(pubmed()),
		template.Optional(doi()),
	)
}

// url renders "[URL]" linking to the url field.
func url() template.Template {
	return template.Join("", template.Text("["), template.Href(template.Field("url", template.Verbatim()), template.Text("URL")), template.Text("]"))
}

func eprint() template.Template {
	return template.Href(
		template.Join("", template.Text("https://arxiv.org/abs/"), template.Field("eprint", template.Verbatim())),
		template.Join("", template.Text("arXiv:"), template.Field("eprint", template.Verbatim())),
	)
}

func pubmed() template.Template {
	return template.Href(
		template.Join("", template.Text("https://www.ncbi.nlm.nih.gov/pubmed/"), template.Field("pubmed", template.Verbatim())),
		template.Join("", template.Text("PMID:"), template.Field("pubmed", template.Verbatim())),
	)
}

// doi is switched off: DOIs are never shown.
func doi() template.Template {
	return template.Nothing
}
