package style

import (
	"github.com/matsen/bibpage/internal/reference"
	"github.com/matsen/bibpage/internal/template"
)

// The layouts below follow the standard unsorted-list style. They share the
// title, name and link rendering of the custom layouts.

func formatBook() template.Template {
	return toplevel(
		authorOrEditor(),
		template.Sentence(btitle("title")),
		volumeAndSeries(),
		template.Sentence(
			template.Field("publisher"),
			template.OptionalField("address"),
			edition(),
			date,
		),
		template.Optional(template.Sentence(template.Words(template.Text("ISBN"), template.Field("isbn")))),
		note(),
		webRefs(),
	)
}

func formatInProceedings() template.Template {
	return toplevel(
		names(reference.RoleAuthor),
		title("title"),
		template.Words(
			template.Prefix("In", template.Sentence(
				template.Optional(editors()),
				btitle("booktitle"),
				volumeAndSeriesInline(),
				template.Optional(template.Words(template.Text("pages"), pages)),
			)),
			addressOrganizationPublisherDate(),
		),
		note(),
		webRefs(),
	)
}

func formatInCollection() template.Template {
	return toplevel(
		names(reference.RoleAuthor),
		title("title"),
		template.Words(
			template.Prefix("In", template.Sentence(
				template.Optional(editors()),
				btitle("booktitle"),
				template.Optional(template.Words(template.Text("pages"), pages)),
			)),
			template.Sentence(
				template.OptionalField("publisher"),
				template.OptionalField("address"),
				edition(),
				date,
			),
		),
		note(),
		webRefs(),
	)
}

// formatThesis renders PhD and Master's theses; kind is the default type.
func formatThesis(kind string) template.Template {
	return toplevel(
		names(reference.RoleAuthor),
		title("title"),
		template.Sentence(
			template.FirstOf(template.OptionalField("type"), template.Text(kind)),
			template.Field("school"),
			template.OptionalField("address"),
			date,
		),
		note(),
		webRefs(),
	)
}

func formatManual() template.Template {
	return toplevel(
		template.Optional(names(reference.RoleAuthor)),
		title("title"),
		template.Sentence(
			template.OptionalField("organization"),
			template.OptionalField("address"),
			edition(),
			template.Optional(date),
		),
		note(),
		webRefs(),
	)
}

// formatMisc is also the layout for categories without their own template.
func formatMisc() template.Template {
	return toplevel(
		template.Optional(names(reference.RoleAuthor)),
		template.Optional(title("title")),
		template.Sentence(
			template.OptionalField("howpublished"),
			template.OptionalField("journal"),
			template.OptionalField("booktitle"),
			template.OptionalField("institution"),
			template.OptionalField("publisher"),
			template.Optional(date),
		),
		note(),
		webRefs(),
	)
}

// volumeAndSeries renders "Volume 3 of <em>Series</em>." or "Series 12.".
func volumeAndSeries() template.Template {
	return template.FirstOf(
		template.Optional(template.Sentence(template.Words(
			template.Text("Volume"), template.Field("volume"),
			template.Text("of"), template.Italic(template.Field("series")),
		))),
		template.Optional(template.Sentence(template.Words(template.Text("Volume"), template.Field("volume")))),
		template.Optional(template.Sentence(template.Words(
			template.Field("series"), template.OptionalField("number"),
		))),
	)
}

// volumeAndSeriesInline is volumeAndSeries without sentence punctuation,
// for use inside a larger sentence.
func volumeAndSeriesInline() template.Template {
	return template.FirstOf(
		template.Optional(template.Words(
			template.Text("volume"), template.Field("volume"),
			template.Text("of"), template.Italic(template.Field("series")),
		)),
		template.Optional(template.Words(template.Text("volume"), template.Field("volume"))),
		template.Optional(template.Words(template.Field("series"), template.OptionalField("number"))),
	)
}

func edition() template.Template {
	return template.Optional(template.Words(
		template.Field("edition", template.Apply(capitalizeFirst)),
		template.Text("edition"),
	))
}

// addressOrganizationPublisherDate puts the date after the address when
// there is one, and after the publisher otherwise.
func addressOrganizationPublisherDate() template.Template {
	organization := template.OptionalField("organization")
	publisher := template.OptionalField("publisher")
	return template.FirstOf(
		template.Optional(template.Words(
			template.Sentence(template.Field("address"), date),
			template.Sentence(organization, publisher),
		)),
		template.Sentence(organization, publisher, template.Optional(date)),
	)
}
