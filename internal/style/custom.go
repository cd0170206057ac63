package style

import (
	"github.com/matsen/bibpage/internal/reference"
	"github.com/matsen/bibpage/internal/template"
)

// formatArticle: title, authors, "<em>Journal</em>, 52(4):1-35, 2020.", note, links.
func formatArticle() template.Template {
	volumeAndPages := template.FirstOf(
		// volume, optional issue number, optional pages
		template.Optional(template.Join("",
			template.Field("volume"),
			template.Optional(template.Text("("), template.Field("number"), template.Text(")")),
			template.Optional(template.Text(":"), pages),
		)),
		// pages only
		template.Optional(template.Words(template.Text("pages"), pages)),
	)
	return toplevel(
		title("title"),
		names(reference.RoleAuthor),
		template.Sentence(
			template.Italic(template.Field("journal")),
			template.Optional(volumeAndPages),
			date,
		),
		note(),
		webRefs(),
	)
}

// formatUnpublished: the type defaults to "Unpublished".
func formatUnpublished() template.Template {
	return toplevel(
		title("title"),
		names(reference.RoleAuthor),
		template.Sentence(
			template.Words(
				template.FirstOf(template.OptionalField("type"), template.Text("Unpublished")),
				template.OptionalField("number"),
			),
			date,
		),
		note(),
		webRefs(),
	)
}

// formatTechReport: the type defaults to "Technical Report". A missing
// institution leaves a gap in the sentence, nothing more.
func formatTechReport() template.Template {
	return toplevel(
		title("title"),
		names(reference.RoleAuthor),
		template.Sentence(
			template.Words(
				template.FirstOf(template.OptionalField("type"), template.Text("Technical Report")),
				template.OptionalField("number"),
			),
			template.Field("institution"),
			template.OptionalField("address"),
			date,
		),
		note(),
		webRefs(),
	)
}
