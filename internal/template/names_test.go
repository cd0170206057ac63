package template

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/matsen/bibpage/internal/reference"
)

func firstLast(p reference.Person) string {
	if p.First == "" {
		return p.Last
	}
	return p.First + " " + p.Last
}

func TestNames(t *testing.T) {
	tests := []struct {
		name    string
		authors string
		want    string
	}{
		{"one", "Alice Smith", "Alice Smith"},
		{"two", "Alice Smith and Bob Jones", "Alice Smith and Bob Jones"},
		{"three", "Alice Smith and Bob Jones and Carol White", "Alice Smith, Bob Jones, and Carol White"},
		{"one and others", "Alice Smith and others", "Alice Smith et al."},
		{"two and others", "Alice Smith and Bob Jones and others", "Alice Smith and Bob Jones et al."},
		{"three and others", "Alice Smith and Bob Jones and Carol King and others", "Alice Smith, Bob Jones, and Carol King et al."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := reference.NewRecord("k", "article")
			rec.Authors = reference.ParsePersons(tt.authors)
			assert.Equal(t, tt.want, Render(Names(reference.RoleAuthor, firstLast), rec))
		})
	}
}

func TestNamesMissing(t *testing.T) {
	rec := reference.NewRecord("k", "article")
	rec.Authors = reference.ParsePersons("Alice Smith")

	r := Names(reference.RoleEditor, firstLast).Render(rec)
	assert.True(t, r.Empty())
	assert.True(t, r.Missing)
}

func TestNamesEscapesMarkup(t *testing.T) {
	rec := reference.NewRecord("k", "article")
	rec.Authors = []reference.Person{{Last: "Smith & Sons"}}

	r := Names(reference.RoleAuthor, firstLast).Render(rec)
	assert.Equal(t, "Smith &amp; Sons", r.Markup)
	assert.Equal(t, "Smith & Sons", r.Plain)
}
