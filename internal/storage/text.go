package storage

import (
	"strings"

	"golang.org/x/net/html"
)

// plainText strips tags from rendered citation markup and decodes
// entities, leaving only the text a reader sees.
func plainText(markup string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(z.Text())
		}
	}
}
