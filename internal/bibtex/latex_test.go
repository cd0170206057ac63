package bibtex

import "testing"

func TestToText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Hello World", "Hello World"},
		{"braces dropped", "A {DNA} Study", "A DNA Study"},
		{"braced umlaut", `G{\"o}del`, "Gödel"},
		{"acute with argument", `Caf\'{e}`, "Café"},
		{"acute bare", `Caf\'e`, "Café"},
		{"letter accent", `Fran\c{c}ois`, "François"},
		{"letter accent with space", `Fran\c cois`, "François"},
		{"caron", `\v{S}koda`, "Škoda"},
		{"dotless i", `Mart\'{\i}nez`, "Martínez"},
		{"special letter", `Stra\ss e`, "Straße"},
		{"special letter braced", `{\O}rsted`, "Ørsted"},
		{"escapes", `10\% of \$5 \& more \#1 a\_b`, "10% of $5 & more #1 a_b"},
		{"en dash", "pages 1--10", "pages 1–10"},
		{"em dash", "yes---no", "yes—no"},
		{"tie", "A~B", "A\u00a0B"},
		{"unknown command", `\emph{word} here`, "word here"},
		{"whitespace", "  a \n  {b}   c ", "a b c"},
		{"line break", `one\\two`, "one two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToText(tt.in); got != tt.want {
				t.Errorf("ToText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestUnescape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`https://x.org/a\_b`, "https://x.org/a_b"},
		{`https://x.org/?q=50\%\&r=\#1`, "https://x.org/?q=50%&r=#1"},
		{`a\{b\}\$`, "a{b}$"},
		{`https://x.org/~user/{raw}`, "https://x.org/~user/{raw}"},
		{`\emph{x}`, `\emph{x}`},
	}
	for _, tt := range tests {
		if got := Unescape(tt.in); got != tt.want {
			t.Errorf("Unescape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCapitalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"hello World", "Hello world"},
		{"The {DNA} Structure of Things", "The {DNA} structure of things"},
		{`{\"U}ber Alles`, `{\"U}ber alles`},
		{`\emph{Nature} Reviews`, `\emph{Nature} reviews`},
		{"  ALL CAPS  ", "All caps"},
		{`\"uber Alles`, `\"Uber alles`},
		{`\'{e}t\'{E} Hot`, `\'{E}t\'{e} hot`},
		{`\c cedilla`, `\c Cedilla`},
		{`Caf\'E`, `Caf\'e`},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Capitalize(tt.in); got != tt.want {
			t.Errorf("Capitalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCapitalizeAccentedTitle(t *testing.T) {
	if got := ToText(Capitalize(`\"uber alles`)); got != "Über alles" {
		t.Errorf("ToText(Capitalize) = %q, want %q", got, "Über alles")
	}
	if got := ToText(Capitalize(`\'{e}t\'e`)); got != "Été" {
		t.Errorf("ToText(Capitalize) = %q, want %q", got, "Été")
	}
}
