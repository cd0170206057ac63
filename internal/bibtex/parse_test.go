package bibtex

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matsen/bibpage/internal/reference"
)

const sampleBib = `
Free text between entries is ignored.

@string{jgr = "J. Geophys. Res."}

@preamble{"\newcommand{\noop}[1]{}"}

@comment{ @article{ignored, title = {Not parsed}} }

@Article{Smith2020,
  author  = {John Smith and Doe, Jane},
  title   = {A {DNA}   Study
             of Things},
  journal = jgr # " Lett.",
  year    = 2020,
  month   = jan,
  volume  = "52",
}

@techreport(Report01,
  title = {Tech},
  institution = {ACME}
)

@misc{empty}
`

func TestParse(t *testing.T) {
	bib, err := Parse([]byte(sampleBib))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if bib.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", bib.Len())
	}
	if bib.Preamble != `\newcommand{\noop}[1]{}` {
		t.Errorf("Preamble = %q", bib.Preamble)
	}

	rec := bib.Entries[0]
	if rec.Key != "Smith2020" || rec.Category != "article" {
		t.Errorf("first entry = %s/%s, want Smith2020/article", rec.Key, rec.Category)
	}

	wantFields := map[string]string{
		"title":   "A {DNA} Study of Things",
		"journal": "J. Geophys. Res. Lett.",
		"year":    "2020",
		"month":   "January",
		"volume":  "52",
	}
	if diff := cmp.Diff(wantFields, rec.Fields); diff != "" {
		t.Errorf("Fields mismatch (-want +got):\n%s", diff)
	}
	wantOrder := []string{"title", "journal", "year", "month", "volume"}
	if diff := cmp.Diff(wantOrder, rec.FieldOrder); diff != "" {
		t.Errorf("FieldOrder mismatch (-want +got):\n%s", diff)
	}

	wantAuthors := []reference.Person{
		{First: "John", Last: "Smith"},
		{First: "Jane", Last: "Doe"},
	}
	if diff := cmp.Diff(wantAuthors, rec.Authors); diff != "" {
		t.Errorf("Authors mismatch (-want +got):\n%s", diff)
	}

	report := bib.Entries[1]
	if report.Key != "Report01" || report.Get("institution") != "ACME" {
		t.Errorf("paren entry parsed as %+v", report)
	}

	empty := bib.Entries[2]
	if empty.Key != "empty" || len(empty.Fields) != 0 {
		t.Errorf("empty entry parsed as %+v", empty)
	}
}

func TestLookup(t *testing.T) {
	bib, err := Parse([]byte(sampleBib))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	rec, ok := bib.Lookup("smith2020")
	if !ok || rec.Key != "Smith2020" {
		t.Errorf("Lookup(smith2020) = %v, %v", rec, ok)
	}
	if _, ok := bib.Lookup("nope"); ok {
		t.Error("Lookup(nope) should fail")
	}
}

func TestParseTrailingComma(t *testing.T) {
	bib, err := Parse([]byte(`@misc{k, title = {T},}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := bib.Entries[0].Get("title"); got != "T" {
		t.Errorf("title = %q, want T", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantMsg string
	}{
		{"undefined macro", `@misc{k, year = nineteen}`, "undefined macro"},
		{"unterminated value", "@misc{k, title = {abc", "unterminated value"},
		{"unterminated entry", "@misc{k, title = {abc}", "unterminated entry"},
		{"unbalanced brace", `@misc{k, title = "a } b"}`, "unbalanced"},
		{"missing equals", `@misc{k, title {T}}`, "expected '='"},
		{"missing key", `@misc{, title = {T}}`, "missing citation key"},
		{"closing brace in key", `@article(a}b, title = {T})`, "invalid character '}' in citation key"},
		{"opening brace in key", `@article{a{b, title = {T}}`, "invalid character '{' in citation key"},
		{"missing delimiter", `@misc k`, "expected '{' or '('"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			if err == nil {
				t.Fatal("Parse() expected error")
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("error %v is not a *ParseError", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestParseDuplicateKey(t *testing.T) {
	src := "\n\n@misc{a, title = {x}}\n@misc{A, title = {y}}"

	_, err := Parse([]byte(src))
	if !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("Parse() error = %v, want ErrDuplicateKey", err)
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error %v is not a *ParseError", err)
	}
	if perr.Line != 4 {
		t.Errorf("Line = %d, want 4", perr.Line)
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid", func(t *testing.T) {
		path := filepath.Join(dir, "good.bib")
		if err := os.WriteFile(path, []byte(sampleBib), 0644); err != nil {
			t.Fatal(err)
		}
		bib, err := ParseFile(path)
		if err != nil {
			t.Fatalf("ParseFile() error = %v", err)
		}
		if bib.Len() != 3 {
			t.Errorf("Len() = %d, want 3", bib.Len())
		}
	})

	t.Run("syntax error reports path", func(t *testing.T) {
		path := filepath.Join(dir, "bad.bib")
		if err := os.WriteFile(path, []byte("@misc{k, year = nope}"), 0644); err != nil {
			t.Fatal(err)
		}
		_, err := ParseFile(path)
		if err == nil {
			t.Fatal("ParseFile() expected error")
		}
		if !strings.HasPrefix(err.Error(), path+":1:") {
			t.Errorf("error = %q, want prefix %q", err, path+":1:")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ParseFile(filepath.Join(dir, "missing.bib"))
		if err == nil {
			t.Fatal("ParseFile() expected error")
		}
		var perr *ParseError
		if errors.As(err, &perr) {
			t.Error("read failures should not be ParseErrors")
		}
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("error = %v, want os.ErrNotExist", err)
		}
	})
}
