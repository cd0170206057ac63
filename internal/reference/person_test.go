package reference

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParsePerson(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Person
	}{
		{"first last", "Donald E. Knuth", Person{First: "Donald", Middle: "E.", Last: "Knuth"}},
		{"single word", "Aristotle", Person{Last: "Aristotle"}},
		{"von part", "Ludwig van Beethoven", Person{First: "Ludwig", Prelast: "van", Last: "Beethoven"}},
		{"multiword von", "Jean de la Fontaine", Person{First: "Jean", Prelast: "de la", Last: "Fontaine"}},
		{"comma form", "van Beethoven, Ludwig", Person{First: "Ludwig", Prelast: "van", Last: "Beethoven"}},
		{"lineage", "Ford, Jr, Henry", Person{First: "Henry", Last: "Ford", Lineage: "Jr"}},
		{"braced corporate", "{Barnes and Noble, Inc.}", Person{Last: "{Barnes and Noble, Inc.}"}},
		{"tilde", "D.~E. Knuth", Person{First: "D.", Middle: "E.", Last: "Knuth"}},
		{"accented von", `Charles {\"o}ther Name`, Person{First: "Charles", Prelast: `{\"o}ther`, Last: "Name"}},
		{"accented uppercase", `Peter {\"O}sterreich`, Person{First: "Peter", Last: `{\"O}sterreich`}},
		{"lowercase last word stays last", "Alice smith", Person{First: "Alice", Last: "smith"}},
		{"others", "others", Others()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePerson(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParsePerson(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestParsePersons(t *testing.T) {
	got := ParsePersons("Alice Smith and Bob {and} Jones AND others")
	want := []Person{
		{First: "Alice", Last: "Smith"},
		{First: "Bob", Middle: "{and}", Last: "Jones"},
		Others(),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParsePersons() mismatch (-want +got):\n%s", diff)
	}
	if !got[2].IsOthers() {
		t.Error("last person should be the others marker")
	}
}

func TestParsePersonsEmpty(t *testing.T) {
	if got := ParsePersons("   "); len(got) != 0 {
		t.Errorf("ParsePersons(blank) = %v, want none", got)
	}
}

func TestPersonString(t *testing.T) {
	tests := []struct {
		p    Person
		want string
	}{
		{Person{First: "Donald", Middle: "E.", Last: "Knuth"}, "Knuth, Donald E."},
		{Person{First: "Ludwig", Prelast: "van", Last: "Beethoven"}, "van Beethoven, Ludwig"},
		{Person{First: "Henry", Last: "Ford", Lineage: "Jr"}, "Ford, Jr, Henry"},
		{Person{Last: "Aristotle"}, "Aristotle"},
		{Others(), "others"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("%+v.String() = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestFormatPersonsRoundTrip(t *testing.T) {
	in := "Knuth, Donald E. and van Beethoven, Ludwig and Ford, Jr, Henry and others"
	persons := ParsePersons(in)
	if got := FormatPersons(persons); got != in {
		t.Errorf("FormatPersons(ParsePersons(%q)) = %q", in, got)
	}
}
