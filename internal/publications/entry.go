// Package publications turns a bibliography into the three ordered lists
// a publications page is built from: journal articles, reports (everything
// that is neither an article nor unpublished) and unpublished work.
package publications

import (
	"bytes"
	"cmp"
	"encoding/json"
	"strconv"
	"strings"
)

// Year is a publication year that may be absent.
// An absent year sorts as older than any present year.
type Year struct {
	Value int
	Valid bool
}

// ParseYear parses a year field. Anything that is not an integer,
// including an empty string, yields an absent year.
func ParseYear(raw string) Year {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return Year{}
	}
	return Year{Value: n, Valid: true}
}

// Compare orders years ascending, absent first.
func (y Year) Compare(o Year) int {
	switch {
	case !y.Valid && !o.Valid:
		return 0
	case !y.Valid:
		return -1
	case !o.Valid:
		return 1
	}
	return cmp.Compare(y.Value, o.Value)
}

func (y Year) String() string {
	if !y.Valid {
		return ""
	}
	return strconv.Itoa(y.Value)
}

// MarshalJSON encodes an absent year as null.
func (y Year) MarshalJSON() ([]byte, error) {
	if !y.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(y.Value)), nil
}

// UnmarshalJSON decodes a number or null.
func (y *Year) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*y = Year{}
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*y = Year{Value: n, Valid: true}
	return nil
}

// MarshalYAML encodes an absent year as null.
func (y Year) MarshalYAML() (interface{}, error) {
	if !y.Valid {
		return nil, nil
	}
	return y.Value, nil
}

// SortKey orders entries within a bucket.
type SortKey struct {
	Year  Year   `json:"year" yaml:"year"`
	Venue string `json:"venue" yaml:"venue"` // raw journal field, "" if absent
}

// Compare orders keys ascending by year, then venue.
func (k SortKey) Compare(o SortKey) int {
	if c := k.Year.Compare(o.Year); c != 0 {
		return c
	}
	return strings.Compare(k.Venue, o.Venue)
}

// Entry is one formatted bibliography record. Entries are built once
// and not modified afterwards.
type Entry struct {
	Key     string  `json:"key" yaml:"key"`
	Text    string  `json:"text" yaml:"text"`     // HTML citation
	BibTeX  string  `json:"bibtex" yaml:"bibtex"` // standalone BibTeX source
	SortKey SortKey `json:"sort_key" yaml:"sort_key"`
}
