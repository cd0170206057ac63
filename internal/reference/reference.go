// Package reference defines the core domain types for bibliography records.
package reference

import (
	"sort"
	"strings"
)

// Person roles recognized by the parser.
const (
	RoleAuthor = "author"
	RoleEditor = "editor"
)

// Record represents one bibliographic entry as produced by the parser.
// Records are read-only once parsed; formatters never modify them.
type Record struct {
	Key      string // Citation key, unique within a bibliography
	Category string // Lowercased entry type: article, unpublished, techreport, ...

	// Fields maps lowercased field names to raw (LaTeX) values.
	// Person fields (author, editor) are not stored here.
	Fields map[string]string

	// FieldOrder lists field names in source order.
	FieldOrder []string

	Authors []Person
	Editors []Person
}

// NewRecord creates an empty record with the given key and category.
func NewRecord(key, category string) *Record {
	return &Record{
		Key:      key,
		Category: strings.ToLower(category),
		Fields:   make(map[string]string),
	}
}

// Field returns the raw value of a field and whether it is present.
// Fields holding only whitespace count as absent.
func (r *Record) Field(name string) (string, bool) {
	if r == nil || r.Fields == nil {
		return "", false
	}
	v, ok := r.Fields[strings.ToLower(name)]
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

// Get returns the raw value of a field, or "" if absent.
func (r *Record) Get(name string) string {
	v, _ := r.Field(name)
	return v
}

// Set assigns a field, recording its position on first assignment.
func (r *Record) Set(name, value string) {
	name = strings.ToLower(name)
	if r.Fields == nil {
		r.Fields = make(map[string]string)
	}
	if _, exists := r.Fields[name]; !exists {
		r.FieldOrder = append(r.FieldOrder, name)
	}
	r.Fields[name] = value
}

// Persons returns the person list for a role ("author" or "editor").
func (r *Record) Persons(role string) []Person {
	switch strings.ToLower(role) {
	case RoleAuthor:
		return r.Authors
	case RoleEditor:
		return r.Editors
	}
	return nil
}

// OrderedFields returns field names in source order, followed by any
// fields set without going through Set, sorted for stability.
func (r *Record) OrderedFields() []string {
	seen := make(map[string]bool, len(r.FieldOrder))
	names := make([]string, 0, len(r.Fields))
	for _, name := range r.FieldOrder {
		if _, ok := r.Fields[name]; ok && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	var rest []string
	for name := range r.Fields {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}
