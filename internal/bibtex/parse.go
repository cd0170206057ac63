// Package bibtex reads and writes BibTeX bibliographies.
package bibtex

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/matsen/bibpage/internal/reference"
)

// ErrDuplicateKey is wrapped by the ParseError for a repeated citation key.
var ErrDuplicateKey = errors.New("repeated entry key")

// ParseError describes a syntax error in a bibliography.
type ParseError struct {
	Path string // Source file, empty when parsing bytes
	Line int
	Msg  string
	Err  error // Underlying sentinel, if any
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Msg)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// monthMacros are predefined like in the standard BibTeX styles.
var monthMacros = map[string]string{
	"jan": "January",
	"feb": "February",
	"mar": "March",
	"apr": "April",
	"may": "May",
	"jun": "June",
	"jul": "July",
	"aug": "August",
	"sep": "September",
	"oct": "October",
	"nov": "November",
	"dec": "December",
}

// Bibliography is the result of parsing a BibTeX source.
type Bibliography struct {
	// Entries in source order.
	Entries  []*reference.Record
	Preamble string

	index map[string]int // lowercased key -> position in Entries
}

// Lookup finds an entry by key, ignoring case.
func (b *Bibliography) Lookup(key string) (*reference.Record, bool) {
	i, ok := b.index[strings.ToLower(key)]
	if !ok {
		return nil, false
	}
	return b.Entries[i], true
}

// Len returns the number of entries.
func (b *Bibliography) Len() int {
	return len(b.Entries)
}

// ParseFile reads and parses a BibTeX file.
// The file is closed before returning, whatever the outcome.
func ParseFile(path string) (*Bibliography, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening bibliography: %w", err)
	}
	defer f.Close()

	bib, err := ParseReader(f)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Path = path
		}
		return nil, err
	}
	return bib, nil
}

// ParseReader parses a BibTeX source from r.
func ParseReader(r io.Reader) (*Bibliography, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading bibliography: %w", err)
	}
	return Parse(data)
}

// Parse parses BibTeX source. Any syntax error fails the whole parse.
func Parse(data []byte) (*Bibliography, error) {
	p := &parser{
		src:    data,
		macros: make(map[string]string, len(monthMacros)),
		bib:    &Bibliography{index: make(map[string]int)},
	}
	for k, v := range monthMacros {
		p.macros[k] = v
	}
	if err := p.parse(); err != nil {
		return nil, err
	}
	return p.bib, nil
}

type parser struct {
	src    []byte
	pos    int
	macros map[string]string
	bib    *Bibliography
}

func (p *parser) errorf(format string, args ...interface{}) *ParseError {
	return &ParseError{Line: p.line(), Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) line() int {
	end := p.pos
	if end > len(p.src) {
		end = len(p.src)
	}
	return 1 + bytes.Count(p.src[:end], []byte{'\n'})
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) skipSpace() {
	for !p.eof() && isSpace(p.src[p.pos]) {
		p.pos++
	}
}

func (p *parser) parse() error {
	for {
		// Text between entries is a comment.
		i := bytes.IndexByte(p.src[p.pos:], '@')
		if i < 0 {
			return nil
		}
		p.pos += i + 1
		if err := p.parseCommand(); err != nil {
			return err
		}
	}
}

// parseCommand parses everything after an '@'.
func (p *parser) parseCommand() error {
	p.skipSpace()
	kind := strings.ToLower(p.identifier())
	if kind == "" {
		return p.errorf("expected entry type after '@'")
	}
	p.skipSpace()

	var closer byte
	switch p.peek() {
	case '{':
		closer = '}'
	case '(':
		closer = ')'
	default:
		if kind == "comment" {
			return nil
		}
		return p.errorf("expected '{' or '(' after @%s", kind)
	}
	start := p.line()
	p.pos++

	switch kind {
	case "comment":
		return p.skipBody(closer, start)
	case "preamble":
		p.skipSpace()
		value, err := p.value()
		if err != nil {
			return err
		}
		p.bib.Preamble += value
		return p.expectClose(closer, start)
	case "string":
		return p.parseMacro(closer, start)
	}
	return p.parseEntry(kind, closer, start)
}

func (p *parser) parseMacro(closer byte, start int) error {
	p.skipSpace()
	name := strings.ToLower(p.identifier())
	if name == "" {
		return p.errorf("expected macro name in @string")
	}
	p.skipSpace()
	if p.peek() != '=' {
		return p.errorf("expected '=' after macro name %q", name)
	}
	p.pos++
	p.skipSpace()
	value, err := p.value()
	if err != nil {
		return err
	}
	p.macros[name] = value
	return p.expectClose(closer, start)
}

func (p *parser) parseEntry(kind string, closer byte, start int) error {
	p.skipSpace()
	keyStart := p.pos
	for !p.eof() && p.peek() != ',' && p.peek() != closer && !isSpace(p.peek()) {
		p.pos++
	}
	key := string(p.src[keyStart:p.pos])
	if key == "" {
		return p.errorf("missing citation key in @%s", kind)
	}
	// A brace in a key cannot be written back out.
	if i := strings.IndexAny(key, "{}"); i >= 0 {
		return p.errorf("invalid character %q in citation key %q", key[i], key)
	}

	lower := strings.ToLower(key)
	if _, exists := p.bib.index[lower]; exists {
		err := p.errorf("repeated entry %q", key)
		err.Err = ErrDuplicateKey
		return err
	}

	rec := reference.NewRecord(key, kind)
	p.skipSpace()
	for {
		switch p.peek() {
		case closer:
			p.pos++
			p.bib.index[lower] = len(p.bib.Entries)
			p.bib.Entries = append(p.bib.Entries, rec)
			return nil
		case ',':
			p.pos++
			p.skipSpace()
			continue
		case 0:
			if p.eof() {
				return &ParseError{Line: start, Msg: fmt.Sprintf("unterminated entry %q", key)}
			}
		}

		name := strings.ToLower(p.identifier())
		if name == "" {
			return p.errorf("expected field name in entry %q", key)
		}
		p.skipSpace()
		if p.peek() != '=' {
			return p.errorf("expected '=' after field %q in entry %q", name, key)
		}
		p.pos++
		p.skipSpace()
		value, err := p.value()
		if err != nil {
			return err
		}
		setField(rec, name, value)

		p.skipSpace()
		if c := p.peek(); c != ',' && c != closer {
			if p.eof() {
				return &ParseError{Line: start, Msg: fmt.Sprintf("unterminated entry %q", key)}
			}
			return p.errorf("expected ',' or '%c' after field %q in entry %q", closer, name, key)
		}
	}
}

// setField stores a parsed field, moving person lists out of the field map.
func setField(rec *reference.Record, name, value string) {
	switch name {
	case reference.RoleAuthor:
		rec.Authors = reference.ParsePersons(value)
	case reference.RoleEditor:
		rec.Editors = reference.ParsePersons(value)
	default:
		rec.Set(name, value)
	}
}

// value parses a possibly concatenated field value.
func (p *parser) value() (string, error) {
	var b strings.Builder
	for {
		part, err := p.valuePart()
		if err != nil {
			return "", err
		}
		b.WriteString(part)
		p.skipSpace()
		if p.peek() != '#' {
			break
		}
		p.pos++
		p.skipSpace()
	}
	return normalizeSpace(b.String()), nil
}

func (p *parser) valuePart() (string, error) {
	switch c := p.peek(); {
	case c == '{':
		p.pos++
		return p.delimited('}')
	case c == '"':
		p.pos++
		return p.delimited('"')
	case c >= '0' && c <= '9':
		start := p.pos
		for !p.eof() && p.peek() >= '0' && p.peek() <= '9' {
			p.pos++
		}
		return string(p.src[start:p.pos]), nil
	case p.eof():
		return "", p.errorf("unexpected end of input, expected a value")
	}

	name := p.identifier()
	if name == "" {
		return "", p.errorf("unexpected character %q, expected a value", p.peek())
	}
	v, ok := p.macros[strings.ToLower(name)]
	if !ok {
		return "", p.errorf("undefined macro %q", name)
	}
	return v, nil
}

// delimited reads up to the terminator at brace depth zero, which is consumed.
func (p *parser) delimited(term byte) (string, error) {
	start, line := p.pos, p.line()
	depth := 0
	for ; !p.eof(); p.pos++ {
		c := p.src[p.pos]
		switch {
		case c == '\\' && p.pos+1 < len(p.src):
			// Escaped braces don't nest.
			p.pos++
		case c == '{':
			depth++
		case c == '}' && depth > 0:
			depth--
		case c == term && depth == 0:
			s := string(p.src[start:p.pos])
			p.pos++
			return s, nil
		case c == '}':
			return "", p.errorf("unbalanced '}' in value")
		}
	}
	return "", &ParseError{Line: line, Msg: "unterminated value"}
}

// skipBody skips a balanced body, used for @comment.
func (p *parser) skipBody(closer byte, start int) error {
	depth := 0
	for ; !p.eof(); p.pos++ {
		switch c := p.src[p.pos]; {
		case c == '{':
			depth++
		case c == '}' && depth > 0:
			depth--
		case c == closer && depth == 0:
			p.pos++
			return nil
		}
	}
	return &ParseError{Line: start, Msg: "unterminated @comment"}
}

func (p *parser) expectClose(closer byte, start int) error {
	p.skipSpace()
	if p.eof() {
		return &ParseError{Line: start, Msg: "unterminated command"}
	}
	if p.peek() != closer {
		return p.errorf("expected '%c'", closer)
	}
	p.pos++
	return nil
}

// identifier reads a BibTeX name: anything but whitespace and the
// characters that have syntactic meaning.
func (p *parser) identifier() string {
	start := p.pos
	for !p.eof() {
		c := p.src[p.pos]
		if isSpace(c) || strings.IndexByte(`{}(),=#"%@`, c) >= 0 {
			break
		}
		p.pos++
	}
	return string(p.src[start:p.pos])
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

// normalizeSpace collapses whitespace runs like BibTeX does.
func normalizeSpace(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}
