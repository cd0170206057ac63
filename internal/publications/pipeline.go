package publications

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/matsen/bibpage/internal/bibtex"
	"github.com/matsen/bibpage/internal/reference"
	"github.com/matsen/bibpage/internal/style"
)

// Builder formats records into entries.
type Builder struct {
	style *style.Style
}

// NewBuilder creates a builder using the citation style.
func NewBuilder() *Builder {
	return &Builder{style: style.New()}
}

// Entry formats a single record. It never fails.
func (b *Builder) Entry(rec *reference.Record) Entry {
	return Entry{
		Key:     rec.Key,
		Text:    b.style.Format(rec),
		BibTeX:  bibtex.ToBibTeX(rec),
		SortKey: SortKeyOf(rec),
	}
}

// Build formats, classifies and sorts every entry of a bibliography.
// Each call returns freshly allocated buckets.
func (b *Builder) Build(bib *bibtex.Bibliography) *Buckets {
	buckets := &Buckets{
		Publications: []Entry{},
		Reports:      []Entry{},
		Unpublished:  []Entry{},
	}
	for _, rec := range bib.Entries {
		buckets.Add(BucketOf(rec.Category), b.Entry(rec))
	}
	buckets.Sort()
	return buckets
}

// Load parses the bibliography at src and builds its buckets.
// Unlike Generate it reports parse failures to the caller.
func Load(src string) (*Buckets, *bibtex.Bibliography, error) {
	bib, err := bibtex.ParseFile(src)
	if err != nil {
		return nil, nil, err
	}
	return NewBuilder().Build(bib), bib, nil
}

// Generate runs the whole pipeline for one bibliography file.
//
// It returns nil, and does nothing, when src is empty. When the file cannot
// be read or parsed, it logs a single warning and returns nil: partial
// results are never produced. A nil logger discards log output.
func Generate(src string, logger *zap.Logger) *Buckets {
	if src == "" {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	log := logger.With(zap.String("run", uuid.NewString()), zap.String("src", src))

	buckets, _, err := Load(src)
	if err != nil {
		log.Warn("failed to parse bibliography", zap.Error(err))
		return nil
	}

	log.Debug("built publication lists",
		zap.Int("publications", len(buckets.Publications)),
		zap.Int("reports", len(buckets.Reports)),
		zap.Int("unpublished", len(buckets.Unpublished)))
	return buckets
}
