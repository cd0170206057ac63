package publications

import (
	"errors"
	"fmt"
	"slices"

	"github.com/matsen/bibpage/internal/reference"
	"github.com/matsen/bibpage/internal/style"
)

// Bucket names one of the three output lists.
type Bucket string

// Output buckets.
const (
	Publications Bucket = "publications"
	Reports      Bucket = "reports"
	Unpublished  Bucket = "unpublished"
)

// AllBuckets lists the buckets in output order.
var AllBuckets = []Bucket{Publications, Reports, Unpublished}

// ErrUnknownKey is returned when a key is not in any bucket.
var ErrUnknownKey = errors.New("unknown key")

// BucketOf classifies a category. Only the category decides membership.
func BucketOf(category string) Bucket {
	switch style.Category(category) {
	case style.Article:
		return Publications
	case style.Unpublished:
		return Unpublished
	}
	return Reports
}

// SortKeyOf computes the sort key of a record.
func SortKeyOf(rec *reference.Record) SortKey {
	return SortKey{
		Year:  ParseYear(rec.Get("year")),
		Venue: rec.Get("journal"),
	}
}

// Buckets holds the three ordered lists produced by one run.
type Buckets struct {
	Publications []Entry `json:"publications" yaml:"publications"`
	Reports      []Entry `json:"reports" yaml:"reports"`
	Unpublished  []Entry `json:"unpublished" yaml:"unpublished"`
}

// Get returns the entries of a bucket.
func (b *Buckets) Get(name Bucket) []Entry {
	switch name {
	case Publications:
		return b.Publications
	case Reports:
		return b.Reports
	case Unpublished:
		return b.Unpublished
	}
	return nil
}

// Add appends an entry to a bucket. Callers sort once they are done adding.
func (b *Buckets) Add(name Bucket, e Entry) {
	switch name {
	case Publications:
		b.Publications = append(b.Publications, e)
	case Unpublished:
		b.Unpublished = append(b.Unpublished, e)
	default:
		b.Reports = append(b.Reports, e)
	}
}

// Len returns the total number of entries.
func (b *Buckets) Len() int {
	return len(b.Publications) + len(b.Reports) + len(b.Unpublished)
}

// Find returns the entry with the given key and the bucket holding it.
func (b *Buckets) Find(key string) (Entry, Bucket, error) {
	for _, name := range AllBuckets {
		for _, e := range b.Get(name) {
			if e.Key == key {
				return e, name, nil
			}
		}
	}
	return Entry{}, "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
}

// Sort orders every bucket by descending sort key: most recent year
// first, then venue descending. Entries with equal keys keep their order.
func (b *Buckets) Sort() {
	for _, entries := range [][]Entry{b.Publications, b.Reports, b.Unpublished} {
		SortEntries(entries)
	}
}

// SortEntries sorts entries in place by descending sort key.
func SortEntries(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return b.SortKey.Compare(a.SortKey)
	})
}
