package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/matsen/bibpage/internal/publications"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines (1MB per line).
const MaxJSONLLineCapacity = 1024 * 1024

// jsonlRecord is one line of the JSONL stream.
type jsonlRecord struct {
	Bucket publications.Bucket `json:"bucket"`
	publications.Entry
}

// WriteJSONL writes all buckets to a JSONL file, replacing existing content.
// Entries appear bucket by bucket, each bucket in its sorted order.
func WriteJSONL(path string, b *publications.Buckets) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating jsonl file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, bucket := range publications.AllBuckets {
		for _, e := range b.Get(bucket) {
			data, err := json.Marshal(jsonlRecord{Bucket: bucket, Entry: e})
			if err != nil {
				return fmt.Errorf("encoding entry %s: %w", e.Key, err)
			}
			if _, err := w.Write(data); err != nil {
				return fmt.Errorf("writing entry %s: %w", e.Key, err)
			}
			if err := w.WriteByte('\n'); err != nil {
				return fmt.Errorf("writing newline: %w", err)
			}
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing jsonl file: %w", err)
	}
	return f.Close()
}

// ReadJSONL reads buckets back from a JSONL file written by WriteJSONL.
func ReadJSONL(path string) (*publications.Buckets, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening jsonl file: %w", err)
	}
	defer f.Close()

	b := &publications.Buckets{}
	scanner := bufio.NewScanner(f)

	// Increase buffer size for long lines
	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue // Skip empty lines
		}

		var rec jsonlRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		b.Add(rec.Bucket, rec.Entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading jsonl file: %w", err)
	}

	return b, nil
}
