package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWriteReadJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "citations.jsonl")

	if err := WriteJSONL(path, testBuckets()); err != nil {
		t.Fatalf("WriteJSONL() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("wrote %d lines, want 4", len(lines))
	}
	if !strings.HasPrefix(lines[0], `{"bucket":"publications","key":"Smith2020"`) {
		t.Errorf("first line = %s", lines[0])
	}
	if !strings.Contains(lines[3], `"year":null`) {
		t.Errorf("absent year should encode as null: %s", lines[3])
	}

	got, err := ReadJSONL(path)
	if err != nil {
		t.Fatalf("ReadJSONL() error = %v", err)
	}
	if diff := cmp.Diff(testBuckets(), got); diff != "" {
		t.Errorf("ReadJSONL() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadJSONL_SkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "citations.jsonl")
	content := `{"bucket":"reports","key":"a","text":"A.","bibtex":"","sort_key":{"year":2001,"venue":""}}

{"bucket":"unpublished","key":"b","text":"B.","bibtex":"","sort_key":{"year":null,"venue":""}}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadJSONL(path)
	if err != nil {
		t.Fatalf("ReadJSONL() error = %v", err)
	}
	if len(got.Reports) != 1 || len(got.Unpublished) != 1 {
		t.Errorf("ReadJSONL() = %+v", got)
	}
	if got.Reports[0].SortKey.Year.Value != 2001 {
		t.Errorf("year = %v, want 2001", got.Reports[0].SortKey.Year)
	}
}

func TestReadJSONL_InvalidLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "citations.jsonl")
	if err := os.WriteFile(path, []byte("{not json}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ReadJSONL(path)
	if err == nil || !strings.Contains(err.Error(), "line 1") {
		t.Errorf("ReadJSONL() error = %v, want line 1 error", err)
	}
}

func TestReadJSONL_NonExistentFile(t *testing.T) {
	if _, err := ReadJSONL("/nonexistent/path/citations.jsonl"); err == nil {
		t.Error("ReadJSONL() expected error for missing file")
	}
}
