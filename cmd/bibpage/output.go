package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matsen/bibpage/internal/publications"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by --format.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Constants for human output.
const (
	ListTextMaxLen = 100 // Citation text shown per line in list output
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	return writeJSON(os.Stdout, v)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputYAML writes a value as YAML to stdout.
func outputYAML(v interface{}) error {
	return writeYAML(os.Stdout, v)
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// outputFormatted writes v in the requested format.
func outputFormatted(format string, v interface{}) error {
	switch format {
	case FormatJSON, "":
		return outputJSON(v)
	case FormatYAML:
		return outputYAML(v)
	}
	return fmt.Errorf("unknown format %q (want json or yaml)", format)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// printBucketsHuman prints each non-empty bucket as a numbered list.
func printBucketsHuman(w io.Writer, b *publications.Buckets) {
	for _, name := range publications.AllBuckets {
		entries := b.Get(name)
		if len(entries) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s (%d)\n", name, len(entries))
		for i, e := range entries {
			fmt.Fprintf(w, "%3d. [%s] %s\n", i+1, e.Key, truncateString(singleLine(e.Text), ListTextMaxLen))
		}
		fmt.Fprintln(w)
	}
}

// singleLine joins the blocks of a citation onto one line.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncateString truncates a string to maxLen runes, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
