// Package storage persists publication lists for consumers that read them
// outside the CLI: an SQLite snapshot and a JSONL stream.
package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/matsen/bibpage/internal/publications"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// selectEntryFields contains the standard field list for SELECT queries.
const selectEntryFields = `bucket, key, html, bibtex, year, venue`

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS citations (
			bucket TEXT NOT NULL,
			position INTEGER NOT NULL,
			key TEXT NOT NULL,
			html TEXT NOT NULL,
			bibtex TEXT NOT NULL,
			year INTEGER,
			venue TEXT NOT NULL,
			PRIMARY KEY (bucket, position)
		);

		CREATE INDEX IF NOT EXISTS idx_citations_key ON citations(key);

		-- Full-text search over the citation text, without markup
		CREATE VIRTUAL TABLE IF NOT EXISTS citations_fts USING fts5(
			key,
			text,
			bibtex
		);
	`

	_, err := db.Exec(schema)
	return err
}

// ReplaceAll clears the database and stores the given buckets in order.
// The snapshot is written in a single transaction.
func (d *DB) ReplaceAll(b *publications.Buckets) (int, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM citations"); err != nil {
		return 0, fmt.Errorf("clearing citations table: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM citations_fts"); err != nil {
		return 0, fmt.Errorf("clearing citations_fts table: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO citations (bucket, position, key, html, bibtex, year, venue)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing citations insert: %w", err)
	}
	defer stmt.Close()

	ftsStmt, err := tx.Prepare(`INSERT INTO citations_fts (key, text, bibtex) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	count := 0
	for _, bucket := range publications.AllBuckets {
		for i, e := range b.Get(bucket) {
			if _, err := stmt.Exec(string(bucket), i, e.Key, e.Text, e.BibTeX, nullableYear(e.SortKey.Year), e.SortKey.Venue); err != nil {
				return 0, fmt.Errorf("inserting %s: %w", e.Key, err)
			}
			if _, err := ftsStmt.Exec(e.Key, plainText(e.Text), e.BibTeX); err != nil {
				return 0, fmt.Errorf("inserting fts for %s: %w", e.Key, err)
			}
			count++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing snapshot: %w", err)
	}
	return count, nil
}

// Load reads every bucket back in its stored order.
func (d *DB) Load() (*publications.Buckets, error) {
	b := &publications.Buckets{}
	for _, bucket := range publications.AllBuckets {
		entries, err := d.ListBucket(bucket)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			b.Add(bucket, e)
		}
	}
	return b, nil
}

// ListBucket returns the entries of one bucket in order.
func (d *DB) ListBucket(bucket publications.Bucket) ([]publications.Entry, error) {
	rows, err := d.db.Query(`SELECT `+selectEntryFields+` FROM citations WHERE bucket = ? ORDER BY position`, string(bucket))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", bucket, err)
	}
	defer rows.Close()

	results, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}
	entries := make([]publications.Entry, len(results))
	for i, r := range results {
		entries[i] = r.Entry
	}
	return entries, nil
}

// SearchResult is an entry matched by Search.
type SearchResult struct {
	Bucket publications.Bucket `json:"bucket"`
	publications.Entry
}

// Search performs a full-text search over keys, citations and BibTeX.
func (d *DB) Search(query string, limit int) ([]SearchResult, error) {
	rows, err := d.db.Query(`
		SELECT `+selectEntryFields+`
		FROM citations
		WHERE key IN (SELECT key FROM citations_fts WHERE citations_fts MATCH ?)
		ORDER BY bucket, position
		LIMIT ?`, prepareFTSQuery(query), limit)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Count returns the total number of stored entries.
func (d *DB) Count() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM citations").Scan(&count)
	return count, err
}

func scanEntries(rows *sql.Rows) ([]SearchResult, error) {
	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		var bucket string
		var year sql.NullInt64
		if err := rows.Scan(&bucket, &r.Key, &r.Text, &r.BibTeX, &year, &r.SortKey.Venue); err != nil {
			return nil, err
		}
		r.Bucket = publications.Bucket(bucket)
		if year.Valid {
			r.SortKey.Year = publications.Year{Value: int(year.Int64), Valid: true}
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

func nullableYear(y publications.Year) sql.NullInt64 {
	if !y.Valid {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(y.Value), Valid: true}
}

// prepareFTSQuery escapes special characters for FTS5 queries.
func prepareFTSQuery(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	// FTS5 uses double quotes for phrase matching
	if strings.ContainsAny(query, "\"*+-:(){}[]^~") {
		query = strings.ReplaceAll(query, "\"", "\"\"")
		return "\"" + query + "\""
	}

	return query
}
