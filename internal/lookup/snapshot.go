// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lookup

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/citation-graph/pkg/types"
)

// Snapshot serves lookups from a local SQLite citation database. The
// database is filled by Import and only read during lookups, so a graph
// built from a snapshot is reproducible and needs no network.
type Snapshot struct {
	db   *sql.DB
	path string
}

// SnapshotFile is the YAML import format: a list of papers, each with its
// ordered reference list.
type SnapshotFile struct {
	Papers []SnapshotPaper `yaml:"papers"`
}

// SnapshotPaper is one paper in a SnapshotFile.
type SnapshotPaper struct {
	ID         string            `yaml:"id"`
	Title      string            `yaml:"title,omitempty"`
	References []types.Reference `yaml:"references,omitempty"`
}

// ImportSummary holds counts from one Import run.
type ImportSummary struct {
	Papers     int
	References int
	Skipped    int
}

// OpenSnapshot opens or creates the snapshot database at path and ensures
// the schema exists.
func OpenSnapshot(path string) (*Snapshot, error) {
	if path == "" {
		return nil, fmt.Errorf("snapshot path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating snapshot directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening snapshot database: %w", err)
	}

	s := &Snapshot{db: db, path: path}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Snapshot) Close() error {
	return s.db.Close()
}

// Name returns the source identifier.
func (s *Snapshot) Name() string { return types.SourceSnapshot }

func (s *Snapshot) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS papers (
			id TEXT PRIMARY KEY,
			title TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS refs (
			paper_id TEXT NOT NULL REFERENCES papers(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			ref_id TEXT,
			ref_title TEXT,
			ref_year INTEGER,
			ref_arxiv TEXT,
			ref_doi TEXT,
			PRIMARY KEY (paper_id, position)
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Title returns the stored title for id.
func (s *Snapshot) Title(ctx context.Context, id string) (string, error) {
	var title sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT title FROM papers WHERE id = ?`, id).Scan(&title)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("snapshot %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("looking up paper: %w", err)
	}
	return title.String, nil
}

// References returns the stored references of id in import order. Rows
// imported without an identifier come back with an empty ID.
func (s *Snapshot) References(ctx context.Context, id string) ([]types.Reference, error) {
	if _, err := s.Title(ctx, id); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT ref_id, ref_title, ref_year, ref_arxiv, ref_doi
		 FROM refs WHERE paper_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("querying references: %w", err)
	}
	defer rows.Close()

	var refs []types.Reference
	for rows.Next() {
		var (
			refID, title, arxiv, doi sql.NullString
			year                     sql.NullInt64
		)
		if err := rows.Scan(&refID, &title, &year, &arxiv, &doi); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		refs = append(refs, types.Reference{
			ID:      refID.String,
			Title:   title.String,
			Year:    int(year.Int64),
			ArxivID: arxiv.String,
			DOI:     doi.String,
		})
	}
	return refs, rows.Err()
}

// ImportFile reads a YAML snapshot file and imports it.
func (s *Snapshot) ImportFile(ctx context.Context, path string, w io.Writer) (ImportSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var file SnapshotFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return ImportSummary{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return s.Import(ctx, file, w)
}

// Import upserts every paper in file. A paper that is imported again has
// its reference list replaced. Papers without an id are skipped.
func (s *Snapshot) Import(ctx context.Context, file SnapshotFile, w io.Writer) (ImportSummary, error) {
	var summary ImportSummary

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return summary, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	upsert, err := tx.PrepareContext(ctx,
		`INSERT INTO papers (id, title) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET title=excluded.title`)
	if err != nil {
		return summary, fmt.Errorf("preparing paper insert: %w", err)
	}
	defer upsert.Close()

	insertRef, err := tx.PrepareContext(ctx,
		`INSERT INTO refs (paper_id, position, ref_id, ref_title, ref_year, ref_arxiv, ref_doi)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return summary, fmt.Errorf("preparing reference insert: %w", err)
	}
	defer insertRef.Close()

	for _, p := range file.Papers {
		if p.ID == "" {
			fmt.Fprintf(w, "skipped paper without id (%q)\n", p.Title)
			summary.Skipped++
			continue
		}

		if _, err := upsert.ExecContext(ctx, p.ID, nullString(p.Title)); err != nil {
			return summary, fmt.Errorf("upserting paper %s: %w", p.ID, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM refs WHERE paper_id = ?`, p.ID); err != nil {
			return summary, fmt.Errorf("clearing references of %s: %w", p.ID, err)
		}
		for i, r := range p.References {
			_, err := insertRef.ExecContext(ctx,
				p.ID, i, nullString(r.ID), nullString(r.Title),
				sql.NullInt64{Int64: int64(r.Year), Valid: r.Year != 0},
				nullString(r.ArxivID), nullString(r.DOI),
			)
			if err != nil {
				return summary, fmt.Errorf("inserting reference %d of %s: %w", i, p.ID, err)
			}
		}

		fmt.Fprintf(w, "imported %s (%d references)\n", p.ID, len(p.References))
		summary.Papers++
		summary.References += len(p.References)
	}

	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("committing import: %w", err)
	}
	return summary, nil
}

// Stats returns the number of papers and reference rows stored.
func (s *Snapshot) Stats(ctx context.Context) (papers, refs int, err error) {
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM papers`).Scan(&papers); err != nil {
		return 0, 0, fmt.Errorf("counting papers: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM refs`).Scan(&refs); err != nil {
		return 0, 0, fmt.Errorf("counting references: %w", err)
	}
	return papers, refs, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
