// Package sqlite reads the employee roster from an embedded SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"staffdir/internal/seed"
	"staffdir/pkg/domain"
)

var _ seed.Source = (*Source)(nil)

// Schema is the employees table layout. Rows are listed by position, then id.
const Schema = `CREATE TABLE IF NOT EXISTS employees (
	id INTEGER PRIMARY KEY,
	position INTEGER NOT NULL DEFAULT 0,
	name TEXT NOT NULL,
	phone TEXT NOT NULL,
	title TEXT NOT NULL
)`

// Source loads employees from a SQLite database.
type Source struct {
	db   *sql.DB
	path string
}

// Open opens the existing database at path. A missing file is an error
// wrapping os.ErrNotExist; use Create to provision a new roster.
func Open(path string) (*Source, error) {
	if path == "" {
		path = "staffdir.db"
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open sqlite roster: %w", err)
	}
	return open(path)
}

// Create opens the database at path, creating the file, its directories and
// the employees table when missing.
func Create(path string) (*Source, error) {
	if path == "" {
		path = "staffdir.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	src, err := open(path)
	if err != nil {
		return nil, err
	}
	if _, err := src.db.Exec(Schema); err != nil {
		_ = src.db.Close()
		return nil, fmt.Errorf("create employees table: %w", err)
	}
	return src, nil
}

func open(path string) (*Source, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return &Source{db: db, path: path}, nil
}

// Name implements seed.Source.
func (s *Source) Name() string { return "sqlite:" + s.path }

// Load implements seed.Source.
func (s *Source) Load(ctx context.Context) ([]domain.Employee, error) {
	return seed.QueryEmployees(ctx, s.db, seed.PositionedEmployeesQuery)
}

// DB exposes the underlying handle for provisioning and tests.
func (s *Source) DB() *sql.DB { return s.db }

// Close releases the database.
func (s *Source) Close() error { return s.db.Close() }
