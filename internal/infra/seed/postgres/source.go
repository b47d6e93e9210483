// Package postgres reads the employee roster from a PostgreSQL employees table.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"staffdir/internal/seed"
	"staffdir/pkg/domain"
)

var _ seed.Source = (*Source)(nil)

const (
	defaultDriver = "pgx"
	defaultDSN    = "postgres://localhost/staffdir?sslmode=disable"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// Source loads employees from Postgres.
type Source struct {
	db *sql.DB
}

// Open connects to dsn (or the local default) and verifies the connection.
func Open(ctx context.Context, dsn string) (*Source, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	openMu.Lock()
	db, err := sqlOpen(defaultDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Source{db: db}, nil
}

// Name implements seed.Source.
func (s *Source) Name() string { return "postgres" }

// Load implements seed.Source. Rows are listed in id order.
func (s *Source) Load(ctx context.Context) ([]domain.Employee, error) {
	return seed.QueryEmployees(ctx, s.db, seed.EmployeesQuery)
}

// DB exposes the underlying handle.
func (s *Source) DB() *sql.DB { return s.db }

// Close releases the connection pool.
func (s *Source) Close() error { return s.db.Close() }

// OverrideSQLOpen swaps the sql.Open function for tests and returns a restore function.
func OverrideSQLOpen(fn func(driverName, dataSourceName string) (*sql.DB, error)) func() {
	openMu.Lock()
	defer openMu.Unlock()
	prev := sqlOpen
	sqlOpen = fn
	return func() {
		openMu.Lock()
		defer openMu.Unlock()
		sqlOpen = prev
	}
}
