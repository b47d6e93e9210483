package core

import (
	"context"
	"fmt"
	"os"

	"staffdir/internal/blob"
	boltseed "staffdir/internal/infra/seed/bolt"
	"staffdir/internal/infra/seed/postgres"
	"staffdir/internal/infra/seed/sqlite"
	"staffdir/internal/seed"
)

// SeedDriver identifies where the initial roster is read from.
type SeedDriver string

const (
	SeedStatic   SeedDriver = "static"   // built-in roster
	SeedFile     SeedDriver = "file"     // YAML/JSON document on disk
	SeedBlob     SeedDriver = "blob"     // document in the configured blob store
	SeedSQLite   SeedDriver = "sqlite"   // employees table in a sqlite file
	SeedPostgres SeedDriver = "postgres" // employees table on a PostgreSQL server
	SeedBolt     SeedDriver = "bolt"     // employees bucket in a bbolt file
)

// SeedSource is a roster source that may hold an open handle.
type SeedSource interface {
	seed.Source
	Close() error
}

type unclosed struct{ seed.Source }

func (unclosed) Close() error { return nil }

// OpenSeedSource selects a roster source using environment variables.
// Defaults to the built-in roster when unset.
//
//	STAFFDIR_SEED_DRIVER: static|file|blob|sqlite|postgres|bolt (default static)
//	STAFFDIR_SEED_FILE: document path when driver=file
//	STAFFDIR_SEED_BLOB_KEY: object key when driver=blob (default seed/employees.yaml)
//	STAFFDIR_SQLITE_PATH: existing sqlite file when driver=sqlite (default ./staffdir.db)
//	STAFFDIR_POSTGRES_DSN: postgres DSN when driver=postgres
//	STAFFDIR_BOLT_PATH: bbolt file when driver=bolt (default ./staffdir.bolt)
func OpenSeedSource(ctx context.Context) (SeedSource, error) {
	driver := os.Getenv("STAFFDIR_SEED_DRIVER")
	if driver == "" {
		driver = string(SeedStatic)
	}
	switch SeedDriver(driver) {
	case SeedStatic:
		return unclosed{seed.NewStatic(seed.DefaultRoster())}, nil
	case SeedFile:
		path := os.Getenv("STAFFDIR_SEED_FILE")
		if path == "" {
			return nil, fmt.Errorf("seed driver file requires STAFFDIR_SEED_FILE")
		}
		return unclosed{seed.NewFile(path)}, nil
	case SeedBlob:
		store, err := blob.Open(ctx)
		if err != nil {
			return nil, fmt.Errorf("open blob store: %w", err)
		}
		return unclosed{seed.NewBlob(store, os.Getenv("STAFFDIR_SEED_BLOB_KEY"))}, nil
	case SeedSQLite:
		src, err := sqlite.Open(os.Getenv("STAFFDIR_SQLITE_PATH"))
		if err != nil {
			return nil, err
		}
		return src, nil
	case SeedPostgres:
		src, err := postgres.Open(ctx, os.Getenv("STAFFDIR_POSTGRES_DSN"))
		if err != nil {
			return nil, err
		}
		return src, nil
	case SeedBolt:
		path := os.Getenv("STAFFDIR_BOLT_PATH")
		if path == "" {
			path = "staffdir.bolt"
		}
		src, err := boltseed.Open(path)
		if err != nil {
			return nil, err
		}
		return src, nil
	default:
		return nil, fmt.Errorf("unknown seed driver %s", driver)
	}
}

// LoadDirectory builds a directory from src.
func LoadDirectory(ctx context.Context, src seed.Source) (*Directory, error) {
	records, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", src.Name(), err)
	}
	dir, err := NewDirectoryFrom(records)
	if err != nil {
		return nil, fmt.Errorf("initialize from %s: %w", src.Name(), err)
	}
	return dir, nil
}
