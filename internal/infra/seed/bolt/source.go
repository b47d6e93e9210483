// Package bolt reads the employee roster from a bbolt file. Employees live in
// the "employees" bucket keyed by big-endian sequence numbers, with JSON
// encoded seed records as values.
package bolt

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"staffdir/internal/seed"
	"staffdir/pkg/domain"
)

var _ seed.Source = (*Source)(nil)

// Bucket holds the roster.
var Bucket = []byte("employees")

// Source loads employees from a bbolt database.
type Source struct {
	db *bolt.DB
}

// Open opens the database at path read-only.
func Open(path string) (*Source, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{ReadOnly: true, Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt: %w", err)
	}
	return &Source{db: db}, nil
}

// Name implements seed.Source.
func (s *Source) Name() string { return "bolt:" + s.db.Path() }

// Load implements seed.Source. A missing bucket is an empty roster.
func (s *Source) Load(ctx context.Context) ([]domain.Employee, error) {
	var out []domain.Employee
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(Bucket)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var rec seed.Record
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("decode employee at %x: %w", k, err)
			}
			out = append(out, rec.Employee())
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Close releases the database file.
func (s *Source) Close() error { return s.db.Close() }

// Write stores records into the bucket of an open writable database,
// replacing its contents. It is used to provision roster files.
func Write(db *bolt.DB, records []domain.Employee) error {
	return db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(Bucket) != nil {
			if err := tx.DeleteBucket(Bucket); err != nil {
				return err
			}
		}
		b, err := tx.CreateBucket(Bucket)
		if err != nil {
			return err
		}
		for i, e := range records {
			v, err := json.Marshal(seed.RecordOf(e))
			if err != nil {
				return err
			}
			key := make([]byte, 8)
			binary.BigEndian.PutUint64(key, uint64(i))
			if err := b.Put(key, v); err != nil {
				return err
			}
		}
		return nil
	})
}
