package core

import (
	"fmt"
	"iter"
	"sync"

	"staffdir/pkg/domain"
)

// Directory is the authoritative in-memory collection of employees. Records
// keep their seed order and are only mutated through an EditSession commit.
type Directory struct {
	mu      sync.RWMutex
	records []domain.Employee
	index   map[int]int
}

// NewDirectory returns an empty directory.
func NewDirectory() *Directory {
	return &Directory{index: make(map[int]int)}
}

// NewDirectoryFrom returns a directory initialized with records.
func NewDirectoryFrom(records []domain.Employee) (*Directory, error) {
	d := NewDirectory()
	if err := d.Initialize(records); err != nil {
		return nil, err
	}
	return d, nil
}

// Initialize replaces the directory contents with records. On a duplicate id
// it returns *domain.DuplicateIDError and leaves the directory unchanged.
func (d *Directory) Initialize(records []domain.Employee) error {
	index := make(map[int]int, len(records))
	copied := make([]domain.Employee, len(records))
	for i, rec := range records {
		if _, dup := index[rec.ID()]; dup {
			return &domain.DuplicateIDError{ID: rec.ID()}
		}
		index[rec.ID()] = i
		copied[i] = rec
	}
	d.mu.Lock()
	d.records = copied
	d.index = index
	d.mu.Unlock()
	return nil
}

// Find returns a copy of the employee with id. The boolean is false when no
// such employee exists.
func (d *Directory) Find(id int) (domain.Employee, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	i, ok := d.index[id]
	if !ok {
		return domain.Employee{}, false
	}
	return d.records[i], true
}

// List yields copies of the employees in insertion order. The sequence can be
// ranged over any number of times. The lock is not held while yielding, so
// callers may commit edits from inside the loop.
func (d *Directory) List() iter.Seq[domain.Employee] {
	return func(yield func(domain.Employee) bool) {
		for i := 0; ; i++ {
			d.mu.RLock()
			if i >= len(d.records) {
				d.mu.RUnlock()
				return
			}
			rec := d.records[i]
			d.mu.RUnlock()
			if !yield(rec) {
				return
			}
		}
	}
}

// Len returns the number of employees.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.records)
}

// update applies fn to the stored employee in place and returns the result.
func (d *Directory) update(id int, fn func(*domain.Employee)) (domain.Employee, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	i, ok := d.index[id]
	if !ok {
		return domain.Employee{}, fmt.Errorf("employee %d: %w", id, domain.ErrNotFound)
	}
	fn(&d.records[i])
	return d.records[i], nil
}
