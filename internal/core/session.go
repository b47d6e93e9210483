package core

import (
	"fmt"

	"staffdir/pkg/domain"
)

// EditSession buffers edits to a single selected employee. It holds only the
// selected id; the employee itself stays owned by the Directory.
//
// An EditSession is not safe for concurrent use.
type EditSession struct {
	dir      *Directory
	selected int
	active   bool
	draft    domain.Draft
	dirty    bool
}

// NewEditSession returns an empty session editing employees of dir.
func NewEditSession(dir *Directory) *EditSession {
	return &EditSession{dir: dir}
}

// Select makes id the selected employee and resets the draft to its current
// values. Unsaved edits of a previous selection are dropped.
func (s *EditSession) Select(id int) error {
	rec, ok := s.dir.Find(id)
	if !ok {
		return fmt.Errorf("select employee %d: %w", id, domain.ErrNotFound)
	}
	s.selected = id
	s.active = true
	s.draft = rec.Draft()
	s.dirty = false
	return nil
}

// Clear returns the session to the empty state.
func (s *EditSession) Clear() {
	s.selected = 0
	s.active = false
	s.draft = domain.Draft{}
	s.dirty = false
}

// Edit sets a draft field and marks the session modified.
func (s *EditSession) Edit(field domain.Field, value string) error {
	if !s.active {
		return &domain.NoSelectionError{Op: "edit"}
	}
	if err := s.draft.Set(field, value); err != nil {
		return err
	}
	s.dirty = true
	return nil
}

// Commit writes the draft into the selected employee field by field. It does
// nothing when the draft has not been edited.
func (s *EditSession) Commit() error {
	if !s.active {
		return &domain.NoSelectionError{Op: "commit"}
	}
	if !s.dirty {
		return nil
	}
	draft := s.draft
	updated, err := s.dir.update(s.selected, func(e *domain.Employee) {
		e.UpdateName(draft.Name)
		e.UpdatePhone(draft.Phone)
		e.UpdateTitle(draft.Title)
	})
	if err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	s.draft = updated.Draft()
	s.dirty = false
	return nil
}

// Cancel discards the draft by recopying the selected employee's committed values.
func (s *EditSession) Cancel() error {
	if !s.active {
		return &domain.NoSelectionError{Op: "cancel"}
	}
	rec, ok := s.dir.Find(s.selected)
	if !ok {
		return fmt.Errorf("cancel employee %d: %w", s.selected, domain.ErrNotFound)
	}
	s.draft = rec.Draft()
	s.dirty = false
	return nil
}

// IsModified reports whether the draft has been edited since the last reset.
func (s *EditSession) IsModified() bool { return s.dirty }

// Selected returns the committed state of the selected employee.
func (s *EditSession) Selected() (domain.Employee, bool) {
	if !s.active {
		return domain.Employee{}, false
	}
	return s.dir.Find(s.selected)
}

// Draft returns a copy of the working draft.
func (s *EditSession) Draft() (domain.Draft, bool) {
	if !s.active {
		return domain.Draft{}, false
	}
	return s.draft, true
}
