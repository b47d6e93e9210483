package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports a lookup of an employee id that is not in the directory.
	ErrNotFound = errors.New("employee not found")
	// ErrNoSelection is matched by every NoSelectionError.
	ErrNoSelection = errors.New("no employee selected")
)

// DuplicateIDError is returned when a seed contains two employees with the same id.
type DuplicateIDError struct {
	ID int
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate employee id %d", e.ID)
}

// NoSelectionError is returned when an edit operation runs without a selected employee.
type NoSelectionError struct {
	Op string
}

func (e *NoSelectionError) Error() string {
	if e.Op == "" {
		return ErrNoSelection.Error()
	}
	return fmt.Sprintf("%s: %s", e.Op, ErrNoSelection)
}

// Is reports whether target is ErrNoSelection.
func (e *NoSelectionError) Is(target error) bool { return target == ErrNoSelection }

// UnknownFieldError is returned for a field name outside name, phone and title.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown employee field %q", e.Field)
}
