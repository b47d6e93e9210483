package domain

import (
	"errors"
	"testing"
)

func TestParseField(t *testing.T) {
	for _, name := range []string{"name", "phone", "title"} {
		f, err := ParseField(name)
		if err != nil {
			t.Fatalf("parse %s: %v", name, err)
		}
		if string(f) != name {
			t.Fatalf("expected %s, got %s", name, f)
		}
	}
	_, err := ParseField("salary")
	var unknown *UnknownFieldError
	if !errors.As(err, &unknown) || unknown.Field != "salary" {
		t.Fatalf("expected unknown field error, got %v", err)
	}
}

func TestEmployeeUpdateKeepsID(t *testing.T) {
	e := NewEmployee(7, "Lou White", "8727813498", "Full-Stack Developer")
	for _, f := range Fields {
		if err := e.Update(f, "x-"+string(f)); err != nil {
			t.Fatalf("update %s: %v", f, err)
		}
	}
	if e.ID() != 7 {
		t.Fatalf("id changed to %d", e.ID())
	}
	if e.Name != "x-name" || e.Phone != "x-phone" || e.Title != "x-title" {
		t.Fatalf("unexpected fields: %+v", e)
	}
	if err := e.Update(Field("email"), "a@b"); err == nil {
		t.Fatalf("expected error for unknown field")
	}
}

func TestDraftIsIndependentCopy(t *testing.T) {
	e := NewEmployee(1, "Marnie Barnett", "3094812387", "CTO")
	d := e.Draft()
	if err := d.Set(FieldTitle, "CEO"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if e.Title != "CTO" {
		t.Fatalf("draft edit leaked into employee: %q", e.Title)
	}
	got, err := d.Get(FieldTitle)
	if err != nil || got != "CEO" {
		t.Fatalf("get title: %q %v", got, err)
	}
	if d.EmployeeID != 1 {
		t.Fatalf("draft id %d", d.EmployeeID)
	}
	if _, err := d.Get(Field("")); err == nil {
		t.Fatalf("expected error for empty field")
	}
}

func TestNoSelectionErrorMatchesSentinel(t *testing.T) {
	err := error(&NoSelectionError{Op: "commit"})
	if !errors.Is(err, ErrNoSelection) {
		t.Fatalf("expected errors.Is to match ErrNoSelection")
	}
	if err.Error() != "commit: no employee selected" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if (&NoSelectionError{}).Error() != "no employee selected" {
		t.Fatalf("unexpected bare message")
	}
	if (&DuplicateIDError{ID: 3}).Error() != "duplicate employee id 3" {
		t.Fatalf("unexpected duplicate message")
	}
}
