// Package domain defines the employee record, its editable fields and the
// error taxonomy shared by the directory core and its adapters.
package domain

import "fmt"

// EntityEmployee identifies employee records in audit entries and logs.
const EntityEmployee = "employee"

// Field names one of the mutable attributes of an Employee.
type Field string

// Editable employee fields. Commit writes them in this order.
const (
	FieldName  Field = "name"
	FieldPhone Field = "phone"
	FieldTitle Field = "title"
)

// Fields lists every editable field in commit order.
var Fields = []Field{FieldName, FieldPhone, FieldTitle}

// ParseField resolves a field name as supplied by a view.
func ParseField(name string) (Field, error) {
	switch f := Field(name); f {
	case FieldName, FieldPhone, FieldTitle:
		return f, nil
	default:
		return "", &UnknownFieldError{Field: name}
	}
}

// Employee is a directory record. The identifier is fixed at construction.
type Employee struct {
	id    int
	Name  string
	Phone string
	Title string
}

// NewEmployee constructs an employee with the supplied identity.
func NewEmployee(id int, name, phone, title string) Employee {
	return Employee{id: id, Name: name, Phone: phone, Title: title}
}

// ID returns the immutable identifier.
func (e Employee) ID() int { return e.id }

// UpdateName replaces the employee name.
func (e *Employee) UpdateName(name string) { e.Name = name }

// UpdatePhone replaces the employee phone number.
func (e *Employee) UpdatePhone(phone string) { e.Phone = phone }

// UpdateTitle replaces the employee title.
func (e *Employee) UpdateTitle(title string) { e.Title = title }

// Update writes a single field through its named update operation.
func (e *Employee) Update(field Field, value string) error {
	switch field {
	case FieldName:
		e.UpdateName(value)
	case FieldPhone:
		e.UpdatePhone(value)
	case FieldTitle:
		e.UpdateTitle(value)
	default:
		return &UnknownFieldError{Field: string(field)}
	}
	return nil
}

// Draft returns a value copy of the editable fields.
func (e Employee) Draft() Draft {
	return Draft{EmployeeID: e.id, Name: e.Name, Phone: e.Phone, Title: e.Title}
}

func (e Employee) String() string {
	return fmt.Sprintf("%d %s (%s, %s)", e.id, e.Name, e.Title, e.Phone)
}

// Draft is a working copy of an employee's editable fields.
type Draft struct {
	EmployeeID int
	Name       string
	Phone      string
	Title      string
}

// Get returns the draft value of field.
func (d Draft) Get(field Field) (string, error) {
	switch field {
	case FieldName:
		return d.Name, nil
	case FieldPhone:
		return d.Phone, nil
	case FieldTitle:
		return d.Title, nil
	default:
		return "", &UnknownFieldError{Field: string(field)}
	}
}

// Set replaces the draft value of field.
func (d *Draft) Set(field Field, value string) error {
	switch field {
	case FieldName:
		d.Name = value
	case FieldPhone:
		d.Phone = value
	case FieldTitle:
		d.Title = value
	default:
		return &UnknownFieldError{Field: string(field)}
	}
	return nil
}
