package seed

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"staffdir/pkg/domain"
)

// Phone accepts either a number or a string in seed documents.
type Phone string

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *Phone) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: phone must be a scalar", node.Line)
	}
	*p = Phone(node.Value)
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Phone) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = Phone(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("phone: %w", err)
	}
	*p = Phone(n.String())
	return nil
}

// Record is the serialized form of an employee.
type Record struct {
	ID    int    `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Phone Phone  `yaml:"phone" json:"phone"`
	Title string `yaml:"title" json:"title"`
}

// Employee converts r to a domain employee.
func (r Record) Employee() domain.Employee {
	return domain.NewEmployee(r.ID, r.Name, string(r.Phone), r.Title)
}

// RecordOf converts e to its serialized form.
func RecordOf(e domain.Employee) Record {
	return Record{ID: e.ID(), Name: e.Name, Phone: Phone(e.Phone), Title: e.Title}
}

// Document is a roster file: a top-level "employees" list.
type Document struct {
	Employees []Record `yaml:"employees" json:"employees"`
}
