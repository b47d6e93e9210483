// Package seed supplies the initial employee roster a directory is built
// from. Sources only read; edits made through the directory are never
// written back.
package seed

import (
	"context"
	"slices"

	"staffdir/pkg/domain"
)

// Source loads an ordered employee roster.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]domain.Employee, error)
}

// Static serves a fixed roster.
type Static struct {
	records []domain.Employee
}

// NewStatic returns a source serving a copy of records.
func NewStatic(records []domain.Employee) *Static {
	return &Static{records: slices.Clone(records)}
}

// Name implements Source.
func (s *Static) Name() string { return "static" }

// Load implements Source.
func (s *Static) Load(ctx context.Context) ([]domain.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(s.records), nil
}

// DefaultRoster is the ten-person company the directory ships with.
func DefaultRoster() []domain.Employee {
	return []domain.Employee{
		domain.NewEmployee(0, "Bernice Ortiz", "4824931093", "CEO"),
		domain.NewEmployee(1, "Marnie Barnett", "3094812387", "CTO"),
		domain.NewEmployee(2, "Phillip Weaver", "7459831843", "Manager"),
		domain.NewEmployee(3, "Teresa Osborne", "3841238745", "Director of Engineering"),
		domain.NewEmployee(4, "Dollie Berry", "4873459812", "Front-End Developer"),
		domain.NewEmployee(5, "Harriett Williamson", "6571249801", "Front-End Developer"),
		domain.NewEmployee(6, "Ruby Estrada", "5740923478", "Back-End Developer"),
		domain.NewEmployee(7, "Lou White", "8727813498", "Full-Stack Developer"),
		domain.NewEmployee(8, "Eve Sparks", "8734567810", "Product Manager"),
		domain.NewEmployee(9, "Lois Brewer", "8749823456", "Sales Manager"),
	}
}
