package seed

import (
	"context"
	"database/sql"
	"fmt"

	"staffdir/pkg/domain"
)

// EmployeesQuery selects the roster from an employees(id, name, phone, title)
// table in id order.
const EmployeesQuery = `SELECT id, name, phone, title FROM employees ORDER BY id`

// PositionedEmployeesQuery lists a table that also carries a position column,
// ordering by position and then id.
const PositionedEmployeesQuery = `SELECT id, name, phone, title FROM employees ORDER BY position, id`

// QueryEmployees runs query on db and scans the rows in order. query must
// select id, name, phone and title.
func QueryEmployees(ctx context.Context, db *sql.DB, query string) ([]domain.Employee, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select employees: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out []domain.Employee
	for rows.Next() {
		var (
			id                 int
			name, phone, title string
		)
		if err := rows.Scan(&id, &name, &phone, &title); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		out = append(out, domain.NewEmployee(id, name, phone, title))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate employees: %w", err)
	}
	return out, nil
}
