// Package testutil provides a stub database/sql driver standing in for
// Postgres in roster source tests.
package testutil

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
)

var stubSeq atomic.Int64

// StubConn serves SELECT statements from in-memory tables.
type StubConn struct {
	Queries  []string
	Tables   map[string][]map[string]any
	FailPing bool
	FailRead map[string]bool
	RowsErr  error
}

// NewStubDB registers a fresh stub driver and opens a sql.DB on it.
func NewStubDB() (*sql.DB, *StubConn) {
	conn := &StubConn{Tables: make(map[string][]map[string]any)}
	name := fmt.Sprintf("stubpg%d", stubSeq.Add(1))
	sql.Register(name, &stubDriver{conn: conn})
	db, err := sql.Open(name, "stub")
	if err != nil {
		panic(err)
	}
	return db, conn
}

// AddRow appends a row to table.
func (c *StubConn) AddRow(table string, row map[string]any) {
	c.Tables[table] = append(c.Tables[table], row)
}

type stubDriver struct {
	conn *StubConn
}

func (d *stubDriver) Open(string) (driver.Conn, error) { return d.conn, nil }

// Prepare implements driver.Conn.
func (c *StubConn) Prepare(string) (driver.Stmt, error) { return nil, fmt.Errorf("not implemented") }

// Close implements driver.Conn.
func (c *StubConn) Close() error { return nil }

// Begin implements driver.Conn.
func (c *StubConn) Begin() (driver.Tx, error) { return nil, fmt.Errorf("not implemented") }

// Ping implements driver.Pinger.
func (c *StubConn) Ping(context.Context) error {
	if c.FailPing {
		return fmt.Errorf("ping fail")
	}
	return nil
}

// QueryContext implements driver.QueryerContext. Rows are returned in
// insertion order; ORDER BY is not interpreted.
func (c *StubConn) QueryContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Rows, error) {
	c.Queries = append(c.Queries, query)
	table, cols, err := parseSelect(query)
	if err != nil {
		return nil, err
	}
	if c.FailRead[table] {
		return nil, fmt.Errorf("query fail for %s", table)
	}
	values := make([][]driver.Value, 0, len(c.Tables[table]))
	for _, row := range c.Tables[table] {
		vals := make([]driver.Value, len(cols))
		for i, col := range cols {
			vals[i] = row[col]
		}
		values = append(values, vals)
	}
	return &stubRows{cols: cols, rows: values, err: c.RowsErr}, nil
}

type stubRows struct {
	cols []string
	rows [][]driver.Value
	idx  int
	err  error
}

func (r *stubRows) Columns() []string { return r.cols }
func (r *stubRows) Close() error      { return nil }

func (r *stubRows) Next(dest []driver.Value) error {
	if r.idx >= len(r.rows) {
		if r.err != nil {
			return r.err
		}
		return io.EOF
	}
	copy(dest, r.rows[r.idx])
	r.idx++
	return nil
}

func parseSelect(query string) (string, []string, error) {
	fields := strings.Fields(query)
	if len(fields) < 4 || !strings.EqualFold(fields[0], "SELECT") {
		return "", nil, fmt.Errorf("cannot parse select: %s", query)
	}
	var cols []string
	i := 1
	for ; i < len(fields) && !strings.EqualFold(fields[i], "FROM"); i++ {
		for _, col := range strings.Split(fields[i], ",") {
			if col = strings.TrimSpace(col); col != "" {
				cols = append(cols, col)
			}
		}
	}
	if i+1 >= len(fields) {
		return "", nil, fmt.Errorf("cannot parse select: %s", query)
	}
	return fields[i+1], cols, nil
}
