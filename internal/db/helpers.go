package db

import "database/sql"

// Queryer is satisfied by both *sql.DB and *sql.Tx so repositories and
// validation checks can run inside or outside a transaction.
type Queryer interface {
	QueryRow(query string, args ...any) *sql.Row
	Query(query string, args ...any) (*sql.Rows, error)
	Exec(query string, args ...any) (sql.Result, error)
}

// NullIfEmpty helps store optional strings without wiping existing data.
func NullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// NullableInt maps capacity-style fields: nil means unbounded.
func NullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
