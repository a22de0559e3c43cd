// Package dialect enumerates the SQL dialects supported by the bulk
// write engine and centralizes dialect-specific identifier quoting.
package dialect

import "fmt"

// Dialect identifies a family of SQL syntax. It is selected once at
// construction time and passed to both the SQL builders and the
// placeholder strategy.
type Dialect int

const (
	// MySQL covers MySQL and MariaDB.
	MySQL Dialect = iota
	// Postgres covers PostgreSQL and compatible servers.
	Postgres
)

// FromDriverName resolves a database/sql driver name to a Dialect.
func FromDriverName(name string) (Dialect, error) {
	switch name {
	case "mysql", "mariadb":
		return MySQL, nil
	case "postgres", "pgx", "pq":
		return Postgres, nil
	default:
		return 0, fmt.Errorf("unsupported driver %q", name)
	}
}

// String returns the canonical dialect name.
func (d Dialect) String() string {
	switch d {
	case MySQL:
		return "mysql"
	case Postgres:
		return "postgres"
	default:
		return fmt.Sprintf("dialect(%d)", int(d))
	}
}

// Quote wraps an identifier in the dialect's quoting characters.
// It does not validate the identifier; callers are expected to have
// done so before quoting.
func (d Dialect) Quote(ident string) string {
	if d == Postgres {
		return `"` + ident + `"`
	}
	return "`" + ident + "`"
}
