// Package placeholder formats positional placeholder tokens and
// flattens row batches into the ordered parameter and wire-type lists
// matching the SQL the paired builder generates. The two sides are
// coupled by contract: Flatten emits parameters in exactly the order the
// builder emits placeholders.
package placeholder

import (
	"strconv"

	"github.com/alexk136/dbal-manager/dialect"
)

// Strategy produces positional placeholder tokens for one statement.
// Tokens never depend on the value being bound, only on its position.
type Strategy interface {
	// Next returns the token for the next bound parameter.
	Next() string
}

// QuestionMark emits the `?` token used by MySQL-family drivers.
type QuestionMark struct{}

// Next implements Strategy.
func (QuestionMark) Next() string { return "?" }

// Dollar emits numbered `$n` tokens used by PostgreSQL drivers.
type Dollar struct {
	n int
}

// Next implements Strategy.
func (d *Dollar) Next() string {
	d.n++
	return "$" + strconv.Itoa(d.n)
}

// ForDialect returns a fresh token strategy for the dialect.
func ForDialect(d dialect.Dialect) Strategy {
	if d == dialect.Postgres {
		return &Dollar{}
	}
	return QuestionMark{}
}
