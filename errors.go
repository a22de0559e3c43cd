package dbal

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

// ValidationError reports invalid input detected before any SQL is sent:
// a bad identifier, an empty required argument, a mismatched row shape or
// an unknown replace kind. It is never worth retrying.
type ValidationError struct {
	msg string
}

// Error returns the error string.
func (e *ValidationError) Error() string {
	return "dbal: " + e.msg
}

// Validationf returns a new ValidationError with a formatted message.
func Validationf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether the error is a ValidationError.
func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

// UniqueConstraintError is returned when a write violates a unique
// constraint. Constraint and Values are populated when the driver error
// carries a parseable signature.
type UniqueConstraintError struct {
	Constraint string
	Values     []string
	Err        error
}

// Error returns the error string.
func (e *UniqueConstraintError) Error() string {
	return fmt.Sprintf("dbal: unique constraint %q violated for values: %s",
		e.Constraint, strings.Join(e.Values, ", "))
}

// Unwrap returns the original driver error.
func (e *UniqueConstraintError) Unwrap() error {
	return e.Err
}

// CheckConstraintError is returned when a write violates a check
// constraint.
type CheckConstraintError struct {
	Constraint string
	Err        error
}

// Error returns the error string.
func (e *CheckConstraintError) Error() string {
	return fmt.Sprintf("dbal: check constraint %q violated", e.Constraint)
}

// Unwrap returns the original driver error.
func (e *CheckConstraintError) Unwrap() error {
	return e.Err
}

// WriteError wraps any execution failure that does not match a known
// constraint-violation signature.
type WriteError struct {
	Err error
}

// Error returns the error string.
func (e *WriteError) Error() string {
	return "dbal: write failed: " + e.Err.Error()
}

// Unwrap returns the original driver error.
func (e *WriteError) Unwrap() error {
	return e.Err
}

// MySQL error numbers used for classification.
const (
	mysqlDupEntry         = 1062
	mysqlCheckViolation   = 3819
	mariadbCheckViolation = 4025
)

// PostgreSQL SQLSTATE codes used for classification.
const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
)

var (
	mysqlDupEntryRe = regexp.MustCompile(`Duplicate entry '(.*?)' for key '(?:.*?\.)?(.*?)'`)
	mysqlCheckRe    = regexp.MustCompile(`Check constraint '(.*?)' is violated`)
	pgDetailRe      = regexp.MustCompile(`Key \((.*?)\)=\((.*?)\)`)
)

// Classify maps a native driver error onto the engine's error taxonomy.
// Context cancellation passes through untouched so callers can still
// detect it with errors.Is. Errors that carry no recognizable signature
// degrade to WriteError rather than being misclassified.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlDupEntry:
			if m := mysqlDupEntryRe.FindStringSubmatch(myErr.Message); m != nil {
				return &UniqueConstraintError{
					Constraint: m[2],
					Values:     strings.Split(m[1], "-"),
					Err:        err,
				}
			}
			return &WriteError{Err: err}
		case mysqlCheckViolation, mariadbCheckViolation:
			ce := &CheckConstraintError{Err: err}
			if m := mysqlCheckRe.FindStringSubmatch(myErr.Message); m != nil {
				ce.Constraint = m[1]
			}
			return ce
		default:
			return &WriteError{Err: err}
		}
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pgUniqueViolation:
			ue := &UniqueConstraintError{Constraint: pqErr.Constraint, Err: err}
			if m := pgDetailRe.FindStringSubmatch(pqErr.Detail); m != nil {
				ue.Values = splitTrimmed(m[2])
			}
			return ue
		case pgCheckViolation:
			return &CheckConstraintError{Constraint: pqErr.Constraint, Err: err}
		default:
			return &WriteError{Err: err}
		}
	}

	return &WriteError{Err: err}
}

func splitTrimmed(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
