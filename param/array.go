package param

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexk136/dbal-manager/dialect"
)

// SerializeArray renders a native sequence into the literal text form
// the target dialect expects: a brace-delimited array literal for
// PostgreSQL, compact JSON otherwise. Numeric members on PostgreSQL are
// formatted with six fixed decimal places; string members are wrapped in
// double quotes with internal quotes backslash-escaped.
func SerializeArray(v any, d dialect.Dialect) (string, error) {
	if d != dialect.Postgres {
		b, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("serialize array: %w", err)
		}
		return string(b), nil
	}

	elems, err := elements(v)
	if err != nil {
		return "", err
	}
	parts := make([]string, len(elems))
	for i, e := range elems {
		parts[i], err = pgElement(e)
		if err != nil {
			return "", err
		}
	}
	return "{" + strings.Join(parts, ",") + "}", nil
}

// elements widens the supported concrete slice types to []any.
func elements(v any) ([]any, error) {
	switch s := v.(type) {
	case []any:
		return s, nil
	case []string:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, nil
	case []int:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, nil
	case []int32:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, nil
	case []int64:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, nil
	case []float32:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, nil
	case []float64:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, nil
	default:
		return nil, fmt.Errorf("serialize array: unsupported sequence type %T", v)
	}
}

func pgElement(e any) (string, error) {
	switch v := e.(type) {
	case int:
		return formatNumeric(float64(v)), nil
	case int32:
		return formatNumeric(float64(v)), nil
	case int64:
		return formatNumeric(float64(v)), nil
	case float32:
		return formatNumeric(float64(v)), nil
	case float64:
		return formatNumeric(v), nil
	case string:
		return escapePostgresString(v), nil
	default:
		return "", fmt.Errorf("serialize array: unsupported element type %T", e)
	}
}

// formatNumeric renders a number with six fixed decimal places and no
// thousands separator.
func formatNumeric(f float64) string {
	return strconv.FormatFloat(f, 'f', 6, 64)
}

// escapePostgresString wraps a string member in double quotes, escaping
// internal quotes with a backslash.
func escapePostgresString(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
