package sqlbuilder

import (
	"testing"

	dbal "github.com/alexk136/dbal-manager"
	"github.com/alexk136/dbal-manager/dialect"
	"github.com/alexk136/dbal-manager/param"
)

func TestNewUnknownDialect(t *testing.T) {
	_, err := New(dialect.Dialect(99), DefaultFieldNames())
	if !dbal.IsValidation(err) {
		t.Errorf("New() error = %v, want validation error", err)
	}
}

func TestValidIdentifier(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
	}{
		{"users", true},
		{"_private", true},
		{"col_2", true},
		{"", false},
		{"2col", false},
		{"users; DROP TABLE", false},
		{"na`me", false},
		{`na"me`, false},
	}

	for _, tt := range tests {
		if got := validIdentifier(tt.name); got != tt.ok {
			t.Errorf("validIdentifier(%q) = %v, want %v", tt.name, got, tt.ok)
		}
	}
}

func TestShapeFingerprint(t *testing.T) {
	plain := []param.Row{
		{{Column: "id", Value: param.Of(1)}, {Column: "name", Value: param.Of("a")}},
	}
	withDefault := []param.Row{
		{{Column: "id", Value: param.Default()}, {Column: "name", Value: param.Of("a")}},
	}
	otherValues := []param.Row{
		{{Column: "id", Value: param.Of(99)}, {Column: "name", Value: param.Of("zzz")}},
	}

	if shapeFingerprint(plain) != shapeFingerprint(otherValues) {
		t.Error("fingerprint must not depend on values")
	}
	if shapeFingerprint(plain) == shapeFingerprint(withDefault) {
		t.Error("fingerprint must distinguish DEFAULT cells")
	}
}

func TestAugmentReplaceFields(t *testing.T) {
	names := FieldNames{UpdatedAt: "updated_at"}

	got := augmentReplaceFields([]ReplaceField{{Column: "name", Kind: Replace}}, names)
	if len(got) != 2 || got[1].Column != "updated_at" || got[1].Kind != Replace {
		t.Errorf("augmentReplaceFields() = %v, want updated_at appended", got)
	}

	// Already present: unchanged.
	in := []ReplaceField{{Column: "updated_at", Kind: Condition, Condition: "NOW()"}}
	got = augmentReplaceFields(in, names)
	if len(got) != 1 {
		t.Errorf("augmentReplaceFields() should not duplicate the role column, got %v", got)
	}

	// Role disabled: unchanged.
	got = augmentReplaceFields([]ReplaceField{{Column: "name", Kind: Replace}}, FieldNames{})
	if len(got) != 1 {
		t.Errorf("augmentReplaceFields() with no role should be a no-op, got %v", got)
	}
}
