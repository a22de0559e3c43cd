package placeholder

import (
	"testing"

	"github.com/alexk136/dbal-manager/dialect"
)

func TestQuestionMark(t *testing.T) {
	s := ForDialect(dialect.MySQL)
	for i := 0; i < 3; i++ {
		if got := s.Next(); got != "?" {
			t.Fatalf("Next() = %q, want ?", got)
		}
	}
}

func TestDollar(t *testing.T) {
	s := ForDialect(dialect.Postgres)
	for i, want := range []string{"$1", "$2", "$3"} {
		if got := s.Next(); got != want {
			t.Fatalf("Next() #%d = %q, want %q", i, got, want)
		}
	}

	// Each statement gets a fresh counter.
	if got := ForDialect(dialect.Postgres).Next(); got != "$1" {
		t.Errorf("fresh strategy Next() = %q, want $1", got)
	}
}
