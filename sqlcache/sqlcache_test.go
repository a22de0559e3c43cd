package sqlcache

import (
	"strconv"
	"testing"
	"time"
)

func TestCacheRoundTrip(t *testing.T) {
	c, err := New(DefaultCapacity)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer c.Close()

	if _, ok := c.Get("missing"); ok {
		t.Error("Get() on empty cache should miss")
	}

	c.Set("users|INSERT|2|id,name;id,name", "INSERT INTO `users` ...")
	got, ok := c.Get("users|INSERT|2|id,name;id,name")
	if !ok {
		t.Fatal("Get() should hit after Set()")
	}
	if got != "INSERT INTO `users` ..." {
		t.Errorf("Get() = %q, want stored text", got)
	}
}

func TestCacheBounded(t *testing.T) {
	c, err := New(10)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer c.Close()

	for i := 0; i < 100; i++ {
		c.Set("key"+strconv.Itoa(i), "sql"+strconv.Itoa(i))
	}

	// Eviction runs asynchronously; wait for the size to settle at the
	// bound instead of reading it right after the writes.
	deadline := time.Now().Add(5 * time.Second)
	for c.Size() > 10 {
		if time.Now().After(deadline) {
			t.Fatalf("Size() = %d, want at most 10 after eviction", c.Size())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestCacheInvalidCapacity(t *testing.T) {
	defer func() {
		// MustBuilder panics on a non-positive capacity; either a panic
		// or an error is acceptable here.
		_ = recover()
	}()
	if c, err := New(0); err == nil && c != nil {
		t.Error("New(0) should not produce a usable cache")
	}
}
