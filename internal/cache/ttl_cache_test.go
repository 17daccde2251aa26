package cache

import (
	"testing"
	"time"
)

func TestTTLCacheSetGet(t *testing.T) {
	c := NewTTLCache[string, int]()

	if _, ok := c.Get("missing"); ok {
		t.Fatal("expected miss on empty cache")
	}

	c.Set("a", 7, time.Minute)
	got, ok := c.Get("a")
	if !ok || got != 7 {
		t.Fatalf("expected hit with 7, got %d ok=%v", got, ok)
	}

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Fatal("expected miss after delete")
	}
}

func TestTTLCacheExpiry(t *testing.T) {
	c := NewTTLCache[string, string]()
	c.Set("soon", "gone", time.Nanosecond)
	time.Sleep(2 * time.Millisecond)
	if _, ok := c.Get("soon"); ok {
		t.Fatal("expected expired entry to miss")
	}

	// Zero TTL never expires.
	c.Set("forever", "kept", 0)
	if _, ok := c.Get("forever"); !ok {
		t.Fatal("expected zero-TTL entry to stay")
	}
}

func TestTTLCacheFlush(t *testing.T) {
	c := NewTTLCache[int, string]()
	c.Set(1, "one", time.Minute)
	c.Set(2, "two", time.Minute)
	c.Flush()
	if _, ok := c.Get(1); ok {
		t.Fatal("expected flush to drop all entries")
	}
	if _, ok := c.Get(2); ok {
		t.Fatal("expected flush to drop all entries")
	}
}

func TestNilTTLCacheIsSafe(t *testing.T) {
	var c *TTLCache[string, int]
	if _, ok := c.Get("x"); ok {
		t.Fatal("expected nil cache to miss")
	}
	c.Set("x", 1, time.Minute)
	c.Delete("x")
	c.Flush()
}
