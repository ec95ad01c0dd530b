package cache

import (
	"testing"
	"time"
)

func TestLRUSetGet(t *testing.T) {
	c := NewLRU(2, time.Minute)
	c.Set("a", 1, 0)

	v, ok := c.Get("a")
	if !ok || v.(int) != 1 {
		t.Fatalf("Get(a) = %v, %v; want 1, true", v, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Fatal("Get(missing) reported a hit")
	}
}

func TestLRUEviction(t *testing.T) {
	c := NewLRU(2, time.Minute)
	c.Set("a", 1, 0)
	c.Set("b", 2, 0)

	// Touch "a" so "b" becomes the eviction candidate.
	c.Get("a")
	c.Set("c", 3, 0)

	if _, ok := c.Get("b"); ok {
		t.Fatal("least recently used entry survived eviction")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatal("recently used entry was evicted")
	}
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
}

func TestLRUExpiry(t *testing.T) {
	c := NewLRU(4, time.Minute)
	c.Set("a", 1, time.Millisecond)

	time.Sleep(5 * time.Millisecond)
	if _, ok := c.Get("a"); ok {
		t.Fatal("expired entry still readable")
	}
}

func TestLRUPurge(t *testing.T) {
	c := NewLRU(4, time.Minute)
	c.Set("a", 1, 0)
	c.Set("b", 2, 0)
	c.Purge()

	if c.Len() != 0 {
		t.Fatalf("Len() after Purge = %d, want 0", c.Len())
	}
}
