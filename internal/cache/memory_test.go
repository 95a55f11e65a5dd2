package cache

import (
	"testing"
	"time"
)

func newMemoryTestCache(t *testing.T, size int, onEvict EvictCallback) Cache {
	t.Helper()
	c, err := New("memory", ProviderConfig{Size: size, TTL: time.Hour, OnEvict: onEvict})
	if err != nil {
		t.Fatalf("New memory cache: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestMemoryCache_GetSet(t *testing.T) {
	c := newMemoryTestCache(t, 10, nil)

	if val, ok := c.Get("shows"); ok || val != nil {
		t.Fatalf("Expected miss for shows, got %v %v", val, ok)
	}

	c.Set("shows", []byte(`[{"id":1}]`))
	val, ok := c.Get("shows")
	if !ok {
		t.Fatal("Expected hit for shows")
	}
	if string(val) != `[{"id":1}]` {
		t.Fatalf("Unexpected value %s", string(val))
	}
}

func TestMemoryCache_ContainsAndLen(t *testing.T) {
	c := newMemoryTestCache(t, 10, nil)

	if c.Contains("episodes:1") {
		t.Fatal("Expected absent key to not be contained")
	}
	c.Set("episodes:1", []byte("[]"))
	c.Set("episodes:2", []byte("[]"))
	if !c.Contains("episodes:1") {
		t.Fatal("Expected present key to be contained")
	}
	if c.Len() != 2 {
		t.Fatalf("Expected Len 2, got %d", c.Len())
	}

	c.Set("episodes:1", []byte("[1]"))
	if c.Len() != 2 {
		t.Fatalf("Expected overwrite to keep Len 2, got %d", c.Len())
	}
}

func TestMemoryCache_Eviction(t *testing.T) {
	var evicted []string
	c := newMemoryTestCache(t, 2, func(key string, _ []byte) {
		evicted = append(evicted, key)
	})

	c.Set("a", []byte("1"))
	c.Set("b", []byte("2"))
	c.Set("c", []byte("3"))

	if len(evicted) != 1 || evicted[0] != "a" {
		t.Fatalf("Expected eviction of 'a', got %v", evicted)
	}
	if c.Contains("a") {
		t.Fatal("Evicted key 'a' should not be present")
	}
}

func TestMemoryCache_TTLExpiry(t *testing.T) {
	c, err := New("memory", ProviderConfig{Size: 10, TTL: 20 * time.Millisecond})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	c.Set("k", []byte("v"))
	time.Sleep(60 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Fatal("Expected entry to expire after TTL")
	}
}
