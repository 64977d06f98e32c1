package cache

import (
	"context"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	ctx := context.Background()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("Get(missing) = hit %v, err %v; want miss", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("payload"), 0); err != nil {
		t.Fatal(err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit {
		t.Fatalf("Get after Set = hit %v, err %v", hit, err)
	}
	if string(data) != "payload" {
		t.Errorf("data = %q, want %q", data, "payload")
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Errorf("entry survived Delete")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("deleting a missing key should not error: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), -time.Second); err != nil {
		t.Fatal(err)
	}
	// Negative ttl is treated as "no expiration" per Set's contract (ttl > 0
	// guards). Expired entries need a positive ttl in the past, so write one
	// manually through a tiny ttl and wait it out.
	if err := c.Set(ctx, "short", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Errorf("expired entry still served")
	}
}

func TestNullCacheNeverHits(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); err != nil || hit {
		t.Errorf("null cache returned a hit")
	}
}

func TestLayoutKeyChangesWithOptions(t *testing.T) {
	input := []byte(`{"nodes":[]}`)
	a := LayoutKey(input, LayoutKeyOpts{Orientation: "top-down"})
	b := LayoutKey(input, LayoutKeyOpts{Orientation: "left-right"})
	if a == b {
		t.Errorf("orientation did not affect cache key")
	}
	if a != LayoutKey(input, LayoutKeyOpts{Orientation: "top-down"}) {
		t.Errorf("key not deterministic")
	}
	if LayoutKey([]byte("other"), LayoutKeyOpts{Orientation: "top-down"}) == a {
		t.Errorf("input bytes did not affect cache key")
	}
}
