package cache

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// DataKey distinguishes paths and contents
	dk1 := k.DataKey("cars.csv", "abc")
	dk2 := k.DataKey("cars.csv", "def")
	if dk1 == dk2 {
		t.Error("Different content hashes should produce different data keys")
	}
	if !strings.HasPrefix(dk1, "data:") {
		t.Errorf("DataKey should carry the data prefix: %s", dk1)
	}

	// PlotKey depends on both spec and data
	pk1 := k.PlotKey("spec1", "data1")
	pk2 := k.PlotKey("spec1", "data2")
	pk3 := k.PlotKey("spec2", "data1")
	if pk1 == pk2 || pk1 == pk3 {
		t.Error("PlotKey should change with either input hash")
	}

	// ArtifactKey should include render options in the hash
	ak1 := k.ArtifactKey("plot1", ArtifactKeyOpts{Format: "svg", Width: 800, Height: 600})
	ak2 := k.ArtifactKey("plot1", ArtifactKeyOpts{Format: "svg", Width: 640, Height: 480})
	if ak1 == ak2 {
		t.Error("Different ArtifactKeyOpts should produce different keys")
	}

	// Keys must be deterministic
	if ak1 != k.ArtifactKey("plot1", ArtifactKeyOpts{Format: "svg", Width: 800, Height: 600}) {
		t.Error("ArtifactKey should be deterministic")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "proj:42:")

	key := scoped.PlotKey("spec", "data")
	if !strings.HasPrefix(key, "proj:42:") {
		t.Errorf("ScopedKeyer should prefix keys: %s", key)
	}
	if strings.TrimPrefix(key, "proj:42:") != inner.PlotKey("spec", "data") {
		t.Error("ScopedKeyer should delegate to the inner keyer")
	}

	// Nil inner falls back to the default keyer
	fallback := NewScopedKeyer(nil, "p:")
	if !strings.HasPrefix(fallback.DataKey("a", "b"), "p:data:") {
		t.Error("nil inner keyer should fall back to DefaultKeyer")
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	// Miss before set
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expected miss before Set")
	}

	// Round-trip
	if err := c.Set(ctx, "k", []byte("payload"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit {
		t.Fatalf("Get after Set: hit=%v err=%v", hit, err)
	}
	if string(data) != "payload" {
		t.Errorf("Get returned %q, want payload", data)
	}

	// Expired entries are treated as misses
	if err := c.Set(ctx, "expired", []byte("old"), -time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "expired"); hit {
		t.Error("expired entry should be a miss")
	}

	// Delete removes entries; deleting again is fine
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expected miss after Delete")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete of missing key should not error: %v", err)
	}
}
