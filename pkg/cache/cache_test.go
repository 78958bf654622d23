package cache

import (
	"context"
	"os"
	"path/filepath"
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

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache_GetSet(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("<eveapi/>"), time.Hour); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	data, ok, err := c.Get(ctx, "key")
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v; want hit", ok, err)
	}
	if string(data) != "<eveapi/>" {
		t.Errorf("Get() data = %q, want %q", data, "<eveapi/>")
	}

	_, ok, err = c.Get(ctx, "missing")
	if err != nil || ok {
		t.Errorf("Get(missing) = %v, %v; want miss", ok, err)
	}
}

func TestFileCache_Expiration(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "key", []byte("value"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	_, ok, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if ok {
		t.Error("Get() returned hit for expired key")
	}
}

func TestFileCache_NoTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "key"); !ok {
		t.Error("entry without TTL should be a hit")
	}
}

func TestFileCache_CorruptEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	path := c.path("key")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, ok, err := c.Get(ctx, "key")
	if err != nil || ok {
		t.Errorf("Get() = %v, %v; want miss", ok, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestFileCache_DeleteAndClear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), time.Hour); err != nil {
			t.Fatalf("Set(%s) failed: %v", k, err)
		}
	}

	if err := c.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if err := c.Delete(ctx, "a"); err != nil {
		t.Errorf("Delete() of missing key error: %v", err)
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if n != 2 {
		t.Errorf("Clear() removed %d entries, want 2", n)
	}
	entries, _ := os.ReadDir(c.Dir())
	if len(entries) != 0 {
		t.Errorf("cache dir has %d entries after Clear, want 0", len(entries))
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	url := "https://api.eveonline.com/char/AccountBalance.xml.aspx?keyID=1&vCode=secret&characterID=2"
	key := k.ResponseKey("eveapi", url)

	if !strings.HasPrefix(key, "resp:eveapi:") {
		t.Errorf("ResponseKey prefix unexpected: %s", key)
	}
	if strings.Contains(key, "secret") {
		t.Error("ResponseKey must not contain the raw URL")
	}
	if key != k.ResponseKey("eveapi", url) {
		t.Error("ResponseKey should be deterministic")
	}
	if key == k.ResponseKey("crest", url) {
		t.Error("Different namespaces should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "sisi:")

	key := scoped.ResponseKey("eveapi", "https://example.com")
	if !strings.HasPrefix(key, "sisi:resp:eveapi:") {
		t.Errorf("ScopedKeyer ResponseKey should be prefixed: %s", key)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.ResponseKey("test", "u")
	if !strings.HasPrefix(key, "prefix:resp:test:") {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}
