package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/evekit/pkg/cache"
	"github.com/matzehuels/evekit/pkg/config"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	c := New(os.Stderr, LogInfo)
	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	if !strings.HasPrefix(dir, home) {
		t.Errorf("cacheDir() = %q, should be under home %q", dir, home)
	}

	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", customCache)

	c := New(os.Stderr, LogInfo)
	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestCacheClear(t *testing.T) {
	setupEnv(t, "", "")

	// Clearing a cache that was never written is fine.
	if err := execute(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear on empty cache: %v", err)
	}

	dir, err := config.Default().ResolvedCacheDir()
	if err != nil {
		t.Fatal(err)
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, key := range []string{"resp:eveapi:a", "resp:eveapi:b"} {
		if err := fc.Set(ctx, key, []byte(`{}`), time.Hour); err != nil {
			t.Fatal(err)
		}
	}

	if err := execute(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	for _, key := range []string{"resp:eveapi:a", "resp:eveapi:b"} {
		if _, ok, _ := fc.Get(ctx, key); ok {
			t.Errorf("entry %q survived cache clear", key)
		}
	}
}

func TestCachePath(t *testing.T) {
	setupEnv(t, "", "")
	if err := execute(t, "cache", "path"); err != nil {
		t.Fatalf("cache path: %v", err)
	}
}
