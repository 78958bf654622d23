//go:build integration

package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestRedisCache_Integration(t *testing.T) {
	addr := os.Getenv("EVEKIT_REDIS_ADDR")
	if addr == "" {
		t.Skip("EVEKIT_REDIS_ADDR not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := DialRedis(ctx, addr)
	if err != nil {
		t.Fatalf("DialRedis() error: %v", err)
	}
	defer c.Close()

	key := "test:" + Hash([]byte(t.Name()))
	defer c.Delete(ctx, key)

	if _, ok, err := c.Get(ctx, key); err != nil || ok {
		t.Fatalf("Get() before Set = %v, %v; want miss", ok, err)
	}
	if err := c.Set(ctx, key, []byte("value"), time.Minute); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	data, ok, err := c.Get(ctx, key)
	if err != nil || !ok || string(data) != "value" {
		t.Fatalf("Get() = %q, %v, %v; want value", data, ok, err)
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, ok, _ := c.Get(ctx, key); ok {
		t.Error("Get() after Delete should miss")
	}
}
