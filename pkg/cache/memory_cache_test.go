package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	if err := c.Set(ctx, "key", "value", time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "value" {
		t.Errorf("expected 'value', got: %s", got)
	}
}

func TestMemoryCache_MissOnAbsentKey(t *testing.T) {
	c := NewMemoryCache()

	_, err := c.Get(context.Background(), "absent")
	if !errors.Is(err, ErrMiss) {
		t.Errorf("expected ErrMiss, got: %v", err)
	}
}

func TestMemoryCache_MissAfterExpiry(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	if err := c.Set(ctx, "key", "value", -time.Second); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	_, err := c.Get(ctx, "key")
	if !errors.Is(err, ErrMiss) {
		t.Errorf("expected ErrMiss for expired key, got: %v", err)
	}
}

func TestMemoryCache_Del(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	if err := c.Set(ctx, "key", "value", time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := c.Del(ctx, "key"); err != nil {
		t.Fatalf("Del failed: %v", err)
	}

	_, err := c.Get(ctx, "key")
	if !errors.Is(err, ErrMiss) {
		t.Errorf("expected ErrMiss after Del, got: %v", err)
	}
}

func TestMemoryCache_Overwrite(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	_ = c.Set(ctx, "key", "first", time.Minute)
	_ = c.Set(ctx, "key", "second", time.Minute)

	got, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "second" {
		t.Errorf("expected 'second', got: %s", got)
	}
}
