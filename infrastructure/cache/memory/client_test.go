package memory

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryCache_SetGet(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	if err := cache.Set(ctx, "tts:abc", []byte("mp3"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := cache.Get(ctx, "tts:abc")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "mp3" {
		t.Errorf("Get = %q, want mp3", got)
	}
}

func TestMemoryCache_Miss(t *testing.T) {
	got, err := NewMemoryCache().Get(context.Background(), "missing")
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("err = %v, want ErrCacheMiss", err)
	}
	if got != nil {
		t.Error("miss should return nil value")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	_ = cache.Set(ctx, "short", []byte("v"), 10*time.Millisecond)
	_ = cache.Set(ctx, "forever", []byte("v"), 0)
	time.Sleep(30 * time.Millisecond)

	if _, err := cache.Get(ctx, "short"); err == nil {
		t.Error("expired key should miss")
	}
	if _, err := cache.Get(ctx, "forever"); err != nil {
		t.Errorf("zero TTL should not expire: %v", err)
	}
}

func TestMemoryCache_ReturnsCopies(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	value := []byte("audio")
	_ = cache.Set(ctx, "k", value, time.Hour)
	value[0] = 'X'

	got, _ := cache.Get(ctx, "k")
	got[1] = 'Y'

	again, _ := cache.Get(ctx, "k")
	if string(again) != "audio" {
		t.Errorf("stored value mutated: %q", again)
	}
}

func TestMemoryCache_OverwriteAndDelete(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	_ = cache.Set(ctx, "k", []byte("one"), time.Hour)
	_ = cache.Set(ctx, "k", []byte("two"), time.Hour)
	if got, _ := cache.Get(ctx, "k"); string(got) != "two" {
		t.Errorf("Get = %q, want two", got)
	}
	if cache.Len() != 1 {
		t.Errorf("Len = %d, want 1", cache.Len())
	}

	if err := cache.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := cache.Delete(ctx, "k"); err != nil {
		t.Errorf("deleting a missing key should succeed: %v", err)
	}
	if _, err := cache.Get(ctx, "k"); err == nil {
		t.Error("deleted key should miss")
	}
}

func TestMemoryCache_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cache := NewMemoryCache()
	if err := cache.Set(ctx, "k", []byte("v"), 0); !errors.Is(err, context.Canceled) {
		t.Errorf("Set err = %v", err)
	}
	if _, err := cache.Get(ctx, "k"); !errors.Is(err, context.Canceled) {
		t.Errorf("Get err = %v", err)
	}
}
