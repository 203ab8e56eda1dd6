package cache

import (
	"context"
	"testing"
	"time"
)

func TestStore_SetGetDelete(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()

	if _, ok := store.Get(ctx, "k"); ok {
		t.Fatal("expected miss on empty store")
	}

	store.Set(ctx, "k", 42)
	got, ok := store.Get(ctx, "k")
	if !ok || got != 42 {
		t.Fatalf("expected 42, got %v ok=%v", got, ok)
	}

	store.Delete(ctx, "k")
	if _, ok := store.Get(ctx, "k"); ok {
		t.Fatal("expected miss after delete")
	}
}

func TestStore_EmptyKeyIsNoop(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()

	store.Set(ctx, "", "value")
	if _, ok := store.Get(ctx, ""); ok {
		t.Fatal("empty key must never hit")
	}
}

func TestStore_Expiry(t *testing.T) {
	t.Parallel()

	store := NewStore(10 * time.Millisecond)
	ctx := context.Background()

	store.Set(ctx, "k", "v")
	time.Sleep(25 * time.Millisecond)

	if _, ok := store.Get(ctx, "k"); ok {
		t.Fatal("expected expired entry to miss")
	}
}

func TestStore_NonPositiveTTLNeverExpires(t *testing.T) {
	t.Parallel()

	store := NewStore(0)
	ctx := context.Background()

	store.Set(ctx, "k", "v")
	time.Sleep(10 * time.Millisecond)

	if _, ok := store.Get(ctx, "k"); !ok {
		t.Fatal("entry must survive with expiry disabled")
	}
}
