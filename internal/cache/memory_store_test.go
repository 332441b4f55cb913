package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/malcolmmaima/Telepesa-sub000/internal/cache"
)

func TestMemoryStoreSetGet(t *testing.T) {
	store := cache.NewMemoryStore()
	ctx := context.Background()

	if _, ok := store.Get(ctx, "missing"); ok {
		t.Fatal("expected miss for unknown key")
	}

	store.Set(ctx, "transfer:id:tr-000001", []byte(`{"id":"tr-000001"}`), time.Minute)
	value, ok := store.Get(ctx, "transfer:id:tr-000001")
	if !ok {
		t.Fatal("expected hit after set")
	}
	if string(value) != `{"id":"tr-000001"}` {
		t.Fatalf("unexpected value %q", value)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := cache.NewMemoryStore()
	ctx := context.Background()

	store.Set(ctx, "key", []byte("value"), -time.Second)
	if _, ok := store.Get(ctx, "key"); ok {
		t.Fatal("expected expired entry to miss")
	}
}

func TestMemoryStoreInvalidatePrefix(t *testing.T) {
	store := cache.NewMemoryStore()
	ctx := context.Background()

	store.Set(ctx, "transfers:sent:ACC001:p0:s20", []byte("a"), time.Minute)
	store.Set(ctx, "transfers:sent:ACC001:p1:s20", []byte("b"), time.Minute)
	store.Set(ctx, "transfers:sent:ACC002:p0:s20", []byte("c"), time.Minute)

	store.InvalidatePrefix(ctx, "transfers:sent:ACC001")

	if _, ok := store.Get(ctx, "transfers:sent:ACC001:p0:s20"); ok {
		t.Fatal("expected first page invalidated")
	}
	if _, ok := store.Get(ctx, "transfers:sent:ACC001:p1:s20"); ok {
		t.Fatal("expected second page invalidated")
	}
	if _, ok := store.Get(ctx, "transfers:sent:ACC002:p0:s20"); !ok {
		t.Fatal("expected other account untouched")
	}
}
