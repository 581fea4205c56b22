package cart

import (
	"testing"
	"time"

	"github.com/maisonvela/storefront-backend/pkg/kv"
)

func TestManagerRequiresDurableStore(t *testing.T) {
	t.Parallel()

	if _, err := NewManager(nil, 0, nil, nil); err == nil {
		t.Fatal("expected error for nil durable store")
	}
}

func TestManagerReturnsSameStorePerSession(t *testing.T) {
	t.Parallel()

	manager, err := NewManager(kv.NewMemoryStore(), time.Hour, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a := manager.ForSession("s1")
	b := manager.ForSession("s1")
	if a != b {
		t.Fatal("expected the same store for one session")
	}

	other := manager.ForSession("s2")
	if other == a {
		t.Fatal("expected distinct stores for distinct sessions")
	}
}

func TestManagerRestoresFromMirrorOnFirstUse(t *testing.T) {
	t.Parallel()

	durable := kv.NewMemoryStore()

	first, err := NewManager(durable, time.Hour, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first.ForSession("s1").AddItem(dressRef())

	// a fresh manager simulates a process restart over the same durable store
	second, err := NewManager(durable, time.Hour, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	restored := second.ForSession("s1")
	if got := restored.TotalItems(); got != 1 {
		t.Fatalf("expected restored cart with 1 item, got %d", got)
	}
	if got := restored.TotalPrice(); got != 2000 {
		t.Fatalf("expected restored total 2000, got %f", got)
	}
}

func TestManagerDropSessionKeepsMirror(t *testing.T) {
	t.Parallel()

	durable := kv.NewMemoryStore()
	manager, err := NewManager(durable, time.Hour, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	manager.ForSession("s1").AddItem(dressRef())
	manager.DropSession("s1")

	if got := manager.ForSession("s1").TotalItems(); got != 1 {
		t.Fatalf("expected cart restored after drop, got %d items", got)
	}
}

func TestManagerFlushAllRewritesMirrors(t *testing.T) {
	t.Parallel()

	durable := kv.NewMemoryStore()
	manager, err := NewManager(durable, time.Hour, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	manager.ForSession("s1").AddItem(dressRef())
	manager.ForSession("s2")

	if err := durable.Delete("cart:s1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := manager.FlushAll(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := durable.Get("cart:s1"); err != nil {
		t.Fatal("expected flush to rewrite the s1 mirror")
	}
}
