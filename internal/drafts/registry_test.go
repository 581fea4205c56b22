package drafts

import (
	"testing"

	"github.com/maisonvela/storefront-backend/pkg/kv"
)

func TestRegistryRequiresDurableStore(t *testing.T) {
	t.Parallel()

	if _, err := NewRegistry(nil, nil, nil); err == nil {
		t.Fatal("expected error for nil durable store")
	}
}

func TestRegistryReturnsSameStorePerForm(t *testing.T) {
	t.Parallel()

	registry, err := NewRegistry(kv.NewMemoryStore(), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a, err := registry.ForForm("product_new")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := registry.ForForm("product_new")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != b {
		t.Fatal("expected the same store for one form id")
	}
	if !a.Enabled() {
		t.Fatal("registry stores start enabled")
	}

	other, err := registry.ForForm("product_7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if other == a {
		t.Fatal("expected distinct stores per form id")
	}
}

func TestRegistryRejectsBlankFormID(t *testing.T) {
	t.Parallel()

	registry, err := NewRegistry(kv.NewMemoryStore(), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := registry.ForForm("  "); err == nil {
		t.Fatal("expected error for blank form id")
	}
}
