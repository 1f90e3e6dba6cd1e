package seed

import (
	"bookledger/domain"
	"bookledger/store"
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	products := Defaults()
	if len(products) != 5 {
		t.Fatalf("expected 5 seed products, got %d", len(products))
	}
	for _, p := range products {
		if err := domain.ValidateProduct(p); err != nil {
			t.Errorf("seed product %q invalid: %v", p.Title, err)
		}
		if p.InitialQuantity != p.QuantityInStock {
			t.Errorf("seed product %q: initial quantity %d != stock %d",
				p.Title, p.InitialQuantity, p.QuantityInStock)
		}
	}
}

func TestApply(t *testing.T) {
	ctx := context.Background()

	t.Run("registers every product", func(t *testing.T) {
		s := store.NewInMemoryStore()
		if err := Apply(ctx, s, Defaults()); err != nil {
			t.Fatalf("apply failed: %v", err)
		}
		out, err := s.List(ctx, domain.ListFilter{})
		if err != nil || len(out) != 5 {
			t.Fatalf("expected 5 products after seeding, got %d (err %v)", len(out), err)
		}
	})

	t.Run("stops at first duplicate", func(t *testing.T) {
		s := store.NewInMemoryStore()
		if err := Apply(ctx, s, Defaults()); err != nil {
			t.Fatalf("apply failed: %v", err)
		}
		if err := Apply(ctx, s, Defaults()); !domain.IsDuplicateProductError(err) {
			t.Fatalf("expected DuplicateProductError on re-seed, got %v", err)
		}
	})
}

func TestLoadFile(t *testing.T) {
	t.Run("JSON array", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "seed.json")
		data := `[
  {"title": "A", "author": "AA", "category": "C", "price": 1.5, "quantity_in_stock": 3, "initial_quantity": 3},
  {"title": "B", "author": "BB", "category": "C", "price": 2.5, "quantity_in_stock": 4, "initial_quantity": 4}
]`
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
		products, err := LoadFile(path)
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if len(products) != 2 || products[0].Title != "A" || products[1].Price != 2.5 {
			t.Fatalf("unexpected products: %+v", products)
		}
	})

	t.Run("NDJSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "seed.ndjson")
		data := "{\"title\":\"N1\",\"price\":1,\"quantity_in_stock\":1}\n{\"title\":\"N2\",\"price\":2,\"quantity_in_stock\":2}\n"
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
		products, err := LoadFile(path)
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if len(products) != 2 || products[1].Title != "N2" {
			t.Fatalf("unexpected products: %+v", products)
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		if err := os.WriteFile(path, []byte("this is not json"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadFile(path); err == nil {
			t.Fatal("expected error for invalid JSON")
		}
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.json")
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadFile(path); err == nil {
			t.Fatal("expected error for empty file")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
			t.Fatal("expected error for missing file")
		}
	})
}
