package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/klimatech/storefront/internal/pricelist/domain"
	"go.uber.org/zap"
)

func newTestService(t *testing.T, contents string) *Service {
	t.Helper()

	path := filepath.Join(t.TempDir(), "price.json")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write price list: %v", err)
	}
	return &Service{path: path, log: zap.NewNop()}
}

const samplePriceList = `[
  {"Discount": 0, "Version": 3},
  {"category": "Installation", "items": [
    {"service": "Split system install", "price": 8000},
    {"service": "Dismantling", "price": 3000}
  ]},
  {"category": "Maintenance", "items": [
    {"service": "Refill", "price": 2500}
  ], "note": "Prices before site survey"}
]`

func TestGetParsesSentinelAndCategories(t *testing.T) {
	svc := newTestService(t, samplePriceList)

	list, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("failed to load price list: %v", err)
	}
	if list.Discount != 0 {
		t.Fatalf("expected discount 0, got %v", list.Discount)
	}
	if list.Version != 3 {
		t.Fatalf("expected version 3, got %v", list.Version)
	}
	if len(list.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(list.Categories))
	}
	if list.Categories[1].Note == "" {
		t.Fatal("expected note to survive the round trip")
	}
}

func TestGetMalformedDocument(t *testing.T) {
	for name, contents := range map[string]string{
		"not an array": `{"Discount": 0}`,
		"empty array":  `[]`,
		"bad category": `[{"Discount": 0}, 42]`,
	} {
		svc := newTestService(t, contents)
		if _, err := svc.Get(context.Background()); err != domain.ErrMalformed {
			t.Fatalf("%s: expected ErrMalformed, got %v", name, err)
		}
	}
}

func TestSetDiscountBumpsVersionAndRewritesFile(t *testing.T) {
	svc := newTestService(t, samplePriceList)

	if err := svc.SetDiscount(context.Background(), 15); err != nil {
		t.Fatalf("failed to set discount: %v", err)
	}

	list, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("failed to reload price list: %v", err)
	}
	if list.Discount != 15 {
		t.Fatalf("expected discount 15, got %v", list.Discount)
	}
	if list.Version != 4 {
		t.Fatalf("expected version 4, got %v", list.Version)
	}

	raw, err := os.ReadFile(svc.path)
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		t.Fatalf("rewritten file is not a JSON array: %v", err)
	}
	var meta sentinel
	if err := json.Unmarshal(elements[0], &meta); err != nil {
		t.Fatalf("failed to parse sentinel: %v", err)
	}
	if meta.Discount != 15 || meta.Version != 4 {
		t.Fatalf("expected sentinel {15 4}, got %+v", meta)
	}
}

func TestSetDiscountRecomputesItemPrices(t *testing.T) {
	svc := newTestService(t, samplePriceList)

	if err := svc.SetDiscount(context.Background(), 10); err != nil {
		t.Fatalf("failed to set discount: %v", err)
	}

	list, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("failed to reload price list: %v", err)
	}
	item := list.Categories[0].Items[0]
	if item.Price != 7200 || item.OldPrice != 8000 {
		t.Fatalf("expected discounted item {7200 8000}, got %+v", item)
	}

	// A second change rebases from the original price instead of
	// compounding.
	if err := svc.SetDiscount(context.Background(), 25); err != nil {
		t.Fatalf("failed to change discount: %v", err)
	}
	list, err = svc.Get(context.Background())
	if err != nil {
		t.Fatalf("failed to reload price list: %v", err)
	}
	item = list.Categories[0].Items[0]
	if item.Price != 6000 || item.OldPrice != 8000 {
		t.Fatalf("expected rebased item {6000 8000}, got %+v", item)
	}

	if err := svc.SetDiscount(context.Background(), 0); err != nil {
		t.Fatalf("failed to clear discount: %v", err)
	}
	list, err = svc.Get(context.Background())
	if err != nil {
		t.Fatalf("failed to reload price list: %v", err)
	}
	item = list.Categories[0].Items[0]
	if item.Price != 8000 || item.OldPrice != 0 {
		t.Fatalf("expected restored base price, got %+v", item)
	}
}

func TestSetDiscountRejectsNegative(t *testing.T) {
	svc := newTestService(t, samplePriceList)

	if err := svc.SetDiscount(context.Background(), -5); err != domain.ErrInvalidDiscount {
		t.Fatalf("expected ErrInvalidDiscount, got %v", err)
	}
}

func TestApplyDiscount(t *testing.T) {
	categories := []domain.Category{{
		Category: "Installation",
		Items:    []domain.Item{{Service: "Split system install", Price: 8000}},
	}}

	out, err := domain.ApplyDiscount(categories, 10)
	if err != nil {
		t.Fatalf("failed to apply discount: %v", err)
	}
	item := out[0].Items[0]
	if item.Price != 7200 {
		t.Fatalf("expected discounted price 7200, got %v", item.Price)
	}
	if item.OldPrice != 8000 {
		t.Fatalf("expected old price 8000, got %v", item.OldPrice)
	}

	out, err = domain.ApplyDiscount(categories, 0)
	if err != nil {
		t.Fatalf("failed to apply zero discount: %v", err)
	}
	item = out[0].Items[0]
	if item.Price != 8000 || item.OldPrice != 0 {
		t.Fatalf("expected base price with no old price, got %+v", item)
	}

	if _, err := domain.ApplyDiscount(categories, -1); err != domain.ErrInvalidDiscount {
		t.Fatalf("expected ErrInvalidDiscount, got %v", err)
	}
}

func TestApplyDiscountRebasesFromOldPrice(t *testing.T) {
	categories := []domain.Category{{
		Category: "Installation",
		Items:    []domain.Item{{Service: "Split system install", Price: 7200, OldPrice: 8000}},
	}}

	out, err := domain.ApplyDiscount(categories, 25)
	if err != nil {
		t.Fatalf("failed to apply discount: %v", err)
	}
	item := out[0].Items[0]
	if item.Price != 6000 || item.OldPrice != 8000 {
		t.Fatalf("expected {6000 8000}, got %+v", item)
	}

	out, err = domain.ApplyDiscount(categories, 0)
	if err != nil {
		t.Fatalf("failed to clear discount: %v", err)
	}
	item = out[0].Items[0]
	if item.Price != 8000 || item.OldPrice != 0 {
		t.Fatalf("expected restored base price, got %+v", item)
	}
}

func TestGetReturnsIsolatedCopy(t *testing.T) {
	svc := newTestService(t, samplePriceList)

	list, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("failed to load price list: %v", err)
	}
	list.Categories[0].Items[0].Price = 1
	list.Categories[0].Category = "mutated"

	fresh, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("failed to reload price list: %v", err)
	}
	if fresh.Categories[0].Items[0].Price != 8000 {
		t.Fatalf("expected cached price untouched, got %v", fresh.Categories[0].Items[0].Price)
	}
	if fresh.Categories[0].Category != "Installation" {
		t.Fatalf("expected cached category untouched, got %q", fresh.Categories[0].Category)
	}
}

func TestCloseStopsWatcher(t *testing.T) {
	svc := newTestService(t, samplePriceList)

	if err := svc.close(); err != nil {
		t.Fatalf("expected close without a watcher to be a no-op, got %v", err)
	}

	if err := svc.watch(); err != nil {
		t.Fatalf("failed to start watcher: %v", err)
	}
	if err := svc.close(); err != nil {
		t.Fatalf("failed to close watcher: %v", err)
	}
	if svc.watcher != nil {
		t.Fatal("expected watcher reference to be cleared")
	}
}
