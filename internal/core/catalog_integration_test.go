package core_test

import (
	"context"
	"testing"

	"invoicing-backend/internal/core"

	"github.com/shopspring/decimal"
)

func TestCatalogService_ListItems(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	catalog := core.NewCatalogService(pool)
	items, err := catalog.ListItems(context.Background())
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(items))
	}
	// Sorted by name: Gizmo, Premium Kit, Widget.
	if items[0].Name != "Gizmo" || items[2].Name != "Widget" {
		t.Errorf("Unexpected ordering: %q ... %q", items[0].Name, items[2].Name)
	}
	if !items[2].UnitPrice.Equal(decimal.NewFromInt(10)) {
		t.Errorf("Expected Widget at 10.00, got %s", items[2].UnitPrice)
	}
}

func TestCatalogService_LowStock(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	catalog := core.NewCatalogService(pool)
	low, err := catalog.LowStock(context.Background())
	if err != nil {
		t.Fatalf("LowStock failed: %v", err)
	}

	// Gizmo (3 of 10) and Premium Kit (0 of 2) are at or below reorder level;
	// Widget (50 of 5) is not.
	if len(low) != 2 {
		t.Fatalf("Expected 2 low-stock items, got %d", len(low))
	}
	for _, it := range low {
		if it.StockQuantity > it.ReorderLevel {
			t.Errorf("Item %q is not low on stock (%d > %d)", it.Name, it.StockQuantity, it.ReorderLevel)
		}
	}
}
