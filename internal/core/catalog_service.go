package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// CatalogItem is a sellable item. The catalog is read-only from the ledger's
// perspective; stock maintenance happens upstream.
type CatalogItem struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	StockQuantity int             `json:"stock_quantity"`
	ReorderLevel  int             `json:"reorder_level"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CatalogService exposes the item catalog and the low-stock alert view.
type CatalogService interface {
	ListItems(ctx context.Context) ([]CatalogItem, error)
	// LowStock returns items whose stock has fallen to or below their reorder
	// level, for the dashboard alert widget.
	LowStock(ctx context.Context) ([]CatalogItem, error)
	// ItemPriceTx returns the current unit price of an item inside the
	// caller's transaction. Used to capture a point-in-time price when an
	// order line omits one.
	ItemPriceTx(ctx context.Context, tx pgx.Tx, itemID int) (decimal.Decimal, error)
}

type catalogService struct {
	pool *pgxpool.Pool
}

func NewCatalogService(pool *pgxpool.Pool) CatalogService {
	return &catalogService{pool: pool}
}

func (s *catalogService) ListItems(ctx context.Context) ([]CatalogItem, error) {
	return s.queryItems(ctx, "")
}

func (s *catalogService) LowStock(ctx context.Context) ([]CatalogItem, error) {
	return s.queryItems(ctx, "WHERE stock_quantity <= reorder_level")
}

func (s *catalogService) queryItems(ctx context.Context, where string) ([]CatalogItem, error) {
	rows, err := s.pool.Query(ctx, fmt.Sprintf(`
		SELECT id, name, unit_price, stock_quantity, reorder_level, created_at
		FROM items
		%s
		ORDER BY name`, where))
	if err != nil {
		return nil, persistenceError("failed to query items", err)
	}
	defer rows.Close()

	var items []CatalogItem
	for rows.Next() {
		var it CatalogItem
		if err := rows.Scan(&it.ID, &it.Name, &it.UnitPrice, &it.StockQuantity, &it.ReorderLevel, &it.CreatedAt); err != nil {
			return nil, persistenceError("failed to scan item", err)
		}
		items = append(items, it)
	}
	if rows.Err() != nil {
		return nil, persistenceError("failed to read items", rows.Err())
	}
	return items, nil
}

func (s *catalogService) ItemPriceTx(ctx context.Context, tx pgx.Tx, itemID int) (decimal.Decimal, error) {
	var price decimal.Decimal
	err := tx.QueryRow(ctx, "SELECT unit_price FROM items WHERE id = $1", itemID).Scan(&price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, Errorf(KindNotFound, "item %d not found", itemID)
		}
		return decimal.Zero, persistenceError("failed to resolve item price", err)
	}
	return price, nil
}
