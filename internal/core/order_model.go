package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the sales order state. Transitions are monotonic:
//
//	open → closed
//	open → cancelled
//
// closed and cancelled are terminal.
type OrderStatus string

const (
	StatusOpen      OrderStatus = "open"
	StatusClosed    OrderStatus = "closed"
	StatusCancelled OrderStatus = "cancelled"
)

// SalesOrder is an order header with its line items. Orders are append-only
// history: they are never deleted, and lines never change after creation.
type SalesOrder struct {
	ID             int              `json:"id"`
	OwnerUserID    int              `json:"owner_user_id"`
	OrganizationID *int             `json:"organization_id,omitempty"`
	ContactID      int              `json:"contact_id"`
	ContactName    string           `json:"contact_name"` // joined from contacts
	Code           string           `json:"code"`
	Status         OrderStatus      `json:"status"`
	Notes          string           `json:"notes"`
	Subtotal       decimal.Decimal  `json:"subtotal"`
	Lines          []SalesOrderLine `json:"lines,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	ClosedAt       *time.Time       `json:"closed_at,omitempty"`
	CancelledAt    *time.Time       `json:"cancelled_at,omitempty"`
}

// SalesOrderLine is one item/quantity/price entry. UnitPrice is a
// point-in-time capture, independent of later catalog price changes.
type SalesOrderLine struct {
	ID        int             `json:"id"`
	OrderID   int             `json:"order_id"`
	ItemID    int             `json:"item_id"`
	ItemName  string          `json:"item_name"` // joined from items
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// OrderLineInput is a single line of a new order. A nil UnitPrice means
// "capture the item's current catalog price".
type OrderLineInput struct {
	ItemID    int
	Quantity  int
	UnitPrice *decimal.Decimal
}
