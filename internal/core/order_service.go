package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// OrderService creates and lists sales orders with their lines, enforcing
// ownership scoping and header+lines atomicity.
type OrderService interface {
	// CreateOrder writes the header, all lines, and the order-created
	// notification as one unit of work. Either everything commits or nothing
	// becomes visible.
	CreateOrder(ctx context.Context, scope Scope, contactID int, notes string, lines []OrderLineInput) (*SalesOrder, error)

	// GetOrder returns one order with its lines. Orders outside the scope's
	// visibility are reported as not found.
	GetOrder(ctx context.Context, scope Scope, orderID int) (*SalesOrder, error)

	// ListOrders returns the scope's order headers, most recent first.
	// Lines are fetched per order via GetOrder.
	ListOrders(ctx context.Context, scope Scope) ([]SalesOrder, error)

	// TransitionStatus moves an open order to closed or cancelled. Terminal
	// states never leave; a non-owning scope is rejected outright.
	TransitionStatus(ctx context.Context, scope Scope, orderID int, newStatus OrderStatus) (*SalesOrder, error)
}

type orderService struct {
	pool          *pgxpool.Pool
	catalog       CatalogService
	notifications NotificationService
}

func NewOrderService(pool *pgxpool.Pool, catalog CatalogService, notifications NotificationService) OrderService {
	return &orderService{pool: pool, catalog: catalog, notifications: notifications}
}

func (s *orderService) CreateOrder(ctx context.Context, scope Scope, contactID int, notes string, lines []OrderLineInput) (*SalesOrder, error) {
	if contactID <= 0 {
		return nil, Errorf(KindValidation, "contact id is required")
	}
	if len(lines) == 0 {
		return nil, Errorf(KindValidation, "order must have at least one line")
	}
	for i, l := range lines {
		if l.Quantity <= 0 {
			return nil, Errorf(KindValidation, "line %d: quantity must be positive", i+1)
		}
		if l.UnitPrice != nil && l.UnitPrice.IsNegative() {
			return nil, Errorf(KindValidation, "line %d: price must not be negative", i+1)
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, persistenceError("failed to begin transaction", err)
	}
	defer tx.Rollback(ctx)

	// The contact must exist and belong to the same scope as the new order.
	var contactOwner int
	var contactOrg *int
	err = tx.QueryRow(ctx,
		"SELECT owner_user_id, organization_id FROM contacts WHERE id = $1",
		contactID,
	).Scan(&contactOwner, &contactOrg)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, Errorf(KindNotFound, "contact %d not found", contactID)
		}
		return nil, persistenceError("failed to resolve contact", err)
	}
	if !scope.Matches(contactOwner, contactOrg) {
		return nil, Errorf(KindNotFound, "contact %d not found", contactID)
	}

	// Capture prices and compute the subtotal before any write.
	type resolvedLine struct {
		itemID    int
		quantity  int
		unitPrice decimal.Decimal
	}
	resolved := make([]resolvedLine, 0, len(lines))
	subtotal := decimal.Zero
	for _, l := range lines {
		price := decimal.Zero
		if l.UnitPrice != nil {
			price = *l.UnitPrice
		} else {
			price, err = s.catalog.ItemPriceTx(ctx, tx, l.ItemID)
			if err != nil {
				return nil, err
			}
		}
		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(l.Quantity))))
		resolved = append(resolved, resolvedLine{itemID: l.ItemID, quantity: l.Quantity, unitPrice: price})
	}

	code, err := nextOrderCode(ctx, tx, scope)
	if err != nil {
		return nil, err
	}

	var orderID int
	err = tx.QueryRow(ctx, `
		INSERT INTO sales_orders (owner_user_id, organization_id, contact_id, custom_order_code, status, notes, subtotal)
		VALUES ($1, $2, $3, $4, 'open', $5, $6)
		RETURNING id`,
		scope.UserID, scope.OrganizationID, contactID, code, notes, subtotal,
	).Scan(&orderID)
	if err != nil {
		return nil, persistenceError("failed to insert order header", err)
	}

	// All lines go in one batch; a failure anywhere rolls back the header and
	// every line with it.
	batch := &pgx.Batch{}
	for _, rl := range resolved {
		batch.Queue(`
			INSERT INTO sales_order_items (order_id, item_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4)`,
			orderID, rl.itemID, rl.quantity, rl.unitPrice)
	}
	br := tx.SendBatch(ctx, batch)
	for i := range resolved {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return nil, persistenceError(fmt.Sprintf("failed to insert order line %d", i+1), err)
		}
	}
	if err := br.Close(); err != nil {
		return nil, persistenceError("failed to close line batch", err)
	}

	_, err = s.notifications.PublishTx(ctx, tx, NotificationInput{
		Title:     "Order created",
		Message:   fmt.Sprintf("Sales order %s (id %d) was created", code, orderID),
		Type:      "info",
		Recipient: orderRecipient(scope),
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, persistenceError("failed to commit order creation", err)
	}

	return s.GetOrder(ctx, scope, orderID)
}

func (s *orderService) GetOrder(ctx context.Context, scope Scope, orderID int) (*SalesOrder, error) {
	o, err := scanOrder(s.pool.QueryRow(ctx, orderSelect+`
		WHERE so.id = $1 AND so.owner_user_id = $2 AND so.organization_id IS NOT DISTINCT FROM $3`,
		orderID, scope.UserID, scope.OrganizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, Errorf(KindNotFound, "order %d not found", orderID)
		}
		return nil, persistenceError("failed to fetch order", err)
	}

	lines, err := fetchOrderLines(ctx, s.pool, orderID)
	if err != nil {
		return nil, err
	}
	o.Lines = lines
	return o, nil
}

func (s *orderService) ListOrders(ctx context.Context, scope Scope) ([]SalesOrder, error) {
	rows, err := s.pool.Query(ctx, orderSelect+`
		WHERE so.owner_user_id = $1 AND so.organization_id IS NOT DISTINCT FROM $2
		ORDER BY so.created_at DESC, so.id DESC`,
		scope.UserID, scope.OrganizationID)
	if err != nil {
		return nil, persistenceError("failed to query orders", err)
	}
	defer rows.Close()

	var orders []SalesOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, persistenceError("failed to scan order", err)
		}
		orders = append(orders, *o)
	}
	if rows.Err() != nil {
		return nil, persistenceError("failed to read orders", rows.Err())
	}
	return orders, nil
}

func (s *orderService) TransitionStatus(ctx context.Context, scope Scope, orderID int, newStatus OrderStatus) (*SalesOrder, error) {
	if newStatus != StatusClosed && newStatus != StatusCancelled {
		return nil, Errorf(KindInvalidTransition, "no transition to status %q", newStatus)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, persistenceError("failed to begin transaction", err)
	}
	defer tx.Rollback(ctx)

	var ownerUserID int
	var orgID *int
	var status OrderStatus
	var code string
	err = tx.QueryRow(ctx, `
		SELECT owner_user_id, organization_id, status, custom_order_code
		FROM sales_orders
		WHERE id = $1
		FOR UPDATE`,
		orderID,
	).Scan(&ownerUserID, &orgID, &status, &code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, Errorf(KindNotFound, "order %d not found", orderID)
		}
		return nil, persistenceError("failed to fetch order for update", err)
	}
	if !scope.Matches(ownerUserID, orgID) {
		return nil, Errorf(KindForbidden, "order %d is not owned by the caller", orderID)
	}
	if status != StatusOpen {
		return nil, Errorf(KindInvalidTransition, "order %d is %s; only open orders can transition", orderID, status)
	}

	stampColumn := "closed_at"
	if newStatus == StatusCancelled {
		stampColumn = "cancelled_at"
	}
	_, err = tx.Exec(ctx,
		"UPDATE sales_orders SET status = $1, "+stampColumn+" = NOW() WHERE id = $2",
		string(newStatus), orderID)
	if err != nil {
		return nil, persistenceError("failed to update order status", err)
	}

	_, err = s.notifications.PublishTx(ctx, tx, NotificationInput{
		Title:     "Order " + string(newStatus),
		Message:   fmt.Sprintf("Sales order %s (id %d) was %s", code, orderID, newStatus),
		Type:      "info",
		Recipient: orderRecipient(scope),
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, persistenceError("failed to commit status transition", err)
	}

	return s.GetOrder(ctx, scope, orderID)
}

// orderRecipient addresses order events to the organization when the scope
// has one, otherwise to the owning user.
func orderRecipient(scope Scope) RecipientScope {
	if scope.OrganizationID != nil {
		return OrganizationRecipient(*scope.OrganizationID)
	}
	return UserRecipient(scope.UserID)
}

// nextOrderCode advances the per-scope sequence and formats a human-readable
// order code. The upsert is the concurrency guard: two concurrent creations
// in the same scope serialize on the sequence row.
func nextOrderCode(ctx context.Context, tx pgx.Tx, scope Scope) (string, error) {
	var seq int64
	err := tx.QueryRow(ctx, `
		INSERT INTO order_sequences (owner_user_id, organization_id, last_number)
		VALUES ($1, COALESCE($2, -1), 1)
		ON CONFLICT (owner_user_id, organization_id)
		DO UPDATE SET last_number = order_sequences.last_number + 1
		RETURNING last_number`,
		scope.UserID, scope.OrganizationID,
	).Scan(&seq)
	if err != nil {
		return "", persistenceError("failed to advance order sequence", err)
	}
	return formatOrderCode(seq), nil
}

func formatOrderCode(seq int64) string {
	return fmt.Sprintf("SO-%06d", seq)
}

const orderSelect = `
	SELECT so.id, so.owner_user_id, so.organization_id, so.contact_id,
	       c.first_name || ' ' || c.last_name,
	       so.custom_order_code, so.status, so.notes, so.subtotal,
	       so.created_at, so.closed_at, so.cancelled_at
	FROM sales_orders so
	JOIN contacts c ON c.id = so.contact_id`

func scanOrder(row pgx.Row) (*SalesOrder, error) {
	o := &SalesOrder{}
	err := row.Scan(&o.ID, &o.OwnerUserID, &o.OrganizationID, &o.ContactID,
		&o.ContactName, &o.Code, &o.Status, &o.Notes, &o.Subtotal,
		&o.CreatedAt, &o.ClosedAt, &o.CancelledAt)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func fetchOrderLines(ctx context.Context, pool *pgxpool.Pool, orderID int) ([]SalesOrderLine, error) {
	rows, err := pool.Query(ctx, `
		SELECT sol.id, sol.order_id, sol.item_id, i.name, sol.quantity, sol.unit_price
		FROM sales_order_items sol
		JOIN items i ON i.id = sol.item_id
		WHERE sol.order_id = $1
		ORDER BY sol.id`,
		orderID)
	if err != nil {
		return nil, persistenceError("failed to query order lines", err)
	}
	defer rows.Close()

	var lines []SalesOrderLine
	for rows.Next() {
		var l SalesOrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ItemID, &l.ItemName, &l.Quantity, &l.UnitPrice); err != nil {
			return nil, persistenceError("failed to scan order line", err)
		}
		l.LineTotal = l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
		lines = append(lines, l)
	}
	if rows.Err() != nil {
		return nil, persistenceError("failed to read order lines", rows.Err())
	}
	return lines, nil
}
