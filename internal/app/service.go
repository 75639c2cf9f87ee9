package app

import (
	"context"

	"invoicing-backend/internal/core"
)

// ApplicationService is the single interface the web adapter calls. It
// decouples presentation from business logic; implementations contain no
// HTTP types and no display logic of any kind.
type ApplicationService interface {
	// AuthenticateUser verifies credentials and returns a session on success.
	AuthenticateUser(ctx context.Context, email, credential string) (*UserSession, error)

	// GetUser returns the user profile by ID.
	GetUser(ctx context.Context, userID int) (*UserResult, error)

	// ListContacts returns the principal's contacts.
	ListContacts(ctx context.Context, principal *core.Principal) (*ContactListResult, error)

	// GetContact returns one contact visible to the principal.
	GetContact(ctx context.Context, principal *core.Principal, contactID int) (*ContactResult, error)

	// CreateContact creates a contact owned by the principal's scope.
	CreateContact(ctx context.Context, principal *core.Principal, req ContactRequest) (*ContactResult, error)

	// UpdateContact replaces the caller-settable fields of a contact.
	UpdateContact(ctx context.Context, principal *core.Principal, contactID int, req ContactRequest) (*ContactResult, error)

	// DeleteContact removes a contact unless sales orders still reference it.
	DeleteContact(ctx context.Context, principal *core.Principal, contactID int) error

	// ListItems returns the item catalog.
	ListItems(ctx context.Context) (*ItemListResult, error)

	// LowStockItems returns items at or below their reorder level.
	LowStockItems(ctx context.Context) (*ItemListResult, error)

	// ListOrders returns the principal's sales orders, most recent first.
	ListOrders(ctx context.Context, principal *core.Principal) (*OrderListResult, error)

	// GetOrder returns one order with its lines.
	GetOrder(ctx context.Context, principal *core.Principal, orderID int) (*OrderResult, error)

	// CreateOrder creates an open sales order with all its lines atomically.
	CreateOrder(ctx context.Context, principal *core.Principal, req CreateOrderRequest) (*OrderResult, error)

	// CloseOrder transitions an open order to closed.
	CloseOrder(ctx context.Context, principal *core.Principal, orderID int) (*OrderResult, error)

	// CancelOrder transitions an open order to cancelled.
	CancelOrder(ctx context.Context, principal *core.Principal, orderID int) (*OrderResult, error)

	// PublishNotification stores a notification for a user or an organization.
	PublishNotification(ctx context.Context, req PublishNotificationRequest) (*NotificationResult, error)

	// ListNotifications returns the principal's feed, most recent first.
	ListNotifications(ctx context.Context, principal *core.Principal) (*NotificationListResult, error)

	// MarkAllNotificationsRead flips the principal's unread notifications to
	// read and returns how many were affected.
	MarkAllNotificationsRead(ctx context.Context, principal *core.Principal) (int64, error)
}
