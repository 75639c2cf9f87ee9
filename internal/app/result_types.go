package app

import "invoicing-backend/internal/core"

// UserSession is returned by AuthenticateUser.
type UserSession struct {
	UserID         int    `json:"user_id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	OrganizationID *int   `json:"organization_id,omitempty"`
}

// UserResult is returned by GetUser.
type UserResult struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	OrganizationID *int   `json:"organization_id,omitempty"`
}

// ContactResult is returned by single-contact operations.
type ContactResult struct {
	Contact *core.Contact
}

// ContactListResult is returned by ListContacts.
type ContactListResult struct {
	Contacts []core.Contact
}

// ItemListResult is returned by ListItems and LowStockItems.
type ItemListResult struct {
	Items []core.CatalogItem
}

// OrderResult is returned by order operations.
type OrderResult struct {
	Order *core.SalesOrder
}

// OrderListResult is returned by ListOrders.
type OrderListResult struct {
	Orders []core.SalesOrder
}

// NotificationResult is returned by PublishNotification.
type NotificationResult struct {
	Notification *core.Notification
}

// NotificationListResult is returned by ListNotifications.
type NotificationListResult struct {
	Notifications []core.Notification
}
