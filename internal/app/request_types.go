package app

import "github.com/shopspring/decimal"

// ContactRequest carries the caller-settable contact fields.
type ContactRequest struct {
	FirstName   string
	LastName    string
	Address     *string
	ZipCode     *string
	Phone       *string
	Email       *string
	CompanyName *string
	TaxID       *string
	Notes       *string
}

// CreateOrderRequest is the input for creating a new sales order.
type CreateOrderRequest struct {
	ContactID int
	Notes     string
	Lines     []OrderLineInput
}

// OrderLineInput is a single line within a CreateOrderRequest. A nil
// UnitPrice means "capture the item's current catalog price".
type OrderLineInput struct {
	ItemID    int
	Quantity  int
	UnitPrice *decimal.Decimal
}

// PublishNotificationRequest is the input for storing a notification.
// Exactly one of RecipientUserID / RecipientOrganizationID must be set.
type PublishNotificationRequest struct {
	Title                   string
	Message                 string
	Type                    string
	Sender                  string
	RecipientUserID         *int
	RecipientOrganizationID *int
}
