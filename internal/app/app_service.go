package app

import (
	"context"

	"invoicing-backend/internal/core"
)

type appService struct {
	auth          core.AuthService
	contacts      core.ContactService
	catalog       core.CatalogService
	orders        core.OrderService
	notifications core.NotificationService
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(
	auth core.AuthService,
	contacts core.ContactService,
	catalog core.CatalogService,
	orders core.OrderService,
	notifications core.NotificationService,
) ApplicationService {
	return &appService{
		auth:          auth,
		contacts:      contacts,
		catalog:       catalog,
		orders:        orders,
		notifications: notifications,
	}
}

func (s *appService) AuthenticateUser(ctx context.Context, email, credential string) (*UserSession, error) {
	principal, err := s.auth.Authenticate(ctx, email, credential)
	if err != nil {
		return nil, err
	}
	user, err := s.auth.GetUser(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	return &UserSession{
		UserID:         user.ID,
		Name:           user.Name,
		Email:          user.Email,
		Role:           user.Role,
		OrganizationID: user.OrganizationID,
	}, nil
}

func (s *appService) GetUser(ctx context.Context, userID int) (*UserResult, error) {
	user, err := s.auth.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &UserResult{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		Role:           user.Role,
		OrganizationID: user.OrganizationID,
	}, nil
}

func (s *appService) ListContacts(ctx context.Context, principal *core.Principal) (*ContactListResult, error) {
	contacts, err := s.contacts.ListContacts(ctx, principal.Scope())
	if err != nil {
		return nil, err
	}
	return &ContactListResult{Contacts: contacts}, nil
}

func (s *appService) GetContact(ctx context.Context, principal *core.Principal, contactID int) (*ContactResult, error) {
	contact, err := s.contacts.GetContact(ctx, principal.Scope(), contactID)
	if err != nil {
		return nil, err
	}
	return &ContactResult{Contact: contact}, nil
}

func (s *appService) CreateContact(ctx context.Context, principal *core.Principal, req ContactRequest) (*ContactResult, error) {
	contact, err := s.contacts.CreateContact(ctx, principal.Scope(), contactInput(req))
	if err != nil {
		return nil, err
	}
	return &ContactResult{Contact: contact}, nil
}

func (s *appService) UpdateContact(ctx context.Context, principal *core.Principal, contactID int, req ContactRequest) (*ContactResult, error) {
	contact, err := s.contacts.UpdateContact(ctx, principal.Scope(), contactID, contactInput(req))
	if err != nil {
		return nil, err
	}
	return &ContactResult{Contact: contact}, nil
}

func (s *appService) DeleteContact(ctx context.Context, principal *core.Principal, contactID int) error {
	return s.contacts.DeleteContact(ctx, principal.Scope(), contactID)
}

func (s *appService) ListItems(ctx context.Context) (*ItemListResult, error) {
	items, err := s.catalog.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	return &ItemListResult{Items: items}, nil
}

func (s *appService) LowStockItems(ctx context.Context) (*ItemListResult, error) {
	items, err := s.catalog.LowStock(ctx)
	if err != nil {
		return nil, err
	}
	return &ItemListResult{Items: items}, nil
}

func (s *appService) ListOrders(ctx context.Context, principal *core.Principal) (*OrderListResult, error) {
	orders, err := s.orders.ListOrders(ctx, principal.Scope())
	if err != nil {
		return nil, err
	}
	return &OrderListResult{Orders: orders}, nil
}

func (s *appService) GetOrder(ctx context.Context, principal *core.Principal, orderID int) (*OrderResult, error) {
	order, err := s.orders.GetOrder(ctx, principal.Scope(), orderID)
	if err != nil {
		return nil, err
	}
	return &OrderResult{Order: order}, nil
}

func (s *appService) CreateOrder(ctx context.Context, principal *core.Principal, req CreateOrderRequest) (*OrderResult, error) {
	lines := make([]core.OrderLineInput, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = core.OrderLineInput{
			ItemID:    l.ItemID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		}
	}

	order, err := s.orders.CreateOrder(ctx, principal.Scope(), req.ContactID, req.Notes, lines)
	if err != nil {
		return nil, err
	}
	return &OrderResult{Order: order}, nil
}

func (s *appService) CloseOrder(ctx context.Context, principal *core.Principal, orderID int) (*OrderResult, error) {
	return s.transition(ctx, principal, orderID, core.StatusClosed)
}

func (s *appService) CancelOrder(ctx context.Context, principal *core.Principal, orderID int) (*OrderResult, error) {
	return s.transition(ctx, principal, orderID, core.StatusCancelled)
}

func (s *appService) transition(ctx context.Context, principal *core.Principal, orderID int, status core.OrderStatus) (*OrderResult, error) {
	order, err := s.orders.TransitionStatus(ctx, principal.Scope(), orderID, status)
	if err != nil {
		return nil, err
	}
	return &OrderResult{Order: order}, nil
}

func (s *appService) PublishNotification(ctx context.Context, req PublishNotificationRequest) (*NotificationResult, error) {
	var recipient core.RecipientScope
	switch {
	case req.RecipientUserID != nil:
		recipient = core.UserRecipient(*req.RecipientUserID)
	case req.RecipientOrganizationID != nil:
		recipient = core.OrganizationRecipient(*req.RecipientOrganizationID)
	}

	n, err := s.notifications.Publish(ctx, core.NotificationInput{
		Title:     req.Title,
		Message:   req.Message,
		Type:      req.Type,
		Sender:    req.Sender,
		Recipient: recipient,
	})
	if err != nil {
		return nil, err
	}
	return &NotificationResult{Notification: n}, nil
}

func (s *appService) ListNotifications(ctx context.Context, principal *core.Principal) (*NotificationListResult, error) {
	notifications, err := s.notifications.ListForPrincipal(ctx, principal)
	if err != nil {
		return nil, err
	}
	return &NotificationListResult{Notifications: notifications}, nil
}

func (s *appService) MarkAllNotificationsRead(ctx context.Context, principal *core.Principal) (int64, error) {
	return s.notifications.MarkAllRead(ctx, principal)
}

func contactInput(req ContactRequest) core.ContactInput {
	return core.ContactInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Address:     req.Address,
		ZipCode:     req.ZipCode,
		Phone:       req.Phone,
		Email:       req.Email,
		CompanyName: req.CompanyName,
		TaxID:       req.TaxID,
		Notes:       req.Notes,
	}
}
