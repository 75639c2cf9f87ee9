package core

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RecipientScope is the tagged recipient of a notification: either a single
// user or a whole organization, never both and never neither.
type RecipientScope struct {
	userID         *int
	organizationID *int
}

// UserRecipient addresses a notification to one user.
func UserRecipient(userID int) RecipientScope {
	return RecipientScope{userID: &userID}
}

// OrganizationRecipient addresses a notification to everyone in an organization.
func OrganizationRecipient(organizationID int) RecipientScope {
	return RecipientScope{organizationID: &organizationID}
}

// Valid reports whether the scope addresses anyone.
func (r RecipientScope) Valid() bool {
	return r.userID != nil || r.organizationID != nil
}

// Notification is one entry in the dashboard feed.
type Notification struct {
	ID                      int       `json:"id"`
	Title                   string    `json:"title"`
	Message                 string    `json:"message"`
	Type                    string    `json:"type"`
	RecipientUserID         *int      `json:"recipient_user_id,omitempty"`
	RecipientOrganizationID *int      `json:"recipient_organization_id,omitempty"`
	Sender                  string    `json:"sender"`
	Read                    bool      `json:"read"`
	CreatedAt               time.Time `json:"created_at"`
}

// NotificationInput is a to-be-published notification. Type defaults to
// "info" and Sender to "system" when empty.
type NotificationInput struct {
	Title     string
	Message   string
	Type      string
	Sender    string
	Recipient RecipientScope
}

// NotificationService stores events and serves the per-principal unread feed.
type NotificationService interface {
	Publish(ctx context.Context, input NotificationInput) (*Notification, error)
	// PublishTx publishes inside the caller's transaction so the notification
	// commits or rolls back together with the event that produced it.
	PublishTx(ctx context.Context, tx pgx.Tx, input NotificationInput) (*Notification, error)
	// ListForPrincipal returns notifications addressed to the principal's
	// user or organization, most recent first. An empty feed is not an error.
	ListForPrincipal(ctx context.Context, principal *Principal) ([]Notification, error)
	// MarkAllRead flips every unread notification in the principal's
	// visibility set to read and returns the number of rows affected.
	MarkAllRead(ctx context.Context, principal *Principal) (int64, error)
}

type notificationService struct {
	pool *pgxpool.Pool
}

func NewNotificationService(pool *pgxpool.Pool) NotificationService {
	return &notificationService{pool: pool}
}

const notificationColumns = `id, title, message, type, recipient_user_id,
	recipient_organization_id, sender, read, created_at`

func scanNotification(row pgx.Row) (*Notification, error) {
	n := &Notification{}
	err := row.Scan(&n.ID, &n.Title, &n.Message, &n.Type, &n.RecipientUserID,
		&n.RecipientOrganizationID, &n.Sender, &n.Read, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (s *notificationService) Publish(ctx context.Context, input NotificationInput) (*Notification, error) {
	return publish(ctx, s.pool, input)
}

func (s *notificationService) PublishTx(ctx context.Context, tx pgx.Tx, input NotificationInput) (*Notification, error) {
	return publish(ctx, tx, input)
}

// rowQuerier is satisfied by both *pgxpool.Pool and pgx.Tx.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func publish(ctx context.Context, q rowQuerier, input NotificationInput) (*Notification, error) {
	if input.Title == "" || input.Message == "" {
		return nil, Errorf(KindValidation, "title and message are required")
	}
	if !input.Recipient.Valid() {
		return nil, Errorf(KindValidation, "notification must have a recipient")
	}
	if input.Type == "" {
		input.Type = "info"
	}
	if input.Sender == "" {
		input.Sender = "system"
	}

	n, err := scanNotification(q.QueryRow(ctx, `
		INSERT INTO notifications (title, message, type, recipient_user_id, recipient_organization_id, sender)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+notificationColumns,
		input.Title, input.Message, input.Type,
		input.Recipient.userID, input.Recipient.organizationID, input.Sender))
	if err != nil {
		return nil, persistenceError("failed to store notification", err)
	}
	return n, nil
}

func (s *notificationService) ListForPrincipal(ctx context.Context, principal *Principal) ([]Notification, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+notificationColumns+`
		FROM notifications
		WHERE recipient_user_id = $1
		   OR ($2::int IS NOT NULL AND recipient_organization_id = $2)
		ORDER BY created_at DESC, id DESC`,
		principal.UserID, principal.OrganizationID)
	if err != nil {
		return nil, persistenceError("failed to query notifications", err)
	}
	defer rows.Close()

	notifications := []Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, persistenceError("failed to scan notification", err)
		}
		notifications = append(notifications, *n)
	}
	if rows.Err() != nil {
		return nil, persistenceError("failed to read notifications", rows.Err())
	}
	return notifications, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, principal *Principal) (int64, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE notifications
		SET read = true
		WHERE read = false
		  AND (recipient_user_id = $1
		       OR ($2::int IS NOT NULL AND recipient_organization_id = $2))`,
		principal.UserID, principal.OrganizationID)
	if err != nil {
		return 0, persistenceError("failed to mark notifications read", err)
	}
	return tag.RowsAffected(), nil
}
