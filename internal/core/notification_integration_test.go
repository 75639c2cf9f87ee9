package core_test

import (
	"context"
	"testing"

	"invoicing-backend/internal/core"
)

func TestRecipientScope_Valid(t *testing.T) {
	if (core.RecipientScope{}).Valid() {
		t.Error("Empty recipient scope must not be valid")
	}
	if !core.UserRecipient(1).Valid() {
		t.Error("User recipient must be valid")
	}
	if !core.OrganizationRecipient(10).Valid() {
		t.Error("Organization recipient must be valid")
	}
}

func TestNotificationService_PublishDefaults(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	notifications := core.NewNotificationService(pool)
	ctx := context.Background()

	n, err := notifications.Publish(ctx, core.NotificationInput{
		Title:     "Stock alert",
		Message:   "Gizmo is below its reorder level",
		Recipient: core.UserRecipient(1),
	})
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if n.Type != "info" {
		t.Errorf("Expected default type info, got %q", n.Type)
	}
	if n.Sender != "system" {
		t.Errorf("Expected default sender system, got %q", n.Sender)
	}
	if n.Read {
		t.Error("New notifications must start unread")
	}
	if n.RecipientUserID == nil || *n.RecipientUserID != 1 {
		t.Errorf("Expected recipient user 1, got %v", n.RecipientUserID)
	}
}

func TestNotificationService_PublishValidation(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	notifications := core.NewNotificationService(pool)
	ctx := context.Background()

	_, err := notifications.Publish(ctx, core.NotificationInput{
		Message:   "no title",
		Recipient: core.UserRecipient(1),
	})
	if core.KindOf(err) != core.KindValidation {
		t.Errorf("Expected VALIDATION for missing title, got %v", err)
	}

	_, err = notifications.Publish(ctx, core.NotificationInput{
		Title:   "no recipient",
		Message: "goes nowhere",
	})
	if core.KindOf(err) != core.KindValidation {
		t.Errorf("Expected VALIDATION for missing recipient, got %v", err)
	}
}

func TestNotificationService_FeedVisibility(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	notifications := core.NewNotificationService(pool)
	ctx := context.Background()

	publish := func(title string, recipient core.RecipientScope) {
		t.Helper()
		if _, err := notifications.Publish(ctx, core.NotificationInput{
			Title:     title,
			Message:   title,
			Recipient: recipient,
		}); err != nil {
			t.Fatalf("Publish %q failed: %v", title, err)
		}
	}

	publish("for alice", core.UserRecipient(1))
	publish("for bob", core.UserRecipient(2))
	publish("for org 10", core.OrganizationRecipient(10))

	orgID := 10
	bob := &core.Principal{UserID: 2, OrganizationID: &orgID}
	feed, err := notifications.ListForPrincipal(ctx, bob)
	if err != nil {
		t.Fatalf("ListForPrincipal failed: %v", err)
	}
	if len(feed) != 2 {
		t.Fatalf("Expected Bob to see 2 notifications, got %d", len(feed))
	}
	// Most recent first.
	if feed[0].Title != "for org 10" || feed[1].Title != "for bob" {
		t.Errorf("Unexpected feed order: %q, %q", feed[0].Title, feed[1].Title)
	}

	alice := &core.Principal{UserID: 1}
	feed, err = notifications.ListForPrincipal(ctx, alice)
	if err != nil {
		t.Fatalf("ListForPrincipal failed: %v", err)
	}
	if len(feed) != 1 || feed[0].Title != "for alice" {
		t.Errorf("Expected Alice to see only her notification, got %d entries", len(feed))
	}
}

func TestNotificationService_EmptyFeed(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	notifications := core.NewNotificationService(pool)
	feed, err := notifications.ListForPrincipal(context.Background(), &core.Principal{UserID: 1})
	if err != nil {
		t.Fatalf("ListForPrincipal failed: %v", err)
	}
	if len(feed) != 0 {
		t.Errorf("Expected empty feed, got %d entries", len(feed))
	}
}

func TestNotificationService_MarkAllRead(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	notifications := core.NewNotificationService(pool)
	ctx := context.Background()

	for _, title := range []string{"one", "two"} {
		if _, err := notifications.Publish(ctx, core.NotificationInput{
			Title:     title,
			Message:   title,
			Recipient: core.OrganizationRecipient(10),
		}); err != nil {
			t.Fatalf("Publish failed: %v", err)
		}
	}

	orgID := 10
	bob := &core.Principal{UserID: 2, OrganizationID: &orgID}

	count, err := notifications.MarkAllRead(ctx, bob)
	if err != nil {
		t.Fatalf("MarkAllRead failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 rows marked, got %d", count)
	}

	// Idempotent: a second pass finds nothing unread.
	count, err = notifications.MarkAllRead(ctx, bob)
	if err != nil {
		t.Fatalf("Second MarkAllRead failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 rows on second pass, got %d", count)
	}

	feed, err := notifications.ListForPrincipal(ctx, bob)
	if err != nil {
		t.Fatalf("ListForPrincipal failed: %v", err)
	}
	for _, n := range feed {
		if !n.Read {
			t.Errorf("Notification %d still unread", n.ID)
		}
	}
}
