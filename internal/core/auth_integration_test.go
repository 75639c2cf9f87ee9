package core_test

import (
	"context"
	"testing"

	"invoicing-backend/internal/core"
)

func TestAuthService_Authenticate(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	auth := core.NewAuthService(pool)
	ctx := context.Background()

	principal, err := auth.Authenticate(ctx, "bob@example.com", testCredential)
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if principal.UserID != 2 {
		t.Errorf("Expected user 2, got %d", principal.UserID)
	}
	if principal.OrganizationID == nil || *principal.OrganizationID != 10 {
		t.Errorf("Expected organization 10, got %v", principal.OrganizationID)
	}

	// A personal account carries no organization.
	principal, err = auth.Authenticate(ctx, "alice@example.com", testCredential)
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if principal.OrganizationID != nil {
		t.Errorf("Expected no organization, got %v", principal.OrganizationID)
	}
}

func TestAuthService_RejectsBadCredentials(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	auth := core.NewAuthService(pool)
	ctx := context.Background()

	// A wrong credential and an unknown email are the same error to the caller.
	_, err := auth.Authenticate(ctx, "alice@example.com", "wrong-pass")
	if core.KindOf(err) != core.KindInvalidCredentials {
		t.Errorf("Expected INVALID_CREDENTIALS for wrong credential, got %v", err)
	}
	_, err = auth.Authenticate(ctx, "nobody@example.com", testCredential)
	if core.KindOf(err) != core.KindInvalidCredentials {
		t.Errorf("Expected INVALID_CREDENTIALS for unknown email, got %v", err)
	}

	_, err = auth.Authenticate(ctx, "", testCredential)
	if core.KindOf(err) != core.KindValidation {
		t.Errorf("Expected VALIDATION for missing email, got %v", err)
	}
	_, err = auth.Authenticate(ctx, "alice@example.com", "")
	if core.KindOf(err) != core.KindValidation {
		t.Errorf("Expected VALIDATION for missing credential, got %v", err)
	}
}

func TestAuthService_GetUser(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	auth := core.NewAuthService(pool)
	ctx := context.Background()

	user, err := auth.GetUser(ctx, 3)
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if user.Name != "Carol" || user.Role != "admin" {
		t.Errorf("Unexpected profile: %q %q", user.Name, user.Role)
	}

	if _, err := auth.GetUser(ctx, 999); core.KindOf(err) != core.KindNotFound {
		t.Errorf("Expected NOT_FOUND, got %v", err)
	}
}
