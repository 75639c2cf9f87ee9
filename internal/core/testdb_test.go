package core_test

import (
	"context"
	"os"
	"testing"

	"invoicing-backend/internal/core"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const testCredential = "s3cret-pass"

// setupTestDB truncates the test database and seeds the users and catalog
// items shared by the integration tests.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	_ = godotenv.Load("../../.env")

	// Use a dedicated TEST database to avoid wiping the live app database.
	// Set TEST_DATABASE_URL in your .env or environment to run integration tests.
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test to protect live database")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(testCredential), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash test credential: %v", err)
	}

	_, err = pool.Exec(ctx, `
		TRUNCATE TABLE notifications, sales_order_items, sales_orders, order_sequences, contacts, items, users CASCADE;

		INSERT INTO items (id, name, unit_price, stock_quantity, reorder_level) VALUES
		(1, 'Widget',      10.00, 50,  5),
		(2, 'Gizmo',        5.50,  3, 10),
		(3, 'Premium Kit', 99.00,  0,  2);
	`)
	if err != nil {
		t.Fatalf("Failed to reset test database: %v", err)
	}

	// Alice works without an organization; Bob and Carol share organization 10.
	_, err = pool.Exec(ctx, `
		INSERT INTO users (id, name, email, password_hash, role, organization_id) VALUES
		(1, 'Alice', 'alice@example.com', $1, 'member', NULL),
		(2, 'Bob',   'bob@example.com',   $1, 'member', 10),
		(3, 'Carol', 'carol@example.com', $1, 'admin',  10)`,
		string(hash))
	if err != nil {
		t.Fatalf("Failed to seed test users: %v", err)
	}

	return pool
}

func personalScope(userID int) core.Scope {
	return core.Scope{UserID: userID}
}

func orgScope(userID, orgID int) core.Scope {
	return core.Scope{UserID: userID, OrganizationID: &orgID}
}

func seedContact(t *testing.T, svc core.ContactService, scope core.Scope, first, last string) *core.Contact {
	t.Helper()
	c, err := svc.CreateContact(context.Background(), scope, core.ContactInput{
		FirstName: first,
		LastName:  last,
	})
	if err != nil {
		t.Fatalf("Failed to seed contact: %v", err)
	}
	return c
}
