package core

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Contact is a customer/supplier record owned by exactly one scope.
type Contact struct {
	ID             int       `json:"id"`
	OwnerUserID    int       `json:"owner_user_id"`
	OrganizationID *int      `json:"organization_id,omitempty"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Address        *string   `json:"address,omitempty"`
	ZipCode        *string   `json:"zip_code,omitempty"`
	Phone          *string   `json:"phone,omitempty"`
	Email          *string   `json:"email,omitempty"`
	CompanyName    *string   `json:"company_name,omitempty"`
	TaxID          *string   `json:"tax_id,omitempty"`
	Notes          *string   `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// ContactInput carries the caller-settable contact fields. Optional fields
// persist as NULL when absent.
type ContactInput struct {
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

// ContactService owns contact records scoped to a principal.
type ContactService interface {
	ListContacts(ctx context.Context, scope Scope) ([]Contact, error)
	GetContact(ctx context.Context, scope Scope, contactID int) (*Contact, error)
	CreateContact(ctx context.Context, scope Scope, input ContactInput) (*Contact, error)
	UpdateContact(ctx context.Context, scope Scope, contactID int, input ContactInput) (*Contact, error)
	// DeleteContact removes a contact. It fails with a conflict error when
	// sales orders still reference the contact: orders are append-only
	// history and must not be orphaned.
	DeleteContact(ctx context.Context, scope Scope, contactID int) error
}

type contactService struct {
	pool *pgxpool.Pool
}

func NewContactService(pool *pgxpool.Pool) ContactService {
	return &contactService{pool: pool}
}

const contactColumns = `id, owner_user_id, organization_id, first_name, last_name,
	address, zip_code, phone, email, company_name, tax_id, notes, created_at`

func scanContact(row pgx.Row) (*Contact, error) {
	c := &Contact{}
	err := row.Scan(&c.ID, &c.OwnerUserID, &c.OrganizationID, &c.FirstName, &c.LastName,
		&c.Address, &c.ZipCode, &c.Phone, &c.Email, &c.CompanyName, &c.TaxID, &c.Notes, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *contactService) ListContacts(ctx context.Context, scope Scope) ([]Contact, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+contactColumns+`
		FROM contacts
		WHERE owner_user_id = $1 AND organization_id IS NOT DISTINCT FROM $2
		ORDER BY id`,
		scope.UserID, scope.OrganizationID)
	if err != nil {
		return nil, persistenceError("failed to query contacts", err)
	}
	defer rows.Close()

	var contacts []Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, persistenceError("failed to scan contact", err)
		}
		contacts = append(contacts, *c)
	}
	if rows.Err() != nil {
		return nil, persistenceError("failed to read contacts", rows.Err())
	}
	return contacts, nil
}

func (s *contactService) GetContact(ctx context.Context, scope Scope, contactID int) (*Contact, error) {
	c, err := scanContact(s.pool.QueryRow(ctx, `
		SELECT `+contactColumns+`
		FROM contacts
		WHERE id = $1 AND owner_user_id = $2 AND organization_id IS NOT DISTINCT FROM $3`,
		contactID, scope.UserID, scope.OrganizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, Errorf(KindNotFound, "contact %d not found", contactID)
		}
		return nil, persistenceError("failed to fetch contact", err)
	}
	return c, nil
}

func (s *contactService) CreateContact(ctx context.Context, scope Scope, input ContactInput) (*Contact, error) {
	if input.FirstName == "" || input.LastName == "" {
		return nil, Errorf(KindValidation, "first name and last name are required")
	}

	c, err := scanContact(s.pool.QueryRow(ctx, `
		INSERT INTO contacts (owner_user_id, organization_id, first_name, last_name,
			address, zip_code, phone, email, company_name, tax_id, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+contactColumns,
		scope.UserID, scope.OrganizationID, input.FirstName, input.LastName,
		input.Address, input.ZipCode, input.Phone, input.Email,
		input.CompanyName, input.TaxID, input.Notes))
	if err != nil {
		return nil, persistenceError("failed to create contact", err)
	}
	return c, nil
}

func (s *contactService) UpdateContact(ctx context.Context, scope Scope, contactID int, input ContactInput) (*Contact, error) {
	if input.FirstName == "" || input.LastName == "" {
		return nil, Errorf(KindValidation, "first name and last name are required")
	}

	c, err := scanContact(s.pool.QueryRow(ctx, `
		UPDATE contacts
		SET first_name = $1, last_name = $2, address = $3, zip_code = $4,
			phone = $5, email = $6, company_name = $7, tax_id = $8, notes = $9
		WHERE id = $10 AND owner_user_id = $11 AND organization_id IS NOT DISTINCT FROM $12
		RETURNING `+contactColumns,
		input.FirstName, input.LastName, input.Address, input.ZipCode,
		input.Phone, input.Email, input.CompanyName, input.TaxID, input.Notes,
		contactID, scope.UserID, scope.OrganizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, Errorf(KindNotFound, "contact %d not found", contactID)
		}
		return nil, persistenceError("failed to update contact", err)
	}
	return c, nil
}

func (s *contactService) DeleteContact(ctx context.Context, scope Scope, contactID int) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return persistenceError("failed to begin transaction", err)
	}
	defer tx.Rollback(ctx)

	var referencing int
	err = tx.QueryRow(ctx,
		"SELECT COUNT(*) FROM sales_orders WHERE contact_id = $1",
		contactID,
	).Scan(&referencing)
	if err != nil {
		return persistenceError("failed to count referencing orders", err)
	}
	if referencing > 0 {
		return Errorf(KindConflict, "contact %d is referenced by %d sales order(s)", contactID, referencing)
	}

	tag, err := tx.Exec(ctx, `
		DELETE FROM contacts
		WHERE id = $1 AND owner_user_id = $2 AND organization_id IS NOT DISTINCT FROM $3`,
		contactID, scope.UserID, scope.OrganizationID)
	if err != nil {
		return persistenceError("failed to delete contact", err)
	}
	if tag.RowsAffected() == 0 {
		return Errorf(KindNotFound, "contact %d not found", contactID)
	}

	if err := tx.Commit(ctx); err != nil {
		return persistenceError("failed to commit contact deletion", err)
	}
	return nil
}
