package core

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// User is a stored account. PasswordHash is a bcrypt digest and never leaves
// this package.
type User struct {
	ID             int
	Name           string
	Email          string
	passwordHash   string
	Role           string
	OrganizationID *int
	CreatedAt      time.Time
}

// AuthService resolves credentials to a Principal.
type AuthService interface {
	// Authenticate verifies (email, credential) and returns the principal on
	// success. A wrong password and an unknown email are indistinguishable to
	// the caller.
	Authenticate(ctx context.Context, email, credential string) (*Principal, error)

	// GetUser returns the profile of an authenticated user by primary key.
	GetUser(ctx context.Context, userID int) (*User, error)
}

type authService struct {
	pool *pgxpool.Pool
}

func NewAuthService(pool *pgxpool.Pool) AuthService {
	return &authService{pool: pool}
}

func (s *authService) Authenticate(ctx context.Context, email, credential string) (*Principal, error) {
	if email == "" || credential == "" {
		return nil, Errorf(KindValidation, "email and credential are required")
	}

	u := &User{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, role, organization_id, created_at
		FROM users
		WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.passwordHash, &u.Role, &u.OrganizationID, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, Errorf(KindInvalidCredentials, "invalid email or credential")
		}
		return nil, persistenceError("failed to look up user", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(credential)) != nil {
		return nil, Errorf(KindInvalidCredentials, "invalid email or credential")
	}

	return &Principal{UserID: u.ID, OrganizationID: u.OrganizationID, Role: u.Role}, nil
}

func (s *authService) GetUser(ctx context.Context, userID int) (*User, error) {
	u := &User{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, email, role, organization_id, created_at
		FROM users
		WHERE id = $1`,
		userID,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.OrganizationID, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, Errorf(KindNotFound, "user %d not found", userID)
		}
		return nil, persistenceError("failed to fetch user", err)
	}
	return u, nil
}
