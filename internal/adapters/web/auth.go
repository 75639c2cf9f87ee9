package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"invoicing-backend/internal/core"

	"github.com/golang-jwt/jwt/v5"
)

type principalKey struct{}

// principalFromContext returns the authenticated principal stored in ctx, or nil.
func principalFromContext(ctx context.Context) *core.Principal {
	v, _ := ctx.Value(principalKey{}).(*core.Principal)
	return v
}

// jwtClaims is the JWT payload struct used for signing and parsing.
type jwtClaims struct {
	UserID         int    `json:"user_id"`
	OrganizationID *int   `json:"organization_id,omitempty"`
	Role           string `json:"role"`
	jwt.RegisteredClaims
}

// RequireAuth validates the auth_token cookie and injects the principal into
// the request context. Returns 401 if the token is absent or invalid.
func (h *Handler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("auth_token")
		if err != nil {
			writeError(w, r, "authentication required", "UNAUTHORIZED", http.StatusUnauthorized)
			return
		}

		claims := &jwtClaims{}
		token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(h.jwtSecret), nil
		})
		if err != nil || !token.Valid {
			writeError(w, r, "invalid or expired token", "UNAUTHORIZED", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), principalKey{}, &core.Principal{
			UserID:         claims.UserID,
			OrganizationID: claims.OrganizationID,
			Role:           claims.Role,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// login handles POST /api/auth/login.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email      string `json:"email"`
		Credential string `json:"credential"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Credential == "" {
		writeError(w, r, "email and credential are required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	session, err := h.svc.AuthenticateUser(r.Context(), req.Email, req.Credential)
	if err != nil {
		if core.KindOf(err) == core.KindInvalidCredentials {
			writeError(w, r, "invalid email or credential", "INVALID_CREDENTIALS", http.StatusUnauthorized)
			return
		}
		writeDomainError(w, r, err)
		return
	}

	claims := &jwtClaims{
		UserID:         session.UserID,
		OrganizationID: session.OrganizationID,
		Role:           session.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(12 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		writeError(w, r, "token generation failed", "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   12 * 3600,
	})

	type response struct {
		Success bool         `json:"success"`
		User    *UserPayload `json:"user"`
	}
	writeJSON(w, response{Success: true, User: &UserPayload{
		ID:             session.UserID,
		Name:           session.Name,
		Email:          session.Email,
		Role:           session.Role,
		OrganizationID: session.OrganizationID,
	}})
}

// UserPayload is the wire shape of an authenticated user.
type UserPayload struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	OrganizationID *int   `json:"organization_id,omitempty"`
}

// logout handles POST /api/auth/logout — clears the auth cookie.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})
	w.WriteHeader(http.StatusNoContent)
}

// me handles GET /api/auth/me — returns the current user's profile.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())
	if principal == nil {
		writeError(w, r, "not authenticated", "UNAUTHORIZED", http.StatusUnauthorized)
		return
	}

	user, err := h.svc.GetUser(r.Context(), principal.UserID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, UserPayload{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		Role:           user.Role,
		OrganizationID: user.OrganizationID,
	})
}
