package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"invoicing-backend/internal/app"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler holds the ApplicationService, the request validator, and the logger.
type Handler struct {
	svc       app.ApplicationService
	validate  *validator.Validate
	jwtSecret string
	log       *zap.Logger
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins, jwtSecret string, log *zap.Logger) http.Handler {
	h := &Handler{
		svc:       svc,
		validate:  validator.New(),
		jwtSecret: jwtSecret,
		log:       log,
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(log))
	r.Use(Recoverer(log))
	r.Use(CORS(allowedOrigins))
	r.Use(RequestBodyLimit(1 << 20)) // 1 MB

	// ── Health (public) ───────────────────────────────────────────────────────
	r.Get("/api/health", h.health)

	// ── Auth (public) ─────────────────────────────────────────────────────────
	r.Post("/api/auth/login", h.login)
	r.Post("/api/auth/logout", h.logout)

	// ── Protected API routes (401 JSON if unauthenticated) ───────────────────
	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)

		r.Get("/api/auth/me", h.me)

		// Contacts
		r.Get("/api/contacts", h.listContacts)
		r.Post("/api/contacts", h.createContact)
		r.Get("/api/contacts/{id}", h.getContact)
		r.Put("/api/contacts/{id}", h.updateContact)
		r.Delete("/api/contacts/{id}", h.deleteContact)

		// Catalog
		r.Get("/api/items", h.listItems)
		r.Get("/api/items/low-stock", h.lowStockItems)

		// Orders
		r.Get("/api/orders", h.listOrders)
		r.Post("/api/orders", h.createOrder)
		r.Get("/api/orders/{id}", h.getOrder)
		r.Post("/api/orders/{id}/close", h.closeOrder)
		r.Post("/api/orders/{id}/cancel", h.cancelOrder)

		// Notifications
		r.Get("/api/notifications", h.listNotifications)
		r.Post("/api/notifications", h.publishNotification)
		r.Post("/api/notifications/read-all", h.markAllNotificationsRead)
	})

	return r
}

// health returns service status.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status string `json:"status"`
	}
	writeJSON(w, response{Status: "ok"})
}

// idParam extracts the numeric {id} URL parameter.
func idParam(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}

// decodeJSON decodes the request body into v and returns false + writes an appropriate
// error response on failure. Returns HTTP 413 when the body exceeds the size limit set
// by RequestBodyLimit middleware; HTTP 400 for all other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}

// validateBody runs struct-tag validation on a decoded request body and
// writes a 400 on failure.
func (h *Handler) validateBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := h.validate.Struct(v); err != nil {
		writeError(w, r, "invalid request: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
