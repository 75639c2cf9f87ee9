package web

import (
	"net/http"

	"invoicing-backend/internal/app"
	"invoicing-backend/internal/core"
)

// listNotifications handles GET /api/notifications.
func (h *Handler) listNotifications(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListNotifications(r.Context(), principalFromContext(r.Context()))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	type response struct {
		Success       bool                `json:"success"`
		Notifications []core.Notification `json:"notifications"`
	}
	writeJSON(w, response{Success: true, Notifications: result.Notifications})
}

// publishNotification handles POST /api/notifications.
// Body: { title, message, type?, sender?, recipient_user_id? | recipient_organization_id? }
func (h *Handler) publishNotification(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title                   string `json:"title" validate:"required"`
		Message                 string `json:"message" validate:"required"`
		Type                    string `json:"type"`
		Sender                  string `json:"sender"`
		RecipientUserID         *int   `json:"recipient_user_id"`
		RecipientOrganizationID *int   `json:"recipient_organization_id"`
	}
	if !decodeJSON(w, r, &body) || !h.validateBody(w, r, &body) {
		return
	}
	if body.RecipientUserID == nil && body.RecipientOrganizationID == nil {
		writeError(w, r, "a recipient user or organization is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	result, err := h.svc.PublishNotification(r.Context(), app.PublishNotificationRequest{
		Title:                   body.Title,
		Message:                 body.Message,
		Type:                    body.Type,
		Sender:                  body.Sender,
		RecipientUserID:         body.RecipientUserID,
		RecipientOrganizationID: body.RecipientOrganizationID,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	type response struct {
		Success      bool               `json:"success"`
		Notification *core.Notification `json:"notification"`
	}
	writeJSONStatus(w, http.StatusCreated, response{Success: true, Notification: result.Notification})
}

// markAllNotificationsRead handles POST /api/notifications/read-all.
// A count of 0 is a normal outcome, not an error.
func (h *Handler) markAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.MarkAllNotificationsRead(r.Context(), principalFromContext(r.Context()))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	type response struct {
		Success bool  `json:"success"`
		Count   int64 `json:"count"`
	}
	writeJSON(w, response{Success: true, Count: count})
}
