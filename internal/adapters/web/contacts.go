package web

import (
	"net/http"

	"invoicing-backend/internal/app"
	"invoicing-backend/internal/core"
)

type contactBody struct {
	FirstName   string  `json:"first_name" validate:"required"`
	LastName    string  `json:"last_name" validate:"required"`
	Address     *string `json:"address"`
	ZipCode     *string `json:"zip_code"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email" validate:"omitempty,email"`
	CompanyName *string `json:"company_name"`
	TaxID       *string `json:"tax_id"`
	Notes       *string `json:"notes"`
}

func (b contactBody) toRequest() app.ContactRequest {
	return app.ContactRequest{
		FirstName:   b.FirstName,
		LastName:    b.LastName,
		Address:     b.Address,
		ZipCode:     b.ZipCode,
		Phone:       b.Phone,
		Email:       b.Email,
		CompanyName: b.CompanyName,
		TaxID:       b.TaxID,
		Notes:       b.Notes,
	}
}

type contactResponse struct {
	Success bool          `json:"success"`
	Contact *core.Contact `json:"contact"`
}

// listContacts handles GET /api/contacts.
func (h *Handler) listContacts(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListContacts(r.Context(), principalFromContext(r.Context()))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	type response struct {
		Success  bool           `json:"success"`
		Contacts []core.Contact `json:"contacts"`
	}
	writeJSON(w, response{Success: true, Contacts: result.Contacts})
}

// getContact handles GET /api/contacts/{id}.
func (h *Handler) getContact(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, "invalid contact id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	result, err := h.svc.GetContact(r.Context(), principalFromContext(r.Context()), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, contactResponse{Success: true, Contact: result.Contact})
}

// createContact handles POST /api/contacts.
func (h *Handler) createContact(w http.ResponseWriter, r *http.Request) {
	var body contactBody
	if !decodeJSON(w, r, &body) || !h.validateBody(w, r, &body) {
		return
	}

	result, err := h.svc.CreateContact(r.Context(), principalFromContext(r.Context()), body.toRequest())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, contactResponse{Success: true, Contact: result.Contact})
}

// updateContact handles PUT /api/contacts/{id}.
func (h *Handler) updateContact(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, "invalid contact id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	var body contactBody
	if !decodeJSON(w, r, &body) || !h.validateBody(w, r, &body) {
		return
	}

	result, err := h.svc.UpdateContact(r.Context(), principalFromContext(r.Context()), id, body.toRequest())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, contactResponse{Success: true, Contact: result.Contact})
}

// deleteContact handles DELETE /api/contacts/{id}. Deletion is blocked with
// 409 while sales orders still reference the contact.
func (h *Handler) deleteContact(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, "invalid contact id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteContact(r.Context(), principalFromContext(r.Context()), id); err != nil {
		writeDomainError(w, r, err)
		return
	}

	type response struct {
		Success bool `json:"success"`
	}
	writeJSON(w, response{Success: true})
}
