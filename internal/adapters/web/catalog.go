package web

import (
	"net/http"

	"invoicing-backend/internal/core"
)

type itemListResponse struct {
	Success bool               `json:"success"`
	Items   []core.CatalogItem `json:"items"`
}

// listItems handles GET /api/items.
func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListItems(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, itemListResponse{Success: true, Items: result.Items})
}

// lowStockItems handles GET /api/items/low-stock — the dashboard alert feed.
func (h *Handler) lowStockItems(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.LowStockItems(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, itemListResponse{Success: true, Items: result.Items})
}
