package web

import (
	"context"
	"net/http"

	"invoicing-backend/internal/app"
	"invoicing-backend/internal/core"

	"github.com/shopspring/decimal"
)

type orderResponse struct {
	Success bool             `json:"success"`
	Order   *core.SalesOrder `json:"order"`
}

// listOrders handles GET /api/orders.
func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListOrders(r.Context(), principalFromContext(r.Context()))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	type response struct {
		Success bool              `json:"success"`
		Orders  []core.SalesOrder `json:"orders"`
	}
	writeJSON(w, response{Success: true, Orders: result.Orders})
}

// getOrder handles GET /api/orders/{id}.
func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, "invalid order id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	result, err := h.svc.GetOrder(r.Context(), principalFromContext(r.Context()), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, orderResponse{Success: true, Order: result.Order})
}

// createOrder handles POST /api/orders.
// Body: { contact_id, notes?, items: [{item_id, quantity, unit_price?}] }
func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ContactID int    `json:"contact_id" validate:"required,gt=0"`
		Notes     string `json:"notes"`
		Items     []struct {
			ItemID    int              `json:"item_id" validate:"required,gt=0"`
			Quantity  int              `json:"quantity" validate:"required,gt=0"`
			UnitPrice *decimal.Decimal `json:"unit_price"`
		} `json:"items" validate:"required,min=1,dive"`
	}
	if !decodeJSON(w, r, &body) || !h.validateBody(w, r, &body) {
		return
	}

	req := app.CreateOrderRequest{ContactID: body.ContactID, Notes: body.Notes}
	for _, it := range body.Items {
		req.Lines = append(req.Lines, app.OrderLineInput{
			ItemID:    it.ItemID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	result, err := h.svc.CreateOrder(r.Context(), principalFromContext(r.Context()), req)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	// Exactly one response per call, after the whole unit of work committed.
	type response struct {
		Success bool             `json:"success"`
		OrderID int              `json:"order_id"`
		Code    string           `json:"code"`
		Order   *core.SalesOrder `json:"order"`
	}
	writeJSONStatus(w, http.StatusCreated, response{
		Success: true,
		OrderID: result.Order.ID,
		Code:    result.Order.Code,
		Order:   result.Order,
	})
}

// closeOrder handles POST /api/orders/{id}/close.
func (h *Handler) closeOrder(w http.ResponseWriter, r *http.Request) {
	h.transitionOrder(w, r, h.svc.CloseOrder)
}

// cancelOrder handles POST /api/orders/{id}/cancel.
func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	h.transitionOrder(w, r, h.svc.CancelOrder)
}

func (h *Handler) transitionOrder(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, principal *core.Principal, orderID int) (*app.OrderResult, error),
) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, "invalid order id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	result, err := op(r.Context(), principalFromContext(r.Context()), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, orderResponse{Success: true, Order: result.Order})
}
