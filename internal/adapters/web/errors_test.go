package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"invoicing-backend/internal/core"
)

func TestStatusForKind(t *testing.T) {
	cases := []struct {
		kind core.Kind
		want int
	}{
		{core.KindValidation, http.StatusBadRequest},
		{core.KindInvalidCredentials, http.StatusUnauthorized},
		{core.KindForbidden, http.StatusForbidden},
		{core.KindNotFound, http.StatusNotFound},
		{core.KindConflict, http.StatusConflict},
		{core.KindInvalidTransition, http.StatusConflict},
		{core.KindPersistence, http.StatusInternalServerError},
		{core.Kind("SOMETHING_NEW"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := statusForKind(tc.kind); got != tc.want {
			t.Errorf("statusForKind(%s) = %d, want %d", tc.kind, got, tc.want)
		}
	}
}

func TestWriteDomainError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/orders/42", nil)

	writeDomainError(rec, req, core.Errorf(core.KindNotFound, "order 42 not found"))

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
	var body errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode error body: %v", err)
	}
	if body.Success {
		t.Error("Error responses must carry success=false")
	}
	if body.Code != "NOT_FOUND" {
		t.Errorf("Expected code NOT_FOUND, got %q", body.Code)
	}
	if body.Message != "order 42 not found" {
		t.Errorf("Unexpected message %q", body.Message)
	}
}
