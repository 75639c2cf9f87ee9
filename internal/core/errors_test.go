package core_test

import (
	"errors"
	"fmt"
	"testing"

	"invoicing-backend/internal/core"
)

func TestKindOf(t *testing.T) {
	notFound := core.Errorf(core.KindNotFound, "order %d not found", 42)
	if core.KindOf(notFound) != core.KindNotFound {
		t.Errorf("Expected NOT_FOUND, got %s", core.KindOf(notFound))
	}

	// Kind survives wrapping.
	wrapped := fmt.Errorf("handling request: %w", notFound)
	if core.KindOf(wrapped) != core.KindNotFound {
		t.Errorf("Expected NOT_FOUND through wrapping, got %s", core.KindOf(wrapped))
	}

	// Anything else counts as a persistence failure.
	if core.KindOf(errors.New("connection reset")) != core.KindPersistence {
		t.Errorf("Expected PERSISTENCE for a plain error, got %s", core.KindOf(errors.New("x")))
	}
}

func TestDomainError_Message(t *testing.T) {
	err := core.Errorf(core.KindValidation, "line %d: quantity must be positive", 2)
	if err.Error() != "line 2: quantity must be positive" {
		t.Errorf("Unexpected message: %q", err.Error())
	}

	inner := errors.New("broken pipe")
	de := &core.DomainError{Kind: core.KindPersistence, Message: "failed to query orders", Err: inner}
	if de.Error() != "failed to query orders: broken pipe" {
		t.Errorf("Unexpected message: %q", de.Error())
	}
	if !errors.Is(de, inner) {
		t.Error("Expected the wrapped error to be reachable via errors.Is")
	}
}
