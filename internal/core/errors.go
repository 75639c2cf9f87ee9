package core

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error for callers that need a machine-readable
// category (the web adapter maps kinds to HTTP status codes).
type Kind string

const (
	KindValidation         Kind = "VALIDATION"
	KindInvalidCredentials Kind = "INVALID_CREDENTIALS"
	KindForbidden          Kind = "FORBIDDEN"
	KindNotFound           Kind = "NOT_FOUND"
	KindConflict           Kind = "CONFLICT"
	KindInvalidTransition  Kind = "INVALID_TRANSITION"
	KindPersistence        Kind = "PERSISTENCE"
)

// DomainError carries a kind plus a human-readable message. Persistence
// errors additionally wrap the underlying driver error.
type DomainError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error { return e.Err }

// Errorf builds a DomainError of the given kind.
func Errorf(kind Kind, format string, args ...any) *DomainError {
	return &DomainError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// persistenceError wraps a store failure. Every error that escapes a service
// without a more specific kind ends up here.
func persistenceError(msg string, err error) *DomainError {
	return &DomainError{Kind: KindPersistence, Message: msg, Err: err}
}

// KindOf extracts the kind from err, treating anything that is not a
// DomainError as a persistence failure.
func KindOf(err error) Kind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindPersistence
}
