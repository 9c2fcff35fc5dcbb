package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidInvoice  = errors.New("invalid invoice record")
	ErrDegenerateInput = errors.New("degenerate input")
	ErrInvalidSortKey  = errors.New("invalid sort key")
	ErrInvalidAddress  = errors.New("invalid address")
)

// ValidationError reports the first invariant an invoice record violates.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid invoice %s: %s", e.Field, e.Reason)
}

// Unwrap lets callers match any validation failure with ErrInvalidInvoice.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInvoice
}
