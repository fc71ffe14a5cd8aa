// Package apperrors defines the error taxonomy shared by the stores, the
// assistant pipeline and the HTTP layer. Handlers translate these into
// status codes; anything unrecognized becomes a generic 500.
package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a mutation whose target does not exist or is already
// soft-deleted.
var ErrNotFound = errors.New("not found")

// ValidationError reports missing or malformed caller input. It is surfaced
// as a 400 with the reason and is never retried.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// NewValidation builds a ValidationError with the given reason.
func NewValidation(reason string) error {
	return &ValidationError{Reason: reason}
}

// StoreError wraps a persistence-layer failure. The wrapped detail is logged
// server-side only; clients see a generic internal error.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStore wraps err as a StoreError for operation op. A nil err returns nil,
// and ErrNotFound passes through untouched so callers can match on it.
func NewStore(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

// UpstreamError reports a non-success response from the AI provider. The
// captured body is for server-side diagnostics; it is never forwarded to the
// client.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream: status %d: %s", e.Status, e.Body)
}
