package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound indicates the provider has no matching record
	ErrNotFound = errors.New("catalog item not found")

	// ErrTransport indicates a network or payload failure talking to the provider
	ErrTransport = errors.New("provider transport failure")

	// ErrPersistenceCorrupt indicates the durable bookmark snapshot could not be decoded
	ErrPersistenceCorrupt = errors.New("bookmark snapshot is corrupt")

	// ErrStorageUnavailable indicates the durable bookmark snapshot could not be read
	ErrStorageUnavailable = errors.New("bookmark storage unavailable")

	// ErrInvalidContentType indicates an unknown content type name
	ErrInvalidContentType = errors.New("invalid content type")

	// ErrInvalidBookmark indicates a bookmark failed validation
	ErrInvalidBookmark = errors.New("invalid bookmark")
)

// TransportError wraps a provider failure with the operation that caused it.
// errors.Is(err, ErrTransport) holds for every TransportError.
type TransportError struct {
	Op  string // "fetch" or "search"
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is matches ErrTransport so callers can test the failure class without errors.As
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// NewTransportError wraps err as a TransportError for op
func NewTransportError(op string, err error) error {
	return &TransportError{Op: op, Err: err}
}
