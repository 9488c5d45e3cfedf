package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound matches every *NotFoundError via errors.Is.
	ErrNotFound = errors.New("not found")

	// ErrBackend wraps failures of the underlying store (I/O, driver, constraint).
	ErrBackend = errors.New("storage backend failure")
)

// NotFoundError reports an identifier that does not resolve to a stored record.
type NotFoundError struct {
	Kind string
	ID   uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NotFound builds a *NotFoundError for the given entity kind and id.
func NotFound(kind string, id uint) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// Backend wraps err so that errors.Is(result, ErrBackend) holds while the
// driver error stays reachable through errors.As.
func Backend(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrBackend, op, err)
}
