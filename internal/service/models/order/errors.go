package order

import (
	"fmt"

	"github.com/google/uuid"
)

// NotFoundError is returned when no order exists for the requested identifier.
type NotFoundError struct {
	ID uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("order with ID %s not found", e.ID)
}

// InvalidStatusError is returned when a status transition is not permitted
// from the order's current status.
type InvalidStatusError struct {
	Current Status
	Message string
}

func (e *InvalidStatusError) Error() string {
	return e.Message
}

// ValidationError is returned when order construction or mutation violates
// an entity invariant.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
