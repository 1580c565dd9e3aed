package iorderrepo

import (
	"context"

	"github.com/corray333/lunchify/order/internal/service/models/order"
	"github.com/google/uuid"
)

// IOrderRepository is the storage-agnostic contract for order persistence.
type IOrderRepository interface {
	// Create persists a new order and returns it unchanged.
	Create(ctx context.Context, ord *order.Order) (*order.Order, error)

	// GetByID returns the order, or (nil, nil) when no such order exists.
	GetByID(ctx context.Context, id uuid.UUID) (*order.Order, error)

	// Update overwrites the mutable fields of an existing order. It returns
	// *order.NotFoundError when no row with that identifier exists.
	Update(ctx context.Context, ord *order.Order) (*order.Order, error)

	// Delete removes the order and reports whether a row was deleted.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// ListByUser returns a page of the user's orders in insertion order.
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]order.Order, error)

	// ListByRestaurant returns a page of the restaurant's orders in insertion order.
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID, limit, offset int) ([]order.Order, error)
}
