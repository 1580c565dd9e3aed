package inmemory

import (
	"context"
	"sync"

	"github.com/corray333/lunchify/order/internal/service/models/order"
	"github.com/google/uuid"
)

// Repository is an in-memory order store. It preserves insertion order for
// pagination, matching the storage-default ordering of the Postgres
// implementation.
type Repository struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]*order.Order
	ids    []uuid.UUID
}

// NewRepository creates an empty in-memory repository.
func NewRepository() *Repository {
	return &Repository{
		orders: make(map[uuid.UUID]*order.Order),
	}
}

func (r *Repository) Create(_ context.Context, ord *order.Order) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *ord
	r.orders[ord.ID] = &stored
	r.ids = append(r.ids, ord.ID)

	return ord, nil
}

func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.orders[id]
	if !ok {
		return nil, nil
	}

	copied := *stored

	return &copied, nil
}

func (r *Repository) Update(_ context.Context, ord *order.Order) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.orders[ord.ID]
	if !ok {
		return nil, &order.NotFoundError{ID: ord.ID}
	}

	stored.Items = ord.Items
	stored.Status = ord.Status
	stored.TotalPrice = ord.TotalPrice
	stored.DeliveryAddress = ord.DeliveryAddress
	stored.SpecialInstructions = ord.SpecialInstructions
	stored.UpdatedAt = ord.UpdatedAt

	return ord, nil
}

func (r *Repository) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return false, nil
	}

	delete(r.orders, id)
	for i, stored := range r.ids {
		if stored == id {
			r.ids = append(r.ids[:i], r.ids[i+1:]...)
			break
		}
	}

	return true, nil
}

func (r *Repository) ListByUser(_ context.Context, userID uuid.UUID, limit, offset int) ([]order.Order, error) {
	return r.list(func(o *order.Order) bool { return o.UserID == userID }, limit, offset), nil
}

func (r *Repository) ListByRestaurant(_ context.Context, restaurantID uuid.UUID, limit, offset int) ([]order.Order, error) {
	return r.list(func(o *order.Order) bool { return o.RestaurantID == restaurantID }, limit, offset), nil
}

func (r *Repository) list(match func(*order.Order) bool, limit, offset int) []order.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := []order.Order{}
	for _, id := range r.ids {
		if ord, ok := r.orders[id]; ok && match(ord) {
			matched = append(matched, *ord)
		}
	}

	if offset >= len(matched) {
		return []order.Order{}
	}
	matched = matched[offset:]

	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}

	return matched
}
