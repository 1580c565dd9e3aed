package ordersvc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/corray333/lunchify/order/internal/cache"
	"github.com/corray333/lunchify/order/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/lunchify/order/internal/dal/uow"
	"github.com/corray333/lunchify/order/internal/service/models/order"
	"github.com/corray333/lunchify/order/internal/service/models/orderitem"
	"github.com/corray333/lunchify/order/internal/service/models/outbox"
	"github.com/google/uuid"
	"github.com/spf13/viper"
)

const (
	defaultCacheTTL = time.Hour
	defaultPageSize = 10
)

// OrderService owns the order lifecycle: entity validation, persistence and
// the cache-consistency contract. Every mutating operation follows the same
// discipline: validate, persist through the repository, then invalidate
// (never update in place) the cache entry.
type OrderService struct {
	repo     iorderrepo.IOrderRepository
	uow      uow.Factory
	cache    cache.Store
	cacheTTL time.Duration
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{
		cacheTTL: defaultCacheTTL,
	}

	if ttl := viper.GetDuration("cache.order_ttl"); ttl > 0 {
		s.cacheTTL = ttl
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.repo == nil || s.uow == nil || s.cache == nil {
		panic("ordersvc: repository, unit of work and cache are required")
	}

	return s
}

// WithOrderRepository sets the order repository used for reads.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithOrderRepository(repo iorderrepo.IOrderRepository) option {
	return func(s *OrderService) {
		s.repo = repo
	}
}

// WithUnitOfWorkFactory sets the factory producing write transactions.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWorkFactory(factory uow.Factory) option {
	return func(s *OrderService) {
		s.uow = factory
	}
}

// WithCache sets the cache for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithCache(store cache.Store) option {
	return func(s *OrderService) {
		s.cache = store
	}
}

// WithCacheTTL overrides the order snapshot TTL.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithCacheTTL(ttl time.Duration) option {
	return func(s *OrderService) {
		s.cacheTTL = ttl
	}
}

func cacheKey(id uuid.UUID) string {
	return "order:" + id.String()
}

// CreateOrder validates and persists a new pending order, recording the
// order.created event in the same transaction, and populates the cache with
// the fresh snapshot.
func (s *OrderService) CreateOrder(
	ctx context.Context,
	userID uuid.UUID,
	restaurantID uuid.UUID,
	items []orderitem.OrderItem,
	totalPrice float64,
	deliveryAddress string,
	specialInstructions string,
) (*order.Order, error) {
	ord, err := order.New(userID, restaurantID, items, totalPrice, deliveryAddress, specialInstructions)
	if err != nil {
		return nil, err
	}

	work := s.uow.New()
	if err := work.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = work.Rollback(ctx) }()

	created, err := work.Orders().Create(ctx, ord)
	if err != nil {
		return nil, err
	}

	if err := enqueueEvent(ctx, work, outbox.RoutingKeyOrderCreated, created); err != nil {
		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	// A fresh create cannot be stale, so the cache is populated rather than
	// invalidated here.
	s.cache.Set(ctx, cacheKey(created.ID), created, s.cacheTTL)

	slog.Info("Order created", "order_id", created.ID)

	return created, nil
}

// GetOrder retrieves an order through the cache-aside path: a hit bypasses
// the repository entirely, a miss reads durable state and populates the
// cache before returning.
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return cache.GetOrSet(ctx, s.cache, cacheKey(id), s.cacheTTL,
		func(ctx context.Context) (*order.Order, error) {
			ord, err := s.repo.GetByID(ctx, id)
			if err != nil {
				return nil, err
			}
			if ord == nil {
				slog.Warn("Order not found", "order_id", id)

				return nil, &order.NotFoundError{ID: id}
			}

			slog.Info("Order retrieved from database", "order_id", id)

			return ord, nil
		})
}

// UpdateOrder applies a partial update: a nil items slice or nil instructions
// pointer leaves the field unchanged.
func (s *OrderService) UpdateOrder(
	ctx context.Context,
	id uuid.UUID,
	items []orderitem.OrderItem,
	specialInstructions *string,
) (*order.Order, error) {
	ord, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := ord.ApplyUpdate(items, specialInstructions); err != nil {
		return nil, err
	}

	updated, err := s.persistWithEvent(ctx, ord, outbox.RoutingKeyOrderUpdated)
	if err != nil {
		return nil, err
	}

	slog.Info("Order updated", "order_id", id)

	return updated, nil
}

// ConfirmOrder transitions a pending order to confirmed.
func (s *OrderService) ConfirmOrder(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	ord, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := ord.Confirm(); err != nil {
		slog.Error("Cannot confirm order", "order_id", id, "error", err)

		return nil, err
	}

	confirmed, err := s.persistWithEvent(ctx, ord, outbox.RoutingKeyOrderConfirmed)
	if err != nil {
		return nil, err
	}

	slog.Info("Order confirmed", "order_id", id)

	return confirmed, nil
}

// CancelOrder transitions a pending or confirmed order to cancelled.
func (s *OrderService) CancelOrder(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	ord, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := ord.Cancel(); err != nil {
		slog.Error("Cannot cancel order", "order_id", id, "error", err)

		return nil, err
	}

	cancelled, err := s.persistWithEvent(ctx, ord, outbox.RoutingKeyOrderCancelled)
	if err != nil {
		return nil, err
	}

	slog.Info("Order cancelled", "order_id", id)

	return cancelled, nil
}

type orderDeletedEvent struct {
	OrderID uuid.UUID `json:"order_id"`
}

// DeleteOrder removes an order, reporting whether a row was deleted. Deleting
// a missing order is not an error.
func (s *OrderService) DeleteOrder(ctx context.Context, id uuid.UUID) (bool, error) {
	work := s.uow.New()
	if err := work.Begin(ctx); err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = work.Rollback(ctx) }()

	deleted, err := work.Orders().Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if !deleted {
		return false, nil
	}

	if err := enqueueEvent(ctx, work, outbox.RoutingKeyOrderDeleted, orderDeletedEvent{OrderID: id}); err != nil {
		return false, err
	}

	if err := work.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.cache.Delete(ctx, cacheKey(id))

	slog.Info("Order deleted", "order_id", id)

	return true, nil
}

// GetUserOrders returns a page of the user's orders; list results are not
// cached.
func (s *OrderService) GetUserOrders(
	ctx context.Context,
	userID uuid.UUID,
	limit, offset int,
) ([]order.Order, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}

	return s.repo.ListByUser(ctx, userID, limit, offset)
}

// GetRestaurantOrders returns a page of the restaurant's orders; list results
// are not cached.
func (s *OrderService) GetRestaurantOrders(
	ctx context.Context,
	restaurantID uuid.UUID,
	limit, offset int,
) ([]order.Order, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}

	return s.repo.ListByRestaurant(ctx, restaurantID, limit, offset)
}

// persistWithEvent writes the mutated order and its lifecycle event in one
// transaction, then invalidates the cache entry.
func (s *OrderService) persistWithEvent(
	ctx context.Context,
	ord *order.Order,
	routingKey string,
) (*order.Order, error) {
	work := s.uow.New()
	if err := work.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = work.Rollback(ctx) }()

	updated, err := work.Orders().Update(ctx, ord)
	if err != nil {
		return nil, err
	}

	if err := enqueueEvent(ctx, work, routingKey, updated); err != nil {
		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.cache.Delete(ctx, cacheKey(ord.ID))

	return updated, nil
}

func enqueueEvent(ctx context.Context, work uow.UnitOfWork, routingKey string, payload any) error {
	msg, err := outbox.NewOrderEvent(routingKey, payload)
	if err != nil {
		return err
	}

	return work.Outbox().Insert(ctx, msg)
}
