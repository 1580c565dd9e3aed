package ordersvc

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/corray333/lunchify/order/internal/cache"
	"github.com/corray333/lunchify/order/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/lunchify/order/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/lunchify/order/internal/dal/repositories/order/inmemory"
	"github.com/corray333/lunchify/order/internal/dal/uow"
	"github.com/corray333/lunchify/order/internal/service/models/order"
	"github.com/corray333/lunchify/order/internal/service/models/orderitem"
	"github.com/corray333/lunchify/order/internal/service/models/outbox"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// memoryOutbox records enqueued lifecycle events.
type memoryOutbox struct {
	mu       sync.Mutex
	messages []outbox.Message
}

func (o *memoryOutbox) Insert(_ context.Context, msg outbox.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.messages = append(o.messages, msg)

	return nil
}

func (o *memoryOutbox) GetPendingMessages(context.Context, int) ([]outbox.Message, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	return append([]outbox.Message{}, o.messages...), nil
}

func (o *memoryOutbox) Delete(context.Context, int64) error { return nil }

func (o *memoryOutbox) UpdateRetry(context.Context, int64, int, string, time.Time) error {
	return nil
}

func (o *memoryOutbox) routingKeys() []string {
	o.mu.Lock()
	defer o.mu.Unlock()

	keys := make([]string, 0, len(o.messages))
	for _, msg := range o.messages {
		keys = append(keys, msg.RoutingKey)
	}

	return keys
}

// memoryUOW runs order and outbox writes against in-memory stores without
// transactional semantics.
type memoryUOW struct {
	orders iorderrepo.IOrderRepository
	outbox ioutboxrepo.IOutboxRepository
}

func (u *memoryUOW) Begin(context.Context) error           { return nil }
func (u *memoryUOW) Commit(context.Context) error          { return nil }
func (u *memoryUOW) Rollback(context.Context) error        { return nil }
func (u *memoryUOW) Orders() iorderrepo.IOrderRepository   { return u.orders }
func (u *memoryUOW) Outbox() ioutboxrepo.IOutboxRepository { return u.outbox }

type memoryFactory struct {
	work *memoryUOW
}

func (f *memoryFactory) New() uow.UnitOfWork { return f.work }

// downCache simulates an unreachable cache engine: every operation fails.
type downCache struct{}

func (downCache) Get(context.Context, string, any) bool                { return false }
func (downCache) Set(context.Context, string, any, time.Duration) bool { return false }
func (downCache) Delete(context.Context, string) bool                  { return false }
func (downCache) Clear(context.Context) bool                           { return true }

type testEnv struct {
	svc    *OrderService
	repo   *inmemory.Repository
	cache  *cache.Memory
	outbox *memoryOutbox
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	repo := inmemory.NewRepository()
	events := &memoryOutbox{}
	store := cache.NewMemory()

	svc := MustNewOrderService(
		WithOrderRepository(repo),
		WithUnitOfWorkFactory(&memoryFactory{work: &memoryUOW{orders: repo, outbox: events}}),
		WithCache(store),
		WithCacheTTL(time.Hour),
	)

	return &testEnv{svc: svc, repo: repo, cache: store, outbox: events}
}

func testItems() []orderitem.OrderItem {
	return []orderitem.OrderItem{
		{ItemID: "1", Name: "Pizza", Price: 10.0, Quantity: 1},
	}
}

func createOrder(t *testing.T, env *testEnv) *order.Order {
	t.Helper()

	ord, err := env.svc.CreateOrder(
		context.Background(), uuid.New(), uuid.New(), testItems(), 10.0, "123 Main St", "",
	)
	require.NoError(t, err)

	return ord
}

func TestCreateOrder(t *testing.T) {
	env := newTestEnv(t)

	userID := uuid.New()
	restaurantID := uuid.New()

	ord, err := env.svc.CreateOrder(
		context.Background(), userID, restaurantID, testItems(), 10.0, "123 Main St", "",
	)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, ord.ID)
	require.Equal(t, order.StatusPending, ord.Status)
	require.Equal(t, 10.0, ord.TotalPrice)
	require.Equal(t, ord.CreatedAt, ord.UpdatedAt)

	// the fresh snapshot is populated, not invalidated
	require.True(t, env.cache.Contains("order:"+ord.ID.String()))
	require.Equal(t, []string{outbox.RoutingKeyOrderCreated}, env.outbox.routingKeys())
}

func TestCreateOrder_ValidationFailure(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.CreateOrder(
		context.Background(), uuid.New(), uuid.New(), testItems(), 0, "123 Main St", "",
	)

	var validationErr *order.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Empty(t, env.outbox.routingKeys())
}

func TestGetOrder_RoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ord := createOrder(t, env)

	got, err := env.svc.GetOrder(context.Background(), ord.ID)
	require.NoError(t, err)
	require.Equal(t, ord, got)
}

func TestGetOrder_CacheHitBypassesRepository(t *testing.T) {
	env := newTestEnv(t)
	ord := createOrder(t, env)

	// remove the durable row; the cached snapshot still serves reads
	deleted, err := env.repo.Delete(context.Background(), ord.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	got, err := env.svc.GetOrder(context.Background(), ord.ID)
	require.NoError(t, err)
	require.Equal(t, ord.ID, got.ID)
}

func TestGetOrder_MissPopulatesCache(t *testing.T) {
	env := newTestEnv(t)
	ord := createOrder(t, env)

	env.cache.Clear(context.Background())
	require.False(t, env.cache.Contains("order:"+ord.ID.String()))

	got, err := env.svc.GetOrder(context.Background(), ord.ID)
	require.NoError(t, err)
	require.Equal(t, ord.ID, got.ID)
	require.True(t, env.cache.Contains("order:"+ord.ID.String()))
}

func TestGetOrder_NotFound(t *testing.T) {
	env := newTestEnv(t)

	id := uuid.New()
	_, err := env.svc.GetOrder(context.Background(), id)

	var notFound *order.NotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, id, notFound.ID)
	require.False(t, env.cache.Contains("order:"+id.String()))
}

func TestUpdateOrder_PartialUpdate(t *testing.T) {
	env := newTestEnv(t)
	ord := createOrder(t, env)

	instructions := "ring the bell"
	updated, err := env.svc.UpdateOrder(context.Background(), ord.ID, nil, &instructions)
	require.NoError(t, err)
	require.Equal(t, "ring the bell", updated.SpecialInstructions)
	require.Equal(t, ord.Items, updated.Items)
	require.False(t, updated.UpdatedAt.Before(ord.UpdatedAt))

	// write invalidates the cache entry
	require.False(t, env.cache.Contains("order:"+ord.ID.String()))
	require.Contains(t, env.outbox.routingKeys(), outbox.RoutingKeyOrderUpdated)

	newItems := []orderitem.OrderItem{
		{ItemID: "2", Name: "Pasta", Price: 6.0, Quantity: 2},
	}
	updated, err = env.svc.UpdateOrder(context.Background(), ord.ID, newItems, nil)
	require.NoError(t, err)
	require.Equal(t, newItems, updated.Items)
	require.Equal(t, "ring the bell", updated.SpecialInstructions)
}

func TestUpdateOrder_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.UpdateOrder(context.Background(), uuid.New(), testItems(), nil)

	var notFound *order.NotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Empty(t, env.outbox.routingKeys())
}

func TestConfirmOrder_DoubleConfirm(t *testing.T) {
	env := newTestEnv(t)
	ord := createOrder(t, env)

	confirmed, err := env.svc.ConfirmOrder(context.Background(), ord.ID)
	require.NoError(t, err)
	require.Equal(t, order.StatusConfirmed, confirmed.Status)
	require.False(t, env.cache.Contains("order:"+ord.ID.String()))

	_, err = env.svc.ConfirmOrder(context.Background(), ord.ID)

	var statusErr *order.InvalidStatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, order.StatusConfirmed, statusErr.Current)
}

func TestCancelOrder_AfterConfirm(t *testing.T) {
	env := newTestEnv(t)
	ord := createOrder(t, env)

	_, err := env.svc.ConfirmOrder(context.Background(), ord.ID)
	require.NoError(t, err)

	cancelled, err := env.svc.CancelOrder(context.Background(), ord.ID)
	require.NoError(t, err)
	require.Equal(t, order.StatusCancelled, cancelled.Status)
	require.Contains(t, env.outbox.routingKeys(), outbox.RoutingKeyOrderCancelled)
}

func TestCancelOrder_AfterCompletion(t *testing.T) {
	env := newTestEnv(t)
	ord := createOrder(t, env)

	// the fulfillment system moved the order to completed out of band
	ord.Status = order.StatusCompleted
	_, err := env.repo.Update(context.Background(), ord)
	require.NoError(t, err)
	env.cache.Clear(context.Background())

	_, err = env.svc.CancelOrder(context.Background(), ord.ID)

	var statusErr *order.InvalidStatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, order.StatusCompleted, statusErr.Current)
}

func TestConfirmCancel_NotFound(t *testing.T) {
	env := newTestEnv(t)
	id := uuid.New()

	var notFound *order.NotFoundError

	_, err := env.svc.ConfirmOrder(context.Background(), id)
	require.ErrorAs(t, err, &notFound)

	_, err = env.svc.CancelOrder(context.Background(), id)
	require.ErrorAs(t, err, &notFound)

	require.Empty(t, env.outbox.routingKeys())
}

func TestDeleteOrder_Idempotence(t *testing.T) {
	env := newTestEnv(t)
	ord := createOrder(t, env)

	deleted, err := env.svc.DeleteOrder(context.Background(), ord.ID)
	require.NoError(t, err)
	require.True(t, deleted)
	require.False(t, env.cache.Contains("order:"+ord.ID.String()))
	require.Contains(t, env.outbox.routingKeys(), outbox.RoutingKeyOrderDeleted)

	deleted, err = env.svc.DeleteOrder(context.Background(), ord.ID)
	require.NoError(t, err)
	require.False(t, deleted)

	deleted, err = env.svc.DeleteOrder(context.Background(), uuid.New())
	require.NoError(t, err)
	require.False(t, deleted)
}

func TestGetUserOrders_Pagination(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()

	for i := 0; i < 15; i++ {
		_, err := env.svc.CreateOrder(
			context.Background(), userID, uuid.New(), testItems(), 10.0, "123 Main St", "",
		)
		require.NoError(t, err)
	}

	// default page size applies when limit is not positive
	page, err := env.svc.GetUserOrders(context.Background(), userID, 0, 0)
	require.NoError(t, err)
	require.Len(t, page, 10)

	page, err = env.svc.GetUserOrders(context.Background(), userID, 10, 10)
	require.NoError(t, err)
	require.Len(t, page, 5)
}

func TestGetRestaurantOrders(t *testing.T) {
	env := newTestEnv(t)
	restaurantID := uuid.New()

	for i := 0; i < 3; i++ {
		_, err := env.svc.CreateOrder(
			context.Background(), uuid.New(), restaurantID, testItems(), 10.0, "123 Main St", "",
		)
		require.NoError(t, err)
	}

	page, err := env.svc.GetRestaurantOrders(context.Background(), restaurantID, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
}

func TestCacheFaultsNeverFailOperations(t *testing.T) {
	repo := inmemory.NewRepository()
	events := &memoryOutbox{}

	svc := MustNewOrderService(
		WithOrderRepository(repo),
		WithUnitOfWorkFactory(&memoryFactory{work: &memoryUOW{orders: repo, outbox: events}}),
		WithCache(downCache{}),
	)

	ord, err := svc.CreateOrder(
		context.Background(), uuid.New(), uuid.New(), testItems(), 10.0, "123 Main St", "",
	)
	require.NoError(t, err)

	got, err := svc.GetOrder(context.Background(), ord.ID)
	require.NoError(t, err)
	require.Equal(t, ord.ID, got.ID)

	_, err = svc.ConfirmOrder(context.Background(), ord.ID)
	require.NoError(t, err)

	deleted, err := svc.DeleteOrder(context.Background(), ord.ID)
	require.NoError(t, err)
	require.True(t, deleted)
}
