package uow

import (
	"context"

	"github.com/corray333/lunchify/order/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/lunchify/order/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/lunchify/order/internal/dal/postgres"
	orderrepo "github.com/corray333/lunchify/order/internal/dal/repositories/order/postgres"
	outboxrepo "github.com/corray333/lunchify/order/internal/dal/repositories/outbox/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UnitOfWork groups order and outbox writes into a single transaction so a
// lifecycle event is recorded atomically with the order mutation it describes.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	Orders() iorderrepo.IOrderRepository
	Outbox() ioutboxrepo.IOutboxRepository
}

// Factory produces a fresh UnitOfWork per request; the underlying session is
// never shared across concurrent requests.
type Factory interface {
	New() UnitOfWork
}

type factory struct {
	pool *pgxpool.Pool
}

// NewFactory creates a Factory over the shared Postgres client.
func NewFactory(client *postgres.Client) Factory {
	return &factory{pool: client.Pool()}
}

func (f *factory) New() UnitOfWork {
	return &unitOfWork{
		pool:   f.pool,
		orders: orderrepo.NewPostgresOrderRepository(f.pool),
		outbox: outboxrepo.NewOutboxRepository(f.pool),
	}
}

type unitOfWork struct {
	pool   *pgxpool.Pool
	tx     pgx.Tx
	orders iorderrepo.IOrderRepository
	outbox ioutboxrepo.IOutboxRepository
}

func (u *unitOfWork) Orders() iorderrepo.IOrderRepository {
	return u.orders
}

func (u *unitOfWork) Outbox() ioutboxrepo.IOutboxRepository {
	return u.outbox
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return err
	}

	u.tx = tx
	u.orders = orderrepo.NewPostgresOrderRepository(tx)
	u.outbox = outboxrepo.NewOutboxRepository(tx)

	return nil
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	return u.tx.Commit(ctx)
}

func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	return u.tx.Rollback(ctx)
}
