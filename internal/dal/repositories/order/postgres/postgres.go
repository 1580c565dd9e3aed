package postgresrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/lunchify/order/internal/dal/postgres"
	"github.com/corray333/lunchify/order/internal/service/models/order"
	"github.com/corray333/lunchify/order/internal/service/models/orderitem"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const ordersTable = "orders"

var orderColumns = []string{
	"id",
	"user_id",
	"restaurant_id",
	"items",
	"status",
	"total_price",
	"delivery_address",
	"special_instructions",
	"created_at",
	"updated_at",
}

// OrderDal represents the order data access layer model.
type OrderDal struct {
	ID                  string    `db:"id"`
	UserID              string    `db:"user_id"`
	RestaurantID        string    `db:"restaurant_id"`
	Items               []byte    `db:"items"`
	Status              string    `db:"status"`
	TotalPrice          float64   `db:"total_price"`
	DeliveryAddress     string    `db:"delivery_address"`
	SpecialInstructions string    `db:"special_instructions"`
	CreatedAt           time.Time `db:"created_at"`
	UpdatedAt           time.Time `db:"updated_at"`
}

// ToModel converts OrderDal to the service layer Order model.
func (d *OrderDal) ToModel() (*order.Order, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse order id: %w", err)
	}

	userID, err := uuid.Parse(d.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user id: %w", err)
	}

	restaurantID, err := uuid.Parse(d.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse restaurant id: %w", err)
	}

	status, err := order.ParseStatus(d.Status)
	if err != nil {
		return nil, err
	}

	var items []orderitem.OrderItem
	if err := json.Unmarshal(d.Items, &items); err != nil {
		return nil, fmt.Errorf("failed to decode order items: %w", err)
	}

	return &order.Order{
		ID:                  id,
		UserID:              userID,
		RestaurantID:        restaurantID,
		Items:               items,
		Status:              status,
		TotalPrice:          d.TotalPrice,
		DeliveryAddress:     d.DeliveryAddress,
		SpecialInstructions: d.SpecialInstructions,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}, nil
}

// OrderDalFromModel converts the service layer Order model to OrderDal.
func OrderDalFromModel(o *order.Order) (*OrderDal, error) {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode order items: %w", err)
	}

	return &OrderDal{
		ID:                  o.ID.String(),
		UserID:              o.UserID.String(),
		RestaurantID:        o.RestaurantID.String(),
		Items:               items,
		Status:              o.Status.String(),
		TotalPrice:          o.TotalPrice,
		DeliveryAddress:     o.DeliveryAddress,
		SpecialInstructions: o.SpecialInstructions,
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
	}, nil
}

// PostgresOrderRepository persists orders in PostgreSQL.
type PostgresOrderRepository struct {
	conn postgres.Querier
}

// NewPostgresOrderRepository creates a repository over a pool or an open
// transaction.
func NewPostgresOrderRepository(conn postgres.Querier) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
	}
}

// Create persists a new order and returns it unchanged.
func (r *PostgresOrderRepository) Create(ctx context.Context, ord *order.Order) (*order.Order, error) {
	dal, err := OrderDalFromModel(ord)
	if err != nil {
		return nil, err
	}

	query, args, err := sq.Insert(ordersTable).
		Columns(orderColumns...).
		Values(
			dal.ID,
			dal.UserID,
			dal.RestaurantID,
			dal.Items,
			dal.Status,
			dal.TotalPrice,
			dal.DeliveryAddress,
			dal.SpecialInstructions,
			dal.CreatedAt,
			dal.UpdatedAt,
		).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	return ord, nil
}

// GetByID returns the order, or (nil, nil) when no such order exists.
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	query, args, err := sq.Select(orderColumns...).
		From(ordersTable).
		Where(sq.Eq{"id": id.String()}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	dal, err := scanOrder(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	return dal.ToModel()
}

// Update overwrites the mutable fields of an existing order. Identifier,
// user, restaurant and created_at stay as written at creation.
func (r *PostgresOrderRepository) Update(ctx context.Context, ord *order.Order) (*order.Order, error) {
	dal, err := OrderDalFromModel(ord)
	if err != nil {
		return nil, err
	}

	query, args, err := sq.Update(ordersTable).
		Set("items", dal.Items).
		Set("status", dal.Status).
		Set("total_price", dal.TotalPrice).
		Set("delivery_address", dal.DeliveryAddress).
		Set("special_instructions", dal.SpecialInstructions).
		Set("updated_at", dal.UpdatedAt).
		Where(sq.Eq{"id": dal.ID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return nil, &order.NotFoundError{ID: ord.ID}
	}

	return ord, nil
}

// Delete removes the order and reports whether a row was deleted.
func (r *PostgresOrderRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	query, args, err := sq.Delete(ordersTable).
		Where(sq.Eq{"id": id.String()}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to delete order: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// ListByUser returns a page of the user's orders in insertion order.
func (r *PostgresOrderRepository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	limit, offset int,
) ([]order.Order, error) {
	return r.list(ctx, sq.Eq{"user_id": userID.String()}, limit, offset)
}

// ListByRestaurant returns a page of the restaurant's orders in insertion order.
func (r *PostgresOrderRepository) ListByRestaurant(
	ctx context.Context,
	restaurantID uuid.UUID,
	limit, offset int,
) ([]order.Order, error) {
	return r.list(ctx, sq.Eq{"restaurant_id": restaurantID.String()}, limit, offset)
}

func (r *PostgresOrderRepository) list(
	ctx context.Context,
	filter sq.Eq,
	limit, offset int,
) ([]order.Order, error) {
	builder := sq.Select(orderColumns...).
		From(ordersTable).
		Where(filter).
		OrderBy("created_at ASC", "id ASC").
		PlaceholderFormat(sq.Dollar)

	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	if offset > 0 {
		builder = builder.Offset(uint64(offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	result := []order.Order{}
	for rows.Next() {
		dal, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}

		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert order dal to model: %w", err)
		}

		result = append(result, *model)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

func scanOrder(row pgx.Row) (*OrderDal, error) {
	var dal OrderDal

	err := row.Scan(
		&dal.ID,
		&dal.UserID,
		&dal.RestaurantID,
		&dal.Items,
		&dal.Status,
		&dal.TotalPrice,
		&dal.DeliveryAddress,
		&dal.SpecialInstructions,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &dal, nil
}
