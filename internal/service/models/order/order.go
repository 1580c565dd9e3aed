package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/corray333/lunchify/order/internal/service/models/orderitem"
	"github.com/google/uuid"
)

// Order represents a placed food order and its fulfillment status.
type Order struct {
	ID                  uuid.UUID             `json:"id"`
	UserID              uuid.UUID             `json:"user_id"`
	RestaurantID        uuid.UUID             `json:"restaurant_id"`
	Items               []orderitem.OrderItem `json:"items"`
	Status              Status                `json:"status"`
	TotalPrice          float64               `json:"total_price"`
	DeliveryAddress     string                `json:"delivery_address"`
	SpecialInstructions string                `json:"special_instructions,omitempty"`
	CreatedAt           time.Time             `json:"created_at"`
	UpdatedAt           time.Time             `json:"updated_at"`
}

// New constructs a pending order, enforcing the entity invariants: positive
// total price, at least one valid item and a non-empty delivery address.
// It never returns a partially valid order.
func New(
	userID uuid.UUID,
	restaurantID uuid.UUID,
	items []orderitem.OrderItem,
	totalPrice float64,
	deliveryAddress string,
	specialInstructions string,
) (*Order, error) {
	if totalPrice <= 0 {
		return nil, &ValidationError{Message: "total price must be positive"}
	}

	if err := validateItems(items); err != nil {
		return nil, err
	}

	address := strings.TrimSpace(deliveryAddress)
	if address == "" {
		return nil, &ValidationError{Message: "delivery address cannot be empty"}
	}

	now := time.Now().UTC()

	return &Order{
		ID:                  uuid.New(),
		UserID:              userID,
		RestaurantID:        restaurantID,
		Items:               items,
		Status:              StatusPending,
		TotalPrice:          totalPrice,
		DeliveryAddress:     address,
		SpecialInstructions: specialInstructions,
		CreatedAt:           now,
		UpdatedAt:           now,
	}, nil
}

// Confirm transitions a pending order to confirmed.
func (o *Order) Confirm() error {
	if o.Status != StatusPending {
		return &InvalidStatusError{
			Current: o.Status,
			Message: "only pending orders can be confirmed",
		}
	}

	o.Status = StatusConfirmed
	o.touch()

	return nil
}

// Cancel transitions a pending or confirmed order to cancelled.
func (o *Order) Cancel() error {
	if o.Status != StatusPending && o.Status != StatusConfirmed {
		return &InvalidStatusError{
			Current: o.Status,
			Message: fmt.Sprintf("cannot cancel order in %s status", o.Status),
		}
	}

	o.Status = StatusCancelled
	o.touch()

	return nil
}

// IsCompleted reports whether the order has been completed.
func (o *Order) IsCompleted() bool {
	return o.Status == StatusCompleted
}

// ApplyUpdate overwrites the mutable order details. A nil items slice or nil
// instructions pointer leaves the corresponding field unchanged.
func (o *Order) ApplyUpdate(items []orderitem.OrderItem, specialInstructions *string) error {
	if items != nil {
		if err := validateItems(items); err != nil {
			return err
		}
		o.Items = items
	}

	if specialInstructions != nil {
		o.SpecialInstructions = *specialInstructions
	}

	o.touch()

	return nil
}

func (o *Order) touch() {
	o.UpdatedAt = time.Now().UTC()
}

func validateItems(items []orderitem.OrderItem) error {
	if len(items) == 0 {
		return &ValidationError{Message: "order must contain at least one item"}
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return &ValidationError{Message: err.Error()}
		}
	}

	return nil
}
