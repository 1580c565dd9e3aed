package schemas

import (
	"time"

	"github.com/corray333/lunchify/order/internal/service/models/order"
	"github.com/corray333/lunchify/order/internal/service/models/orderitem"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// OrderItemPayload is the wire representation of a line item.
type OrderItemPayload struct {
	ItemID   string  `json:"item_id" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"required,gt=0"`
	Quantity int     `json:"quantity" validate:"required,gt=0"`
	Notes    string  `json:"notes,omitempty"`
}

// CreateOrderRequest is the body of POST /orders. The validate tags duplicate
// the entity-level validation on purpose, as defense in depth at the
// boundary.
type CreateOrderRequest struct {
	UserID              uuid.UUID          `json:"user_id" validate:"required"`
	RestaurantID        uuid.UUID          `json:"restaurant_id" validate:"required"`
	Items               []OrderItemPayload `json:"items" validate:"required,gt=0,dive"`
	TotalPrice          float64            `json:"total_price" validate:"required,gt=0"`
	DeliveryAddress     string             `json:"delivery_address" validate:"required"`
	SpecialInstructions string             `json:"special_instructions,omitempty"`
}

// Validate checks the request against its validate tags.
func (r *CreateOrderRequest) Validate() error {
	return validate.Struct(r)
}

// UpdateOrderRequest is the body of PUT /orders/{orderID}. Absent fields are
// left unchanged.
type UpdateOrderRequest struct {
	Items               []OrderItemPayload `json:"items,omitempty" validate:"omitempty,gt=0,dive"`
	SpecialInstructions *string            `json:"special_instructions,omitempty"`
}

// Validate checks the request against its validate tags.
func (r *UpdateOrderRequest) Validate() error {
	return validate.Struct(r)
}

// OrderResponse is the wire representation of an order.
type OrderResponse struct {
	ID                  uuid.UUID          `json:"id"`
	UserID              uuid.UUID          `json:"user_id"`
	RestaurantID        uuid.UUID          `json:"restaurant_id"`
	Items               []OrderItemPayload `json:"items"`
	Status              string             `json:"status"`
	TotalPrice          float64            `json:"total_price"`
	DeliveryAddress     string             `json:"delivery_address"`
	SpecialInstructions string             `json:"special_instructions,omitempty"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
}

// OrderListResponse is the wire representation of a page of orders.
type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int             `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ToOrderItems converts wire items to the domain value objects.
func ToOrderItems(items []OrderItemPayload) []orderitem.OrderItem {
	if items == nil {
		return nil
	}

	converted := make([]orderitem.OrderItem, 0, len(items))
	for _, item := range items {
		converted = append(converted, orderitem.OrderItem{
			ItemID:   item.ItemID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
			Notes:    item.Notes,
		})
	}

	return converted
}

// NewOrderResponse converts a domain order to its wire representation.
func NewOrderResponse(ord *order.Order) OrderResponse {
	items := make([]OrderItemPayload, 0, len(ord.Items))
	for _, item := range ord.Items {
		items = append(items, OrderItemPayload{
			ItemID:   item.ItemID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
			Notes:    item.Notes,
		})
	}

	return OrderResponse{
		ID:                  ord.ID,
		UserID:              ord.UserID,
		RestaurantID:        ord.RestaurantID,
		Items:               items,
		Status:              ord.Status.String(),
		TotalPrice:          ord.TotalPrice,
		DeliveryAddress:     ord.DeliveryAddress,
		SpecialInstructions: ord.SpecialInstructions,
		CreatedAt:           ord.CreatedAt,
		UpdatedAt:           ord.UpdatedAt,
	}
}

// NewOrderListResponse converts a page of domain orders to the wire list.
func NewOrderListResponse(orders []order.Order, limit, offset int) OrderListResponse {
	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, NewOrderResponse(&orders[i]))
	}

	return OrderListResponse{
		Orders: responses,
		Total:  len(responses),
		Limit:  limit,
		Offset: offset,
	}
}
