package createorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/corray333/lunchify/order/internal/service/models/order"
	"github.com/corray333/lunchify/order/internal/service/models/orderitem"
	"github.com/corray333/lunchify/order/internal/transport/http/v1/respond"
	"github.com/corray333/lunchify/order/internal/transport/http/v1/schemas"
	"github.com/google/uuid"
)

// service is an interface for the service layer.
type service interface {
	CreateOrder(
		ctx context.Context,
		userID uuid.UUID,
		restaurantID uuid.UUID,
		items []orderitem.OrderItem,
		totalPrice float64,
		deliveryAddress string,
		specialInstructions string,
	) (*order.Order, error)
}

// CreateOrder handles POST /orders.
func CreateOrder(w http.ResponseWriter, r *http.Request, service service) {
	var req schemas.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Error decoding request body for create order", "error", err)
		respond.BadRequest(w, "failed to decode request body")

		return
	}

	if err := req.Validate(); err != nil {
		respond.Error(w, err)

		return
	}

	ord, err := service.CreateOrder(
		r.Context(),
		req.UserID,
		req.RestaurantID,
		schemas.ToOrderItems(req.Items),
		req.TotalPrice,
		req.DeliveryAddress,
		req.SpecialInstructions,
	)
	if err != nil {
		slog.Error("Error creating order", "error", err)
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusCreated, schemas.NewOrderResponse(ord))
}
