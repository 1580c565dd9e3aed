package updateorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/corray333/lunchify/order/internal/service/models/order"
	"github.com/corray333/lunchify/order/internal/service/models/orderitem"
	"github.com/corray333/lunchify/order/internal/transport/http/v1/respond"
	"github.com/corray333/lunchify/order/internal/transport/http/v1/schemas"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// service is an interface for the service layer.
type service interface {
	UpdateOrder(
		ctx context.Context,
		id uuid.UUID,
		items []orderitem.OrderItem,
		specialInstructions *string,
	) (*order.Order, error)
}

// UpdateOrder handles PUT /orders/{orderID}. Fields absent from the body are
// left unchanged.
func UpdateOrder(w http.ResponseWriter, r *http.Request, service service) {
	id, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		respond.UnprocessableEntity(w, "invalid order identifier")

		return
	}

	var req schemas.UpdateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Error decoding request body for update order", "error", err)
		respond.BadRequest(w, "failed to decode request body")

		return
	}

	if err := req.Validate(); err != nil {
		respond.Error(w, err)

		return
	}

	ord, err := service.UpdateOrder(r.Context(), id, schemas.ToOrderItems(req.Items), req.SpecialInstructions)
	if err != nil {
		slog.Error("Error updating order", "order_id", id, "error", err)
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, schemas.NewOrderResponse(ord))
}
