package transitionorder

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/corray333/lunchify/order/internal/service/models/order"
	"github.com/corray333/lunchify/order/internal/transport/http/v1/respond"
	"github.com/corray333/lunchify/order/internal/transport/http/v1/schemas"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// service is an interface for the service layer.
type service interface {
	ConfirmOrder(ctx context.Context, id uuid.UUID) (*order.Order, error)
	CancelOrder(ctx context.Context, id uuid.UUID) (*order.Order, error)
}

// Confirm handles POST /orders/{orderID}/confirm.
func Confirm(w http.ResponseWriter, r *http.Request, service service) {
	transition(w, r, "confirm", service.ConfirmOrder)
}

// Cancel handles POST /orders/{orderID}/cancel.
func Cancel(w http.ResponseWriter, r *http.Request, service service) {
	transition(w, r, "cancel", service.CancelOrder)
}

func transition(
	w http.ResponseWriter,
	r *http.Request,
	name string,
	apply func(ctx context.Context, id uuid.UUID) (*order.Order, error),
) {
	id, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		respond.UnprocessableEntity(w, "invalid order identifier")

		return
	}

	ord, err := apply(r.Context(), id)
	if err != nil {
		slog.Error("Error applying order transition", "transition", name, "order_id", id, "error", err)
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, schemas.NewOrderResponse(ord))
}
