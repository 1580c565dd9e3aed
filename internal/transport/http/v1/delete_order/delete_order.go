package deleteorder

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/corray333/lunchify/order/internal/service/models/order"
	"github.com/corray333/lunchify/order/internal/transport/http/v1/respond"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// service is an interface for the service layer.
type service interface {
	DeleteOrder(ctx context.Context, id uuid.UUID) (bool, error)
}

// DeleteOrder handles DELETE /orders/{orderID}. A successful delete replies
// 204 with no body.
func DeleteOrder(w http.ResponseWriter, r *http.Request, service service) {
	id, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		respond.UnprocessableEntity(w, "invalid order identifier")

		return
	}

	deleted, err := service.DeleteOrder(r.Context(), id)
	if err != nil {
		slog.Error("Error deleting order", "order_id", id, "error", err)
		respond.Error(w, err)

		return
	}

	if !deleted {
		respond.Error(w, &order.NotFoundError{ID: id})

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
