package getorder

import (
	"context"
	"net/http"

	"github.com/corray333/lunchify/order/internal/service/models/order"
	"github.com/corray333/lunchify/order/internal/transport/http/v1/respond"
	"github.com/corray333/lunchify/order/internal/transport/http/v1/schemas"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// service is an interface for the service layer.
type service interface {
	GetOrder(ctx context.Context, id uuid.UUID) (*order.Order, error)
}

// GetOrder handles GET /orders/{orderID}.
func GetOrder(w http.ResponseWriter, r *http.Request, service service) {
	id, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		respond.UnprocessableEntity(w, "invalid order identifier")

		return
	}

	ord, err := service.GetOrder(r.Context(), id)
	if err != nil {
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, schemas.NewOrderResponse(ord))
}
