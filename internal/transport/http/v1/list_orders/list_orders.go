package listorders

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/corray333/lunchify/order/internal/service/models/order"
	"github.com/corray333/lunchify/order/internal/transport/http/v1/respond"
	"github.com/corray333/lunchify/order/internal/transport/http/v1/schemas"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/spf13/viper"
)

const (
	defaultLimit   = 10
	defaultMaxPage = 100
)

// service is an interface for the service layer.
type service interface {
	GetUserOrders(ctx context.Context, userID uuid.UUID, limit, offset int) ([]order.Order, error)
	GetRestaurantOrders(ctx context.Context, restaurantID uuid.UUID, limit, offset int) ([]order.Order, error)
}

// ListUserOrders handles GET /orders/user/{userID}.
func ListUserOrders(w http.ResponseWriter, r *http.Request, service service) {
	list(w, r, "userID", service.GetUserOrders)
}

// ListRestaurantOrders handles GET /orders/restaurant/{restaurantID}.
func ListRestaurantOrders(w http.ResponseWriter, r *http.Request, service service) {
	list(w, r, "restaurantID", service.GetRestaurantOrders)
}

func list(
	w http.ResponseWriter,
	r *http.Request,
	param string,
	query func(ctx context.Context, id uuid.UUID, limit, offset int) ([]order.Order, error),
) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		respond.UnprocessableEntity(w, "invalid "+param)

		return
	}

	limit, offset := pagination(r)

	orders, err := query(r.Context(), id, limit, offset)
	if err != nil {
		slog.Error("Error listing orders", "error", err)
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, schemas.NewOrderListResponse(orders, limit, offset))
}

// pagination parses limit/offset query parameters, clamping the limit to the
// configured maximum so a hostile caller cannot request an arbitrarily large
// page.
func pagination(r *http.Request) (limit, offset int) {
	limit = defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	maxLimit := viper.GetInt("server.http.max_page_size")
	if maxLimit <= 0 {
		maxLimit = defaultMaxPage
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			offset = parsed
		}
	}

	return limit, offset
}
