package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/corray333/lunchify/order/internal/service/models/order"
	"github.com/corray333/lunchify/order/internal/service/models/orderitem"
	createorder "github.com/corray333/lunchify/order/internal/transport/http/v1/create_order"
	deleteorder "github.com/corray333/lunchify/order/internal/transport/http/v1/delete_order"
	getorder "github.com/corray333/lunchify/order/internal/transport/http/v1/get_order"
	listorders "github.com/corray333/lunchify/order/internal/transport/http/v1/list_orders"
	transitionorder "github.com/corray333/lunchify/order/internal/transport/http/v1/transition_order"
	updateorder "github.com/corray333/lunchify/order/internal/transport/http/v1/update_order"
	"github.com/corray333/lunchify/order/pkg/http/middleware/trace"
	"github.com/corray333/lunchify/order/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/spf13/viper"
)

type service interface {
	CreateOrder(ctx context.Context, userID, restaurantID uuid.UUID, items []orderitem.OrderItem, totalPrice float64, deliveryAddress, specialInstructions string) (*order.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*order.Order, error)
	UpdateOrder(ctx context.Context, id uuid.UUID, items []orderitem.OrderItem, specialInstructions *string) (*order.Order, error)
	ConfirmOrder(ctx context.Context, id uuid.UUID) (*order.Order, error)
	CancelOrder(ctx context.Context, id uuid.UUID) (*order.Order, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) (bool, error)
	GetUserOrders(ctx context.Context, userID uuid.UUID, limit, offset int) ([]order.Order, error)
	GetRestaurantOrders(ctx context.Context, restaurantID uuid.UUID, limit, offset int) ([]order.Order, error)
}

type HTTPTransport struct {
	server  *http.Server
	router  *chi.Mux
	service service
}

func NewHTTPTransport(service service) *HTTPTransport {
	router := newRouter()
	server := newServer(router)
	return &HTTPTransport{
		server:  server,
		router:  router,
		service: service,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server, waiting for in-flight requests.
func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/api/v1/orders", func(r chi.Router) {
		r.Post("/", h.createOrder)
		r.Get("/{orderID}", h.getOrder)
		r.Put("/{orderID}", h.updateOrder)
		r.Delete("/{orderID}", h.deleteOrder)
		r.Post("/{orderID}/confirm", h.confirmOrder)
		r.Post("/{orderID}/cancel", h.cancelOrder)
		r.Get("/user/{userID}", h.listUserOrders)
		r.Get("/restaurant/{restaurantID}", h.listRestaurantOrders)
	})
}

func (h *HTTPTransport) createOrder(w http.ResponseWriter, r *http.Request) {
	createorder.CreateOrder(w, r, h.service)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	getorder.GetOrder(w, r, h.service)
}

func (h *HTTPTransport) updateOrder(w http.ResponseWriter, r *http.Request) {
	updateorder.UpdateOrder(w, r, h.service)
}

func (h *HTTPTransport) deleteOrder(w http.ResponseWriter, r *http.Request) {
	deleteorder.DeleteOrder(w, r, h.service)
}

func (h *HTTPTransport) confirmOrder(w http.ResponseWriter, r *http.Request) {
	transitionorder.Confirm(w, r, h.service)
}

func (h *HTTPTransport) cancelOrder(w http.ResponseWriter, r *http.Request) {
	transitionorder.Cancel(w, r, h.service)
}

func (h *HTTPTransport) listUserOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListUserOrders(w, r, h.service)
}

func (h *HTTPTransport) listRestaurantOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListRestaurantOrders(w, r, h.service)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(trace.NewTraceMiddleware)

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
