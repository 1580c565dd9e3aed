package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/corray333/lunchify/order/internal/cache"
	"github.com/corray333/lunchify/order/internal/dal/postgres"
	"github.com/corray333/lunchify/order/internal/dal/rabbitmq"
	"github.com/corray333/lunchify/order/internal/dal/redis"
	orderpg "github.com/corray333/lunchify/order/internal/dal/repositories/order/postgres"
	outboxpg "github.com/corray333/lunchify/order/internal/dal/repositories/outbox/postgres"
	"github.com/corray333/lunchify/order/internal/dal/uow"
	"github.com/corray333/lunchify/order/internal/otel"
	"github.com/corray333/lunchify/order/internal/service/models/outbox"
	"github.com/corray333/lunchify/order/internal/service/services/ordersvc"
	httptransport "github.com/corray333/lunchify/order/internal/transport/http"
	outboxworker "github.com/corray333/lunchify/order/internal/worker/outbox"
	"golang.org/x/sync/errgroup"
)

// App represents the application.
type App struct {
	orderSvc       *ordersvc.OrderService
	transport      *httptransport.HTTPTransport
	outboxWorker   *outboxworker.Worker
	postgresClient *postgres.Client
	redisClient    *redis.Client
	rabbitClient   *rabbitmq.Client
	otelController *otel.OtelController
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	otelController := otel.MustInitOtel()

	postgresClient := postgres.MustNewClient()
	redisClient := redis.MustNewClient()
	rabbitClient := rabbitmq.MustNewClient()

	if err := rabbitClient.DeclareExchange(rabbitmq.DeclareExchangeConfig{
		Name:    outbox.ExchangeOrderEvents,
		Kind:    "topic",
		Durable: true,
	}); err != nil {
		panic("failed to declare order events exchange: " + err.Error())
	}

	orderRepo := orderpg.NewPostgresOrderRepository(postgresClient.Pool())
	uowFactory := uow.NewFactory(postgresClient)
	orderCache := cache.NewRedis(redisClient.Redis())

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithOrderRepository(orderRepo),
		ordersvc.WithUnitOfWorkFactory(uowFactory),
		ordersvc.WithCache(orderCache),
	)

	outboxRepo := outboxpg.NewOutboxRepository(postgresClient.Pool())
	worker := outboxworker.NewWorker(outboxRepo, rabbitClient)

	transport := httptransport.NewHTTPTransport(orderSvc)
	transport.RegisterRoutes()

	return &App{
		orderSvc:       orderSvc,
		transport:      transport,
		outboxWorker:   worker,
		postgresClient: postgresClient,
		redisClient:    redisClient,
		rabbitClient:   rabbitClient,
		otelController: otelController,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	group.Go(func() error {
		a.outboxWorker.Start(groupCtx)

		return nil
	})

	<-groupCtx.Done()
	slog.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	if err := group.Wait(); err != nil {
		slog.Error("Application error", "error", err)
	}

	if err := a.rabbitClient.Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	}

	if err := a.redisClient.Close(); err != nil {
		slog.Error("Redis connection close error", "error", err)
	}

	a.postgresClient.Close()

	if err := a.otelController.Shutdown(); err != nil {
		slog.Error("Trace provider shutdown error", "error", err)
	}

	slog.Info("Application shutdown complete")
}
