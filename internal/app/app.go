package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"github.com/gildedcart/shop/internal/dal/postgres"
	"github.com/gildedcart/shop/internal/dal/rabbitmq"
	cartrepo "github.com/gildedcart/shop/internal/dal/repositories/cart/postgres"
	discountrepo "github.com/gildedcart/shop/internal/dal/repositories/discount/postgres"
	georepo "github.com/gildedcart/shop/internal/dal/repositories/geo/postgres"
	outboxrepo "github.com/gildedcart/shop/internal/dal/repositories/outbox/postgres"
	pendingrepo "github.com/gildedcart/shop/internal/dal/repositories/pendingcheckout/postgres"
	wishlistrepo "github.com/gildedcart/shop/internal/dal/repositories/wishlist/postgres"
	"github.com/gildedcart/shop/internal/gateway/paystack"
	"github.com/gildedcart/shop/internal/notify"
	"github.com/gildedcart/shop/internal/service/services/cartsvc"
	"github.com/gildedcart/shop/internal/service/services/checkoutsvc"
	"github.com/gildedcart/shop/internal/service/services/dispatchsvc"
	"github.com/gildedcart/shop/internal/service/services/ordersvc"
	"github.com/gildedcart/shop/internal/service/services/wishlistsvc"
	"github.com/gildedcart/shop/internal/tracing"
	httptransport "github.com/gildedcart/shop/internal/transport/http"
	outboxworker "github.com/gildedcart/shop/internal/worker/outbox"
)

// App represents the application.
type App struct {
	transport      *httptransport.HTTPTransport
	outboxWorker   *outboxworker.Worker
	postgresClient *postgres.Client
	rabbitClient   *rabbitmq.Client
	shutdownTracer func(ctx context.Context) error
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	shutdownTracer := tracing.MustSetup()

	postgresClient := postgres.MustNewClient()
	rabbitClient := rabbitmq.MustNewClient()

	if _, err := rabbitClient.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:    viper.GetString("rabbitmq.mail.queue"),
		Durable: true,
	}); err != nil {
		panic("failed to declare mail queue: " + err.Error())
	}

	pool := postgresClient.Pool()
	geoRepo := georepo.NewPostgresGeoRepository(pool)
	cartRepo := cartrepo.NewPostgresCartRepository(pool)
	outboxRepo := outboxrepo.NewOutboxRepository(pool)

	checkoutSvc := checkoutsvc.MustNewCheckoutService(
		checkoutsvc.WithPostgresClient(postgresClient),
		checkoutsvc.WithGateway(paystack.NewClient()),
		checkoutsvc.WithNotifier(notify.NewDispatcher(outboxRepo)),
		checkoutsvc.WithGeoRepository(geoRepo),
		checkoutsvc.WithDiscountRepository(discountrepo.NewPostgresDiscountRepository(pool)),
		checkoutsvc.WithPendingCheckoutRepository(pendingrepo.NewPostgresPendingCheckoutRepository(pool)),
		checkoutsvc.WithCartRepository(cartRepo),
	)

	cartSvc := cartsvc.MustNewCartService(
		cartsvc.WithCartRepository(cartRepo),
	)

	wishlistSvc := wishlistsvc.MustNewWishlistService(
		wishlistsvc.WithWishlistRepository(wishlistrepo.NewPostgresWishlistRepository(pool)),
	)

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithPostgresClient(postgresClient),
	)

	dispatchSvc := dispatchsvc.MustNewDispatchService(
		dispatchsvc.WithGeoRepository(geoRepo),
	)

	transport := httptransport.NewHTTPTransport(checkoutSvc, cartSvc, wishlistSvc, orderSvc, dispatchSvc)
	transport.RegisterRoutes()

	return &App{
		transport:      transport,
		outboxWorker:   outboxworker.NewWorker(outboxRepo, rabbitClient),
		postgresClient: postgresClient,
		rabbitClient:   rabbitClient,
		shutdownTracer: shutdownTracer,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	// Create a channel to receive OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	go a.outboxWorker.Start(workerCtx)

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	cancelWorker()

	if err := a.rabbitClient.Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	}

	a.postgresClient.Close()
	slog.Info("Database connection closed gracefully")

	if err := a.shutdownTracer(ctx); err != nil {
		slog.Error("Tracer shutdown error", "error", err)
	}

	slog.Info("Application shutdown complete")
}
