package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	eshopserver "github.com/Apurer/go-gin-eshop/go"

	catalogmemory "github.com/Apurer/go-gin-eshop/internal/domains/catalog/adapters/memory"
	ordersmemory "github.com/Apurer/go-gin-eshop/internal/domains/orders/adapters/memory"
	ordersobs "github.com/Apurer/go-gin-eshop/internal/domains/orders/adapters/observability"
	ordersapp "github.com/Apurer/go-gin-eshop/internal/domains/orders/application"
	shippingworkflows "github.com/Apurer/go-gin-eshop/internal/domains/shipping/adapters/workflows"
	shippingports "github.com/Apurer/go-gin-eshop/internal/domains/shipping/ports"
	platformmetrics "github.com/Apurer/go-gin-eshop/internal/platform/metrics"
	platformobservability "github.com/Apurer/go-gin-eshop/internal/platform/observability"
)

const serviceName = "eshop-api"

// Run boots the eshop HTTP API with observability, adapters, and workflows wired.
// It returns when ctx is cancelled or the server fails.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	products, err := LoadCatalog(cfg.CatalogFile)
	if err != nil {
		return err
	}
	catalog := catalogmemory.NewRepository(products...)

	shipping := NewShippingStack(ctx, cfg, instruments)
	defer shipping.Close()

	var reconciliation shippingports.ReconciliationOrchestrator = shippingworkflows.NewInlineReconciliation(shipping.Service)
	if temporalClient, err := ConnectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, running reconciliation inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		reconciliation = shippingworkflows.NewTemporalReconciliation(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	coreOrders := ordersapp.NewService(ordersmemory.NewRepository(), shipping.Service, ordersapp.WithDueDateGrace(cfg.DueDateGrace))
	orders := ordersobs.New(
		coreOrders,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	serverMetrics := platformmetrics.NewServerMetrics("api")
	handlers := eshopserver.ApiHandleFunctions{
		CatalogAPI:  eshopserver.NewCatalogAPI(catalog),
		OrderAPI:    eshopserver.NewOrderAPI(orders, catalog),
		ShipmentAPI: eshopserver.NewShipmentAPI(shipping.Service, reconciliation),
		HealthAPI:   eshopserver.NewHealthAPI(serverMetrics.Handler()),
	}
	router := eshopserver.NewRouter(handlers, otelgin.Middleware(serviceName), serverMetrics.Middleware())

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("eshop API listening", slog.String("addr", server.Addr), slog.Int("products", len(products)))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logger.Error("eshop API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("eshop API shutting down")
		return server.Shutdown(shutdownCtx)
	}
}
