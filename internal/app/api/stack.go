package api

import (
	"context"
	"errors"
	"log/slog"

	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	shippingmemory "github.com/Apurer/go-gin-eshop/internal/domains/shipping/adapters/memory"
	kafkapublisher "github.com/Apurer/go-gin-eshop/internal/domains/shipping/adapters/messaging/kafka"
	shippingobs "github.com/Apurer/go-gin-eshop/internal/domains/shipping/adapters/observability"
	shippingpostgres "github.com/Apurer/go-gin-eshop/internal/domains/shipping/adapters/persistence/postgres"
	shippingapp "github.com/Apurer/go-gin-eshop/internal/domains/shipping/application"
	shippingports "github.com/Apurer/go-gin-eshop/internal/domains/shipping/ports"
	platformkafka "github.com/Apurer/go-gin-eshop/internal/platform/kafka"
	platformobservability "github.com/Apurer/go-gin-eshop/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-eshop/internal/platform/postgres"
)

// ShippingStack is the shipping service with the adapters it was built on.
type ShippingStack struct {
	Service    shippingports.Service
	Publisher  shippingports.Publisher
	Repository shippingports.Repository
	cleanups   []func()
}

// Close releases adapter resources in reverse order.
func (s *ShippingStack) Close() {
	for i := len(s.cleanups) - 1; i >= 0; i-- {
		s.cleanups[i]()
	}
}

// Lister returns the repository as a StatusLister when it supports listing.
func (s *ShippingStack) Lister() (shippingports.StatusLister, bool) {
	lister, ok := s.Repository.(shippingports.StatusLister)
	return lister, ok
}

// NewShippingStack wires Postgres and Kafka adapters when configured and in-memory ones otherwise.
func NewShippingStack(ctx context.Context, cfg Config, instruments *platformobservability.Instruments) *ShippingStack {
	logger := instruments.EffectiveLogger()
	stack := &ShippingStack{}

	stack.Repository = shippingmemory.NewRepository()
	if db, cleanup := platformpostgres.ConnectOrFallback(ctx, cfg.PostgresDSN, logger); db != nil {
		stack.Repository = shippingpostgres.NewRepository(db)
		stack.cleanups = append(stack.cleanups, cleanup)
	}

	stack.Publisher = buildPublisher(cfg, logger, stack)

	meter := instruments.Meter("internal.shipping.application")
	core := shippingapp.NewService(
		stack.Repository,
		stack.Publisher,
		shippingapp.WithBatchConcurrency(cfg.BatchConcurrency),
		shippingapp.WithTransitionObserver(shippingobs.NewTransitionMetrics(meter)),
	)
	stack.Service = shippingobs.New(
		core,
		shippingobs.WithLogger(logger),
		shippingobs.WithTracer(instruments.Tracer("internal.shipping.application")),
		shippingobs.WithMeter(meter),
	)
	return stack
}

func buildPublisher(cfg Config, logger *slog.Logger, stack *ShippingStack) shippingports.Publisher {
	kafkaClient := platformkafka.NewClient(cfg.KafkaBrokers)
	if !kafkaClient.Enabled() {
		logger.Warn("KAFKA_BROKERS not set, falling back to in-memory shipment notifications")
		return shippingmemory.NewPublisher()
	}
	publisher, err := kafkapublisher.NewPublisher(kafkaClient, cfg.KafkaShipmentsTopic, cfg.KafkaGroupID)
	if err != nil {
		logger.Warn("failed to configure kafka publisher, falling back to memory", slog.String("error", err.Error()))
		return shippingmemory.NewPublisher()
	}
	stack.cleanups = append(stack.cleanups, func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("failed to close kafka publisher", slog.String("error", err.Error()))
		}
	})
	logger.Info("shipment notifications configured with kafka",
		slog.String("topic", cfg.KafkaShipmentsTopic), slog.Any("brokers", kafkaClient.Brokers))
	return publisher
}

// ConnectTemporalClient dials Temporal with tracing and structured logging unless disabled.
func ConnectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{
		Tracer: instruments.Tracer("temporal-client"),
	})
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(instruments.EffectiveLogger()),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}
