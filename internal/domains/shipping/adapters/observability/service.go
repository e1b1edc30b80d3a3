package observability

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	shippingdomain "github.com/Apurer/go-gin-eshop/internal/domains/shipping/domain"
	shippingports "github.com/Apurer/go-gin-eshop/internal/domains/shipping/ports"
)

const tracerName = "github.com/Apurer/go-gin-eshop/internal/domains/shipping/adapters/observability/service"

// Service decorates the shipping service with tracing, logging, and metrics.
type Service struct {
	inner   shippingports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core shipping service.
func New(inner shippingports.Service, opts ...Option) shippingports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.DiscardHandler),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) ValidateShipping(ctx context.Context, shippingType shippingdomain.ShippingType, dueDate time.Time) error {
	ctx, span := s.tracer.Start(ctx, "ShippingService.ValidateShipping",
		trace.WithAttributes(attribute.String("shipment.type", string(shippingType))))
	defer span.End()

	if err := s.inner.ValidateShipping(ctx, shippingType, dueDate); err != nil {
		return s.handleError(ctx, span, err, "shipment rejected",
			slog.String("shipment.type", string(shippingType)), slog.Time("shipment.due_date", dueDate))
	}
	return nil
}

func (s *Service) CreateShipping(ctx context.Context, input shippingports.CreateShippingInput) (string, error) {
	ctx, span := s.tracer.Start(ctx, "ShippingService.CreateShipping",
		trace.WithAttributes(
			attribute.String("order.id", input.OrderID),
			attribute.String("shipment.type", string(input.ShippingType)),
			attribute.Int("shipment.products", len(input.ProductIDs)),
		))
	defer span.End()

	s.logInfo(ctx, "creating shipment", slog.String("order.id", input.OrderID), slog.String("shipment.type", string(input.ShippingType)))
	id, err := s.inner.CreateShipping(ctx, input)
	if err != nil {
		return id, s.handleError(ctx, span, err, "failed to create shipment", slog.String("order.id", input.OrderID))
	}
	span.SetAttributes(attribute.String("shipment.id", id))
	s.metrics.recordCreated(ctx, input.ShippingType)
	s.logInfo(ctx, "shipment created", slog.String("shipment.id", id), slog.String("order.id", input.OrderID))
	return id, nil
}

func (s *Service) CheckStatus(ctx context.Context, shippingID string) (shippingdomain.Status, error) {
	ctx, span := s.tracer.Start(ctx, "ShippingService.CheckStatus", trace.WithAttributes(attribute.String("shipment.id", shippingID)))
	defer span.End()

	status, err := s.inner.CheckStatus(ctx, shippingID)
	if err != nil {
		return "", s.handleError(ctx, span, err, "failed to load shipment status", slog.String("shipment.id", shippingID))
	}
	span.SetAttributes(attribute.String("shipment.status", string(status)))
	return status, nil
}

func (s *Service) ProcessShipping(ctx context.Context, shippingID string) (shippingdomain.Status, error) {
	ctx, span := s.tracer.Start(ctx, "ShippingService.ProcessShipping", trace.WithAttributes(attribute.String("shipment.id", shippingID)))
	defer span.End()

	status, err := s.inner.ProcessShipping(ctx, shippingID)
	if err != nil {
		return "", s.handleError(ctx, span, err, "failed to process shipment", slog.String("shipment.id", shippingID))
	}
	span.SetAttributes(attribute.String("shipment.status", string(status)))
	s.logInfo(ctx, "shipment processed", slog.String("shipment.id", shippingID), slog.String("status", string(status)))
	return status, nil
}

func (s *Service) ProcessShippingBatch(ctx context.Context) (*shippingports.BatchResult, error) {
	ctx, span := s.tracer.Start(ctx, "ShippingService.ProcessShippingBatch")
	defer span.End()

	result, err := s.inner.ProcessShippingBatch(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to poll shipments")
	}
	for _, o := range result.Outcomes {
		s.metrics.recordBatchItem(ctx, o.Err == nil)
		if o.Err != nil {
			s.logError(ctx, "batch item failed", o.Err, slog.String("shipment.id", o.ShippingID))
		}
	}
	span.SetAttributes(
		attribute.Int("batch.size", len(result.Outcomes)),
		attribute.Int("batch.failed", result.Failed()),
	)
	s.logInfo(ctx, "shipment batch processed",
		slog.Int("batch.size", len(result.Outcomes)), slog.Int("batch.failed", result.Failed()))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	created    metric.Int64Counter
	batchItems metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("shipping.service.shipments_created", metric.WithDescription("Number of shipments created"))
	batchItems, _ := m.Int64Counter("shipping.service.batch_items", metric.WithDescription("Number of shipments handled by batch passes"))
	return serviceMetrics{created: created, batchItems: batchItems}
}

func (m serviceMetrics) recordCreated(ctx context.Context, t shippingdomain.ShippingType) {
	if m.created != nil {
		m.created.Add(ctx, 1, metric.WithAttributes(attribute.String("shipment.type", string(t))))
	}
}

func (m serviceMetrics) recordBatchItem(ctx context.Context, ok bool) {
	if m.batchItems != nil {
		m.batchItems.Add(ctx, 1, metric.WithAttributes(attribute.Bool("ok", ok)))
	}
}

var _ shippingports.Service = (*Service)(nil)
