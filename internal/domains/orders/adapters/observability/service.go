package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	cart "github.com/Apurer/go-gin-eshop/internal/domains/cart/domain"
	ordersdomain "github.com/Apurer/go-gin-eshop/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-eshop/internal/domains/orders/ports"
)

const tracerName = "github.com/Apurer/go-gin-eshop/internal/domains/orders/adapters/observability/service"

// Service decorates the order service with tracing, logging, and metrics.
type Service struct {
	inner   ordersports.Service
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

// New wraps the core order service.
func New(inner ordersports.Service, opts ...Option) ordersports.Service {
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

func (s *Service) CreateOrder(ctx context.Context, c *cart.Cart) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.CreateOrder")
	defer span.End()

	order, err := s.inner.CreateOrder(ctx, c)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create order")
	}
	span.SetAttributes(attribute.String("order.id", order.ID))
	s.logInfo(ctx, "order created", slog.String("order.id", order.ID), slog.String("order.total", c.CalculateTotal().String()))
	return order, nil
}

func (s *Service) PlaceOrder(ctx context.Context, order *ordersdomain.Order, input ordersports.PlaceOrderInput) (string, error) {
	attrs := []attribute.KeyValue{attribute.String("shipment.type", string(input.ShippingType))}
	if order != nil {
		attrs = append(attrs, attribute.String("order.id", order.ID))
	}
	ctx, span := s.tracer.Start(ctx, "OrderService.PlaceOrder", trace.WithAttributes(attrs...))
	defer span.End()

	orderID := ""
	if order != nil {
		orderID = order.ID
	}
	s.logInfo(ctx, "placing order", slog.String("order.id", orderID), slog.String("shipment.type", string(input.ShippingType)))
	shippingID, err := s.inner.PlaceOrder(ctx, order, input)
	if err != nil {
		s.metrics.recordPlaced(ctx, false)
		return "", s.handleError(ctx, span, err, "failed to place order", slog.String("order.id", orderID))
	}
	s.metrics.recordPlaced(ctx, true)
	span.SetAttributes(attribute.String("shipment.id", shippingID))
	s.logInfo(ctx, "order placed", slog.String("order.id", orderID), slog.String("shipment.id", shippingID))
	return shippingID, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetOrder", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	order, err := s.inner.GetOrder(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.String("order.id", id))
	}
	return order, nil
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
	placements metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	placements, _ := m.Int64Counter("orders.service.placements", metric.WithDescription("Number of order placement attempts"))
	return serviceMetrics{placements: placements}
}

func (m serviceMetrics) recordPlaced(ctx context.Context, ok bool) {
	if m.placements != nil {
		m.placements.Add(ctx, 1, metric.WithAttributes(attribute.Bool("ok", ok)))
	}
}

var _ ordersports.Service = (*Service)(nil)
