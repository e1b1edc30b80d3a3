package observability

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	shippingdomain "github.com/Apurer/go-gin-eshop/internal/domains/shipping/domain"
	shippingports "github.com/Apurer/go-gin-eshop/internal/domains/shipping/ports"
)

type stubService struct {
	createErr error
	batch     *shippingports.BatchResult
}

func (s *stubService) ValidateShipping(context.Context, shippingdomain.ShippingType, time.Time) error {
	return nil
}

func (s *stubService) CreateShipping(context.Context, shippingports.CreateShippingInput) (string, error) {
	if s.createErr != nil {
		return "", s.createErr
	}
	return "ship-1", nil
}

func (s *stubService) CheckStatus(context.Context, string) (shippingdomain.Status, error) {
	return shippingdomain.StatusInProgress, nil
}

func (s *stubService) ProcessShipping(context.Context, string) (shippingdomain.Status, error) {
	return shippingdomain.StatusCompleted, nil
}

func (s *stubService) ProcessShippingBatch(context.Context) (*shippingports.BatchResult, error) {
	return s.batch, nil
}

func TestCreateShipping_RecordsSpanAndLogs(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := trace.NewTracerProvider(trace.WithSpanProcessor(recorder))
	var buf bytes.Buffer
	svc := New(&stubService{}, WithTracer(tp.Tracer("test")), WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))

	id, err := svc.CreateShipping(context.Background(), shippingports.CreateShippingInput{OrderID: "order-1", ShippingType: shippingdomain.TypeNovaPoshta})
	require.NoError(t, err)
	assert.Equal(t, "ship-1", id)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "ShippingService.CreateShipping", spans[0].Name())
	assert.Contains(t, buf.String(), "shipment created")
}

func TestCreateShipping_MarksSpanOnError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := trace.NewTracerProvider(trace.WithSpanProcessor(recorder))
	boom := errors.New("boom")
	svc := New(&stubService{createErr: boom}, WithTracer(tp.Tracer("test")))

	_, err := svc.CreateShipping(context.Background(), shippingports.CreateShippingInput{})
	require.ErrorIs(t, err, boom)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Len(t, spans[0].Events(), 1)
}

func TestProcessShippingBatch_LogsFailedItems(t *testing.T) {
	var buf bytes.Buffer
	batch := &shippingports.BatchResult{Outcomes: []shippingports.Outcome{
		{ShippingID: "a", Status: shippingdomain.StatusCompleted},
		{ShippingID: "b", Err: errors.New("gone")},
	}}
	svc := New(&stubService{batch: batch}, WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))

	result, err := svc.ProcessShippingBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed())
	assert.Contains(t, buf.String(), "batch item failed")
	assert.Contains(t, buf.String(), "shipment.id=b")
}
