package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}

func TestNewLogger_Formats(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, "info", "").Info("hello")
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	buf.Reset()
	newLogger(&buf, "info", "text").Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")

	buf.Reset()
	newLogger(&buf, "error", "").Info("dropped")
	assert.Empty(t, buf.String())
}

func TestInit_NoExporter(t *testing.T) {
	t.Setenv("OTEL_TRACES_EXPORTER", "none")
	t.Setenv("LOG_LEVEL", "error")

	instruments, shutdown, err := Init(context.Background(), "eshop-test")
	require.NoError(t, err)
	require.NotNil(t, instruments.Tracer("t"))
	require.NotNil(t, instruments.Meter("m"))
	require.NoError(t, shutdown(context.Background()))
}

func TestInstruments_NilSafe(t *testing.T) {
	var i *Instruments
	assert.NotNil(t, i.Tracer("t"))
	assert.NotNil(t, i.Meter("m"))
	assert.NotNil(t, i.EffectiveLogger())
}
