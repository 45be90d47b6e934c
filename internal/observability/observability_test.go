package observability_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/davidbz/docquote/internal/config"
	"github.com/davidbz/docquote/internal/observability"
)

func TestContextValues(t *testing.T) {
	ctx := context.Background()
	require.Empty(t, observability.GetTraceID(ctx))
	require.Empty(t, observability.GetQuoteID(ctx))

	ctx = observability.WithTraceID(ctx, "trace-1")
	ctx = observability.WithSpanID(ctx, "span-1")
	ctx = observability.WithRequestID(ctx, "req-1")
	ctx = observability.WithQuoteID(ctx, "quote-1")
	ctx = observability.WithLanguage(ctx, "es")

	require.Equal(t, "trace-1", observability.GetTraceID(ctx))
	require.Equal(t, "span-1", observability.GetSpanID(ctx))
	require.Equal(t, "req-1", observability.GetRequestID(ctx))
	require.Equal(t, "quote-1", observability.GetQuoteID(ctx))
	require.Equal(t, "es", observability.GetLanguage(ctx))
}

func TestGenerateIDs(t *testing.T) {
	require.Len(t, observability.GenerateTraceID(), 32)
	require.Len(t, observability.GenerateSpanID(), 16)
	require.NotEqual(t, observability.GenerateRequestID(), observability.GenerateRequestID())
}

func TestFromContext_AddsFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	observability.SetLogger(zap.New(core))
	t.Cleanup(func() { observability.SetLogger(nil) })

	ctx := observability.WithRequestID(context.Background(), "req-42")
	ctx = observability.WithQuoteID(ctx, "quote-42")

	observability.FromContext(ctx).Info("hello")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	require.Equal(t, "req-42", fields["request_id"])
	require.Equal(t, "quote-42", fields["quote_id"])
}

func TestEventBus_Publish(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	bus := observability.NewEventBus(zap.New(core))

	ctx := observability.WithQuoteID(context.Background(), "quote-7")
	bus.Publish(ctx, "quote.created", map[string]interface{}{
		"page_count":  3,
		"total_cents": int64(129),
	})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	require.Equal(t, "quote.created", entry.Message)

	fields := entry.ContextMap()
	require.Equal(t, "quote.created", fields["event"])
	require.Equal(t, "quote-7", fields["quote_id"])
	require.EqualValues(t, 3, fields["page_count"])
	require.EqualValues(t, 129, fields["total_cents"])
}

func TestEventBus_NilLogger(t *testing.T) {
	bus := observability.NewEventBus(nil)
	require.NotPanics(t, func() {
		bus.Publish(context.Background(), "quote.created", nil)
	})
}

func TestInitLogger(t *testing.T) {
	t.Cleanup(func() { observability.SetLogger(nil) })

	logger, err := observability.InitLogger(&config.LogConfig{Level: "debug"})
	require.NoError(t, err)
	require.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	_, err = observability.InitLogger(&config.LogConfig{Level: "loud"})
	require.Error(t, err)
}
