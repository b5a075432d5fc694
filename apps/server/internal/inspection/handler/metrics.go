package handler

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/erlanggapratamaP/elang-mcp-server/pkg/api"
)

// metrics holds the handler's OTel instruments. With telemetry disabled the
// global meter is a noop, so recording is free.
type metrics struct {
	toolCalls metric.Int64Counter
	observers metric.Int64UpDownCounter
}

func newMetrics() *metrics {
	meter := otel.Meter("inspection-server")

	toolCalls, _ := meter.Int64Counter("tool_calls_total",
		metric.WithDescription("Tool invocations by tool name and outcome."))
	observers, _ := meter.Int64UpDownCounter("sse_observers",
		metric.WithDescription("Currently connected SSE observers."))

	return &metrics{toolCalls: toolCalls, observers: observers}
}

func (m *metrics) recordToolCall(ctx context.Context, tool string, payload any) {
	outcome := "success"
	if ep, ok := payload.(*api.ErrorPayload); ok {
		outcome = ep.Error
	}
	m.toolCalls.Add(ctx, 1, metric.WithAttributes(
		attribute.String("tool", tool),
		attribute.String("outcome", outcome),
	))
}

func (m *metrics) observerConnected(ctx context.Context) {
	m.observers.Add(ctx, 1)
}

func (m *metrics) observerDisconnected(ctx context.Context) {
	m.observers.Add(ctx, -1)
}
