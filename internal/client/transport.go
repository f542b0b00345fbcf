package client

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/UnknownOlympus/staffdesk/internal/metrics"
)

type operationKey struct{}

const unknownOperation = "unknown"

// WithOperation labels every request made with ctx for metrics and logs.
func WithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, operationKey{}, operation)
}

// Operation returns the label stored by WithOperation.
func Operation(ctx context.Context) string {
	if op, ok := ctx.Value(operationKey{}).(string); ok && op != "" {
		return op
	}
	return unknownOperation
}

// InstrumentedTransport wraps a RoundTripper with logging and metrics.
type InstrumentedTransport struct {
	next    http.RoundTripper
	log     *slog.Logger
	metrics *metrics.Metrics
}

// NewInstrumentedTransport returns a transport delegating to next.
func NewInstrumentedTransport(
	next http.RoundTripper,
	log *slog.Logger,
	appMetrics *metrics.Metrics,
) *InstrumentedTransport {
	if next == nil {
		next = http.DefaultTransport
	}
	return &InstrumentedTransport{next: next, log: log, metrics: appMetrics}
}

// RoundTrip implements http.RoundTripper.
func (t *InstrumentedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	opn := Operation(req.Context())
	startTime := time.Now()

	resp, err := t.next.RoundTrip(req)

	duration := time.Since(startTime)
	t.metrics.APIDuration.WithLabelValues(opn).Observe(duration.Seconds())

	status := "success"
	code := "none"
	if err != nil || resp.StatusCode >= http.StatusBadRequest {
		status = "failure"
	}
	if resp != nil {
		code = strconv.Itoa(resp.StatusCode)
	}
	t.metrics.APIRequests.WithLabelValues(opn, status).Inc()

	t.log.DebugContext(req.Context(), "API request finished",
		"operation", opn,
		"method", req.Method,
		"url", req.URL.String(),
		"code", code,
		"duration", duration.String(),
	)

	return resp, err //nolint:wrapcheck // transports must not wrap errors
}
