package employees

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/UnknownOlympus/staffdesk/internal/gateway"
	"github.com/UnknownOlympus/staffdesk/internal/metrics"
	"github.com/UnknownOlympus/staffdesk/internal/store"
	mocks "github.com/UnknownOlympus/staffdesk/mock"
)

func TestLoad_LogsOperation(t *testing.T) {
	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	mockGateway := mocks.NewEmployeeGateway(t)
	testMetrics := metrics.NewMetrics(prometheus.NewRegistry())
	dir := NewDirectory(logger, mockGateway, store.New(slog.New(slog.DiscardHandler), testMetrics))

	mockGateway.On("List", mock.Anything).Return(nil, &gateway.Error{
		Kind:    gateway.KindStatus,
		Status:  503,
		Message: "Request failed with status code 503",
	}).Once()

	err := dir.Load(t.Context())

	assert.Error(t, err)
	out := logBuf.String()
	assert.Contains(t, out, "op=Employee.Load")
	assert.Contains(t, out, "division=employee")
	assert.Contains(t, out, "Failed to fetch employees")
}

func TestInitLogger(t *testing.T) {
	var logBuf bytes.Buffer
	dir := &Directory{log: slog.New(slog.NewJSONHandler(&logBuf, nil))}

	dir.initLogger("Employee.Remove").Info("hello")

	assert.Contains(t, logBuf.String(), `"op":"Employee.Remove"`)
	assert.Contains(t, logBuf.String(), `"division":"employee"`)
}
