package client

import (
	"log/slog"
	"net/http"

	"github.com/UnknownOlympus/staffdesk/internal/metrics"
)

// CreateHTTPClient initializes an HTTP client for the employee API. Every
// round trip is logged at debug level and recorded in the API metrics.
// The client carries no timeout: requests live as long as their context.
func CreateHTTPClient(log *slog.Logger, appMetrics *metrics.Metrics) *http.Client {
	return &http.Client{
		Transport: NewInstrumentedTransport(http.DefaultTransport, log, appMetrics),
		CheckRedirect: func(req *http.Request, _ []*http.Request) error {
			log.Debug("Redirected to URL", "URL", req.URL)

			return nil
		},
	}
}
