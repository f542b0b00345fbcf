package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

type DBPinger interface {
	Ping(ctx context.Context) error
}

// HealthChecker reports the state of the database (when one is configured)
// and of the employee API.
type HealthChecker struct {
	db         DBPinger
	apiURL     string
	httpClient *http.Client
	log        *slog.Logger
}

// NewHealthChecker builds a checker. A nil db or an empty apiURL skips that check.
func NewHealthChecker(db DBPinger, apiURL string, log *slog.Logger) *HealthChecker {
	clientTO := 5
	return &HealthChecker{
		db:         db,
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: time.Duration(clientTO) * time.Second},
		log:        log,
	}
}

func (h *HealthChecker) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	h.log.DebugContext(req.Context(), "Performing health checks...")

	var err error
	status := make(map[string]string)
	overallStatus := http.StatusOK

	if h.db != nil {
		if err = h.db.Ping(req.Context()); err != nil {
			status["database"] = "unavailable"
			overallStatus = http.StatusServiceUnavailable
			h.log.WarnContext(req.Context(), "Health check failed: DB ping", "error", err)
		} else {
			status["database"] = "ok"
		}
	}

	if h.apiURL != "" {
		status["api"] = h.checkAPI(req.Context())
		if status["api"] != "ok" {
			overallStatus = http.StatusServiceUnavailable
		}
	}

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(overallStatus)
	if err = json.NewEncoder(writer).Encode(status); err != nil {
		h.log.ErrorContext(req.Context(), "Failed to write health check response", "error", err)
	}

	h.log.DebugContext(req.Context(), "Health checks completed", "status", overallStatus)
}

func (h *HealthChecker) checkAPI(ctx context.Context) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, h.apiURL, nil)
	if err != nil {
		h.log.WarnContext(ctx, "Health check failed: invalid api url", "url", h.apiURL, "error", err)
		return "unreachable"
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		h.log.WarnContext(ctx, "Health check failed: api unreachable", "url", h.apiURL, "error", err)
		return "unreachable"
	}
	defer func() {
		if err = resp.Body.Close(); err != nil {
			h.log.WarnContext(ctx, "Failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		h.log.WarnContext(
			ctx,
			"Health check failed: api returned error status",
			"url",
			h.apiURL,
			"status_code",
			resp.StatusCode,
		)
		return "degraded"
	}

	return "ok"
}
