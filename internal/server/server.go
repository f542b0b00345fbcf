package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

// NewMonitoringHandler serves /healthz and /metrics.
func NewMonitoringHandler(log *slog.Logger, reg *prometheus.Registry, db DBPinger, apiURL string) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/healthz", NewHealthChecker(db, apiURL, log))
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true}))

	return mux
}

// StartMonitoringServer blocks serving the monitoring endpoints on port until ctx is done.
func StartMonitoringServer(
	ctx context.Context,
	log *slog.Logger,
	reg *prometheus.Registry,
	db DBPinger,
	port int,
	apiURL string,
) {
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(port),
		Handler:           NewMonitoringHandler(log, reg, db, apiURL),
		ReadHeaderTimeout: shutdownTimeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil { //nolint:contextcheck // parent ctx is already done
			log.Error("Failed to shutdown monitoring server", "error", err)
		}
	}()

	log.InfoContext(ctx, "Starting monitoring server", "port", port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.ErrorContext(ctx, "Monitoring server failed", "error", err)
		return
	}
	log.InfoContext(ctx, "Monitoring server stopped")
}
