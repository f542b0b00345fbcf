package repository

import (
	"errors"
	"time"

	"github.com/UnknownOlympus/staffdesk/internal/metrics"
)

// ErrNotFound is returned when no row matches the requested id.
var ErrNotFound = errors.New("record not found")

// Repository stores users and employees in PostgreSQL.
type Repository struct {
	db      Database
	metrics *metrics.Metrics
}

func NewRepository(db Database, appMetrics *metrics.Metrics) *Repository {
	return &Repository{db: db, metrics: appMetrics}
}

func (r *Repository) observe(queryType string) func() {
	startTime := time.Now()
	return func() {
		duration := time.Since(startTime).Seconds()
		r.metrics.DBQueryDuration.WithLabelValues(queryType).Observe(duration)
	}
}
