package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Database interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// NewDatabase creates a new PostgreSQL connection pool for dsn and checks it with a ping.
func NewDatabase(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	var (
		ctxTimeout = 5 * time.Second
		idleTime   = 30 * time.Second
		hcPeriod   = 30 * time.Second
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MinConns = 1
	poolConfig.MaxConnIdleTime = idleTime
	poolConfig.HealthCheckPeriod = hcPeriod

	ctx, cancel := context.WithTimeout(ctx, ctxTimeout)
	defer cancel()

	dbpool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection to PostgreSQL: %w", err)
	}

	if err = dbpool.Ping(ctx); err != nil {
		dbpool.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL DB: %w", err)
	}

	return dbpool, nil
}
