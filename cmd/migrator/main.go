package main

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose"

	"github.com/UnknownOlympus/staffdesk/internal/config"
	"github.com/UnknownOlympus/staffdesk/internal/repository"
)

func main() {
	cfg := config.MustLoad()

	dbpool, dbErr := repository.NewDatabase(context.Background(), cfg.Postgres.DSN())
	if dbErr != nil {
		log.Fatalf("Failed to connect to DB: %v", dbErr)
	}
	defer dbpool.Close()

	dtb := stdlib.OpenDBFromPool(dbpool)
	if migrationErr := goose.Up(dtb, "migrations"); migrationErr != nil {
		log.Fatal(migrationErr) //nolint:gocritic // pool is closed on exit
	}

	log.Println("✅ Migrations applied successfully")
}
