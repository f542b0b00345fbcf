package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/UnknownOlympus/staffdesk/internal/cli"
)

// main is the entry point of the application.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	code := cli.Execute(ctx)

	stop()
	os.Exit(code)
}
