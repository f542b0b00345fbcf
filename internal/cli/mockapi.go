package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/spf13/cobra"

	"github.com/UnknownOlympus/staffdesk/internal/config"
	"github.com/UnknownOlympus/staffdesk/internal/mockapi"
	"github.com/UnknownOlympus/staffdesk/internal/models"
	"github.com/UnknownOlympus/staffdesk/internal/repository"
	"github.com/UnknownOlympus/staffdesk/internal/server"
	"github.com/UnknownOlympus/staffdesk/internal/ui"
)

type seedFlags struct {
	count         int
	adminEmail    string
	adminPassword string
}

func (f *seedFlags) register(cmd *cobra.Command, defaultCount int) {
	cmd.Flags().IntVar(&f.count, "seed", defaultCount, "number of demo employees to create")
	cmd.Flags().StringVar(&f.adminEmail, "admin-email", "admin@example.com", "email of the admin user")
	cmd.Flags().StringVar(&f.adminPassword, "admin-password", "admin123", "password of the admin user")
}

func (f *seedFlags) admin() models.User {
	return models.User{Email: f.adminEmail, Name: "Admin", Password: f.adminPassword}
}

func newMockAPICmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mockapi",
		Short: "Run the development employee API",
	}

	cmd.AddCommand(newServeCmd(a), newSeedCmd(a))

	return cmd
}

// openBackend returns the configured storage, a database pinger when there is
// one and a cleanup func.
func (a *app) openBackend(ctx context.Context) (mockapi.Backend, server.DBPinger, func(), error) {
	if a.cfg.MockAPI.Storage != config.StoragePostgres {
		return repository.NewMemory(), nil, func() {}, nil
	}

	pool, err := repository.NewDatabase(ctx, a.cfg.Postgres.DSN())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to DB: %w", err)
	}

	return repository.NewRepository(pool, a.metrics), pool, pool.Close, nil
}

func newServeCmd(a *app) *cobra.Command {
	var (
		port  int
		seed  seedFlags
		allow string
	)

	cmd := &cobra.Command{
		Use:         "serve",
		Short:       "Serve the employee API",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{logToStdout: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			if port == 0 {
				port = a.cfg.MockAPI.Port
			}

			backend, pinger, closeBackend, err := a.openBackend(ctx)
			if err != nil {
				return err
			}
			defer closeBackend()

			if _, err = mockapi.Seed(ctx, backend, seed.admin(), seed.count); err != nil {
				return err //nolint:wrapcheck // already descriptive
			}
			a.log.InfoContext(ctx, "Seeded mock api", "admin", seed.adminEmail, "employees", seed.count)

			srv := mockapi.New(a.log, backend, a.metrics, allow)

			var wgr sync.WaitGroup
			if a.cfg.Monitoring.Port > 0 {
				selfURL := "http://localhost:" + strconv.Itoa(port) + "/"
				wgr.Add(1)
				go func() {
					defer wgr.Done()
					server.StartMonitoringServer(ctx, a.log, a.reg, pinger, a.cfg.Monitoring.Port, selfURL)
				}()
			}

			err = srv.Listen(ctx, port)
			cancel()
			wgr.Wait()

			return err
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "listen port (default from config)")
	cmd.Flags().StringVar(&allow, "allow-origins", "*", "comma-separated CORS origins")
	seed.register(cmd, 0)

	return cmd
}

func newSeedCmd(a *app) *cobra.Command {
	var seed seedFlags

	cmd := &cobra.Command{
		Use:         "seed",
		Short:       "Create the admin user and demo employees in the database",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{logToStdout: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.MockAPI.Storage != config.StoragePostgres {
				return errors.New("seeding memory storage has no lasting effect, use `mockapi serve --seed N`")
			}

			backend, _, closeBackend, err := a.openBackend(cmd.Context())
			if err != nil {
				return err
			}
			defer closeBackend()

			created, err := mockapi.Seed(cmd.Context(), backend, seed.admin(), seed.count)
			if err != nil {
				return err //nolint:wrapcheck // already descriptive
			}

			ui.OK(a.out, fmt.Sprintf("Seeded admin %s and %d employees", seed.adminEmail, len(created)))
			return nil
		},
	}
	seed.register(cmd, 10) //nolint:mnd // default demo size

	return cmd
}
