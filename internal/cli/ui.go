package cli

import (
	"github.com/spf13/cobra"

	"github.com/UnknownOlympus/staffdesk/internal/server"
	"github.com/UnknownOlympus/staffdesk/internal/tui"
)

func newUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive interface",
		Long:  "Open the interactive interface. Logs go to the configured log file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if a.cfg.Monitoring.Port > 0 {
				go server.StartMonitoringServer(ctx, a.log, a.reg, nil, a.cfg.Monitoring.Port, a.cfg.API.URL)
			}

			a.log.InfoContext(ctx, "Starting interface", "api", a.cfg.API.URL)
			defer a.log.InfoContext(ctx, "Interface stopped")

			return tui.Run(ctx, tui.Deps{ //nolint:wrapcheck // already descriptive
				Log:       a.log,
				Gate:      a.gate,
				Directory: a.directory,
				Debounce:  a.cfg.UI.Debounce,
			})
		},
	}
}
