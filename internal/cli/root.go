// Package cli wires the staffdesk commands.
package cli

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/UnknownOlympus/staffdesk/internal/gateway"
	"github.com/UnknownOlympus/staffdesk/internal/ui"
)

// logToStdout marks commands that log to stdout instead of the log file.
const logToStdout = "log-stdout"

var errNotSignedIn = errors.New("not signed in, run `staffdesk login` first")

// NewRootCmd builds the command tree reading from in and writing to out and errOut.
func NewRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: in, out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "staffdesk",
		Short:         "Employee management admin client",
		Long:          "Sign in against the employee API and list, add, edit, delete and search employees.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.Annotations[logToStdout] != "")
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			a.close()
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "employee API base URL (overrides config)")

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newEmployeesCmd(a),
		newUICmd(a),
		newMockAPICmd(a),
	)

	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute(ctx context.Context) int {
	root := NewRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		ui.Fail(os.Stderr, gateway.Message(err))
		return 1
	}
	return 0
}
