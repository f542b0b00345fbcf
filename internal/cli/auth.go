package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/UnknownOlympus/staffdesk/internal/ui"
)

func newLoginCmd(a *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with an email and password",
		Long:  "Sign in with an email and password. Without --password the password is read from stdin.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				line, err := bufio.NewReader(a.in).ReadString('\n')
				if err != nil && line == "" {
					return errors.New("password is required")
				}
				password = strings.TrimRight(line, "\r\n")
			}

			sess, err := a.gate.SignIn(cmd.Context(), email, password)
			if err != nil {
				return err //nolint:wrapcheck // shown to the user as is
			}

			ui.OK(a.out, fmt.Sprintf("Signed in as %s <%s>", sess.User.Name, sess.User.Email))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the current session",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.gate.SignOut(); err != nil {
				return err //nolint:wrapcheck // already descriptive
			}
			ui.OK(a.out, "Signed out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			sess, err := a.requireSession()
			if err != nil {
				return err
			}

			ui.Panel(a.out,
				ui.Title(sess.User.Name),
				sess.User.Email,
				"signed in "+sess.LoggedInAt.Local().Format("2006-01-02 15:04"),
				"api "+a.gw.BaseURL(),
			)
			return nil
		},
	}
}
