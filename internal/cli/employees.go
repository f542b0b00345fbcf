package cli

import (
	"bufio"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/UnknownOlympus/staffdesk/internal/models"
	"github.com/UnknownOlympus/staffdesk/internal/store"
	"github.com/UnknownOlympus/staffdesk/internal/ui"
)

const deleteConfirmText = "Are you sure you want to delete this employee? This action cannot be undone."

func newEmployeesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "employees",
		Aliases: []string{"emp"},
		Short:   "Manage employees",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.setup(false); err != nil {
				return err
			}
			_, err := a.requireSession()
			return err
		},
	}

	cmd.AddCommand(
		newListCmd(a),
		newAddCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
	)

	return cmd
}

func newListCmd(a *app) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List employees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.directory.Load(cmd.Context()); err != nil {
				return err //nolint:wrapcheck // shown to the user as is
			}

			all := a.directory.State().Employees
			shown := store.Filter(all, search)
			fmt.Fprintln(a.out, ui.EmployeeTable(shown))
			ui.Muted(a.out, fmt.Sprintf("%d of %d employees", len(shown), len(all)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "filter by name, email or position")

	return cmd
}

type fieldFlags struct {
	name, email, position string
	salary                float64
}

func (f *fieldFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "full name")
	cmd.Flags().StringVar(&f.email, "email", "", "email address")
	cmd.Flags().StringVar(&f.position, "position", "", "job position")
	cmd.Flags().Float64Var(&f.salary, "salary", 0, "salary, must be positive")
}

// apply overwrites base with every flag set on cmd.
func (f *fieldFlags) apply(cmd *cobra.Command, base models.EmployeeFields) models.EmployeeFields {
	if cmd.Flags().Changed("name") {
		base.Name = strings.TrimSpace(f.name)
	}
	if cmd.Flags().Changed("email") {
		base.Email = strings.TrimSpace(f.email)
	}
	if cmd.Flags().Changed("position") {
		base.Position = strings.TrimSpace(f.position)
	}
	if cmd.Flags().Changed("salary") {
		base.Salary = f.salary
	}
	return base
}

func newAddCmd(a *app) *cobra.Command {
	var flags fieldFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an employee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			created, err := a.directory.Add(cmd.Context(), flags.apply(cmd, models.EmployeeFields{}))
			if err != nil {
				return err //nolint:wrapcheck // shown to the user as is
			}

			ui.OK(a.out, fmt.Sprintf("Added employee #%d %s", created.ID, created.Name))
			return nil
		},
	}
	flags.register(cmd)

	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	var flags fieldFlags

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update an employee; omitted fields keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			current, err := a.find(cmd, id)
			if err != nil {
				return err
			}

			updated, err := a.directory.Edit(cmd.Context(), id, flags.apply(cmd, current.Fields()))
			if err != nil {
				return err //nolint:wrapcheck // shown to the user as is
			}

			ui.OK(a.out, fmt.Sprintf("Updated employee #%d %s", updated.ID, updated.Name))
			return nil
		},
	}
	flags.register(cmd)

	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if !yes {
				fmt.Fprint(a.out, deleteConfirmText+" [y/N] ")
				answer, _ := bufio.NewReader(a.in).ReadString('\n')
				if !strings.EqualFold(strings.TrimSpace(answer), "y") {
					ui.Muted(a.out, "Cancelled")
					return nil
				}
			}

			if err = a.directory.Remove(cmd.Context(), id); err != nil {
				return err //nolint:wrapcheck // shown to the user as is
			}

			ui.OK(a.out, fmt.Sprintf("Deleted employee #%d", id))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

func (a *app) find(cmd *cobra.Command, id int) (models.Employee, error) {
	if err := a.directory.Load(cmd.Context()); err != nil {
		return models.Employee{}, err //nolint:wrapcheck // shown to the user as is
	}

	all := a.directory.State().Employees
	idx := slices.IndexFunc(all, func(e models.Employee) bool { return e.ID == id })
	if idx < 0 {
		return models.Employee{}, fmt.Errorf("employee #%d not found", id)
	}

	return all[idx], nil
}

func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, errors.New("employee id must be a positive number")
	}
	return id, nil
}
