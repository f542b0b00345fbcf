package employees

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/staffdesk/internal/gateway"
	"github.com/UnknownOlympus/staffdesk/internal/models"
	"github.com/UnknownOlympus/staffdesk/internal/store"
	"github.com/UnknownOlympus/staffdesk/internal/validation"
)

// Directory runs employee operations against the API and mirrors every
// outcome into the store. Mutations are applied only after the API confirms
// them.
type Directory struct {
	log     *slog.Logger
	gateway gateway.EmployeeGateway
	store   *store.Store
}

func NewDirectory(log *slog.Logger, gw gateway.EmployeeGateway, st *store.Store) *Directory {
	return &Directory{log: log, gateway: gw, store: st}
}

func (d *Directory) initLogger(opn string) *slog.Logger {
	return d.log.With(
		slog.String("op", opn),
		slog.String("division", "employee"),
	)
}

// State returns the current store snapshot.
func (d *Directory) State() store.State {
	return d.store.Snapshot()
}

// Load replaces the store contents with the API's employee list.
func (d *Directory) Load(ctx context.Context) error {
	const opn = "Employee.Load"
	log := d.initLogger(opn)

	d.store.Dispatch(store.ListRequested{})

	employees, err := d.gateway.List(ctx)
	if err != nil {
		d.store.Dispatch(store.ListFailed{Message: gateway.Message(err)})
		log.ErrorContext(ctx, "Failed to fetch employees", "error", err)
		return fmt.Errorf("failed to list employees: %w", err)
	}

	d.store.Dispatch(store.ListSucceeded{Employees: employees})
	log.DebugContext(ctx, "Employees loaded", "count", len(employees))

	return nil
}

// Add validates fields, creates the employee and appends it to the store.
// A validation failure returns validation.Errors and changes nothing.
func (d *Directory) Add(ctx context.Context, fields models.EmployeeFields) (models.Employee, error) {
	const opn = "Employee.Add"
	log := d.initLogger(opn)

	if err := validation.Employee(fields); err != nil {
		return models.Employee{}, err //nolint:wrapcheck // callers match validation.Errors
	}

	created, err := d.gateway.Create(ctx, fields)
	if err != nil {
		d.store.Dispatch(store.MutationFailed{Op: "create", Message: gateway.Message(err)})
		log.ErrorContext(ctx, "Failed to create employee", "name", fields.Name, "error", err)
		return models.Employee{}, fmt.Errorf("failed to create employee '%s': %w", fields.Name, err)
	}

	d.store.Dispatch(store.CreateSucceeded{Employee: created})
	log.InfoContext(ctx, "Employee created", "id", created.ID)

	return created, nil
}

// Edit validates fields, updates employee id and replaces it in the store.
func (d *Directory) Edit(ctx context.Context, id int, fields models.EmployeeFields) (models.Employee, error) {
	const opn = "Employee.Edit"
	log := d.initLogger(opn)

	if err := validation.Employee(fields); err != nil {
		return models.Employee{}, err //nolint:wrapcheck // callers match validation.Errors
	}

	updated, err := d.gateway.Update(ctx, id, fields)
	if err != nil {
		d.store.Dispatch(store.MutationFailed{Op: "update", Message: gateway.Message(err)})
		log.ErrorContext(ctx, "Failed to update employee", "id", id, "error", err)
		return models.Employee{}, fmt.Errorf("failed to update employee '%d': %w", id, err)
	}

	d.store.Dispatch(store.UpdateSucceeded{Employee: updated})
	log.InfoContext(ctx, "Employee updated", "id", updated.ID)

	return updated, nil
}

// Remove deletes employee id and drops it from the store.
func (d *Directory) Remove(ctx context.Context, id int) error {
	const opn = "Employee.Remove"
	log := d.initLogger(opn)

	if err := d.gateway.Delete(ctx, id); err != nil {
		d.store.Dispatch(store.MutationFailed{Op: "delete", Message: gateway.Message(err)})
		log.ErrorContext(ctx, "Failed to delete employee", "id", id, "error", err)
		return fmt.Errorf("failed to delete employee '%d': %w", id, err)
	}

	d.store.Dispatch(store.DeleteSucceeded{ID: id})
	log.InfoContext(ctx, "Employee deleted", "id", id)

	return nil
}

// Reset empties the store, for a new session.
func (d *Directory) Reset() {
	d.store.Reset()
}

// DismissError clears the error shown to the user.
func (d *Directory) DismissError() {
	d.store.Dispatch(store.ErrorCleared{})
}
