package store

import "github.com/UnknownOlympus/staffdesk/internal/models"

// Action is one lifecycle phase of an employee operation.
type Action interface {
	// Name labels the action in logs and metrics.
	Name() string
}

// ListRequested marks the start of a list fetch.
type ListRequested struct{}

// ListSucceeded carries the full list returned by the API.
type ListSucceeded struct{ Employees []models.Employee }

// ListFailed carries the message of a failed list fetch.
type ListFailed struct{ Message string }

// CreateSucceeded carries the record created by the API.
type CreateSucceeded struct{ Employee models.Employee }

// UpdateSucceeded carries the record as updated by the API.
type UpdateSucceeded struct{ Employee models.Employee }

// DeleteSucceeded carries the id confirmed deleted by the API.
type DeleteSucceeded struct{ ID int }

// MutationFailed carries the message of a rejected create, update or delete.
type MutationFailed struct {
	Op      string
	Message string
}

// ErrorCleared is dispatched when the user dismisses the error.
type ErrorCleared struct{}

func (ListRequested) Name() string   { return "list_requested" }
func (ListSucceeded) Name() string   { return "list_succeeded" }
func (ListFailed) Name() string      { return "list_failed" }
func (CreateSucceeded) Name() string { return "create_succeeded" }
func (UpdateSucceeded) Name() string { return "update_succeeded" }
func (DeleteSucceeded) Name() string { return "delete_succeeded" }
func (MutationFailed) Name() string  { return "mutation_failed" }
func (ErrorCleared) Name() string    { return "error_cleared" }
