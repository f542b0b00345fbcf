package store

import (
	"slices"

	"github.com/UnknownOlympus/staffdesk/internal/models"
)

// State is what the employee table renders.
type State struct {
	Employees []models.Employee // server response order, never re-sorted
	Loading   bool
	Error     string
}

// Reduce returns the state after applying action. It never mutates s.
// Unknown actions return s unchanged.
func Reduce(s State, action Action) State {
	switch a := action.(type) {
	case ListRequested:
		s.Loading = true
		s.Error = ""
	case ListSucceeded:
		s.Loading = false
		s.Employees = slices.Clone(a.Employees)
		if s.Employees == nil {
			s.Employees = []models.Employee{}
		}
	case ListFailed:
		s.Loading = false
		s.Error = a.Message
	case CreateSucceeded:
		employees := make([]models.Employee, 0, len(s.Employees)+1)
		employees = append(employees, s.Employees...)
		s.Employees = append(employees, a.Employee)
	case UpdateSucceeded:
		idx := slices.IndexFunc(s.Employees, func(e models.Employee) bool { return e.ID == a.Employee.ID })
		if idx == -1 {
			return s
		}
		s.Employees = slices.Clone(s.Employees)
		s.Employees[idx] = a.Employee
	case DeleteSucceeded:
		s.Employees = slices.DeleteFunc(slices.Clone(s.Employees), func(e models.Employee) bool {
			return e.ID == a.ID
		})
	case MutationFailed:
		s.Error = a.Message
	case ErrorCleared:
		s.Error = ""
	}

	return s
}
