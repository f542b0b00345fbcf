package store

import (
	"strings"

	"github.com/UnknownOlympus/staffdesk/internal/models"
)

// Filter returns the employees whose name, email or position contains query,
// ignoring case. An empty query returns employees unchanged. Order is kept.
func Filter(employees []models.Employee, query string) []models.Employee {
	if query == "" {
		return employees
	}

	needle := strings.ToLower(query)
	out := make([]models.Employee, 0, len(employees))
	for _, e := range employees {
		if strings.Contains(strings.ToLower(e.Name), needle) ||
			strings.Contains(strings.ToLower(e.Email), needle) ||
			strings.Contains(strings.ToLower(e.Position), needle) {
			out = append(out, e)
		}
	}

	return out
}
