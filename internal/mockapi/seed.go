package mockapi

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/tamathecxder/randomail"

	"github.com/UnknownOlympus/staffdesk/internal/models"
)

// ErrNegativeCount is returned by Seed for a negative employee count.
var ErrNegativeCount = errors.New("demo employee count must not be negative")

var (
	demoNames     = []string{"Ada", "Grace", "Linus", "Ken", "Barbara", "Dennis", "Margaret", "Rob"}
	demoPositions = []string{"Engineer", "Designer", "QA", "Manager", "Analyst", "Support"}
)

// Seed creates the admin user and count demo employees with random emails.
func Seed(ctx context.Context, backend Backend, admin models.User, count int) ([]models.Employee, error) {
	if count < 0 {
		return nil, fmt.Errorf("invalid seed count %d: %w", count, ErrNegativeCount)
	}

	if _, err := backend.CreateUser(ctx, admin); err != nil {
		return nil, fmt.Errorf("failed to create admin user: %w", err)
	}

	created := make([]models.Employee, 0, count)
	for idx := range count {
		name := demoNames[idx%len(demoNames)]
		fields := models.EmployeeFields{
			Name:     fmt.Sprintf("%s %d", name, idx+1),
			Email:    strings.ToLower(randomail.GenerateRandomEmail()),
			Position: demoPositions[rand.IntN(len(demoPositions))], //nolint:gosec // demo data
			Salary:   float64(30000 + rand.IntN(90000)),            //nolint:gosec,mnd // demo data
		}

		emp, err := backend.CreateEmployee(ctx, fields)
		if err != nil {
			return created, fmt.Errorf("failed to create demo employee '%s': %w", fields.Name, err)
		}
		created = append(created, emp)
	}

	return created, nil
}
