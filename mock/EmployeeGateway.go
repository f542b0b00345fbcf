package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/UnknownOlympus/staffdesk/internal/models"
)

// EmployeeGateway is a testify mock of gateway.EmployeeGateway.
type EmployeeGateway struct {
	mock.Mock
}

// NewEmployeeGateway creates a mock and registers expectation checks on cleanup.
func NewEmployeeGateway(t interface {
	mock.TestingT
	Cleanup(func())
},
) *EmployeeGateway {
	m := &EmployeeGateway{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *EmployeeGateway) List(ctx context.Context) ([]models.Employee, error) {
	ret := m.Called(ctx)

	var employees []models.Employee
	if v, ok := ret.Get(0).([]models.Employee); ok {
		employees = v
	}
	return employees, ret.Error(1)
}

func (m *EmployeeGateway) Create(ctx context.Context, fields models.EmployeeFields) (models.Employee, error) {
	ret := m.Called(ctx, fields)
	return ret.Get(0).(models.Employee), ret.Error(1) //nolint:forcetypeassert // set by the test
}

func (m *EmployeeGateway) Update(ctx context.Context, id int, fields models.EmployeeFields) (models.Employee, error) {
	ret := m.Called(ctx, id, fields)
	return ret.Get(0).(models.Employee), ret.Error(1) //nolint:forcetypeassert // set by the test
}

func (m *EmployeeGateway) Delete(ctx context.Context, id int) error {
	ret := m.Called(ctx, id)
	return ret.Error(0)
}
