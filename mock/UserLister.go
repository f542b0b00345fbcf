package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/UnknownOlympus/staffdesk/internal/models"
)

// UserLister is a testify mock of gateway.UserLister.
type UserLister struct {
	mock.Mock
}

// NewUserLister creates a mock and registers expectation checks on cleanup.
func NewUserLister(t interface {
	mock.TestingT
	Cleanup(func())
},
) *UserLister {
	m := &UserLister{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *UserLister) ListUsers(ctx context.Context) ([]models.User, error) {
	ret := m.Called(ctx)

	var users []models.User
	if v, ok := ret.Get(0).([]models.User); ok {
		users = v
	}
	return users, ret.Error(1)
}
