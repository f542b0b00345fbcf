package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/UnknownOlympus/staffdesk/internal/models"
)

// Memory keeps users and employees in process memory. Ids are sequential
// starting at 1 and never reused.
type Memory struct {
	mu         sync.RWMutex
	users      []models.User
	employees  []models.Employee
	nextUserID int
	nextEmpID  int
}

func NewMemory() *Memory {
	return &Memory{nextUserID: 1, nextEmpID: 1}
}

func (m *Memory) ListUsers(_ context.Context) ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append(make([]models.User, 0, len(m.users)), m.users...), nil
}

func (m *Memory) CreateUser(_ context.Context, user models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if idx := slices.IndexFunc(m.users, func(u models.User) bool { return u.Email == user.Email }); idx >= 0 {
		user.ID = m.users[idx].ID
		m.users[idx] = user
		return user, nil
	}

	user.ID = m.nextUserID
	m.nextUserID++
	m.users = append(m.users, user)

	return user, nil
}

func (m *Memory) ListEmployees(_ context.Context) ([]models.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append(make([]models.Employee, 0, len(m.employees)), m.employees...), nil
}

func (m *Memory) CreateEmployee(_ context.Context, fields models.EmployeeFields) (models.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	emp := fields.WithID(m.nextEmpID)
	m.nextEmpID++
	m.employees = append(m.employees, emp)

	return emp, nil
}

func (m *Memory) UpdateEmployee(
	_ context.Context,
	identifier int,
	fields models.EmployeeFields,
) (models.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOf(identifier)
	if idx < 0 {
		return models.Employee{}, ErrNotFound
	}
	m.employees[idx] = fields.WithID(identifier)

	return m.employees[idx], nil
}

func (m *Memory) DeleteEmployee(_ context.Context, identifier int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOf(identifier)
	if idx < 0 {
		return ErrNotFound
	}
	m.employees = slices.Delete(m.employees, idx, idx+1)

	return nil
}

func (m *Memory) indexOf(identifier int) int {
	return slices.IndexFunc(m.employees, func(e models.Employee) bool { return e.ID == identifier })
}
