package employees_test

import (
	"errors"
	"log/slog"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/UnknownOlympus/staffdesk/internal/gateway"
	"github.com/UnknownOlympus/staffdesk/internal/metrics"
	"github.com/UnknownOlympus/staffdesk/internal/models"
	"github.com/UnknownOlympus/staffdesk/internal/services/employees"
	"github.com/UnknownOlympus/staffdesk/internal/store"
	"github.com/UnknownOlympus/staffdesk/internal/validation"
	mocks "github.com/UnknownOlympus/staffdesk/mock"
)

var (
	ada = models.Employee{ID: 1, Name: "Ada", Email: "ada@example.com", Position: "Engineer", Salary: 100}
	bob = models.Employee{ID: 2, Name: "Bob", Email: "bob@example.com", Position: "QA", Salary: 50}
)

func setup(t *testing.T) (*employees.Directory, *mocks.EmployeeGateway) {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	gw := mocks.NewEmployeeGateway(t)
	st := store.New(logger, metrics.NewMetrics(prometheus.NewRegistry()))

	return employees.NewDirectory(logger, gw, st), gw
}

func loadedDirectory(t *testing.T) (*employees.Directory, *mocks.EmployeeGateway) {
	t.Helper()

	dir, gw := setup(t)
	gw.On("List", mock.Anything).Return([]models.Employee{ada, bob}, nil).Once()
	require.NoError(t, dir.Load(t.Context()))

	return dir, gw
}

func TestNewDirectory(t *testing.T) {
	t.Parallel()

	dir, _ := setup(t)

	assert.NotNil(t, dir)
	assert.Equal(t, store.State{}, dir.State())
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		dir, _ := loadedDirectory(t)

		state := dir.State()
		assert.Equal(t, []models.Employee{ada, bob}, state.Employees)
		assert.False(t, state.Loading)
		assert.Empty(t, state.Error)
	})

	t.Run("failure", func(t *testing.T) {
		t.Parallel()

		dir, gw := setup(t)
		gw.On("List", mock.Anything).Return(nil, &gateway.Error{
			Kind:    gateway.KindTransport,
			Message: "Network Error",
		}).Once()

		err := dir.Load(t.Context())

		require.ErrorContains(t, err, "failed to list employees")
		state := dir.State()
		assert.False(t, state.Loading)
		assert.Equal(t, "Network Error", state.Error)
	})
}

func TestAdd(t *testing.T) {
	t.Parallel()

	fields := models.EmployeeFields{Name: "Cleo", Email: "cleo@example.com", Position: "PM", Salary: 70}

	t.Run("appends created record", func(t *testing.T) {
		t.Parallel()

		dir, gw := loadedDirectory(t)
		gw.On("Create", mock.Anything, fields).Return(fields.WithID(3), nil).Once()

		created, err := dir.Add(t.Context(), fields)

		require.NoError(t, err)
		assert.Equal(t, 3, created.ID)
		assert.Equal(t, []models.Employee{ada, bob, fields.WithID(3)}, dir.State().Employees)
	})

	t.Run("invalid fields never reach the api", func(t *testing.T) {
		t.Parallel()

		dir, gw := loadedDirectory(t)
		bad := fields
		bad.Email = "not-an-email"

		_, err := dir.Add(t.Context(), bad)

		var verrs validation.Errors
		require.True(t, errors.As(err, &verrs))
		assert.Equal(t, "Invalid email address", verrs["email"])
		gw.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		assert.Len(t, dir.State().Employees, 2)
		assert.Empty(t, dir.State().Error)
	})

	t.Run("api failure sets the error", func(t *testing.T) {
		t.Parallel()

		dir, gw := loadedDirectory(t)
		gw.On("Create", mock.Anything, fields).Return(models.Employee{}, &gateway.Error{
			Kind:    gateway.KindStatus,
			Status:  http.StatusInternalServerError,
			Message: "Request failed with status code 500",
		}).Once()

		_, err := dir.Add(t.Context(), fields)

		require.ErrorContains(t, err, "failed to create employee 'Cleo'")
		assert.Equal(t, "Request failed with status code 500", dir.State().Error)
		assert.Len(t, dir.State().Employees, 2, "no optimistic insert")
	})
}

func TestEdit(t *testing.T) {
	t.Parallel()

	changed := models.EmployeeFields{Name: "Ada King", Email: "ada@example.com", Position: "CTO", Salary: 300}

	t.Run("replaces matching record", func(t *testing.T) {
		t.Parallel()

		dir, gw := loadedDirectory(t)
		gw.On("Update", mock.Anything, 1, changed).Return(changed.WithID(1), nil).Once()

		_, err := dir.Edit(t.Context(), 1, changed)

		require.NoError(t, err)
		assert.Equal(t, []models.Employee{changed.WithID(1), bob}, dir.State().Employees)
	})

	t.Run("invalid salary", func(t *testing.T) {
		t.Parallel()

		dir, gw := loadedDirectory(t)
		bad := changed
		bad.Salary = 0

		_, err := dir.Edit(t.Context(), 1, bad)

		var verrs validation.Errors
		require.ErrorAs(t, err, &verrs)
		gw.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("api failure keeps the record", func(t *testing.T) {
		t.Parallel()

		dir, gw := loadedDirectory(t)
		gw.On("Update", mock.Anything, 1, changed).Return(models.Employee{}, &gateway.Error{
			Kind: gateway.KindStatus, Status: http.StatusNotFound, Message: "Employee not found",
		}).Once()

		_, err := dir.Edit(t.Context(), 1, changed)

		require.Error(t, err)
		assert.True(t, gateway.IsStatus(err, http.StatusNotFound))
		assert.Equal(t, []models.Employee{ada, bob}, dir.State().Employees)
		assert.Equal(t, "Employee not found", dir.State().Error)
	})
}

func TestRemove(t *testing.T) {
	t.Parallel()

	t.Run("drops matching record", func(t *testing.T) {
		t.Parallel()

		dir, gw := loadedDirectory(t)
		gw.On("Delete", mock.Anything, 1).Return(nil).Once()

		require.NoError(t, dir.Remove(t.Context(), 1))
		assert.Equal(t, []models.Employee{bob}, dir.State().Employees)
	})

	t.Run("api failure", func(t *testing.T) {
		t.Parallel()

		dir, gw := loadedDirectory(t)
		gw.On("Delete", mock.Anything, 1).Return(assert.AnError).Once()

		err := dir.Remove(t.Context(), 1)

		require.ErrorIs(t, err, assert.AnError)
		assert.Len(t, dir.State().Employees, 2)
		assert.Equal(t, assert.AnError.Error(), dir.State().Error)

		dir.DismissError()
		assert.Empty(t, dir.State().Error)
	})
}
