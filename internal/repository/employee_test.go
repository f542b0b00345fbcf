package repository_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UnknownOlympus/staffdesk/internal/metrics"
	"github.com/UnknownOlympus/staffdesk/internal/models"
	"github.com/UnknownOlympus/staffdesk/internal/repository"
)

var (
	listEmployeesQuery  = regexp.QuoteMeta(`SELECT id, name, email, position, salary FROM employees ORDER BY id`)
	createEmployeeQuery = regexp.QuoteMeta(`INSERT INTO employees (name, email, position, salary)`)
	updateEmployeeQuery = regexp.QuoteMeta(`UPDATE employees`)
	deleteEmployeeQuery = regexp.QuoteMeta(`DELETE FROM employees WHERE id = $1`)
)

var testFields = models.EmployeeFields{
	Name:     "Test User",
	Email:    "test@test.com",
	Position: "qa",
	Salary:   1200.5,
}

func newRepo(t *testing.T) (*repository.Repository, pgxmock.PgxPoolIface, *metrics.Metrics) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(mock.Close)

	appMetrics := metrics.NewMetrics(prometheus.NewRegistry())

	return repository.NewRepository(mock, appMetrics), mock, appMetrics
}

func TestListEmployees_Success(t *testing.T) {
	t.Parallel()

	repo, mock, appMetrics := newRepo(t)

	rows := pgxmock.NewRows([]string{"id", "name", "email", "position", "salary"}).
		AddRow(1, "Ada", "ada@example.com", "Engineer", 100.0).
		AddRow(2, "Bob", "bob@example.com", "QA", 50.0)
	mock.ExpectQuery(listEmployeesQuery).WillReturnRows(rows)

	employees, err := repo.ListEmployees(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []models.Employee{
		{ID: 1, Name: "Ada", Email: "ada@example.com", Position: "Engineer", Salary: 100},
		{ID: 2, Name: "Bob", Email: "bob@example.com", Position: "QA", Salary: 50},
	}, employees)
	assert.Equal(t, 1, testutil.CollectAndCount(appMetrics.DBQueryDuration))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListEmployees_Empty(t *testing.T) {
	t.Parallel()

	repo, mock, _ := newRepo(t)
	mock.ExpectQuery(listEmployeesQuery).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "position", "salary"}))

	employees, err := repo.ListEmployees(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, employees)
	assert.Empty(t, employees)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListEmployees_QueryError(t *testing.T) {
	t.Parallel()

	repo, mock, _ := newRepo(t)
	mock.ExpectQuery(listEmployeesQuery).WillReturnError(assert.AnError)

	_, err := repo.ListEmployees(context.Background())

	require.EqualError(t, err, "failed to list employees: "+assert.AnError.Error())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateEmployee(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		repo, mock, _ := newRepo(t)
		mock.ExpectQuery(createEmployeeQuery).
			WithArgs(testFields.Name, testFields.Email, testFields.Position, testFields.Salary).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(42))

		emp, err := repo.CreateEmployee(context.Background(), testFields)

		require.NoError(t, err)
		assert.Equal(t, testFields.WithID(42), emp)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query error", func(t *testing.T) {
		t.Parallel()

		repo, mock, _ := newRepo(t)
		mock.ExpectQuery(createEmployeeQuery).
			WithArgs(testFields.Name, testFields.Email, testFields.Position, testFields.Salary).
			WillReturnError(assert.AnError)

		_, err := repo.CreateEmployee(context.Background(), testFields)

		require.EqualError(t, err, "failed to create employee: "+assert.AnError.Error())
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateEmployee(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		repo, mock, _ := newRepo(t)
		mock.ExpectQuery(updateEmployeeQuery).
			WithArgs(7, testFields.Name, testFields.Email, testFields.Position, testFields.Salary).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(7))

		emp, err := repo.UpdateEmployee(context.Background(), 7, testFields)

		require.NoError(t, err)
		assert.Equal(t, testFields.WithID(7), emp)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		repo, mock, _ := newRepo(t)
		mock.ExpectQuery(updateEmployeeQuery).
			WithArgs(7, testFields.Name, testFields.Email, testFields.Position, testFields.Salary).
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.UpdateEmployee(context.Background(), 7, testFields)

		require.ErrorIs(t, err, repository.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query error", func(t *testing.T) {
		t.Parallel()

		repo, mock, _ := newRepo(t)
		mock.ExpectQuery(updateEmployeeQuery).
			WithArgs(7, testFields.Name, testFields.Email, testFields.Position, testFields.Salary).
			WillReturnError(assert.AnError)

		_, err := repo.UpdateEmployee(context.Background(), 7, testFields)

		require.EqualError(t, err, "failed to update employee data: "+assert.AnError.Error())
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeleteEmployee(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		expect  func(mock pgxmock.PgxPoolIface)
		wantErr error
		errText string
	}{
		{
			name: "success",
			expect: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(deleteEmployeeQuery).WithArgs(3).WillReturnResult(pgxmock.NewResult("DELETE", 1))
			},
		},
		{
			name: "not found",
			expect: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(deleteEmployeeQuery).WithArgs(3).WillReturnResult(pgxmock.NewResult("DELETE", 0))
			},
			wantErr: repository.ErrNotFound,
		},
		{
			name: "query error",
			expect: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(deleteEmployeeQuery).WithArgs(3).WillReturnError(assert.AnError)
			},
			wantErr: assert.AnError,
			errText: "failed to delete employee: " + assert.AnError.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo, mock, _ := newRepo(t)
			tt.expect(mock)

			err := repo.DeleteEmployee(context.Background(), 3)

			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.wantErr)
			}
			if tt.errText != "" {
				require.EqualError(t, err, tt.errText)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
