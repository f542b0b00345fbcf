package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/UnknownOlympus/staffdesk/internal/models"
)

// ListEmployees returns every employee ordered by id.
func (r *Repository) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	defer r.observe("list_employees")()

	query := `SELECT id, name, email, position, salary FROM employees ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]models.Employee, 0)
	for rows.Next() {
		var emp models.Employee
		if err = rows.Scan(&emp.ID, &emp.Name, &emp.Email, &emp.Position, &emp.Salary); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}

// CreateEmployee inserts a new employee and returns it with the assigned id.
func (r *Repository) CreateEmployee(ctx context.Context, fields models.EmployeeFields) (models.Employee, error) {
	defer r.observe("create_employee")()

	query := `
		INSERT INTO employees (name, email, position, salary)
		VALUES ($1, $2, $3, $4)
		RETURNING id;
	`

	var identifier int
	err := r.db.QueryRow(ctx, query, fields.Name, fields.Email, fields.Position, fields.Salary).Scan(&identifier)
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return fields.WithID(identifier), nil
}

// UpdateEmployee overwrites all fields of employee identifier.
func (r *Repository) UpdateEmployee(
	ctx context.Context,
	identifier int,
	fields models.EmployeeFields,
) (models.Employee, error) {
	defer r.observe("update_employee")()

	query := `
		UPDATE employees
		SET name = $2, email = $3, position = $4, salary = $5, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING id;
	`

	var updatedID int
	err := r.db.QueryRow(ctx, query, identifier, fields.Name, fields.Email, fields.Position, fields.Salary).
		Scan(&updatedID)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Employee{}, ErrNotFound
	}
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to update employee data: %w", err)
	}

	return fields.WithID(updatedID), nil
}

// DeleteEmployee removes employee identifier.
func (r *Repository) DeleteEmployee(ctx context.Context, identifier int) error {
	defer r.observe("delete_employee")()

	query := `DELETE FROM employees WHERE id = $1;`

	tag, err := r.db.Exec(ctx, query, identifier)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
