package repository

import (
	"context"
	"fmt"

	"github.com/UnknownOlympus/staffdesk/internal/models"
)

// ListUsers returns every user ordered by id.
func (r *Repository) ListUsers(ctx context.Context) ([]models.User, error) {
	defer r.observe("list_users")()

	query := `SELECT id, email, name, password FROM users ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var user models.User
		if err = rows.Scan(&user.ID, &user.Email, &user.Name, &user.Password); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// CreateUser inserts a user, or refreshes name and password when the email already exists.
func (r *Repository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	defer r.observe("create_user")()

	query := `
		INSERT INTO users (email, name, password)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, password = EXCLUDED.password
		RETURNING id;
	`

	if err := r.db.QueryRow(ctx, query, user.Email, user.Name, user.Password).Scan(&user.ID); err != nil {
		return models.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}
