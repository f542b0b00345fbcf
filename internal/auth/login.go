package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/UnknownOlympus/staffdesk/internal/gateway"
	"github.com/UnknownOlympus/staffdesk/internal/models"
)

// ErrInvalidCredentials is returned when no user matches. Its text is shown
// on the login screen verbatim.
var ErrInvalidCredentials = errors.New("Invalid credentials") //nolint:staticcheck,revive // user-facing text

// Login fetches all users and returns the one whose email and password both
// match exactly. The comparison is plaintext and happens on the client; this
// mirrors the mock backend and is not a security mechanism.
func Login(ctx context.Context, users gateway.UserLister, email, password string) (models.User, error) {
	all, err := users.ListUsers(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to fetch users: %w", err)
	}

	for _, user := range all {
		if user.Email == email && user.Password == password {
			return user, nil
		}
	}

	return models.User{}, ErrInvalidCredentials
}
