// Package session holds the signed-in user. A Session is a plain value that
// is passed to whoever needs it; persistence goes through Encode and Decode.
package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/UnknownOlympus/staffdesk/internal/models"
)

// User is the part of an account kept in a session. Passwords are never kept.
type User struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Session is the client-held record of the authenticated user. The zero
// value is a signed-out session.
type Session struct {
	User       *User     `json:"user,omitempty"`
	LoggedInAt time.Time `json:"logged_in_at,omitzero"`
}

// New returns an authenticated session for user.
func New(user models.User, now time.Time) Session {
	return Session{
		User:       &User{ID: user.ID, Email: user.Email, Name: user.Name},
		LoggedInAt: now.UTC(),
	}
}

// Authenticated reports whether someone is signed in.
func (s Session) Authenticated() bool {
	return s.User != nil
}

// Encode serializes a session.
func Encode(s Session) ([]byte, error) {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}
	return b, nil
}

// Decode parses a session produced by Encode. Empty input is a signed-out
// session.
func Decode(b []byte) (Session, error) {
	var s Session
	if len(b) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(b, &s); err != nil {
		return Session{}, fmt.Errorf("parse session: %w", err)
	}
	return s, nil
}
