package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/staffdesk/internal/gateway"
	"github.com/UnknownOlympus/staffdesk/internal/metrics"
	"github.com/UnknownOlympus/staffdesk/internal/session"
)

// SessionStore persists the current session.
type SessionStore interface {
	Load() (session.Session, error)
	Save(s session.Session) error
	Clear() error
}

// Gate signs users in and out and keeps the session store in step.
type Gate struct {
	log      *slog.Logger
	users    gateway.UserLister
	sessions SessionStore
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewGate returns a Gate that checks credentials against users and persists sessions.
func NewGate(log *slog.Logger, users gateway.UserLister, sessions SessionStore, appMetrics *metrics.Metrics) *Gate {
	return &Gate{
		log:      log.With(slog.String("division", "auth")),
		users:    users,
		sessions: sessions,
		metrics:  appMetrics,
		now:      time.Now,
	}
}

// Current returns the persisted session.
func (g *Gate) Current() (session.Session, error) {
	sess, err := g.sessions.Load()
	if err != nil {
		return session.Session{}, fmt.Errorf("failed to load session: %w", err)
	}
	return sess, nil
}

// SignIn checks the credentials and persists a new session on success.
func (g *Gate) SignIn(ctx context.Context, email, password string) (session.Session, error) {
	user, err := Login(ctx, g.users, email, password)
	if err != nil {
		g.metrics.LoginAttempts.WithLabelValues("failure").Inc()
		g.log.WarnContext(ctx, "Login failed", "email", email, "error", err)
		return session.Session{}, err
	}
	g.metrics.LoginAttempts.WithLabelValues("success").Inc()

	sess := session.New(user, g.now())
	if err = g.sessions.Save(sess); err != nil {
		return session.Session{}, fmt.Errorf("failed to save session: %w", err)
	}
	g.log.InfoContext(ctx, "User logged in", "user_id", user.ID)

	return sess, nil
}

// SignOut forgets the persisted session.
func (g *Gate) SignOut() error {
	if err := g.sessions.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
