package tui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/UnknownOlympus/staffdesk/internal/auth"
	"github.com/UnknownOlympus/staffdesk/internal/gateway"
	"github.com/UnknownOlympus/staffdesk/internal/session"
)

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "tab", "shift+tab", "up", "down":
		m.loginFocus = 1 - m.loginFocus
		return m, m.focusLogin()
	case "enter":
		if m.loginFocus == 0 {
			m.loginFocus = 1
			return m, m.focusLogin()
		}
		if m.loggingIn {
			return m, nil
		}
		m.loggingIn = true
		m.loginErr = ""
		return m, m.signInCmd(m.email.Value(), m.password.Value())
	}

	return m.forward(msg)
}

func (m *Model) focusLogin() tea.Cmd {
	if m.loginFocus == 0 {
		m.password.Blur()
		return m.email.Focus()
	}
	m.email.Blur()
	return m.password.Focus()
}

func (m Model) signInCmd(email, password string) tea.Cmd {
	ctx, gate := m.ctx, m.deps.Gate
	return func() tea.Msg {
		sess, err := gate.SignIn(ctx, email, password)
		return loginResultMsg{session: sess, err: err}
	}
}

func (m Model) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	m.loggingIn = false

	if msg.err != nil {
		if errors.Is(msg.err, auth.ErrInvalidCredentials) {
			m.loginErr = auth.ErrInvalidCredentials.Error()
		} else {
			m.loginErr = gateway.Message(msg.err)
		}
		return m, nil
	}

	m.session = msg.session
	m.password.SetValue("")
	m.screen = screenTable
	m.deps.Directory.Reset()
	m.query = ""
	m.search.SetValue("")
	m.refreshRows()

	return m, m.loadCmd()
}

// toLogin drops the session and every trace of the previous user's data.
func (m Model) toLogin() Model {
	m.session = session.Session{}
	m.screen = screenLogin
	m.loginFocus = 0
	m.loginErr = ""
	m.password.SetValue("")
	m.searching = false
	m.query = ""
	m.search.SetValue("")
	m.deps.Directory.Reset()
	m.refreshRows()
	m.focusLogin()
	return m
}

func (m Model) logoutCmd() tea.Cmd {
	gate := m.deps.Gate
	return func() tea.Msg {
		return loggedOutMsg{err: gate.SignOut()}
	}
}

func (m Model) viewLogin() string {
	lines := []string{
		titleStyle.Render("staffdesk") + "  " + mutedStyle.Render("Sign in"),
		"",
		m.email.View(),
		m.password.View(),
		"",
	}
	switch {
	case m.loggingIn:
		lines = append(lines, accentStyle.Render("Signing in..."))
	case m.loginErr != "":
		lines = append(lines, errorStyle.Render(m.loginErr))
	default:
		lines = append(lines, "")
	}
	lines = append(lines, helpStyle.Render("tab switch field • enter sign in • esc quit"))

	return panelString(strings.Join(lines, "\n"))
}
