// Package tui is the interactive terminal front end: a login screen and an
// employee table with add, edit, delete and search.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/UnknownOlympus/staffdesk/internal/auth"
	"github.com/UnknownOlympus/staffdesk/internal/models"
	"github.com/UnknownOlympus/staffdesk/internal/services/employees"
	"github.com/UnknownOlympus/staffdesk/internal/session"
)

type screen int

const (
	screenLogin screen = iota
	screenTable
	screenForm
	screenConfirm
)

const deleteConfirmText = "Are you sure you want to delete this employee? This action cannot be undone."

// Deps are the collaborators the interface drives.
type Deps struct {
	Log       *slog.Logger
	Gate      *auth.Gate
	Directory *employees.Directory
	Debounce  time.Duration
}

// Model is the Bubble Tea model of the whole client: login, table, form and confirm screens.
type Model struct {
	ctx     context.Context //nolint:containedctx // tea commands outlive Update calls
	deps    Deps
	screen  screen
	session session.Session

	// login
	email      textinput.Model
	password   textinput.Model
	loginFocus int
	loginErr   string
	loggingIn  bool

	// table
	table     table.Model
	visible   []models.Employee
	search    textinput.Model
	searching bool
	query     string
	searchSeq int

	// form and delete confirmation
	form      form
	confirmID int
	busy      bool

	width  int
	height int
}

// New builds the root model. An authenticated sess opens straight on the table.
func New(ctx context.Context, deps Deps, sess session.Session) Model {
	m := Model{
		ctx:     ctx,
		deps:    deps,
		session: sess,
		screen:  screenLogin,
	}

	m.email = textinput.New()
	m.email.Prompt = "Email    "
	m.email.Placeholder = "admin@example.com"
	m.email.CharLimit = 200
	m.email.Focus()

	m.password = textinput.New()
	m.password.Prompt = "Password "
	m.password.EchoMode = textinput.EchoPassword
	m.password.EchoCharacter = '•'
	m.password.CharLimit = 200

	m.search = textinput.New()
	m.search.Prompt = "/ "
	m.search.Placeholder = "Search name, email or position..."
	m.search.CharLimit = 200

	m.table = newEmployeeTable()

	if sess.Authenticated() {
		m.screen = screenTable
	}

	return m
}

// Run starts the program and blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, deps Deps) error {
	sess, err := deps.Gate.Current()
	if err != nil {
		deps.Log.WarnContext(ctx, "Ignoring unreadable session", "error", err)
		sess = session.Session{}
	}

	p := tea.NewProgram(New(ctx, deps, sess), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err = p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run interface: %w", err)
	}

	return nil
}

func (m Model) Init() tea.Cmd {
	if m.screen == screenTable {
		return m.loadCmd()
	}
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetWidth(msg.Width - 4)
		m.table.SetHeight(max(msg.Height-10, 3)) //nolint:mnd // header, banner and help lines
		return m, nil

	case loginResultMsg:
		return m.handleLoginResult(msg)

	case employeesLoadedMsg:
		m.refreshRows()
		return m, nil

	case mutationDoneMsg:
		return m.handleMutationDone(msg)

	case searchTickMsg:
		if msg.seq == m.searchSeq {
			m.query = msg.query
			m.refreshRows()
		}
		return m, nil

	case loggedOutMsg:
		if msg.err != nil {
			m.deps.Log.ErrorContext(m.ctx, "Failed to clear session", "error", msg.err)
		}
		return m.toLogin(), textinput.Blink

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.screen {
		case screenLogin:
			return m.updateLogin(msg)
		case screenTable:
			return m.updateTable(msg)
		case screenForm:
			return m.updateForm(msg)
		case screenConfirm:
			return m.updateConfirm(msg)
		}
	}

	return m.forward(msg)
}

// forward passes non-key messages such as cursor blinks to the focused input.
func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.screen {
	case screenLogin:
		if m.loginFocus == 0 {
			m.email, cmd = m.email.Update(msg)
		} else {
			m.password, cmd = m.password.Update(msg)
		}
	case screenTable:
		if m.searching {
			m.search, cmd = m.search.Update(msg)
		}
	case screenForm:
		m.form, cmd = m.form.update(msg)
	case screenConfirm:
	}
	return m, cmd
}

func (m Model) View() string {
	switch m.screen {
	case screenLogin:
		return m.viewLogin()
	case screenForm:
		return m.viewForm()
	case screenConfirm:
		return m.viewConfirm()
	case screenTable:
	}
	return m.viewTable()
}

func (m Model) loadCmd() tea.Cmd {
	ctx, dir := m.ctx, m.deps.Directory
	return func() tea.Msg {
		return employeesLoadedMsg{err: dir.Load(ctx)}
	}
}

func (m Model) errorBanner() string {
	msg := m.deps.Directory.State().Error
	if msg == "" {
		return ""
	}
	return bannerStyle.Render("✖ "+msg) + helpStyle.Render("  x dismiss")
}
