package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/UnknownOlympus/staffdesk/internal/models"
	"github.com/UnknownOlympus/staffdesk/internal/store"
)

func newEmployeeTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Name", Width: 22},
		{Title: "Email", Width: 30},
		{Title: "Position", Width: 20},
		{Title: "Salary", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12), //nolint:mnd // resized on the first WindowSizeMsg
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true)
	styles.Selected = styles.Selected.Bold(true).Reverse(true)
	t.SetStyles(styles)

	return t
}

func employeeRow(e models.Employee) table.Row {
	return table.Row{
		strconv.Itoa(e.ID),
		e.Name,
		e.Email,
		e.Position,
		formatSalary(e.Salary),
	}
}

func formatSalary(salary float64) string {
	return strconv.FormatFloat(salary, 'f', 2, 64)
}

// refreshRows re-derives the visible rows from the store and the applied query.
func (m *Model) refreshRows() {
	m.visible = store.Filter(m.deps.Directory.State().Employees, m.query)

	rows := make([]table.Row, 0, len(m.visible))
	for _, e := range m.visible {
		rows = append(rows, employeeRow(e))
	}
	m.table.SetRows(rows)

	if cursor := m.table.Cursor(); cursor >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m Model) selected() (models.Employee, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.visible) {
		return models.Employee{}, false
	}
	return m.visible[idx], true
}

func (m Model) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.updateSearch(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		m.searching = true
		m.table.Blur()
		return m, m.search.Focus()
	case "a":
		m.form = newForm(nil)
		m.screen = screenForm
		return m, m.form.focus()
	case "e":
		if emp, ok := m.selected(); ok {
			m.form = newForm(&emp)
			m.screen = screenForm
			return m, m.form.focus()
		}
		return m, nil
	case "d":
		if emp, ok := m.selected(); ok {
			m.confirmID = emp.ID
			m.screen = screenConfirm
		}
		return m, nil
	case "r":
		return m, m.loadCmd()
	case "x":
		m.deps.Directory.DismissError()
		return m, nil
	case "L":
		return m, m.logoutCmd()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// updateSearch edits the query. Filtering waits until typing pauses for the
// debounce delay.
func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc", "tab":
		m.searching = false
		m.search.Blur()
		m.table.Focus()
		if msg.String() == "esc" {
			m.search.SetValue("")
			m.searchSeq++
			m.query = ""
			m.refreshRows()
		}
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return m, cmd
	}

	m.searchSeq++
	return m, tea.Batch(cmd, m.debounceCmd(m.searchSeq, m.search.Value()))
}

func (m Model) debounceCmd(seq int, query string) tea.Cmd {
	if m.deps.Debounce <= 0 {
		return func() tea.Msg { return searchTickMsg{seq: seq, query: query} }
	}
	return tea.Tick(m.deps.Debounce, func(_ time.Time) tea.Msg {
		return searchTickMsg{seq: seq, query: query}
	})
}

func (m Model) viewTable() string {
	state := m.deps.Directory.State()

	header := titleStyle.Render("Employees") + "  " +
		accentStyle.Render(fmt.Sprintf("%d shown", len(m.visible))) + " " +
		mutedStyle.Render(fmt.Sprintf("of %d", len(state.Employees)))
	if m.session.User != nil {
		header += "  " + successStyle.Render("● ") + mutedStyle.Render(m.session.User.Email)
	}

	lines := []string{header}
	if banner := m.errorBanner(); banner != "" {
		lines = append(lines, banner)
	}
	if state.Loading {
		lines = append(lines, accentStyle.Render("Loading..."))
	}
	if m.searching || m.search.Value() != "" {
		lines = append(lines, m.search.View())
	}
	lines = append(lines, m.table.View())
	if !state.Loading && len(m.visible) == 0 {
		lines = append(lines, mutedStyle.Render("No employees"))
	}
	lines = append(lines, helpStyle.Render(
		"a add • e edit • d delete • / search • r reload • x dismiss • L logout • q quit"))

	return panelString(strings.Join(lines, "\n"))
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		if m.busy {
			return m, nil
		}
		m.busy = true
		ctx, dir, id := m.ctx, m.deps.Directory, m.confirmID
		return m, func() tea.Msg {
			return mutationDoneMsg{op: "delete", err: dir.Remove(ctx, id)}
		}
	case "n", "esc", "q":
		if !m.busy {
			m.screen = screenTable
		}
		return m, nil
	}
	return m, nil
}

func (m Model) viewConfirm() string {
	action := "enter/y delete • esc/n cancel"
	if m.busy {
		action = "Deleting..."
	}

	lines := []string{
		titleStyle.Render("Confirm Delete"),
		"",
		deleteConfirmText,
	}
	if banner := m.errorBanner(); banner != "" {
		lines = append(lines, "", banner)
	}
	lines = append(lines, "", helpStyle.Render(action))

	return panelString(strings.Join(lines, "\n"))
}

// handleMutationDone closes the form or dialog only when the API accepted the
// change. On failure it stays open and the store error is shown.
func (m Model) handleMutationDone(msg mutationDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	m.form.saving = false
	m.deps.Log.DebugContext(m.ctx, "Mutation finished", "op", msg.op, "error", msg.err)

	if msg.err != nil {
		if fieldErrs, ok := asFieldErrors(msg.err); ok {
			m.form.errs = fieldErrs
		}
		return m, nil
	}

	m.screen = screenTable
	m.refreshRows()

	return m, nil
}
