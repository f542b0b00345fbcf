package tui

import (
	"errors"
	"maps"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/UnknownOlympus/staffdesk/internal/models"
	"github.com/UnknownOlympus/staffdesk/internal/validation"
)

const salaryNotNumber = "Salary must be a number"

var formFields = [...]struct {
	key   string
	label string
}{
	{key: "name", label: "Name"},
	{key: "email", label: "Email"},
	{key: "position", label: "Position"},
	{key: "salary", label: "Salary"},
}

type form struct {
	editID  int // 0 when adding
	inputs  [len(formFields)]textinput.Model
	focused int
	errs    map[string]string
	saving  bool
}

// newForm returns an empty form, or one prefilled from emp for editing.
func newForm(emp *models.Employee) form {
	var f form
	for idx, field := range formFields {
		in := textinput.New()
		in.Prompt = field.label + strings.Repeat(" ", 10-len(field.label)) //nolint:mnd // label column
		in.CharLimit = 200
		f.inputs[idx] = in
	}

	if emp != nil {
		f.editID = emp.ID
		f.inputs[0].SetValue(emp.Name)
		f.inputs[1].SetValue(emp.Email)
		f.inputs[2].SetValue(emp.Position)
		f.inputs[3].SetValue(formatSalary(emp.Salary))
	}

	return f
}

func (f *form) focus() tea.Cmd {
	for idx := range f.inputs {
		f.inputs[idx].Blur()
	}
	return f.inputs[f.focused].Focus()
}

func (f *form) move(delta int) tea.Cmd {
	f.focused = (f.focused + delta + len(f.inputs)) % len(f.inputs)
	return f.focus()
}

func (f form) update(msg tea.Msg) (form, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)
	return f, cmd
}

// values reads the inputs and validates them.
func (f form) values() (models.EmployeeFields, map[string]string) {
	fields := models.EmployeeFields{
		Name:     strings.TrimSpace(f.inputs[0].Value()),
		Email:    strings.TrimSpace(f.inputs[1].Value()),
		Position: strings.TrimSpace(f.inputs[2].Value()),
	}

	errs := map[string]string{}

	rawSalary := strings.TrimSpace(f.inputs[3].Value())
	if rawSalary != "" {
		salary, err := strconv.ParseFloat(rawSalary, 64)
		if err != nil {
			errs["salary"] = salaryNotNumber
		} else {
			fields.Salary = salary
		}
	}

	if err := validation.Employee(fields); err != nil {
		if verrs, ok := asFieldErrors(err); ok {
			for key, msg := range verrs {
				if _, seen := errs[key]; !seen {
					errs[key] = msg
				}
			}
		}
	}

	return fields, errs
}

func asFieldErrors(err error) (map[string]string, bool) {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return nil, false
	}
	return maps.Clone(verrs), true
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form.saving {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.screen = screenTable
		return m, nil
	case "tab", "down":
		return m, m.form.move(1)
	case "shift+tab", "up":
		return m, m.form.move(-1)
	case "enter":
		if m.form.focused < len(m.form.inputs)-1 {
			return m, m.form.move(1)
		}
		return m.submitForm()
	case "ctrl+s":
		return m.submitForm()
	}

	return m.forward(msg)
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	fields, errs := m.form.values()
	m.form.errs = errs
	if len(errs) > 0 {
		return m, nil
	}

	m.form.saving = true
	ctx, dir, id := m.ctx, m.deps.Directory, m.form.editID
	if id == 0 {
		return m, func() tea.Msg {
			_, err := dir.Add(ctx, fields)
			return mutationDoneMsg{op: "create", err: err}
		}
	}
	return m, func() tea.Msg {
		_, err := dir.Edit(ctx, id, fields)
		return mutationDoneMsg{op: "update", err: err}
	}
}

func (m Model) viewForm() string {
	title := "Add Employee"
	if m.form.editID != 0 {
		title = "Edit Employee"
	}

	lines := []string{
		titleStyle.Render(title),
		mutedStyle.Render("Please fill in the employee details below."),
		"",
	}
	for idx, field := range formFields {
		lines = append(lines, m.form.inputs[idx].View())
		if msg := m.form.errs[field.key]; msg != "" {
			lines = append(lines, "          "+errorStyle.Render(msg))
		}
	}
	if banner := m.errorBanner(); banner != "" {
		lines = append(lines, "", banner)
	}

	help := "tab move • enter next/save • ctrl+s save • esc cancel"
	if m.form.saving {
		help = accentStyle.Render("Saving...")
	}
	lines = append(lines, "", helpStyle.Render(help))

	return panelString(strings.Join(lines, "\n"))
}
