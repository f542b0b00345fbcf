// Package ui renders one-shot command output with Lip Gloss.
package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/UnknownOlympus/staffdesk/internal/models"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	headerStyle  = cellStyle.Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

func OK(w io.Writer, msg string) {
	fmt.Fprintln(w, successStyle.Render("✔ "+msg))
}

func Fail(w io.Writer, msg string) {
	fmt.Fprintln(w, errorStyle.Render("✖ "+msg))
}

func Muted(w io.Writer, msg string) {
	fmt.Fprintln(w, mutedStyle.Render(msg))
}

// Panel draws lines inside a rounded frame.
func Panel(w io.Writer, lines ...string) {
	fmt.Fprintln(w, panelStyle.Render(strings.Join(lines, "\n")))
}

func Title(s string) string {
	return titleStyle.Render(s)
}

// EmployeeTable renders employees as a bordered table. Salaries are right aligned.
func EmployeeTable(employees []models.Employee) string {
	rows := make([][]string, 0, len(employees))
	for _, e := range employees {
		rows = append(rows, []string{
			strconv.Itoa(e.ID),
			e.Name,
			e.Email,
			e.Position,
			strconv.FormatFloat(e.Salary, 'f', 2, 64),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers("ID", "Name", "Email", "Position", "Salary").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := cellStyle
			if row == table.HeaderRow {
				style = headerStyle
			}
			if col == 0 || col == 4 { //nolint:mnd // numeric columns
				style = style.Align(lipgloss.Right)
			}
			return style
		})

	return t.String()
}
