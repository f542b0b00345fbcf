package tui

import (
	"github.com/UnknownOlympus/staffdesk/internal/session"
)

type loginResultMsg struct {
	session session.Session
	err     error
}

type employeesLoadedMsg struct {
	err error
}

type mutationDoneMsg struct {
	op  string
	err error
}

// searchTickMsg fires once the debounce delay has passed. Only the tick
// carrying the latest sequence number is applied.
type searchTickMsg struct {
	seq   int
	query string
}

type loggedOutMsg struct {
	err error
}
