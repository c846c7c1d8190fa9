package ui

import "github.com/nattoujam/tcurl/internal/httpclient"

type statusLevel int

const (
	statusInfo statusLevel = iota
	statusWarn
	statusError
	statusSuccess
)

type statusMsg struct {
	text  string
	level statusLevel
}

// responseMsg delivers the resolved result of the single in-flight
// execution back onto the session loop.
type responseMsg struct {
	id     string
	result *httpclient.Result
}

// editorFinishedMsg fires when the external editor process returns
// and the TUI regains the terminal.
type editorFinishedMsg struct {
	id      string
	err     error
	created bool
}
