// Package ui drives the interactive session: request list navigation,
// tabbed detail view, modal flows, and the single in-flight execution.
// All session-wide mutable state lives on Model and changes only in
// response to one input event or one completed execution at a time.
package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nattoujam/tcurl/internal/httpclient"
	"github.com/nattoujam/tcurl/internal/report"
	"github.com/nattoujam/tcurl/internal/requestset"
	"github.com/nattoujam/tcurl/internal/store"
	"github.com/nattoujam/tcurl/internal/theme"
)

var _ tea.Model = (*Model)(nil)

type sessionMode int

const (
	modeBrowsing sessionMode = iota
	modeEditingExternal
	modeCollectingVariables
	modeExecuting
	modeConfirmingDelete
	modeShowingMessage
)

type detailTab int

const (
	tabHeaders detailTab = iota
	tabBody
	tabResponse
	tabCount
)

type Config struct {
	Store       *store.Store
	Client      *httpclient.Client
	HTTPOptions httpclient.Options
	Theme       *theme.Theme
	EditorCmd   string
	Version     string
}

type Model struct {
	cfg   Config
	keys  keyMap
	theme *theme.Theme

	entries  []store.Entry
	problems []store.Problem
	cursor   int

	mode      sessionMode
	activeTab detailTab

	// detail is the currently selected set, re-read from disk on every
	// selection change so external edits are never shadowed.
	detail    *requestset.RequestSet
	detailErr error

	// confirm-delete modal
	confirmTarget store.Entry

	// variable-input modal
	varTarget *requestset.RequestSet
	varInputs []textinput.Model
	varIndex  int
	varError  string

	// message modal
	message string

	// single in-flight execution token
	sending    bool
	sendCancel context.CancelFunc
	execID     string

	lastResult   *httpclient.Result
	lastResultID string
	responseView report.View

	viewport viewport.Model
	spinner  spinner.Model
	help     help.Model
	showHelp bool

	statusText  string
	statusLevel statusLevel

	width  int
	height int
	ready  bool
}

func New(cfg Config) *Model {
	th := cfg.Theme
	if th == nil {
		th = theme.New("default")
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = th.Warning

	helpModel := help.New()

	m := &Model{
		cfg:      cfg,
		keys:     defaultKeyMap(),
		theme:    th,
		spinner:  sp,
		help:     helpModel,
		viewport: viewport.New(0, 0),
	}
	m.reloadEntries("")
	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) selectedEntry() (store.Entry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return store.Entry{}, false
	}
	return m.entries[m.cursor], true
}

// reloadEntries refreshes the list from disk, keeping the cursor on
// selectID when given, and re-reads the selected definition.
func (m *Model) reloadEntries(selectID string) {
	entries, problems, err := m.cfg.Store.List()
	if err != nil {
		m.entries = nil
		m.problems = nil
		m.setStatus(err.Error(), statusError)
		return
	}
	m.entries = entries
	m.problems = problems

	if selectID != "" {
		for i, entry := range entries {
			if entry.StorageID == selectID {
				m.cursor = i
				break
			}
		}
	}
	if m.cursor >= len(entries) {
		m.cursor = len(entries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.loadDetail()

	if len(problems) > 0 {
		m.setStatus(problemSummary(problems), statusWarn)
	}
}

func (m *Model) loadDetail() {
	entry, ok := m.selectedEntry()
	if !ok {
		m.detail = nil
		m.detailErr = nil
		return
	}
	m.detail, m.detailErr = m.cfg.Store.Load(entry.StorageID)
}

func (m *Model) setStatus(text string, level statusLevel) {
	m.statusText = text
	m.statusLevel = level
}
