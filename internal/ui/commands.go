package ui

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nattoujam/tcurl/internal/editor"
	"github.com/nattoujam/tcurl/internal/errdef"
	"github.com/nattoujam/tcurl/internal/httpclient"
	"github.com/nattoujam/tcurl/internal/placeholder"
	"github.com/nattoujam/tcurl/internal/report"
	"github.com/nattoujam/tcurl/internal/requestset"
	"github.com/nattoujam/tcurl/internal/store"
)

// writeClipboard is swappable so tests can run without a display.
var writeClipboard = clipboard.WriteAll

// startExecute re-reads the selected definition from disk, then either
// opens the variable modal or begins execution directly.
func (m *Model) startExecute() tea.Cmd {
	entry, ok := m.selectedEntry()
	if !ok {
		return nil
	}
	rs, err := m.cfg.Store.Load(entry.StorageID)
	if err != nil {
		m.showMessage(errdef.Message(err))
		return nil
	}

	if len(rs.Variables) > 0 {
		m.openVariableModal(rs)
		return nil
	}

	cmd, execErr := m.beginExecution(rs, nil)
	if execErr != nil {
		m.showMessage(errdef.Message(execErr))
		return nil
	}
	return cmd
}

func (m *Model) openVariableModal(rs *requestset.RequestSet) {
	inputs := make([]textinput.Model, len(rs.Variables))
	for i, variable := range rs.Variables {
		ti := textinput.New()
		ti.Prompt = fmt.Sprintf("$%d %s: ", i+1, variable.Name)
		ti.Placeholder = variable.Placeholder
		ti.PromptStyle = m.theme.InputPrompt
		ti.PlaceholderStyle = m.theme.InputPlaceholder
		ti.CharLimit = 0
		if i == 0 {
			ti.Focus()
		}
		inputs[i] = ti
	}
	m.varTarget = rs
	m.varInputs = inputs
	m.varIndex = 0
	m.varError = ""
	m.mode = modeCollectingVariables
}

// beginExecution performs the substitution and launches the request as
// a background command. Only one execution may be pending at a time;
// the Executing mode guards re-entry.
func (m *Model) beginExecution(rs *requestset.RequestSet, args []string) (tea.Cmd, error) {
	body, err := placeholder.Substitute(rs.Body, args)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.sendCancel = cancel
	m.sending = true
	m.execID = rs.StorageID
	m.mode = modeExecuting
	m.clearVariableModal()
	m.setStatus(fmt.Sprintf("executing %s…", rs.DisplayName()), statusInfo)

	client := m.cfg.Client
	opts := m.cfg.HTTPOptions
	id := rs.StorageID
	execCmd := func() tea.Msg {
		return responseMsg{id: id, result: client.Execute(ctx, rs, body, opts)}
	}
	return tea.Batch(m.spinner.Tick, execCmd), nil
}

func (m *Model) handleResponse(msg responseMsg) tea.Cmd {
	if !m.sending || msg.id != m.execID {
		// A result that arrives after teardown began is discarded.
		return nil
	}
	m.cancelInFlight()
	m.mode = modeBrowsing
	m.lastResult = msg.result
	m.lastResultID = msg.id
	m.responseView = report.Render(msg.result)
	m.setTab(tabResponse)

	level := statusSuccess
	switch m.responseView.ColorClass {
	case report.ClassWarning:
		level = statusWarn
	case report.ClassError:
		level = statusError
	}
	m.setStatus(m.responseView.StatusLine, level)
	return nil
}

// cancelInFlight releases the pending execution token and the
// underlying connection context.
func (m *Model) cancelInFlight() {
	if m.sendCancel != nil {
		m.sendCancel()
		m.sendCancel = nil
	}
	m.sending = false
}

// startNew seeds a template definition under the next free id and
// hands it to the external editor.
func (m *Model) startNew() tea.Cmd {
	id := m.cfg.Store.NextID()
	if err := m.cfg.Store.Save(id, store.NewDefault("New Request")); err != nil {
		m.showMessage(errdef.Message(err))
		return nil
	}
	return m.openEditor(id, true)
}

func (m *Model) startEdit() tea.Cmd {
	entry, ok := m.selectedEntry()
	if !ok {
		return nil
	}
	return m.openEditor(entry.StorageID, false)
}

func (m *Model) openEditor(id string, created bool) tea.Cmd {
	path, err := m.cfg.Store.Path(id)
	if err != nil {
		m.showMessage(errdef.Message(err))
		return nil
	}
	cmd, err := editor.Command(m.cfg.EditorCmd, path)
	if err != nil {
		m.showMessage(errdef.Message(err))
		return nil
	}
	m.mode = modeEditingExternal
	return tea.ExecProcess(cmd, func(execErr error) tea.Msg {
		return editorFinishedMsg{id: id, err: execErr, created: created}
	})
}

func (m *Model) handleEditorFinished(msg editorFinishedMsg) tea.Cmd {
	m.mode = modeBrowsing
	m.reloadEntries(msg.id)

	if msg.err != nil {
		m.showMessage(fmt.Sprintf("editor failed: %v", msg.err))
		return nil
	}
	// Re-load so a definition the editor broke surfaces immediately
	// instead of silently disappearing from the list.
	if _, err := m.cfg.Store.Load(msg.id); err != nil {
		m.showMessage(errdef.Message(err))
		return nil
	}
	if msg.created {
		m.setStatus(fmt.Sprintf("created %s", msg.id), statusSuccess)
	} else {
		m.setStatus(fmt.Sprintf("saved %s", msg.id), statusSuccess)
	}
	return nil
}

func responseClipboardText(result *httpclient.Result) string {
	if result == nil {
		return ""
	}
	if result.Failure != nil {
		return fmt.Sprintf("%s: %s", result.Failure.Kind.Label(), result.Failure.Message)
	}
	return string(result.Body)
}

func problemSummary(problems []store.Problem) string {
	if len(problems) == 1 {
		return fmt.Sprintf("1 request file failed to parse (%s)", problems[0].StorageID)
	}
	return fmt.Sprintf("%d request files failed to parse", len(problems))
}
