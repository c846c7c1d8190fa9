package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nattoujam/tcurl/internal/report"
	"github.com/nattoujam/tcurl/internal/store"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.height = typed.Height
		m.ready = true
		m.resizeViewport()
		return m, nil

	case spinner.TickMsg:
		if !m.sending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(typed)
		return m, cmd

	case responseMsg:
		return m, m.handleResponse(typed)

	case editorFinishedMsg:
		return m, m.handleEditorFinished(typed)

	case statusMsg:
		m.setStatus(typed.text, typed.level)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(typed)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Status lines are transient: any key clears the previous one so
	// the hint bar comes back. Handlers below set a fresh status when
	// the key itself produces one.
	m.statusText = ""
	m.statusLevel = statusInfo

	if m.showHelp {
		// Help is a pure overlay; any key returns to the session.
		m.showHelp = false
		return m, nil
	}

	switch m.mode {
	case modeShowingMessage:
		m.message = ""
		m.mode = modeBrowsing
		return m, nil

	case modeConfirmingDelete:
		return m.handleConfirmKey(msg)

	case modeCollectingVariables:
		return m.handleVariableKey(msg)

	case modeExecuting:
		return m.handleExecutingKey(msg)

	case modeEditingExternal:
		// The external editor owns the terminal; nothing to do.
		return m, nil
	}

	return m.handleBrowsingKey(msg)
}

func (m *Model) handleBrowsingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return m, nil
	case key.Matches(msg, m.keys.NextTab):
		m.setTab((m.activeTab + 1) % tabCount)
		return m, nil
	case key.Matches(msg, m.keys.Tab1):
		m.setTab(tabHeaders)
		return m, nil
	case key.Matches(msg, m.keys.Tab2):
		m.setTab(tabBody)
		return m, nil
	case key.Matches(msg, m.keys.Tab3):
		m.setTab(tabResponse)
		return m, nil
	case key.Matches(msg, m.keys.New):
		return m, m.startNew()
	case key.Matches(msg, m.keys.Edit):
		return m, m.startEdit()
	case key.Matches(msg, m.keys.Delete):
		m.startDelete()
		return m, nil
	case key.Matches(msg, m.keys.Execute):
		return m, m.startExecute()
	case key.Matches(msg, m.keys.Copy):
		m.copyResponse()
		return m, nil
	}
	return m, nil
}

func (m *Model) handleExecutingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		// Session teardown cancels the outstanding call so no
		// background work outlives the session.
		m.cancelInFlight()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return m, nil
	case key.Matches(msg, m.keys.NextTab):
		m.setTab((m.activeTab + 1) % tabCount)
		return m, nil
	case key.Matches(msg, m.keys.Tab1):
		m.setTab(tabHeaders)
		return m, nil
	case key.Matches(msg, m.keys.Tab2):
		m.setTab(tabBody)
		return m, nil
	case key.Matches(msg, m.keys.Tab3):
		m.setTab(tabResponse)
		return m, nil
	}
	// Everything else, including a repeated execute key, is a no-op
	// while a request is outstanding: no queueing, no interruption.
	return m, nil
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Confirm):
		m.doDelete()
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Quit):
		m.mode = modeBrowsing
		m.confirmTarget = store.Entry{}
	}
	return m, nil
}

func (m *Model) handleVariableKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Submit) {
		return m, m.advanceVariableInput()
	}

	// Only unambiguous control keys are intercepted here; printable
	// keys, including ones bound elsewhere, belong to the input.
	switch msg.String() {
	case "esc":
		m.clearVariableModal()
		m.mode = modeBrowsing
		return m, nil
	case "shift+tab":
		m.focusVariableInput(m.varIndex - 1)
		return m, nil
	case "tab":
		m.focusVariableInput(m.varIndex + 1)
		return m, nil
	}

	var cmd tea.Cmd
	m.varInputs[m.varIndex], cmd = m.varInputs[m.varIndex].Update(msg)
	return m, cmd
}

// advanceVariableInput moves focus to the next variable, or submits
// the collected arguments once the last one is confirmed.
func (m *Model) advanceVariableInput() tea.Cmd {
	if m.varIndex < len(m.varInputs)-1 {
		m.focusVariableInput(m.varIndex + 1)
		return nil
	}

	args := make([]string, len(m.varInputs))
	for i := range m.varInputs {
		args[i] = m.varInputs[i].Value()
	}
	cmd, err := m.beginExecution(m.varTarget, args)
	if err != nil {
		// Stay in the modal with the error inline; input is kept.
		m.varError = err.Error()
		return nil
	}
	return cmd
}

func (m *Model) focusVariableInput(index int) {
	if index < 0 || index >= len(m.varInputs) {
		return
	}
	m.varInputs[m.varIndex].Blur()
	m.varIndex = index
	m.varInputs[m.varIndex].Focus()
}

func (m *Model) clearVariableModal() {
	m.varTarget = nil
	m.varInputs = nil
	m.varIndex = 0
	m.varError = ""
}

func (m *Model) moveCursor(delta int) {
	if len(m.entries) == 0 {
		return
	}
	next := m.cursor + delta
	if next < 0 {
		next = 0
	}
	if next >= len(m.entries) {
		next = len(m.entries) - 1
	}
	if next == m.cursor {
		return
	}
	m.cursor = next
	m.loadDetail()
}

func (m *Model) setTab(tab detailTab) {
	m.activeTab = tab
	if tab == tabResponse {
		m.refreshResponseViewport()
	}
}

func (m *Model) startDelete() {
	entry, ok := m.selectedEntry()
	if !ok {
		return
	}
	m.confirmTarget = entry
	m.mode = modeConfirmingDelete
}

func (m *Model) doDelete() {
	target := m.confirmTarget
	m.confirmTarget = store.Entry{}
	m.mode = modeBrowsing

	if err := m.cfg.Store.Delete(target.StorageID); err != nil {
		m.showMessage(err.Error())
		return
	}
	if m.lastResultID == target.StorageID {
		m.lastResult = nil
		m.lastResultID = ""
		m.responseView = report.View{}
	}
	m.reloadEntries("")
	m.setStatus(fmt.Sprintf("deleted %s", target.Name), statusInfo)
}

func (m *Model) copyResponse() {
	if m.lastResult == nil {
		m.setStatus("no response to copy", statusWarn)
		return
	}
	if err := writeClipboard(responseClipboardText(m.lastResult)); err != nil {
		m.setStatus(fmt.Sprintf("clipboard: %v", err), statusError)
		return
	}
	m.setStatus("response copied to clipboard", statusSuccess)
}

func (m *Model) showMessage(text string) {
	m.message = text
	m.mode = modeShowingMessage
}
