package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nattoujam/tcurl/internal/report"
)

const minListWidth = 24

func (m *Model) View() string {
	if !m.ready {
		return "loading…"
	}

	base := lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, m.renderListPane(), m.renderDetailPane()),
		m.renderStatusBar(),
	)

	if m.showHelp {
		return m.renderOverlay(m.renderHelp())
	}
	switch m.mode {
	case modeConfirmingDelete:
		return m.renderOverlay(m.renderConfirmModal())
	case modeCollectingVariables:
		return m.renderOverlay(m.renderVariableModal())
	case modeShowingMessage:
		return m.renderOverlay(m.renderMessageModal())
	}
	return base
}

func (m *Model) listWidth() int {
	width := m.width * 3 / 10
	return maxInt(width, minListWidth)
}

func (m *Model) paneHeight() int {
	return maxInt(m.height-1, 3)
}

func (m *Model) renderListPane() string {
	innerWidth := m.listWidth() - 2
	innerHeight := m.paneHeight() - 2

	var rows []string
	rows = append(rows, m.theme.Title.Render(truncate("Requests", innerWidth)))
	if len(m.entries) == 0 {
		rows = append(rows, m.theme.Muted.Render("no requests found"))
	}
	for i, entry := range m.entries {
		marker := "  "
		if i == m.cursor {
			marker = "▸ "
		}
		badge := m.theme.MethodBadge.
			Foreground(m.theme.MethodColors.For(entry.Method)).
			Render(fmt.Sprintf("%-4s", entry.Method))
		name := truncate(entry.Name, innerWidth-8)
		if i == m.cursor {
			name = m.theme.SelectedItem.Render(name)
		} else {
			name = m.theme.NormalItem.Render(name)
		}
		rows = append(rows, marker+badge+" "+name)
	}
	if len(m.problems) > 0 {
		rows = append(rows, m.theme.Warning.Render(
			truncate(problemSummary(m.problems), innerWidth)))
	}

	content := strings.Join(rows, "\n")
	return m.theme.ListBorder.
		Width(innerWidth).
		Height(innerHeight).
		Render(content)
}

func (m *Model) renderDetailPane() string {
	innerWidth := maxInt(m.width-m.listWidth()-2, 20)
	innerHeight := m.paneHeight() - 2

	var sections []string
	sections = append(sections, m.renderTabs())
	switch m.activeTab {
	case tabHeaders:
		sections = append(sections, m.renderHeadersTab(innerWidth))
	case tabBody:
		sections = append(sections, m.renderBodyTab())
	case tabResponse:
		sections = append(sections, m.renderResponseTab())
	}

	content := strings.Join(sections, "\n")
	return m.theme.DetailBorder.
		Width(innerWidth).
		Height(innerHeight).
		Render(content)
}

func (m *Model) renderTabs() string {
	labels := []string{"[1] Headers", "[2] Body", "[3] Response"}
	parts := make([]string, len(labels))
	for i, label := range labels {
		if detailTab(i) == m.activeTab {
			parts[i] = m.theme.TabActive.Render(label)
		} else {
			parts[i] = m.theme.TabInactive.Render(label)
		}
	}
	return strings.Join(parts, "  ")
}

func (m *Model) renderHeadersTab(width int) string {
	if m.detailErr != nil {
		return m.theme.Error.Render(m.detailErr.Error())
	}
	if m.detail == nil {
		return m.theme.Muted.Render("(no request selected)")
	}

	var rows []string
	rows = append(rows,
		m.theme.Title.Render(truncate(m.detail.DisplayName(), width)),
		fmt.Sprintf("%s %s", m.theme.MethodBadge.
			Foreground(m.theme.MethodColors.For(m.detail.Method)).
			Render(m.detail.Method), truncate(m.detail.URL, width-8)),
	)
	if m.detail.Description != "" {
		rows = append(rows, m.theme.Muted.Render(truncate(m.detail.Description, width)))
	}
	rows = append(rows, "")
	if len(m.detail.Headers) == 0 {
		rows = append(rows, m.theme.Muted.Render("(no headers)"))
	}
	for _, header := range m.detail.Headers {
		rows = append(rows, truncate(fmt.Sprintf("%s: %s", header.Name, header.Value), width))
	}
	if len(m.detail.Variables) > 0 {
		rows = append(rows, "", m.theme.Title.Render("Variables"))
		for i, variable := range m.detail.Variables {
			rows = append(rows, truncate(
				fmt.Sprintf("$%d %s (%s)", i+1, variable.Name, variable.Placeholder), width))
		}
	}
	return strings.Join(rows, "\n")
}

func (m *Model) renderBodyTab() string {
	if m.detail == nil {
		return m.theme.Muted.Render("(no request selected)")
	}
	if strings.TrimSpace(m.detail.Body) == "" {
		return m.theme.Muted.Render("(empty body)")
	}
	return m.detail.Body
}

func (m *Model) renderResponseTab() string {
	if m.sending {
		return m.spinner.View() + " waiting for response…"
	}
	if m.lastResult == nil {
		return m.theme.Muted.Render("(no response yet — press enter to execute)")
	}

	statusLine := m.styleForClass(m.responseView.ColorClass).Render(m.responseView.StatusLine)
	if m.lastResultID != "" {
		statusLine += m.theme.Muted.Render("  " + m.lastResultID)
	}
	return statusLine + "\n\n" + m.viewport.View()
}

func (m *Model) styleForClass(class report.ColorClass) lipgloss.Style {
	switch class {
	case report.ClassSuccess:
		return m.theme.Success
	case report.ClassWarning:
		return m.theme.Warning
	default:
		return m.theme.Error
	}
}

func (m *Model) renderStatusBar() string {
	width := maxInt(m.width, 1)
	if m.statusText == "" && !m.sending {
		return padRight(truncate(m.hintLine(), width), width)
	}

	status := m.statusText
	switch m.statusLevel {
	case statusError:
		status = m.theme.Error.Render(status)
	case statusWarn:
		status = m.theme.Warning.Render(status)
	case statusSuccess:
		status = m.theme.Success.Render(status)
	default:
		status = m.theme.StatusBar.Render(status)
	}
	if m.sending {
		status = m.spinner.View() + " " + status
	}
	return padRight(truncate(status, width), width)
}

func (m *Model) hintLine() string {
	pairs := [][2]string{
		{"enter", "run"},
		{"n", "new"},
		{"e", "edit"},
		{"d", "delete"},
		{"tab", "switch"},
		{"?", "help"},
		{"q", "quit"},
	}
	hints := make([]string, len(pairs))
	for i, pair := range pairs {
		hints[i] = m.theme.StatusBarKey.Render(pair[0]) +
			" " + m.theme.StatusBar.Render(pair[1])
	}
	return strings.Join(hints, m.theme.StatusBar.Render(" · "))
}

func (m *Model) renderOverlay(content string) string {
	modal := m.theme.Modal.Render(content)
	return lipgloss.Place(
		maxInt(m.width, lipgloss.Width(modal)),
		maxInt(m.height, lipgloss.Height(modal)),
		lipgloss.Center,
		lipgloss.Center,
		modal,
	)
}

func (m *Model) renderConfirmModal() string {
	return lipgloss.JoinVertical(
		lipgloss.Center,
		m.theme.ModalTitle.Render("Delete request set"),
		"",
		fmt.Sprintf("Delete %q? This cannot be undone.", m.confirmTarget.Name),
		"",
		m.theme.Muted.Render("y: delete    n/esc: keep"),
	)
}

func (m *Model) renderVariableModal() string {
	var rows []string
	title := "Variables"
	if m.varTarget != nil {
		title = fmt.Sprintf("Variables — %s", m.varTarget.DisplayName())
	}
	rows = append(rows, m.theme.ModalTitle.Render(title), "")
	for i := range m.varInputs {
		rows = append(rows, m.varInputs[i].View())
	}
	if m.varError != "" {
		rows = append(rows, "", m.theme.Error.Render(m.varError))
	}
	rows = append(rows, "", m.theme.Muted.Render("enter: next/submit    esc: cancel"))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) renderMessageModal() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.ModalTitle.Render("Error"),
		"",
		m.message,
		"",
		m.theme.Muted.Render("press any key to continue"),
	)
}

func (m *Model) renderHelp() string {
	m.help.ShowAll = true
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.ModalTitle.Render(fmt.Sprintf("tcurl %s", m.cfg.Version)),
		"",
		m.help.View(m.keys),
	)
}

func (m *Model) resizeViewport() {
	width := maxInt(m.width-m.listWidth()-6, 10)
	height := maxInt(m.paneHeight()-6, 3)
	m.viewport.Width = width
	m.viewport.Height = height
	m.refreshResponseViewport()
}

func (m *Model) refreshResponseViewport() {
	if m.lastResult == nil {
		m.viewport.SetContent("")
		return
	}
	body := m.responseView.PrettyBody
	if m.lastResult.OK() {
		body = highlightJSON(body)
	}
	m.viewport.SetContent(hardwrapLines(body, m.viewport.Width))
}
