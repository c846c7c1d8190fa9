// Package theme holds the lipgloss styles shared by the UI.
package theme

import "github.com/charmbracelet/lipgloss"

type MethodColors struct {
	GET     lipgloss.Color
	POST    lipgloss.Color
	Default lipgloss.Color
}

func (m MethodColors) For(method string) lipgloss.Color {
	switch method {
	case "GET":
		return m.GET
	case "POST":
		return m.POST
	default:
		return m.Default
	}
}

type Theme struct {
	ListBorder       lipgloss.Style
	DetailBorder     lipgloss.Style
	Title            lipgloss.Style
	TabActive        lipgloss.Style
	TabInactive      lipgloss.Style
	StatusBar        lipgloss.Style
	StatusBarKey     lipgloss.Style
	Success          lipgloss.Style
	Warning          lipgloss.Style
	Error            lipgloss.Style
	Muted            lipgloss.Style
	Modal            lipgloss.Style
	ModalTitle       lipgloss.Style
	InputPrompt      lipgloss.Style
	InputPlaceholder lipgloss.Style
	SelectedItem     lipgloss.Style
	NormalItem       lipgloss.Style
	MethodBadge      lipgloss.Style
	MethodColors     MethodColors
}

type palette struct {
	border     lipgloss.Color
	accent     lipgloss.Color
	text       lipgloss.Color
	muted      lipgloss.Color
	success    lipgloss.Color
	warning    lipgloss.Color
	errorColor lipgloss.Color
}

var palettes = map[string]palette{
	"default": {
		border:     lipgloss.Color("240"),
		accent:     lipgloss.Color("62"),
		text:       lipgloss.Color("252"),
		muted:      lipgloss.Color("243"),
		success:    lipgloss.Color("42"),
		warning:    lipgloss.Color("214"),
		errorColor: lipgloss.Color("196"),
	},
	"mono": {
		border:     lipgloss.Color("245"),
		accent:     lipgloss.Color("255"),
		text:       lipgloss.Color("252"),
		muted:      lipgloss.Color("243"),
		success:    lipgloss.Color("255"),
		warning:    lipgloss.Color("250"),
		errorColor: lipgloss.Color("255"),
	},
}

// New builds the theme for the configured name, falling back to the
// default palette for unknown names.
func New(name string) *Theme {
	p, ok := palettes[name]
	if !ok {
		p = palettes["default"]
	}

	return &Theme{
		ListBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border),
		DetailBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border),
		Title:       lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		TabActive:   lipgloss.NewStyle().Bold(true).Foreground(p.accent).Underline(true),
		TabInactive: lipgloss.NewStyle().Foreground(p.muted),
		StatusBar:   lipgloss.NewStyle().Foreground(p.muted),
		StatusBarKey: lipgloss.NewStyle().
			Foreground(p.accent).
			Bold(true),
		Success: lipgloss.NewStyle().Foreground(p.success).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(p.warning).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(p.errorColor).Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(p.muted),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.accent).
			Padding(1, 2),
		ModalTitle:       lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		InputPrompt:      lipgloss.NewStyle().Foreground(p.text),
		InputPlaceholder: lipgloss.NewStyle().Foreground(p.muted),
		SelectedItem:     lipgloss.NewStyle().Foreground(p.accent).Bold(true),
		NormalItem:       lipgloss.NewStyle().Foreground(p.text),
		MethodBadge:      lipgloss.NewStyle().Bold(true),
		MethodColors: MethodColors{
			GET:     lipgloss.Color("39"),
			POST:    lipgloss.Color("208"),
			Default: p.muted,
		},
	}
}

func Names() []string {
	return []string{"default", "mono"}
}
