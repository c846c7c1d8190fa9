package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// truncate is safe on styled content; escape sequences carry no width
// and are never split.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}

// hardwrapLines wraps styled content to the pane width without
// breaking ANSI sequences.
func hardwrapLines(content string, width int) string {
	if width <= 0 {
		return content
	}
	return ansi.Hardwrap(content, width, true)
}

func padRight(s string, width int) string {
	visible := runewidth.StringWidth(ansi.Strip(s))
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
