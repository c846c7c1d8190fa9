// Package editor builds the external editor invocation used for
// creating and editing request sets. The TUI suspends itself while
// the editor owns the terminal.
package editor

import (
	"os/exec"
	"strings"

	"github.com/nattoujam/tcurl/internal/errdef"
)

// Command splits the configured editor string on whitespace, so
// "code --wait" works; shell quoting is not interpreted.
func Command(editorCmd, path string) (*exec.Cmd, error) {
	fields := strings.Fields(editorCmd)
	if len(fields) == 0 {
		return nil, errdef.New(errdef.CodeValidation, "editor command is empty")
	}
	args := append(fields[1:], path)
	return exec.Command(fields[0], args...), nil
}
