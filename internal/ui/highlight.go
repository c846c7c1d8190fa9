package ui

import (
	"bytes"
	"encoding/json"

	"github.com/alecthomas/chroma/quick"
)

// highlightJSON syntax-highlights a JSON body for the response pane.
// Non-JSON bodies and highlighter failures pass through unchanged, so
// the pane never loses content to cosmetics.
func highlightJSON(body string) string {
	if !json.Valid([]byte(body)) {
		return body
	}
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, body, "json", "terminal256", "monokai"); err != nil {
		return body
	}
	return buf.String()
}
