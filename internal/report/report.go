// Package report turns an execution result into display-ready
// segments. Pure functions, no I/O.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nattoujam/tcurl/internal/httpclient"
)

type ColorClass string

const (
	ClassSuccess ColorClass = "success"
	ClassWarning ColorClass = "warning"
	ClassError   ColorClass = "error"
)

type View struct {
	StatusLine string
	ColorClass ColorClass
	PrettyBody string
}

func Render(result *httpclient.Result) View {
	if result == nil {
		return View{StatusLine: "ERROR", ColorClass: ClassError, PrettyBody: "no result"}
	}
	if !result.OK() {
		body := result.Failure.Kind.Label()
		if result.Failure.Message != "" {
			body = fmt.Sprintf("%s: %s", body, result.Failure.Message)
		}
		return View{
			StatusLine: fmt.Sprintf("ERROR (%s)", formatElapsed(result.Elapsed)),
			ColorClass: ClassError,
			PrettyBody: body,
		}
	}

	return View{
		StatusLine: fmt.Sprintf("%s (%s)", result.Status, formatElapsed(result.Elapsed)),
		ColorClass: classify(result.StatusCode),
		PrettyBody: prettify(result.Body),
	}
}

func classify(statusCode int) ColorClass {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return ClassSuccess
	case statusCode >= 300 && statusCode < 500:
		return ClassWarning
	default:
		return ClassError
	}
}

// prettify indents the body when it parses as JSON and passes it
// through unchanged otherwise.
func prettify(body []byte) string {
	if !json.Valid(body) {
		return string(body)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		return string(body)
	}
	return buf.String()
}

func formatElapsed(elapsed time.Duration) string {
	if elapsed < time.Second {
		return fmt.Sprintf("%dms", elapsed.Milliseconds())
	}
	return fmt.Sprintf("%.2fs", elapsed.Seconds())
}
