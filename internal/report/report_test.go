package report

import (
	"strings"
	"testing"
	"time"

	"github.com/nattoujam/tcurl/internal/httpclient"
)

func TestRenderSuccessJSON(t *testing.T) {
	result := &httpclient.Result{
		Status:     "201 Created",
		StatusCode: 201,
		Body:       []byte(`{"id":42,"name":"Ann"}`),
		Elapsed:    120 * time.Millisecond,
	}
	view := Render(result)
	if view.ColorClass != ClassSuccess {
		t.Fatalf("expected success class, got %s", view.ColorClass)
	}
	if view.StatusLine != "201 Created (120ms)" {
		t.Fatalf("unexpected status line %q", view.StatusLine)
	}
	want := "{\n  \"id\": 42,\n  \"name\": \"Ann\"\n}"
	if view.PrettyBody != want {
		t.Fatalf("expected 2-space indented body, got %q", view.PrettyBody)
	}
}

func TestRenderNonJSONBodyPassesThrough(t *testing.T) {
	result := &httpclient.Result{
		Status:     "200 OK",
		StatusCode: 200,
		Body:       []byte("<html>hello</html>"),
		Elapsed:    5 * time.Millisecond,
	}
	view := Render(result)
	if view.PrettyBody != "<html>hello</html>" {
		t.Fatalf("non-JSON body must pass through unchanged, got %q", view.PrettyBody)
	}
}

func TestRenderColorClasses(t *testing.T) {
	cases := []struct {
		code int
		want ColorClass
	}{
		{200, ClassSuccess},
		{204, ClassSuccess},
		{301, ClassWarning},
		{404, ClassWarning},
		{500, ClassError},
		{503, ClassError},
	}
	for _, tc := range cases {
		view := Render(&httpclient.Result{Status: "x", StatusCode: tc.code})
		if view.ColorClass != tc.want {
			t.Fatalf("status %d: expected %s, got %s", tc.code, tc.want, view.ColorClass)
		}
	}
}

func TestRenderFailure(t *testing.T) {
	result := &httpclient.Result{
		Elapsed: 10 * time.Second,
		Failure: &httpclient.Failure{
			Kind:    httpclient.FailureTimeout,
			Message: "context deadline exceeded",
		},
	}
	view := Render(result)
	if view.ColorClass != ClassError {
		t.Fatalf("failures must be error class, got %s", view.ColorClass)
	}
	if !strings.HasPrefix(view.StatusLine, "ERROR") {
		t.Fatalf("unexpected status line %q", view.StatusLine)
	}
	if !strings.Contains(view.PrettyBody, "Timeout") ||
		!strings.Contains(view.PrettyBody, "context deadline exceeded") {
		t.Fatalf("failure body must show kind and message, got %q", view.PrettyBody)
	}
}

func TestRenderElapsedSeconds(t *testing.T) {
	view := Render(&httpclient.Result{Status: "200 OK", StatusCode: 200, Elapsed: 1500 * time.Millisecond})
	if !strings.Contains(view.StatusLine, "1.50s") {
		t.Fatalf("unexpected status line %q", view.StatusLine)
	}
}
