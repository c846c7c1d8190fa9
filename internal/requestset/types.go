// Package requestset defines the persisted request definition and its
// YAML file codec.
package requestset

import (
	"fmt"
	"strings"

	"github.com/nattoujam/tcurl/internal/errdef"
	"github.com/nattoujam/tcurl/internal/placeholder"
)

const (
	MethodGet  = "GET"
	MethodPost = "POST"
)

// Variable describes one positional placeholder for user prompting.
// Placeholder is example text, not a default value.
type Variable struct {
	Name        string `yaml:"name"`
	Placeholder string `yaml:"placeholder"`
}

type Header struct {
	Name  string
	Value string
}

// Headers preserves the file's insertion order, unlike a plain map.
type Headers []Header

func (h Headers) Get(name string) (string, bool) {
	for _, header := range h {
		if strings.EqualFold(header.Name, name) {
			return header.Value, true
		}
	}
	return "", false
}

// RequestSet is a named, persisted request definition. StorageID is
// derived from the backing file name and never serialized.
type RequestSet struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Method      string     `yaml:"method"`
	URL         string     `yaml:"url"`
	Headers     Headers    `yaml:"headers,omitempty"`
	Body        string     `yaml:"body,omitempty"`
	Variables   []Variable `yaml:"variables,omitempty"`

	StorageID string `yaml:"-"`
}

func (r *RequestSet) DisplayName() string {
	if strings.TrimSpace(r.Name) != "" {
		return r.Name
	}
	return r.StorageID
}

// Validate checks the structural invariants: a supported method, a
// non-empty URL, and body placeholders forming exactly {1..len(variables)}.
func (r *RequestSet) Validate() error {
	switch r.Method {
	case MethodGet, MethodPost:
	default:
		return errdef.New(errdef.CodeValidation, "unsupported method %q", r.Method)
	}
	if strings.TrimSpace(r.URL) == "" {
		return errdef.New(errdef.CodeValidation, "url must not be empty")
	}

	indices := placeholder.Extract(r.Body)
	want := len(r.Variables)
	if len(indices) != want {
		return placeholderMismatch(indices, want)
	}
	for i, idx := range indices {
		if idx != i+1 {
			return placeholderMismatch(indices, want)
		}
	}
	return nil
}

func placeholderMismatch(indices []int, want int) error {
	found := make([]string, len(indices))
	for i, idx := range indices {
		found[i] = fmt.Sprintf("$%d", idx)
	}
	list := strings.Join(found, ", ")
	if list == "" {
		list = "none"
	}
	return errdef.New(
		errdef.CodeValidation,
		"body placeholders (%s) must be exactly $1..$%d to match %d variable(s)",
		list,
		want,
		want,
	)
}
