package errdef

import (
	"errors"
	"fmt"
)

// Code classifies a domain error so callers can branch on the failure
// category without string matching.
type Code string

const (
	CodeUnknown    Code = "unknown"
	CodeNotFound   Code = "not_found"
	CodeParse      Code = "parse"
	CodeValidation Code = "validation"
	CodeFilesystem Code = "filesystem"
	CodeArity      Code = "arity"
)

type Error struct {
	Code    Code
	Msg     string
	Wrapped error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Wrapped != nil {
		if e.Msg == "" {
			return e.Wrapped.Error()
		}
		return fmt.Sprintf("%s: %v", e.Msg, e.Wrapped)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Wrapped
}

func New(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

func Wrap(code Code, err error, format string, args ...interface{}) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...), Wrapped: err}
}

// CodeOf walks the error chain and returns the first classified code,
// or CodeUnknown when no *Error is present.
func CodeOf(err error) Code {
	var typed *Error
	if errors.As(err, &typed) && typed != nil {
		return typed.Code
	}
	return CodeUnknown
}

// Message returns a user-facing description: the full chain text of a
// classified error, or the plain Error() of anything else.
func Message(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func Is(err error, code Code) bool {
	return CodeOf(err) == code
}
