// Package caperr defines the error kinds surfaced by the capegen pipeline.
//
// Every stage returns an error value carrying one of these kinds; only the
// command layer decides to terminate the process.
package caperr

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure.
type Kind string

const (
	KindInputNotFound Kind = "input-not-found"
	KindInput         Kind = "input"
	KindLayout        Kind = "layout"
	KindSchema        Kind = "schema"
	KindEnvironment   Kind = "environment"
	KindIO            Kind = "io"
	KindTool          Kind = "tool"
)

// Error is the typed error returned by pipeline stages.
type Error struct {
	Kind  Kind
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
	}
	return e.Msg
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an Error of the given kind.
func New(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error of the given kind around cause.
func Wrap(kind Kind, cause error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Cause: cause}
}

// KindOf extracts the kind from err, or "" if err is not (and does not wrap)
// an *Error.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
