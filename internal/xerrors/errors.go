// Package xerrors provides the structured error taxonomy shared across
// sockguard: every error raised by the proxy core or its collaborators is
// tagged with one of a small set of kinds so that logging and startup
// handling can treat them uniformly.
package xerrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies an error into one of the categories the proxy
// distinguishes when deciding how to react (close a connection, abort
// startup, etc).
type Kind string

const (
	// IoError is any socket or file operation failure.
	IoError Kind = "io"
	// ProtocolError is malformed HTTP framing.
	ProtocolError Kind = "protocol"
	// UnsupportedFraming is a Transfer-Encoding value other than chunked.
	UnsupportedFraming Kind = "unsupported_framing"
	// FilterError is any failure reported by a response-content filter.
	FilterError Kind = "filter"
	// ConfigError is an invalid regex in a policy entry or invalid
	// upstream URI.
	ConfigError Kind = "config"
)

// Error is a structured, kind-tagged error with an operation label and an
// optional wrapped cause. Its Error() string and its Unwrap() chain are
// used by internal/logging to render the "primary message followed by
// each underlying cause on its own line" format the proxy's logging
// contract specifies.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Cause   error
}

// New creates a kind-tagged error with no wrapped cause.
func New(kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

// Wrap creates a kind-tagged error that wraps an existing cause,
// attaching a stack trace to the cause via github.com/pkg/errors when the
// cause does not already carry one.
func Wrap(kind Kind, op, message string, cause error) *Error {
	if cause == nil {
		return New(kind, op, message)
	}
	if _, ok := cause.(interface{ StackTrace() errors.StackTrace }); ok {
		return &Error{Kind: kind, Op: op, Message: message, Cause: cause}
	}
	return &Error{Kind: kind, Op: op, Message: message, Cause: errors.WithStack(cause)}
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Op, e.Message)
}

// Unwrap exposes the wrapped cause to errors.Is/errors.As and to the
// chain-printing logger.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var xe *Error
	if errors.As(err, &xe) {
		return xe.Kind == kind
	}
	return false
}

// Chain flattens an error's Unwrap() chain into a slice of messages, the
// primary error first, suitable for the one-cause-per-line logging
// contract in §6/§7. A wrapper whose message repeats the one before it
// (such as the stack-trace wrapper Wrap adds) does not get a line of its own.
func Chain(err error) []string {
	var lines []string
	for err != nil {
		msg := err.Error()
		if len(lines) == 0 || lines[len(lines)-1] != msg {
			lines = append(lines, msg)
		}
		err = errors.Unwrap(err)
	}
	return lines
}
