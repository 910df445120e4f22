package domain

import (
    "errors"
    "fmt"
)

// Kind is the small, closed set of failure classes every component maps to.
type Kind string

const (
    KindInvalidAddress   Kind = "invalid_address"
    KindInvalidPort      Kind = "invalid_port"
    KindProbeTimedOut    Kind = "probe_timed_out"
    KindProbeRefused     Kind = "probe_refused"
    KindResolutionFailed Kind = "resolution_failed"
    KindUpstream         Kind = "upstream_error"
    KindUnclassified     Kind = "unclassified_error"
)

// DiagnosticError is the only error shape that crosses the façade boundary.
type DiagnosticError struct {
    Kind    Kind
    Message string
    Err     error
}

func (e *DiagnosticError) Error() string {
    if e.Message == "" {
        return string(e.Kind)
    }
    return string(e.Kind) + ": " + e.Message
}

func (e *DiagnosticError) Unwrap() error { return e.Err }

// Is matches any DiagnosticError of the same kind, so callers can write
// errors.Is(err, &DiagnosticError{Kind: KindProbeTimedOut}).
func (e *DiagnosticError) Is(target error) bool {
    t, ok := target.(*DiagnosticError)
    if !ok { return false }
    return t.Kind == e.Kind
}

func NewError(kind Kind, msg string) *DiagnosticError {
    return &DiagnosticError{Kind: kind, Message: msg}
}

func Errorf(kind Kind, format string, args ...any) *DiagnosticError {
    err := fmt.Errorf(format, args...)
    return &DiagnosticError{Kind: kind, Message: err.Error(), Err: errors.Unwrap(err)}
}

// Wrap tags err with kind, keeping its text as the message.
func Wrap(kind Kind, err error) *DiagnosticError {
    if err == nil { return nil }
    return &DiagnosticError{Kind: kind, Message: err.Error(), Err: err}
}

// AsDiagnostic returns err as a DiagnosticError, degrading anything
// unrecognised to KindUnclassified with the original message preserved.
func AsDiagnostic(err error) *DiagnosticError {
    if err == nil { return nil }
    var de *DiagnosticError
    if errors.As(err, &de) {
        return de
    }
    return Wrap(KindUnclassified, err)
}

// KindOf reports the taxonomy kind of err, or "" for nil.
func KindOf(err error) Kind {
    if err == nil { return "" }
    return AsDiagnostic(err).Kind
}
