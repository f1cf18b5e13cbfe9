package pipeline

import (
	"errors"
	"fmt"
)

// Kind classifies how a step failure affects the run.
type Kind int

const (
	// KindIO covers directory creation, copy, read, write, and removal failures. Fatal.
	KindIO Kind = iota
	// KindProcess covers clone and install subprocess failures. Fatal.
	KindProcess
	// KindUserAbort is a declined overwrite or cancelled prompt. Exits cleanly.
	KindUserAbort
	// KindAdvisory is reported and then ignored.
	KindAdvisory
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindProcess:
		return "process"
	case KindUserAbort:
		return "aborted"
	case KindAdvisory:
		return "advisory"
	default:
		return "unknown"
	}
}

// ErrCancelled is returned by prompts when the user backs out with ctrl+c or esc.
var ErrCancelled = errors.New("cancelled by user")

// StepError is the error type every step returns.
type StepError struct {
	Step StepID
	Kind Kind
	Msg  string
	// Hint is an optional remediation, usually a link.
	Hint string
	Err  error
}

func (e *StepError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Step, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %v", e.Step, e.Msg, e.Err)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *StepError) Unwrap() error {
	return e.Err
}

// Fail builds a fatal StepError of the given kind.
func Fail(step StepID, kind Kind, msg string, err error) error {
	return &StepError{Step: step, Kind: kind, Msg: msg, Err: err}
}

// Advise builds an advisory StepError carrying a remediation hint.
func Advise(step StepID, msg, hint string, err error) error {
	return &StepError{Step: step, Kind: KindAdvisory, Msg: msg, Hint: hint, Err: err}
}

// Abort builds a user-abort StepError.
func Abort(step StepID, msg string) error {
	return &StepError{Step: step, Kind: KindUserAbort, Msg: msg}
}

// AsStepError returns (*StepError, true) if err is or wraps a StepError.
func AsStepError(err error) (*StepError, bool) {
	var se *StepError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// KindOf returns the kind of err. Errors that are not StepErrors count as KindIO.
func KindOf(err error) Kind {
	if se, ok := AsStepError(err); ok {
		return se.Kind
	}
	if errors.Is(err, ErrCancelled) {
		return KindUserAbort
	}
	return KindIO
}

// IsFatal reports whether err must stop the run with a non-zero exit.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	switch KindOf(err) {
	case KindUserAbort, KindAdvisory:
		return false
	default:
		return true
	}
}

// ExitCode returns 0 for success, declined overwrites, and advisories; 1 otherwise.
func ExitCode(err error) int {
	if IsFatal(err) {
		return 1
	}
	return 0
}
