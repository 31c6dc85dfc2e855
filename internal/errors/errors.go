// Package errors provides structured error types for chatsh.
// These errors provide context about what operation failed and where.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindIO
	KindConfig
	KindConversion
	KindExecution
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "I/O error"
	case KindConfig:
		return "configuration error"
	case KindConversion:
		return "conversion error"
	case KindExecution:
		return "execution error"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for chatsh.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...interface{}) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
// The outermost *Error in the chain decides.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// ExitError reports a shell command that ran but exited non-zero or was
// killed by a signal. Signal is empty for a normal exit.
type ExitError struct {
	Command string
	Code    int
	Signal  string
}

func (e *ExitError) Error() string {
	if e.Signal != "" {
		return fmt.Sprintf("command terminated by signal: %s", e.Signal)
	}
	return fmt.Sprintf("command failed with exit code %d", e.Code)
}

// ExitCode returns the exit status carried by err, if any. A command killed
// by a signal has no exit status.
func ExitCode(err error) (int, bool) {
	var e *ExitError
	if errors.As(err, &e) && e.Signal == "" {
		return e.Code, true
	}
	return 0, false
}

// ExitSignal returns the signal that killed the command, if any.
func ExitSignal(err error) (string, bool) {
	var e *ExitError
	if errors.As(err, &e) && e.Signal != "" {
		return e.Signal, true
	}
	return "", false
}

// Config errors
func ConfigMissingKey(name string) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("environment variable %s is not set", name))
}

func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindConfig, reason)
}

// Conversion errors
func ConversionTransport(model string, err error) error {
	return E(Op("converter.Convert"), KindConversion, fmt.Sprintf("request to %s failed", model), err)
}

func ConversionStatus(model string, status int, body string) error {
	return E(Op("converter.Convert"), KindConversion, fmt.Sprintf("%s returned HTTP %d: %s", model, status, body))
}

func ConversionMalformed(model, content string, err error) error {
	return E(Op("converter.Convert"), KindConversion, fmt.Sprintf("malformed reply from %s: %q", model, content), err)
}

func ConversionUndecodable(model string, err error) error {
	return E(Op("converter.Convert"), KindConversion, fmt.Sprintf("malformed reply from %s", model), err)
}

func ConversionCandidates(model string, got int) error {
	return E(Op("converter.Convert"), KindConversion, fmt.Sprintf("expected one choice from %s, got %d", model, got))
}

func ConversionInvalidDetail(err error) error {
	return E(Op("converter.Validate"), KindConversion, "backend returned an unusable detail", err)
}

// Execution errors
func ExecutionFailed(command string, code int) error {
	return E(Op("executor.Execute"), KindExecution, &ExitError{Command: command, Code: code})
}

func ExecutionSignaled(command, signal string) error {
	return E(Op("executor.Execute"), KindExecution, &ExitError{Command: command, Signal: signal})
}

func ExecutionSpawnFailed(shell string, err error) error {
	return E(Op("executor.Execute"), KindExecution, fmt.Sprintf("failed to start %s", shell), err)
}

func ExecutionEmpty() error {
	return E(Op("executor.Execute"), KindExecution, "command is empty")
}
