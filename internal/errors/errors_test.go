package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindUnknown, "unknown error"},
		{KindIO, "I/O error"},
		{KindConfig, "configuration error"},
		{KindConversion, "conversion error"},
		{KindExecution, "execution error"},
		{Kind(999), "unknown error"}, // Unknown kind
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("Kind.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "with op and context",
			err:      &Error{Op: "test.Op", Context: "some context", Err: errors.New("underlying error")},
			expected: "test.Op: some context: underlying error",
		},
		{
			name:     "with op only",
			err:      &Error{Op: "test.Op", Err: errors.New("underlying error")},
			expected: "test.Op: underlying error",
		},
		{
			name:     "without op",
			err:      &Error{Err: errors.New("underlying error")},
			expected: "underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error.Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := &Error{Op: "test.Op", Err: underlying}

	if got := err.Unwrap(); got != underlying {
		t.Errorf("Error.Unwrap() = %v, want %v", got, underlying)
	}
}

func TestE(t *testing.T) {
	tests := []struct {
		name       string
		args       []interface{}
		wantOp     Op
		wantKind   Kind
		wantHasErr bool
	}{
		{
			name:       "with all args",
			args:       []interface{}{Op("test.Op"), KindConversion, "context", errors.New("error")},
			wantOp:     "test.Op",
			wantKind:   KindConversion,
			wantHasErr: true,
		},
		{
			name:       "with op and kind",
			args:       []interface{}{Op("test.Op"), KindConfig, "just a message"},
			wantOp:     "test.Op",
			wantKind:   KindConfig,
			wantHasErr: true, // Context becomes the error when no error is provided
		},
		{
			name:       "with just error",
			args:       []interface{}{errors.New("simple error")},
			wantOp:     "",
			wantKind:   KindUnknown,
			wantHasErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := E(tt.args...)
			e, ok := err.(*Error)
			if !ok {
				t.Fatalf("E() returned %T, want *Error", err)
			}

			if e.Op != tt.wantOp {
				t.Errorf("E().Op = %q, want %q", e.Op, tt.wantOp)
			}
			if e.Kind != tt.wantKind {
				t.Errorf("E().Kind = %v, want %v", e.Kind, tt.wantKind)
			}
			if (e.Err != nil) != tt.wantHasErr {
				t.Errorf("E().Err nil = %v, want nil = %v", e.Err == nil, !tt.wantHasErr)
			}
		})
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		kind     Kind
		expected bool
	}{
		{
			name:     "matching kind",
			err:      E(Op("test"), KindConversion, "bad reply"),
			kind:     KindConversion,
			expected: true,
		},
		{
			name:     "non-matching kind",
			err:      E(Op("test"), KindConversion, "bad reply"),
			kind:     KindExecution,
			expected: false,
		},
		{
			name:     "non-chatsh error",
			err:      errors.New("regular error"),
			kind:     KindConversion,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			kind:     KindConversion,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      fmt.Errorf("wrapped: %w", E(Op("test"), KindExecution, "exit 1")),
			kind:     KindExecution,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.kind); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetKind(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Kind
	}{
		{
			name:     "chatsh error",
			err:      E(Op("test"), KindConversion, "bad reply"),
			expected: KindConversion,
		},
		{
			name:     "regular error",
			err:      errors.New("regular error"),
			expected: KindUnknown,
		},
		{
			name:     "nil error",
			err:      nil,
			expected: KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetKind(tt.err); got != tt.expected {
				t.Errorf("GetKind() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestConfigMissingKey(t *testing.T) {
	err := ConfigMissingKey("OPENAI_KEY")

	if !Is(err, KindConfig) {
		t.Error("ConfigMissingKey should return KindConfig error")
	}
	if !strings.Contains(err.Error(), "OPENAI_KEY") {
		t.Errorf("error %q should name the variable", err.Error())
	}
}

func TestConfigLoadFailed(t *testing.T) {
	underlying := errors.New("unexpected end of JSON input")
	err := ConfigLoadFailed("/path/to/config", underlying)

	if !Is(err, KindConfig) {
		t.Error("ConfigLoadFailed should return KindConfig error")
	}
	if !errors.Is(err, underlying) {
		t.Error("ConfigLoadFailed should wrap the underlying error")
	}
}

func TestConfigInvalid(t *testing.T) {
	err := ConfigInvalid("unknown model")

	if !Is(err, KindConfig) {
		t.Error("ConfigInvalid should return KindConfig error")
	}
}

func TestConversionErrors(t *testing.T) {
	underlying := errors.New("connection refused")
	tests := []struct {
		name string
		err  error
	}{
		{"transport", ConversionTransport("gpt-4-32k", underlying)},
		{"status", ConversionStatus("gpt-4-32k", 500, "boom")},
		{"malformed", ConversionMalformed("gpt-4-32k", "not json", underlying)},
		{"undecodable", ConversionUndecodable("gpt-4-32k", underlying)},
		{"candidates", ConversionCandidates("gpt-4-32k", 0)},
		{"invalid detail", ConversionInvalidDetail(underlying)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !Is(tt.err, KindConversion) {
				t.Errorf("%v should be KindConversion", tt.err)
			}
			if _, ok := ExitCode(tt.err); ok {
				t.Error("conversion errors should not carry an exit code")
			}
		})
	}
}

func TestConversionCandidates_Message(t *testing.T) {
	err := ConversionCandidates("gpt-3.5-turbo", 2)
	want := "converter.Convert: expected one choice from gpt-3.5-turbo, got 2"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestExecutionFailed(t *testing.T) {
	err := ExecutionFailed("false", 3)

	if !Is(err, KindExecution) {
		t.Error("ExecutionFailed should return KindExecution error")
	}
	code, ok := ExitCode(err)
	if !ok {
		t.Fatal("ExitCode should find the exit status")
	}
	if code != 3 {
		t.Errorf("ExitCode = %d, want 3", code)
	}
	if got := err.Error(); got != "executor.Execute: command failed with exit code 3" {
		t.Errorf("Error() = %q", got)
	}
}

func TestExecutionSignaled(t *testing.T) {
	err := ExecutionSignaled("sleep 10", "killed")

	if !Is(err, KindExecution) {
		t.Error("ExecutionSignaled should return KindExecution error")
	}
	if _, ok := ExitCode(err); ok {
		t.Error("a signaled command has no exit code")
	}
	sig, ok := ExitSignal(err)
	if !ok || sig != "killed" {
		t.Errorf("ExitSignal() = %q, %v, want killed, true", sig, ok)
	}
	if got := err.Error(); got != "executor.Execute: command terminated by signal: killed" {
		t.Errorf("Error() = %q", got)
	}
	if _, ok := ExitSignal(ExecutionFailed("false", 1)); ok {
		t.Error("a normal exit has no signal")
	}
}

func TestExecutionSpawnFailed(t *testing.T) {
	underlying := errors.New("executable file not found in $PATH")
	err := ExecutionSpawnFailed("zsh", underlying)

	if !Is(err, KindExecution) {
		t.Error("ExecutionSpawnFailed should return KindExecution error")
	}
	if _, ok := ExitCode(err); ok {
		t.Error("spawn failures have no exit code")
	}
	if !errors.Is(err, underlying) {
		t.Error("ExecutionSpawnFailed should wrap the underlying error")
	}
}

func TestExitCode_Wrapped(t *testing.T) {
	err := fmt.Errorf("session: %w", ExecutionFailed("exit 7", 7))
	code, ok := ExitCode(err)
	if !ok || code != 7 {
		t.Errorf("ExitCode() = %d, %v, want 7, true", code, ok)
	}
}

func TestErrorChaining(t *testing.T) {
	// Test that errors can be properly chained and unwrapped
	innerErr := errors.New("original error")
	middleErr := E(Op("middle.Op"), KindIO, innerErr)
	outerErr := E(Op("outer.Op"), KindConfig, middleErr)

	// Should be able to unwrap to find inner error
	if !errors.Is(outerErr, innerErr) {
		t.Error("Should be able to find inner error through chain")
	}

	// Kind should be from the outer error
	if GetKind(outerErr) != KindConfig {
		t.Error("GetKind should return outer error's kind")
	}
}
