// Package executor runs user-approved commands through a shell.
// Production code uses ShellExecutor, while tests use MockExecutor.
package executor

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"syscall"

	cerrors "github.com/zhubert/chatsh/internal/errors"
	"github.com/zhubert/chatsh/internal/logger"
)

// DefaultShell is used when no shell is configured.
const DefaultShell = "sh"

// Executor runs one command and reports whether it succeeded.
type Executor interface {
	// Execute runs command once. A non-zero exit yields an error carrying
	// *errors.ExitError; a process that cannot start yields a plain
	// KindExecution error.
	Execute(ctx context.Context, command string) error
}

// ShellExecutor runs commands as `<Shell> -c <command>` with the
// terminal's stdio so the user sees output live and can interact with it.
type ShellExecutor struct {
	Shell  string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewShellExecutor returns an executor for shell wired to the process's
// standard streams. An empty shell means DefaultShell.
func NewShellExecutor(shell string) *ShellExecutor {
	if shell == "" {
		shell = DefaultShell
	}
	return &ShellExecutor{
		Shell:  shell,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Execute runs command and waits for it to exit.
func (e *ShellExecutor) Execute(ctx context.Context, command string) error {
	if strings.TrimSpace(command) == "" {
		return cerrors.ExecutionEmpty()
	}

	log := logger.ComponentLogger("Executor")

	cmd := exec.CommandContext(ctx, e.Shell, "-c", command)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	log.Debug("Running command", "shell", e.Shell, "command", command)

	if err := cmd.Start(); err != nil {
		log.Warn("Failed to start shell", "shell", e.Shell, "error", err)
		return cerrors.ExecutionSpawnFailed(e.Shell, err)
	}

	err := cmd.Wait()
	if err == nil {
		log.Debug("Command succeeded", "command", command)
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
			sig := status.Signal().String()
			log.Info("Command killed", "command", command, "signal", sig)
			return cerrors.ExecutionSignaled(command, sig)
		}
		code := exitErr.ExitCode()
		log.Info("Command failed", "command", command, "exitCode", code)
		return cerrors.ExecutionFailed(command, code)
	}

	// Wait can fail without an exit status, e.g. on a stdio copy error.
	log.Warn("Command did not complete", "command", command, "error", err)
	return cerrors.E(cerrors.Op("executor.Execute"), cerrors.KindExecution, err)
}

// MockResult is one scripted outcome for MockExecutor.
type MockResult struct {
	Err error
}

// MockExecutor records commands and returns scripted results in order.
// Once the script is exhausted every call succeeds.
type MockExecutor struct {
	mu      sync.Mutex
	results []MockResult
	calls   []string
}

// NewMockExecutor creates a MockExecutor with the given scripted results.
func NewMockExecutor(results ...MockResult) *MockExecutor {
	return &MockExecutor{results: results}
}

// Execute records the command and returns the next scripted result.
func (m *MockExecutor) Execute(ctx context.Context, command string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, command)
	if len(m.results) == 0 {
		return nil
	}
	r := m.results[0]
	m.results = m.results[1:]
	return r.Err
}

// GetCalls returns all recorded commands.
func (m *MockExecutor) GetCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]string, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// Ensure implementations satisfy the interface.
var _ Executor = (*ShellExecutor)(nil)
var _ Executor = (*MockExecutor)(nil)
