package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	m "foundry.dev/pkg/foundry/internal/model"
)

// ErrNoCompilerCommand is returned when no compiler command is configured.
var ErrNoCompilerCommand = errors.New("no compiler command configured")

// CompileError reports a compiler run that exited with a non-zero status.
type CompileError struct {
	Path     m.Path
	ExitCode int
	Stderr   string
}

func (e *CompileError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return fmt.Sprintf("compiling %s: compiler exited with status %d", e.Path, e.ExitCode)
	}

	return fmt.Sprintf("compiling %s: compiler exited with status %d: %s", e.Path, e.ExitCode, msg)
}

// CompilerAdapter turns a source file into the program JSON the engine loads.
type CompilerAdapter interface {
	Compile(ctx context.Context, path m.Path) ([]byte, error)
}

// LocalCompilerAdapter runs the compiler as a subprocess: the source path is
// appended to the command, the program is read from stdout and diagnostics
// from stderr.
type LocalCompilerAdapter struct {
	command []string
	timeout time.Duration
}

// NewLocalCompilerAdapter constructs a LocalCompilerAdapter with default 30s timeout.
func NewLocalCompilerAdapter(command ...string) *LocalCompilerAdapter {
	return &LocalCompilerAdapter{
		command: command,
		timeout: 30 * time.Second,
	}
}

// WithTimeout returns a copy of the adapter using timeout per compilation.
func (a *LocalCompilerAdapter) WithTimeout(timeout time.Duration) *LocalCompilerAdapter {
	out := *a
	out.timeout = timeout

	return &out
}

// Compile runs the compiler on path.
func (a *LocalCompilerAdapter) Compile(ctx context.Context, path m.Path) ([]byte, error) {
	if len(a.command) == 0 {
		return nil, ErrNoCompilerCommand
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	args := append(append([]string{}, a.command[1:]...), string(path))

	// #nosec G204 - the compiler command comes from the user's configuration
	cmd := exec.CommandContext(ctx, a.command[0], args...)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	slog.Debug("Running compiler", "command", a.command, "path", path)

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &CompileError{Path: path, ExitCode: exitErr.ExitCode(), Stderr: stderr.String()}
		}

		slog.Error("Failed to run compiler", "command", a.command, "path", path, "error", err)

		return nil, fmt.Errorf("run compiler %q: %w", a.command[0], err)
	}

	return stdout.Bytes(), nil
}
