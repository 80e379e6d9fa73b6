// Package procrun runs shell command lines synchronously, either streaming
// the child's combined output live or capturing it into a string.
package procrun

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	nierrors "graalvm-tools/go/pkg/errors"
	"graalvm-tools/go/pkg/logbowl"
	"graalvm-tools/go/pkg/platform"
)

// Runner executes shell command lines. Both modes block until the child
// exits and fail on a non-zero exit status.
type Runner interface {
	// Stream copies the child's combined stdout/stderr to the runner's
	// output as it arrives.
	Stream(ctx context.Context, dir, command string) error
	// Capture buffers the child's combined stdout/stderr and returns it.
	Capture(ctx context.Context, dir, command string) (string, error)
}

// ExitError reports a child that exited with a non-zero status.
type ExitError struct {
	Command string
	Code    int
	Output  string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("error exec %s: exit code %d", e.Command, e.Code)
}

func (e *ExitError) Unwrap() error {
	return nierrors.ErrProcessFailed
}

// ShellRunner is the os/exec backed Runner.
type ShellRunner struct {
	Shell Shell
	// Stdout receives streamed output. Defaults to os.Stdout.
	Stdout io.Writer
	// Timeout bounds every child process when positive.
	Timeout time.Duration
	Log     logbowl.Logger
}

// New returns a ShellRunner using the shell dialect of c.
func New(c platform.Classifier, log logbowl.Logger) *ShellRunner {
	return &ShellRunner{Shell: ShellFor(c.OS), Log: log}
}

func (r *ShellRunner) Stream(ctx context.Context, dir, command string) error {
	out := r.Stdout
	if out == nil {
		out = os.Stdout
	}
	return r.run(ctx, dir, command, out)
}

func (r *ShellRunner) Capture(ctx context.Context, dir, command string) (string, error) {
	var buf bytes.Buffer
	if err := r.run(ctx, dir, command, &buf); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			exitErr.Output = buf.String()
		}
		return buf.String(), err
	}
	return buf.String(), nil
}

func (r *ShellRunner) run(ctx context.Context, dir, command string, out io.Writer) error {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}
	if dir == "" {
		dir = "."
	}

	argv := r.Shell.Wrap(command)
	// #nosec G204 -- the command line is assembled from build configuration.
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	setCmdLine(cmd, argv)
	cmd.Dir = dir
	cmd.Stdout = out
	cmd.Stderr = out
	cmd.WaitDelay = 5 * time.Second

	r.Log.Debug("process", "execute", "progress", "Spawning child process", "shell", r.Shell.String(), "dir", dir, "command", command)
	err := cmd.Run()
	if err == nil {
		r.Log.Debug("process", "finish", "success", "Child process exited", "command", command)
		return nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		r.Log.Error("process", "execute", "timeout", "Child process cancelled", "command", command, "error", ctxErr)
		return fmt.Errorf("error exec %s: %w", command, ctxErr)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		r.Log.Error("process", "execute", "failure", "Child process failed", "command", command, "code", exitErr.ExitCode())
		return &ExitError{Command: command, Code: exitErr.ExitCode()}
	}
	return fmt.Errorf("error exec %s: %w", command, err)
}
