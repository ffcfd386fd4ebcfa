package util

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
)

// CommandResult holds what a finished process produced.
type CommandResult struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int // negative signal number when killed by a signal
}

// CommandRunner executes external commands.
type CommandRunner interface {
	// Run executes a command to completion and captures stdout and stderr
	// separately. A non-zero exit status is reported in the result, not as
	// an error; the error is only set when the process could not be run.
	Run(ctx context.Context, name string, args ...string) (*CommandResult, error)
}

// ExecCommandRunner implements CommandRunner with os/exec.
type ExecCommandRunner struct {
	// Optional live copies of the streams, e.g. the terminal in verbose mode.
	stdout io.Writer
	stderr io.Writer
}

// NewCommandRunner creates an ExecCommandRunner that only captures output.
func NewCommandRunner() *ExecCommandRunner {
	return &ExecCommandRunner{}
}

// WithTee returns a runner that also copies the streams to stdout and stderr
// while the process runs. Either writer may be nil.
func (r *ExecCommandRunner) WithTee(stdout, stderr io.Writer) *ExecCommandRunner {
	return &ExecCommandRunner{stdout: stdout, stderr: stderr}
}

func (r *ExecCommandRunner) Run(ctx context.Context, name string, args ...string) (*CommandResult, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = teeWriter(&stdout, r.stdout)
	cmd.Stderr = teeWriter(&stderr, r.stderr)

	// Run waits for the process and closes its pipes on every path.
	err := cmd.Run()
	result := &CommandResult{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return result, err
		}
	}
	result.ExitCode = exitCode(cmd.ProcessState)
	return result, nil
}

func teeWriter(capture *bytes.Buffer, live io.Writer) io.Writer {
	if live == nil {
		return capture
	}
	return io.MultiWriter(capture, live)
}
