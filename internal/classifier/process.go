package classifier

import (
	"context"
	"errors"
	"io"
	"os/exec"
)

// ProcessRunner abstracts subprocess execution so tests can substitute a mock.
type ProcessRunner interface {
	// Run executes the binary at path with the given arguments, feeding stdin
	// to the process. It returns captured stdout and stderr.
	Run(ctx context.Context, path string, args []string, stdin io.Reader) (stdout, stderr []byte, err error)
}

// RealProcessRunner executes plugins as real subprocesses.
type RealProcessRunner struct{}

// NewRealProcessRunner creates a process runner backed by os/exec.
func NewRealProcessRunner() *RealProcessRunner {
	return &RealProcessRunner{}
}

// Run executes the plugin binary and captures its output.
func (r *RealProcessRunner) Run(ctx context.Context, path string, args []string, stdin io.Reader) ([]byte, []byte, error) {
	// #nosec G204 -- path is supplied by the user invoking the CLI.
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = stdin

	stdout, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return stdout, exitErr.Stderr, err
		}
		return stdout, nil, err
	}
	return stdout, nil, nil
}
