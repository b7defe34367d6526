package netdetails

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// Runner runs an OS utility and returns its stdout. Implementations must stop
// the utility once ctx is done.
type Runner interface {
	Run(context.Context, ...string) (string, error)
}

// RunnerImpl runs utilities with os/exec. When ctx expires or is canceled the
// returned error is ctx.Err(), so callers can tell a timeout from a failing
// utility. Otherwise a non-empty stderr becomes the error text.
type RunnerImpl struct{}

func (r *RunnerImpl) Run(ctx context.Context, args ...string) (string, error) {
	stderr := &bytes.Buffer{}
	stdout := &bytes.Buffer{}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...) //nolint:gosec

	cmd.Stderr = stderr
	cmd.Stdout = stdout
	err := cmd.Run()
	if err != nil {
		if ctx.Err() != nil {
			return stdout.String(), ctx.Err()
		}
		if stderr.Len() > 0 {
			err = errors.New(stderr.String())
		}
		return stdout.String(), err
	}

	return stdout.String(), nil
}
