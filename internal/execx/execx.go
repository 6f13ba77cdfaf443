// Package execx wraps external tool invocation behind a small interface so
// the pipeline can be exercised with stub toolchains in tests.
package execx

import (
	"context"
	"os"
	"os/exec"
)

// Runner executes external tools. dir is the working directory for the
// invocation; it is applied per command and never mutates the process
// working directory.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) error
	Output(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// Local runs commands on the host with stdout/stderr passed through.
type Local struct{}

func (l Local) Run(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func (l Local) Output(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.Output()
}
