package platform

import (
	"context"
	"fmt"
	"strings"

	"github.com/claudiacode/claudia-build/internal/execx"
)

// Toolchain tracks which rustup target components are installed so repeat
// Ensure calls never trigger a redundant installer run.
type Toolchain struct {
	runner    execx.Runner
	installed map[string]bool
	loaded    bool
}

// NewToolchain creates a toolchain registry backed by the given runner.
func NewToolchain(runner execx.Runner) *Toolchain {
	return &Toolchain{
		runner:    runner,
		installed: make(map[string]bool),
	}
}

// Ensure installs the target component for triple if it is not already
// present. Idempotent: the installed set is consulted first and updated
// after a successful install.
func (tc *Toolchain) Ensure(ctx context.Context, triple string) error {
	if err := tc.load(ctx); err != nil {
		return err
	}
	if tc.installed[triple] {
		return nil
	}

	fmt.Printf("📦 Installing rust target %s...\n", triple)
	if err := tc.runner.Run(ctx, "", "rustup", "target", "add", triple); err != nil {
		return fmt.Errorf("failed to install rust target %s: %w", triple, err)
	}
	tc.installed[triple] = true
	return nil
}

// load populates the installed set once per Toolchain from
// `rustup target list --installed`.
func (tc *Toolchain) load(ctx context.Context) error {
	if tc.loaded {
		return nil
	}
	out, err := tc.runner.Output(ctx, "", "rustup", "target", "list", "--installed")
	if err != nil {
		return fmt.Errorf("failed to list installed rust targets: %w", err)
	}
	for _, line := range strings.Split(string(out), "\n") {
		if triple := strings.TrimSpace(line); triple != "" {
			tc.installed[triple] = true
		}
	}
	tc.loaded = true
	return nil
}
