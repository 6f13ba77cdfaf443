// Package frontend builds the bundled web assets with bun.
package frontend

import (
	"context"
	"fmt"

	"github.com/claudiacode/claudia-build/internal/execx"
)

// Builder runs the frontend asset build in the frontend directory.
type Builder struct {
	runner execx.Runner
	dir    string
}

// NewBuilder creates a frontend builder rooted at dir.
func NewBuilder(runner execx.Runner, dir string) *Builder {
	return &Builder{runner: runner, dir: dir}
}

// Build installs dependencies and produces the asset bundle.
func (b *Builder) Build(ctx context.Context) error {
	fmt.Println("🎨 Building frontend...")
	if err := b.runner.Run(ctx, b.dir, "bun", "install"); err != nil {
		return fmt.Errorf("bun install failed: %w", err)
	}
	if err := b.runner.Run(ctx, b.dir, "bun", "run", "build"); err != nil {
		return fmt.Errorf("bun run build failed: %w", err)
	}
	return nil
}

// Rebuild reruns only the bundle step, used by the watcher where
// dependencies are already installed.
func (b *Builder) Rebuild(ctx context.Context) error {
	return b.runner.Run(ctx, b.dir, "bun", "run", "build")
}
