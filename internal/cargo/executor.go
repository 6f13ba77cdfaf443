// Package cargo drives the native toolchain: release builds per target
// triple and installer bundle production.
package cargo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/claudiacode/claudia-build/internal/execx"
	"github.com/claudiacode/claudia-build/internal/platform"
)

// ExternalToolError reports a non-zero exit from an external invocation.
type ExternalToolError struct {
	Tool  string
	Stage string
	Err   error
}

func (e *ExternalToolError) Error() string {
	return fmt.Sprintf("%s failed during %s: %v", e.Tool, e.Stage, e.Err)
}

func (e *ExternalToolError) Unwrap() error { return e.Err }

// ArtifactNotFoundError reports a build that exited zero without producing
// the expected binary.
type ArtifactNotFoundError struct {
	Target platform.Target
	Path   string
}

func (e *ArtifactNotFoundError) Error() string {
	return fmt.Sprintf("build for %s reported success but %s does not exist", e.Target.Name, e.Path)
}

// BuildResult is the outcome of one build invocation for one target. It is
// never mutated after creation.
type BuildResult struct {
	Target     platform.Target
	Success    bool
	BinaryPath string
	Err        error
}

// Executor runs cargo for a single project. The working directory is set
// per invocation via the runner; the process working directory is never
// touched, so a failed build cannot leak a directory change into later
// pipeline stages.
type Executor struct {
	runner    execx.Runner
	toolchain *platform.Toolchain
	// nativeDir is the project's native-build subdirectory (src-tauri).
	nativeDir string
	// binariesDir is the staging directory for raw binaries.
	binariesDir string
	// appName prefixes staged binary names.
	appName string
	// binaryName is the compiler's output binary name.
	binaryName string
}

// NewExecutor creates a cargo executor rooted at the project's native
// directory.
func NewExecutor(runner execx.Runner, toolchain *platform.Toolchain, nativeDir, binariesDir, appName, binaryName string) *Executor {
	return &Executor{
		runner:      runner,
		toolchain:   toolchain,
		nativeDir:   nativeDir,
		binariesDir: binariesDir,
		appName:     appName,
		binaryName:  binaryName,
	}
}

// Build compiles the target in release mode and stages the produced binary
// under binariesDir as <app>-<platform><suffix>. The expected output path
// is verified even after a zero exit; toolchains have been seen reporting
// success with no output under misconfigured workspaces.
func (e *Executor) Build(ctx context.Context, target platform.Target) (BuildResult, error) {
	result := BuildResult{Target: target}

	if err := e.toolchain.Ensure(ctx, target.Triple); err != nil {
		result.Err = err
		return result, err
	}

	fmt.Printf("🔨 Building %s (%s)...\n", target.Name, target.Triple)
	if err := e.runner.Run(ctx, e.nativeDir, "cargo", "build", "--release", "--target", target.Triple); err != nil {
		toolErr := &ExternalToolError{Tool: "cargo", Stage: "build " + target.Name, Err: err}
		result.Err = toolErr
		return result, toolErr
	}

	produced := filepath.Join(e.nativeDir, "target", target.Triple, "release", e.binaryName+target.BinarySuffix)
	if _, err := os.Stat(produced); err != nil {
		notFound := &ArtifactNotFoundError{Target: target, Path: produced}
		result.Err = notFound
		return result, notFound
	}

	if err := os.MkdirAll(e.binariesDir, 0755); err != nil {
		result.Err = err
		return result, fmt.Errorf("failed to create binaries directory: %w", err)
	}

	staged := filepath.Join(e.binariesDir, fmt.Sprintf("%s-%s%s", e.appName, target.Name, target.BinarySuffix))
	if err := copyFile(produced, staged); err != nil {
		result.Err = err
		return result, fmt.Errorf("failed to stage binary for %s: %w", target.Name, err)
	}

	result.Success = true
	result.BinaryPath = staged
	return result, nil
}

// copyFile copies a file preserving the executable bit. The source is left
// in place so the toolchain's own output tree stays intact.
func copyFile(src, dst string) error {
	content, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, content, info.Mode().Perm())
}
