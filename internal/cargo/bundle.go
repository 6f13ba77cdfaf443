package cargo

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/claudiacode/claudia-build/internal/platform"
)

// bundleExtensions are the installer file extensions recognized in the
// bundler's output tree, lowercased.
var bundleExtensions = map[string]bool{
	".deb":      true,
	".appimage": true,
	".rpm":      true,
	".dmg":      true,
	".msi":      true,
	".exe":      true,
}

// BuildBundles invokes the toolchain's packaging mode for the requested
// installer formats and returns the bundle files found afterward. An empty
// result is not an error; the packaging tool's exit code is the
// authoritative success signal.
func (e *Executor) BuildBundles(ctx context.Context, target platform.Target, formats []string) ([]string, error) {
	if err := e.toolchain.Ensure(ctx, target.Triple); err != nil {
		return nil, err
	}

	fmt.Printf("📦 Bundling %s (%s)...\n", strings.Join(formats, ", "), target.Name)
	args := []string{"tauri", "build", "--bundles", strings.Join(formats, ","), "--target", target.Triple}
	if err := e.runner.Run(ctx, e.nativeDir, "cargo", args...); err != nil {
		return nil, &ExternalToolError{Tool: "cargo tauri", Stage: "bundle " + target.Name, Err: err}
	}

	return e.findBundles(target)
}

// BundleDir is the bundler's output tree for the given target.
func (e *Executor) BundleDir(target platform.Target) string {
	return filepath.Join(e.nativeDir, "target", target.Triple, "release", "bundle")
}

// findBundles walks the bundle output tree filtering to installer
// extensions. A missing tree counts as no bundles produced.
func (e *Executor) findBundles(target platform.Target) ([]string, error) {
	dir := e.BundleDir(target)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}

	var bundles []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if bundleExtensions[strings.ToLower(filepath.Ext(path))] {
			bundles = append(bundles, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate bundle output: %w", err)
	}
	return bundles, nil
}
