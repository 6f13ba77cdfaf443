// Package release stages build outputs and packages them into versioned
// platform archives.
package release

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/claudiacode/claudia-build/internal/execx"
)

// Manifest is the VERSION record embedded in every release archive.
type Manifest struct {
	Product  string
	Version  string
	Platform string
	Commit   string
	BuiltAt  time.Time
}

// Render produces the four-line VERSION file.
func (m Manifest) Render() []byte {
	return []byte(fmt.Sprintf("%s %s\nBuilt on: %s\nPlatform: %s\nCommit: %s\n",
		m.Product, m.Version, m.BuiltAt.Format(time.RFC1123), m.Platform, m.Commit))
}

// CollectManifest queries version-control metadata for the manifest. Every
// query degrades to a placeholder instead of failing: a repository with no
// tags or a detached checkout must still produce an archive.
func CollectManifest(ctx context.Context, runner execx.Runner, repoDir, product, platformName string) Manifest {
	m := Manifest{
		Product:  product,
		Version:  "dev",
		Platform: platformName,
		BuiltAt:  time.Now(),
	}

	if out, err := runner.Output(ctx, repoDir, "git", "describe", "--tags", "--abbrev=0"); err == nil {
		if version := strings.TrimSpace(string(out)); version != "" {
			m.Version = version
		}
	}
	if out, err := runner.Output(ctx, repoDir, "git", "rev-parse", "--short", "HEAD"); err == nil {
		m.Commit = strings.TrimSpace(string(out))
	}

	return m
}
