// Package deps verifies that the external tools the pipeline shells out to
// are present before any work begins.
package deps

import (
	"fmt"
	"os/exec"
)

// installURLs maps known tools to their install pages, used to keep the
// failure message actionable.
var installURLs = map[string]string{
	"bun":    "https://bun.sh",
	"cargo":  "https://rustup.rs",
	"rustup": "https://rustup.rs",
	"git":    "https://git-scm.com",
}

// Prober answers whether a tool is reachable on the execution search path.
// Tests substitute a fake so dependency checks never touch the real
// environment.
type Prober interface {
	LookPath(tool string) (string, error)
}

// ExecProber is the production Prober backed by exec.LookPath.
type ExecProber struct{}

func (ExecProber) LookPath(tool string) (string, error) {
	return exec.LookPath(tool)
}

// MissingDependencyError reports the first required tool not found on the
// path.
type MissingDependencyError struct {
	Tool       string
	InstallURL string
}

func (e *MissingDependencyError) Error() string {
	if e.InstallURL == "" {
		return fmt.Sprintf("%s is required but not found on PATH", e.Tool)
	}
	return fmt.Sprintf("%s is required but not found on PATH (install: %s)", e.Tool, e.InstallURL)
}

// Check probes each required tool in order and fails fast on the first one
// missing. Collecting every missing tool would delay the one actionable
// message the user needs.
func Check(probe Prober, required []string) error {
	for _, tool := range required {
		if _, err := probe.LookPath(tool); err != nil {
			return &MissingDependencyError{Tool: tool, InstallURL: installURLs[tool]}
		}
	}
	return nil
}
