package deps

import (
	"errors"
	"strings"
	"testing"
)

// fakeProber resolves only the tools it was given.
type fakeProber struct {
	available map[string]bool
	probed    []string
}

func (p *fakeProber) LookPath(tool string) (string, error) {
	p.probed = append(p.probed, tool)
	if p.available[tool] {
		return "/usr/bin/" + tool, nil
	}
	return "", errors.New("executable file not found in $PATH")
}

func TestCheck_AllPresent(t *testing.T) {
	probe := &fakeProber{available: map[string]bool{"bun": true, "cargo": true, "rustup": true}}

	if err := Check(probe, []string{"bun", "cargo", "rustup"}); err != nil {
		t.Fatalf("Check failed with all tools present: %v", err)
	}
}

func TestCheck_FailFastOnFirstMissing(t *testing.T) {
	probe := &fakeProber{available: map[string]bool{"bun": true}}

	err := Check(probe, []string{"bun", "cargo", "rustup"})

	var missing *MissingDependencyError
	if !errors.As(err, &missing) {
		t.Fatalf("Expected *MissingDependencyError, got: %v", err)
	}
	if missing.Tool != "cargo" {
		t.Errorf("Expected first missing tool 'cargo', got %q", missing.Tool)
	}
	// rustup must never be probed once cargo is missing.
	for _, probed := range probe.probed {
		if probed == "rustup" {
			t.Error("Check did not fail fast: probed rustup after cargo was missing")
		}
	}
}

func TestCheck_ErrorNamesInstallURL(t *testing.T) {
	probe := &fakeProber{available: map[string]bool{}}

	err := Check(probe, []string{"bun"})
	if err == nil {
		t.Fatal("Expected error for missing bun")
	}
	if !strings.Contains(err.Error(), "https://bun.sh") {
		t.Errorf("Expected install URL in error, got: %v", err)
	}
}

func TestCheck_NoRequiredTools(t *testing.T) {
	if err := Check(&fakeProber{}, nil); err != nil {
		t.Fatalf("Check with no required tools should succeed, got: %v", err)
	}
}
