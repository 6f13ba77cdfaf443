// Package platform holds the static build-target matrix and the
// host-dependent fan-out rules for cross-compilation.
package platform

import (
	"fmt"
	"strings"
)

// ArchiveFormat selects how a platform's release archive is packaged.
type ArchiveFormat string

const (
	ArchiveTarGz ArchiveFormat = "tar.gz"
	ArchiveZip   ArchiveFormat = "zip"
)

// Target identifies one build target. Targets are static configuration;
// they are never constructed at runtime outside this package.
type Target struct {
	// Name is the globally unique logical platform name, e.g. "linux-x86_64".
	Name string
	// Triple is the rustc target triple driving the toolchain invocation.
	Triple string
	// BinarySuffix is appended to produced binary names ("" or ".exe").
	BinarySuffix string
	// Archive is the release archive format for this platform.
	Archive ArchiveFormat
	// BundleFormats are the installer formats the bundler can produce.
	BundleFormats []string
}

// ArchiveExt returns the file extension for the target's archive format.
func (t Target) ArchiveExt() string {
	return string(t.Archive)
}

// matrix is ordered; iteration order matters for deterministic listings.
var matrix = []Target{
	{
		Name:          "linux-x86_64",
		Triple:        "x86_64-unknown-linux-gnu",
		Archive:       ArchiveTarGz,
		BundleFormats: []string{"deb", "appimage"},
	},
	{
		Name:          "windows-x86_64",
		Triple:        "x86_64-pc-windows-msvc",
		BinarySuffix:  ".exe",
		Archive:       ArchiveZip,
		BundleFormats: []string{"msi", "nsis"},
	},
	{
		Name:          "macos-x86_64",
		Triple:        "x86_64-apple-darwin",
		Archive:       ArchiveTarGz,
		BundleFormats: []string{"dmg", "app"},
	},
	{
		Name:          "macos-arm64",
		Triple:        "aarch64-apple-darwin",
		Archive:       ArchiveTarGz,
		BundleFormats: []string{"dmg", "app"},
	},
	{
		Name:          "macos-universal",
		Triple:        "universal-apple-darwin",
		Archive:       ArchiveTarGz,
		BundleFormats: []string{"dmg", "app"},
	},
}

// aliases maps the short command names to logical platform names.
var aliases = map[string]string{
	"linux":           "linux-x86_64",
	"windows":         "windows-x86_64",
	"macos":           "macos-x86_64",
	"macos-arm":       "macos-arm64",
	"macos-universal": "macos-universal",
}

// hostTargets is the fan-out table for the all-platforms command, keyed by
// GOOS. Native targets come first; cross-compiles follow as best-effort
// attempts. An unrecognized host degrades to a single best-effort Linux
// build: the all-platforms command is best-effort by contract, so guessing
// the most likely target beats refusing to try (NativeTarget, by contrast,
// hard-fails on unknown hosts because a bundle needs a definite platform).
var hostTargets = map[string][]string{
	"linux":   {"linux-x86_64", "windows-x86_64"},
	"darwin":  {"macos-x86_64", "macos-arm64", "macos-universal"},
	"windows": {"windows-x86_64", "linux-x86_64", "macos-x86_64"},
}

// UnknownPlatformError reports a platform name absent from the matrix.
type UnknownPlatformError struct {
	Name string
}

func (e *UnknownPlatformError) Error() string {
	return fmt.Sprintf("unknown platform %q (known: %s)", e.Name, strings.Join(Names(), ", "))
}

// Names lists the logical platform names in matrix order.
func Names() []string {
	names := make([]string, len(matrix))
	for i, t := range matrix {
		names[i] = t.Name
	}
	return names
}

// Aliases lists the short command names in matrix order.
func Aliases() []string {
	out := make([]string, 0, len(aliases))
	for _, t := range matrix {
		for alias, name := range aliases {
			if name == t.Name {
				out = append(out, alias)
			}
		}
	}
	return out
}

// Resolve maps a logical platform name or command alias to its Target.
func Resolve(name string) (Target, error) {
	lookup := name
	if full, ok := aliases[name]; ok {
		lookup = full
	}
	for _, t := range matrix {
		if t.Name == lookup {
			return t, nil
		}
	}
	return Target{}, &UnknownPlatformError{Name: name}
}

// TargetsForHost returns the ordered targets the all-platforms command
// attempts on the given host OS. The result is deterministic for a fixed
// host and never empty.
func TargetsForHost(goos string) []Target {
	names, ok := hostTargets[goos]
	if !ok {
		names = []string{"linux-x86_64"}
	}
	targets := make([]Target, 0, len(names))
	for _, name := range names {
		t, err := Resolve(name)
		if err != nil {
			// The fan-out table only names matrix entries.
			panic(err)
		}
		targets = append(targets, t)
	}
	return targets
}

// NativeTarget resolves the host's own platform for the bundles command.
// Unlike TargetsForHost it refuses unrecognized hosts: installer bundles
// are only meaningful for a definite native platform.
func NativeTarget(goos, goarch string) (Target, error) {
	switch goos {
	case "linux":
		return Resolve("linux-x86_64")
	case "windows":
		return Resolve("windows-x86_64")
	case "darwin":
		if goarch == "arm64" {
			return Resolve("macos-arm64")
		}
		return Resolve("macos-x86_64")
	default:
		return Target{}, &UnknownPlatformError{Name: goos}
	}
}
