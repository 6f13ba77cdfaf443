package platform

import (
	"errors"
	"testing"
)

func TestResolve_LogicalNamesAndAliases(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantName   string
		wantTriple string
		wantSuffix string
	}{
		{name: "linux alias", input: "linux", wantName: "linux-x86_64", wantTriple: "x86_64-unknown-linux-gnu"},
		{name: "linux full name", input: "linux-x86_64", wantName: "linux-x86_64", wantTriple: "x86_64-unknown-linux-gnu"},
		{name: "windows alias", input: "windows", wantName: "windows-x86_64", wantTriple: "x86_64-pc-windows-msvc", wantSuffix: ".exe"},
		{name: "macos alias", input: "macos", wantName: "macos-x86_64", wantTriple: "x86_64-apple-darwin"},
		{name: "macos arm alias", input: "macos-arm", wantName: "macos-arm64", wantTriple: "aarch64-apple-darwin"},
		{name: "universal", input: "macos-universal", wantName: "macos-universal", wantTriple: "universal-apple-darwin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, err := Resolve(tt.input)
			if err != nil {
				t.Fatalf("Resolve(%q) failed: %v", tt.input, err)
			}
			if target.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", target.Name, tt.wantName)
			}
			if target.Triple != tt.wantTriple {
				t.Errorf("Triple = %q, want %q", target.Triple, tt.wantTriple)
			}
			if target.BinarySuffix != tt.wantSuffix {
				t.Errorf("BinarySuffix = %q, want %q", target.BinarySuffix, tt.wantSuffix)
			}
		})
	}
}

func TestResolve_Unknown(t *testing.T) {
	target, err := Resolve("unknown-xyz")

	var unknown *UnknownPlatformError
	if !errors.As(err, &unknown) {
		t.Fatalf("Expected *UnknownPlatformError, got: %v", err)
	}
	if unknown.Name != "unknown-xyz" {
		t.Errorf("Error should carry the requested name, got %q", unknown.Name)
	}
	if target.Name != "" || target.Triple != "" || target.BundleFormats != nil {
		t.Errorf("Resolve must not partially construct a target, got: %+v", target)
	}
}

func TestTargetsForHost_Deterministic(t *testing.T) {
	tests := []struct {
		goos string
		want []string
	}{
		{goos: "linux", want: []string{"linux-x86_64", "windows-x86_64"}},
		{goos: "darwin", want: []string{"macos-x86_64", "macos-arm64", "macos-universal"}},
		{goos: "windows", want: []string{"windows-x86_64", "linux-x86_64", "macos-x86_64"}},
		{goos: "plan9", want: []string{"linux-x86_64"}},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			first := TargetsForHost(tt.goos)
			second := TargetsForHost(tt.goos)

			if len(first) != len(tt.want) {
				t.Fatalf("Expected %d targets, got %d", len(tt.want), len(first))
			}
			for i, want := range tt.want {
				if first[i].Name != want {
					t.Errorf("Target %d = %q, want %q", i, first[i].Name, want)
				}
				if second[i].Name != first[i].Name {
					t.Errorf("TargetsForHost is not deterministic at index %d", i)
				}
			}
		})
	}
}

func TestNativeTarget(t *testing.T) {
	tests := []struct {
		goos    string
		goarch  string
		want    string
		wantErr bool
	}{
		{goos: "linux", goarch: "amd64", want: "linux-x86_64"},
		{goos: "windows", goarch: "amd64", want: "windows-x86_64"},
		{goos: "darwin", goarch: "amd64", want: "macos-x86_64"},
		{goos: "darwin", goarch: "arm64", want: "macos-arm64"},
		{goos: "plan9", goarch: "amd64", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.goarch, func(t *testing.T) {
			target, err := NativeTarget(tt.goos, tt.goarch)
			if tt.wantErr {
				var unknown *UnknownPlatformError
				if !errors.As(err, &unknown) {
					t.Fatalf("Expected *UnknownPlatformError, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NativeTarget failed: %v", err)
			}
			if target.Name != tt.want {
				t.Errorf("NativeTarget = %q, want %q", target.Name, tt.want)
			}
		})
	}
}

func TestArchiveFormats(t *testing.T) {
	for _, name := range Names() {
		target, err := Resolve(name)
		if err != nil {
			t.Fatalf("Resolve(%q) failed: %v", name, err)
		}
		wantZip := target.Name == "windows-x86_64"
		if wantZip && target.Archive != ArchiveZip {
			t.Errorf("%s should archive as zip", name)
		}
		if !wantZip && target.Archive != ArchiveTarGz {
			t.Errorf("%s should archive as tar.gz", name)
		}
	}
}
