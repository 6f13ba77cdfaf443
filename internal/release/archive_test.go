package release

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/claudiacode/claudia-build/internal/cargo"
	"github.com/claudiacode/claudia-build/internal/platform"
)

func newTestArchiver(t *testing.T) (*Archiver, string) {
	t.Helper()
	root := t.TempDir()
	for _, doc := range []string{"README.md", "LICENSE"} {
		if err := os.WriteFile(filepath.Join(root, doc), []byte(doc+" content"), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", doc, err)
		}
	}
	releasesDir := filepath.Join(root, "dist", "releases")
	git := &stubGit{describe: "v0.1.0", revParse: "deadbee"}
	return NewArchiver(git, root, releasesDir, "claudia", "claudia", "Claudia"), root
}

func successfulResult(t *testing.T, root, name string) cargo.BuildResult {
	t.Helper()
	target, err := platform.Resolve(name)
	if err != nil {
		t.Fatalf("Resolve(%q) failed: %v", name, err)
	}
	binPath := filepath.Join(root, "dist", "binaries", "claudia-"+target.Name+target.BinarySuffix)
	if err := os.MkdirAll(filepath.Dir(binPath), 0755); err != nil {
		t.Fatalf("Failed to create binaries dir: %v", err)
	}
	if err := os.WriteFile(binPath, []byte("binary for "+name), 0755); err != nil {
		t.Fatalf("Failed to write binary: %v", err)
	}
	return cargo.BuildResult{Target: target, Success: true, BinaryPath: binPath}
}

func tarGzNames(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open archive: %v", err)
	}
	defer f.Close()
	gz, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("Failed to read gzip: %v", err)
	}
	defer gz.Close()

	var names []string
	tr := tar.NewReader(gz)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Failed to read tar: %v", err)
		}
		names = append(names, header.Name)
	}
	return names
}

func TestArchive_LinuxTarGz(t *testing.T) {
	archiver, root := newTestArchiver(t)
	result := successfulResult(t, root, "linux")

	archive, err := archiver.Archive(context.Background(), result)
	if err != nil {
		t.Fatalf("Archive failed: %v", err)
	}

	wantPath := filepath.Join(root, "dist", "releases", "claudia-linux-x86_64.tar.gz")
	if archive.Path != wantPath {
		t.Errorf("Path = %q, want %q", archive.Path, wantPath)
	}
	if archive.Version != "v0.1.0" || archive.Commit != "deadbee" {
		t.Errorf("Metadata = %q/%q, want v0.1.0/deadbee", archive.Version, archive.Commit)
	}

	names := tarGzNames(t, archive.Path)
	for _, want := range []string{"claudia", "README.md", "LICENSE", "VERSION"} {
		found := false
		for _, name := range names {
			if name == want {
				found = true
			}
		}
		if !found {
			t.Errorf("Archive missing %s, contains: %v", want, names)
		}
	}
}

func TestArchive_WindowsZip(t *testing.T) {
	archiver, root := newTestArchiver(t)
	result := successfulResult(t, root, "windows")

	archive, err := archiver.Archive(context.Background(), result)
	if err != nil {
		t.Fatalf("Archive failed: %v", err)
	}
	if !strings.HasSuffix(archive.Path, "claudia-windows-x86_64.zip") {
		t.Fatalf("Expected zip archive, got %q", archive.Path)
	}

	zr, err := zip.OpenReader(archive.Path)
	if err != nil {
		t.Fatalf("Failed to open zip: %v", err)
	}
	defer zr.Close()

	names := map[string]bool{}
	for _, f := range zr.File {
		names[f.Name] = true
	}
	for _, want := range []string{"claudia.exe", "README.md", "LICENSE", "VERSION"} {
		if !names[want] {
			t.Errorf("Zip missing %s, contains: %v", want, names)
		}
	}
}

func TestArchive_VersionManifestContents(t *testing.T) {
	archiver, root := newTestArchiver(t)
	result := successfulResult(t, root, "linux")

	if _, err := archiver.Archive(context.Background(), result); err != nil {
		t.Fatalf("Archive failed: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(root, "dist", "releases", "linux-x86_64", "VERSION"))
	if err != nil {
		t.Fatalf("Failed to read staged VERSION: %v", err)
	}
	text := string(content)
	for _, want := range []string{"Claudia v0.1.0", "Built on: ", "Platform: linux-x86_64", "Commit: deadbee"} {
		if !strings.Contains(text, want) {
			t.Errorf("VERSION missing %q:\n%s", want, text)
		}
	}
}

func TestArchive_FailedBuildRefused(t *testing.T) {
	archiver, root := newTestArchiver(t)
	target, _ := platform.Resolve("linux")
	result := cargo.BuildResult{Target: target, Success: false, Err: errors.New("exit status 101")}

	_, err := archiver.Archive(context.Background(), result)

	var missing *PrerequisiteMissingError
	if !errors.As(err, &missing) {
		t.Fatalf("Expected *PrerequisiteMissingError, got: %v", err)
	}
	// No filesystem writes may happen for a refused archive.
	if _, err := os.Stat(filepath.Join(root, "dist", "releases")); !os.IsNotExist(err) {
		t.Error("Archiver wrote to the releases directory for a failed build")
	}
}

func TestArchive_StagingIsolatedPerPlatform(t *testing.T) {
	archiver, root := newTestArchiver(t)

	if _, err := archiver.Archive(context.Background(), successfulResult(t, root, "linux")); err != nil {
		t.Fatalf("Linux archive failed: %v", err)
	}
	if _, err := archiver.Archive(context.Background(), successfulResult(t, root, "windows")); err != nil {
		t.Fatalf("Windows archive failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(root, "dist", "releases", "windows-x86_64", "claudia")); !os.IsNotExist(err) {
		t.Error("Linux binary leaked into the windows staging directory")
	}
	if _, err := os.Stat(filepath.Join(root, "dist", "releases", "linux-x86_64", "claudia")); err != nil {
		t.Errorf("Linux staging directory incomplete: %v", err)
	}
}
