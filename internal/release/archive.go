package release

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/claudiacode/claudia-build/internal/cargo"
	"github.com/claudiacode/claudia-build/internal/execx"
	"github.com/claudiacode/claudia-build/internal/platform"
	"github.com/claudiacode/claudia-build/pkg/xos"
)

// PrerequisiteMissingError reports an attempt to archive a build that did
// not succeed.
type PrerequisiteMissingError struct {
	Platform string
}

func (e *PrerequisiteMissingError) Error() string {
	return fmt.Sprintf("cannot archive %s: no successful build result", e.Platform)
}

// ReleaseArchive is one packaged release unit, immutable once written.
type ReleaseArchive struct {
	Platform string
	Path     string
	Files    []string
	Version  string
	Commit   string
	BuiltAt  time.Time
}

// Archiver assembles per-platform staging directories and compresses them
// into release archives under dist/releases.
type Archiver struct {
	runner      execx.Runner
	projectRoot string
	releasesDir string
	appName     string
	binaryName  string
	product     string
}

// NewArchiver creates an archiver writing under releasesDir.
func NewArchiver(runner execx.Runner, projectRoot, releasesDir, appName, binaryName, product string) *Archiver {
	return &Archiver{
		runner:      runner,
		projectRoot: projectRoot,
		releasesDir: releasesDir,
		appName:     appName,
		binaryName:  binaryName,
		product:     product,
	}
}

// Archive stages the built binary with README.md, LICENSE and a generated
// VERSION manifest, then compresses the staging directory into
// <app>-<platform>.<tar.gz|zip>. Each platform gets a fresh staging
// subdirectory so sequential targets never contaminate each other.
func (a *Archiver) Archive(ctx context.Context, result cargo.BuildResult) (*ReleaseArchive, error) {
	target := result.Target
	if !result.Success {
		return nil, &PrerequisiteMissingError{Platform: target.Name}
	}

	staging := filepath.Join(a.releasesDir, target.Name)
	if err := os.RemoveAll(staging); err != nil {
		return nil, fmt.Errorf("failed to reset staging directory: %w", err)
	}
	if err := os.MkdirAll(staging, 0755); err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}

	files := []string{a.binaryName + target.BinarySuffix, "README.md", "LICENSE", "VERSION"}

	if err := copyFile(result.BinaryPath, filepath.Join(staging, files[0])); err != nil {
		return nil, fmt.Errorf("failed to stage binary: %w", err)
	}
	for _, doc := range []string{"README.md", "LICENSE"} {
		if err := copyFile(filepath.Join(a.projectRoot, doc), filepath.Join(staging, doc)); err != nil {
			return nil, fmt.Errorf("failed to stage %s: %w", doc, err)
		}
	}

	manifest := CollectManifest(ctx, a.runner, a.projectRoot, a.product, target.Name)
	if err := xos.WriteFile(filepath.Join(staging, "VERSION"), manifest.Render(), 0644); err != nil {
		return nil, fmt.Errorf("failed to write VERSION manifest: %w", err)
	}

	archivePath := filepath.Join(a.releasesDir, fmt.Sprintf("%s-%s.%s", a.appName, target.Name, target.ArchiveExt()))
	var err error
	switch target.Archive {
	case platform.ArchiveZip:
		err = zipDir(staging, archivePath)
	default:
		err = tarGzDir(staging, archivePath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create archive for %s: %w", target.Name, err)
	}

	return &ReleaseArchive{
		Platform: target.Name,
		Path:     archivePath,
		Files:    files,
		Version:  manifest.Version,
		Commit:   manifest.Commit,
		BuiltAt:  manifest.BuiltAt,
	}, nil
}

// tarGzDir compresses the contents of dir into a gzipped tarball.
func tarGzDir(dir, out string) error {
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	defer gz.Close()

	tw := tar.NewWriter(gz)
	defer tw.Close()

	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		header.Name = filepath.ToSlash(rel)
		if err := tw.WriteHeader(header); err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()
		_, err = io.Copy(tw, src)
		return err
	})
}

// zipDir compresses the contents of dir into a zip archive.
func zipDir(dir, out string) error {
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	defer zw.Close()

	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		header, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		header.Name = filepath.ToSlash(rel)
		header.Method = zip.Deflate

		w, err := zw.CreateHeader(header)
		if err != nil {
			return err
		}
		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()
		_, err = io.Copy(w, src)
		return err
	})
}

// copyFile copies a file preserving its mode bits.
func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	content, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, content, info.Mode().Perm())
}
