// Package pipeline sequences the release workflow: dependency checks,
// validation gates, the frontend build, and the per-target build and
// archive chain.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/schollz/progressbar/v3"

	"github.com/claudiacode/claudia-build/internal/cargo"
	"github.com/claudiacode/claudia-build/internal/config"
	"github.com/claudiacode/claudia-build/internal/deps"
	"github.com/claudiacode/claudia-build/internal/execx"
	"github.com/claudiacode/claudia-build/internal/frontend"
	"github.com/claudiacode/claudia-build/internal/icon"
	"github.com/claudiacode/claudia-build/internal/platform"
	"github.com/claudiacode/claudia-build/internal/release"
)

// Outcome is the collected result of one target's build+archive attempt
// inside the all-platforms command.
type Outcome struct {
	Target  platform.Target
	Archive *release.ReleaseArchive
	Err     error
}

// Options configure a Pipeline. Zero values select the production
// environment: real PATH probing, real subprocesses, the host's OS and
// architecture, stdout.
type Options struct {
	Probe    deps.Prober
	Runner   execx.Runner
	GOOS     string
	GOARCH   string
	Out      io.Writer
	Progress bool
}

// Pipeline drives the build-and-release workflow for one project. All
// stages run strictly sequentially; external invocations block until the
// tool exits.
type Pipeline struct {
	cfg    *config.Config
	root   string
	probe  deps.Prober
	goos   string
	goarch string
	out    io.Writer

	progress bool
	executor *cargo.Executor
	builder  *frontend.Builder
	archiver *release.Archiver
}

// New creates a pipeline rooted at the given project directory.
func New(root string, cfg *config.Config, opts Options) *Pipeline {
	if opts.Probe == nil {
		opts.Probe = deps.ExecProber{}
	}
	if opts.Runner == nil {
		opts.Runner = execx.Local{}
	}
	if opts.GOOS == "" {
		opts.GOOS = runtime.GOOS
	}
	if opts.GOARCH == "" {
		opts.GOARCH = runtime.GOARCH
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	nativeDir := filepath.Join(root, cfg.Paths.Native)
	distDir := filepath.Join(root, cfg.Paths.Dist)
	binariesDir := filepath.Join(distDir, "binaries")
	releasesDir := filepath.Join(distDir, "releases")

	toolchain := platform.NewToolchain(opts.Runner)

	return &Pipeline{
		cfg:      cfg,
		root:     root,
		probe:    opts.Probe,
		goos:     opts.GOOS,
		goarch:   opts.GOARCH,
		out:      opts.Out,
		progress: opts.Progress,
		executor: cargo.NewExecutor(opts.Runner, toolchain, nativeDir, binariesDir, cfg.App.Name, cfg.App.Binary),
		builder:  frontend.NewBuilder(opts.Runner, filepath.Join(root, cfg.Paths.Frontend)),
		archiver: release.NewArchiver(opts.Runner, root, releasesDir, cfg.App.Name, cfg.App.Binary, cfg.App.Product),
	}
}

// setup runs the stages shared by every build command: dependency check,
// icon validation, frontend build. Any failure here is fatal for the whole
// invocation, even for the partial-failure-tolerant all command.
func (p *Pipeline) setup(ctx context.Context) error {
	if err := deps.Check(p.probe, p.cfg.Tools); err != nil {
		return err
	}
	if err := icon.Check(filepath.Join(p.root, p.cfg.Paths.Icon), icon.ICOSignature); err != nil {
		return err
	}
	return p.builder.Build(ctx)
}

// RunSingle builds and archives one platform. The first failing stage
// aborts the command.
func (p *Pipeline) RunSingle(ctx context.Context, name string) (*release.ReleaseArchive, error) {
	target, err := platform.Resolve(name)
	if err != nil {
		return nil, err
	}
	if err := p.setup(ctx); err != nil {
		return nil, err
	}

	result, err := p.executor.Build(ctx, target)
	if err != nil {
		return nil, err
	}
	archive, err := p.archiver.Archive(ctx, result)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(p.out, "✅ %s packaged: %s\n", target.Name, archive.Path)
	return archive, nil
}

// RunAll attempts every target in the host's fan-out list. A failure on
// one target is logged as a warning and does not stop the remaining
// targets; cross-compiles are best-effort and a missing cross-toolchain
// must not block the targets that do work. The returned error is non-nil
// only when the pre-loop setup stages fail.
func (p *Pipeline) RunAll(ctx context.Context) ([]Outcome, error) {
	if err := p.setup(ctx); err != nil {
		return nil, err
	}

	targets := platform.TargetsForHost(p.goos)
	bar := p.newBar(len(targets))

	outcomes := make([]Outcome, 0, len(targets))
	for _, target := range targets {
		if bar != nil {
			bar.Describe(fmt.Sprintf("Building %s", target.Name))
		}

		outcome := Outcome{Target: target}
		result, err := p.executor.Build(ctx, target)
		if err == nil {
			outcome.Archive, err = p.archiver.Archive(ctx, result)
		}
		if err != nil {
			outcome.Err = err
			fmt.Fprintf(p.out, "⚠️  %s build failed: %v\n", target.Name, err)
		}
		outcomes = append(outcomes, outcome)

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	p.printSummary(outcomes)
	return outcomes, nil
}

// RunBundles produces installer bundles for the host's native target.
func (p *Pipeline) RunBundles(ctx context.Context) ([]string, error) {
	target, err := platform.NativeTarget(p.goos, p.goarch)
	if err != nil {
		return nil, err
	}
	if err := p.setup(ctx); err != nil {
		return nil, err
	}

	bundles, err := p.executor.BuildBundles(ctx, target, target.BundleFormats)
	if err != nil {
		return nil, err
	}

	if len(bundles) == 0 {
		fmt.Fprintf(p.out, "⚠️  Bundler exited cleanly but produced no bundle files\n")
	}
	for _, bundle := range bundles {
		fmt.Fprintf(p.out, "✅ Bundle: %s\n", bundle)
	}
	return bundles, nil
}

// Clean removes the dist tree and the bundler's output directories.
// Idempotent: a tree that is already clean is not an error.
func (p *Pipeline) Clean(expunge bool) error {
	distDir := filepath.Join(p.root, p.cfg.Paths.Dist)
	if err := removeIfPresent(p.out, distDir); err != nil {
		return err
	}

	nativeTarget := filepath.Join(p.root, p.cfg.Paths.Native, "target")
	if expunge {
		return removeIfPresent(p.out, nativeTarget)
	}

	bundleDirs, err := filepath.Glob(filepath.Join(nativeTarget, "*", "release", "bundle"))
	if err != nil {
		return err
	}
	for _, dir := range bundleDirs {
		if err := removeIfPresent(p.out, dir); err != nil {
			return err
		}
	}
	return nil
}

func removeIfPresent(out io.Writer, dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}
	fmt.Fprintf(out, "🗑️  Removing %s...\n", dir)
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to remove %s: %w", dir, err)
	}
	return nil
}

func (p *Pipeline) newBar(total int) *progressbar.ProgressBar {
	if !p.progress {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Building"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
	)
}

func (p *Pipeline) printSummary(outcomes []Outcome) {
	succeeded := 0
	for _, o := range outcomes {
		if o.Err == nil {
			succeeded++
		}
	}
	fmt.Fprintf(p.out, "\n📋 Build summary: %d/%d targets succeeded\n", succeeded, len(outcomes))
	for _, o := range outcomes {
		if o.Err == nil {
			fmt.Fprintf(p.out, "   ✅ %s → %s\n", o.Target.Name, o.Archive.Path)
		} else {
			fmt.Fprintf(p.out, "   ⚠️  %s: %v\n", o.Target.Name, o.Err)
		}
	}
}
