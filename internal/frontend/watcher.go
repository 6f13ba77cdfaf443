package frontend

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ignoreDirs are directory names excluded from watching. Build output and
// package caches churn constantly and would retrigger the build forever.
var ignoreDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"dist":         true,
	"src-tauri":    true,
	".idea":        true,
	".vscode":      true,
}

// Watcher rebuilds the frontend when its sources change.
type Watcher struct {
	builder  *Builder
	root     string
	debounce time.Duration
}

// NewWatcher creates a watcher over root that triggers builder.Rebuild.
func NewWatcher(builder *Builder, root string) *Watcher {
	return &Watcher{
		builder:  builder,
		root:     root,
		debounce: 300 * time.Millisecond,
	}
}

// Watch blocks until ctx is cancelled, rebuilding after each debounced
// burst of file events. Rebuild failures are reported and watching
// continues; a broken intermediate save is normal during editing.
func (w *Watcher) Watch(ctx context.Context) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fsWatcher.Close()

	if err := w.addRecursive(fsWatcher, w.root); err != nil {
		return err
	}

	fmt.Printf("👀 Watching %s for changes (ctrl-c to stop)...\n", w.root)

	var timer *time.Timer
	rebuild := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fsWatcher.Events:
			if !ok {
				return nil
			}
			if w.ignored(event.Name) {
				continue
			}
			// New directories need explicit watches.
			if event.Op.Has(fsnotify.Create) {
				_ = w.addRecursive(fsWatcher, event.Name)
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				select {
				case rebuild <- struct{}{}:
				default:
				}
			})

		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return nil
			}
			fmt.Printf("⚠️  Watcher error: %v\n", err)

		case <-rebuild:
			fmt.Println("🔄 Change detected, rebuilding frontend...")
			if err := w.builder.Rebuild(ctx); err != nil {
				fmt.Printf("❌ Rebuild failed: %v\n", err)
			} else {
				fmt.Println("✅ Frontend rebuilt")
			}
		}
	}
}

// addRecursive watches path and every non-ignored directory under it.
func (w *Watcher) addRecursive(fsWatcher *fsnotify.Watcher, path string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// The entry may have vanished between event and walk.
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if ignoreDirs[d.Name()] {
			return filepath.SkipDir
		}
		return fsWatcher.Add(p)
	})
}

// ignored reports whether a path falls under an ignored directory.
func (w *Watcher) ignored(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		if ignoreDirs[part] {
			return true
		}
	}
	return false
}
