// Package seed preloads facts declared in HCL files into the graph and keeps
// them current while the files change.
package seed

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/specialistvlad/causalcore/internal/config"
	"github.com/specialistvlad/causalcore/internal/ctxlog"
	"github.com/specialistvlad/causalcore/internal/fsutil"
	"github.com/specialistvlad/causalcore/internal/hcl"
)

// DefaultDebounce groups bursts of file events into a single reload.
const DefaultDebounce = 200 * time.Millisecond

// Graph is the part of graph.Graph that seeding writes to.
type Graph interface {
	AddNode(ctx context.Context, id string, dependents []string) error
}

// Apply upserts facts in order, so a later declaration of the same fact wins.
func Apply(ctx context.Context, g Graph, facts []config.Fact) error {
	for _, f := range facts {
		if err := g.AddNode(ctx, f.ID, f.Dependents); err != nil {
			return fmt.Errorf("seed fact %q from %s: %w", f.ID, f.File, err)
		}
	}
	return nil
}

// Load reads the fact blocks under paths and upserts them. It returns the
// number of facts applied.
func Load(ctx context.Context, g Graph, paths ...string) (int, error) {
	model, err := hcl.NewLoader().Load(ctx, paths...)
	if err != nil {
		return 0, err
	}
	if err := Apply(ctx, g, model.Facts); err != nil {
		return 0, err
	}
	ctxlog.FromContext(ctx).Info("Seed facts loaded.", "facts", len(model.Facts))
	return len(model.Facts), nil
}

// Watcher reloads changed seed files.
type Watcher struct {
	graph    Graph
	root     string
	debounce time.Duration
}

// NewWatcher creates a watcher for the directory or file at root.
func NewWatcher(g Graph, root string, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{graph: g, root: root, debounce: debounce}
}

// Run watches root until ctx is cancelled. Only setup failures are returned;
// reload errors are logged and the previous facts stay in place.
func (w *Watcher) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx).With("seed_path", w.root)

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fsWatcher.Close()

	if err := w.addAll(fsWatcher); err != nil {
		return err
	}
	logger.Info("Watching seed files.")

	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Seed watcher stopped.")
			return nil

		case event, ok := <-fsWatcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := fsWatcher.Add(event.Name); err != nil {
						logger.Warn("Failed to watch new directory.", "dir", event.Name, "error", err)
					}
					continue
				}
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 && hcl.IsHCLFile(event.Name) {
				logger.Debug("Seed file changed.", "file", event.Name, "op", event.Op.String())
				pending[event.Name] = struct{}{}
				timer.Reset(w.debounce)
			}

		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("File watcher error.", "error", err)

		case <-timer.C:
			for file := range pending {
				n, err := Load(ctx, w.graph, file)
				if err != nil {
					logger.Error("Failed to reload seed file.", "file", file, "error", err)
					continue
				}
				logger.Info("Reloaded seed file.", "file", file, "facts", n)
			}
			clear(pending)
		}
	}
}

func (w *Watcher) addAll(fsWatcher *fsnotify.Watcher) error {
	info, err := os.Stat(w.root)
	if err != nil {
		return fmt.Errorf("seed path %s: %w", w.root, err)
	}
	if !info.IsDir() {
		return fsWatcher.Add(w.root)
	}
	dirs, err := fsutil.Dirs(w.root)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := fsWatcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	return nil
}
