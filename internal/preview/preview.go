// Package preview serves the built site locally and rebuilds when sources
// change.
package preview

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dottxt-ai/blogbuilder/internal/build"
	"github.com/dottxt-ai/blogbuilder/internal/config"
	"github.com/dottxt-ai/blogbuilder/internal/logfields"
)

// debounce window between a filesystem event and the rebuild it triggers, so
// editor save bursts produce one build.
const rebuildDelay = 300 * time.Millisecond

// Serve builds the site, serves the output directory over HTTP, and rebuilds
// whenever a project source file changes. Blocks until ctx is canceled.
func Serve(ctx context.Context, cfg *config.Config, opts build.Options, port int) error {
	if _, err := build.Run(ctx, cfg, opts); err != nil {
		// A failing initial build still serves whatever was produced so the
		// author can inspect partial output while fixing sources.
		slog.Warn("Initial build reported errors", logfields.Error(err))
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	for _, project := range cfg.Projects {
		if err := watchProject(watcher, project); err != nil {
			slog.Warn("Cannot watch project source", logfields.Project(project.Name), logfields.Error(err))
		}
	}

	outputRoot := cfg.Output.Directory
	if opts.OutputDir != "" {
		outputRoot = opts.OutputDir
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", port),
		Handler: http.FileServer(http.Dir(outputRoot)),
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Preview server listening", slog.String("addr", "http://"+srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var timer *time.Timer
	rebuild := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		case err := <-errCh:
			return fmt.Errorf("preview server: %w", err)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				// fsnotify watches are per-directory, so a subdirectory
				// created under a recursive project must be registered as
				// soon as it appears or its content never triggers rebuilds.
				watchNewDir(watcher, cfg, event.Name)
			}
			slog.Debug("Source changed", logfields.Path(event.Name))
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(rebuildDelay, func() {
				select {
				case rebuild <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		case <-rebuild:
			slog.Info("Rebuilding after source change")
			if _, err := build.Run(ctx, cfg, opts); err != nil {
				slog.Warn("Rebuild reported errors", logfields.Error(err))
			}
		}
	}
}

// watchProject registers a project's source directory, including subdirectories
// for recursive projects (fsnotify watches are not recursive by themselves).
func watchProject(watcher *fsnotify.Watcher, project config.Project) error {
	if !project.Recursive {
		return watcher.Add(project.Source)
	}
	return watchTree(watcher, project.Source)
}

// watchTree registers a directory and everything below it.
func watchTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}

// watchNewDir registers a freshly created directory when it lies inside a
// recursive project's source tree. Non-directories and paths outside every
// recursive source are ignored.
func watchNewDir(watcher *fsnotify.Watcher, cfg *config.Config, path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	for _, project := range cfg.Projects {
		if !project.Recursive || !underDir(project.Source, path) {
			continue
		}
		if err := watchTree(watcher, path); err != nil {
			slog.Warn("Cannot watch new directory", logfields.Path(path), logfields.Error(err))
		}
		return
	}
}

// underDir reports whether path is root itself or lies below it.
func underDir(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
