package preview

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/require"

	"github.com/dottxt-ai/blogbuilder/internal/config"
)

func newWatcher(t *testing.T) *fsnotify.Watcher {
	t.Helper()
	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	t.Cleanup(func() { watcher.Close() })
	return watcher
}

func TestWatchProject_RecursiveAddsSubdirectories(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	watcher := newWatcher(t)
	project := config.Project{Name: "static", Source: root, Recursive: true}
	require.NoError(t, watchProject(watcher, project))

	require.Contains(t, watcher.WatchList(), root)
	require.Contains(t, watcher.WatchList(), nested)
}

func TestWatchProject_NonRecursiveWatchesSourceOnly(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "sub")
	require.NoError(t, os.MkdirAll(nested, 0755))

	watcher := newWatcher(t)
	project := config.Project{Name: "css", Source: root}
	require.NoError(t, watchProject(watcher, project))

	require.Contains(t, watcher.WatchList(), root)
	require.NotContains(t, watcher.WatchList(), nested)
}

func TestWatchNewDir_AddsDirectoriesCreatedAfterStartup(t *testing.T) {
	root := t.TempDir()
	other := t.TempDir()
	cfg := &config.Config{Projects: []config.Project{
		{Name: "static", Source: root, Recursive: true},
		{Name: "css", Source: other},
	}}

	watcher := newWatcher(t)
	require.NoError(t, watchProject(watcher, cfg.Projects[0]))

	// A directory tree appearing under the recursive source gets watched,
	// including its own subdirectories.
	created := filepath.Join(root, "new", "deep")
	require.NoError(t, os.MkdirAll(created, 0755))
	watchNewDir(watcher, cfg, filepath.Join(root, "new"))
	require.Contains(t, watcher.WatchList(), filepath.Join(root, "new"))
	require.Contains(t, watcher.WatchList(), created)

	// Directories under a non-recursive source are ignored.
	outside := filepath.Join(other, "sub")
	require.NoError(t, os.MkdirAll(outside, 0755))
	watchNewDir(watcher, cfg, outside)
	require.NotContains(t, watcher.WatchList(), outside)

	// Plain files are ignored too.
	file := filepath.Join(root, "note.md")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	watchNewDir(watcher, cfg, file)
	require.NotContains(t, watcher.WatchList(), file)
}

func TestUnderDir(t *testing.T) {
	require.True(t, underDir("/a/b", "/a/b"))
	require.True(t, underDir("/a/b", "/a/b/c"))
	require.False(t, underDir("/a/b", "/a"))
	require.False(t, underDir("/a/b", "/a/bc"))
}
