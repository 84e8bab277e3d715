package discover

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dottxt-ai/blogbuilder/internal/config"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func TestDiscover_ExtensionSetFilter(t *testing.T) {
	src := t.TempDir()
	writeFiles(t, src, map[string]string{
		"a.css": "body {}",
		"b.txt": "notes",
		"c.png": "\x89PNG",
	})

	files, err := Discover(config.Project{
		Name:       "assets",
		Source:     src,
		Extensions: []string{"css", "js", "png"},
	})
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, f.RelativePath)
	}
	require.Equal(t, []string{"a.css", "c.png"}, names)
}

func TestDiscover_NonRecursiveIgnoresSubdirectories(t *testing.T) {
	src := t.TempDir()
	writeFiles(t, src, map[string]string{
		"top.md":          "# top",
		"sub/nested.md":   "# nested",
		"sub/deep/own.md": "# deep",
	})

	files, err := Discover(config.Project{
		Name:       "posts",
		Source:     src,
		Extensions: []string{"md"},
		Recursive:  false,
	})
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Equal(t, "top.md", files[0].RelativePath)
}

func TestDiscover_RecursiveIncludesSubdirectories(t *testing.T) {
	src := t.TempDir()
	writeFiles(t, src, map[string]string{
		"top.md":        "# top",
		"sub/nested.md": "# nested",
	})

	files, err := Discover(config.Project{
		Name:       "posts",
		Source:     src,
		Extensions: []string{"md"},
		Recursive:  true,
	})
	require.NoError(t, err)
	require.Len(t, files, 2)
}

func TestDiscover_AcceptAllWildcard(t *testing.T) {
	src := t.TempDir()
	writeFiles(t, src, map[string]string{
		"a.css":    "body {}",
		"b.txt":    "notes",
		"noext":    "raw",
		"c.tar.gz": "bin",
	})

	files, err := Discover(config.Project{
		Name:       "static",
		Source:     src,
		Extensions: []string{config.AcceptAll},
	})
	require.NoError(t, err)
	require.Len(t, files, 4)
}

func TestDiscover_SkipsHiddenFilesAndDirectories(t *testing.T) {
	src := t.TempDir()
	writeFiles(t, src, map[string]string{
		"visible.md":       "# ok",
		".hidden.md":       "# no",
		".git/objects.md":  "# no",
		"sub/.DS_Store.md": "# no",
	})

	files, err := Discover(config.Project{
		Name:       "posts",
		Source:     src,
		Extensions: []string{"md"},
		Recursive:  true,
	})
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Equal(t, "visible.md", files[0].RelativePath)
}

func TestDiscover_DeterministicOrderNoDuplicates(t *testing.T) {
	src := t.TempDir()
	writeFiles(t, src, map[string]string{
		"z.md": "z", "a.md": "a", "m/b.md": "b", "m/a.md": "a",
	})

	project := config.Project{Name: "posts", Source: src, Extensions: []string{"md"}, Recursive: true}

	first, err := Discover(project)
	require.NoError(t, err)
	second, err := Discover(project)
	require.NoError(t, err)
	require.Equal(t, first, second)

	rels := make([]string, len(first))
	seen := map[string]struct{}{}
	for i, f := range first {
		rels[i] = f.RelativePath
		_, dup := seen[f.RelativePath]
		require.False(t, dup, "duplicate path %s", f.RelativePath)
		seen[f.RelativePath] = struct{}{}
	}
	require.True(t, sort.StringsAreSorted(rels))
}

func TestDiscover_MissingSourceDir_ReturnsDiscoveryError(t *testing.T) {
	_, err := Discover(config.Project{
		Name:       "posts",
		Source:     filepath.Join(t.TempDir(), "absent"),
		Extensions: []string{"md"},
	})
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrDiscovery))
}
