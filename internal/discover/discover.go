// Package discover walks project source directories and yields the candidate
// files matching each project's inclusion filter.
package discover

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dottxt-ai/blogbuilder/internal/config"
	"github.com/dottxt-ai/blogbuilder/internal/logfields"
)

// Sentinel errors for discovery failures. A discovery failure is fatal for the
// affected project only; other projects still run.
var (
	ErrDiscovery           = errors.New("blogbuilder: discovery error")
	ErrSourceDirUnreadable = errors.New("source directory unreadable")
	ErrInvalidRelativePath = errors.New("invalid relative path calculation")
)

// SourceFile is a discovered candidate file within a project's source tree.
type SourceFile struct {
	Path         string // full path to the file
	RelativePath string // path relative to the project source directory
	Project      string // owning project name
	Name         string // file name without extension
	Extension    string // file extension including the dot, lowercased
}

// Discover walks the project's source directory and returns every regular file
// accepted by the project's inclusion filter. The result is sorted by relative
// path, contains no duplicates, and only paths that existed at scan time.
func Discover(project config.Project) ([]SourceFile, error) {
	info, err := os.Stat(project.Source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %s: %w", ErrDiscovery, ErrSourceDirUnreadable, project.Source, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %w: %s is not a directory", ErrDiscovery, ErrSourceDirUnreadable, project.Source)
	}

	var files []SourceFile
	collect := func(path string, d fs.DirEntry) error {
		name := d.Name()
		if strings.HasPrefix(name, ".") {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if !matchesFilter(name, project.Extensions) {
			return nil
		}

		relPath, err := filepath.Rel(project.Source, path)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidRelativePath, err)
		}

		ext := strings.ToLower(filepath.Ext(name))
		files = append(files, SourceFile{
			Path:         path,
			RelativePath: relPath,
			Project:      project.Name,
			Name:         strings.TrimSuffix(name, filepath.Ext(name)),
			Extension:    ext,
		})
		slog.Debug("Discovered file", logfields.Project(project.Name), logfields.File(relPath))
		return nil
	}

	if project.Recursive {
		err = filepath.WalkDir(project.Source, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				// Hidden directories are skipped entirely.
				if path != project.Source && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			return collect(path, d)
		})
	} else {
		var entries []fs.DirEntry
		entries, err = os.ReadDir(project.Source)
		if err == nil {
			for _, entry := range entries {
				if entry.IsDir() {
					continue
				}
				if walkErr := collect(filepath.Join(project.Source, entry.Name()), entry); walkErr != nil {
					err = walkErr
					break
				}
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: walk %s: %w", ErrDiscovery, project.Source, err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].RelativePath < files[j].RelativePath })

	slog.Info("Discovery completed", logfields.Project(project.Name), slog.Int("files", len(files)))
	return files, nil
}

// matchesFilter tests a file name against a project's extension set. The
// wildcard entry accepts every file regardless of extension.
func matchesFilter(name string, extensions []string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	for _, allowed := range extensions {
		if allowed == config.AcceptAll {
			return true
		}
		if ext == strings.TrimPrefix(strings.ToLower(allowed), ".") {
			return true
		}
	}
	return false
}
