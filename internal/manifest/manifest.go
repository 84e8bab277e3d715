// Package manifest records the set of files a build wrote so the next build
// can prune outputs whose sources have disappeared.
package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dottxt-ai/blogbuilder/internal/logfields"
)

// Filename is the manifest's location relative to the output root.
const Filename = ".blogbuilder-manifest.json"

const schemaVersion = 1

// FileEntry describes one output file: its content hash and the project that
// produced it. The project name is what lets a partial build prune only its
// own stale outputs.
type FileEntry struct {
	Hash    string `json:"hash"`
	Project string `json:"project"`
}

// Manifest maps output-root-relative paths to the entries describing them.
type Manifest struct {
	SchemaVersion int                  `json:"schema_version"`
	BuildID       string               `json:"build_id"`
	BuiltAt       time.Time            `json:"built_at"`
	Files         map[string]FileEntry `json:"files"`

	mu sync.Mutex
}

// New returns an empty manifest for the current build.
func New(buildID string) *Manifest {
	return &Manifest{
		SchemaVersion: schemaVersion,
		BuildID:       buildID,
		BuiltAt:       time.Now().UTC(),
		Files:         map[string]FileEntry{},
	}
}

// Record hashes a written output file and adds it under the producing
// project's name. Safe for concurrent use.
func (m *Manifest) Record(root, path, project string) error {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return fmt.Errorf("manifest: relative path for %s: %w", path, err)
	}
	sum, err := HashFile(path)
	if err != nil {
		return fmt.Errorf("manifest: hash %s: %w", path, err)
	}

	m.mu.Lock()
	m.Files[filepath.ToSlash(rel)] = FileEntry{Hash: sum, Project: project}
	m.mu.Unlock()
	return nil
}

// Load reads the previous manifest from the output root. A missing manifest
// yields an empty one, not an error.
func Load(root string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(root, Filename))
	if os.IsNotExist(err) {
		return New(""), nil
	}
	if err != nil {
		return nil, fmt.Errorf("manifest: read: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest: unmarshal: %w", err)
	}
	if m.Files == nil {
		m.Files = map[string]FileEntry{}
	}
	return &m, nil
}

// Write persists the manifest into the output root.
func (m *Manifest) Write(root string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("manifest: marshal: %w", err)
	}
	if err := os.WriteFile(filepath.Join(root, Filename), append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("manifest: write: %w", err)
	}
	return nil
}

// Prune removes files the previous manifest recorded for a rebuilt project
// that the current build did not write. Entries belonging to projects outside
// the rebuilt set are carried into the current manifest untouched, so a
// partial build leaves the rest of the site intact and still accounted for.
// Returns the removed relative paths.
func Prune(root string, previous, current *Manifest, rebuilt map[string]bool) ([]string, error) {
	var removed []string
	for rel, entry := range previous.Files {
		if _, kept := current.Files[rel]; kept {
			continue
		}
		if !rebuilt[entry.Project] {
			current.Files[rel] = entry
			continue
		}
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.Remove(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return removed, fmt.Errorf("manifest: prune %s: %w", rel, err)
		}
		removed = append(removed, rel)
		slog.Debug("Pruned stale output", logfields.Path(rel))
	}
	return removed, nil
}

// HashFile computes the sha256 of a file's content.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
