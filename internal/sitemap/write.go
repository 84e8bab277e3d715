package sitemap

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dottxt-ai/blogbuilder/internal/publish"
)

func writeSitemap(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("%w: create directory for %s: %w", publish.ErrIO, path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: write %s: %w", publish.ErrIO, path, err)
	}
	return nil
}
