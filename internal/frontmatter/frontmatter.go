// Package frontmatter extracts post metadata (title, author, date) from the
// YAML block at the top of a Markdown source document.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	fm "github.com/adrg/frontmatter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrBadDate indicates a date attribute that none of the accepted layouts
// could parse.
var ErrBadDate = errors.New("unparseable frontmatter date")

// Meta holds the structured metadata embedded in a source document. Date is
// kept in its raw textual form so unchanged sources re-render byte-identically.
type Meta struct {
	Title  string `yaml:"title"`
	Author string `yaml:"author"`
	Date   string `yaml:"date"`
}

// Accepted date layouts, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"January 2, 2006",
}

// Parse splits a document into its metadata and Markdown body. Documents
// without a frontmatter block yield a zero Meta and the full input as body.
func Parse(content []byte) (Meta, []byte, error) {
	var meta Meta
	body, err := fm.Parse(bytes.NewReader(content), &meta)
	if err != nil {
		return Meta{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	return meta, body, nil
}

// ParsedDate parses the raw date attribute. The zero time plus ErrBadDate is
// returned when the attribute is present but matches no accepted layout.
func (m Meta) ParsedDate() (time.Time, error) {
	if m.Date == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, m.Date); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, m.Date)
}

// DeriveTitle produces a display title from a file name when the frontmatter
// carries none: separators become spaces and words are title-cased.
func DeriveTitle(name string) string {
	cleaned := strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return cases.Title(language.English).String(cleaned)
}
