// Package sitemap generates the index page listing published posts in
// anti-chronological order.
package sitemap

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dottxt-ai/blogbuilder/internal/config"
	"github.com/dottxt-ai/blogbuilder/internal/markdown"
	"github.com/dottxt-ai/blogbuilder/internal/page"
	"github.com/dottxt-ai/blogbuilder/internal/publish"
)

// Entry is one sitemap line derived from a rendered page.
type Entry struct {
	Date    time.Time
	RawDate string
	Link    string
	Title   string
}

// Generator renders the sitemap through the same template and Markdown
// pipeline as regular pages so the index is real HTML, not raw markup.
type Generator struct {
	cfg      config.SitemapConfig
	tpl      *page.Template
	renderer *markdown.Renderer
}

// New creates a sitemap generator for one build invocation.
func New(cfg config.SitemapConfig, tpl *page.Template, renderer *markdown.Renderer) *Generator {
	return &Generator{cfg: cfg, tpl: tpl, renderer: renderer}
}

// Entries derives one entry per rendered page, keeping the input order.
func Entries(pages []publish.RenderedPage) []Entry {
	entries := make([]Entry, 0, len(pages))
	for _, p := range pages {
		entries = append(entries, Entry{Date: p.Date, RawDate: p.RawDate, Link: p.Link, Title: p.Title})
	}
	return entries
}

// SortAntiChronological orders entries most recent first. The sort is stable:
// entries with equal dates keep their relative order from the input list.
func SortAntiChronological(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
}

// FormatEntry expands the configured per-entry format. Placeholders: {date},
// {title}, {link}.
func FormatEntry(format string, e Entry) string {
	r := strings.NewReplacer(
		"{date}", e.RawDate,
		"{title}", e.Title,
		"{link}", e.Link,
	)
	return r.Replace(format)
}

// Generate writes the sitemap for the given rendered pages and returns the
// resulting page. Pages without a date cannot be sorted anti-chronologically;
// that is a configuration error, not a per-file one.
func (g *Generator) Generate(outputRoot string, pages []publish.RenderedPage) (*publish.RenderedPage, error) {
	for _, p := range pages {
		if p.RawDate == "" {
			return nil, fmt.Errorf("%w: page %q has no date, sitemap project needs with_date", config.ErrConfiguration, p.Title)
		}
	}

	entries := Entries(pages)
	SortAntiChronological(entries)

	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString("- ")
		sb.WriteString(FormatEntry(g.cfg.EntryFormat, e))
		sb.WriteString("\n")
	}

	fragment, err := g.renderer.Render([]byte(sb.String()))
	if err != nil {
		return nil, fmt.Errorf("render sitemap list: %w", err)
	}

	doc, err := g.tpl.Render(g.cfg.Title, "", "", false, fragment)
	if err != nil {
		return nil, fmt.Errorf("render sitemap page: %w", err)
	}

	outPath := filepath.Join(outputRoot, g.cfg.Filename)
	if err := writeSitemap(outPath, doc); err != nil {
		return nil, err
	}

	return &publish.RenderedPage{
		Project:    g.cfg.Project,
		OutputPath: outPath,
		Link:       "/" + filepath.ToSlash(g.cfg.Filename),
		Title:      g.cfg.Title,
	}, nil
}
