// Package markdown converts Markdown bodies (frontmatter already removed) to
// HTML fragments.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Renderer wraps a configured Goldmark instance. It is safe for concurrent use.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer builds the renderer used for all post bodies: GFM tables and
// strikethrough, footnotes, typographic punctuation, stable heading anchors.
// Raw HTML passes through, posts are trusted input.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Footnote, extension.Typographer),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
		),
	}
}

// Render converts a Markdown body to an HTML fragment.
func (r *Renderer) Render(body []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("convert markdown: %w", err)
	}
	return buf.Bytes(), nil
}
