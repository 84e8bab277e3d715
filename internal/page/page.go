// Package page wraps rendered HTML fragments in the site-wide page template.
package page

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/dottxt-ai/blogbuilder/internal/config"
)

// layout is the built-in page shell. The head include and postamble are opaque
// configured snippets (stylesheets, analytics, subscription forms).
const layout = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.PageTitle}}{{if ne .PageTitle .SiteTitle}} | {{.SiteTitle}}{{end}}</title>
{{- if .Author}}
<meta name="author" content="{{.Author}}">
{{- end}}
{{.HeadInclude}}
</head>
<body>
<main>
<article>
{{- if .ShowHeader}}
<header>
<h1>{{.PageTitle}}</h1>
{{- if .Date}}
<time datetime="{{.Date}}">{{.Date}}</time>
{{- end}}
</header>
{{- end}}
{{.Body}}
</article>
</main>
{{.Postamble}}
</body>
</html>
`

// Data is the template context for a single generated page.
type Data struct {
	SiteTitle   string
	PageTitle   string
	Author      string
	Date        string
	ShowHeader  bool
	HeadInclude template.HTML
	Postamble   template.HTML
	Body        template.HTML
}

// Template renders complete HTML documents. Safe for concurrent use once built.
type Template struct {
	tpl  *template.Template
	site config.SiteConfig
	snip config.TemplateConfig
}

// New compiles the page template for one build invocation.
func New(site config.SiteConfig, snippets config.TemplateConfig) (*Template, error) {
	tpl, err := template.New("page").Parse(layout)
	if err != nil {
		return nil, fmt.Errorf("parse page layout: %w", err)
	}
	return &Template{tpl: tpl, site: site, snip: snippets}, nil
}

// Render produces a full HTML document around an already-rendered body
// fragment. An empty title falls back to the site title.
func (t *Template) Render(title, author, date string, showHeader bool, body []byte) ([]byte, error) {
	if title == "" {
		title = t.site.Title
	}
	data := Data{
		SiteTitle:   t.site.Title,
		PageTitle:   title,
		Author:      author,
		Date:        date,
		ShowHeader:  showHeader,
		HeadInclude: template.HTML(t.snip.HeadInclude),
		Postamble:   template.HTML(t.snip.Postamble),
		Body:        template.HTML(body),
	}

	var buf bytes.Buffer
	if err := t.tpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute page template: %w", err)
	}
	return buf.Bytes(), nil
}
