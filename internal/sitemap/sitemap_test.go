package sitemap

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dottxt-ai/blogbuilder/internal/config"
	"github.com/dottxt-ai/blogbuilder/internal/markdown"
	"github.com/dottxt-ai/blogbuilder/internal/page"
	"github.com/dottxt-ai/blogbuilder/internal/publish"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSortAntiChronological_MostRecentFirst(t *testing.T) {
	entries := []Entry{
		{Title: "Post B", Date: day(2024, 2, 2), RawDate: "2024-02-02"},
		{Title: "Post A", Date: day(2024, 3, 15), RawDate: "2024-03-15"},
	}
	SortAntiChronological(entries)

	require.Equal(t, "Post A", entries[0].Title)
	require.Equal(t, "Post B", entries[1].Title)
}

func TestSortAntiChronological_StableForEqualDates(t *testing.T) {
	entries := []Entry{
		{Title: "first", Date: day(2024, 1, 1)},
		{Title: "second", Date: day(2024, 1, 1)},
		{Title: "newest", Date: day(2024, 6, 1)},
		{Title: "third", Date: day(2024, 1, 1)},
	}
	SortAntiChronological(entries)

	require.Equal(t, "newest", entries[0].Title)
	require.Equal(t, "first", entries[1].Title)
	require.Equal(t, "second", entries[2].Title)
	require.Equal(t, "third", entries[3].Title)
}

func TestFormatEntry_Placeholders(t *testing.T) {
	e := Entry{RawDate: "2024-03-15", Title: "Hello", Link: "/hello.html"}

	require.Equal(t, "2024-03-15 - Hello", FormatEntry("{date} - {title}", e))
	require.Equal(t, "2024-03-15 - [Hello](/hello.html)", FormatEntry("{date} - [{title}]({link})", e))
}

func testGenerator(t *testing.T, entryFormat string) *Generator {
	t.Helper()
	tpl, err := page.New(config.SiteConfig{Title: "Blog"}, config.TemplateConfig{})
	require.NoError(t, err)
	cfg := config.SitemapConfig{
		Title:       "Blog Index",
		Filename:    "index.html",
		EntryFormat: entryFormat,
		Project:     "posts",
	}
	return New(cfg, tpl, markdown.NewRenderer())
}

func TestGenerate_WritesSortedHTMLList(t *testing.T) {
	out := t.TempDir()
	gen := testGenerator(t, "{date} - [{title}]({link})")

	pages := []publish.RenderedPage{
		{Title: "Post B", Date: day(2024, 2, 2), RawDate: "2024-02-02", Link: "/post-b.html"},
		{Title: "Post A", Date: day(2024, 3, 15), RawDate: "2024-03-15", Link: "/post-a.html"},
	}

	pg, err := gen.Generate(out, pages)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(out, "index.html"), pg.OutputPath)

	html, err := os.ReadFile(pg.OutputPath)
	require.NoError(t, err)
	body := string(html)

	// Rendered as an HTML list with links, not raw markup.
	require.Contains(t, body, `<a href="/post-a.html">Post A</a>`)
	require.Contains(t, body, "<ul>")
	require.NotContains(t, body, "[Post A](/post-a.html)")

	// Anti-chronological: Post A precedes Post B.
	idxA := indexOf(t, body, "Post A")
	idxB := indexOf(t, body, "Post B")
	require.Less(t, idxA, idxB)
}

func TestGenerate_PageWithoutDate_IsConfigurationError(t *testing.T) {
	gen := testGenerator(t, "{date} - {title}")

	_, err := gen.Generate(t.TempDir(), []publish.RenderedPage{{Title: "No Date"}})
	require.Error(t, err)
	require.True(t, errors.Is(err, config.ErrConfiguration))
}

func TestGenerate_EmptyPostList_StillWritesIndex(t *testing.T) {
	out := t.TempDir()
	gen := testGenerator(t, "{date} - {title}")

	pg, err := gen.Generate(out, nil)
	require.NoError(t, err)
	require.FileExists(t, pg.OutputPath)
}

func indexOf(t *testing.T, haystack, needle string) int {
	t.Helper()
	idx := strings.Index(haystack, needle)
	require.GreaterOrEqual(t, idx, 0, "%q not found", needle)
	return idx
}
