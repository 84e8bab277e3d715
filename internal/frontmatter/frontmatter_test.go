package frontmatter

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParse_FullFrontmatter(t *testing.T) {
	input := []byte("---\ntitle: Hello World\nauthor: Jane\ndate: 2024-03-15\n---\n# Heading\n\nBody text.\n")

	meta, body, err := Parse(input)
	require.NoError(t, err)
	require.Equal(t, "Hello World", meta.Title)
	require.Equal(t, "Jane", meta.Author)
	require.Equal(t, "2024-03-15", meta.Date)
	require.Equal(t, "# Heading\n\nBody text.\n", string(body))
}

func TestParse_NoFrontmatter_ReturnsFullBody(t *testing.T) {
	input := []byte("# Just Markdown\n")

	meta, body, err := Parse(input)
	require.NoError(t, err)
	require.Equal(t, Meta{}, meta)
	require.Equal(t, input, body)
}

func TestParse_MalformedYAML_ReturnsError(t *testing.T) {
	input := []byte("---\ntitle: [unclosed\n---\nbody\n")

	_, _, err := Parse(input)
	require.Error(t, err)
}

func TestParsedDate_RoundTripsExactly(t *testing.T) {
	meta := Meta{Date: "2024-03-15"}

	d, err := meta.ParsedDate()
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), d)
	// The raw attribute is preserved verbatim for rendering.
	require.Equal(t, "2024-03-15", meta.Date)
}

func TestParsedDate_AcceptsMultipleLayouts(t *testing.T) {
	for _, raw := range []string{
		"2024-03-15",
		"2024-03-15T10:30:00Z",
		"2024-03-15 10:30:00",
		"March 15, 2024",
	} {
		d, err := (Meta{Date: raw}).ParsedDate()
		require.NoError(t, err, "layout %q", raw)
		require.Equal(t, 2024, d.Year())
		require.Equal(t, time.March, d.Month())
		require.Equal(t, 15, d.Day())
	}
}

func TestParsedDate_Empty_IsZeroWithoutError(t *testing.T) {
	d, err := (Meta{}).ParsedDate()
	require.NoError(t, err)
	require.True(t, d.IsZero())
}

func TestParsedDate_Garbage_ReturnsErrBadDate(t *testing.T) {
	_, err := (Meta{Date: "the ides of march"}).ParsedDate()
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrBadDate))
}

func TestDeriveTitle_FromFileName(t *testing.T) {
	require.Equal(t, "Getting Started", DeriveTitle("getting-started"))
	require.Equal(t, "My First Post", DeriveTitle("my_first_post"))
	require.Equal(t, "Hello", DeriveTitle("hello"))
}
