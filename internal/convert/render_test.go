package convert

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpress/inkpress/internal/core/domain"
)

// mockImporter implements driven.ImageImporter.
type mockImporter struct {
	id   string
	err  error
	urls []string
}

func (m *mockImporter) Import(_ context.Context, url string) (string, error) {
	m.urls = append(m.urls, url)
	return m.id, m.err
}

func TestRenderParagraphAndHeading(t *testing.T) {
	out := New(nil).Render(context.Background(), []domain.Block{
		{Type: domain.BlockHeading, Level: 2, RichText: []domain.RichTextSpan{domain.Span("Intro")}},
		{Type: domain.BlockParagraph, RichText: []domain.RichTextSpan{domain.Span("Body")}},
	})

	assert.Contains(t, out, "<!-- block:heading {\"level\":2} -->")
	assert.Contains(t, out, "<h2>Intro</h2>")
	assert.Contains(t, out, "<!-- block:paragraph -->")
	assert.Contains(t, out, "<p>Body</p>")
	assert.Contains(t, out, "<!-- /block:paragraph -->")
}

func TestRenderGroupsConsecutiveListItems(t *testing.T) {
	out := New(nil).Render(context.Background(), []domain.Block{
		{Type: domain.BlockListItem, RichText: []domain.RichTextSpan{domain.Span("a")}},
		{Type: domain.BlockListItem, RichText: []domain.RichTextSpan{domain.Span("b")}},
		{Type: domain.BlockListItem, Ordered: true, RichText: []domain.RichTextSpan{domain.Span("1")}},
	})

	assert.Contains(t, out, "<ul><li>a</li><li>b</li></ul>")
	assert.Contains(t, out, "<ol><li>1</li></ol>")
	assert.Equal(t, 1, strings.Count(out, "<ul>"), "adjacent unordered items share one list")
}

func TestRenderImageWithImporter(t *testing.T) {
	importer := &mockImporter{id: "img-1.png"}
	out := New(importer).Render(context.Background(), []domain.Block{
		{Type: domain.BlockImage, URL: "https://e.co/pic.png", AltText: "alt"},
	})

	require.Equal(t, []string{"https://e.co/pic.png"}, importer.urls)
	assert.Contains(t, out, `src="local:img-1.png"`)
	assert.Contains(t, out, `alt="alt"`)
}

func TestRenderImageDegradesOnImportFailure(t *testing.T) {
	importer := &mockImporter{err: errors.New("offline")}
	out := New(importer).Render(context.Background(), []domain.Block{
		{Type: domain.BlockImage, URL: "https://e.co/pic.png"},
	})

	assert.Contains(t, out, `src="https://e.co/pic.png"`)
}

func TestRenderImageWithoutImporterKeepsURL(t *testing.T) {
	out := New(nil).Render(context.Background(), []domain.Block{
		{Type: domain.BlockImage, URL: "https://e.co/pic.png"},
	})
	assert.Contains(t, out, `src="https://e.co/pic.png"`)
}

func TestRenderCodeEscapes(t *testing.T) {
	out := New(nil).Render(context.Background(), []domain.Block{
		{Type: domain.BlockCode, Language: "html",
			RichText: []domain.RichTextSpan{domain.Span("<b>x</b>")}},
	})

	assert.Contains(t, out, `class="language-html"`)
	assert.Contains(t, out, "&lt;b&gt;x&lt;/b&gt;")
	assert.NotContains(t, out, "<b>x</b>")
}

func TestRenderVideoEmbedBookmarkDivider(t *testing.T) {
	out := New(nil).Render(context.Background(), []domain.Block{
		{Type: domain.BlockVideo, URL: "https://www.youtube.com/watch?v=x", Provider: "youtube"},
		{Type: domain.BlockEmbed, URL: "https://e.co/widget"},
		{Type: domain.BlockBookmark, URL: "https://e.co", Caption: "a site"},
		{Type: domain.BlockDivider},
	})

	assert.Contains(t, out, `"provider":"youtube"`)
	assert.Contains(t, out, "<!-- block:embed")
	assert.Contains(t, out, `<a href="https://e.co">https://e.co</a> - a site`)
	assert.Contains(t, out, "<hr/>")
}

func TestRenderTable(t *testing.T) {
	out := New(nil).Render(context.Background(), []domain.Block{
		{Type: domain.BlockTable, Rows: [][]string{{"a", "<b>"}, {"1", "2"}}},
	})

	assert.Contains(t, out, "<td>a</td><td>&lt;b&gt;</td>")
	assert.Contains(t, out, "<td>1</td><td>2</td>")
}
