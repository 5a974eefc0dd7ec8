package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkpress/inkpress/internal/core/domain"
)

func TestRenderSpansWrapOrder(t *testing.T) {
	tests := []struct {
		name  string
		spans []domain.RichTextSpan
		want  string
	}{
		{
			name:  "plain",
			spans: []domain.RichTextSpan{{Text: "hello"}},
			want:  "hello",
		},
		{
			name:  "adjacent formatted spans",
			spans: []domain.RichTextSpan{{Text: "A", Bold: true}, {Text: "B", Italic: true}},
			want:  "<strong>A</strong><em>B</em>",
		},
		{
			name:  "bold italic nests italic outside bold",
			spans: []domain.RichTextSpan{{Text: "x", Bold: true, Italic: true}},
			want:  "<em><strong>x</strong></em>",
		},
		{
			name:  "code stays innermost",
			spans: []domain.RichTextSpan{{Text: "x", Bold: true, Code: true}},
			want:  "<strong><code>x</code></strong>",
		},
		{
			name:  "link wraps everything",
			spans: []domain.RichTextSpan{{Text: "x", Bold: true, LinkURL: "https://example.com"}},
			want:  `<a href="https://example.com"><strong>x</strong></a>`,
		},
		{
			name: "all annotations",
			spans: []domain.RichTextSpan{{
				Text: "x", Bold: true, Italic: true, Underline: true,
				Strikethrough: true, Code: true, LinkURL: "https://e.co",
			}},
			want: `<a href="https://e.co"><del><u><em><strong><code>x</code></strong></em></u></del></a>`,
		},
		{
			name:  "text is escaped",
			spans: []domain.RichTextSpan{{Text: "<script>&"}},
			want:  "&lt;script&gt;&amp;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, renderSpans(tt.spans))
		})
	}
}

func TestDetectVideoProvider(t *testing.T) {
	url, provider := detectVideoProvider("https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	assert.Equal(t, "youtube", provider)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", url)

	url, provider = detectVideoProvider("https://youtu.be/dQw4w9WgXcQ")
	assert.Equal(t, "youtube", provider)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", url, "short links canonicalise")

	url, provider = detectVideoProvider("https://vimeo.com/123456")
	assert.Equal(t, "vimeo", provider)
	assert.Equal(t, "https://vimeo.com/123456", url)

	url, provider = detectVideoProvider("https://example.com/clip.mp4")
	assert.Empty(t, provider)
	assert.Equal(t, "https://example.com/clip.mp4", url)
}
