package convert

import (
	"html"
	"regexp"
	"strings"

	"github.com/inkpress/inkpress/internal/core/domain"
	"github.com/inkpress/inkpress/internal/core/ports/driven"
)

// Converter turns source content into domain.Block sequences and
// renders them. The image importer is optional; when nil, image blocks
// keep their external URLs.
type Converter struct {
	images driven.ImageImporter
}

// New creates a converter. images may be nil.
func New(images driven.ImageImporter) *Converter {
	return &Converter{images: images}
}

// renderSpans concatenates formatted spans into one string. Annotations
// wrap outward-to-inward strikethrough, underline, italic, bold, code;
// a hyperlink wraps the fully annotated span last.
func renderSpans(spans []domain.RichTextSpan) string {
	var b strings.Builder
	for _, s := range spans {
		text := html.EscapeString(s.Text)
		if s.Code {
			text = "<code>" + text + "</code>"
		}
		if s.Bold {
			text = "<strong>" + text + "</strong>"
		}
		if s.Italic {
			text = "<em>" + text + "</em>"
		}
		if s.Underline {
			text = "<u>" + text + "</u>"
		}
		if s.Strikethrough {
			text = "<del>" + text + "</del>"
		}
		if s.LinkURL != "" {
			text = `<a href="` + html.EscapeString(s.LinkURL) + `">` + text + "</a>"
		}
		b.WriteString(text)
	}
	return b.String()
}

var (
	youtubeRe = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([A-Za-z0-9_-]+)`)
	vimeoRe   = regexp.MustCompile(`vimeo\.com/(\d+)`)
)

// detectVideoProvider recognises known video hosts and returns a
// canonical URL plus the provider slug. Unknown hosts pass through
// with an empty provider.
func detectVideoProvider(url string) (string, string) {
	if m := youtubeRe.FindStringSubmatch(url); m != nil {
		return "https://www.youtube.com/watch?v=" + m[1], "youtube"
	}
	if m := vimeoRe.FindStringSubmatch(url); m != nil {
		return "https://vimeo.com/" + m[1], "vimeo"
	}
	return url, ""
}

// blankSpans reports whether the concatenated span text is whitespace
// only. Blank paragraphs are dropped, not emitted.
func blankSpans(spans []domain.RichTextSpan) bool {
	return strings.TrimSpace(domain.PlainText(spans)) == ""
}
