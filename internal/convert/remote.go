package convert

import "github.com/inkpress/inkpress/internal/core/domain"

// RemoteBlocks maps a remote rich-block list onto the block model.
// Unrecognised or malformed block types are dropped; the returned count
// is for diagnostics only and never fails the run.
func (c *Converter) RemoteBlocks(blocks []domain.RemoteBlock) ([]domain.Block, int) {
	var out []domain.Block
	dropped := 0

	for i := range blocks {
		b, ok := mapRemoteBlock(&blocks[i])
		if !ok {
			dropped++
			continue
		}
		if b == nil {
			continue // recognised but empty, e.g. blank paragraph
		}
		out = append(out, *b)
	}
	return out, dropped
}

func mapRemoteBlock(rb *domain.RemoteBlock) (*domain.Block, bool) {
	switch rb.Type {
	case "paragraph":
		if rb.Paragraph == nil {
			return nil, false
		}
		spans := remoteSpans(rb.Paragraph.RichText)
		if blankSpans(spans) {
			return nil, true
		}
		return &domain.Block{Type: domain.BlockParagraph, RichText: spans}, true

	case "heading_1", "heading_2", "heading_3":
		rich, level := headingPayload(rb)
		if rich == nil {
			return nil, false
		}
		return &domain.Block{
			Type:     domain.BlockHeading,
			Level:    level,
			RichText: remoteSpans(rich.RichText),
		}, true

	case "bulleted_list_item":
		if rb.BulletedListItem == nil {
			return nil, false
		}
		return &domain.Block{
			Type:     domain.BlockListItem,
			RichText: remoteSpans(rb.BulletedListItem.RichText),
		}, true

	case "numbered_list_item":
		if rb.NumberedListItem == nil {
			return nil, false
		}
		return &domain.Block{
			Type:     domain.BlockListItem,
			Ordered:  true,
			RichText: remoteSpans(rb.NumberedListItem.RichText),
		}, true

	case "quote":
		if rb.Quote == nil {
			return nil, false
		}
		return &domain.Block{Type: domain.BlockQuote, RichText: remoteSpans(rb.Quote.RichText)}, true

	case "code":
		if rb.Code == nil {
			return nil, false
		}
		return &domain.Block{
			Type:     domain.BlockCode,
			Language: rb.Code.Language,
			RichText: remoteSpans(rb.Code.RichText),
		}, true

	case "image":
		if rb.Image == nil || rb.Image.URL() == "" {
			return nil, false
		}
		return &domain.Block{
			Type:    domain.BlockImage,
			URL:     rb.Image.URL(),
			Caption: renderSpans(remoteSpans(rb.Image.Caption)),
		}, true

	case "video":
		if rb.Video == nil || rb.Video.URL() == "" {
			return nil, false
		}
		url, provider := detectVideoProvider(rb.Video.URL())
		return &domain.Block{Type: domain.BlockVideo, URL: url, Provider: provider}, true

	case "embed":
		if rb.Embed == nil || rb.Embed.URL == "" {
			return nil, false
		}
		return &domain.Block{Type: domain.BlockEmbed, URL: rb.Embed.URL}, true

	case "bookmark":
		if rb.Bookmark == nil || rb.Bookmark.URL == "" {
			return nil, false
		}
		return &domain.Block{
			Type:    domain.BlockBookmark,
			URL:     rb.Bookmark.URL,
			Caption: renderSpans(remoteSpans(rb.Bookmark.Caption)),
		}, true

	case "divider":
		return &domain.Block{Type: domain.BlockDivider}, true

	default:
		return nil, false
	}
}

func headingPayload(rb *domain.RemoteBlock) (*domain.RemoteRichText, int) {
	switch rb.Type {
	case "heading_1":
		return rb.Heading1, 1
	case "heading_2":
		return rb.Heading2, 2
	default:
		return rb.Heading3, 3
	}
}

// remoteSpans converts wire spans into the internal span model.
func remoteSpans(spans []domain.RemoteSpan) []domain.RichTextSpan {
	out := make([]domain.RichTextSpan, 0, len(spans))
	for _, s := range spans {
		text := s.Text.Content
		if text == "" {
			text = s.PlainText
		}
		span := domain.RichTextSpan{
			Text:          text,
			Bold:          s.Annotations.Bold,
			Italic:        s.Annotations.Italic,
			Underline:     s.Annotations.Underline,
			Strikethrough: s.Annotations.Strikethrough,
			Code:          s.Annotations.Code,
		}
		if s.Text.Link != nil {
			span.LinkURL = s.Text.Link.URL
		}
		out = append(out, span)
	}
	return out
}
