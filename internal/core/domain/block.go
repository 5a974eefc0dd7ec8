package domain

// BlockType identifies a structural unit of normalised document content.
type BlockType string

// Block variants produced by the converter.
const (
	BlockParagraph BlockType = "paragraph"
	BlockHeading   BlockType = "heading"
	BlockListItem  BlockType = "list_item"
	BlockQuote     BlockType = "quote"
	BlockCode      BlockType = "code"
	BlockImage     BlockType = "image"
	BlockVideo     BlockType = "video"
	BlockEmbed     BlockType = "embed"
	BlockBookmark  BlockType = "bookmark"
	BlockTable     BlockType = "table"
	BlockDivider   BlockType = "divider"
)

// Block is one unit of normalised document content. A Block sequence is
// ordered; it is only meaningful in that order.
type Block struct {
	// Type selects which of the remaining fields are meaningful.
	Type BlockType

	// RichText is the formatted text content for paragraph, heading,
	// list item, quote and code blocks.
	RichText []RichTextSpan

	// Level is the heading level (1-3).
	Level int

	// Ordered marks a list item as belonging to a numbered list.
	Ordered bool

	// Language is the code fence language, when known.
	Language string

	// URL is the target for image, video, embed and bookmark blocks.
	URL string

	// AltText is the image alternative text.
	AltText string

	// Caption is the image or bookmark caption.
	Caption string

	// Provider is the recognised video host ("youtube", "vimeo"), if any.
	Provider string

	// Rows holds table content verbatim, row by row, cell by cell.
	Rows [][]string
}

// RichTextSpan is a run of text carrying uniform formatting annotations.
// Multiple spans concatenate into one rendered string per block.
type RichTextSpan struct {
	Text          string
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
	Code          bool

	// LinkURL, when set, wraps the fully annotated span in a hyperlink.
	LinkURL string
}

// PlainText concatenates the span texts without any formatting.
func PlainText(spans []RichTextSpan) string {
	var out string
	for _, s := range spans {
		out += s.Text
	}
	return out
}

// Span is a convenience constructor for an unformatted span.
func Span(text string) RichTextSpan {
	return RichTextSpan{Text: text}
}
