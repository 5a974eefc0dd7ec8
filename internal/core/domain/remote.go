package domain

// RemoteItem is a read-only snapshot of one unit of external content
// eligible for sync. It is fetched per sync pass and never mutated.
type RemoteItem struct {
	// RemoteID is the item's identifier in the remote source.
	RemoteID string

	// LastEditedAt is the remote edit timestamp, kept in its wire form
	// (RFC 3339 UTC) so ledger comparisons stay lexical.
	LastEditedAt string

	// Title is the extracted item title.
	Title string
}

// RemoteDatabase is a container of remote items discoverable via search.
type RemoteDatabase struct {
	ID    string
	Title string
}

// RemoteBlock is one rich block as delivered by the remote source. The
// Type tag selects which payload pointer is populated.
type RemoteBlock struct {
	Type string `json:"type"`

	Paragraph        *RemoteRichText `json:"paragraph,omitempty"`
	Heading1         *RemoteRichText `json:"heading_1,omitempty"`
	Heading2         *RemoteRichText `json:"heading_2,omitempty"`
	Heading3         *RemoteRichText `json:"heading_3,omitempty"`
	BulletedListItem *RemoteRichText `json:"bulleted_list_item,omitempty"`
	NumberedListItem *RemoteRichText `json:"numbered_list_item,omitempty"`
	Quote            *RemoteRichText `json:"quote,omitempty"`
	Code             *RemoteCode     `json:"code,omitempty"`
	Image            *RemoteFile     `json:"image,omitempty"`
	Video            *RemoteFile     `json:"video,omitempty"`
	Embed            *RemoteLink     `json:"embed,omitempty"`
	Bookmark         *RemoteLink     `json:"bookmark,omitempty"`
}

// RemoteRichText is the payload of text-bearing remote blocks.
type RemoteRichText struct {
	RichText []RemoteSpan `json:"rich_text"`
}

// RemoteCode is the payload of a remote code block.
type RemoteCode struct {
	RichText []RemoteSpan `json:"rich_text"`
	Language string       `json:"language"`
}

// RemoteFile is the payload of remote image and video blocks. The URL
// lives either under "file" (source-hosted) or "external".
type RemoteFile struct {
	File     *RemoteURL   `json:"file"`
	External *RemoteURL   `json:"external"`
	Caption  []RemoteSpan `json:"caption"`
}

// URL returns the effective URL regardless of hosting.
func (f *RemoteFile) URL() string {
	if f.File != nil {
		return f.File.URL
	}
	if f.External != nil {
		return f.External.URL
	}
	return ""
}

// RemoteLink is the payload of embed and bookmark blocks.
type RemoteLink struct {
	URL     string       `json:"url"`
	Caption []RemoteSpan `json:"caption"`
}

// RemoteURL wraps a bare URL field.
type RemoteURL struct {
	URL string `json:"url"`
}

// RemoteSpan is one formatted text run in a remote rich-text list.
type RemoteSpan struct {
	Text struct {
		Content string     `json:"content"`
		Link    *RemoteURL `json:"link"`
	} `json:"text"`
	Annotations RemoteAnnotations `json:"annotations"`
	PlainText   string            `json:"plain_text"`
}

// RemoteAnnotations are the formatting flags carried by a remote span.
type RemoteAnnotations struct {
	Bold          bool `json:"bold"`
	Italic        bool `json:"italic"`
	Strikethrough bool `json:"strikethrough"`
	Underline     bool `json:"underline"`
	Code          bool `json:"code"`
}
