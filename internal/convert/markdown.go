package convert

import (
	"bytes"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/inkpress/inkpress/internal/core/domain"
)

// Markdown parses src with GFM extensions and maps the node tree onto
// the block model. Node types without a block mapping are dropped
// silently.
func (c *Converter) Markdown(src []byte) ([]domain.Block, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	root := md.Parser().Parse(text.NewReader(src))

	var blocks []domain.Block
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		blocks = append(blocks, mapNode(n, src)...)
	}
	return blocks, nil
}

// mapNode converts one top-level node into zero or more blocks.
func mapNode(n ast.Node, src []byte) []domain.Block {
	switch node := n.(type) {
	case *ast.Heading:
		level := node.Level
		if level > 3 {
			level = 3
		}
		return []domain.Block{{
			Type:     domain.BlockHeading,
			Level:    level,
			RichText: inlineSpans(node, src),
		}}

	case *ast.Paragraph:
		// A paragraph holding a single image is an image block, not
		// a text block.
		if img, ok := soleImage(node); ok {
			return []domain.Block{imageBlock(img, src)}
		}
		spans := inlineSpans(node, src)
		if blankSpans(spans) {
			return nil
		}
		return []domain.Block{{Type: domain.BlockParagraph, RichText: spans}}

	case *ast.List:
		return listItems(node, src)

	case *ast.Blockquote:
		var spans []domain.RichTextSpan
		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			if len(spans) > 0 {
				spans = append(spans, domain.Span(" "))
			}
			spans = append(spans, inlineSpans(child, src)...)
		}
		if blankSpans(spans) {
			return nil
		}
		return []domain.Block{{Type: domain.BlockQuote, RichText: spans}}

	case *ast.FencedCodeBlock:
		return []domain.Block{{
			Type:     domain.BlockCode,
			Language: string(node.Language(src)),
			RichText: []domain.RichTextSpan{domain.Span(blockLines(node, src))},
		}}

	case *ast.CodeBlock:
		return []domain.Block{{
			Type:     domain.BlockCode,
			RichText: []domain.RichTextSpan{domain.Span(blockLines(node, src))},
		}}

	case *ast.ThematicBreak:
		return []domain.Block{{Type: domain.BlockDivider}}

	case *east.Table:
		return []domain.Block{tableBlock(node, src)}

	default:
		return nil
	}
}

// listItems flattens a list into individual list-item blocks, recursing
// into nested lists.
func listItems(list *ast.List, src []byte) []domain.Block {
	var blocks []domain.Block
	ordered := list.IsOrdered()

	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		for child := item.FirstChild(); child != nil; child = child.NextSibling() {
			switch c := child.(type) {
			case *ast.List:
				blocks = append(blocks, listItems(c, src)...)
			default:
				spans := inlineSpans(child, src)
				if blankSpans(spans) {
					continue
				}
				blocks = append(blocks, domain.Block{
					Type:     domain.BlockListItem,
					Ordered:  ordered,
					RichText: spans,
				})
			}
		}
	}
	return blocks
}

// tableBlock preserves row and cell structure verbatim.
func tableBlock(table *east.Table, src []byte) domain.Block {
	var rows [][]string
	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, domain.PlainText(inlineSpans(cell, src)))
		}
		rows = append(rows, cells)
	}
	return domain.Block{Type: domain.BlockTable, Rows: rows}
}

// soleImage reports whether a paragraph consists of exactly one image.
func soleImage(p *ast.Paragraph) (*ast.Image, bool) {
	if p.ChildCount() != 1 {
		return nil, false
	}
	img, ok := p.FirstChild().(*ast.Image)
	return img, ok
}

// imageBlock maps a standalone image. The caption field carries markup
// downstream, so the raw title text is escaped here.
func imageBlock(img *ast.Image, src []byte) domain.Block {
	return domain.Block{
		Type:    domain.BlockImage,
		URL:     string(img.Destination),
		AltText: domain.PlainText(inlineSpans(img, src)),
		Caption: html.EscapeString(string(img.Title)),
	}
}

// blockLines joins the raw source lines of a code block.
func blockLines(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	return strings.TrimRight(buf.String(), "\n")
}

// inlineState carries formatting accumulated while descending inline
// nodes.
type inlineState struct {
	bold          bool
	italic        bool
	code          bool
	strikethrough bool
	link          string
}

// inlineSpans flattens the inline children of parent into formatted
// spans.
func inlineSpans(parent ast.Node, src []byte) []domain.RichTextSpan {
	var spans []domain.RichTextSpan
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		collectSpans(n, src, inlineState{}, &spans)
	}
	return spans
}

func collectSpans(n ast.Node, src []byte, st inlineState, out *[]domain.RichTextSpan) {
	appendText := func(text string) {
		if text == "" {
			return
		}
		*out = append(*out, domain.RichTextSpan{
			Text:          text,
			Bold:          st.bold,
			Italic:        st.italic,
			Code:          st.code,
			Strikethrough: st.strikethrough,
			LinkURL:       st.link,
		})
	}

	switch node := n.(type) {
	case *ast.Text:
		appendText(string(node.Segment.Value(src)))
		if node.SoftLineBreak() || node.HardLineBreak() {
			appendText(" ")
		}

	case *ast.String:
		appendText(string(node.Value))

	case *ast.CodeSpan:
		st.code = true
		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			collectSpans(child, src, st, out)
		}

	case *ast.Emphasis:
		if node.Level >= 2 {
			st.bold = true
		} else {
			st.italic = true
		}
		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			collectSpans(child, src, st, out)
		}

	case *ast.Link:
		st.link = string(node.Destination)
		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			collectSpans(child, src, st, out)
		}

	case *ast.AutoLink:
		url := string(node.URL(src))
		*out = append(*out, domain.RichTextSpan{Text: url, LinkURL: url})

	case *east.Strikethrough:
		st.strikethrough = true
		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			collectSpans(child, src, st, out)
		}

	case *ast.Image:
		// Inline images inside running text have no block mapping.

	default:
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			collectSpans(child, src, st, out)
		}
	}
}
