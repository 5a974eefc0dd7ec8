package convert

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/inkpress/inkpress/internal/core/domain"
)

// Render serialises a block sequence to the annotated markup the
// document store expects. Image URLs are resolved through the image
// importer when one is configured; failures degrade to inline
// references by URL.
func (c *Converter) Render(ctx context.Context, blocks []domain.Block) string {
	var out []string

	for i := 0; i < len(blocks); i++ {
		b := blocks[i]
		switch b.Type {
		case domain.BlockParagraph:
			out = append(out, wrap("paragraph", "", "<p>"+renderSpans(b.RichText)+"</p>"))

		case domain.BlockHeading:
			attr := fmt.Sprintf(`{"level":%d}`, b.Level)
			tag := fmt.Sprintf("h%d", b.Level)
			out = append(out, wrap("heading", attr, "<"+tag+">"+renderSpans(b.RichText)+"</"+tag+">"))

		case domain.BlockListItem:
			// Consecutive items of the same kind render as one list.
			j := i
			for j+1 < len(blocks) &&
				blocks[j+1].Type == domain.BlockListItem &&
				blocks[j+1].Ordered == b.Ordered {
				j++
			}
			out = append(out, renderList(blocks[i:j+1], b.Ordered))
			i = j

		case domain.BlockQuote:
			out = append(out, wrap("quote", "",
				"<blockquote><p>"+renderSpans(b.RichText)+"</p></blockquote>"))

		case domain.BlockCode:
			attr := ""
			openTag := "<pre><code>"
			if b.Language != "" {
				attr = fmt.Sprintf(`{"language":%q}`, b.Language)
				openTag = `<pre><code class="language-` + html.EscapeString(b.Language) + `">`
			}
			out = append(out, wrap("code", attr,
				openTag+html.EscapeString(domain.PlainText(b.RichText))+"</code></pre>"))

		case domain.BlockImage:
			out = append(out, c.renderImage(ctx, b))

		case domain.BlockVideo:
			attr := fmt.Sprintf(`{"url":%q`, b.URL)
			if b.Provider != "" {
				attr += fmt.Sprintf(`,"provider":%q`, b.Provider)
			}
			attr += "}"
			out = append(out, wrap("video", attr,
				"<figure><div>"+html.EscapeString(b.URL)+"</div></figure>"))

		case domain.BlockEmbed:
			out = append(out, wrap("embed", fmt.Sprintf(`{"url":%q}`, b.URL),
				"<figure><div>"+html.EscapeString(b.URL)+"</div></figure>"))

		case domain.BlockBookmark:
			link := `<a href="` + html.EscapeString(b.URL) + `">` + html.EscapeString(b.URL) + "</a>"
			if b.Caption != "" {
				link += " - " + b.Caption
			}
			out = append(out, wrap("paragraph", "", "<p>"+link+"</p>"))

		case domain.BlockTable:
			out = append(out, renderTable(b.Rows))

		case domain.BlockDivider:
			out = append(out, wrap("divider", "", "<hr/>"))
		}
	}

	return strings.Join(out, "\n")
}

// renderImage resolves the URL through the importer when possible,
// otherwise keeps the external reference.
func (c *Converter) renderImage(ctx context.Context, b domain.Block) string {
	alt := html.EscapeString(b.AltText)

	if c.images != nil {
		if id, err := c.images.Import(ctx, b.URL); err == nil && id != "" {
			body := `<figure><img src="local:` + id + `" alt="` + alt + `"/>`
			if b.Caption != "" {
				body += "<figcaption>" + b.Caption + "</figcaption>"
			}
			body += "</figure>"
			return wrap("image", fmt.Sprintf(`{"id":%q}`, id), body)
		}
	}

	body := `<figure><img src="` + html.EscapeString(b.URL) + `" alt="` + alt + `"/>`
	if b.Caption != "" {
		body += "<figcaption>" + b.Caption + "</figcaption>"
	}
	body += "</figure>"
	return wrap("image", "", body)
}

func renderList(items []domain.Block, ordered bool) string {
	tag, attr := "ul", ""
	if ordered {
		tag, attr = "ol", `{"ordered":true}`
	}
	var b strings.Builder
	b.WriteString("<" + tag + ">")
	for _, item := range items {
		b.WriteString("<li>" + renderSpans(item.RichText) + "</li>")
	}
	b.WriteString("</" + tag + ">")
	return wrap("list", attr, b.String())
}

func renderTable(rows [][]string) string {
	var b strings.Builder
	b.WriteString("<figure><table>")
	for _, row := range rows {
		b.WriteString("<tr>")
		for _, cell := range row {
			b.WriteString("<td>" + html.EscapeString(cell) + "</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</table></figure>")
	return wrap("table", "", b.String())
}

// wrap surrounds body with block annotations the document store parses.
func wrap(name, attr, body string) string {
	open := "<!-- block:" + name
	if attr != "" {
		open += " " + attr
	}
	open += " -->"
	return open + "\n" + body + "\n<!-- /block:" + name + " -->\n"
}
