// Package convert maps external content representations — Markdown
// text and remote rich-block lists — onto the internal block model,
// and renders block sequences to annotated markup for the document
// store. Conversion is a pure function of its input plus the image
// importer's responses.
package convert
