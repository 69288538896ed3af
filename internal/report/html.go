package report

import (
	stdhtml "html"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// renderHTML converts the Markdown document into a complete HTML page.
// A parser is single-use, so one is built per call. The title is escaped
// here because Smartypants writes it into <title> unescaped.
func renderHTML(md string, title string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{
		Title: stdhtml.EscapeString(title),
		Flags: html.CommonFlags | html.CompletePage,
	})
	return markdown.ToHTML([]byte(md), p, renderer)
}
