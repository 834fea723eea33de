package pipeline

import (
	"fmt"
	"html"
	"strings"
)

// DefaultTitle is the document title used when none is given.
const DefaultTitle = "Document"

// documentTemplate is the fixed shell of every assembled document.
// Arguments: base element, title, stylesheet, body.
const documentTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
%s<title>%s</title>
<style>
%s
</style>
</head>
<body>
%s
</body>
</html>`

// AssembleInput holds the parts of a document.
type AssembleInput struct {
	Title   string
	BaseURL string // emitted as <base href> when set
	CSS     string
	TOC     string
	Body    string
}

// Assemble wraps the body, an optional table of contents and the stylesheet
// in a complete HTML document.
func Assemble(in AssembleInput) string {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = DefaultTitle
	}

	base := ""
	if in.BaseURL != "" {
		base = `<base href="` + html.EscapeString(in.BaseURL) + `">` + "\n"
	}

	return fmt.Sprintf(documentTemplate,
		base,
		html.EscapeString(title),
		sanitizeCSS(in.CSS),
		in.TOC+in.Body,
	)
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
