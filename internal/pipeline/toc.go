package pipeline

import (
	"html"
	"strconv"
	"strings"
)

// DefaultTOCTitle is the heading of a table of contents with no explicit title.
const DefaultTOCTitle = "Table of Contents"

// BuildTOC renders a table of contents for headings, followed by a page-break
// marker so the TOC occupies its own page. Headings without text are left
// out. Returns "" when no heading remains. Page numbers are left to the
// renderer's target-counter support.
func BuildTOC(headings []Heading, title string) string {
	entries := make([]Heading, 0, len(headings))
	for _, h := range headings {
		if strings.TrimSpace(h.Text) != "" {
			entries = append(entries, h)
		}
	}
	if len(entries) == 0 {
		return ""
	}
	if strings.TrimSpace(title) == "" {
		title = DefaultTOCTitle
	}

	var buf strings.Builder
	buf.WriteString(`<nav class="toc">`)
	buf.WriteString(`<h2 class="toc-title">`)
	buf.WriteString(html.EscapeString(title))
	buf.WriteString(`</h2>`)
	buf.WriteString(`<div class="toc-list">`)

	for _, h := range entries {
		level := h.Level
		if level < 1 {
			level = 1
		}
		buf.WriteString(`<div class="toc-item toc-level-`)
		buf.WriteString(strconv.Itoa(level))
		buf.WriteString(`"><a class="toc-link" href="#`)
		buf.WriteString(html.EscapeString(h.ID))
		buf.WriteString(`">`)
		buf.WriteString(html.EscapeString(h.Text))
		buf.WriteString(`</a></div>`)
	}

	buf.WriteString(`</div></nav>`)
	buf.WriteString(`<div class="page-break"></div>`)
	return buf.String()
}
