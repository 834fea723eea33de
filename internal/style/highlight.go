package style

import (
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultHighlightStyle is the chroma style used for code highlighting.
// A light style is used because code blocks carry a light inline background.
const DefaultHighlightStyle = "github"

// HighlightCSS returns the class-based chroma stylesheet for the named style.
// Unknown names fall back to chroma's default style. Returns "" if chroma
// fails to write the sheet.
func HighlightCSS(styleName string) string {
	if styleName == "" {
		styleName = DefaultHighlightStyle
	}

	var buf strings.Builder
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, styles.Get(styleName)); err != nil {
		return ""
	}
	return buf.String()
}
