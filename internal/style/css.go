package style

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alnah/go-mdpress/internal/fonts"
)

// pageCSS is the page geometry shared by every document.
const pageCSS = `
@page {
  size: A4;
  margin: 12.5mm;
}
`

// buildFontFaceCSS generates one @font-face rule per variant of the family.
// urlPrefix is prepended to each file name ("fonts/" or "/fonts/").
func buildFontFaceCSS(d fonts.Descriptor, urlPrefix string) string {
	var buf strings.Builder
	for _, face := range d.Faces() {
		fmt.Fprintf(&buf,
			"@font-face { font-family: '%s'; src: url('%s%s') format('%s'); font-weight: %s; font-style: %s; }\n",
			d.Family, urlPrefix, face.File, fonts.Format(face.File), face.Weight, face.Style)
	}
	return buf.String()
}

// buildBodyCSS generates the typography rules driven by the profile.
func buildBodyCSS(stack string, sizePx int, lineHeight float64, monospace string) string {
	return fmt.Sprintf(`
body {
  font-family: %s;
  font-size: %dpx;
  line-height: %s;
}

code, pre {
  font-family: '%s', 'DejaVu Sans Mono', monospace;
}
`, stack, sizePx, strconv.FormatFloat(lineHeight, 'f', -1, 64), monospace)
}

// buildComponentCSS generates list and code block rules.
func buildComponentCSS() string {
	var buf strings.Builder

	buf.WriteString(`
/* Code blocks */
pre {
  tab-size: 4;
  -moz-tab-size: 4;
  line-height: 150%;
}

/* Lists */
ul, ol {
  margin: 0.5em 0 0.5em 1em;
  padding-left: 1em;
}
ul li, ol li {
  margin-bottom: 0.25em;
}
li ul, li ol {
  margin-top: 0.25em;
}
.nested-list {
  margin-left: 1em !important;
}
`)

	for level := 1; level <= 5; level++ {
		fmt.Fprintf(&buf, ".nested-list[data-level=\"%d\"] {\n  margin-left: %sem !important;\n}\n",
			level, strconv.FormatFloat(0.5+0.5*float64(level), 'f', -1, 64))
	}

	return buf.String()
}

// buildTableCSS generates table sizing rules.
func buildTableCSS(autoWidth bool) string {
	if autoWidth {
		return `
/* Tables: sized to content */
table {
  width: auto;
  max-width: 100%;
}
`
	}
	return `
/* Tables: full width */
table {
  width: 100%;
  table-layout: fixed;
}
th, td {
  overflow-wrap: break-word;
  word-break: break-word;
}
`
}

// tocMaxLevel is the deepest heading level listed in the table of contents.
const tocMaxLevel = 3

// buildTOCCSS styles the generated table of contents. Each level is indented
// by 1.5em. Engines supporting CSS Paged Media fill in page numbers through
// target-counter.
func buildTOCCSS() string {
	var levels strings.Builder
	for level := 1; level <= tocMaxLevel; level++ {
		fmt.Fprintf(&levels, "nav.toc .toc-level-%d {\n  padding-left: %sem;\n}\n",
			level, strconv.FormatFloat(float64(level-1)*1.5, 'f', -1, 64))
	}
	return fmt.Sprintf(tocCSSTemplate, levels.String())
}

const tocCSSTemplate = `
/* Table of contents */
nav.toc {
  margin: 0 0 2em 0;
}
nav.toc .toc-title {
  font-size: 1.5em;
  font-weight: bold;
  margin: 0 0 0.8em 0;
}
nav.toc .toc-item {
  margin: 0.3em 0;
}
nav.toc .toc-level-1 {
  font-weight: bold;
}
%snav.toc a.toc-link {
  color: inherit;
  text-decoration: none;
}
nav.toc a.toc-link::after {
  content: target-counter(attr(href), page);
  float: right;
}
.page-break {
  break-after: page;
  page-break-after: always;
}
`

// pageBreakCSS starts every top-level section after the first on a new page.
const pageBreakCSS = `
/* Page breaks before top-level headings */
h1.page-break-heading {
  break-before: page;
  page-break-before: always;
}
`

// previewCSS makes page breaks visible on screen, where no pages exist.
const previewCSS = `
/* Preview: visible page-break markers */
.page-break {
  margin-top: 12em !important;
  margin-bottom: 2.85em !important;
  padding-bottom: 1.25em !important;
  border-bottom: 2px dashed #ccc !important;
  position: relative !important;
  page-break-after: auto !important;
  break-after: auto !important;
}
.page-break::after {
  content: "\2014  Page Break \2014" !important;
  display: block !important;
  text-align: center !important;
  color: #999 !important;
  margin-top: 1em !important;
  font-size: 0.7rem !important;
  font-style: italic !important;
}
h1.page-break-heading {
  position: relative;
  margin-top: 8em !important;
  margin-bottom: 0.5em !important;
  padding-top: 1.5em !important;
  border-top: 2px dashed #ccc !important;
  break-before: auto !important;
  page-break-before: auto !important;
}
h1.page-break-heading::before {
  content: "\2014  Page Break \2014";
  position: absolute;
  top: -3em !important;
  left: 50%;
  transform: translateX(-50%);
  font-size: 0.7rem;
  font-weight: normal;
  font-style: italic !important;
  color: #888;
}
`
