// Package pipeline implements the text and HTML stages of document
// conversion:
//   - Markdown preprocessing (line endings, glyph sanitization, list indentation)
//   - Markdown to HTML fragment conversion via goldmark, sanitized by bluemonday
//   - HTML post-processing over one parsed tree (code blocks, nested lists,
//     line breaks, heading ids, page-break headings, image paths)
//   - Heading extraction, table of contents and document assembly
//
// Stylesheet resolution lives in internal/style and PDF rendering in the
// root mdpress package. This package never touches the browser.
package pipeline
