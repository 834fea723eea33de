// Package style resolves a style profile into the stylesheet of a print
// document.
//
// The stylesheet is composed in a fixed order so later rules can override
// earlier defaults:
//
//	@page rules
//	@font-face rules        (only for families with files registered)
//	theme + code-highlight  (asset stylesheets, verbatim)
//	body/component rules    (font stack, size, line height, lists, tables)
//	table of contents rules (when a TOC was built)
//	page-break rules        (when page breaks are requested)
//	preview markers         (preview mode only)
//
// Resolution never fails: unknown families, out-of-range sizes, unknown
// spacing values and missing asset stylesheets all degrade to documented
// fallbacks.
package style
