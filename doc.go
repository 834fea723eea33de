// Package mdpress converts Markdown documents into print-ready HTML and PDF.
//
// # Quick Start
//
// Create a converter, convert markdown, and close when done:
//
//	conv, err := mdpress.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, mdpress.Input{
//	    Markdown: "# Hello\n\nWorld",
//	    Profile:  mdpress.DefaultStyleProfile(),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("output.pdf", result.PDF, 0644)
//
// The result carries the assembled document (result.Document) alongside the
// PDF bytes and page count. Set Input.Mode to ModePreview to stop after
// assembly: no browser is started.
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Markdown preprocessing (glyph sanitization, list indentation)
//  2. Markdown to HTML via Goldmark (GFM, footnotes, hard wraps, highlighting)
//  3. HTML post-processing (code blocks, nested lists, line breaks, heading ids)
//  4. Heading index and table of contents
//  5. Stylesheet resolution from the style profile
//  6. Document assembly
//  7. PDF rendering via headless Chrome (go-rod), page count via pdfcpu
//
// # Style Profiles
//
// A StyleProfile selects the font family, a size level from 1 to 5 (9, 12,
// 14, 16 and 20px), the line spacing, table layout, the table of contents
// and page breaks before top-level headings. Zero values fall back to Inter,
// level 3 and default spacing.
//
// Fonts are declared with @font-face only when all four variant files of a
// family exist under the asset directory's fonts/ folder:
//
//	conv, err := mdpress.NewConverter(
//	    mdpress.WithAssetPath("/srv/mdpress/assets"),
//	    mdpress.WithTimeout(2 * time.Minute),
//	)
//
// # Parallel Processing
//
// Assemble is safe for concurrent use. Convert drives one browser, so use a
// ConverterPool to render in parallel:
//
//	pool := mdpress.NewConverterPool(mdpress.ResolvePoolSize(0))
//	defer pool.Close()
//
//	conv, err := pool.Acquire(ctx)
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(conv)
//
// # Errors
//
// Validation failures wrap ErrEmptyMarkdown, ErrUnsupportedFont,
// ErrInvalidSizeLevel or ErrInvalidMode. Rendering failures are logged and
// reported as ErrPDFGeneration without the underlying cause.
package mdpress
