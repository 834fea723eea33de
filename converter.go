package mdpress

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/alnah/go-mdpress/internal/assets"
	"github.com/alnah/go-mdpress/internal/fileutil"
	"github.com/alnah/go-mdpress/internal/fonts"
	"github.com/alnah/go-mdpress/internal/pipeline"
	"github.com/alnah/go-mdpress/internal/style"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.Preprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.HTMLPostProcessor    = (*pipeline.TreePostProcessor)(nil)
	_ fonts.Locator                 = (*assets.AssetResolver)(nil)
)

// Converter orchestrates the Markdown to document to PDF pipeline.
// Create with NewConverter(), use Assemble() or Convert(), and Close() when done.
//
// Assemble is safe for concurrent use. Convert drives one browser and is
// not: use a ConverterPool to render in parallel.
type Converter struct {
	cfg           converterConfig
	logger        *zap.Logger
	assets        *assets.AssetResolver
	registry      *fonts.Registry
	styles        *style.Resolver
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
	postProcessor pipeline.HTMLPostProcessor
	pdfConverter  pdfConverter
	pageCounter   func([]byte) (int, error)
	closed        atomic.Bool
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithAssetPath, WithLogger).
// Returns ErrInvalidAssetPath if the asset directory is unusable.
// The browser is started lazily on the first Convert in render mode.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:    converterConfig{timeout: defaultTimeout},
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	c.assets = resolver

	if c.registry == nil {
		c.registry = fonts.NewRegistry(resolver, fonts.WithLogger(c.logger))
	}
	c.styles = style.NewResolver(c.registry, resolver,
		style.WithLogger(c.logger),
		style.WithHighlightStyle(c.cfg.highlightStyle),
	)

	// Components not injected (e.g., by tests) get production defaults.
	if c.preprocessor == nil {
		c.preprocessor = &pipeline.Preprocessor{
			Glyphs: pipeline.GlyphSanitizer{SkipCodeFences: c.cfg.skipCodeFences},
		}
	}
	if c.htmlConverter == nil {
		c.htmlConverter = pipeline.NewGoldmarkConverter()
	}
	if c.postProcessor == nil {
		c.postProcessor = &pipeline.TreePostProcessor{}
	}
	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout, c.logger)
	}
	if c.pageCounter == nil {
		c.pageCounter = countPages
	}

	return c, nil
}

// Fonts returns the font registry backing validation and stylesheets.
func (c *Converter) Fonts() *fonts.Registry {
	return c.registry
}

// Assemble validates the input and runs every document stage: preprocessing,
// Markdown conversion, post-processing, indexing, style resolution and
// assembly. It never starts the browser.
func (c *Converter) Assemble(ctx context.Context, input Input) (*Document, error) {
	if err := input.Validate(c.registry); err != nil {
		return nil, err
	}

	profile := input.Profile.withDefaults()
	mode := input.mode()
	preview := mode == ModePreview

	// Preprocess markdown
	md := c.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Convert to HTML fragment
	fragment, err := c.htmlConverter.ToHTML(ctx, md)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	// Normalize the fragment
	ppOpts := pipeline.PostProcessOptions{
		Monospace:          c.styles.Monospace(),
		BreakOpportunities: !preview,
		HeadingIDs:         profile.IncludeIndex,
		PageBreaks:         profile.AddPageBreaks,
	}
	if !preview {
		ppOpts.AssetDir = input.SourceDir
	}
	body, err := c.postProcessor.PostProcess(ctx, fragment, ppOpts)
	if err != nil {
		return nil, fmt.Errorf("post-processing HTML: %w", err)
	}

	// Index headings
	var toc string
	if profile.IncludeIndex {
		headings, err := pipeline.ExtractHeadings(body)
		if err != nil {
			return nil, fmt.Errorf("indexing headings: %w", err)
		}
		toc = pipeline.BuildTOC(headings, input.TOCTitle)
	}

	// Resolve stylesheet
	styleOpts := style.Options{Preview: preview, HasTOC: toc != ""}
	if preview {
		styleOpts.FontURLPrefix = c.cfg.fontURLPrefix
	}
	css := c.styles.Resolve(style.Profile{
		FontFamily:      profile.FontFamily,
		SizeLevel:       profile.SizeLevel,
		Spacing:         string(profile.Spacing),
		AutoWidthTables: profile.AutoWidthTables,
		AddPageBreaks:   profile.AddPageBreaks,
	}, styleOpts)

	doc := &Document{
		Mode:  mode,
		Title: input.Title,
		Body:  body,
		CSS:   css,
		TOC:   toc,
	}

	// Font sources are relative to the asset directory in render mode.
	if !preview && c.assets.HasCustomLoader() {
		baseURL, err := fileutil.DirURL(c.assets.BasePath())
		if err != nil {
			return nil, fmt.Errorf("resolving asset base URL: %w", err)
		}
		doc.BaseURL = baseURL
	}

	doc.HTML = pipeline.Assemble(pipeline.AssembleInput{
		Title:   doc.Title,
		BaseURL: doc.BaseURL,
		CSS:     doc.CSS,
		TOC:     doc.TOC,
		Body:    doc.Body,
	})

	c.logger.Debug("document assembled",
		zap.String("mode", string(mode)),
		zap.String("font", profile.FontFamily),
		zap.Bool("toc", toc != ""),
		zap.Int("bytes", len(doc.HTML)))

	return doc, nil
}

// Convert assembles the document and, in render mode, renders it to PDF.
// In preview mode the result carries the document only.
//
// Rendering failures are logged and returned as ErrPDFGeneration; context
// errors are returned as-is. Recovers from internal panics to prevent
// crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("recovered from panic during conversion", zap.Any("panic", r))
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	doc, err := c.Assemble(ctx, input)
	if err != nil {
		return nil, err
	}

	res := &Result{Document: doc}
	if doc.Mode == ModePreview {
		return res, nil
	}

	if c.closed.Load() {
		return nil, ErrConverterClosed
	}

	pdf, err := c.pdfConverter.ToPDF(ctx, doc.HTML)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.logger.Error("PDF generation failed", zap.Error(err))
		return nil, ErrPDFGeneration
	}

	pages, err := c.pageCounter(pdf)
	if err != nil {
		c.logger.Error("PDF generation failed", zap.Error(err))
		return nil, ErrPDFGeneration
	}

	c.logger.Debug("PDF generated",
		zap.Int("pages", pages),
		zap.Int("bytes", len(pdf)))

	res.PDF = pdf
	res.PageCount = pages
	return res, nil
}

// Close releases resources (headless Chrome browser). Safe to call twice.
func (c *Converter) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}
