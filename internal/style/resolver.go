package style

import (
	"strings"

	"go.uber.org/zap"

	"github.com/alnah/go-mdpress/internal/assets"
	"github.com/alnah/go-mdpress/internal/fonts"
)

// Default font URL prefixes for the two output modes.
const (
	RenderFontPrefix  = "fonts/"
	PreviewFontPrefix = "/fonts/"
)

// Profile is the subset of a style profile the resolver consumes.
type Profile struct {
	FontFamily      string
	SizeLevel       int
	Spacing         string
	AutoWidthTables bool
	AddPageBreaks   bool
}

// Options controls mode-dependent parts of the stylesheet.
type Options struct {
	// Preview selects web-servable font URLs and visible page-break markers.
	Preview bool

	// HasTOC adds table of contents rules.
	HasTOC bool

	// FontURLPrefix overrides the font URL prefix of the selected mode.
	FontURLPrefix string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used to report degraded resources.
func WithLogger(l *zap.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithHighlightStyle sets the chroma style used when no code-highlight
// stylesheet is provided by the asset loader.
func WithHighlightStyle(name string) Option {
	return func(r *Resolver) {
		if name != "" {
			r.highlightStyle = name
		}
	}
}

// Resolver maps style profiles to stylesheets. It only reads the registry
// and the asset loader, so it is safe for concurrent use.
type Resolver struct {
	registry       *fonts.Registry
	loader         assets.AssetLoader
	logger         *zap.Logger
	highlightStyle string
}

// NewResolver creates a Resolver. A nil loader means no theme stylesheet.
func NewResolver(registry *fonts.Registry, loader assets.AssetLoader, opts ...Option) *Resolver {
	r := &Resolver{
		registry:       registry,
		loader:         loader,
		logger:         zap.NewNop(),
		highlightStyle: DefaultHighlightStyle,
	}
	if r.registry == nil {
		r.registry = fonts.NewRegistry(nil)
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Monospace returns the family used for code blocks.
func (r *Resolver) Monospace() string {
	return r.registry.Monospace()
}

// Resolve returns the complete stylesheet for the profile. It never fails.
func (r *Resolver) Resolve(p Profile, opts Options) string {
	parts := []string{pageCSS}

	if faces := r.fontFaces(p.FontFamily, opts); faces != "" {
		parts = append(parts, faces)
	}

	if theme := r.themeCSS(); theme != "" {
		parts = append(parts, theme)
	}

	parts = append(parts,
		buildBodyCSS(r.registry.Stack(p.FontFamily), SizePx(p.SizeLevel), LineHeight(p.Spacing), r.registry.Monospace()),
		buildComponentCSS(),
		buildTableCSS(p.AutoWidthTables),
	)

	if opts.HasTOC {
		parts = append(parts, buildTOCCSS())
	}
	if p.AddPageBreaks {
		parts = append(parts, pageBreakCSS)
	}
	if opts.Preview {
		parts = append(parts, previewCSS)
	}

	return strings.Join(parts, "\n")
}

// fontFaces returns @font-face rules when the family's files are registered.
func (r *Resolver) fontFaces(family string, opts Options) string {
	if !r.registry.Available(family) {
		return ""
	}
	d, ok := r.registry.Descriptor(family)
	if !ok {
		return ""
	}

	prefix := opts.FontURLPrefix
	if prefix == "" {
		prefix = RenderFontPrefix
		if opts.Preview {
			prefix = PreviewFontPrefix
		}
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	return buildFontFaceCSS(d, prefix)
}

// themeCSS concatenates the theme and code-highlight stylesheets. A missing
// theme yields nothing; a missing code-highlight sheet is generated by chroma.
func (r *Resolver) themeCSS() string {
	if r.loader == nil {
		return HighlightCSS(r.highlightStyle)
	}

	theme, err := r.loader.LoadStyle(assets.ThemeStyleName)
	if err != nil {
		r.logger.Debug("theme stylesheet unavailable", zap.Error(err))
		theme = ""
	}

	highlight, err := r.loader.LoadStyle(assets.CodeHighlightStyleName)
	if err != nil {
		r.logger.Debug("code-highlight stylesheet unavailable, generating",
			zap.String("style", r.highlightStyle), zap.Error(err))
		highlight = HighlightCSS(r.highlightStyle)
	}

	return theme + highlight
}
