package mdpress

import (
	"time"

	"go.uber.org/zap"
)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout        time.Duration
	assetPath      string
	fontURLPrefix  string
	highlightStyle string
	skipCodeFences bool
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the PDF rendering timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("mdpress: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithAssetPath sets a directory holding custom styles (styles/theme.css,
// styles/code-highlight.css) and font files (fonts/). Styles missing from
// the directory fall back to the embedded ones.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithFontURLPrefix sets the URL prefix of @font-face sources in preview
// mode (default "/fonts/").
func WithFontURLPrefix(prefix string) Option {
	return func(c *Converter) {
		c.cfg.fontURLPrefix = prefix
	}
}

// WithHighlightStyle sets the chroma style used for code when the asset
// directory has no code-highlight stylesheet (default "github").
func WithHighlightStyle(name string) Option {
	return func(c *Converter) {
		c.cfg.highlightStyle = name
	}
}

// WithSkipCodeFences exempts fenced code blocks from glyph sanitization.
func WithSkipCodeFences(skip bool) Option {
	return func(c *Converter) {
		c.cfg.skipCodeFences = skip
	}
}
