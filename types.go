package mdpress

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/alnah/go-mdpress/internal/fonts"
)

// Spacing selects the line-height of body text.
type Spacing string

// Spacing values accepted by validation. The resolver also understands the
// aliases comfort, comfortable, roomy, normal and tight.
const (
	SpacingDefault  Spacing = "default"
	SpacingCompact  Spacing = "compact"
	SpacingSpacious Spacing = "spacious"
)

// Mode selects how asset paths are resolved in the assembled document.
type Mode string

const (
	// ModeRender targets the PDF engine: font and image paths resolve on the
	// local filesystem.
	ModeRender Mode = "render"

	// ModePreview targets a browser: font paths are web-root relative and
	// page breaks are drawn as visible markers.
	ModePreview Mode = "preview"
)

// Profile defaults.
const (
	DefaultFontFamily = "Inter"
	DefaultSizeLevel  = 3
	MinSizeLevel      = 1
	MaxSizeLevel      = 5
)

// StyleProfile is the caller's formatting choice for one conversion.
type StyleProfile struct {
	FontFamily      string  // Catalog family (empty = Inter)
	SizeLevel       int     // 1-5 (0 = 3)
	Spacing         Spacing // Empty = default
	AutoWidthTables bool    // Tables size to content instead of full width
	IncludeIndex    bool    // Heading ids and a table of contents
	AddPageBreaks   bool    // Page break before every h1 but the first
}

// DefaultStyleProfile returns the profile used when the caller sets nothing.
func DefaultStyleProfile() StyleProfile {
	return StyleProfile{
		FontFamily:      DefaultFontFamily,
		SizeLevel:       DefaultSizeLevel,
		Spacing:         SpacingDefault,
		AutoWidthTables: true,
	}
}

// withDefaults fills zero-valued fields. Booleans are taken as given.
func (p StyleProfile) withDefaults() StyleProfile {
	if strings.TrimSpace(p.FontFamily) == "" {
		p.FontFamily = DefaultFontFamily
	}
	if p.SizeLevel == 0 {
		p.SizeLevel = DefaultSizeLevel
	}
	if p.Spacing == "" {
		p.Spacing = SpacingDefault
	}
	return p
}

// Input contains conversion parameters.
type Input struct {
	Markdown  string       // Markdown content (required)
	Profile   StyleProfile // Formatting choices
	Mode      Mode         // Empty = render
	Title     string       // Document <title> (empty = "Document")
	TOCTitle  string       // Empty = "Table of Contents"
	SourceDir string       // Resolves relative images in render mode (optional)
}

// Validate checks the input against the known font families.
// Must run before any pipeline stage.
//
// This is a TRUST BOUNDARY for direct library users and the HTTP server.
func (in Input) Validate(registry *fonts.Registry) error {
	if registry == nil {
		registry = fonts.NewRegistry(nil)
	}
	p := in.Profile.withDefaults()

	if err := validation.Validate(strings.TrimSpace(in.Markdown), validation.Required); err != nil {
		return ErrEmptyMarkdown
	}

	err := validation.Validate(p.FontFamily, validation.By(func(value any) error {
		if !registry.Known(value.(string)) {
			return errors.New("not in the font catalog")
		}
		return nil
	}))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnsupportedFont, p.FontFamily)
	}

	if err := validation.Validate(p.SizeLevel, validation.Min(MinSizeLevel), validation.Max(MaxSizeLevel)); err != nil {
		return fmt.Errorf("%w: %d (must be between %d and %d)", ErrInvalidSizeLevel, p.SizeLevel, MinSizeLevel, MaxSizeLevel)
	}

	if err := validation.Validate(in.mode(), validation.In(ModeRender, ModePreview)); err != nil {
		return fmt.Errorf("%w: %q (must be render or preview)", ErrInvalidMode, in.Mode)
	}

	return nil
}

// mode returns the input mode, render when unset.
func (in Input) mode() Mode {
	if in.Mode == "" {
		return ModeRender
	}
	return in.Mode
}

// Document is a fully assembled document. It is built once per request and
// never cached.
type Document struct {
	Mode    Mode
	Title   string
	BaseURL string // <base href> in render mode, empty in preview
	Body    string // Post-processed body fragment
	CSS     string // Resolved stylesheet
	TOC     string // Table of contents block, empty when none
	HTML    string // Complete document
}

// Result is the output of Convert.
type Result struct {
	Document  *Document
	PDF       []byte
	PageCount int
}
