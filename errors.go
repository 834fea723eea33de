package mdpress

import "errors"

// Sentinel errors for library operations.
var (
	// Input validation errors.
	ErrEmptyMarkdown    = errors.New("markdown content cannot be empty")
	ErrUnsupportedFont  = errors.New("unsupported font family")
	ErrInvalidSizeLevel = errors.New("invalid size level")
	ErrInvalidMode      = errors.New("invalid mode")

	// Rendering errors. ErrPDFGeneration is the only one surfaced by Convert;
	// the others are logged as its cause.
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFInspect     = errors.New("failed to inspect generated PDF")

	// Configuration errors.
	ErrInvalidAssetPath = errors.New("invalid asset path")
	ErrConverterClosed  = errors.New("converter is closed")
)
