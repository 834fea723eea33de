package assets

// Names of the stylesheets looked up by the style resolver.
const (
	ThemeStyleName         = "theme"
	CodeHighlightStyleName = "code-highlight"
)

// FontDirName is the subdirectory of an asset base path holding font files.
const FontDirName = "fonts"

// AssetLoader defines the contract for loading stylesheets and probing font files.
// Implementations may load from embedded assets, filesystem, object storage, etc.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// HasFont reports whether the font file (a bare file name such as
	// "Inter-Regular.woff2") is available. Invalid names report false.
	HasFont(file string) bool
}
