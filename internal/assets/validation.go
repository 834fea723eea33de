package assets

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidateAssetName checks that an asset name is safe for use as a filename.
// Returns ErrInvalidAssetName if the name is empty or contains path separators,
// dots (which could allow extension manipulation), or traversal characters.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// fontExtensions lists the font file extensions the loaders will serve.
var fontExtensions = map[string]bool{
	".woff2": true,
	".woff":  true,
	".otf":   true,
	".ttf":   true,
}

// ValidateFontFile checks that a font file name is a bare file name with a
// known font extension. Unlike style names, font names carry their extension.
func ValidateFontFile(file string) error {
	if file == "" {
		return fmt.Errorf("%w: empty font file name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(file, "/\\\x00") || strings.Contains(file, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, file)
	}
	if !fontExtensions[strings.ToLower(filepath.Ext(file))] {
		return fmt.Errorf("%w: unsupported font extension %q", ErrInvalidAssetName, file)
	}
	return nil
}
