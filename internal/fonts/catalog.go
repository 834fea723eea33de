// Package fonts holds the static table of known font families and the
// registry that records which of them have their files available.
package fonts

import (
	"path/filepath"
	"strings"
)

// FallbackStack is the CSS font stack used for families the catalog does not know.
const FallbackStack = "'DejaVu Sans', sans-serif"

// FallbackMonospace is the built-in monospace family used when no monospace
// candidate is registered.
const FallbackMonospace = "Courier"

// Descriptor describes one font family: its four variant files, its CSS
// stack and whether it may be used for code.
type Descriptor struct {
	Family     string
	Regular    string
	Bold       string
	Italic     string
	BoldItalic string
	Monospace  bool
	Stack      string
}

// Builtin reports whether the family needs no files (renderer built-ins).
func (d Descriptor) Builtin() bool {
	return d.Regular == "" && d.Bold == "" && d.Italic == "" && d.BoldItalic == ""
}

// Face is one @font-face variant of a family.
type Face struct {
	File   string
	Weight string // "normal" or "bold"
	Style  string // "normal" or "italic"
}

// Faces returns the four variants in regular, bold, italic, bold-italic order.
// Built-in families have none.
func (d Descriptor) Faces() []Face {
	if d.Builtin() {
		return nil
	}
	return []Face{
		{File: d.Regular, Weight: "normal", Style: "normal"},
		{File: d.Bold, Weight: "bold", Style: "normal"},
		{File: d.Italic, Weight: "normal", Style: "italic"},
		{File: d.BoldItalic, Weight: "bold", Style: "italic"},
	}
}

// Files returns the distinct variant files of the family.
func (d Descriptor) Files() []string {
	seen := make(map[string]bool, 4)
	var files []string
	for _, f := range d.Faces() {
		if !seen[f.File] {
			seen[f.File] = true
			files = append(files, f.File)
		}
	}
	return files
}

// Format returns the CSS font format hint for a font file name.
func Format(file string) string {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".woff2":
		return "woff2"
	case ".woff":
		return "woff"
	case ".otf":
		return "opentype"
	default:
		return "truetype"
	}
}

// Catalog is an ordered table of font families. Order decides monospace
// preference and the listing order of Families.
type Catalog []Descriptor

// Lookup returns the descriptor for a family, matched exactly.
func (c Catalog) Lookup(family string) (Descriptor, bool) {
	for _, d := range c {
		if d.Family == family {
			return d, true
		}
	}
	return Descriptor{}, false
}

// DefaultCatalog returns the built-in family table.
func DefaultCatalog() Catalog {
	return Catalog{
		variants("Inter", "woff2", "Inter, -apple-system, BlinkMacSystemFont, 'DejaVu Sans', sans-serif"),
		variants("AlbertSans", "ttf", "AlbertSans, 'Albert Sans', -apple-system, BlinkMacSystemFont, 'DejaVu Sans', sans-serif"),
		variants("HankenGrotesk", "ttf", "HankenGrotesk, 'Hanken Grotesk', -apple-system, BlinkMacSystemFont, 'DejaVu Sans', sans-serif"),
		variants("Jost", "ttf", "Jost, Futura, 'Futura PT', 'Century Gothic', 'DejaVu Sans', sans-serif"),
		{
			Family:     "Spartan",
			Regular:    "LeagueSpartan-Regular.ttf",
			Bold:       "LeagueSpartan-Bold.ttf",
			Italic:     "LeagueSpartan-Regular.ttf",
			BoldItalic: "LeagueSpartan-Bold.ttf",
			Stack:      "Spartan, Futura, 'Futura PT', 'Century Gothic', 'DejaVu Sans', sans-serif",
		},
		{
			Family:     "Formera",
			Regular:    "Formera-Regular.ttf",
			Bold:       "Formera-Regular.ttf",
			Italic:     "Formera-Regular.ttf",
			BoldItalic: "Formera-Regular.ttf",
			Stack:      "Formera, 'Futura Renner', Futura, 'Futura PT', 'Century Gothic', 'DejaVu Sans', sans-serif",
		},
		variants("Archivo", "ttf", "Archivo, 'Helvetica Neue', Helvetica, 'DejaVu Sans', sans-serif"),
		variants("Manrope", "ttf", "Manrope, 'Helvetica Neue', Helvetica, 'DejaVu Sans', sans-serif"),
		variants("Barlow", "ttf", "Barlow, 'Helvetica Neue', Helvetica, 'DejaVu Sans', sans-serif"),
		variants("OpenSans", "ttf", "OpenSans, 'Open Sans', 'DejaVu Sans', sans-serif"),
		variants("Lato", "ttf", "Lato, 'DejaVu Sans', sans-serif"),
		variants("NunitoSans", "ttf", "NunitoSans, 'Nunito Sans', 'DejaVu Sans', sans-serif"),
		variants("IBMPlexSans", "ttf", "IBMPlexSans, 'IBM Plex Sans', 'DejaVu Sans', sans-serif"),
		variants("Roboto", "ttf", "Roboto, 'DejaVu Sans', sans-serif"),
		{
			Family:     "SourceSansPro",
			Regular:    "SourceSansPro-Regular.ttf",
			Bold:       "SourceSansPro-Bold.ttf",
			Italic:     "SourceSansPro-It.ttf",
			BoldItalic: "SourceSansPro-BoldIt.ttf",
			Stack:      "SourceSansPro, 'Source Sans Pro', 'DejaVu Sans', sans-serif",
		},
		variants("WorkSans", "ttf", "WorkSans, 'Work Sans', 'DejaVu Sans', sans-serif"),
		{
			Family:     "MesloLGS",
			Regular:    "MesloLGS-Regular.ttf",
			Bold:       "MesloLGS-Bold.ttf",
			Italic:     "MesloLGS-Italic.ttf",
			BoldItalic: "MesloLGS-BoldItalic.ttf",
			Monospace:  true,
			Stack:      "MesloLGS, 'DejaVu Sans Mono', monospace",
		},
		{
			Family:     "SourceCodePro",
			Regular:    "SourceCodePro-Regular.ttf",
			Bold:       "SourceCodePro-Bold.ttf",
			Italic:     "SourceCodePro-Italic.otf",
			BoldItalic: "SourceCodePro-BoldItalic.otf",
			Monospace:  true,
			Stack:      "SourceCodePro, 'DejaVu Sans Mono', monospace",
		},
		{Family: "Helvetica", Stack: "Helvetica, Arial, sans-serif"},
		{Family: "Times-Roman", Stack: "'Times New Roman', Times, serif"},
		{Family: "Courier", Stack: "Courier, monospace"},
	}
}

// variants builds a descriptor whose files follow the Family-Variant.ext naming.
func variants(family, ext, stack string) Descriptor {
	return Descriptor{
		Family:     family,
		Regular:    family + "-Regular." + ext,
		Bold:       family + "-Bold." + ext,
		Italic:     family + "-Italic." + ext,
		BoldItalic: family + "-BoldItalic." + ext,
		Stack:      stack,
	}
}
