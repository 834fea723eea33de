package main

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/adrg/frontmatter"

	"github.com/alnah/go-mdpress"
)

// ErrFrontMatter is returned when a document's front matter cannot be parsed.
var ErrFrontMatter = errors.New("invalid front matter")

// documentMeta holds the front matter keys that override the configured
// profile. Nil fields are absent from the document.
type documentMeta struct {
	Title           *string `yaml:"title" toml:"title" json:"title"`
	Font            *string `yaml:"font" toml:"font" json:"font"`
	Size            *int    `yaml:"size" toml:"size" json:"size"`
	Spacing         *string `yaml:"spacing" toml:"spacing" json:"spacing"`
	TOC             *bool   `yaml:"toc" toml:"toc" json:"toc"`
	PageBreaks      *bool   `yaml:"pageBreaks" toml:"pageBreaks" json:"pageBreaks"`
	AutoWidthTables *bool   `yaml:"autoWidthTables" toml:"autoWidthTables" json:"autoWidthTables"`
}

// parseFrontMatter splits YAML (---), TOML (+++) or JSON front matter from
// the markdown body. A document without front matter is returned whole.
func parseFrontMatter(source []byte) (documentMeta, string, error) {
	var meta documentMeta

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return documentMeta{}, "", fmt.Errorf("%w: %v", ErrFrontMatter, err)
	}

	return meta, string(body), nil
}

// apply overrides input fields with the keys present in the front matter.
func (m documentMeta) apply(in *mdpress.Input) {
	if m.Title != nil {
		in.Title = *m.Title
	}
	if m.Font != nil {
		in.Profile.FontFamily = *m.Font
	}
	if m.Size != nil {
		in.Profile.SizeLevel = *m.Size
	}
	if m.Spacing != nil {
		in.Profile.Spacing = mdpress.Spacing(*m.Spacing)
	}
	if m.TOC != nil {
		in.Profile.IncludeIndex = *m.TOC
	}
	if m.PageBreaks != nil {
		in.Profile.AddPageBreaks = *m.PageBreaks
	}
	if m.AutoWidthTables != nil {
		in.Profile.AutoWidthTables = *m.AutoWidthTables
	}
}
