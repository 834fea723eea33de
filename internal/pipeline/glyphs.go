package pipeline

import "strings"

// Glyphs are replaced before escapes are unescaped, so a backslash followed
// by a dash ends as "-" in one pass. Neither replacer rescans its own output,
// so "\&" becomes "&amp;" exactly once.
var (
	// glyphReplacer maps typographic glyphs to plain characters.
	glyphReplacer = strings.NewReplacer(
		"\u2013", "-", // en dash
		"\u2014", "-", // em dash
		"\u00a0", " ", // no-break space
		"\u2018", "'",
		"\u2019", "'",
		"\u201c", `"`,
		"\u201d", `"`,
	)

	// escapeReplacer unescapes backslash-escaped punctuation.
	escapeReplacer = strings.NewReplacer(
		`\~`, "~",
		`\&`, "&amp;",
		`\#`, "#",
		`\*`, "*",
		`\_`, "_",
		`\+`, "+",
		`\-`, "-",
		`\=`, "=",
		`\$`, "$",
	)
)

// sanitize applies both tables in order.
func sanitize(text string) string {
	return escapeReplacer.Replace(glyphReplacer.Replace(text))
}

// GlyphSanitizer replaces typographic glyphs that the PDF fonts may lack and
// unescapes backslash-escaped punctuation.
type GlyphSanitizer struct {
	// SkipCodeFences leaves fenced code blocks untouched.
	SkipCodeFences bool
}

// Sanitize applies the glyph table to text.
func (g GlyphSanitizer) Sanitize(text string) string {
	if !g.SkipCodeFences {
		return sanitize(text)
	}

	lines := strings.Split(text, "\n")
	var fence fenceTracker
	for i, line := range lines {
		if fence.observe(line) {
			continue
		}
		lines[i] = sanitize(line)
	}
	return strings.Join(lines, "\n")
}

// SanitizeGlyphs applies the glyph table everywhere, code included.
func SanitizeGlyphs(text string) string {
	return GlyphSanitizer{}.Sanitize(text)
}
