package pipeline

import (
	"regexp"
	"strings"
)

var (
	// topLevelItem matches an unindented bullet or ordered list item.
	topLevelItem = regexp.MustCompile(`^([*+-]|\d+[.)])\s`)

	// nestedItem matches an indented list item, capturing its indentation.
	nestedItem = regexp.MustCompile(`^([ \t]+)([*+-]|\d+[.)])\s`)
)

// tabWidth is the number of indentation columns a tab counts for. One tab
// is one nesting level, the same as two spaces.
const tabWidth = 2

// NormalizeLists rewrites loosely indented lists so the parser nests them.
//
// An indented item of width w is re-indented to 4*floor(w/2) spaces, so
// two-space nesting becomes the four spaces CommonMark expects. A top-level
// item followed by one blank line and then an indented item loses the blank
// line. Lines in fenced code blocks are never changed.
func NormalizeLists(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	var fence fenceTracker
	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if fence.observe(line) {
			out = append(out, line)
			continue
		}

		switch {
		case topLevelItem.MatchString(line):
			out = append(out, line)
			if i+2 < len(lines) &&
				strings.TrimSpace(lines[i+1]) == "" &&
				nestedItem.MatchString(lines[i+2]) {
				i++ // drop the blank line
			}

		case nestedItem.MatchString(line):
			indent := nestedItem.FindStringSubmatch(line)[1]
			level := indentWidth(indent) / 2
			out = append(out, strings.Repeat("    ", level)+strings.TrimLeft(line, " \t"))

		default:
			out = append(out, line)
		}
	}

	return strings.Join(out, "\n")
}

// indentWidth counts indentation columns, a tab counting as tabWidth.
func indentWidth(indent string) int {
	width := 0
	for _, r := range indent {
		if r == '\t' {
			width += tabWidth
		} else {
			width++
		}
	}
	return width
}
