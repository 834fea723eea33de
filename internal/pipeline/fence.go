package pipeline

import "strings"

// fenceTracker follows fenced code blocks (``` or ~~~) line by line.
// A fence closes on a line of at least as many of the same marker.
type fenceTracker struct {
	marker byte
	length int
}

// inside reports whether the tracker is currently within a fenced block.
func (f *fenceTracker) inside() bool {
	return f.length > 0
}

// observe updates the state for line and reports whether the line belongs
// to a fenced block, fence lines included.
func (f *fenceTracker) observe(line string) bool {
	trimmed := strings.TrimLeft(line, " ")
	// Fences indented by four or more spaces are indented code, not fences.
	if len(line)-len(trimmed) > 3 {
		return f.inside()
	}

	marker, n := fenceRun(trimmed)

	if f.inside() {
		if marker == f.marker && n >= f.length && strings.TrimSpace(trimmed[n:]) == "" {
			f.length = 0
		}
		return true
	}

	if n >= 3 {
		// Backtick fences cannot carry backticks in their info string.
		if marker == '`' && strings.ContainsRune(trimmed[n:], '`') {
			return false
		}
		f.marker = marker
		f.length = n
		return true
	}
	return false
}

// fenceRun returns the fence character and the length of its leading run.
func fenceRun(s string) (byte, int) {
	if s == "" || (s[0] != '`' && s[0] != '~') {
		return 0, 0
	}
	c := s[0]
	n := 0
	for n < len(s) && s[n] == c {
		n++
	}
	return c, n
}
