package style

import "strings"

// DefaultSizePx is the base font size used for out-of-range size levels.
const DefaultSizePx = 14

// DefaultLineHeight is the line height used for unknown spacing values.
const DefaultLineHeight = 1.4

// sizeLevels maps size levels 1..5 to base font sizes in px.
var sizeLevels = map[int]int{
	1: 9,
	2: 12,
	3: 14,
	4: 16,
	5: 20,
}

// spacingLevels maps spacing names and their aliases to line heights.
var spacingLevels = map[string]float64{
	"spacious":    1.6,
	"comfort":     1.6,
	"comfortable": 1.6,
	"roomy":       1.6,
	"default":     1.4,
	"normal":      1.4,
	"compact":     1.2,
	"tight":       1.2,
}

// SizePx returns the base font size in px for a size level.
func SizePx(level int) int {
	if px, ok := sizeLevels[level]; ok {
		return px
	}
	return DefaultSizePx
}

// LineHeight returns the line height for a spacing name. Matching is
// case-insensitive and ignores surrounding whitespace.
func LineHeight(spacing string) float64 {
	if lh, ok := spacingLevels[strings.ToLower(strings.TrimSpace(spacing))]; ok {
		return lh
	}
	return DefaultLineHeight
}
