package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"unicode"

	"github.com/goliatone/go-slug"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/unicode/norm"
)

// Heading is one indexed heading of a processed document.
type Heading struct {
	Level int
	ID    string
	Text  string
}

// headingIDPrefix prefixes ids derived from a content hash.
const headingIDPrefix = "heading-"

// Slugify derives a URL-safe identifier from heading text. Accents are
// folded to ASCII first, then go-slug lowercases, turns spaces and
// underscores into hyphens and drops everything else. Returns "" when
// nothing survives.
func Slugify(text string) string {
	var ascii strings.Builder
	for _, r := range norm.NFKD.String(text) {
		if r <= unicode.MaxASCII {
			ascii.WriteRune(r)
		}
	}

	s, err := slug.Normalize(strings.Join(strings.Fields(ascii.String()), " "))
	if err != nil {
		return ""
	}
	return s
}

// hashID returns the deterministic fallback id for text with an empty slug.
func hashID(text string) string {
	sum := sha256.Sum256([]byte(text))
	return headingIDPrefix + hex.EncodeToString(sum[:])[:8]
}

// idAllocator hands out unique heading ids in document order.
// The first use of a slug keeps it; later uses get -1, -2, ...
type idAllocator struct {
	used map[string]bool
}

func newIDAllocator() *idAllocator {
	return &idAllocator{used: make(map[string]bool)}
}

// allocate returns a unique id for heading text.
func (a *idAllocator) allocate(text string) string {
	base := Slugify(text)
	if base == "" {
		base = hashID(text)
	}

	id := base
	for n := 1; a.used[id]; n++ {
		id = base + "-" + strconv.Itoa(n)
	}
	a.used[id] = true
	return id
}

// headingLevel returns 1..3 for h1..h3 elements and 0 otherwise.
func headingLevel(n *html.Node) int {
	switch {
	case isElement(n, atom.H1):
		return 1
	case isElement(n, atom.H2):
		return 2
	case isElement(n, atom.H3):
		return 3
	default:
		return 0
	}
}

// headingText returns the tag-stripped, whitespace-collapsed text of n.
func headingText(n *html.Node) string {
	return strings.Join(strings.Fields(textContent(n)), " ")
}

// ExtractHeadings returns the h1-h3 headings that carry an id, in document order.
func ExtractHeadings(htmlContent string) ([]Heading, error) {
	doc, _, err := parseHTML(htmlContent)
	if err != nil {
		return nil, err
	}

	var headings []Heading
	walk(doc, func(n *html.Node) bool {
		level := headingLevel(n)
		if level == 0 {
			return true
		}
		if id, ok := getAttr(n, "id"); ok && id != "" {
			headings = append(headings, Heading{Level: level, ID: id, Text: headingText(n)})
		}
		return false
	})

	return headings, nil
}
