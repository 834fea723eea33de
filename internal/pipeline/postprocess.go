package pipeline

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// zeroWidthSpace marks a line-break opportunity without visible output.
const zeroWidthSpace = "\u200b"

// longQuoteRunes is the length above which quoted strings in code get a
// mid-string break opportunity.
const longQuoteRunes = 40

var (
	// breakAfter inserts a break opportunity after list and bracket punctuation.
	breakAfter = strings.NewReplacer(
		",", ","+zeroWidthSpace,
		";", ";"+zeroWidthSpace,
		"(", "("+zeroWidthSpace,
		"[", "["+zeroWidthSpace,
		"{", "{"+zeroWidthSpace,
	)

	// quotedString matches single-line double- or single-quoted strings.
	quotedString = regexp.MustCompile(`"[^"\n]*"|'[^'\n]*'`)
)

// PostProcessOptions selects the rewrites applied to a parsed fragment.
type PostProcessOptions struct {
	// Monospace is the family named in the code block style.
	Monospace string

	// BreakOpportunities inserts zero-width spaces into code blocks.
	BreakOpportunities bool

	// HeadingIDs assigns slug ids to h1-h3.
	HeadingIDs bool

	// PageBreaks marks every h1 after the first as a page-break heading.
	PageBreaks bool

	// AssetDir resolves relative image paths to file:// URLs when set.
	AssetDir string
}

// HTMLPostProcessor defines the contract for HTML fragment normalization.
type HTMLPostProcessor interface {
	PostProcess(ctx context.Context, fragment string, opts PostProcessOptions) (string, error)
}

// TreePostProcessor rewrites fragments over a single golang.org/x/net/html tree.
type TreePostProcessor struct{}

// PostProcess applies the rewrites in fixed order: code whitespace, break
// opportunities, nested lists, line breaks, heading ids, page-break
// headings, then asset paths.
func (p *TreePostProcessor) PostProcess(ctx context.Context, fragment string, opts PostProcessOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return PostProcess(fragment, opts)
}

// PostProcess is the context-free form of TreePostProcessor.PostProcess.
func PostProcess(fragment string, opts PostProcessOptions) (string, error) {
	doc, isFragment, err := parseHTML(fragment)
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	styleCodeBlocks(doc, opts.Monospace)
	if opts.BreakOpportunities {
		insertBreakOpportunities(doc)
	}
	tagNestedLists(doc)
	repairLineBreaks(doc)
	if opts.HeadingIDs {
		assignHeadingIDs(doc)
	}
	if opts.PageBreaks {
		markPageBreakHeadings(doc)
	}
	if opts.AssetDir != "" {
		if err := resolveImages(doc, opts.AssetDir); err != nil {
			return "", err
		}
	}

	return renderHTML(doc, isFragment)
}

// PreStyle returns the inline style given to <pre> elements wrapping code.
func PreStyle(monospace string) string {
	if monospace == "" {
		monospace = "Courier"
	}
	return "white-space: pre-wrap; word-break: break-word; overflow-wrap: break-word; " +
		"background-color: #f5f7f9; border-radius: 8px; padding: 16px; " +
		"font-family: " + monospace + ", monospace; margin: 0 0 12px 0; display: block; " +
		"width: 100%; page-break-inside: auto; break-inside: auto; box-sizing: border-box;"
}

// styleCodeBlocks gives every <pre> whose first element child is <code> the
// whitespace-preserving style. Code text is not touched.
func styleCodeBlocks(doc *html.Node, monospace string) {
	style := PreStyle(monospace)
	walk(doc, func(n *html.Node) bool {
		if isElement(n, atom.Pre) && isElement(firstElementChild(n), atom.Code) {
			setAttr(n, "style", style)
			return false
		}
		return true
	})
}

// insertBreakOpportunities adds zero-width spaces to text inside <pre>.
func insertBreakOpportunities(doc *html.Node) {
	walk(doc, func(n *html.Node) bool {
		if !isElement(n, atom.Pre) {
			return true
		}
		walk(n, func(c *html.Node) bool {
			if c.Type == html.TextNode {
				c.Data = withBreakOpportunities(c.Data)
			}
			return true
		})
		return false
	})
}

// withBreakOpportunities splits long quoted strings at their midpoint and
// adds a break after , ; ( [ and {.
func withBreakOpportunities(text string) string {
	text = quotedString.ReplaceAllStringFunc(text, func(q string) string {
		inner := q[1 : len(q)-1]
		n := utf8.RuneCountInString(inner)
		if n <= longQuoteRunes {
			return q
		}
		runes := []rune(inner)
		mid := n / 2
		return q[:1] + string(runes[:mid]) + zeroWidthSpace + string(runes[mid:]) + q[len(q)-1:]
	})
	return breakAfter.Replace(text)
}

// listDepth counts open lists. It never goes below zero.
type listDepth int

func (d *listDepth) open() int {
	*d++
	return int(*d)
}

func (d *listDepth) close() {
	if *d > 0 {
		*d--
	}
}

// tagNestedLists marks lists opened at depth > 1 with the nested-list class
// and data-level = depth-1, scanning lists in document order.
func tagNestedLists(doc *html.Node) {
	var depth listDepth
	var visit func(n *html.Node)
	visit = func(n *html.Node) {
		isList := isElement(n, atom.Ul, atom.Ol)
		if isList {
			if level := depth.open(); level > 1 {
				addClass(n, "nested-list")
				setAttr(n, "data-level", strconv.Itoa(level-1))
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
		if isList {
			depth.close()
		}
	}
	visit(doc)
}

// repairLineBreaks separates adjacent paragraphs with a blank line and turns
// bare newlines between text into <br> outside preformatted content.
func repairLineBreaks(doc *html.Node) {
	separateParagraphs(doc)

	walk(doc, func(n *html.Node) bool {
		if isElement(n, atom.Pre, atom.Code, atom.Script, atom.Style, atom.Textarea) {
			return false
		}
		if n.Type == html.TextNode && strings.Contains(n.Data, "\n") {
			splitNewlines(n)
		}
		return true
	})
}

// separateParagraphs puts "\n\n" between sibling <p> elements separated by
// whitespace only.
func separateParagraphs(doc *html.Node) {
	walk(doc, func(n *html.Node) bool {
		if !isElement(n, atom.P) {
			return true
		}
		next := n.NextSibling
		if next != nil && next.Type == html.TextNode && strings.TrimSpace(next.Data) == "" {
			if isElement(next.NextSibling, atom.P) {
				next.Data = "\n\n"
			}
			return false
		}
		if isElement(next, atom.P) {
			n.Parent.InsertBefore(&html.Node{Type: html.TextNode, Data: "\n\n"}, next)
		}
		return false
	})
}

// splitNewlines replaces text node n with text and <br> nodes so every
// newline between two non-blank runs becomes "<br>\n".
func splitNewlines(n *html.Node) {
	parts := strings.Split(n.Data, "\n")

	var out []*html.Node
	current := parts[0]
	changed := false
	for i := 1; i < len(parts); i++ {
		if strings.TrimSpace(parts[i-1]) != "" && strings.TrimSpace(parts[i]) != "" {
			out = append(out,
				&html.Node{Type: html.TextNode, Data: current},
				&html.Node{Type: html.ElementNode, DataAtom: atom.Br, Data: "br"})
			current = "\n" + parts[i]
			changed = true
			continue
		}
		current += "\n" + parts[i]
	}
	if !changed {
		return
	}
	out = append(out, &html.Node{Type: html.TextNode, Data: current})

	parent := n.Parent
	for _, node := range out {
		parent.InsertBefore(node, n)
	}
	parent.RemoveChild(n)
}

// assignHeadingIDs gives h1-h3 unique slug ids in document order.
func assignHeadingIDs(doc *html.Node) {
	ids := newIDAllocator()
	walk(doc, func(n *html.Node) bool {
		if headingLevel(n) == 0 {
			return true
		}
		setAttr(n, "id", ids.allocate(headingText(n)))
		return false
	})
}

// markPageBreakHeadings adds page-break-heading to every h1 but the first.
func markPageBreakHeadings(doc *html.Node) {
	seen := false
	walk(doc, func(n *html.Node) bool {
		if !isElement(n, atom.H1) {
			return true
		}
		if seen {
			addClass(n, "page-break-heading")
		}
		seen = true
		return false
	})
}

// Compile-time interface check.
var _ HTMLPostProcessor = (*TreePostProcessor)(nil)
