package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// resolveImages points relative img[src] values at file:// URLs under
// sourceDir so the PDF engine can load them from a temporary HTML file.
// Only images are touched: links, media, scripts and CSS url() keep their
// values, as do URLs with a scheme, rooted paths and paths escaping
// sourceDir.
func resolveImages(doc *html.Node, sourceDir string) error {
	root, err := filepath.Abs(sourceDir)
	if err != nil {
		return err
	}

	walk(doc, func(n *html.Node) bool {
		if !isElement(n, atom.Img) {
			return true
		}
		for i := range n.Attr {
			if n.Attr[i].Key != "src" {
				continue
			}
			if resolved, ok := imageFileURL(n.Attr[i].Val, root); ok {
				n.Attr[i].Val = resolved
			}
		}
		return true
	})
	return nil
}

// imageFileURL returns the file:// URL of src under root, or false when src
// must be left alone.
func imageFileURL(src, root string) (string, bool) {
	if src == "" || strings.HasPrefix(src, "#") || strings.HasPrefix(src, "/") || strings.HasPrefix(src, `\`) {
		return "", false
	}
	if filepath.IsAbs(src) || filepath.VolumeName(src) != "" {
		return "", false
	}
	if u, err := url.Parse(src); err == nil && u.Scheme != "" {
		return "", false
	}

	abs := filepath.Join(root, filepath.FromSlash(src))
	if !within(abs, root) {
		return "", false
	}

	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String(), true
}

// within reports whether path is root or below it.
func within(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
