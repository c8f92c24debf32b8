package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// Attr returns the value of the named attribute, or "" when absent.
func Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// IsElement reports whether n is an element with the given lowercase tag.
func IsElement(n *html.Node, tag string) bool {
	return n != nil && n.Type == html.ElementNode && strings.ToLower(n.Data) == tag
}

// TagName returns the lowercase tag name for element nodes, "" otherwise.
func TagName(n *html.Node) string {
	if n == nil || n.Type != html.ElementNode {
		return ""
	}
	return strings.ToLower(n.Data)
}

// Text returns the concatenated text content of n's subtree, trimmed.
func Text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	if n != nil {
		walk(n)
	}
	return strings.TrimSpace(b.String())
}

// HasClass reports whether the element carries the given CSS class.
func HasClass(n *html.Node, class string) bool {
	for _, f := range strings.Fields(Attr(n, "class")) {
		if f == class {
			return true
		}
	}
	return false
}

// Walk visits every element in n's subtree (n excluded) in document order.
// Returning false from visit skips the element's descendants.
func Walk(n *html.Node, visit func(*html.Node) bool) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			if !visit(c) {
				continue
			}
		}
		Walk(c, visit)
	}
}

// markSubtree adds el and every descendant element to the processed set.
// Marking the whole subtree is what guarantees a later, less specific pass
// never re-emits content a container processor already claimed.
func markSubtree(processed map[*html.Node]struct{}, el *html.Node) {
	if el == nil {
		return
	}
	processed[el] = struct{}{}
	for c := el.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			markSubtree(processed, c)
		}
	}
}

// splitLines splits s into lines, dropping a single trailing empty line
// produced by a terminal newline.
func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// collapseBlankLines trims runs of 3+ newlines down to a paragraph break
// and trims surrounding whitespace.
func collapseBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	var out []string
	blank := 0
	for _, ln := range lines {
		if strings.TrimSpace(ln) == "" {
			blank++
			if blank > 1 {
				continue
			}
			out = append(out, "")
			continue
		}
		blank = 0
		out = append(out, strings.TrimRight(ln, " \t"))
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
