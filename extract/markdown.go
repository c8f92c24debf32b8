// Package extract converts platform-specific conversation DOM subtrees into
// ordered, typed content items and Markdown fragments.
//
// The package works directly on golang.org/x/net/html node trees. Nothing in
// here mutates the source DOM: "element minus nested containers" views are
// expressed as skip predicates over descendant subtrees, never as clones.
package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// ConvertOptions controls the generic HTML→Markdown conversion.
type ConvertOptions struct {
	// SkipElement drops an element and its entire subtree from the output.
	// This is the seam by which block processors prevent double-processing:
	// anything a dedicated processor claims is skipped here.
	SkipElement func(n *html.Node) bool

	// IgnoreTags unwraps the named elements: the wrapper contributes no
	// markup but its children are still recursed into. Distinct from
	// SkipElement, which drops wrapper and content both.
	IgnoreTags map[string]struct{}

	// InCodeBlock suppresses inline backticks for <code> elements that are
	// already inside a dedicated code-block context.
	InCodeBlock bool
}

// HTMLToMarkdown converts the child nodes of n (not n itself) to inline
// Markdown. Text nodes pass through verbatim, strong/b and em/i become
// emphasis markers, code becomes backticked, anchors become links, br
// becomes a newline. Block tags not skipped or ignored contribute their
// recursively-converted content with no added marker; callers needing
// heading or list markers intercept those tags before delegating here.
//
// Output is returned untrimmed; callers trim.
func HTMLToMarkdown(n *html.Node, opts ConvertOptions) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		convertNode(c, opts, &b)
	}
	return b.String()
}

func convertNode(n *html.Node, opts ConvertOptions, b *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		// fall through
	default:
		return
	}

	if opts.SkipElement != nil && opts.SkipElement(n) {
		return
	}

	tag := strings.ToLower(n.Data)
	if _, ignored := opts.IgnoreTags[tag]; ignored {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			convertNode(c, opts, b)
		}
		return
	}

	switch tag {
	case "strong", "b":
		inner := HTMLToMarkdown(n, opts)
		if strings.TrimSpace(inner) != "" {
			b.WriteString("**" + strings.TrimSpace(inner) + "**")
		}
	case "em", "i":
		inner := HTMLToMarkdown(n, opts)
		if strings.TrimSpace(inner) != "" {
			b.WriteString("*" + strings.TrimSpace(inner) + "*")
		}
	case "code":
		inner := HTMLToMarkdown(n, opts)
		if opts.InCodeBlock {
			b.WriteString(inner)
		} else if inner != "" {
			b.WriteString("`" + inner + "`")
		}
	case "a":
		inner := strings.TrimSpace(HTMLToMarkdown(n, opts))
		href := Attr(n, "href")
		switch {
		case inner == "":
			// Nothing to link.
		case href == "":
			b.WriteString(inner)
		default:
			b.WriteString("[" + inner + "](" + href + ")")
		}
	case "br":
		b.WriteString("\n")
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			convertNode(c, opts, b)
		}
	}
}
