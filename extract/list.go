package extract

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// listIndent is the per-nesting-level indentation for list content.
const listIndent = "    "

// List renders a <ul>/<ol> subtree to Markdown lines.
//
// Each direct <li> contributes one marker line bearing the item's direct
// inline content (its subtree minus any nested list/blockquote/code-block
// containers), followed by the recursively rendered nested containers at
// one deeper indentation level. An item with only nested content still
// emits a bare marker line so bullets and numbering are never dropped.
//
// Ordered markers start at the list's start attribute (default 1) and
// increment once per item that produced any content. When isWithinBlockquote
// is set, every emitted line receives blockquoteLevel "> " markers before
// the list indentation.
//
// Returns ok=false when no item produced any content.
func (e *Extractor) List(el *html.Node, nestLevel int, isWithinBlockquote bool, blockquoteLevel int) (string, bool) {
	lines, ok := e.listLines(el, nestLevel)
	if !ok {
		return "", false
	}
	if isWithinBlockquote {
		prefix := strings.Repeat("> ", blockquoteLevel)
		for i, ln := range lines {
			lines[i] = strings.TrimRight(prefix+ln, " ")
		}
	}
	return strings.Join(lines, "\n"), true
}

func (e *Extractor) listLines(el *html.Node, nestLevel int) ([]string, bool) {
	ordered := IsElement(el, "ol")
	counter := 1
	if start := Attr(el, "start"); start != "" {
		if n, err := strconv.Atoi(start); err == nil {
			counter = n
		}
	}

	indent := strings.Repeat(listIndent, nestLevel)
	var lines []string
	anyContent := false

	for li := el.FirstChild; li != nil; li = li.NextSibling {
		if !IsElement(li, "li") {
			continue
		}

		direct := e.listItemDirectContent(li)
		nested := e.listItemNestedLines(li, nestLevel)

		marker := "-"
		if ordered {
			marker = fmt.Sprintf("%d.", counter)
		}

		if direct != "" {
			lines = append(lines, indent+marker+" "+direct)
		} else {
			lines = append(lines, indent+marker)
		}
		lines = append(lines, nested...)

		if direct != "" || len(nested) > 0 {
			anyContent = true
			counter++
		}
	}

	if !anyContent {
		return nil, false
	}
	return lines, true
}

// listItemDirectContent converts the item's own inline content, viewing the
// subtree through a predicate that excludes nested block containers. The
// live DOM is never touched.
func (e *Extractor) listItemDirectContent(li *html.Node) string {
	md := HTMLToMarkdown(li, ConvertOptions{
		SkipElement: func(n *html.Node) bool {
			switch TagName(n) {
			case "ul", "ol", "blockquote":
				return true
			}
			if e.m.codeContainer.Match(n) {
				return true
			}
			return matchAny(e.m.skip, n)
		},
	})
	return strings.Join(strings.Fields(md), " ")
}

// listItemNestedLines locates the item's nested block containers in
// document order and renders each at one deeper indentation level. Wrapper
// elements are descended through; a container claims its whole subtree, so
// recursion never revisits content.
func (e *Extractor) listItemNestedLines(li *html.Node, nestLevel int) []string {
	childIndent := strings.Repeat(listIndent, nestLevel+1)
	var lines []string

	var scan func(n *html.Node)
	scan = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			if matchAny(e.m.skip, c) {
				continue
			}
			switch {
			case IsElement(c, "ul") || IsElement(c, "ol"):
				if body, ok := e.List(c, nestLevel+1, false, 0); ok {
					lines = append(lines, splitLines(body)...)
				}
			case IsElement(c, "blockquote"):
				bq := e.Blockquote(c, 0)
				for _, ln := range splitLines(bq) {
					lines = append(lines, childIndent+ln)
				}
			case e.m.codeContainer.Match(c):
				if lang, content, ok := e.CodeBlock(c); ok {
					lines = append(lines, childIndent+"```"+lang)
					for _, ln := range splitLines(content) {
						lines = append(lines, childIndent+ln)
					}
					lines = append(lines, childIndent+"```")
				}
			default:
				scan(c)
			}
		}
	}
	scan(li)
	return lines
}
