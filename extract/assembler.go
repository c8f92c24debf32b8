package extract

import (
	"strings"

	"github.com/SirTensor/chatbot-QnA-clipper-sub000/models"
	"golang.org/x/net/html"
)

// run walks the assistant container in document order and dispatches each
// element to its block processor. Containers are visited before their
// descendants, and every successful dispatch claims the element together
// with its whole subtree, so no source element ever contributes to two
// items. Unrecognized elements are transparent: their children are walked
// in place.
func (p *pass) run(container *html.Node) []models.ContentItem {
	items := []models.ContentItem{}
	p.walk(container, &items)
	return mergeTextItems(items)
}

func (p *pass) walk(n *html.Node, items *[]models.ContentItem) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			// Stray text directly under a transparent container.
			if txt := strings.Join(strings.Fields(c.Data), " "); txt != "" {
				*items = append(*items, models.NewTextItem(txt))
			}
			continue
		case html.ElementNode:
			// fall through
		default:
			continue
		}

		if p.isProcessed(c) {
			continue
		}
		if p.skipped(c) {
			p.claim(c)
			continue
		}
		p.dispatch(c, items)
	}
}

// dispatch routes one element. Match order puts container types before
// leaf types so containers claim their descendants first.
func (p *pass) dispatch(c *html.Node, items *[]models.ContentItem) {
	e := p.ex
	tag := TagName(c)

	switch {
	case e.m.artifact != nil && e.m.artifact.Match(c):
		*items = append(*items, e.Artifact(c))
		p.claim(c)

	case tag == "table":
		p.emitTable(c, items)
		p.claim(c)

	case e.m.codeContainer.Match(c):
		// Platform quirk: some UIs render tables inside a pre wrapper.
		if tbl := firstDescendant(c, "table"); tbl != nil {
			p.emitTable(tbl, items)
		} else if lang, content, ok := e.CodeBlock(c); ok {
			*items = append(*items, models.NewCodeBlockItem(lang, content))
		}
		p.claim(c)

	case tag == "ul" || tag == "ol":
		if body, ok := e.List(c, 0, false, 0); ok {
			*items = append(*items, models.NewTextItem(body))
		}
		p.claim(c)

	case tag == "blockquote":
		if body := e.Blockquote(c, 0); body != "" {
			*items = append(*items, models.NewTextItem(body))
		}
		p.claim(c)

	case headingLevel(tag) > 0:
		if text := strings.TrimSpace(HTMLToMarkdown(c, e.inlineOptions())); text != "" {
			*items = append(*items, models.NewTextItem(strings.Repeat("#", headingLevel(tag))+" "+text))
		}
		p.claim(c)

	case tag == "hr":
		*items = append(*items, models.NewTextItem("---"))
		p.claim(c)

	case tag == "img" || (e.m.imageWrap != nil && e.m.imageWrap.Match(c)):
		if item := e.Image(c); item != nil {
			*items = append(*items, *item)
		}
		p.claim(c)

	case tag == "p":
		p.emitParagraph(c, items)
		p.claim(c)

	default:
		// Transparent container: walk children in place.
		p.walk(c, items)
	}
}

// emitTable appends a Markdown table, or a plain-text dump when no header
// row is discoverable. Unparseable tables are never dropped silently.
func (p *pass) emitTable(tbl *html.Node, items *[]models.ContentItem) {
	if md, ok := p.ex.Table(tbl); ok {
		*items = append(*items, models.NewTextItem(md))
		return
	}
	if dump := RawDump(tbl); dump != "" {
		*items = append(*items, models.NewTextItem(dump))
	}
}

// emitParagraph converts one paragraph. Images embedded in the paragraph
// are emitted as their own items first, then excluded from the text
// conversion through the skip predicate.
func (p *pass) emitParagraph(c *html.Node, items *[]models.ContentItem) {
	e := p.ex
	Walk(c, func(n *html.Node) bool {
		if IsElement(n, "img") && !p.isProcessed(n) {
			if item := e.Image(n); item != nil {
				*items = append(*items, *item)
			}
			p.claim(n)
			return false
		}
		return true
	})

	opts := e.inlineOptions()
	base := opts.SkipElement
	opts.SkipElement = func(n *html.Node) bool {
		return p.isProcessed(n) || base(n)
	}
	if md := strings.TrimSpace(HTMLToMarkdown(c, opts)); md != "" {
		*items = append(*items, models.NewTextItem(md))
	}
}

func firstDescendant(n *html.Node, tag string) *html.Node {
	var found *html.Node
	Walk(n, func(el *html.Node) bool {
		if found == nil && IsElement(el, tag) {
			found = el
		}
		return found == nil
	})
	return found
}

// mergeTextItems joins runs of adjacent text items with a paragraph break
// so downstream consumers see one prose block, not many fragments.
func mergeTextItems(items []models.ContentItem) []models.ContentItem {
	merged := []models.ContentItem{}
	for _, it := range items {
		if it.Type == models.ItemText && len(merged) > 0 && merged[len(merged)-1].Type == models.ItemText {
			merged[len(merged)-1].Content += "\n\n" + it.Content
			continue
		}
		merged = append(merged, it)
	}
	return merged
}
