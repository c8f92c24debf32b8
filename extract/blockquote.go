package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// Blockquote renders a blockquote subtree to Markdown. Every line of the
// result carries nestLevel+1 "> " markers; nested blockquotes recurse with
// a deeper level and splice their already-prefixed lines in verbatim.
// Termination is guaranteed because every recursive call descends into a
// strictly smaller subtree.
func (e *Extractor) Blockquote(el *html.Node, nestLevel int) string {
	prefix := strings.Repeat("> ", nestLevel+1)
	blank := strings.TrimRight(prefix, " ")

	var lines []string
	emit := func(s string) {
		for _, ln := range splitLines(s) {
			if strings.TrimSpace(ln) == "" {
				lines = append(lines, blank)
			} else {
				lines = append(lines, prefix+ln)
			}
		}
	}

	for c := el.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if txt := strings.Join(strings.Fields(c.Data), " "); txt != "" {
				lines = append(lines, prefix+txt)
			}
			continue
		case html.ElementNode:
			// fall through
		default:
			continue
		}

		if matchAny(e.m.skip, c) {
			continue
		}

		switch tag := TagName(c); {
		case headingLevel(tag) > 0:
			text := strings.TrimSpace(HTMLToMarkdown(c, e.inlineOptions()))
			if text != "" {
				lines = append(lines, blank)
				lines = append(lines, prefix+strings.Repeat("#", headingLevel(tag))+" "+text)
				lines = append(lines, blank)
			}

		case tag == "p":
			if md := strings.TrimSpace(HTMLToMarkdown(c, e.inlineOptions())); md != "" {
				emit(md)
				lines = append(lines, blank)
			}

		case tag == "blockquote":
			inner := e.Blockquote(c, nestLevel+1)
			if inner != "" {
				lines = append(lines, blank)
				lines = append(lines, splitLines(inner)...)
				lines = append(lines, blank)
			}

		case tag == "ul" || tag == "ol":
			if body, ok := e.List(c, 0, true, nestLevel+1); ok {
				lines = append(lines, splitLines(body)...)
			}

		case e.m.codeContainer.Match(c):
			if lang, content, ok := e.CodeBlock(c); ok {
				lines = append(lines, prefix+"```"+lang)
				for _, ln := range splitLines(content) {
					lines = append(lines, prefix+ln)
				}
				lines = append(lines, prefix+"```")
				lines = append(lines, blank)
			}

		default:
			if md := strings.TrimSpace(HTMLToMarkdown(c, e.inlineOptions())); md != "" {
				emit(md)
			}
		}
	}

	return strings.Join(normalizeQuoteLines(lines), "\n")
}

// inlineOptions is the converter configuration used for inline content
// inside structured blocks: platform-skipped subtrees are dropped, nested
// block containers are excluded because dedicated processors own them.
func (e *Extractor) inlineOptions() ConvertOptions {
	return ConvertOptions{
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
	}
}

func headingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

// normalizeQuoteLines collapses consecutive blank marker lines into one and
// strips leading and trailing blank marker lines.
func normalizeQuoteLines(lines []string) []string {
	isBlank := func(s string) bool {
		return strings.TrimSpace(strings.ReplaceAll(s, ">", "")) == ""
	}

	var out []string
	prevBlank := false
	for _, ln := range lines {
		if isBlank(ln) {
			if prevBlank {
				continue
			}
			prevBlank = true
			out = append(out, ln)
			continue
		}
		prevBlank = false
		out = append(out, ln)
	}
	for len(out) > 0 && isBlank(out[0]) {
		out = out[1:]
	}
	for len(out) > 0 && isBlank(out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return out
}
