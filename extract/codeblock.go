package extract

import (
	"regexp"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// langClassRe extracts the language from highlighter classes such as
// "language-python" or "lang-go".
var langClassRe = regexp.MustCompile(`(?:^|\s)lang(?:uage)?-([A-Za-z0-9+#._-]+)`)

// langLabelRe constrains free-text language labels: a single short token,
// no spaces, starting with an alphanumeric.
var langLabelRe = regexp.MustCompile(`^[A-Za-z0-9+#][A-Za-z0-9+#._-]{0,23}$`)

// knownLangs whitelists labels accepted from auxiliary small-text elements,
// where arbitrary UI strings ("Copy code", timestamps) sit next to genuine
// language names.
var knownLangs = map[string]struct{}{
	"bash": {}, "c": {}, "c#": {}, "c++": {}, "cpp": {}, "csharp": {},
	"css": {}, "dart": {}, "diff": {}, "dockerfile": {}, "go": {},
	"golang": {}, "graphql": {}, "haskell": {}, "html": {}, "ini": {},
	"java": {}, "javascript": {}, "js": {}, "json": {}, "jsx": {},
	"kotlin": {}, "lua": {}, "makefile": {}, "markdown": {}, "matlab": {},
	"objective-c": {}, "perl": {}, "php": {}, "plaintext": {},
	"powershell": {}, "python": {}, "r": {}, "ruby": {}, "rust": {},
	"scala": {}, "shell": {}, "sh": {}, "sql": {}, "swift": {},
	"text": {}, "toml": {}, "tsx": {}, "typescript": {}, "ts": {},
	"xml": {}, "yaml": {}, "zig": {},
}

// CodeBlock extracts a fenced-code payload from a code-block container.
//
// The code-bearing leaf is located via the platform's CodeLeaf selector
// with a generic <code> fallback; the container itself is the last resort.
// Language resolution order, first success wins:
//
//  1. a language-*/lang-* class on the code leaf (or the container),
//  2. a dedicated language-indicator element's text,
//  3. any auxiliary small-text label matching a known language name,
//  4. "text" when code content is non-empty and nothing else matched.
//
// Returns ok=false when the extracted code, after trimming, is empty.
func (e *Extractor) CodeBlock(el *html.Node) (language, content string, ok bool) {
	leaf := e.codeLeaf(el)

	content = e.codeText(leaf)
	content = strings.TrimRight(content, " \t\n")
	if strings.TrimSpace(content) == "" {
		return "", "", false
	}

	if lang := langFromClass(leaf); lang != "" {
		return lang, content, true
	}
	if leaf != el {
		if lang := langFromClass(el); lang != "" {
			return lang, content, true
		}
	}
	if ind := queryFirstOf(el, e.m.langIndicator); ind != nil {
		if lang := normalizeLangLabel(Text(ind)); lang != "" {
			return lang, content, true
		}
	}
	if lang := e.auxiliaryLangLabel(el, leaf); lang != "" {
		return lang, content, true
	}
	return "text", content, true
}

// codeLeaf resolves the element actually bearing the code text.
func (e *Extractor) codeLeaf(el *html.Node) *html.Node {
	if e.m.codeLeaf != nil {
		if n := cascadia.Query(el, e.m.codeLeaf); n != nil {
			return n
		}
	}
	if IsElement(el, "code") {
		return el
	}
	var code *html.Node
	Walk(el, func(n *html.Node) bool {
		if code == nil && IsElement(n, "code") {
			code = n
		}
		return code == nil
	})
	if code != nil {
		return code
	}
	return el
}

// codeText collects the raw code text, preserving line structure: text
// nodes verbatim, <br> as newline, a newline after block-level wrappers
// (syntax highlighters often emit one div or table row per line). Gutter
// and decoration elements are dropped entirely.
func (e *Extractor) codeText(n *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			return
		case html.ElementNode:
			// fall through
		default:
			return
		}

		if matchAny(e.m.codeSkip, n) || isGutter(n) {
			return
		}
		if IsElement(n, "br") {
			b.WriteString("\n")
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
		switch TagName(n) {
		case "div", "p", "tr", "li":
			if !strings.HasSuffix(b.String(), "\n") {
				b.WriteString("\n")
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collect(c)
	}
	return b.String()
}

func isGutter(n *html.Node) bool {
	class := strings.ToLower(Attr(n, "class"))
	return strings.Contains(class, "gutter") || strings.Contains(class, "line-number")
}

func langFromClass(n *html.Node) string {
	if n == nil {
		return ""
	}
	if m := langClassRe.FindStringSubmatch(Attr(n, "class")); m != nil {
		return strings.ToLower(m[1])
	}
	return ""
}

// normalizeLangLabel validates a dedicated indicator element's text as a
// language name. Dedicated indicators are trusted as long as the text looks
// like a single language token.
func normalizeLangLabel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || !langLabelRe.MatchString(s) {
		return ""
	}
	return s
}

// auxiliaryLangLabel scans small decoration elements around (but not
// inside) the code leaf for a known language name. Unlike the dedicated
// indicator path this only accepts whitelisted names, because arbitrary
// header text would otherwise be misread as a language.
func (e *Extractor) auxiliaryLangLabel(el, leaf *html.Node) string {
	var found string
	Walk(el, func(n *html.Node) bool {
		if found != "" || n == leaf {
			return false
		}
		switch TagName(n) {
		case "span", "div", "small", "button":
			label := strings.ToLower(strings.TrimSpace(Text(n)))
			if _, ok := knownLangs[label]; ok && langLabelRe.MatchString(label) {
				found = label
				return false
			}
		}
		return true
	})
	return found
}
