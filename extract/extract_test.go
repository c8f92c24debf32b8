package extract

import (
	"net/url"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

// parseBody parses an HTML fragment and returns the <body> node wrapping it.
func parseBody(t *testing.T, fragment string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		t.Fatalf("parse fragment: %v", err)
	}
	body := firstDescendant(doc, "body")
	if body == nil {
		t.Fatal("no body in parsed fragment")
	}
	return body
}

// firstTag returns the first descendant element with the given tag.
func firstTag(t *testing.T, root *html.Node, tag string) *html.Node {
	t.Helper()
	n := firstDescendant(root, tag)
	if n == nil {
		t.Fatalf("no <%s> in fragment", tag)
	}
	return n
}

// testExtractor builds an Extractor with a representative selector config
// and a fixed page origin.
func testExtractor(t *testing.T) *Extractor {
	t.Helper()
	base, err := url.Parse("https://chat.example.com/c/abc123")
	if err != nil {
		t.Fatalf("parse base URL: %v", err)
	}
	e, err := New(Config{
		CodeContainer:  "pre",
		CodeLeaf:       "pre code",
		LangIndicator:  []string{"div.code-lang"},
		CodeSkip:       []string{"div.code-header"},
		Artifact:       "div.artifact-cell",
		ArtifactTitle:  []string{"div.artifact-title"},
		ArtifactType:   []string{"div.artifact-kind"},
		ImageContainer: "figure",
		ImageCaption:   []string{"figcaption"},
		Skip:           []string{"div.thinking"},
	}, base)
	if err != nil {
		t.Fatalf("build extractor: %v", err)
	}
	return e
}

func TestHTMLToMarkdown_InlineFormatting(t *testing.T) {
	body := parseBody(t, `<p>Hello <strong>bold</strong> and <em>it</em> and <code>x+y</code> and <a href="https://e.com">link</a>.<br>Next</p>`)
	p := firstTag(t, body, "p")

	got := HTMLToMarkdown(p, ConvertOptions{})
	want := "Hello **bold** and *it* and `x+y` and [link](https://e.com).\nNext"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestHTMLToMarkdown_SkipDropsSubtree(t *testing.T) {
	body := parseBody(t, `<div>keep <span class="chrome">drop me</span> also</div>`)
	div := firstTag(t, body, "div")

	got := HTMLToMarkdown(div, ConvertOptions{
		SkipElement: func(n *html.Node) bool { return HasClass(n, "chrome") },
	})
	if strings.Contains(got, "drop me") {
		t.Errorf("skipped subtree leaked into output: %q", got)
	}
	if !strings.Contains(got, "keep") || !strings.Contains(got, "also") {
		t.Errorf("sibling content lost: %q", got)
	}
}

func TestHTMLToMarkdown_IgnoreTagUnwraps(t *testing.T) {
	body := parseBody(t, `<p>See <a href="https://e.com">the docs</a></p>`)
	p := firstTag(t, body, "p")

	got := HTMLToMarkdown(p, ConvertOptions{
		IgnoreTags: map[string]struct{}{"a": {}},
	})
	want := "See the docs"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestHTMLToMarkdown_CodeInsideCodeBlockContext(t *testing.T) {
	body := parseBody(t, `<div><code>raw</code></div>`)
	div := firstTag(t, body, "div")

	got := HTMLToMarkdown(div, ConvertOptions{InCodeBlock: true})
	if got != "raw" {
		t.Errorf("expected no backticks inside code-block context, got %q", got)
	}
}

func TestHTMLToMarkdown_EmptyAnchor(t *testing.T) {
	body := parseBody(t, `<p>before<a href="https://e.com"></a>after</p>`)
	p := firstTag(t, body, "p")

	got := HTMLToMarkdown(p, ConvertOptions{})
	if got != "beforeafter" {
		t.Errorf("empty anchor should contribute nothing, got %q", got)
	}
}
