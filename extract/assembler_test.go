package extract

import (
	"reflect"
	"strings"
	"testing"

	"github.com/SirTensor/chatbot-QnA-clipper-sub000/models"
)

const assistantFixture = `<div>
<p>Intro paragraph with <strong>bold</strong>.</p>
<pre><code class="language-go">fmt.Println("hi")</code></pre>
<ul><li>point one</li><li>point two</li></ul>
<table><thead><tr><th>K</th></tr></thead><tbody><tr><td>v</td></tr></tbody></table>
<div class="thinking"><p>internal reasoning</p></div>
<p>Closing words.</p>
</div>`

func TestAssistantItems_OrderAndTypes(t *testing.T) {
	e := testExtractor(t)
	body := parseBody(t, assistantFixture)
	container := firstTag(t, body, "div")

	items := e.AssistantItems(container)

	wantTypes := []models.ItemType{
		models.ItemText,      // intro paragraph
		models.ItemCodeBlock, // fenced code
		models.ItemText,      // list + table + closing, merged
	}
	if len(items) != len(wantTypes) {
		t.Fatalf("got %d items (%+v), want %d", len(items), items, len(wantTypes))
	}
	for i, w := range wantTypes {
		if items[i].Type != w {
			t.Errorf("item %d type = %q, want %q", i, items[i].Type, w)
		}
	}

	if items[0].Content != "Intro paragraph with **bold**." {
		t.Errorf("intro = %q", items[0].Content)
	}
	if items[1].Language != "go" || items[1].Content != `fmt.Println("hi")` {
		t.Errorf("code item = %+v", items[1])
	}
	merged := items[2].Content
	for _, part := range []string{"- point one", "| K |", "Closing words."} {
		if !strings.Contains(merged, part) {
			t.Errorf("merged text missing %q:\n%s", part, merged)
		}
	}
	if strings.Contains(merged, "internal reasoning") {
		t.Errorf("skipped subtree leaked into output:\n%s", merged)
	}
}

func TestAssistantItems_NoDoubleEmission(t *testing.T) {
	e := testExtractor(t)
	body := parseBody(t, `<div><blockquote><p>quoted</p><ul><li>inner</li></ul><pre><code>q()</code></pre></blockquote></div>`)
	container := firstTag(t, body, "div")

	items := e.AssistantItems(container)
	all := ""
	for _, it := range items {
		all += it.Content + "\n"
	}
	for _, token := range []string{"quoted", "inner", "q()"} {
		if strings.Count(all, token) != 1 {
			t.Errorf("token %q emitted %d times:\n%s", token, strings.Count(all, token), all)
		}
	}
}

func TestAssistantItems_Idempotent(t *testing.T) {
	e := testExtractor(t)
	body := parseBody(t, assistantFixture)
	container := firstTag(t, body, "div")

	first := e.AssistantItems(container)
	second := e.AssistantItems(container)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeat extraction differs:\nfirst: %+v\nsecond: %+v", first, second)
	}
}

func TestAssistantItems_EmptyAndNil(t *testing.T) {
	e := testExtractor(t)

	if items := e.AssistantItems(nil); items == nil || len(items) != 0 {
		t.Errorf("nil container: got %v, want empty slice", items)
	}

	body := parseBody(t, `<div>   </div>`)
	container := firstTag(t, body, "div")
	if items := e.AssistantItems(container); len(items) != 0 {
		t.Errorf("empty container: got %+v", items)
	}
}

func TestAssistantItems_ImageInsideParagraph(t *testing.T) {
	e := testExtractor(t)
	body := parseBody(t, `<div><p>Look: <img src="https://cdn.example.com/p.png" alt="plot"> done.</p></div>`)
	container := firstTag(t, body, "div")

	items := e.AssistantItems(container)
	var image, text bool
	for _, it := range items {
		switch it.Type {
		case models.ItemImage:
			image = true
			if it.Src != "https://cdn.example.com/p.png" {
				t.Errorf("src = %q", it.Src)
			}
		case models.ItemText:
			text = true
			if strings.Contains(it.Content, "cdn.example.com") {
				t.Errorf("image leaked into text: %q", it.Content)
			}
		}
	}
	if !image || !text {
		t.Errorf("want both image and text items, got %+v", items)
	}
}

func TestAssistantItems_TableInsidePreWrapper(t *testing.T) {
	e := testExtractor(t)
	body := parseBody(t, `<div><pre><table><thead><tr><th>A</th></tr></thead><tbody><tr><td>1</td></tr></tbody></table></pre></div>`)
	container := firstTag(t, body, "div")

	items := e.AssistantItems(container)
	if len(items) != 1 || items[0].Type != models.ItemText {
		t.Fatalf("got %+v, want one text item", items)
	}
	if !strings.HasPrefix(items[0].Content, "| A |") {
		t.Errorf("expected markdown table, got %q", items[0].Content)
	}
}

func TestAssistantItems_ArtifactStub(t *testing.T) {
	e := testExtractor(t)
	body := parseBody(t, `<div><p>Made you a doc.</p><div class="artifact-cell"><div class="artifact-title">Plan</div><div class="artifact-kind">Document</div><pre><code>should not surface</code></pre></div></div>`)
	container := firstTag(t, body, "div")

	items := e.AssistantItems(container)
	if len(items) != 2 {
		t.Fatalf("got %+v, want text + interactive", items)
	}
	if items[1].Type != models.ItemInteractive || items[1].Title != "Plan" {
		t.Errorf("artifact item = %+v", items[1])
	}
	for _, it := range items {
		if strings.Contains(it.Content, "should not surface") {
			t.Errorf("artifact body leaked: %+v", it)
		}
	}
}
