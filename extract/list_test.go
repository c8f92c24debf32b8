package extract

import (
	"testing"
)

func TestList_OrderedStartAttribute(t *testing.T) {
	e := testExtractor(t)
	body := parseBody(t, `<ol start="5"><li>First</li><li><ul><li>Sub</li></ul></li><li>Third</li></ol>`)
	ol := firstTag(t, body, "ol")

	got, ok := e.List(ol, 0, false, 0)
	if !ok {
		t.Fatal("expected list content")
	}
	want := "5. First\n6.\n    - Sub\n7. Third"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestList_UnorderedNested(t *testing.T) {
	e := testExtractor(t)
	body := parseBody(t, `<ul><li>One<ul><li>Deep</li></ul></li><li>Two</li></ul>`)
	ul := firstTag(t, body, "ul")

	got, ok := e.List(ul, 0, false, 0)
	if !ok {
		t.Fatal("expected list content")
	}
	want := "- One\n    - Deep\n- Two"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestList_EmptyItemKeepsBareMarker(t *testing.T) {
	e := testExtractor(t)
	body := parseBody(t, `<ol><li>a</li><li></li><li>b</li></ol>`)
	ol := firstTag(t, body, "ol")

	got, ok := e.List(ol, 0, false, 0)
	if !ok {
		t.Fatal("expected list content")
	}
	// The empty item emits a bare marker without consuming a number.
	want := "1. a\n2.\n2. b"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestList_AllItemsEmpty(t *testing.T) {
	e := testExtractor(t)
	body := parseBody(t, `<ul><li></li><li>  </li></ul>`)
	ul := firstTag(t, body, "ul")

	if _, ok := e.List(ul, 0, false, 0); ok {
		t.Error("list with no content should report ok=false")
	}
}

func TestList_ItemWithCodeBlock(t *testing.T) {
	e := testExtractor(t)
	body := parseBody(t, `<ul><li>Run this:<pre><code class="language-bash">ls -la</code></pre></li></ul>`)
	ul := firstTag(t, body, "ul")

	got, ok := e.List(ul, 0, false, 0)
	if !ok {
		t.Fatal("expected list content")
	}
	want := "- Run this:\n    ```bash\n    ls -la\n    ```"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestList_InlineFormattingInItems(t *testing.T) {
	e := testExtractor(t)
	body := parseBody(t, `<ul><li>Use <code>go vet</code> <strong>always</strong></li></ul>`)
	ul := firstTag(t, body, "ul")

	got, ok := e.List(ul, 0, false, 0)
	if !ok {
		t.Fatal("expected list content")
	}
	want := "- Use `go vet` **always**"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
