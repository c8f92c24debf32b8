package platform

import (
	"errors"
	"strings"
	"testing"

	"github.com/SirTensor/chatbot-QnA-clipper-sub000/models"
)

const chatgptPage = `<html><head><title>Sorting slices</title></head><body>
<article data-testid="conversation-turn-1">
  <div data-message-author-role="user"><div class="whitespace-pre-wrap">How do I sort a slice?</div></div>
</article>
<article data-testid="conversation-turn-2">
  <div data-message-author-role="assistant"><div class="markdown">
    <p>Use the sort package.</p>
    <pre><code class="language-go">sort.Slice(s, less)</code></pre>
  </div></div>
</article>
</body></html>`

func TestConversation_ChatGPT(t *testing.T) {
	doc := mustDoc(t, chatgptPage)
	conv, err := Conversation(doc, ChatGPT(), mustURL(t, "https://chatgpt.com/c/1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if conv.Platform != "chatgpt" {
		t.Errorf("platform = %q", conv.Platform)
	}
	if conv.Title != "Sorting slices" {
		t.Errorf("title = %q", conv.Title)
	}
	if len(conv.Turns) != 2 {
		t.Fatalf("got %d turns, want 2: %+v", len(conv.Turns), conv.Turns)
	}

	user := conv.Turns[0]
	if user.Role != models.RoleUser || user.Text != "How do I sort a slice?" {
		t.Errorf("user turn = %+v", user)
	}

	asst := conv.Turns[1]
	if asst.Role != models.RoleAssistant {
		t.Fatalf("second turn role = %q", asst.Role)
	}
	var hasCode bool
	for _, it := range asst.Items {
		if it.Type == models.ItemCodeBlock {
			hasCode = true
			if it.Language != "go" || it.Content != "sort.Slice(s, less)" {
				t.Errorf("code item = %+v", it)
			}
		}
	}
	if !hasCode {
		t.Errorf("assistant items missing code block: %+v", asst.Items)
	}
}

func TestConversation_Gemini(t *testing.T) {
	page := `<html><body>
<user-query><div class="query-text">Explain goroutines</div></user-query>
<model-response><message-content><div class="markdown">
  <p>Goroutines are lightweight threads.</p>
  <model-thoughts><p>secret deliberation</p></model-thoughts>
</div></message-content></model-response>
</body></html>`

	conv, err := Conversation(mustDoc(t, page), Gemini(), mustURL(t, "https://gemini.google.com/app/1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(conv.Turns) != 2 {
		t.Fatalf("got %d turns, want 2", len(conv.Turns))
	}
	if conv.Turns[0].Role != models.RoleUser || conv.Turns[0].Text != "Explain goroutines" {
		t.Errorf("user turn = %+v", conv.Turns[0])
	}
	for _, it := range conv.Turns[1].Items {
		if strings.Contains(it.Content, "secret deliberation") {
			t.Errorf("thinking content leaked: %+v", it)
		}
	}
}

func TestConversation_NoTurns(t *testing.T) {
	doc := mustDoc(t, `<html><body><p>not a chat page</p></body></html>`)
	_, err := Conversation(doc, ChatGPT(), nil)

	var ee *models.ExtractError
	if !errors.As(err, &ee) || ee.Code != models.ErrCodeNoConversation {
		t.Errorf("expected NO_CONVERSATION, got %v", err)
	}
}

func TestConversation_UserAttachments(t *testing.T) {
	page := `<html><body>
<article data-testid="conversation-turn-1">
  <div data-message-author-role="user">
    <div class="whitespace-pre-wrap">See attached.</div>
    <img src="/files/shot.png" alt="screenshot">
    <img src="blob:https://chatgpt.com/tmp" alt="transient">
  </div>
</article>
</body></html>`

	conv, err := Conversation(mustDoc(t, page), ChatGPT(), mustURL(t, "https://chatgpt.com/c/2"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(conv.Turns) != 1 {
		t.Fatalf("got %d turns", len(conv.Turns))
	}
	imgs := conv.Turns[0].Images
	if len(imgs) != 1 {
		t.Fatalf("got %d images, want 1 (blob rejected): %+v", len(imgs), imgs)
	}
	if imgs[0].Src != "https://chatgpt.com/files/shot.png" {
		t.Errorf("src = %q", imgs[0].Src)
	}
}

func TestConversation_EmptyTurnDropped(t *testing.T) {
	page := `<html><body>
<article data-testid="conversation-turn-1">
  <div data-message-author-role="user"><div class="whitespace-pre-wrap">   </div></div>
</article>
<article data-testid="conversation-turn-2">
  <div data-message-author-role="assistant"><div class="markdown"><p>Real content.</p></div></div>
</article>
</body></html>`

	conv, err := Conversation(mustDoc(t, page), ChatGPT(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(conv.Turns) != 1 || conv.Turns[0].Role != models.RoleAssistant {
		t.Errorf("want only the assistant turn, got %+v", conv.Turns)
	}
}

func TestGenericConversation(t *testing.T) {
	page := `<html><head><title>An Article</title></head><body>
<article><h1>An Article</h1>` + strings.Repeat(`<p>Enough body text that readability treats this paragraph block as the main content of the page.</p>`, 10) + `</article>
</body></html>`

	conv, err := GenericConversation(page, mustURL(t, "https://example.com/post"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conv.Platform != GenericName {
		t.Errorf("platform = %q", conv.Platform)
	}
	if len(conv.Turns) != 1 || len(conv.Turns[0].Items) == 0 {
		t.Fatalf("turns = %+v", conv.Turns)
	}
	if !strings.Contains(conv.Turns[0].Items[0].Content, "main content") {
		t.Errorf("content = %q", conv.Turns[0].Items[0].Content)
	}
}
