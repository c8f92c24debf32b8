package cache

import (
	"testing"
	"time"

	"github.com/SirTensor/chatbot-QnA-clipper-sub000/models"
)

func TestKey_DistinguishesInputs(t *testing.T) {
	base := Key("https://chatgpt.com/share/x", "", "markdown", models.FormatOptions{HeaderLevel: 3})

	variants := []string{
		Key("https://chatgpt.com/share/y", "", "markdown", models.FormatOptions{HeaderLevel: 3}),
		Key("https://chatgpt.com/share/x", "chatgpt", "markdown", models.FormatOptions{HeaderLevel: 3}),
		Key("https://chatgpt.com/share/x", "", "items", models.FormatOptions{HeaderLevel: 3}),
		Key("https://chatgpt.com/share/x", "", "markdown", models.FormatOptions{HeaderLevel: 2}),
		Key("https://chatgpt.com/share/x", "", "markdown", models.FormatOptions{HeaderLevel: 3, NumberTurns: true}),
	}
	for i, v := range variants {
		if v == base {
			t.Errorf("variant %d collided with the base key", i)
		}
	}

	if base != Key("https://chatgpt.com/share/x", "", "markdown", models.FormatOptions{HeaderLevel: 3}) {
		t.Error("identical inputs must produce identical keys")
	}
}

func TestCache_GetRespectsMaxAge(t *testing.T) {
	c := New(10)
	key := Key("u", "p", "markdown", models.FormatOptions{})
	c.Set(key, &models.ExtractResponse{Success: true})

	if _, ok := c.Get(key, 0); ok {
		t.Error("maxAge 0 must disable the lookup")
	}
	if resp, ok := c.Get(key, 60_000); !ok || !resp.Success {
		t.Error("fresh entry should hit")
	}

	time.Sleep(5 * time.Millisecond)
	if _, ok := c.Get(key, 1); ok {
		t.Error("entry older than maxAge should miss")
	}
}

func TestCache_EvictsAtCapacity(t *testing.T) {
	c := New(2)
	c.Set("a", &models.ExtractResponse{})
	c.Set("b", &models.ExtractResponse{})
	c.Set("c", &models.ExtractResponse{})

	c.mu.RLock()
	n := len(c.store)
	c.mu.RUnlock()
	if n > 2 {
		t.Errorf("store grew past capacity: %d", n)
	}
}
