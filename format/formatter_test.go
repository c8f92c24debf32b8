package format

import (
	"strings"
	"testing"

	"github.com/SirTensor/chatbot-QnA-clipper-sub000/models"
)

func sampleConversation() *models.Conversation {
	return &models.Conversation{
		Platform: "chatgpt",
		Title:    "Sorting slices",
		Turns: []models.Turn{
			{Role: models.RoleUser, Text: "How do I sort a slice?"},
			{Role: models.RoleAssistant, Items: []models.ContentItem{
				models.NewTextItem("Use the sort package."),
				models.NewCodeBlockItem("go", "sort.Slice(s, less)"),
			}},
		},
	}
}

func TestConversation_DefaultStyle(t *testing.T) {
	f := New(models.FormatOptions{})
	got := f.Conversation(sampleConversation())

	for _, want := range []string{
		"### User:",
		"### Assistant:",
		"How do I sort a slice?",
		"```go\nsort.Slice(s, less)\n```",
		"\n\n---\n\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
	// Title is off by default.
	if strings.Contains(got, "# Sorting slices") {
		t.Errorf("title should be omitted by default:\n%s", got)
	}
}

func TestConversation_LabelStyles(t *testing.T) {
	conv := sampleConversation()

	tests := []struct {
		name string
		opts models.FormatOptions
		want string
	}{
		{"bold", models.FormatOptions{LabelStyle: "bold"}, "**User:**"},
		{"plain", models.FormatOptions{LabelStyle: "plain"}, "User:"},
		{"heading level 2", models.FormatOptions{LabelStyle: "heading", HeaderLevel: 2}, "## User:"},
		{"numbered", models.FormatOptions{NumberTurns: true}, "### Assistant (2):"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.opts).Conversation(conv)
			if !strings.Contains(got, tt.want) {
				t.Errorf("missing %q in:\n%s", tt.want, got)
			}
		})
	}
}

func TestConversation_TitleIncluded(t *testing.T) {
	got := New(models.FormatOptions{IncludeTitle: true}).Conversation(sampleConversation())
	if !strings.HasPrefix(got, "# Sorting slices") {
		t.Errorf("expected title heading first:\n%s", got)
	}
}

func TestItems_AllTypes(t *testing.T) {
	f := New(models.FormatOptions{})
	got := f.Items([]models.ContentItem{
		models.NewTextItem("prose"),
		models.NewCodeBlockItem("", "raw"),
		models.NewImageItem("https://e.com/a.png", "alt", "A chart"),
		models.NewInteractiveItem("Plan", "Document"),
	})

	for _, want := range []string{
		"prose",
		"```text\nraw\n```",
		"![A chart](https://e.com/a.png)",
		"**[Plan]** (Document)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}

func TestTurnBody_UserAttachments(t *testing.T) {
	conv := &models.Conversation{
		Platform: "claude",
		Turns: []models.Turn{{
			Role:   models.RoleUser,
			Text:   "See attached.",
			Images: []models.ContentItem{models.NewImageItem("https://e.com/s.png", "", "Image")},
			Files:  []models.ContentItem{models.NewFileItem("notes.pdf", "pdf", true, "")},
		}},
	}
	got := New(models.FormatOptions{}).Conversation(conv)

	for _, want := range []string{
		"See attached.",
		"![Image](https://e.com/s.png)",
		"[Attached: notes.pdf (pdf)]",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}

func TestConversation_EmptyTurnsSkipped(t *testing.T) {
	conv := &models.Conversation{
		Platform: "grok",
		Turns: []models.Turn{
			{Role: models.RoleUser},
			{Role: models.RoleAssistant, Items: []models.ContentItem{models.NewTextItem("only this")}},
		},
	}
	got := New(models.FormatOptions{}).Conversation(conv)
	if strings.Contains(got, "User") {
		t.Errorf("empty user turn should be skipped:\n%s", got)
	}
	if !strings.Contains(got, "only this") {
		t.Errorf("assistant content missing:\n%s", got)
	}
}
