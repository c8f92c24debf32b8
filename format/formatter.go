// Package format renders extracted conversations to Markdown documents.
package format

import (
	"fmt"
	"strings"

	"github.com/SirTensor/chatbot-QnA-clipper-sub000/models"
)

// Formatter renders conversations according to one set of style options.
// It is stateless and safe for concurrent use.
type Formatter struct {
	opts models.FormatOptions
}

// New builds a Formatter, applying defaults to unset options.
func New(opts models.FormatOptions) *Formatter {
	opts.Defaults()
	return &Formatter{opts: opts}
}

// Conversation renders the whole conversation: optional title heading,
// then each turn labeled by author, separated by horizontal rules.
func (f *Formatter) Conversation(conv *models.Conversation) string {
	var sections []string

	if f.opts.IncludeTitle && conv.Title != "" {
		sections = append(sections, "# "+conv.Title)
	}

	for i, turn := range conv.Turns {
		body := f.turnBody(turn)
		if body == "" {
			continue
		}
		sections = append(sections, f.label(turn.Role, i+1)+"\n\n"+body)
	}

	return strings.Join(sections, "\n\n---\n\n")
}

// Items renders an item sequence alone, without turn labels. Used for
// single-turn output and the assistant-content Markdown of one turn.
func (f *Formatter) Items(items []models.ContentItem) string {
	var parts []string
	for _, it := range items {
		if s := renderItem(it); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}

func (f *Formatter) turnBody(turn models.Turn) string {
	if turn.Role == models.RoleUser {
		var parts []string
		if turn.Text != "" {
			parts = append(parts, turn.Text)
		}
		for _, img := range turn.Images {
			if s := renderItem(img); s != "" {
				parts = append(parts, s)
			}
		}
		for _, file := range turn.Files {
			if s := renderItem(file); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "\n\n")
	}
	return f.Items(turn.Items)
}

// label renders the author label for one turn per the configured style.
func (f *Formatter) label(role models.Role, index int) string {
	name := "User"
	if role == models.RoleAssistant {
		name = "Assistant"
	}
	if f.opts.NumberTurns {
		name = fmt.Sprintf("%s (%d)", name, index)
	}

	switch f.opts.LabelStyle {
	case "bold":
		return "**" + name + ":**"
	case "plain":
		return name + ":"
	default:
		return strings.Repeat("#", f.opts.HeaderLevel) + " " + name + ":"
	}
}

func renderItem(it models.ContentItem) string {
	switch it.Type {
	case models.ItemText:
		return it.Content

	case models.ItemCodeBlock:
		lang := it.Language
		if lang == "" {
			lang = "text"
		}
		return "```" + lang + "\n" + it.Content + "\n```"

	case models.ItemImage:
		desc := it.ExtractedContent
		if desc == "" {
			desc = "Image"
		}
		return "![" + desc + "](" + it.Src + ")"

	case models.ItemInteractive:
		label := "**[" + it.Title + "]**"
		if it.ArtifactType != "" {
			label += " (" + it.ArtifactType + ")"
		}
		return label

	case models.ItemFile:
		label := "[Attached: " + it.FileName
		if it.FileType != "" {
			label += " (" + it.FileType + ")"
		}
		return label + "]"
	}
	return ""
}
