package platform

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/SirTensor/chatbot-QnA-clipper-sub000/extract"
	"github.com/SirTensor/chatbot-QnA-clipper-sub000/models"
)

// Claude adapts claude.ai conversation pages. There is no explicit role
// attribute; the role is inferred from which content container a turn
// holds. Thinking blocks and artifact side-panel cards get special
// treatment: the former are excluded, the latter are reduced to stubs.
func Claude() *Adapter {
	return &Adapter{
		Name:      "claude",
		Hosts:     []string{"claude.ai"},
		ShareURL:  "https://claude.ai/share/<id>",
		DetectDOM: `div[data-testid="user-message"], div.font-claude-message`,
		TitleSel:  `div[data-testid="chat-title"], header .truncate`,

		Turn: `div[data-test-render-count]`,
		Role: func(s *goquery.Selection) models.Role {
			if s.Find(`div[data-testid="user-message"]`).Length() > 0 {
				return models.RoleUser
			}
			if s.Find(`div.font-claude-message, div[data-is-streaming]`).Length() > 0 {
				return models.RoleAssistant
			}
			return ""
		},

		UserText:  `div[data-testid="user-message"]`,
		UserImage: `img[alt^="Image"], div[data-testid="file-thumbnail"] img`,
		UserFile:  `div[data-testid="file-thumbnail"]`,
		FileName:  `h3`,
		FileType:  `p`,

		AssistantRoot: `div.font-claude-message`,

		Extract: extract.Config{
			CodeContainer: "pre",
			CodeLeaf:      "pre code",
			LangIndicator: []string{`div.text-text-300`, `div.code-block__code + div span`},
			CodeSkip:      []string{`div.sticky`, `button`},
			Artifact:      `div.artifact-block-cell`,
			ArtifactTitle: []string{`div.leading-tight`},
			ArtifactType:  []string{`div.text-text-300`, `div.text-sm`},
			ImageCaption:  []string{`figcaption`},
			Skip: []string{
				// Collapsed extended-thinking sections.
				`div[data-testid="thinking-block"]`,
				`div[class*="transition-all"] div[class*="overflow-hidden"] div[class*="text-text-300"]`,
				`button`,
			},
		},
	}
}
