package platform

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/SirTensor/chatbot-QnA-clipper-sub000/extract"
	"github.com/SirTensor/chatbot-QnA-clipper-sub000/models"
)

// ChatGPT adapts chatgpt.com conversation pages. Turns are <article>
// elements carrying a conversation-turn testid; the author role is an
// explicit data attribute, which makes this the most stable of the four
// adapters.
func ChatGPT() *Adapter {
	return &Adapter{
		Name:      "chatgpt",
		Hosts:     []string{"chatgpt.com", "chat.openai.com"},
		ShareURL:  "https://chatgpt.com/share/<id>",
		DetectDOM: `div[data-message-author-role]`,
		TitleSel:  `div[data-testid="conversation-title"]`,

		Turn: `article[data-testid^="conversation-turn"]`,
		Role: func(s *goquery.Selection) models.Role {
			v, _ := s.Find("div[data-message-author-role]").First().Attr("data-message-author-role")
			return attrRole(v)
		},

		UserText:  `div[data-message-author-role="user"] div.whitespace-pre-wrap`,
		UserImage: `div[data-message-author-role="user"] img`,
		UserFile:  `div[data-message-author-role="user"] div[class*="file-tile"]`,
		FileName:  `div.truncate.font-semibold`,
		FileType:  `div.text-token-text-secondary`,

		AssistantRoot: `div[data-message-author-role="assistant"] div.markdown`,

		Extract: extract.Config{
			CodeContainer: "pre",
			CodeLeaf:      "pre code",
			// The header bar above each code block carries the language
			// as its first text span.
			LangIndicator: []string{`div.flex.items-center span`},
			CodeSkip:      []string{`div.sticky`, `button`},
			Artifact:      `div[class*="canvas-card"]`,
			ArtifactTitle: []string{`div.font-semibold`},
			ArtifactType:  []string{`div.text-token-text-secondary`},
			ImageCaption:  []string{`figcaption`},
			Skip: []string{
				`div[class*="sources-carousel"]`,
				`div[data-testid="reasoning-block"]`,
				`button`,
			},
		},
	}
}
