package platform

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/SirTensor/chatbot-QnA-clipper-sub000/extract"
	"github.com/SirTensor/chatbot-QnA-clipper-sub000/models"
)

// Grok adapts grok.com conversation pages. Grok carries no role attribute
// at all; user turns are distinguished purely by the row alignment class
// on the bubble's ancestor, which makes this the most redesign-sensitive
// adapter of the four.
func Grok() *Adapter {
	return &Adapter{
		Name:      "grok",
		Hosts:     []string{"grok.com", "grok.x.com"},
		ShareURL:  "https://grok.com/share/<id>",
		DetectDOM: `div.message-bubble`,
		TitleSel:  `div[class*="title-bar"] span`,

		Turn: `div.message-bubble`,
		Role: func(s *goquery.Selection) models.Role {
			if s.Closest(`div.items-end`).Length() > 0 {
				return models.RoleUser
			}
			return models.RoleAssistant
		},

		UserText:  `span.whitespace-pre-wrap`,
		UserImage: `img[alt="Uploaded image"]`,
		UserFile:  `div[class*="file-chip"]`,
		FileName:  `span.truncate`,
		FileType:  `span.text-secondary`,

		AssistantRoot: `div.response-content-markdown`,

		Extract: extract.Config{
			CodeContainer: "pre",
			CodeLeaf:      "pre code",
			LangIndicator: []string{`div.flex.items-center span.font-mono`},
			CodeSkip:      []string{`div.flex.items-center`, `button`},
			ImageCaption:  []string{`figcaption`},
			Skip: []string{
				`div[class*="citation"]`,
				`button`,
			},
		},
	}
}
