package platform

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/SirTensor/chatbot-QnA-clipper-sub000/extract"
	"github.com/SirTensor/chatbot-QnA-clipper-sub000/models"
)

// Gemini adapts gemini.google.com conversation pages. Gemini renders turns
// as custom elements, so role classification is a tag-name check and the
// code blocks live in a <code-block> custom element rather than a bare pre.
func Gemini() *Adapter {
	return &Adapter{
		Name:      "gemini",
		Hosts:     []string{"gemini.google.com"},
		ShareURL:  "https://gemini.google.com/share/<id>",
		DetectDOM: `user-query, model-response`,
		TitleSel:  `div.conversation-title`,

		Turn: `user-query, model-response`,
		Role: func(s *goquery.Selection) models.Role {
			if len(s.Nodes) == 0 {
				return ""
			}
			switch s.Nodes[0].Data {
			case "user-query":
				return models.RoleUser
			case "model-response":
				return models.RoleAssistant
			}
			return ""
		},

		UserText:  `div.query-text`,
		UserImage: `img.preview-image, img.uploaded-image`,
		UserFile:  `div.file-preview-container`,
		FileName:  `div.new-file-name`,
		FileType:  `div.new-file-type`,

		AssistantRoot: `message-content div.markdown`,

		Extract: extract.Config{
			CodeContainer:  "code-block",
			CodeLeaf:       "code-block pre code",
			LangIndicator:  []string{`div.code-block-decoration > span`},
			CodeSkip:       []string{`div.code-block-decoration`, `button`},
			ImageContainer: "single-image",
			ImageCaption:   []string{`div.caption`},
			Skip: []string{
				// Collapsed reasoning panel and source chips.
				`model-thoughts`,
				`sources-list`,
				`div.attribution-container`,
				`button`,
			},
		},
	}
}
