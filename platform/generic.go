package platform

import (
	"net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"

	"github.com/SirTensor/chatbot-QnA-clipper-sub000/extract"
	"github.com/SirTensor/chatbot-QnA-clipper-sub000/models"
)

// GenericName identifies the readability fallback in responses.
const GenericName = "generic"

// GenericConversation is the degradation path for pages no adapter
// recognizes: readability pulls the main article content, which becomes a
// single assistant turn of Markdown. Turn structure and typed items are
// lost, but the caller still gets the page's substance instead of an
// error.
func GenericConversation(pageHTML string, pageURL *url.URL) (*models.Conversation, error) {
	article, err := readability.FromReader(strings.NewReader(pageHTML), pageURL)
	if err != nil {
		return nil, models.NewExtractError(models.ErrCodeExtraction,
			"readability fallback failed", err)
	}

	md, err := extract.ConvertHTML(article.Content, origin(pageURL))
	if err != nil {
		md = article.TextContent
	}
	md = strings.TrimSpace(md)
	if md == "" {
		return nil, models.NewExtractError(models.ErrCodeNoConversation,
			"page has no extractable content", nil)
	}

	return &models.Conversation{
		Platform: GenericName,
		Title:    strings.TrimSpace(article.Title),
		Turns: []models.Turn{
			{Role: models.RoleAssistant, Items: []models.ContentItem{models.NewTextItem(md)}},
		},
	}, nil
}
