package platform

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/SirTensor/chatbot-QnA-clipper-sub000/extract"
	"github.com/SirTensor/chatbot-QnA-clipper-sub000/models"
)

// Conversation walks a parsed page with the given adapter and assembles
// the ordered turn sequence.
//
// The only hard failure modes are a selector table that does not compile
// and a page with zero turn containers; individual turns that yield no
// content are dropped silently, because collapsed or empty turns are
// normal on live pages.
func Conversation(doc *goquery.Document, a *Adapter, pageURL *url.URL) (*models.Conversation, error) {
	ex, err := extract.New(a.Extract, pageURL)
	if err != nil {
		return nil, models.NewExtractError(models.ErrCodeInternal,
			"invalid selector configuration for "+a.Name, err)
	}

	turns := doc.Find(a.Turn)
	if turns.Length() == 0 {
		return nil, models.NewExtractError(models.ErrCodeNoConversation,
			"no conversation turns found on page", nil)
	}

	conv := &models.Conversation{
		Platform: a.Name,
		Title:    pageTitle(doc, a),
		Turns:    []models.Turn{},
	}

	turns.Each(func(_ int, s *goquery.Selection) {
		switch a.Role(s) {
		case models.RoleUser:
			if t, ok := userTurn(s, a, pageURL); ok {
				conv.Turns = append(conv.Turns, t)
			}
		case models.RoleAssistant:
			if t, ok := assistantTurn(s, a, ex); ok {
				conv.Turns = append(conv.Turns, t)
			}
		}
	})

	return conv, nil
}

// userTurn combines the user's message body into one Markdown string and
// collects uploaded image and file attachments.
func userTurn(s *goquery.Selection, a *Adapter, pageURL *url.URL) (models.Turn, bool) {
	t := models.Turn{Role: models.RoleUser}

	body := s.Find(a.UserText)
	if body.Length() == 0 {
		body = s
	}
	var parts []string
	body.Each(func(_ int, b *goquery.Selection) {
		h, err := b.Html()
		if err != nil {
			return
		}
		md, err := extract.ConvertHTML(h, origin(pageURL))
		if err != nil {
			md = b.Text()
		}
		if md = strings.TrimSpace(md); md != "" {
			parts = append(parts, md)
		}
	})
	t.Text = strings.Join(parts, "\n\n")

	if a.UserImage != "" {
		s.Find(a.UserImage).Each(func(_ int, img *goquery.Selection) {
			if item := uploadedImage(img, pageURL); item != nil {
				t.Images = append(t.Images, *item)
			}
		})
	}
	if a.UserFile != "" {
		s.Find(a.UserFile).Each(func(_ int, chip *goquery.Selection) {
			if item := uploadedFile(chip, a); item != nil {
				t.Files = append(t.Files, *item)
			}
		})
	}

	return t, t.Text != "" || len(t.Images) > 0 || len(t.Files) > 0
}

func assistantTurn(s *goquery.Selection, a *Adapter, ex *extract.Extractor) (models.Turn, bool) {
	root := s
	if a.AssistantRoot != "" {
		if found := s.Find(a.AssistantRoot); found.Length() > 0 {
			root = found.First()
		}
	}
	if len(root.Nodes) == 0 {
		return models.Turn{}, false
	}

	items := ex.AssistantItems(root.Nodes[0])
	if len(items) == 0 {
		return models.Turn{}, false
	}
	return models.Turn{Role: models.RoleAssistant, Items: items}, true
}

// uploadedImage mirrors the assistant-side image rules: transient blob:
// and data: sources are rejected, relative sources resolve against the
// page origin.
func uploadedImage(img *goquery.Selection, pageURL *url.URL) *models.ContentItem {
	src := strings.TrimSpace(img.AttrOr("src", ""))
	if src == "" {
		return nil
	}
	lower := strings.ToLower(src)
	if strings.HasPrefix(lower, "blob:") || strings.HasPrefix(lower, "data:") {
		return nil
	}
	if pageURL != nil {
		if resolved, err := pageURL.Parse(src); err == nil {
			src = resolved.String()
		}
	}
	alt := strings.TrimSpace(img.AttrOr("alt", ""))
	desc := alt
	if desc == "" {
		desc = "Image"
	}
	item := models.NewImageItem(src, alt, desc)
	return &item
}

// uploadedFile reduces a file chip to name+type metadata. File bodies are
// never downloaded, so every file item is preview-only.
func uploadedFile(chip *goquery.Selection, a *Adapter) *models.ContentItem {
	name := firstText(chip, a.FileName)
	if name == "" {
		name = strings.TrimSpace(chip.Text())
	}
	if name == "" {
		return nil
	}
	item := models.NewFileItem(name, firstText(chip, a.FileType), true, "")
	return &item
}

func firstText(s *goquery.Selection, sel string) string {
	if sel == "" {
		return ""
	}
	return strings.TrimSpace(s.Find(sel).First().Text())
}

func pageTitle(doc *goquery.Document, a *Adapter) string {
	if a.TitleSel != "" {
		if t := strings.TrimSpace(doc.Find(a.TitleSel).First().Text()); t != "" {
			return t
		}
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

func origin(u *url.URL) string {
	if u == nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
