package extract

import (
	"strings"

	"github.com/SirTensor/chatbot-QnA-clipper-sub000/models"
	"golang.org/x/net/html"
)

// Image extracts an image item from el, which may be the <img> itself or a
// container wrapping one.
//
// blob: and data: sources are rejected (nil): they reference transient
// browser memory and are useless in exported Markdown. Relative sources
// resolve against the page origin. The description falls back through
// caption element text, the alt attribute, then the literal "Image".
func (e *Extractor) Image(el *html.Node) *models.ContentItem {
	img := el
	if !IsElement(img, "img") {
		img = nil
		Walk(el, func(n *html.Node) bool {
			if img == nil && IsElement(n, "img") {
				img = n
			}
			return img == nil
		})
	}
	if img == nil {
		return nil
	}

	src := strings.TrimSpace(Attr(img, "src"))
	if src == "" {
		return nil
	}
	lower := strings.ToLower(src)
	if strings.HasPrefix(lower, "blob:") || strings.HasPrefix(lower, "data:") {
		return nil
	}

	if e.base != nil {
		if resolved, err := e.base.Parse(src); err == nil {
			src = resolved.String()
		}
	}

	alt := strings.TrimSpace(Attr(img, "alt"))

	desc := ""
	if cap := queryFirstOf(el, e.m.imageCaption); cap != nil {
		desc = Text(cap)
	}
	if desc == "" {
		desc = alt
	}
	if desc == "" {
		desc = "Image"
	}

	item := models.NewImageItem(src, alt, desc)
	return &item
}
