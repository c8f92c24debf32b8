// Package platform maps chat-AI web UIs to the shared extraction pipeline.
//
// Each supported platform contributes one Adapter: the CSS selector table
// locating turns, roles and content containers in that platform's DOM, plus
// the extract.Config its block processors need. Selectors are configuration
// data. They track the platforms' UI markup and are expected to need
// updates when a platform redesigns; nothing in the conversion algorithms
// should have to change with them.
package platform

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/SirTensor/chatbot-QnA-clipper-sub000/extract"
	"github.com/SirTensor/chatbot-QnA-clipper-sub000/models"
)

// Adapter describes how to read one platform's conversation DOM.
type Adapter struct {
	// Name is the canonical platform identifier ("chatgpt", "claude", ...).
	Name string

	// Hosts lists the hostnames served by this platform, share links
	// included. Used for URL-based platform detection.
	Hosts []string

	// ShareURL is an example share-link shape, returned by the platform
	// listing endpoint for documentation purposes.
	ShareURL string

	// DetectDOM matches an element that exists only on this platform's
	// pages. Used when the URL is inconclusive (saved pages, proxies).
	DetectDOM string

	// TitleSel locates the in-page conversation title. The document
	// <title> is the fallback.
	TitleSel string

	// Turn matches one conversation turn container.
	Turn string

	// Role classifies a turn container. Returns "" for containers that
	// are neither user nor assistant (system banners, tool chrome);
	// those turns are dropped.
	Role func(s *goquery.Selection) models.Role

	// UserText, UserImage and UserFile locate the user turn's message
	// body, uploaded-image elements and uploaded-file chips.
	UserText  string
	UserImage string
	UserFile  string

	// FileName and FileType locate the name and kind labels inside one
	// uploaded-file chip.
	FileName string
	FileType string

	// AssistantRoot locates the rendered-Markdown container inside an
	// assistant turn. When absent the whole turn container is used.
	AssistantRoot string

	// Extract is the block-processor selector configuration for this
	// platform's assistant content.
	Extract extract.Config
}

// attrRole reads a role attribute value into the model's Role type.
func attrRole(v string) models.Role {
	switch v {
	case "user":
		return models.RoleUser
	case "assistant":
		return models.RoleAssistant
	}
	return ""
}
