package extract

import (
	"github.com/SirTensor/chatbot-QnA-clipper-sub000/models"
	"golang.org/x/net/html"
)

// untitledArtifact is the placeholder title emitted when an artifact block
// carries no recognizable title element.
const untitledArtifact = "[Untitled Artifact]"

// genericArtifactType labels artifact blocks whose kind could not be read
// from the UI.
const genericArtifactType = "artifact"

// Artifact reduces an interactive artifact/canvas UI element to a
// title+type stub. The artifact's actual body renders in a side panel the
// page does not include, so no code or language is ever extracted for this
// item type.
func (e *Extractor) Artifact(el *html.Node) models.ContentItem {
	title := untitledArtifact
	if t := queryFirstOf(el, e.m.artifactTitle); t != nil {
		if txt := Text(t); txt != "" {
			title = txt
		}
	}

	kind := genericArtifactType
	if t := queryFirstOf(el, e.m.artifactType); t != nil {
		if txt := Text(t); txt != "" {
			kind = txt
		}
	}

	return models.NewInteractiveItem(title, kind)
}
