package extract

import (
	"net/url"

	"github.com/SirTensor/chatbot-QnA-clipper-sub000/models"
	"golang.org/x/net/html"
)

// Extractor converts assistant-response DOM subtrees into ContentItem
// sequences using one platform's selector configuration. It is stateless
// across calls and safe for concurrent use; the per-call processed set
// lives on the pass, is local to a single extraction, and is discarded
// after.
type Extractor struct {
	cfg  Config
	m    *matchers
	base *url.URL
}

// New compiles the selector configuration. baseURL resolves relative image
// URLs against the page origin; nil leaves relative URLs untouched.
func New(cfg Config, baseURL *url.URL) (*Extractor, error) {
	m, err := compileConfig(cfg)
	if err != nil {
		return nil, err
	}
	return &Extractor{cfg: cfg, m: m, base: baseURL}, nil
}

// AssistantItems walks the assistant response rooted at container and
// returns the ordered content items. A nil or empty container yields an
// empty slice, never an error: "nothing to extract" is not a failure.
func (e *Extractor) AssistantItems(container *html.Node) []models.ContentItem {
	if container == nil {
		return []models.ContentItem{}
	}
	p := &pass{ex: e, processed: make(map[*html.Node]struct{})}
	return p.run(container)
}

// pass is the state of a single extraction call.
type pass struct {
	ex        *Extractor
	processed map[*html.Node]struct{}
}

func (p *pass) isProcessed(n *html.Node) bool {
	_, ok := p.processed[n]
	return ok
}

func (p *pass) claim(el *html.Node) {
	markSubtree(p.processed, el)
}

// skipped reports whether the platform configuration excludes this subtree
// (reasoning sections, UI chrome).
func (p *pass) skipped(n *html.Node) bool {
	return matchAny(p.ex.m.skip, n)
}
