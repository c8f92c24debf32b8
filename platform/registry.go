package platform

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/SirTensor/chatbot-QnA-clipper-sub000/models"
)

// Registry holds the known platform adapters and answers detection
// queries. It is built once at startup and read-only afterwards.
type Registry struct {
	adapters []*Adapter
	byName   map[string]*Adapter
}

// NewRegistry builds the registry with all supported platforms.
func NewRegistry() *Registry {
	r := &Registry{byName: make(map[string]*Adapter)}
	for _, a := range []*Adapter{ChatGPT(), Claude(), Gemini(), Grok()} {
		r.adapters = append(r.adapters, a)
		r.byName[a.Name] = a
	}
	return r
}

// ByName returns the adapter with the given canonical name, or nil.
func (r *Registry) ByName(name string) *Adapter {
	return r.byName[strings.ToLower(strings.TrimSpace(name))]
}

// ByURL matches a page URL against each adapter's host list. Subdomains
// of a listed host match too.
func (r *Registry) ByURL(u *url.URL) *Adapter {
	if u == nil {
		return nil
	}
	host := strings.ToLower(u.Hostname())
	for _, a := range r.adapters {
		for _, h := range a.Hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return a
			}
		}
	}
	return nil
}

// Sniff identifies the platform from page markup alone, for saved pages
// and inline HTML where no URL is available.
func (r *Registry) Sniff(doc *goquery.Document) *Adapter {
	for _, a := range r.adapters {
		if a.DetectDOM != "" && doc.Find(a.DetectDOM).Length() > 0 {
			return a
		}
	}
	return nil
}

// Resolve picks the adapter for a request: an explicit platform name wins,
// then the page URL, then DOM sniffing. Returns an ExtractError with code
// PLATFORM_UNKNOWN when nothing matches.
func (r *Registry) Resolve(name string, pageURL *url.URL, doc *goquery.Document) (*Adapter, error) {
	if name != "" {
		if a := r.ByName(name); a != nil {
			return a, nil
		}
		return nil, models.NewExtractError(models.ErrCodePlatformUnknown,
			"unsupported platform "+name, nil)
	}
	if a := r.ByURL(pageURL); a != nil {
		return a, nil
	}
	if doc != nil {
		if a := r.Sniff(doc); a != nil {
			return a, nil
		}
	}
	return nil, models.NewExtractError(models.ErrCodePlatformUnknown,
		"could not identify the chat platform from URL or markup", nil)
}

// List describes all registered platforms for the listing endpoint.
func (r *Registry) List() []models.PlatformInfo {
	out := make([]models.PlatformInfo, 0, len(r.adapters))
	for _, a := range r.adapters {
		out = append(out, models.PlatformInfo{
			Name:     a.Name,
			Hosts:    a.Hosts,
			ShareURL: a.ShareURL,
		})
	}
	return out
}
