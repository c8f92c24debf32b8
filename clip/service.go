// Package clip orchestrates the full extraction pipeline: source
// acquisition, platform resolution, conversation extraction, duplicate
// suppression and Markdown rendering. The HTTP handlers, the batch runner
// and the MCP server are all thin wrappers over this one service.
package clip

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/SirTensor/chatbot-QnA-clipper-sub000/config"
	"github.com/SirTensor/chatbot-QnA-clipper-sub000/dedupe"
	"github.com/SirTensor/chatbot-QnA-clipper-sub000/fetch"
	"github.com/SirTensor/chatbot-QnA-clipper-sub000/format"
	"github.com/SirTensor/chatbot-QnA-clipper-sub000/models"
	"github.com/SirTensor/chatbot-QnA-clipper-sub000/platform"
)

// Service wires the extraction pipeline together.
type Service struct {
	registry   *platform.Registry
	dispatcher *fetch.Dispatcher
	dedupeCfg  config.DedupeConfig
}

// New builds the service. dispatcher may be nil, in which case only
// inline-HTML requests succeed (useful in tests and in library use).
func New(registry *platform.Registry, dispatcher *fetch.Dispatcher, dedupeCfg config.DedupeConfig) *Service {
	return &Service{
		registry:   registry,
		dispatcher: dispatcher,
		dedupeCfg:  dedupeCfg,
	}
}

// Registry exposes the platform registry for listing endpoints.
func (s *Service) Registry() *platform.Registry {
	return s.registry
}

// Extract runs the pipeline for one request and returns a complete
// response. Timing fields are filled here; cache status is the caller's
// concern.
func (s *Service) Extract(ctx context.Context, req *models.ExtractRequest) (*models.ExtractResponse, error) {
	totalStart := time.Now()
	req.Defaults()

	if (req.URL == "") == (req.HTML == "") {
		return nil, models.NewExtractError(models.ErrCodeInvalidInput,
			"exactly one of url or html must be provided", nil)
	}

	// ── 1. Acquire the page ──────────────────────────────────────────
	navStart := time.Now()
	pageHTML, pageURL, fetchMethod, finalURL, err := s.acquire(ctx, req)
	navigationMs := time.Since(navStart).Milliseconds()
	if err != nil {
		return nil, err
	}

	// ── 2. Parse and resolve the platform ────────────────────────────
	extractStart := time.Now()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, models.NewExtractError(models.ErrCodeExtraction,
			"failed to parse page HTML", err)
	}

	var conv *models.Conversation
	adapter, resolveErr := s.registry.Resolve(req.Platform, pageURL, doc)
	if resolveErr != nil {
		// Unknown platform: degrade to the readability path rather than
		// failing, unless the caller explicitly forced a platform.
		if req.Platform != "" {
			return nil, resolveErr
		}
		conv, err = platform.GenericConversation(pageHTML, pageURL)
	} else {
		conv, err = platform.Conversation(doc, adapter, pageURL)
	}
	if err != nil {
		return nil, err
	}

	// ── 3. Suppress duplicate turns ──────────────────────────────────
	if s.dedupeCfg.Enabled {
		conv.Turns = dedupe.DropRepeats(conv.Turns, s.dedupeCfg.Threshold)
	}

	// ── 4. Render the response ───────────────────────────────────────
	resp := &models.ExtractResponse{
		Success:     true,
		Platform:    conv.Platform,
		FinalURL:    finalURL,
		TurnCount:   len(conv.Turns),
		FetchMethod: fetchMethod,
	}
	switch req.OutputFormat {
	case "items":
		resp.Conversation = conv
	default:
		resp.Markdown = format.New(req.Format).Conversation(conv)
	}

	resp.Timing = models.TimingInfo{
		TotalMs:      time.Since(totalStart).Milliseconds(),
		NavigationMs: navigationMs,
		ExtractionMs: time.Since(extractStart).Milliseconds(),
	}
	return resp, nil
}

// acquire returns the page HTML and its URL context, fetching when the
// request carries a URL.
func (s *Service) acquire(ctx context.Context, req *models.ExtractRequest) (pageHTML string, pageURL *url.URL, fetchMethod, finalURL string, err error) {
	if req.HTML != "" {
		if req.SourceURL != "" {
			pageURL, _ = url.Parse(req.SourceURL)
		}
		return req.HTML, pageURL, "inline", req.SourceURL, nil
	}

	if s.dispatcher == nil {
		return "", nil, "", "", models.NewExtractError(models.ErrCodeInvalidInput,
			"url fetching is not enabled; provide html instead", nil)
	}

	pageURL, parseErr := url.Parse(req.URL)
	if parseErr != nil {
		return "", nil, "", "", models.NewExtractError(models.ErrCodeInvalidInput,
			"invalid url", parseErr)
	}

	fetchReq := &fetch.Request{
		URL:      req.URL,
		Timeout:  time.Duration(req.Timeout) * time.Second,
		Validate: s.validator(pageURL),
	}
	result, fetchErr := s.dispatcher.Dispatch(ctx, fetchReq)
	if fetchErr != nil {
		if ee, ok := fetchErr.(*models.ExtractError); ok {
			return "", nil, "", "", ee
		}
		return "", nil, "", "", models.NewExtractError(models.ErrCodeNavigation,
			"failed to fetch conversation page", fetchErr)
	}

	finalURL = result.FinalURL
	if finalURL == "" {
		finalURL = req.URL
	}
	if u, err2 := url.Parse(finalURL); err2 == nil {
		pageURL = u
	}
	return result.HTML, pageURL, result.EngineName, finalURL, nil
}

// validator builds the fetch validation hook: when the URL maps to a
// known platform, fetched HTML must contain that platform's conversation
// markup. Unknown hosts accept anything, since the generic path takes
// whatever the page has.
func (s *Service) validator(pageURL *url.URL) func(string) bool {
	adapter := s.registry.ByURL(pageURL)
	if adapter == nil {
		return nil
	}
	return func(html string) bool {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		if err != nil {
			return false
		}
		return doc.Find(adapter.Turn).Length() > 0
	}
}
