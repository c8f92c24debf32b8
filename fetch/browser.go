package fetch

import (
	"context"
	"fmt"
)

// BrowserFetchFunc wraps the rod-based page fetch. It is injected from
// main to avoid a circular import (fetch -> scraper).
type BrowserFetchFunc func(ctx context.Context, req *Request) (*Result, error)

// BrowserEngine renders pages in a real browser via the injected callback.
// It is the escalation target for client-rendered app pages and for share
// links whose HTTP response failed validation.
type BrowserEngine struct {
	fetchFunc BrowserFetchFunc
}

// NewBrowserEngine builds the browser engine around the scraper callback.
func NewBrowserEngine(fetchFunc BrowserFetchFunc) *BrowserEngine {
	return &BrowserEngine{fetchFunc: fetchFunc}
}

func (e *BrowserEngine) Name() string { return "browser" }

func (e *BrowserEngine) Fetch(ctx context.Context, req *Request) (*Result, error) {
	if e.fetchFunc == nil {
		return nil, fmt.Errorf("browser engine not configured")
	}

	result, err := e.fetchFunc(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("browser: %w", err)
	}
	if req.Validate != nil && !req.Validate(result.HTML) {
		return nil, fmt.Errorf("browser: rendered page for %s contains no conversation markup", req.URL)
	}

	result.EngineName = e.Name()
	return result, nil
}
