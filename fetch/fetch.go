// Package fetch retrieves conversation pages. Share links are usually
// server-rendered and reachable over plain HTTP with a browser TLS
// fingerprint; app pages are client-rendered behind a login and need a
// real browser. The dispatcher races both paths and remembers per host
// which one works.
package fetch

import (
	"context"
	"net/http"
	"time"
)

// Engine is one way of turning a URL into rendered page HTML.
type Engine interface {
	// Name returns the engine identifier ("http", "browser").
	Name() string

	// Fetch retrieves the page content for the given request.
	Fetch(ctx context.Context, req *Request) (*Result, error)
}

// Request carries everything an engine needs to fetch a page.
type Request struct {
	URL     string
	Headers map[string]string
	Cookies []http.Cookie
	Timeout time.Duration

	// Validate, when set, decides whether fetched HTML actually contains
	// a conversation. An engine whose output fails validation reports an
	// error so the dispatcher escalates; share links served as empty SPA
	// shells are the common case this catches.
	Validate func(html string) bool
}

// Result is the output of a successful fetch.
type Result struct {
	HTML       string
	Title      string
	StatusCode int
	FinalURL   string
	EngineName string
}
