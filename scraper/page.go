package scraper

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/ysmood/gson"

	"github.com/SirTensor/chatbot-QnA-clipper-sub000/fetch"
	"github.com/SirTensor/chatbot-QnA-clipper-sub000/models"
)

// historyScrollRounds bounds the scrollback loop on virtualized pages.
const historyScrollRounds = 20

// FetchPage renders a conversation page in the browser and returns its
// HTML. Satisfies fetch.BrowserFetchFunc.
//
// Lifecycle (numbered steps match the inline comments):
//
//  1. Timeout guard      – hard deadline on the entire operation
//  2. Acquire page       – borrow a tab from the pool (or create one)
//  3. DEFER: cleanup     – about:blank + return to pool (leak prevention)
//  4. Stealth injection  – mask navigator.webdriver etc. (before navigation!)
//  5. Headers + cookies  – session material for logged-in app pages
//  6. Hijack mount       – block images/CSS/fonts/media (before navigation!)
//  7. Context binding    – propagate timeout to all Rod operations
//  8. Navigate           – triggers page load
//  9. Wait               – DOM stable
//  10. Scrollback        – mount virtualized history before reading the DOM
//  11. Extract           – page.HTML() + title + final URL
//
// Steps 4-6 must precede step 8: stealth JS and resource blocking only
// apply to navigations that happen after they are installed. Step 3 uses
// the original page reference (without the request context) so cleanup
// succeeds even after the deadline has expired.
func (s *Scraper) FetchPage(ctx context.Context, req *fetch.Request) (*fetch.Result, error) {
	// ── 1. Timeout guard ──────────────────────────────────────────────
	timeout := req.Timeout
	if timeout <= 0 || timeout > s.fetchCfg.MaxTimeout {
		timeout = s.fetchCfg.MaxTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// ── 2. Acquire page from pool ─────────────────────────────────────
	s.activePages.Add(1)
	defer s.activePages.Add(-1)

	page, acquireErr := s.pagePool.Get(func() (*rod.Page, error) {
		return s.browser.Page(proto.TargetCreateTarget{})
	})
	if acquireErr != nil {
		return nil, models.NewExtractError(
			models.ErrCodeBrowserCrash,
			"failed to acquire page from pool",
			acquireErr,
		)
	}

	// ── 3. CRITICAL DEFER: prevent DOM memory leak + guarantee pool return
	defer func() {
		if navErr := page.Navigate("about:blank"); navErr != nil {
			slog.Warn("cleanup: failed to navigate to about:blank", "error", navErr)
		}
		s.pagePool.Put(page)
	}()

	// ── 4. Stealth injection ──────────────────────────────────────────
	// Only for the managed browser; an attached user browser is already
	// a real one.
	if !s.attached {
		if _, evalErr := page.EvalOnNewDocument(stealth.JS); evalErr != nil {
			slog.Warn("stealth injection failed, proceeding without stealth", "error", evalErr)
		}
	}

	// ── 5. Headers and cookies ────────────────────────────────────────
	if len(req.Headers) > 0 {
		_ = proto.NetworkSetExtraHTTPHeaders{
			Headers: toHeadersMap(req.Headers),
		}.Call(page)
	}
	for _, cookie := range req.Cookies {
		domain := cookie.Domain
		if domain == "" {
			if u, parseErr := url.Parse(req.URL); parseErr == nil {
				domain = u.Host
			}
		}
		path := cookie.Path
		if path == "" {
			path = "/"
		}
		_, _ = proto.NetworkSetCookie{
			Name:   cookie.Name,
			Value:  cookie.Value,
			Domain: domain,
			Path:   path,
		}.Call(page)
	}

	// ── 6. Mount hijack router ────────────────────────────────────────
	router := setupHijack(page, s.fetchCfg.BlockedResourceTypes)
	if router != nil {
		defer func() { _ = router.Stop() }()
	}

	// ── 7. Bind request context to page ───────────────────────────────
	p := page.Context(ctx)

	// ── 8. Navigate ───────────────────────────────────────────────────
	if navErr := p.Navigate(req.URL); navErr != nil {
		return nil, categorizeError(navErr, "navigation to conversation page failed")
	}

	// ── 9. Wait strategy ──────────────────────────────────────────────
	// WaitRequestIdle conflicts with HijackRequests on current Chromium,
	// so DOM stability is the wait signal.
	if stableErr := p.WaitDOMStable(300*time.Millisecond, 0.1); stableErr != nil {
		slog.Debug("WaitDOMStable did not converge, proceeding with current DOM", "error", stableErr)
	}

	// ── 10. Scrollback: mount virtualized history ─────────────────────
	if s.fetchCfg.ScrollHistory {
		scrollHistory(p)
	}

	// ── 11. Extract rendered HTML ─────────────────────────────────────
	rawHTML, htmlErr := p.HTML()
	if htmlErr != nil {
		return nil, categorizeError(htmlErr, "failed to extract page HTML")
	}

	title := evalStringOrEmpty(p, `() => document.title`)
	finalURL := evalStringOrEmpty(p, `() => window.location.href`)
	if finalURL == "" {
		finalURL = req.URL
	}

	var statusCode int
	if res, err := p.Eval(`() => {
		try {
			const entries = performance.getEntriesByType("navigation");
			if (entries.length > 0) return entries[0].responseStatus || 0;
		} catch(e) {}
		return 0;
	}`); err == nil {
		statusCode = res.Value.Int()
	}

	return &fetch.Result{
		HTML:       rawHTML,
		Title:      title,
		StatusCode: statusCode,
		FinalURL:   finalURL,
	}, nil
}

// scrollHistory scrolls the conversation to the top until the mounted
// element count stops growing. Long conversations are virtualized: turns
// outside the viewport are unmounted, and reading the DOM without this
// step silently drops the beginning of the conversation.
func scrollHistory(p *rod.Page) {
	const countJS = `() => document.getElementsByTagName('*').length`
	const toTopJS = `() => {
		const candidates = [document.scrollingElement, ...document.querySelectorAll('main, [class*="scroll"], [class*="overflow-y"]')];
		for (const el of candidates) {
			if (el && el.scrollHeight > el.clientHeight) el.scrollTop = 0;
		}
		window.scrollTo(0, 0);
	}`

	prev := -1
	stable := 0
	for i := 0; i < historyScrollRounds; i++ {
		if _, err := p.Eval(toTopJS); err != nil {
			return
		}
		time.Sleep(300 * time.Millisecond)

		res, err := p.Eval(countJS)
		if err != nil {
			return
		}
		count := res.Value.Int()
		if count == prev {
			stable++
			if stable >= 2 {
				return
			}
		} else {
			stable = 0
		}
		prev = count
	}
	slog.Debug("scrollback stopped at round limit", "elements", prev)
}

// evalStringOrEmpty evaluates a JS expression, swallowing errors. Used
// for optional metadata only.
func evalStringOrEmpty(page *rod.Page, js string) string {
	res, err := page.Eval(js)
	if err != nil {
		return ""
	}
	return res.Value.Str()
}

// toHeadersMap converts a plain string map to the proto.NetworkHeaders
// type (map[string]gson.JSON) required by NetworkSetExtraHTTPHeaders.
func toHeadersMap(headers map[string]string) proto.NetworkHeaders {
	m := make(proto.NetworkHeaders, len(headers))
	for k, v := range headers {
		m[k] = gson.New(v)
	}
	return m
}

// categorizeError wraps raw errors into typed ExtractErrors so the API
// layer can map them to appropriate HTTP status codes.
func categorizeError(err error, msg string) *models.ExtractError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewExtractError(models.ErrCodeTimeout, msg, err)
	case errors.Is(err, context.Canceled):
		return models.NewExtractError(models.ErrCodeTimeout, "request canceled", err)
	default:
		return models.NewExtractError(models.ErrCodeNavigation, msg, err)
	}
}
