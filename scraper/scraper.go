// Package scraper manages the browser used to render live chat pages.
//
// Two modes: launch a managed headless Chromium, or attach to the user's
// already-running browser over CDP. Attach is the practical mode for app
// URLs because the chat platforms sit behind a login and the user's
// session cookies live in their own browser.
package scraper

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"

	"github.com/SirTensor/chatbot-QnA-clipper-sub000/config"
	"github.com/SirTensor/chatbot-QnA-clipper-sub000/models"
)

// Scraper owns the browser lifecycle and the page pool. It is safe for
// concurrent use.
type Scraper struct {
	browser     *rod.Browser
	pagePool    rod.Pool[rod.Page]
	browserCfg  config.BrowserConfig
	fetchCfg    config.FetchConfig
	activePages atomic.Int32
	attached    bool
	startTime   time.Time

	// disconnect cancels the context the CDP client runs on, severing
	// the websocket without sending Browser.close.
	disconnect context.CancelFunc
}

// NewScraper connects to the configured CDP URL, or launches a headless
// browser when none is set, and initialises the reusable page pool.
func NewScraper(browserCfg config.BrowserConfig, fetchCfg config.FetchConfig) (*Scraper, error) {
	s := &Scraper{
		browserCfg: browserCfg,
		fetchCfg:   fetchCfg,
		startTime:  time.Now(),
	}

	controlURL := browserCfg.CDPURL
	if controlURL != "" {
		s.attached = true
		slog.Info("attaching to existing browser", "controlURL", controlURL)
	} else {
		l := launcher.New().
			Headless(browserCfg.Headless).
			NoSandbox(browserCfg.NoSandbox)

		if browserCfg.BrowserBin != "" {
			l = l.Bin(browserCfg.BrowserBin)
		}
		if browserCfg.DefaultProxy != "" {
			l = l.Proxy(browserCfg.DefaultProxy)
		}

		// ── Stealth flags ────────────────────────────────────────────
		l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
		l.Delete(flags.Flag("enable-automation"))
		l.Set(flags.Flag("disable-features"), "AudioServiceOutOfProcess,TranslateUI")
		l.Set(flags.Flag("disable-ipc-flooding-protection"))
		l.Set(flags.Flag("disable-popup-blocking"))
		l.Set(flags.Flag("disable-renderer-backgrounding"))
		l.Set(flags.Flag("disable-background-timer-throttling"))
		l.Set(flags.Flag("disable-backgrounding-occluded-windows"))
		l.Set(flags.Flag("disable-component-update"))
		l.Set(flags.Flag("disable-default-apps"))
		l.Set(flags.Flag("disable-dev-shm-usage"))
		l.Set(flags.Flag("disable-extensions"))
		l.Set(flags.Flag("no-first-run"))

		launched, err := l.Launch()
		if err != nil {
			return nil, models.NewExtractError(
				models.ErrCodeBrowserCrash,
				"failed to launch browser",
				err,
			)
		}
		controlURL = launched
		slog.Info("browser launched", "controlURL", controlURL)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.disconnect = cancel

	browser := rod.New().Context(ctx).ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		cancel()
		return nil, models.NewExtractError(
			models.ErrCodeBrowserCrash,
			"failed to connect to browser",
			err,
		)
	}
	s.browser = browser

	s.pagePool = rod.NewPagePool(browserCfg.MaxPages)
	slog.Info("page pool created", "maxPages", browserCfg.MaxPages)
	return s, nil
}

// Stats returns a snapshot of the pool's current state.
func (s *Scraper) Stats() models.PoolStats {
	return models.PoolStats{
		MaxPages:    s.browserCfg.MaxPages,
		ActivePages: int(s.activePages.Load()),
	}
}

// Close drains the page pool and releases the browser. An attached
// browser is only disconnected, never killed: it belongs to the user.
// rod's Browser.Close sends the CDP Browser.close command, which would
// take the user's whole browser with it, so the attached path must never
// reach it; dropping the client context closes only our websocket.
func (s *Scraper) Close() {
	slog.Info("scraper shutting down: draining page pool")
	s.pagePool.Cleanup(func(p *rod.Page) {
		_ = p.Close()
	})
	if s.attached {
		slog.Info("scraper shutting down: disconnecting from browser")
	} else {
		slog.Info("scraper shutting down: closing browser")
		s.browser.MustClose()
	}
	s.disconnect()
	slog.Info("scraper shutdown complete")
}
