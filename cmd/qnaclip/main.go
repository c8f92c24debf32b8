package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SirTensor/chatbot-QnA-clipper-sub000/api"
	"github.com/SirTensor/chatbot-QnA-clipper-sub000/cache"
	"github.com/SirTensor/chatbot-QnA-clipper-sub000/clip"
	"github.com/SirTensor/chatbot-QnA-clipper-sub000/config"
	"github.com/SirTensor/chatbot-QnA-clipper-sub000/fetch"
	"github.com/SirTensor/chatbot-QnA-clipper-sub000/platform"
	"github.com/SirTensor/chatbot-QnA-clipper-sub000/scraper"
)

func main() {
	// ── 1. Load configuration ───────────────────────────────────────
	cfg := config.Load()

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)
	slog.Info("qnaclip starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"maxPages", cfg.Browser.MaxPages,
	)

	// ── 3. Initialise scraper (launches or attaches to a browser) ───
	sc, err := scraper.NewScraper(cfg.Browser, cfg.Fetch)
	if err != nil {
		slog.Error("failed to initialise scraper", "error", err)
		os.Exit(1)
	}
	defer sc.Close()

	// ── 4. Initialise the fetch dispatcher ──────────────────────────
	// Share links usually survive the plain-HTTP engine; app pages need
	// the browser. The dispatcher races them with staggered starts and
	// remembers which engine won per host.
	engines := []fetch.Engine{
		fetch.NewHTTPEngine(cfg.Fetch.HTTPTimeout),
		fetch.NewBrowserEngine(sc.FetchPage),
	}
	memory := fetch.NewHostMemory(cfg.Fetch.HostMemoryTTL)
	dispatcher := fetch.NewDispatcher(engines, cfg.Fetch.EscalationDelays, memory)
	defer memory.Stop()

	// ── 5. Initialise the extraction service ────────────────────────
	registry := platform.NewRegistry()
	svc := clip.New(registry, dispatcher, cfg.Dedupe)

	// ── 6. Initialise cache ─────────────────────────────────────────
	cc := cache.New(cfg.Cache.MaxEntries)

	// ── 7. Setup router ─────────────────────────────────────────────
	router := api.NewRouter(api.Deps{
		Config:  cfg,
		Service: svc,
		Cache:   cc,
		Pool:    sc,
	})

	// ── 8. Start HTTP server ────────────────────────────────────────
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// ── 9. Graceful shutdown ────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())

	// Give in-flight requests 5 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server drained gracefully")
	}

	// sc.Close() runs via defer. Managed browsers are killed, attached
	// browsers are only disconnected.
	slog.Info("qnaclip stopped")
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
