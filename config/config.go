package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Browser   BrowserConfig
	Fetch     FetchConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Dedupe    DedupeConfig
	Webhook   WebhookConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// BrowserConfig controls the Rod browser used for live chat pages.
type BrowserConfig struct {
	// Headless controls whether the managed browser runs headless.
	Headless bool // default: true

	// MaxPages is the page pool capacity (max concurrent tabs).
	MaxPages int // default: 5

	// CDPURL attaches to an already-running browser instead of launching
	// one. Live chat pages usually need the user's logged-in session, so
	// this is the practical mode for app URLs.
	CDPURL string

	// DefaultProxy is the proxy URL for all browser traffic.
	DefaultProxy string

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string
}

// FetchConfig controls page fetching.
type FetchConfig struct {
	// DefaultTimeout is the per-request timeout.
	DefaultTimeout time.Duration // default: 30s

	// MaxTimeout is the maximum timeout a client may request.
	MaxTimeout time.Duration // default: 120s

	// HTTPTimeout is the deadline for the plain-HTTP engine before the
	// dispatcher escalates to the browser.
	HTTPTimeout time.Duration // default: 8s

	// EscalationDelays staggers engine starts in the fetch race.
	EscalationDelays []time.Duration // default: [0s, 2s]

	// HostMemoryTTL is how long a host's winning engine is remembered.
	HostMemoryTTL time.Duration // default: 1h

	// BlockedResourceTypes lists browser resource types never loaded.
	// default: ["Image", "Stylesheet", "Font", "Media"]
	BlockedResourceTypes []string

	// ScrollHistory enables scrolling virtualized conversations to the
	// top so older turns mount before extraction.
	ScrollHistory bool // default: true
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: true

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 // default: 5

	// Burst is the maximum burst size per API key.
	Burst int // default: 10
}

// CacheConfig controls the extraction response cache.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached responses.
	MaxEntries int // default: 1000
}

// DedupeConfig controls near-duplicate turn suppression.
type DedupeConfig struct {
	// Enabled toggles the duplicate-turn filter.
	Enabled bool // default: true

	// Threshold is the SimHash Hamming distance at or below which two
	// adjacent same-role turns are collapsed.
	Threshold int // default: 3
}

// WebhookConfig controls batch-completion notifications.
type WebhookConfig struct {
	// Secret signs webhook payloads with HMAC-SHA256 when non-empty.
	Secret string
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("QNACLIP_HOST", "0.0.0.0"),
			Port: envIntOr("QNACLIP_PORT", 8080),
			Mode: envOr("QNACLIP_MODE", "release"),
		},
		Browser: BrowserConfig{
			Headless:     envBoolOr("QNACLIP_HEADLESS", true),
			MaxPages:     envIntOr("QNACLIP_MAX_PAGES", 5),
			CDPURL:       os.Getenv("QNACLIP_CDP_URL"),
			DefaultProxy: os.Getenv("QNACLIP_PROXY"),
			NoSandbox:    envBoolOr("QNACLIP_NO_SANDBOX", false),
			BrowserBin:   os.Getenv("QNACLIP_BROWSER_BIN"),
		},
		Fetch: FetchConfig{
			DefaultTimeout:   envDurationOr("QNACLIP_DEFAULT_TIMEOUT", 30*time.Second),
			MaxTimeout:       envDurationOr("QNACLIP_MAX_TIMEOUT", 120*time.Second),
			HTTPTimeout:      envDurationOr("QNACLIP_HTTP_TIMEOUT", 8*time.Second),
			EscalationDelays: envDurationSliceOr("QNACLIP_ESCALATION_DELAYS", []time.Duration{0, 2 * time.Second}),
			HostMemoryTTL:    envDurationOr("QNACLIP_HOST_MEMORY_TTL", time.Hour),
			BlockedResourceTypes: envSliceOr("QNACLIP_BLOCKED_RESOURCES", []string{
				"Image", "Stylesheet", "Font", "Media",
			}),
			ScrollHistory: envBoolOr("QNACLIP_SCROLL_HISTORY", true),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("QNACLIP_AUTH_ENABLED", true),
			APIKeys: envSliceOr("QNACLIP_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("QNACLIP_RATE_RPS", 5.0),
			Burst:             envIntOr("QNACLIP_RATE_BURST", 10),
		},
		Cache: CacheConfig{
			MaxEntries: envIntOr("QNACLIP_CACHE_MAX_ENTRIES", 1000),
		},
		Dedupe: DedupeConfig{
			Enabled:   envBoolOr("QNACLIP_DEDUPE_ENABLED", true),
			Threshold: envIntOr("QNACLIP_DEDUPE_THRESHOLD", 3),
		},
		Webhook: WebhookConfig{
			Secret: os.Getenv("QNACLIP_WEBHOOK_SECRET"),
		},
		Log: LogConfig{
			Level:  envOr("QNACLIP_LOG_LEVEL", "info"),
			Format: envOr("QNACLIP_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}

func envDurationSliceOr(key string, fallback []time.Duration) []time.Duration {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]time.Duration, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				if d, err := time.ParseDuration(trimmed); err == nil {
					result = append(result, d)
				}
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
