package models

// ExtractResponse is the response for POST /api/v1/extract.
type ExtractResponse struct {
	// Success indicates whether the extraction completed without errors.
	Success bool `json:"success"`

	// Platform is the adapter that produced the result.
	Platform string `json:"platform,omitempty"`

	// FinalURL is the URL after following all redirects (URL sources only).
	FinalURL string `json:"final_url,omitempty"`

	// Markdown is the formatted document (output_format=markdown).
	Markdown string `json:"markdown,omitempty"`

	// Conversation is the structured result (output_format=items).
	Conversation *Conversation `json:"conversation,omitempty"`

	// TurnCount is the number of turns extracted.
	TurnCount int `json:"turn_count"`

	// Timing provides duration breakdowns for the operation.
	Timing TimingInfo `json:"timing"`

	// CacheStatus indicates whether the response was served from cache.
	// Values: "hit", "miss", or empty (caching not requested).
	CacheStatus string `json:"cache_status,omitempty"`

	// FetchMethod indicates how the page HTML was obtained
	// ("inline", "http", "browser", "cdp"). Empty for cached responses.
	FetchMethod string `json:"fetch_method,omitempty"`

	// Error is populated only when Success is false.
	Error *ErrorDetail `json:"error,omitempty"`
}

// TimingInfo breaks down the time spent in each phase.
type TimingInfo struct {
	// TotalMs is the end-to-end duration in milliseconds.
	TotalMs int64 `json:"total_ms"`

	// NavigationMs is the time spent fetching and rendering the page.
	NavigationMs int64 `json:"navigation_ms"`

	// ExtractionMs is the time spent walking the DOM and formatting.
	ExtractionMs int64 `json:"extraction_ms"`
}

// PlatformInfo describes one registered adapter for GET /api/v1/platforms.
type PlatformInfo struct {
	Name  string   `json:"name"`
	Hosts []string `json:"hosts"`

	// ShareURL is an example share-link shape for the platform, empty
	// when the platform has no public share links.
	ShareURL string `json:"share_url,omitempty"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status    string    `json:"status"` // "healthy" or "degraded"
	Uptime    string    `json:"uptime"`
	PoolStats PoolStats `json:"pool_stats"`
	Version   string    `json:"version"`
}

// PoolStats reports the state of the browser page pool.
type PoolStats struct {
	MaxPages    int `json:"max_pages"`
	ActivePages int `json:"active_pages"`
}
