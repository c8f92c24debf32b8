package models

// ExtractRequest is the payload for POST /api/v1/extract.
//
// Exactly one of URL or HTML must be set. URL sources are fetched (share
// links over plain HTTP, live app pages through the browser); HTML sources
// are parsed as-is, which is the path browser-side callers use after
// capturing the rendered page themselves.
type ExtractRequest struct {
	// URL is the conversation page to fetch and extract.
	URL string `json:"url,omitempty" binding:"omitempty,url"`

	// HTML is an already-rendered conversation page.
	HTML string `json:"html,omitempty"`

	// SourceURL is the page origin used to resolve relative image URLs
	// when HTML is supplied inline. Ignored when URL is set.
	SourceURL string `json:"source_url,omitempty" binding:"omitempty,url"`

	// Platform forces a specific adapter ("chatgpt", "claude", "gemini",
	// "grok"). Empty means sniff from the URL and DOM.
	Platform string `json:"platform,omitempty" binding:"omitempty,oneof=chatgpt claude gemini grok"`

	// OutputFormat controls the response body format.
	// "markdown" (default): formatted Markdown document.
	// "items": the structured turn/item JSON.
	OutputFormat string `json:"output_format,omitempty" binding:"omitempty,oneof=markdown items"`

	// Timeout is the maximum duration in seconds for the entire
	// operation (fetch + extraction). Default: 30. Max: 120.
	Timeout int `json:"timeout,omitempty" binding:"omitempty,min=1,max=120"`

	// Format carries the Markdown style settings.
	Format FormatOptions `json:"format"`

	// MaxAge enables cache lookup: serve a cached response younger than
	// this many milliseconds. 0 disables caching for this request.
	MaxAge int `json:"max_age,omitempty" binding:"omitempty,min=0"`
}

// FormatOptions are the user-configurable Markdown style settings consumed
// by the formatter.
type FormatOptions struct {
	// HeaderLevel is the heading level (1-6) used for turn labels when
	// LabelStyle is "heading". Default: 3.
	HeaderLevel int `json:"header_level,omitempty" binding:"omitempty,min=1,max=6"`

	// LabelStyle controls how turn authors are rendered:
	// "heading" (default), "bold", or "plain".
	LabelStyle string `json:"label_style,omitempty" binding:"omitempty,oneof=heading bold plain"`

	// NumberTurns prefixes each turn label with its 1-based index.
	NumberTurns bool `json:"number_turns,omitempty"`

	// IncludeTitle emits the conversation/platform title as a top-level
	// heading when available.
	IncludeTitle bool `json:"include_title,omitempty"`
}

// Defaults applies default values to unset fields.
func (r *ExtractRequest) Defaults() {
	if r.Timeout == 0 {
		r.Timeout = 30
	}
	if r.OutputFormat == "" {
		r.OutputFormat = "markdown"
	}
	r.Format.Defaults()
}

// Defaults applies default values to unset format fields.
func (f *FormatOptions) Defaults() {
	if f.HeaderLevel == 0 {
		f.HeaderLevel = 3
	}
	if f.LabelStyle == "" {
		f.LabelStyle = "heading"
	}
}
