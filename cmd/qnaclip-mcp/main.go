// qnaclip-mcp exposes a running qnaclip API server as MCP tools, so LLM
// agents can pull chatbot conversations into their context as Markdown.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// extractRequest mirrors the qnaclip API request model.
type extractRequest struct {
	URL          string `json:"url,omitempty"`
	HTML         string `json:"html,omitempty"`
	SourceURL    string `json:"source_url,omitempty"`
	Platform     string `json:"platform,omitempty"`
	OutputFormat string `json:"output_format,omitempty"`
}

// extractResponse mirrors the qnaclip API response model.
type extractResponse struct {
	Success   bool   `json:"success"`
	Platform  string `json:"platform"`
	Markdown  string `json:"markdown"`
	TurnCount int    `json:"turn_count"`
	Error     *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// batchResponse mirrors the qnaclip batch creation response.
type batchResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Total  int    `json:"total"`
}

// batchStatusResponse mirrors the qnaclip batch status response.
type batchStatusResponse struct {
	ID        string            `json:"id"`
	Status    string            `json:"status"`
	Completed int               `json:"completed"`
	Total     int               `json:"total"`
	Results   []json.RawMessage `json:"results"`
}

// platformsResponse mirrors GET /api/v1/platforms.
type platformsResponse struct {
	Platforms []struct {
		Name     string   `json:"name"`
		Hosts    []string `json:"hosts"`
		ShareURL string   `json:"share_url"`
	} `json:"platforms"`
}

func main() {
	apiURL := os.Getenv("QNACLIP_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}
	apiKey := os.Getenv("QNACLIP_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "QNACLIP_API_KEY is required")
		os.Exit(1)
	}

	s := server.NewMCPServer(
		"qnaclip",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	extractTool := mcp.NewTool("extract_conversation",
		mcp.WithDescription("Extract a chatbot conversation (ChatGPT, Claude, Gemini, Grok) from a share link, a live chat page or already-captured page HTML, and return it as clean question/answer Markdown."),
		mcp.WithString("url",
			mcp.Description("The share link or chat page URL to extract. Either url or html is required."),
		),
		mcp.WithString("html",
			mcp.Description("Already-rendered page HTML to extract instead of fetching a URL (e.g. a saved page file read by the caller)"),
		),
		mcp.WithString("platform",
			mcp.Description("Force a platform instead of auto-detecting from the URL and page markup"),
			mcp.Enum("chatgpt", "claude", "gemini", "grok"),
		),
	)
	s.AddTool(extractTool, handleExtract(apiURL, apiKey))

	batchTool := mcp.NewTool("batch_extract",
		mcp.WithDescription("Extract multiple chatbot conversations in parallel. Returns the Markdown for each URL once the batch completes."),
		mcp.WithArray("urls",
			mcp.Required(),
			mcp.Description("List of share link or chat page URLs to extract"),
		),
		mcp.WithString("platform",
			mcp.Description("Force a platform for all URLs instead of auto-detecting"),
			mcp.Enum("chatgpt", "claude", "gemini", "grok"),
		),
	)
	s.AddTool(batchTool, handleBatchExtract(apiURL, apiKey))

	platformsTool := mcp.NewTool("list_platforms",
		mcp.WithDescription("List the chatbot platforms qnaclip can extract, with their recognised hosts."),
	)
	s.AddTool(platformsTool, handleListPlatforms(apiURL, apiKey))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

// apiPost sends a POST request to the qnaclip API and returns the response body.
func apiPost(ctx context.Context, client *http.Client, apiURL, apiKey, path string, payload interface{}) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", apiKey)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

// pollBatch polls the batch endpoint until the job leaves "processing" or
// the context is cancelled.
func pollBatch(ctx context.Context, client *http.Client, apiURL, apiKey, id string) ([]byte, error) {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL+"/api/v1/batch/"+id, nil)
			if err != nil {
				return nil, fmt.Errorf("create poll request: %w", err)
			}
			req.Header.Set("X-API-Key", apiKey)

			resp, err := client.Do(req)
			if err != nil {
				return nil, fmt.Errorf("poll request failed: %w", err)
			}

			body, err := io.ReadAll(resp.Body)
			resp.Body.Close()
			if err != nil {
				return nil, fmt.Errorf("read poll response: %w", err)
			}

			var status struct {
				Status string `json:"status"`
			}
			if err := json.Unmarshal(body, &status); err != nil {
				return nil, fmt.Errorf("parse poll status: %w", err)
			}

			if status.Status != "processing" {
				return body, nil
			}
		}
	}
}

func handleExtract(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 150 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url := request.GetString("url", "")
		html := request.GetString("html", "")
		if url == "" && html == "" {
			return mcp.NewToolResultError("either url or html is required"), nil
		}

		respBody, err := apiPost(ctx, client, apiURL, apiKey, "/api/v1/extract", extractRequest{
			URL:          url,
			HTML:         html,
			Platform:     request.GetString("platform", ""),
			OutputFormat: "markdown",
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("extract request failed: %v", err)), nil
		}

		var extResp extractResponse
		if err := json.Unmarshal(respBody, &extResp); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}

		if !extResp.Success {
			errMsg := "extraction failed"
			if extResp.Error != nil {
				errMsg = fmt.Sprintf("[%s] %s", extResp.Error.Code, extResp.Error.Message)
			}
			return mcp.NewToolResultError(errMsg), nil
		}

		header := fmt.Sprintf("Platform: %s\nTurns: %d\n\n", extResp.Platform, extResp.TurnCount)
		return mcp.NewToolResultText(header + extResp.Markdown), nil
	}
}

func handleBatchExtract(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 600 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		urls, err := request.RequireStringSlice("urls")
		if err != nil {
			return mcp.NewToolResultError("urls is required and must be an array of strings"), nil
		}

		payload := map[string]interface{}{
			"urls": urls,
			"options": map[string]interface{}{
				"platform":      request.GetString("platform", ""),
				"output_format": "markdown",
			},
		}

		respBody, err := apiPost(ctx, client, apiURL, apiKey, "/api/v1/batch/extract", payload)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("batch request failed: %v", err)), nil
		}

		var batchResp batchResponse
		if err := json.Unmarshal(respBody, &batchResp); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse batch response: %v", err)), nil
		}
		if batchResp.ID == "" {
			return mcp.NewToolResultError("batch job creation failed"), nil
		}

		resultBody, err := pollBatch(ctx, client, apiURL, apiKey, batchResp.ID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("polling batch job failed: %v", err)), nil
		}

		var statusResp batchStatusResponse
		if err := json.Unmarshal(resultBody, &statusResp); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse batch status: %v", err)), nil
		}

		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Batch %s: %s (%d/%d completed)\n\n", statusResp.ID, statusResp.Status, statusResp.Completed, statusResp.Total))

		for i, raw := range statusResp.Results {
			var er extractResponse
			if err := json.Unmarshal(raw, &er); err != nil {
				sb.WriteString(fmt.Sprintf("--- Result %d: parse error ---\n\n", i+1))
				continue
			}
			if er.Success {
				sb.WriteString(fmt.Sprintf("--- [%d] %s, %d turns ---\n%s\n\n", i+1, er.Platform, er.TurnCount, er.Markdown))
			} else {
				errMsg := "unknown error"
				if er.Error != nil {
					errMsg = er.Error.Message
				}
				sb.WriteString(fmt.Sprintf("--- [%d] FAILED: %s ---\n\n", i+1, errMsg))
			}
		}

		return mcp.NewToolResultText(sb.String()), nil
	}
}

func handleListPlatforms(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 30 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL+"/api/v1/platforms", nil)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("create request: %v", err)), nil
		}
		req.Header.Set("X-API-Key", apiKey)

		resp, err := client.Do(req)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("API request failed: %v", err)), nil
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("read response: %v", err)), nil
		}

		var platResp platformsResponse
		if err := json.Unmarshal(body, &platResp); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}

		var sb strings.Builder
		for _, p := range platResp.Platforms {
			shareNote := ""
			if p.ShareURL != "" {
				shareNote = " (share links: " + p.ShareURL + ")"
			}
			sb.WriteString(fmt.Sprintf("%s: %s%s\n", p.Name, strings.Join(p.Hosts, ", "), shareNote))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}
