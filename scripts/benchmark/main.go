// Benchmark harness for a running qnaclip server. Feeds it conversation
// URLs, repeats each extraction and reports latency breakdowns per URL.
//
// Share links are account-specific, so the URL list comes from the caller:
//
//	go run ./scripts/benchmark -api-key k -urls "https://chatgpt.com/share/...,https://claude.ai/share/..."
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"
	"time"
)

// CLI flags
var (
	apiURL  = flag.String("api-url", "http://localhost:8080", "qnaclip API base URL")
	apiKey  = flag.String("api-key", "", "API key for authenticated requests")
	urlList = flag.String("urls", "", "comma-separated conversation URLs to benchmark")
	runs    = flag.Int("runs", 3, "number of runs per URL for averaging")
	output  = flag.String("output", "benchmark-results.json", "JSON output file path")
)

// --- Request / Response types (mirrors models package) ---

type extractRequest struct {
	URL          string `json:"url"`
	OutputFormat string `json:"output_format"`
	Timeout      int    `json:"timeout"`
}

type extractResponse struct {
	Success     bool         `json:"success"`
	Platform    string       `json:"platform"`
	Markdown    string       `json:"markdown"`
	TurnCount   int          `json:"turn_count"`
	FetchMethod string       `json:"fetch_method"`
	Timing      timingInfo   `json:"timing"`
	Error       *errorDetail `json:"error,omitempty"`
}

type timingInfo struct {
	TotalMs      int64 `json:"total_ms"`
	NavigationMs int64 `json:"navigation_ms"`
	ExtractionMs int64 `json:"extraction_ms"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// --- Benchmark result types ---

type runResult struct {
	Run            int    `json:"run"`
	TotalMs        int64  `json:"total_ms"`
	NavigationMs   int64  `json:"navigation_ms"`
	ExtractionMs   int64  `json:"extraction_ms"`
	TurnCount      int    `json:"turn_count"`
	MarkdownLength int    `json:"markdown_length"`
	Platform       string `json:"platform"`
	FetchMethod    string `json:"fetch_method"`
	Success        bool   `json:"success"`
	Error          string `json:"error,omitempty"`
}

type urlAverages struct {
	TotalMs        float64 `json:"total_ms"`
	NavigationMs   float64 `json:"navigation_ms"`
	ExtractionMs   float64 `json:"extraction_ms"`
	MarkdownLength float64 `json:"markdown_length"`
}

type urlResult struct {
	URL      string       `json:"url"`
	Runs     []runResult  `json:"runs"`
	Averages *urlAverages `json:"averages,omitempty"`
}

type benchmarkReport struct {
	Timestamp  string      `json:"timestamp"`
	APIURL     string      `json:"api_url"`
	RunsPerURL int         `json:"runs_per_url"`
	Results    []urlResult `json:"results"`
}

func main() {
	flag.Parse()

	urls := splitURLs(*urlList)
	if len(urls) == 0 {
		fmt.Fprintln(os.Stderr, "Error: -urls is required (comma-separated conversation URLs)")
		os.Exit(1)
	}

	fmt.Println("=== qnaclip Benchmark Suite ===")
	fmt.Printf("API URL:   %s\n", *apiURL)
	fmt.Printf("URLs:      %d\n", len(urls))
	fmt.Printf("Runs/URL:  %d\n", *runs)
	fmt.Printf("Output:    %s\n", *output)
	fmt.Println()

	// Quick connectivity check.
	if err := checkAPI(*apiURL); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot reach API at %s: %v\n", *apiURL, err)
		fmt.Fprintf(os.Stderr, "Make sure qnaclip is running (e.g. make run)\n")
		os.Exit(1)
	}

	report := benchmarkReport{
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		APIURL:     *apiURL,
		RunsPerURL: *runs,
	}

	for _, u := range urls {
		fmt.Printf("Benchmarking %s ...\n", u)
		ur := urlResult{URL: u}

		for i := 1; i <= *runs; i++ {
			fmt.Printf("  Run %d/%d ... ", i, *runs)
			rr := benchmarkURL(u, i)
			if rr.Success {
				fmt.Printf("OK  %dms  %d turns via %s\n", rr.TotalMs, rr.TurnCount, rr.FetchMethod)
			} else {
				fmt.Printf("FAILED: %s\n", rr.Error)
			}
			ur.Runs = append(ur.Runs, rr)
		}

		ur.Averages = computeAverages(ur.Runs)
		report.Results = append(report.Results, ur)
		fmt.Println()
	}

	printTable(report.Results)

	if err := writeJSON(*output, report); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing JSON output: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nDetailed results written to %s\n", *output)
}

func splitURLs(s string) []string {
	var out []string
	for _, u := range strings.Split(s, ",") {
		if u = strings.TrimSpace(u); u != "" {
			out = append(out, u)
		}
	}
	return out
}

func checkAPI(baseURL string) error {
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(baseURL + "/api/v1/health")
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func benchmarkURL(url string, run int) runResult {
	rr := runResult{Run: run}

	reqBody := extractRequest{
		URL:          url,
		OutputFormat: "markdown",
		Timeout:      60,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		rr.Error = fmt.Sprintf("marshal error: %v", err)
		return rr
	}

	req, err := http.NewRequest("POST", *apiURL+"/api/v1/extract", bytes.NewReader(bodyBytes))
	if err != nil {
		rr.Error = fmt.Sprintf("request error: %v", err)
		return rr
	}
	req.Header.Set("Content-Type", "application/json")
	if *apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+*apiKey)
	}

	client := &http.Client{Timeout: 90 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		rr.Error = fmt.Sprintf("request failed: %v", err)
		return rr
	}
	defer resp.Body.Close()

	var er extractResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		rr.Error = fmt.Sprintf("decode error: %v", err)
		return rr
	}

	rr.Success = er.Success
	rr.TotalMs = er.Timing.TotalMs
	rr.NavigationMs = er.Timing.NavigationMs
	rr.ExtractionMs = er.Timing.ExtractionMs
	rr.TurnCount = er.TurnCount
	rr.MarkdownLength = len(er.Markdown)
	rr.Platform = er.Platform
	rr.FetchMethod = er.FetchMethod

	if er.Error != nil {
		rr.Error = er.Error.Message
	}

	return rr
}

func computeAverages(runs []runResult) *urlAverages {
	var successCount int
	var avg urlAverages

	for _, r := range runs {
		if !r.Success {
			continue
		}
		successCount++
		avg.TotalMs += float64(r.TotalMs)
		avg.NavigationMs += float64(r.NavigationMs)
		avg.ExtractionMs += float64(r.ExtractionMs)
		avg.MarkdownLength += float64(r.MarkdownLength)
	}

	if successCount == 0 {
		return nil
	}

	n := float64(successCount)
	avg.TotalMs /= n
	avg.NavigationMs /= n
	avg.ExtractionMs /= n
	avg.MarkdownLength /= n
	return &avg
}

func printTable(results []urlResult) {
	fmt.Println(strings.Repeat("─", 85))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "URL\tPlatform\tAvg Latency\tAvg Fetch\tMarkdown Len\n")
	fmt.Fprintf(w, "───\t────────\t───────────\t─────────\t────────────\n")

	for _, r := range results {
		if r.Averages == nil {
			fmt.Fprintf(w, "%s\t-\tFAILED\t-\t-\n", truncateURL(r.URL, 40))
			continue
		}

		fmt.Fprintf(w, "%s\t%s\t%dms\t%dms\t%s\n",
			truncateURL(r.URL, 40),
			dominantPlatform(r.Runs),
			int64(r.Averages.TotalMs),
			int64(r.Averages.NavigationMs),
			formatInt(int(r.Averages.MarkdownLength)),
		)
	}

	w.Flush()
	fmt.Println(strings.Repeat("─", 85))
}

func dominantPlatform(runs []runResult) string {
	counts := map[string]int{}
	for _, r := range runs {
		if r.Success {
			counts[r.Platform]++
		}
	}
	best, bestCount := "-", 0
	for p, count := range counts {
		if count > bestCount {
			best = p
			bestCount = count
		}
	}
	return best
}

func truncateURL(u string, max int) string {
	if len(u) <= max {
		return u
	}
	return u[:max-3] + "..."
}

func formatInt(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var result []byte
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}
	return string(result)
}

func writeJSON(path string, report benchmarkReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
