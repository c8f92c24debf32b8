package models

import "sync"

// BatchRequest is the payload for POST /api/v1/batch/extract.
type BatchRequest struct {
	// URLs is the list of conversation pages to extract. Required.
	URLs []string `json:"urls" binding:"required,min=1,max=100"`

	// Options contains shared extraction options applied to all URLs.
	Options BatchOptions `json:"options"`

	// WebhookURL, when set, receives a signed POST notification once the
	// batch reaches a terminal state.
	WebhookURL string `json:"webhook_url,omitempty" binding:"omitempty,url"`
}

// BatchOptions are the shared settings applied to every URL in a batch.
type BatchOptions struct {
	Platform     string        `json:"platform,omitempty" binding:"omitempty,oneof=chatgpt claude gemini grok"`
	OutputFormat string        `json:"output_format,omitempty" binding:"omitempty,oneof=markdown items"`
	Timeout      int           `json:"timeout,omitempty" binding:"omitempty,min=1,max=120"`
	Format       FormatOptions `json:"format"`
}

// BatchResponse is the immediate response for POST /api/v1/batch/extract.
type BatchResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Total  int    `json:"total"`
}

// BatchStatusResponse is the response for GET /api/v1/batch/:id.
type BatchStatusResponse struct {
	ID        string             `json:"id"`
	Status    string             `json:"status"`
	Completed int                `json:"completed"`
	Total     int                `json:"total"`
	Results   []*ExtractResponse `json:"results,omitempty"`
}

// BatchJob tracks an in-progress batch extraction. Worker goroutines
// record results while status polls read the job, so all mutable state
// sits behind the mutex; use NewBatchJob and the methods below.
type BatchJob struct {
	ID        string
	Total     int
	CreatedAt int64 // unix timestamp

	mu        sync.Mutex
	status    string // "processing", "completed", "failed", "partial"
	completed int
	results   []*ExtractResponse
}

// NewBatchJob creates a job in the processing state with room for total
// results.
func NewBatchJob(id string, total int, createdAt int64) *BatchJob {
	return &BatchJob{
		ID:        id,
		Total:     total,
		CreatedAt: createdAt,
		status:    "processing",
		results:   make([]*ExtractResponse, total),
	}
}

// RecordResult stores the result for one URL slot and advances the
// completion counter.
func (j *BatchJob) RecordResult(idx int, r *ExtractResponse) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.results[idx] = r
	j.completed++
}

// Finish moves the job to a terminal status.
func (j *BatchJob) Finish(status string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.status = status
	j.completed = j.Total
}

// Status returns the job's current status.
func (j *BatchJob) Status() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.status
}

// Snapshot returns a consistent status view. Results are included only
// once the job has reached a terminal state.
func (j *BatchJob) Snapshot() BatchStatusResponse {
	j.mu.Lock()
	defer j.mu.Unlock()
	resp := BatchStatusResponse{
		ID:        j.ID,
		Status:    j.status,
		Completed: j.completed,
		Total:     j.Total,
	}
	if j.status != "processing" {
		resp.Results = j.results
	}
	return resp
}
