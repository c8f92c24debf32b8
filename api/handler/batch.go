package handler

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SirTensor/chatbot-QnA-clipper-sub000/clip"
	"github.com/SirTensor/chatbot-QnA-clipper-sub000/models"
	"github.com/SirTensor/chatbot-QnA-clipper-sub000/webhook"
)

// batchStore holds in-flight and finished batch jobs, keyed by job ID.
// Jobs expire one hour after creation.
var batchStore sync.Map

func init() {
	go func() {
		for range time.Tick(10 * time.Minute) {
			cutoff := time.Now().Add(-1 * time.Hour).Unix()
			batchStore.Range(func(key, value any) bool {
				if job := value.(*models.BatchJob); job.CreatedAt < cutoff {
					batchStore.Delete(key)
				}
				return true
			})
		}
	}()
}

// PostBatch handles POST /api/v1/batch/extract. It accepts the job,
// responds immediately and extracts the URLs in the background with
// bounded concurrency.
func PostBatch(svc *clip.Service, concurrency int, notifier *webhook.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.BatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, models.NewExtractError(models.ErrCodeInvalidInput,
				"invalid request body: "+err.Error(), err))
			return
		}

		job := models.NewBatchJob("batch-"+randomID(), len(req.URLs), time.Now().Unix())
		batchStore.Store(job.ID, job)

		go runBatch(svc, job, &req, concurrency, notifier)

		c.JSON(http.StatusAccepted, models.BatchResponse{
			ID:     job.ID,
			Status: job.Status(),
			Total:  job.Total,
		})
	}
}

// GetBatch handles GET /api/v1/batch/:id.
func GetBatch() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, ok := batchStore.Load(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, models.ExtractResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: "batch job not found or expired",
				},
			})
			return
		}
		job := value.(*models.BatchJob)
		c.JSON(http.StatusOK, job.Snapshot())
	}
}

// runBatch extracts every URL with at most concurrency in flight, then
// records the terminal status and fires the webhook if one was requested.
func runBatch(svc *clip.Service, job *models.BatchJob, req *models.BatchRequest, concurrency int, notifier *webhook.Notifier) {
	if concurrency < 1 {
		concurrency = 1
	}
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	var completed, failed atomic.Int64

	for i, u := range req.URLs {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int, url string) {
			defer wg.Done()
			defer func() { <-sem }()

			result := extractOne(svc, url, req.Options)
			job.RecordResult(idx, result)
			if result.Success {
				completed.Add(1)
			} else {
				failed.Add(1)
			}
		}(i, u)
	}
	wg.Wait()

	var status string
	switch {
	case failed.Load() == 0:
		status = "completed"
	case completed.Load() == 0:
		status = "failed"
	default:
		status = "partial"
	}
	job.Finish(status)
	slog.Info("batch finished",
		"job_id", job.ID,
		"status", status,
		"completed", completed.Load(),
		"failed", failed.Load())

	if req.WebhookURL != "" && notifier != nil {
		eventType := webhook.EventBatchCompleted
		if status == "failed" {
			eventType = webhook.EventBatchFailed
		}
		notifier.DeliverAsync(req.WebhookURL, &webhook.Event{
			Type:      eventType,
			JobID:     job.ID,
			Timestamp: time.Now().Unix(),
			Data:      job.Snapshot(),
		})
	}
}

// extractOne runs a single batch URL with the shared options. Failures
// become error responses instead of propagating, so one bad URL never
// aborts the batch.
func extractOne(svc *clip.Service, url string, opts models.BatchOptions) *models.ExtractResponse {
	req := &models.ExtractRequest{
		URL:          url,
		Platform:     opts.Platform,
		OutputFormat: opts.OutputFormat,
		Timeout:      opts.Timeout,
		Format:       opts.Format,
	}

	timeout := time.Duration(opts.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout+5*time.Second)
	defer cancel()

	resp, err := svc.Extract(ctx, req)
	if err != nil {
		ee, ok := err.(*models.ExtractError)
		if !ok {
			ee = models.NewExtractError(models.ErrCodeInternal, err.Error(), err)
		}
		return &models.ExtractResponse{
			Success:  false,
			FinalURL: url,
			Error:    ee.ToDetail(),
		}
	}
	return resp
}

func randomID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return hex.EncodeToString([]byte(time.Now().String()))[:16]
	}
	return hex.EncodeToString(b)
}
