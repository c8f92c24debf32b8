// Package webhook notifies external endpoints when batch extractions
// reach a terminal state.
package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Event types sent to webhook endpoints.
const (
	EventBatchCompleted = "batch.completed"
	EventBatchFailed    = "batch.failed"
)

// Event is the payload delivered to webhook endpoints.
type Event struct {
	Type      string      `json:"type"`
	JobID     string      `json:"job_id"`
	Timestamp int64       `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// Notifier delivers signed webhook events. The zero secret disables
// signing; everything else about delivery stays the same.
type Notifier struct {
	secret string
	client *http.Client

	// sleep is swapped out in tests to skip the retry backoff.
	sleep func(time.Duration)
}

// NewNotifier builds a Notifier signing payloads with secret.
func NewNotifier(secret string) *Notifier {
	return &Notifier{
		secret: secret,
		client: &http.Client{Timeout: 10 * time.Second},
		sleep:  time.Sleep,
	}
}

// Sign computes the hex HMAC-SHA256 of body under the notifier's secret.
// Receivers recompute this to authenticate the payload.
func (n *Notifier) Sign(body []byte) string {
	mac := hmac.New(sha256.New, []byte(n.secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Deliver sends one event synchronously. Non-2xx responses count as
// delivery failures so the async path retries them.
func (n *Notifier) Deliver(ctx context.Context, url string, event *Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("webhook: marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Qnaclip-Webhook/1.0")
	if n.secret != "" {
		req.Header.Set("X-Qnaclip-Signature", "sha256="+n.Sign(body))
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: deliver: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook: endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

// DeliverAsync sends an event in the background, retrying with growing
// backoff (1s, 5s, 30s) before giving up.
func (n *Notifier) DeliverAsync(url string, event *Event) {
	go func() {
		delays := []time.Duration{0, 1 * time.Second, 5 * time.Second, 30 * time.Second}
		for attempt, delay := range delays {
			if delay > 0 {
				n.sleep(delay)
			}
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			err := n.Deliver(ctx, url, event)
			cancel()
			if err == nil {
				slog.Info("webhook delivered",
					"url", url,
					"event", event.Type,
					"job_id", event.JobID,
					"attempt", attempt+1)
				return
			}
			slog.Warn("webhook delivery failed",
				"url", url,
				"event", event.Type,
				"job_id", event.JobID,
				"attempt", attempt+1,
				"error", err)
		}
		slog.Error("webhook delivery exhausted all retries",
			"url", url,
			"event", event.Type,
			"job_id", event.JobID)
	}()
}
