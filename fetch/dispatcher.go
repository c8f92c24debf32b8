package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"
)

// Dispatcher races the fetch engines with staged escalation: the HTTP
// engine starts immediately, the browser joins after its escalation delay
// if nothing has won yet. The winner is remembered per host so later
// requests to the same platform skip the race.
type Dispatcher struct {
	engines          []Engine
	escalationDelays []time.Duration
	memory           *HostMemory
}

// NewDispatcher builds a Dispatcher. engines[i] starts escalationDelays[i]
// after the race begins; the first delay should be 0.
func NewDispatcher(engines []Engine, escalationDelays []time.Duration, memory *HostMemory) *Dispatcher {
	delays := make([]time.Duration, len(engines))
	copy(delays, escalationDelays)
	return &Dispatcher{
		engines:          engines,
		escalationDelays: delays,
		memory:           memory,
	}
}

// Dispatch fetches the page with the first engine that succeeds. When all
// engines fail, the last error is returned.
func (d *Dispatcher) Dispatch(ctx context.Context, req *Request) (*Result, error) {
	host := extractHost(req.URL)

	if remembered := d.memory.Get(host); remembered != "" {
		for _, eng := range d.engines {
			if eng.Name() == remembered {
				slog.Debug("host memory hit", "host", host, "engine", remembered)
				result, err := eng.Fetch(ctx, req)
				if err == nil {
					return result, nil
				}
				slog.Info("remembered engine failed, running full race",
					"host", host, "engine", remembered, "error", err)
				d.memory.Delete(host)
				break
			}
		}
	}

	return d.race(ctx, req, host)
}

func (d *Dispatcher) race(ctx context.Context, req *Request, host string) (*Result, error) {
	type raceResult struct {
		result *Result
		err    error
	}

	raceCtx, raceCancel := context.WithCancel(ctx)
	defer raceCancel()

	results := make(chan raceResult, len(d.engines))
	var wg sync.WaitGroup

	for i, eng := range d.engines {
		delay := d.escalationDelays[i]
		wg.Add(1)
		go func(e Engine, startAfter time.Duration) {
			defer wg.Done()

			if startAfter > 0 {
				select {
				case <-raceCtx.Done():
					return
				case <-time.After(startAfter):
				}
			}
			select {
			case <-raceCtx.Done():
				return
			default:
			}

			slog.Debug("engine starting", "engine", e.Name(), "url", req.URL)
			result, err := e.Fetch(raceCtx, req)
			if err != nil {
				slog.Debug("engine failed", "engine", e.Name(), "url", req.URL, "error", err)
			}
			results <- raceResult{result: result, err: err}
		}(eng, delay)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var lastErr error
	for rr := range results {
		if rr.err != nil {
			lastErr = rr.err
			continue
		}
		raceCancel()
		slog.Info("engine won race", "engine", rr.result.EngineName, "url", req.URL)
		d.memory.Set(host, rr.result.EngineName)
		return rr.result, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("fetch: all engines failed for %s", req.URL)
	}
	return nil, lastErr
}

func extractHost(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Hostname()
}
