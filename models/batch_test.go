package models

import (
	"sync"
	"testing"
	"time"
)

func TestBatchJob_SnapshotHidesResultsWhileProcessing(t *testing.T) {
	job := NewBatchJob("batch-1", 2, time.Now().Unix())
	job.RecordResult(0, &ExtractResponse{Success: true})

	snap := job.Snapshot()
	if snap.Status != "processing" {
		t.Errorf("status = %q, want processing", snap.Status)
	}
	if snap.Completed != 1 {
		t.Errorf("completed = %d, want 1", snap.Completed)
	}
	if snap.Results != nil {
		t.Error("results should be hidden while processing")
	}

	job.RecordResult(1, &ExtractResponse{Success: false})
	job.Finish("partial")

	snap = job.Snapshot()
	if snap.Status != "partial" || snap.Completed != 2 {
		t.Errorf("snapshot = %+v", snap)
	}
	if len(snap.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(snap.Results))
	}
	if !snap.Results[0].Success || snap.Results[1].Success {
		t.Errorf("results out of order: %+v", snap.Results)
	}
}

func TestBatchJob_ConcurrentRecordAndSnapshot(t *testing.T) {
	const workers = 16
	job := NewBatchJob("batch-2", workers, time.Now().Unix())

	// Poll the job the way a status endpoint would while workers are
	// still recording; the race detector flags any unguarded access.
	stop := make(chan struct{})
	var pollers sync.WaitGroup
	for i := 0; i < 4; i++ {
		pollers.Add(1)
		go func() {
			defer pollers.Done()
			for {
				select {
				case <-stop:
					return
				default:
					snap := job.Snapshot()
					if snap.Completed > snap.Total {
						t.Errorf("completed %d exceeds total %d", snap.Completed, snap.Total)
						return
					}
					_ = job.Status()
				}
			}
		}()
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			job.RecordResult(idx, &ExtractResponse{Success: true})
		}(i)
	}
	wg.Wait()
	job.Finish("completed")
	close(stop)
	pollers.Wait()

	snap := job.Snapshot()
	if snap.Status != "completed" || snap.Completed != workers {
		t.Errorf("final snapshot = %+v", snap)
	}
	for i, r := range snap.Results {
		if r == nil {
			t.Errorf("result %d missing", i)
		}
	}
}
