package fetch

import (
	"sync"
	"time"
)

type hostEntry struct {
	engineName string
	expiresAt  time.Time
}

// HostMemory remembers which engine last worked for each host. The chat
// platforms split cleanly (share hosts serve HTTP, app hosts need the
// browser), so after the first request per host the race is skipped.
// Entries expire after the configured TTL.
//
// A nil *HostMemory is valid and remembers nothing, so a Dispatcher can
// run without memory and race every request.
type HostMemory struct {
	store sync.Map // host (string) -> *hostEntry
	ttl   time.Duration
	done  chan struct{}
}

// NewHostMemory builds a HostMemory and starts its hourly cleanup loop.
func NewHostMemory(ttl time.Duration) *HostMemory {
	hm := &HostMemory{
		ttl:  ttl,
		done: make(chan struct{}),
	}
	go hm.cleanupLoop()
	return hm
}

// Get returns the remembered engine for a host, or "" when unknown or
// expired.
func (hm *HostMemory) Get(host string) string {
	if hm == nil {
		return ""
	}
	val, ok := hm.store.Load(host)
	if !ok {
		return ""
	}
	entry := val.(*hostEntry)
	if time.Now().After(entry.expiresAt) {
		hm.store.Delete(host)
		return ""
	}
	return entry.engineName
}

// Set records which engine succeeded for a host.
func (hm *HostMemory) Set(host, engineName string) {
	if hm == nil {
		return
	}
	hm.store.Store(host, &hostEntry{
		engineName: engineName,
		expiresAt:  time.Now().Add(hm.ttl),
	})
}

// Delete forgets a host after its remembered engine fails.
func (hm *HostMemory) Delete(host string) {
	if hm == nil {
		return
	}
	hm.store.Delete(host)
}

// Stop terminates the cleanup goroutine.
func (hm *HostMemory) Stop() {
	if hm == nil {
		return
	}
	close(hm.done)
}

func (hm *HostMemory) cleanupLoop() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-hm.done:
			return
		case <-ticker.C:
			now := time.Now()
			hm.store.Range(func(key, value any) bool {
				if now.After(value.(*hostEntry).expiresAt) {
					hm.store.Delete(key)
				}
				return true
			})
		}
	}
}
