// Package cache holds recently extracted conversations in memory.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/SirTensor/chatbot-QnA-clipper-sub000/models"
)

// entry holds a cached response with its creation timestamp.
type entry struct {
	response  *models.ExtractResponse
	createdAt time.Time
}

// Cache is a simple in-memory cache for extraction responses. It is safe
// for concurrent use.
type Cache struct {
	mu         sync.RWMutex
	store      map[string]*entry
	maxEntries int
}

// New creates a Cache with the given maximum number of entries. A
// background goroutine evicts entries older than 1 hour every 5 minutes.
func New(maxEntries int) *Cache {
	c := &Cache{
		store:      make(map[string]*entry),
		maxEntries: maxEntries,
	}
	go c.cleanupLoop()
	return c
}

// Key derives the cache key from everything that changes the output: the
// page source (URL, or the inline HTML itself), the forced platform, the
// response format and the Markdown style options.
func Key(source, platform, outputFormat string, format models.FormatOptions) string {
	h := sha256.New()
	h.Write([]byte(source))
	h.Write([]byte("|"))
	h.Write([]byte(platform))
	h.Write([]byte("|"))
	h.Write([]byte(outputFormat))
	fmt.Fprintf(h, "|%d|%s|%t|%t",
		format.HeaderLevel, format.LabelStyle, format.NumberTurns, format.IncludeTitle)
	return hex.EncodeToString(h.Sum(nil))
}

// Get retrieves a cached response younger than maxAge (milliseconds).
// maxAge <= 0 disables the lookup.
func (c *Cache) Get(key string, maxAgeMs int) (*models.ExtractResponse, bool) {
	if maxAgeMs <= 0 {
		return nil, false
	}

	c.mu.RLock()
	e, ok := c.store[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Since(e.createdAt) > time.Duration(maxAgeMs)*time.Millisecond {
		return nil, false
	}
	return e.response, true
}

// Set stores a response. At capacity a random entry is evicted to make
// room (map iteration order is random in Go).
func (c *Cache) Set(key string, resp *models.ExtractResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.store) >= c.maxEntries {
		for k := range c.store {
			delete(c.store, k)
			break
		}
	}
	c.store[key] = &entry{
		response:  resp,
		createdAt: time.Now(),
	}
}

func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-1 * time.Hour)
		c.mu.Lock()
		for k, e := range c.store {
			if e.createdAt.Before(cutoff) {
				delete(c.store, k)
			}
		}
		c.mu.Unlock()
	}
}
