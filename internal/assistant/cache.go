package assistant

import (
	"sync"

	"github.com/vidalocal/discovery/internal/models"
	"github.com/vidalocal/discovery/internal/observability"
)

// responseCache is a bounded in-process cache of assistant replies. Eviction
// is strictly oldest-inserted-first; a re-set of an existing key does not
// refresh its position.
type responseCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*models.AssistantMessage
	order    []string
}

func newResponseCache(capacity int) *responseCache {
	return &responseCache{
		capacity: capacity,
		entries:  make(map[string]*models.AssistantMessage, capacity),
	}
}

func (c *responseCache) Get(key string) (*models.AssistantMessage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	msg, ok := c.entries[key]
	return msg, ok
}

func (c *responseCache) Set(key string, msg *models.AssistantMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		c.entries[key] = msg
		return
	}

	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[key] = msg
	c.order = append(c.order, key)
	observability.AssistantCacheSize.Set(float64(len(c.order)))
}

func (c *responseCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}
