package cache

import (
	"sync"

	"github.com/meliview/meli_api/internal/models"
)

// DefaultMaxHistory bounds the lookup history when no size is configured.
const DefaultMaxHistory = 50

// HistoryCache is a bounded, deduplicating, recency-ordered store of product
// records. The newest record sits at index 0; when capacity is exceeded the
// oldest entry is evicted, regardless of later lookups. Safe for concurrent
// use.
type HistoryCache struct {
	mu    sync.RWMutex
	max   int
	items []models.ProductRecord
}

// NewHistoryCache creates an empty history bounded to max entries.
func NewHistoryCache(max int) *HistoryCache {
	if max <= 0 {
		max = DefaultMaxHistory
	}
	return &HistoryCache{max: max}
}

// Upsert removes any existing entry sharing the record's id, inserts the
// record at the front, then trims the oldest entry if capacity is exceeded.
// Records are always replaced wholesale, never mutated in place.
func (h *HistoryCache) Upsert(record models.ProductRecord) {
	h.mu.Lock()
	defer h.mu.Unlock()

	items := make([]models.ProductRecord, 0, len(h.items)+1)
	items = append(items, record)
	for _, item := range h.items {
		if item.ID != record.ID {
			items = append(items, item)
		}
	}
	if len(items) > h.max {
		items = items[:h.max]
	}
	h.items = items
}

// Lookup returns the record with the given id, if present.
func (h *HistoryCache) Lookup(id string) (models.ProductRecord, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, item := range h.items {
		if item.ID == id {
			return item, true
		}
	}
	return models.ProductRecord{}, false
}

// All returns a snapshot of the history, most recent first.
func (h *HistoryCache) All() []models.ProductRecord {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]models.ProductRecord, len(h.items))
	copy(out, h.items)
	return out
}

// Clear empties the history unconditionally.
func (h *HistoryCache) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.items = nil
}

// Len returns the current number of entries.
func (h *HistoryCache) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.items)
}
