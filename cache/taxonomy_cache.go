package taxonomy_cache

import (
	"sync"
	"time"

	"github.com/yash77492562/E-commerce-sub000/models"
)

const TTL = 5 * time.Minute

// ── Derived category breakdown cache ─────────────────────────────────────────
// Stores the computed category → subcategory view served by
// GET /catalog/categories. Invalidated on every catalog write.

type entry struct {
	data      []models.CategoryBreakdown
	fetchedAt time.Time
}

var (
	mu    sync.RWMutex
	cache *entry
)

func Get() ([]models.CategoryBreakdown, bool) {
	mu.RLock()
	defer mu.RUnlock()
	if cache != nil && time.Since(cache.fetchedAt) < TTL {
		return cache.data, true
	}
	return nil, false
}

func Set(data []models.CategoryBreakdown) {
	mu.Lock()
	defer mu.Unlock()
	cache = &entry{data: data, fetchedAt: time.Now()}
}

// Invalidate drops the cached breakdown (call on any product create/update/delete).
func Invalidate() {
	mu.Lock()
	cache = nil
	mu.Unlock()
}
