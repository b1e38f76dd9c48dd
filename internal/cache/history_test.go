package cache_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meliview/meli_api/internal/cache"
	"github.com/meliview/meli_api/internal/models"
)

func record(id, title string) models.ProductRecord {
	return models.ProductRecord{ID: id, Title: title}
}

func ids(records []models.ProductRecord) []string {
	out := make([]string, len(records))
	for i, rec := range records {
		out[i] = rec.ID
	}
	return out
}

func TestUpsertKeepsRecencyOrder(t *testing.T) {
	history := cache.NewHistoryCache(10)

	history.Upsert(record("A", "first"))
	history.Upsert(record("B", "second"))
	history.Upsert(record("C", "third"))

	assert.Equal(t, []string{"C", "B", "A"}, ids(history.All()))
}

func TestUpsertDeduplicatesById(t *testing.T) {
	history := cache.NewHistoryCache(10)

	history.Upsert(record("A", "old payload"))
	history.Upsert(record("B", "other"))
	history.Upsert(record("A", "new payload"))

	all := history.All()
	require.Len(t, all, 2)
	assert.Equal(t, "A", all[0].ID, "re-fetched record moves to the front")
	assert.Equal(t, "new payload", all[0].Title, "second payload replaces the first wholesale")
}

func TestEvictionDropsOldestEntry(t *testing.T) {
	const max = 3
	history := cache.NewHistoryCache(max)

	for i := 0; i < max+1; i++ {
		history.Upsert(record(fmt.Sprintf("MLB%d", i), "x"))
	}

	assert.Equal(t, max, history.Len())
	_, ok := history.Lookup("MLB0")
	assert.False(t, ok, "oldest inserted id is evicted")
	assert.Equal(t, []string{"MLB3", "MLB2", "MLB1"}, ids(history.All()))
}

func TestEvictionIsFIFONotLRU(t *testing.T) {
	history := cache.NewHistoryCache(2)

	history.Upsert(record("A", "x"))
	history.Upsert(record("B", "x"))

	// A read does not refresh recency; only a re-fetch does.
	_, ok := history.Lookup("A")
	require.True(t, ok)

	history.Upsert(record("C", "x"))

	_, ok = history.Lookup("A")
	assert.False(t, ok, "A was the oldest insertion and must be evicted")
	assert.Equal(t, []string{"C", "B"}, ids(history.All()))
}

func TestLookup(t *testing.T) {
	history := cache.NewHistoryCache(10)
	history.Upsert(record("A", "widget"))

	got, ok := history.Lookup("A")
	require.True(t, ok)
	assert.Equal(t, "widget", got.Title)

	_, ok = history.Lookup("Z")
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	history := cache.NewHistoryCache(10)
	history.Upsert(record("A", "x"))
	history.Upsert(record("B", "x"))

	history.Clear()

	assert.Empty(t, history.All())
	assert.Zero(t, history.Len())
	_, ok := history.Lookup("A")
	assert.False(t, ok)
}

func TestAllReturnsSnapshot(t *testing.T) {
	history := cache.NewHistoryCache(10)
	history.Upsert(record("A", "x"))

	snapshot := history.All()
	history.Upsert(record("B", "x"))

	assert.Len(t, snapshot, 1, "snapshot is not affected by later upserts")
}

func TestConcurrentUpsertsKeepInvariants(t *testing.T) {
	const max = 8
	history := cache.NewHistoryCache(max)

	var wg sync.WaitGroup
	for worker := 0; worker < 4; worker++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				history.Upsert(record(fmt.Sprintf("MLB%d", i%max), "x"))
				history.Lookup(fmt.Sprintf("MLB%d", i%max))
				history.All()
			}
		}(worker)
	}
	wg.Wait()

	all := history.All()
	assert.LessOrEqual(t, len(all), max)

	seen := map[string]bool{}
	for _, rec := range all {
		assert.False(t, seen[rec.ID], "no duplicate ids after concurrent upserts")
		seen[rec.ID] = true
	}
}
