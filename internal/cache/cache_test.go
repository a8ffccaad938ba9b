package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"timely/internal/models"

	"github.com/stretchr/testify/assert"
)

type fakeNow struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fakeNow) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeNow) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = f.t.Add(d)
}

func TestNew(t *testing.T) {
	cache := New[string]()
	assert.NotNil(t, cache)
	assert.NotNil(t, cache.items)
	assert.Equal(t, 0, cache.Len())
}

func TestCache_SetAndGet(t *testing.T) {
	cache := New[string]()

	cache.Set("key1", "value1", 10*time.Second)
	val, exists := cache.Get("key1")
	assert.True(t, exists)
	assert.Equal(t, "value1", val)

	val, exists = cache.Get("nonexistent")
	assert.False(t, exists)
	assert.Equal(t, "", val)
}

func TestCache_StructValues(t *testing.T) {
	cache := New[models.ClientProfile]()
	profile := models.ClientProfile{ID: "c1", Email: "c@x.com", ProjectIDs: []string{"p1"}}

	cache.Set("c1", profile, time.Minute)
	got, ok := cache.Get("c1")
	assert.True(t, ok)
	assert.Equal(t, profile, got)
}

func TestCache_Expiration(t *testing.T) {
	clock := &fakeNow{t: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)}
	cache := New[int]().WithClock(clock.Now)

	cache.Set("expiring", 42, 100*time.Millisecond)

	val, exists := cache.Get("expiring")
	assert.True(t, exists)
	assert.Equal(t, 42, val)

	clock.Advance(100 * time.Millisecond)

	val, exists = cache.Get("expiring")
	assert.False(t, exists)
	assert.Equal(t, 0, val)
	assert.Equal(t, 0, cache.Len(), "expired item is evicted on read")
}

func TestCache_Overwrite(t *testing.T) {
	clock := &fakeNow{t: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)}
	cache := New[string]().WithClock(clock.Now)

	cache.Set("key", "old", time.Second)
	clock.Advance(900 * time.Millisecond)
	cache.Set("key", "new", time.Second)
	clock.Advance(900 * time.Millisecond)

	val, exists := cache.Get("key")
	assert.True(t, exists)
	assert.Equal(t, "new", val)
}

func TestCache_DeleteAndClear(t *testing.T) {
	cache := New[string]()
	cache.Set("a", "1", time.Minute)
	cache.Set("b", "2", time.Minute)

	cache.Delete("a")
	_, exists := cache.Get("a")
	assert.False(t, exists)

	cache.Delete("missing")

	cache.Clear()
	assert.Equal(t, 0, cache.Len())
}

func TestCache_ConcurrentAccess(t *testing.T) {
	cache := New[int]()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("key%d", i%10)
			cache.Set(key, i, time.Minute)
			cache.Get(key)
			if i%7 == 0 {
				cache.Delete(key)
			}
		}(i)
	}

	wg.Wait()
	assert.LessOrEqual(t, cache.Len(), 10)
}
