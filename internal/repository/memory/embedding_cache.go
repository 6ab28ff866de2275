package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// EmbeddingCache keeps recently computed vectors in process memory.
type EmbeddingCache struct {
	cache *cache.Cache
}

func NewEmbeddingCache(ttl, cleanupInterval time.Duration) *EmbeddingCache {
	if ttl <= 0 {
		ttl = 1 * time.Hour
	}
	if cleanupInterval <= 0 {
		cleanupInterval = 10 * time.Minute
	}
	return &EmbeddingCache{
		cache: cache.New(ttl, cleanupInterval),
	}
}

func (r *EmbeddingCache) Save(key string, vector []float32) {
	r.cache.Set(key, vector, cache.DefaultExpiration)
}

func (r *EmbeddingCache) Get(key string) ([]float32, bool) {
	if x, found := r.cache.Get(key); found {
		return x.([]float32), true
	}
	return nil, false
}

func (r *EmbeddingCache) ItemCount() int {
	return r.cache.ItemCount()
}
