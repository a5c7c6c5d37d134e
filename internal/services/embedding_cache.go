package services

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"alfredoptarigan/hirehub/internal/scoring"
)

// CachedEmbedder wraps an embedding provider with an in-memory L1 cache and
// an optional Redis L2 cache. Vectors are keyed by model and exact text, so
// a cache hit returns the same vector the provider returned originally.
type CachedEmbedder struct {
	next       scoring.EmbeddingProvider
	model      string
	l1         sync.Map // key -> *embeddingEntry
	rdb        *redis.Client
	ttl        time.Duration
	maxEntries int
	log        *zap.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

type embeddingEntry struct {
	vector    []float32
	expiresAt time.Time
}

func NewCachedEmbedder(next scoring.EmbeddingProvider, model string, rdb *redis.Client, ttl time.Duration, maxEntries int, log *zap.Logger) *CachedEmbedder {
	if log == nil {
		log = zap.NewNop()
	}
	return &CachedEmbedder{
		next:       next,
		model:      model,
		rdb:        rdb,
		ttl:        ttl,
		maxEntries: maxEntries,
		log:        log,
	}
}

// NewRedisClient connects to redisURL. An empty URL returns nil, which
// disables the L2 cache.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	if redisURL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	rdb := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis unreachable: %w", err)
	}

	return rdb, nil
}

func embeddingKey(model, text string) string {
	hash := sha256.Sum256([]byte(model + "|" + text))
	return fmt.Sprintf("emb:%x", hash[:16])
}

func (c *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch serves what it can from cache and sends the remaining unique
// texts to the provider in one batch.
func (c *CachedEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	missIdx := make(map[string][]int)
	var missTexts []string

	for i, text := range texts {
		if v, ok := c.get(ctx, embeddingKey(c.model, text)); ok {
			out[i] = v
			continue
		}
		if _, seen := missIdx[text]; !seen {
			missTexts = append(missTexts, text)
		}
		missIdx[text] = append(missIdx[text], i)
	}

	c.hits.Add(int64(len(texts) - len(missTexts)))
	c.misses.Add(int64(len(missTexts)))

	if len(missTexts) == 0 {
		return out, nil
	}

	vectors, err := c.next.EmbedBatch(ctx, missTexts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(missTexts) {
		return nil, fmt.Errorf("%w: got %d vectors for %d texts", scoring.ErrBatchSizeMismatch, len(vectors), len(missTexts))
	}

	for j, text := range missTexts {
		c.set(ctx, embeddingKey(c.model, text), vectors[j])
		for _, i := range missIdx[text] {
			out[i] = vectors[j]
		}
	}

	return out, nil
}

// Stats returns the cache hit and miss counters.
func (c *CachedEmbedder) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *CachedEmbedder) get(ctx context.Context, key string) ([]float32, bool) {
	if val, ok := c.l1.Load(key); ok {
		entry := val.(*embeddingEntry)
		if time.Now().Before(entry.expiresAt) {
			return entry.vector, true
		}
		c.l1.Delete(key)
	}

	if c.rdb == nil {
		return nil, false
	}

	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Debug("embedding cache: L2 get failed", zap.Error(err))
		}
		return nil, false
	}

	var vector []float32
	if err := json.Unmarshal(data, &vector); err != nil {
		return nil, false
	}
	c.storeL1(key, vector)
	return vector, true
}

func (c *CachedEmbedder) set(ctx context.Context, key string, vector []float32) {
	c.storeL1(key, vector)

	if c.rdb == nil {
		return
	}
	data, err := json.Marshal(vector)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Debug("embedding cache: L2 set failed", zap.Error(err))
	}
}

func (c *CachedEmbedder) storeL1(key string, vector []float32) {
	c.evictIfNeeded()
	c.l1.Store(key, &embeddingEntry{vector: vector, expiresAt: time.Now().Add(c.ttl)})
}

// evictIfNeeded drops expired entries, then the entries closest to expiry,
// until L1 is below maxEntries.
func (c *CachedEmbedder) evictIfNeeded() {
	if c.maxEntries <= 0 {
		return
	}

	count := 0
	c.l1.Range(func(_, _ any) bool {
		count++
		return true
	})
	if count < c.maxEntries {
		return
	}

	now := time.Now()
	c.l1.Range(func(key, val any) bool {
		if now.After(val.(*embeddingEntry).expiresAt) {
			c.l1.Delete(key)
			count--
		}
		return true
	})

	for count >= c.maxEntries {
		var oldestKey any
		oldestAt := now.Add(100 * 365 * 24 * time.Hour)
		c.l1.Range(func(key, val any) bool {
			if e := val.(*embeddingEntry); e.expiresAt.Before(oldestAt) {
				oldestKey, oldestAt = key, e.expiresAt
			}
			return true
		})
		if oldestKey == nil {
			return
		}
		c.l1.Delete(oldestKey)
		count--
	}
}

// String is used in startup logs.
func (c *CachedEmbedder) String() string {
	return fmt.Sprintf("embedding cache (model=%s, ttl=%s, l2=%t)", c.model, c.ttl, c.rdb != nil)
}
