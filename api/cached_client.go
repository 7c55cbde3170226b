package api

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/SamOutabrae/Sprocket-hypixel/cache"
	"github.com/SamOutabrae/Sprocket-hypixel/constants"
	"github.com/SamOutabrae/Sprocket-hypixel/utils"
)

// CachedClient fronts the Hypixel and Mojang clients with a TTL cache.
// Raw snapshot fetches bypass the cache on purpose: the daily updater
// must see exactly what the API returned today.
type CachedClient struct {
	hypixel       *HypixelClient
	mojang        *MojangClient
	cache         *cache.APICache
	cleanupCancel context.CancelFunc

	cacheHits   int64
	cacheMisses int64
	totalCalls  int64
}

// NewCachedClient wires up the cached client and starts its cleanup
// worker.
func NewCachedClient(key string) *CachedClient {
	utils.Info("Creating cached Hypixel API client")

	apiCache := cache.NewAPICache()

	client := &CachedClient{
		hypixel: NewHypixelClient(key),
		mojang:  NewMojangClient(),
		cache:   apiCache,
	}

	client.cleanupCancel = apiCache.StartCleanupWorker(constants.CacheCleanupInterval)
	return client
}

// Close stops the cache cleanup worker.
func (c *CachedClient) Close() {
	if c.cleanupCancel != nil {
		c.cleanupCancel()
		utils.Info("Cache cleanup worker stopped")
	}
}

// GetPlayer returns parsed player stats, from cache when fresh.
func (c *CachedClient) GetPlayer(ctx context.Context, uuid string) (*PlayerResponse, error) {
	atomic.AddInt64(&c.totalCalls, 1)

	if cached, found := c.cache.GetPlayer(uuid); found {
		atomic.AddInt64(&c.cacheHits, 1)
		utils.Debug("Cache hit for player stats: %s", uuid)
		return cached.(*PlayerResponse), nil
	}

	atomic.AddInt64(&c.cacheMisses, 1)
	utils.Debug("Cache miss for player stats: %s, calling API", uuid)

	resp, err := c.hypixel.GetPlayer(ctx, uuid)
	if err != nil {
		return nil, err
	}

	c.cache.SetPlayer(uuid, resp)
	return resp, nil
}

// FetchPlayerRaw always goes to the API. See the type comment.
func (c *CachedClient) FetchPlayerRaw(ctx context.Context, uuid string) ([]byte, error) {
	return c.hypixel.FetchPlayerRaw(ctx, uuid)
}

// ResolveUUID resolves a username to its storage UUID, from cache when
// possible.
func (c *CachedClient) ResolveUUID(ctx context.Context, username string) (string, error) {
	atomic.AddInt64(&c.totalCalls, 1)

	if uuid, found := c.cache.GetUUID(username); found {
		atomic.AddInt64(&c.cacheHits, 1)
		utils.Debug("Cache hit for UUID: %s", username)
		return uuid, nil
	}

	atomic.AddInt64(&c.cacheMisses, 1)

	uuid, err := c.mojang.ResolveUUID(ctx, username)
	if err != nil {
		return "", err
	}

	c.cache.SetUUID(username, uuid)
	return uuid, nil
}

// ValidateKey probes the Hypixel API key.
func (c *CachedClient) ValidateKey(ctx context.Context) error {
	return c.hypixel.ValidateKey(ctx)
}

// CacheMetrics reports cache performance counters.
type CacheMetrics struct {
	TotalCalls  int64
	CacheHits   int64
	CacheMisses int64
	HitRate     float64
	PlayerCount int
	UUIDCount   int
}

// String renders the metrics for logs and the !cache command.
func (m CacheMetrics) String() string {
	return fmt.Sprintf("API Cache Stats: Calls=%d, Hits=%d, Misses=%d, Hit Rate=%.2f%%, Cached: Players=%d, UUIDs=%d",
		m.TotalCalls, m.CacheHits, m.CacheMisses, m.HitRate, m.PlayerCount, m.UUIDCount)
}

// GetCacheStats returns a snapshot of the cache counters.
func (c *CachedClient) GetCacheStats() CacheMetrics {
	stats := c.cache.GetStats()

	totalCalls := atomic.LoadInt64(&c.totalCalls)
	hits := atomic.LoadInt64(&c.cacheHits)
	misses := atomic.LoadInt64(&c.cacheMisses)

	var hitRate float64
	if totalCalls > 0 {
		hitRate = float64(hits) / float64(totalCalls) * 100
	}

	return CacheMetrics{
		TotalCalls:  totalCalls,
		CacheHits:   hits,
		CacheMisses: misses,
		HitRate:     hitRate,
		PlayerCount: stats.PlayerCount,
		UUIDCount:   stats.UUIDCount,
	}
}

// ClearCache drops all cached values and resets the counters.
func (c *CachedClient) ClearCache() {
	c.cache.Clear()
	atomic.StoreInt64(&c.cacheHits, 0)
	atomic.StoreInt64(&c.cacheMisses, 0)
	atomic.StoreInt64(&c.totalCalls, 0)
	utils.Info("API cache cleared")
}

// WarmupCache preloads stats for tracked players in the background.
func (c *CachedClient) WarmupCache(uuids []string) {
	utils.Info("Starting cache warmup for %d players", len(uuids))

	for _, uuid := range uuids {
		if _, found := c.cache.GetPlayer(uuid); found {
			continue
		}

		go func(id string) {
			ctx := context.Background()
			if _, err := c.GetPlayer(ctx, id); err != nil {
				utils.Warn("Cache warmup failed for player %s: %v", id, err)
			}
		}(uuid)
	}

	utils.Info("Cache warmup initiated")
}
