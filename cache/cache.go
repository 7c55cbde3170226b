package cache

import (
	"container/heap"
	"context"
	"sync"
	"time"

	"github.com/SamOutabrae/Sprocket-hypixel/constants"
)

// CacheItem is a single cached value with its expiry.
type CacheItem struct {
	Data      interface{}
	ExpiresAt time.Time
}

// IsExpired reports whether the item has passed its expiry.
func (item *CacheItem) IsExpired() bool {
	return time.Now().After(item.ExpiresAt)
}

// CacheStats summarizes current cache occupancy.
type CacheStats struct {
	PlayerCount int
	UUIDCount   int
}

// Cache type tags used in the expiration queue.
const (
	typePlayer = "player"
	typeUUID   = "uuid"
)

// ExpirationEntry is a node in the expiry priority queue.
type ExpirationEntry struct {
	Key       string
	CacheType string
	ExpiresAt time.Time
	Index     int
}

// ExpirationQueue is a min-heap ordered by expiry time.
type ExpirationQueue []*ExpirationEntry

func (pq ExpirationQueue) Len() int { return len(pq) }

func (pq ExpirationQueue) Less(i, j int) bool {
	return pq[i].ExpiresAt.Before(pq[j].ExpiresAt)
}

func (pq ExpirationQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

func (pq *ExpirationQueue) Push(x interface{}) {
	n := len(*pq)
	entry := x.(*ExpirationEntry)
	entry.Index = n
	*pq = append(*pq, entry)
}

func (pq *ExpirationQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	entry := old[n-1]
	old[n-1] = nil
	entry.Index = -1
	*pq = old[0 : n-1]
	return entry
}

// APICache caches Hypixel player responses (short TTL, stats go stale
// fast) and Mojang username->UUID lookups (long TTL, effectively static).
// Expired entries are swept in bounded batches by a cleanup worker.
type APICache struct {
	playerCache map[string]*CacheItem
	uuidCache   map[string]*CacheItem

	expirationQueue *ExpirationQueue
	keyToEntry      map[string]*ExpirationEntry

	mu sync.RWMutex

	playerTTL time.Duration
	uuidTTL   time.Duration

	lastCleanup        time.Time
	cleanupBatchSize   int
	maxCleanupDuration time.Duration
}

// NewAPICache returns an empty cache with the default TTLs.
func NewAPICache() *APICache {
	pq := &ExpirationQueue{}
	heap.Init(pq)

	return &APICache{
		playerCache: make(map[string]*CacheItem),
		uuidCache:   make(map[string]*CacheItem),

		expirationQueue: pq,
		keyToEntry:      make(map[string]*ExpirationEntry),

		playerTTL: constants.PlayerStatsCacheTTL,
		uuidTTL:   constants.UUIDCacheTTL,

		cleanupBatchSize:   constants.CacheCleanupBatchSize,
		maxCleanupDuration: constants.MaxCacheCleanupDuration,
		lastCleanup:        time.Now(),
	}
}

func (c *APICache) setWithExpiration(cacheType, key string, data interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := time.Now().Add(ttl)
	item := &CacheItem{
		Data:      data,
		ExpiresAt: expiresAt,
	}

	// An existing queue entry is invalidated in place; removing from the
	// middle of the heap is not worth it.
	if existing, exists := c.keyToEntry[key]; exists {
		existing.ExpiresAt = time.Time{}
	}

	switch cacheType {
	case typePlayer:
		c.playerCache[key] = item
	case typeUUID:
		c.uuidCache[key] = item
	}

	entry := &ExpirationEntry{
		Key:       key,
		CacheType: cacheType,
		ExpiresAt: expiresAt,
	}
	heap.Push(c.expirationQueue, entry)
	c.keyToEntry[key] = entry
}

// GetPlayer returns a cached player response for the UUID, if fresh.
func (c *APICache) GetPlayer(uuid string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, exists := c.playerCache[uuid]
	if !exists || item.IsExpired() {
		return nil, false
	}
	return item.Data, true
}

// SetPlayer caches a player response under its UUID.
func (c *APICache) SetPlayer(uuid string, data interface{}) {
	c.setWithExpiration(typePlayer, uuid, data, c.playerTTL)
}

// GetUUID returns a cached UUID for the username, if fresh.
func (c *APICache) GetUUID(username string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, exists := c.uuidCache[username]
	if !exists || item.IsExpired() {
		return "", false
	}
	uuid, ok := item.Data.(string)
	return uuid, ok
}

// SetUUID caches a username -> UUID resolution.
func (c *APICache) SetUUID(username, uuid string) {
	c.setWithExpiration(typeUUID, username, uuid, c.uuidTTL)
}

// ClearExpired removes expired entries in a single bounded batch and
// returns how many were cleaned.
func (c *APICache) ClearExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	startTime := time.Now()
	cleaned := 0

	for cleaned < c.cleanupBatchSize && time.Since(startTime) < c.maxCleanupDuration {
		if c.expirationQueue.Len() == 0 {
			break
		}

		entry := (*c.expirationQueue)[0]

		if entry.ExpiresAt.IsZero() || now.Before(entry.ExpiresAt) {
			if entry.ExpiresAt.IsZero() {
				// Invalidated entry: drop it and keep sweeping.
				heap.Pop(c.expirationQueue)
				delete(c.keyToEntry, entry.Key)
				cleaned++
				continue
			}
			break
		}

		heap.Pop(c.expirationQueue)
		delete(c.keyToEntry, entry.Key)

		switch entry.CacheType {
		case typePlayer:
			delete(c.playerCache, entry.Key)
		case typeUUID:
			delete(c.uuidCache, entry.Key)
		}

		cleaned++
	}

	c.lastCleanup = now
	return cleaned
}

// StartCleanupWorker sweeps expired entries on the given interval until
// the returned cancel func is called.
func (c *APICache) StartCleanupWorker(interval time.Duration) context.CancelFunc {
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				c.ClearExpired()
			case <-ctx.Done():
				return
			}
		}
	}()

	return cancel
}

// GetStats returns current occupancy counts.
func (c *APICache) GetStats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return CacheStats{
		PlayerCount: len(c.playerCache),
		UUIDCount:   len(c.uuidCache),
	}
}

// Clear drops everything.
func (c *APICache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.playerCache = make(map[string]*CacheItem)
	c.uuidCache = make(map[string]*CacheItem)
	pq := &ExpirationQueue{}
	heap.Init(pq)
	c.expirationQueue = pq
	c.keyToEntry = make(map[string]*ExpirationEntry)
}
