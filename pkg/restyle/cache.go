package restyle

import (
	"container/list"
	"sync"
	"time"
)

// CacheConfig contains configuration options for the style cache
type CacheConfig struct {
	// MaxSize is the maximum number of resolved styles to cache. 0 disables caching.
	MaxSize int
	// TTL is the time-to-live for cached resolutions. 0 means no expiration.
	TTL time.Duration
}

// StyleCache caches resolved style definitions keyed by
// (source document, style name, family). Reads are concurrent-safe, so
// parallel batch workers can share one cache.
type StyleCache struct {
	mu     sync.RWMutex
	cache  map[string]*cacheEntry
	lru    *list.List
	config CacheConfig
}

type cacheEntry struct {
	key     string
	def     *StyleDefinition
	expiry  time.Time
	element *list.Element
}

// cacheKey builds the lookup key for one resolution triple. Paths do not
// contain NUL, so the separator cannot collide.
func cacheKey(source, name string, family StyleFamily) string {
	return source + "\x00" + name + "\x00" + string(family)
}

// NewStyleCache creates a new style cache with default configuration
func NewStyleCache() *StyleCache {
	config := GetGlobalConfig()
	return NewStyleCacheWithConfig(CacheConfig{
		MaxSize: config.CacheMaxSize,
		TTL:     config.CacheTTL,
	})
}

// NewStyleCacheWithConfig creates a new style cache with the given configuration
func NewStyleCacheWithConfig(config CacheConfig) *StyleCache {
	return &StyleCache{
		cache:  make(map[string]*cacheEntry),
		lru:    list.New(),
		config: config,
	}
}

// Get retrieves a cached definition
func (sc *StyleCache) Get(source, name string, family StyleFamily) (*StyleDefinition, bool) {
	key := cacheKey(source, name, family)

	sc.mu.RLock()
	entry, exists := sc.cache[key]
	sc.mu.RUnlock()

	if !exists {
		return nil, false
	}

	// Check expiry
	if sc.config.TTL > 0 && time.Now().After(entry.expiry) {
		sc.remove(key)
		return nil, false
	}

	// Move to front of LRU
	sc.mu.Lock()
	sc.lru.MoveToFront(entry.element)
	sc.mu.Unlock()

	return entry.def, true
}

// Set adds a resolved definition to the cache
func (sc *StyleCache) Set(source, name string, family StyleFamily, def *StyleDefinition) {
	// Check if caching is disabled
	if sc.config.MaxSize == 0 {
		return
	}

	key := cacheKey(source, name, family)

	sc.mu.Lock()
	defer sc.mu.Unlock()

	// Check if key already exists
	if existing, exists := sc.cache[key]; exists {
		existing.def = def
		if sc.config.TTL > 0 {
			existing.expiry = time.Now().Add(sc.config.TTL)
		}
		sc.lru.MoveToFront(existing.element)
		return
	}

	// Check if we need to evict
	if sc.lru.Len() >= sc.config.MaxSize {
		// Evict least recently used
		oldest := sc.lru.Back()
		if oldest != nil {
			oldEntry := oldest.Value.(*cacheEntry)
			delete(sc.cache, oldEntry.key)
			sc.lru.Remove(oldest)
		}
	}

	entry := &cacheEntry{
		key: key,
		def: def,
	}

	if sc.config.TTL > 0 {
		entry.expiry = time.Now().Add(sc.config.TTL)
	}

	entry.element = sc.lru.PushFront(entry)
	sc.cache[key] = entry
}

// remove removes a single entry by key
func (sc *StyleCache) remove(key string) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	entry, exists := sc.cache[key]
	if !exists {
		return
	}

	delete(sc.cache, key)
	sc.lru.Remove(entry.element)
}

// Clear removes all cached resolutions
func (sc *StyleCache) Clear() {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	sc.cache = make(map[string]*cacheEntry)
	sc.lru = list.New()
}

// Size returns the current number of cached resolutions
func (sc *StyleCache) Size() int {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return len(sc.cache)
}
