package structure

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// Cache holds recent element analyses keyed by paragraph text and type.
// When full, an insert first purges expired entries and then evicts the
// oldest insertion. Entries are never authoritative; a miss just means
// recomputing.
type Cache struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	now     func() time.Time
	seq     uint64
	entries map[string]cacheEntry
}

type cacheEntry struct {
	analysis ElementAnalysis
	stored   time.Time
	seq      uint64
}

// NewCache creates a cache. A nil clock uses time.Now.
func NewCache(maxSize int, ttl time.Duration, now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	if maxSize < 1 {
		maxSize = 1
	}
	return &Cache{
		maxSize: maxSize,
		ttl:     ttl,
		now:     now,
		entries: make(map[string]cacheEntry, maxSize),
	}
}

func cacheKey(text string, t ParagraphType) string {
	sum := sha256.Sum256([]byte(text))
	return string(t) + ":" + hex.EncodeToString(sum[:])
}

// Get returns a copy of the cached analysis if present and fresh.
func (c *Cache) Get(text string, t ParagraphType) (ElementAnalysis, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(text, t)
	e, ok := c.entries[key]
	if !ok {
		return ElementAnalysis{}, false
	}
	if c.expired(e) {
		delete(c.entries, key)
		return ElementAnalysis{}, false
	}
	return e.analysis.clone(), true
}

// Put stores a copy of a.
func (c *Cache) Put(text string, t ParagraphType, a ElementAnalysis) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(text, t)
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxSize {
		c.purgeExpired()
		if len(c.entries) >= c.maxSize {
			c.evictOldest()
		}
	}

	c.seq++
	c.entries[key] = cacheEntry{analysis: a.clone(), stored: c.now(), seq: c.seq}
}

// Len returns the number of stored entries, fresh or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) expired(e cacheEntry) bool {
	return c.ttl > 0 && c.now().Sub(e.stored) >= c.ttl
}

func (c *Cache) purgeExpired() {
	for k, e := range c.entries {
		if c.expired(e) {
			delete(c.entries, k)
		}
	}
}

func (c *Cache) evictOldest() {
	var oldestKey string
	var oldestSeq uint64
	first := true
	for k, e := range c.entries {
		if first || e.seq < oldestSeq {
			oldestKey, oldestSeq, first = k, e.seq, false
		}
	}
	if !first {
		delete(c.entries, oldestKey)
	}
}
