// Package cache provides an in-process TTL cache used to avoid redundant
// calls to external providers. Entries expire lazily on read; a periodic
// Sweep reclaims the rest. State is process-local and lost on restart.
package cache

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mohae/deepcopy"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Cache is a concurrency-safe key/value store with per-entry TTL. Values are
// deep-copied on write and on read so callers cannot mutate cached state
// through shared references.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the value stored under key, or false when the key is absent or
// expired. An expired entry is removed on read.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}

	return deepcopy.Copy(e.value), true
}

// Set stores value under key for the given TTL. A non-positive TTL removes
// the key.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ttl <= 0 {
		delete(c.entries, key)
		return
	}

	c.entries[key] = entry{
		value:     deepcopy.Copy(value),
		expiresAt: c.now().Add(ttl),
	}
}

// Del removes key from the cache.
func (c *Cache) Del(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

// Sweep removes every expired entry and returns how many were removed. It is
// meant to be driven by a periodic job; reads already expire lazily.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}

	return removed
}

// Len returns the number of entries currently stored, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// GenerateKey builds a deterministic cache key from a prefix and a parameter
// set. Parameters are sorted by name so call sites that build the map in
// different orders produce the same key.
func GenerateKey(prefix string, params map[string]string) string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(prefix)
	for _, name := range names {
		fmt.Fprintf(&b, ":%s=%s", name, params[name])
	}

	return b.String()
}
