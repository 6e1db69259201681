package rtr

import "sync"

// indexEntry is a combined index together with the routes it was built from.
type indexEntry[T any] struct {
	version uint64
	routes  []Route[T]
	index   *CombinedIndex
}

// indexCache holds the most recent combined index of a router.
// Readers share the entry; a rebuild replaces it wholesale.
type indexCache[T any] struct {
	mu    sync.RWMutex
	entry *indexEntry[T]
}

// get returns the cached entry if it was built for version.
func (c *indexCache[T]) get(version uint64) (*indexEntry[T], bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.entry == nil || c.entry.version != version {
		return nil, false
	}
	return c.entry, true
}

// reuse returns the cached index if it was built from the same pattern list,
// whatever version it was stored under. The digest is checked first.
func (c *indexCache[T]) reuse(patterns []string) (*CombinedIndex, bool) {
	digest := Digest(patterns)

	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.entry == nil || c.entry.index.Digest != digest || !c.entry.index.SamePatterns(patterns) {
		return nil, false
	}
	return c.entry.index, true
}

// put stores entry unless a newer version is already cached.
func (c *indexCache[T]) put(entry *indexEntry[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.entry != nil && c.entry.version > entry.version {
		return
	}
	c.entry = entry
}
