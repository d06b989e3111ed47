package refdata

import "sync"

// CoordCache maps "City, ST" labels to coordinates. It is seeded from the
// embedded city table and augmented in-memory when a city is geocoded for
// the first time; augmentation lives only for the run and is never written
// back to the reference store. Safe for concurrent use should a caller
// parallelize across cities.
type CoordCache struct {
	mu sync.RWMutex
	m  map[string]Coord
}

// NewCoordCache returns an empty cache.
func NewCoordCache() *CoordCache {
	return &CoordCache{m: make(map[string]Coord)}
}

// Get returns the cached coordinates for a label, if present.
func (c *CoordCache) Get(label string) (Coord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	coord, ok := c.m[label]
	return coord, ok
}

// Put stores coordinates for a label, overwriting any previous entry.
func (c *CoordCache) Put(label string, coord Coord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[label] = coord
}

// Len reports the number of cached entries.
func (c *CoordCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
