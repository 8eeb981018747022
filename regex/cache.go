package regex

import (
	"sync"
	"time"
)

type cacheEntry struct {
	output       string
	err          error
	createdAt    time.Time
	lastAccessed time.Time
}

// Cache remembers rendered expressions so that re-rendering a pattern file
// only draws the lines that changed. It is safe for concurrent use.
type Cache struct {
	renderer Renderer
	entries  map[string]cacheEntry
	mutex    sync.Mutex
	maxAge   time.Duration
	now      func() time.Time
}

var _ Renderer = (*Cache)(nil)

// NewCache wraps renderer. Entries never expire until SetMaxAge is called.
func NewCache(renderer Renderer) *Cache {
	return &Cache{
		renderer: renderer,
		entries:  make(map[string]cacheEntry),
		now:      time.Now,
	}
}

func (c *Cache) Render(expr string) (string, error) {
	if res, ok := c.Get(expr); ok {
		return res.Output, res.Err
	}
	output, err := c.renderer.Render(expr)
	c.set(expr, output, err)
	return output, err
}

// Get returns the cached result for expr, if any.
func (c *Cache) Get(expr string) (Result, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, exists := c.entries[expr]
	if !exists {
		return Result{}, false
	}

	now := c.now()
	if c.maxAge > 0 && now.Sub(entry.createdAt) > c.maxAge {
		delete(c.entries, expr)
		return Result{}, false
	}

	entry.lastAccessed = now
	c.entries[expr] = entry
	return Result{Expr: expr, Output: entry.output, Err: entry.err}, true
}

func (c *Cache) set(expr, output string, err error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := c.now()
	c.entries[expr] = cacheEntry{
		output:       output,
		err:          err,
		createdAt:    now,
		lastAccessed: now,
	}
}

func (c *Cache) SetMaxAge(duration time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.maxAge = duration
}

// Prune drops entries that were not accessed since before.
func (c *Cache) Prune(before time.Time) int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	removed := 0
	for expr, entry := range c.entries {
		if entry.lastAccessed.Before(before) {
			delete(c.entries, expr)
			removed++
		}
	}
	return removed
}

func (c *Cache) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return len(c.entries)
}

func (c *Cache) InvalidateAll() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[string]cacheEntry)
}
