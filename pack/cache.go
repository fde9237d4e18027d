package pack

import "sync"

// Cache memoises compiled formats by their source string. Formats are
// immutable, so one compiled value is shared by every caller. The zero value
// is ready to use.
type Cache struct {
	mu      sync.RWMutex
	formats map[string]*Format
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{formats: make(map[string]*Format)}
}

// Compile returns the cached Format for format, compiling it on first use.
// Failed compiles are not cached.
func (c *Cache) Compile(format string) (*Format, error) {
	c.mu.RLock()
	f, ok := c.formats[format]
	c.mu.RUnlock()
	if ok {
		return f, nil
	}

	f, err := Compile(format)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.formats == nil {
		c.formats = make(map[string]*Format)
	}
	if prev, ok := c.formats[format]; ok {
		return prev, nil
	}
	c.formats[format] = f
	return f, nil
}

// Len returns the number of cached formats.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.formats)
}
