package generation

import (
	"container/list"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"sync"
)

// ResponseCache is an LRU cache of generated text keyed by request digest.
type ResponseCache struct {
	capacity int
	cache    map[string]*list.Element
	lru      *list.List
	mu       sync.Mutex
}

type cacheEntry struct {
	key   string
	value string
}

// NewResponseCache creates a new cache with the given capacity.
func NewResponseCache(capacity int) *ResponseCache {
	return &ResponseCache{
		capacity: capacity,
		cache:    make(map[string]*list.Element),
		lru:      list.New(),
	}
}

// Get returns the cached text for key if present and marks it recently used.
func (c *ResponseCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.cache[key]; ok {
		c.lru.MoveToFront(elem)
		return elem.Value.(*cacheEntry).value, true
	}
	return "", false
}

// Set stores text for key, evicting the oldest entry if at capacity.
func (c *ResponseCache) Set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.cache[key]; ok {
		c.lru.MoveToFront(elem)
		elem.Value.(*cacheEntry).value = value
		return
	}

	elem := c.lru.PushFront(&cacheEntry{key: key, value: value})
	c.cache[key] = elem

	if c.lru.Len() > c.capacity {
		if oldest := c.lru.Back(); oldest != nil {
			c.lru.Remove(oldest)
			delete(c.cache, oldest.Value.(*cacheEntry).key)
		}
	}
}

// Len returns the number of cached entries.
func (c *ResponseCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// RequestDigest returns a stable key for a provider, options and prompt.
// Same inputs always yield the same key.
func RequestDigest(provider, prompt string, opts Options) string {
	h := sha256.New()
	h.Write([]byte(provider))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(opts.MaxTokens)))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatFloat(opts.Temperature, 'g', -1, 64)))
	h.Write([]byte{0})
	h.Write([]byte(prompt))
	return hex.EncodeToString(h.Sum(nil))
}

type cached struct {
	inner Generator
	cache *ResponseCache
}

// WithCache serves repeated requests from an LRU of the given size. Failures
// and blank text are never cached. A size below 1 returns g unchanged.
func WithCache(g Generator, size int) Generator {
	if size < 1 {
		return g
	}
	return &cached{inner: g, cache: NewResponseCache(size)}
}

func (c *cached) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	key := RequestDigest(c.inner.Name(), prompt, opts)
	if text, ok := c.cache.Get(key); ok {
		return text, nil
	}
	text, err := c.inner.Generate(ctx, prompt, opts)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) != "" {
		c.cache.Set(key, text)
	}
	return text, nil
}

func (c *cached) Name() string { return c.inner.Name() }
