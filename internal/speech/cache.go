package speech

import (
	"context"
	"sync"

	"github.com/jask/ipachat/internal/database/repository"
)

// Cache provides synthesized speech, rendering each voice/phoneme pair at most once while cached.
type Cache interface {
	Get(ctx context.Context, voice repository.Voice, p repository.Phoneme) ([]int16, error)
	SampleRate() int
	Len() int
	Purge()
}

type entry struct {
	done    chan struct{}
	samples []int16
	err     error
}

// MemoryCache is a bounded in-memory Cache with first-in first-out eviction.
// Concurrent callers asking for the same key share one synthesis.
type MemoryCache struct {
	synth Synthesizer
	limit int

	mu      sync.Mutex
	entries map[string]*entry
	order   []string
}

// NewMemoryCache wraps synth. A limit <= 0 disables caching; every Get synthesizes.
func NewMemoryCache(synth Synthesizer, limit int) *MemoryCache {
	return &MemoryCache{synth: synth, limit: limit, entries: map[string]*entry{}}
}

func cacheKey(voice repository.Voice, p repository.Phoneme) string {
	return voice.ID + "|" + p.Symbol
}

func (c *MemoryCache) SampleRate() int { return c.synth.SampleRate() }

func (c *MemoryCache) Get(ctx context.Context, voice repository.Voice, p repository.Phoneme) ([]int16, error) {
	if c.limit <= 0 {
		return c.synth.Synthesize(ctx, voice, p)
	}
	key := cacheKey(voice, p)

	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		e = &entry{done: make(chan struct{})}
		c.entries[key] = e
		c.order = append(c.order, key)
		c.evictLocked()
		// the synthesis outlives the caller that started it; others may be waiting on it
		go c.fill(context.WithoutCancel(ctx), key, e, voice, p)
	}
	c.mu.Unlock()

	select {
	case <-e.done:
		return e.samples, e.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *MemoryCache) fill(ctx context.Context, key string, e *entry, voice repository.Voice, p repository.Phoneme) {
	e.samples, e.err = c.synth.Synthesize(ctx, voice, p)
	if e.err != nil {
		c.forget(key, e)
	}
	close(e.done)
}

func (c *MemoryCache) evictLocked() {
	for len(c.order) > c.limit {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
}

// forget drops a failed entry so the next Get retries.
func (c *MemoryCache) forget(key string, e *entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries[key] != e {
		return
	}
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *MemoryCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string]*entry{}
	c.order = nil
}
