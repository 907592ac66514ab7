package eval

import (
	"sync"

	"github.com/lexkit/lexengine/fact"
)

// memoCache caches evaluation results keyed by predicate name and fact
// fingerprint. Entries hold a private trace copy; get clones on the way out
// so callers can never mutate cached state. A nil cache is valid and caches
// nothing.
type memoCache struct {
	mu      sync.RWMutex
	entries map[memoKey]memoEntry
}

type memoKey struct {
	predicate   string
	fingerprint uint64
}

type memoEntry struct {
	result bool
	trace  *Trace
}

func newMemoCache() *memoCache {
	return &memoCache{entries: make(map[memoKey]memoEntry)}
}

func (c *memoCache) get(predicate string, f *fact.Fact) (memoEntry, bool) {
	if c == nil {
		return memoEntry{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[memoKey{predicate: predicate, fingerprint: f.Fingerprint()}]
	return entry, ok
}

func (c *memoCache) put(predicate string, f *fact.Fact, result bool, trace *Trace) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[memoKey{predicate: predicate, fingerprint: f.Fingerprint()}] = memoEntry{
		result: result,
		trace:  trace.clone(),
	}
}

func (c *memoCache) len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
