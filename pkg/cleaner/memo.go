package cleaner

import (
	"sync"

	"github.com/golang/groupcache/lru"
)

// DefaultMemoSize is the number of entries kept by NewMemo when size <= 0.
const DefaultMemoSize = 4096

// Memo caches the output of a wrapped Cleaner in a bounded LRU.
//
// Only wrap cleaners whose output depends on nothing but their input.
// Results that came with an error are not cached. Memo is safe for
// concurrent use.
type Memo struct {
	inner Cleaner

	mu     sync.Mutex
	cache  *lru.Cache
	hits   uint64
	misses uint64
}

// NewMemo wraps inner with an LRU cache holding at most size entries.
func NewMemo(inner Cleaner, size int) *Memo {
	if size <= 0 {
		size = DefaultMemoSize
	}
	return &Memo{
		inner: inner,
		cache: lru.New(size),
	}
}

// Clean returns the cached result for text, computing it on a miss.
func (m *Memo) Clean(text string) (string, error) {
	m.mu.Lock()
	if v, ok := m.cache.Get(text); ok {
		m.hits++
		m.mu.Unlock()
		return v.(string), nil
	}
	m.misses++
	m.mu.Unlock()

	out, err := m.inner.Clean(text)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	m.cache.Add(text, out)
	m.mu.Unlock()
	return out, nil
}

// Name returns the wrapped cleaner's name.
func (m *Memo) Name() string {
	return "memo(" + m.inner.Name() + ")"
}

// HitRate returns the fraction of Clean calls served from the cache.
func (m *Memo) HitRate() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := m.hits + m.misses
	if total == 0 {
		return 0
	}
	return float64(m.hits) / float64(total)
}

// Len returns the number of cached entries.
func (m *Memo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cache.Len()
}
