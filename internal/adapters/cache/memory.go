// Package cache provides an in-memory TTL cache used for read-through
// memoization of derived reference data.
package cache

import (
	"container/list"
	"sync"
	"sync/atomic"
	"time"
)

type entry[V any] struct {
	key     string
	value   V
	expires time.Time
	elem    *list.Element
}

// Memory is a concurrency-safe TTL cache. Set on an existing key overwrites
// it; last writer wins.
type Memory[V any] struct {
	mu      sync.Mutex
	entries map[string]*entry[V]
	order   *list.List // insertion order, oldest at the front
	maxSize int
	now     func() time.Time

	size   atomic.Int64
	hits   atomic.Int64
	misses atomic.Int64
}

// NewMemory creates an empty cache. Default max size is 10000 entries.
func NewMemory[V any](opts ...Option) *Memory[V] {
	s := settings{maxSize: 10_000, now: time.Now}
	for _, opt := range opts {
		opt(&s)
	}
	return &Memory[V]{
		entries: make(map[string]*entry[V]),
		order:   list.New(),
		maxSize: s.maxSize,
		now:     s.now,
	}
}

// Get returns the live value for key. Expired entries are removed.
func (m *Memory[V]) Get(key string) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		m.misses.Add(1)
		var zero V
		return zero, false
	}
	if !e.expires.After(m.now()) {
		m.remove(e)
		m.misses.Add(1)
		var zero V
		return zero, false
	}
	m.hits.Add(1)
	return e.value, true
}

// Set stores value under key for ttl. A non-positive ttl is ignored.
func (m *Memory[V]) Set(key string, value V, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	expires := m.now().Add(ttl)
	if e, ok := m.entries[key]; ok {
		e.value = value
		e.expires = expires
		m.order.MoveToBack(e.elem)
		return
	}
	if m.maxSize > 0 && len(m.entries) >= m.maxSize {
		m.evictOldest()
	}
	e := &entry[V]{key: key, value: value, expires: expires}
	e.elem = m.order.PushBack(e)
	m.entries[key] = e
	m.size.Add(1)
}

// Delete removes key.
func (m *Memory[V]) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.entries[key]; ok {
		m.remove(e)
	}
}

// Purge removes every expired entry and returns how many were dropped.
func (m *Memory[V]) Purge() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	n := 0
	for el := m.order.Front(); el != nil; {
		next := el.Next()
		if e := el.Value.(*entry[V]); !e.expires.After(now) {
			m.remove(e)
			n++
		}
		el = next
	}
	return n
}

// Size returns the number of stored entries, expired or not.
func (m *Memory[V]) Size() int64 {
	return m.size.Load()
}

// Stats returns hit and miss counts since creation.
func (m *Memory[V]) Stats() (hits, misses int64) {
	return m.hits.Load(), m.misses.Load()
}

// must hold m.mu
func (m *Memory[V]) evictOldest() {
	if el := m.order.Front(); el != nil {
		m.remove(el.Value.(*entry[V]))
	}
}

// must hold m.mu
func (m *Memory[V]) remove(e *entry[V]) {
	m.order.Remove(e.elem)
	delete(m.entries, e.key)
	m.size.Add(-1)
}
