package cache

import "time"

type settings struct {
	maxSize int
	now     func() time.Time
}

// Option configures a Memory cache.
type Option func(*settings)

// WithMaxSize bounds the number of entries. When full, the oldest insertion
// is evicted. maxSize <= 0 means unbounded.
func WithMaxSize(maxSize int) Option {
	return func(s *settings) {
		s.maxSize = maxSize
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}
