package posts

import (
	"sync/atomic"
	"time"
)

// Clock time source for post creation stamps
type Clock interface {
	// Now current time
	Now() time.Time
}

// SystemClock Clock backed by the system wall clock
type SystemClock struct{}

// Now current time
func (SystemClock) Now() time.Time {
	return time.Now()
}

// monotonicStamper issues creation stamps which never move backwards, even when the
// underlying clock does
type monotonicStamper struct {
	clock Clock
	last  atomic.Int64
}

// next the next creation stamp, in seconds since epoch
func (m *monotonicStamper) next() int64 {
	now := m.clock.Now().Unix()
	for {
		prev := m.last.Load()
		stamp := now
		if stamp < prev {
			stamp = prev
		}
		if m.last.CompareAndSwap(prev, stamp) {
			return stamp
		}
	}
}
