package hub

import (
	"sync"
	"time"
)

// RateEntry is a point-in-time view of one identity's rate-limit window, as
// delivered to clients in `meta` events and submission acks.
type RateEntry struct {
	// Identity is the bucket key. The empty string is a valid bucket shared
	// by all connections that presented no identity cookie.
	Identity string `json:"identity"`

	// WindowStart marks the beginning of the current counting window.
	WindowStart time.Time `json:"windowStart"`

	// Count is the number of attempts consumed within the window.
	Count int `json:"count"`

	// Can reports whether another attempt would currently be allowed.
	Can bool `json:"can"`
}

// rateEntry is the mutable per-identity state behind the snapshots.
type rateEntry struct {
	windowStart time.Time
	count       int
}

// RateLimiter counts message submissions per identity within a fixed,
// recurring window. Quota and window length are reconfigurable at runtime
// without dropping existing entries: a reconfiguration only changes the
// test applied to subsequent checks.
//
// Entries are created lazily and never destroyed; they accumulate for the
// process lifetime. For a single-process deployment with a modest identity
// population this is an accepted memory-growth tradeoff.
type RateLimiter struct {
	mu       sync.Mutex
	interval time.Duration
	quota    int
	entries  map[string]*rateEntry

	// now is replaceable in tests.
	now func() time.Time
}

// NewRateLimiter constructs a limiter allowing quota attempts per interval.
func NewRateLimiter(interval time.Duration, quota int) *RateLimiter {
	return &RateLimiter{
		interval: interval,
		quota:    quota,
		entries:  make(map[string]*rateEntry),
		now:      time.Now,
	}
}

// GetOrCreate returns the identity's current entry snapshot, creating a
// fresh zero-count window if none exists. It does not consume quota.
func (l *RateLimiter) GetOrCreate(identity string) RateEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := l.getOrCreateLocked(identity)
	return l.snapshotLocked(identity, e)
}

// Get returns the identity's entry snapshot without creating one. The
// second return value reports whether an entry existed.
func (l *RateLimiter) Get(identity string) (RateEntry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[identity]
	if !ok {
		return RateEntry{}, false
	}

	l.rollLocked(e)
	return l.snapshotLocked(identity, e), true
}

// Update records one consumed attempt for the identity and returns the
// resulting snapshot. A missing entry is treated as a fresh window.
func (l *RateLimiter) Update(identity string) RateEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := l.getOrCreateLocked(identity)
	e.count++

	return l.snapshotLocked(identity, e)
}

// SetQuota reconfigures the per-window quota. Existing entries keep their
// count and window start; only the test applied to later checks changes.
func (l *RateLimiter) SetQuota(quota int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.quota = quota
}

// SetInterval reconfigures the window length, preserving entries.
func (l *RateLimiter) SetInterval(interval time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.interval = interval
}

// getOrCreateLocked fetches the identity's entry, creating one with a fresh
// window when absent, and rolls an expired window forward.
func (l *RateLimiter) getOrCreateLocked(identity string) *rateEntry {
	e, ok := l.entries[identity]
	if !ok {
		e = &rateEntry{windowStart: l.now()}
		l.entries[identity] = e
		return e
	}

	l.rollLocked(e)
	return e
}

// rollLocked eagerly resets an expired window. Every access path goes
// through this, so a check arriving after expiry always sees the fresh
// window rather than a stale rejection.
func (l *RateLimiter) rollLocked(e *rateEntry) {
	if l.now().Sub(e.windowStart) >= l.interval {
		e.windowStart = l.now()
		e.count = 0
	}
}

func (l *RateLimiter) snapshotLocked(identity string, e *rateEntry) RateEntry {
	return RateEntry{
		Identity:    identity,
		WindowStart: e.windowStart,
		Count:       e.count,
		Can:         e.count < l.quota,
	}
}
