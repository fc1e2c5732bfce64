package cache

import (
	"sync"
	"time"

	"fundexplorer/internal/fund"
)

// DefaultTTL is how long an all-funds snapshot is served without a refetch.
const DefaultTTL = 5 * time.Minute

// Snapshot is an all-funds listing and the time it was stored.
// Funds must be treated as read-only: it is shared with every reader.
type Snapshot struct {
	Funds     []fund.Summary
	FetchedAt time.Time
}

// Age returns how old the snapshot is at now.
func (s Snapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.FetchedAt)
}

// Stats describes the cache contents.
type Stats struct {
	HasSnapshot   bool
	SnapshotSize  int
	SnapshotAge   time.Duration
	SnapshotFresh bool
	Details       int
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Store is the mutex-guarded cache. The zero value is not usable; use New.
type Store struct {
	mu       sync.RWMutex
	snapshot *Snapshot
	details  map[string]fund.Detail

	ttl time.Duration
	now func() time.Time
}

// New creates an empty store. A non-positive ttl falls back to DefaultTTL.
func New(ttl time.Duration, opts ...Option) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	s := &Store{
		details: make(map[string]fund.Detail),
		ttl:     ttl,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TTL returns the validity window of the all-funds snapshot.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Funds returns the current snapshot regardless of its age.
func (s *Store) Funds() (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snapshot == nil {
		return Snapshot{}, false
	}
	return *s.snapshot, true
}

// FreshFunds returns the snapshot only while it is younger than the TTL.
func (s *Store) FreshFunds() (Snapshot, bool) {
	snap, ok := s.Funds()
	if !ok || snap.Age(s.now()) >= s.ttl {
		return Snapshot{}, false
	}
	return snap, true
}

// PutFunds replaces the snapshot and stamps it with the current time.
func (s *Store) PutFunds(funds []fund.Summary) Snapshot {
	snap := &Snapshot{Funds: funds, FetchedAt: s.now()}

	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()

	return *snap
}

// Detail returns the cached detail for a scheme code.
func (s *Store) Detail(code string) (fund.Detail, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.details[code]
	return d, ok
}

// PutDetail stores the detail for a scheme code, replacing any previous entry.
func (s *Store) PutDetail(code string, d fund.Detail) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.details[code] = d
}

// Stats reports the cache contents at the current time.
func (s *Store) Stats() Stats {
	now := s.now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{Details: len(s.details)}
	if s.snapshot != nil {
		st.HasSnapshot = true
		st.SnapshotSize = len(s.snapshot.Funds)
		st.SnapshotAge = s.snapshot.Age(now)
		st.SnapshotFresh = st.SnapshotAge < s.ttl
	}
	return st
}
