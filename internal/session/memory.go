package session

import (
	"context"
	"sync"
	"time"

	"github.com/Ankit6149/credit-card-recommendation-system/internal/domain"
)

type memoryEntry struct {
	profile   domain.UserProfile
	expiresAt time.Time
}

// MemoryStore is a process-local Store. A janitor goroutine evicts expired
// entries until Close is called.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	nowFn   func() time.Time

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewMemoryStore starts a store whose janitor runs every sweep interval. A
// non-positive sweep disables the janitor; expired entries are still hidden
// on read.
func NewMemoryStore(ttl, sweep time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		nowFn:   time.Now,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	if sweep > 0 {
		go s.janitor(sweep)
	} else {
		close(s.done)
	}
	return s
}

// WithClock overrides the clock, for tests.
func (s *MemoryStore) WithClock(fn func() time.Time) *MemoryStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nowFn = fn
	return s
}

func (s *MemoryStore) Load(_ context.Context, id string) (domain.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok || !s.nowFn().Before(entry.expiresAt) {
		return domain.UserProfile{}, ErrNotFound
	}
	return entry.profile, nil
}

func (s *MemoryStore) Save(_ context.Context, id string, profile domain.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[id] = memoryEntry{
		profile: domain.UserProfile{
			Income:        profile.Income,
			Spending:      profile.Spending.Clone(),
			Benefits:      profile.Benefits.Clone(),
			FeePreference: profile.FeePreference,
		},
		expiresAt: s.nowFn().Add(s.ttl),
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return ErrNotFound
	}
	delete(s.entries, id)
	return nil
}

// Len returns the number of stored entries, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Close stops the janitor and waits for it to exit.
func (s *MemoryStore) Close() error {
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.done
	return nil
}

func (s *MemoryStore) janitor(every time.Duration) {
	defer close(s.done)
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.evictExpired()
		}
	}
}

func (s *MemoryStore) evictExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowFn()
	for id, entry := range s.entries {
		if !now.Before(entry.expiresAt) {
			delete(s.entries, id)
		}
	}
}
