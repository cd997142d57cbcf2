// Package cache provides the session-local, staleness-aware collections
// that hold the last known server view of each entity kind. A store is
// constructed once per session and passed by reference to consumers;
// there is no ambient global cache.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultStaleness is how long a fetched collection is served without a
// refetch on read.
const DefaultStaleness = 10 * time.Minute

// FetchFunc loads the full collection for one entity kind from the
// remote service.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// Store holds the decoded server view of one entity kind, keyed by
// entity identity, plus the freshness timestamp of the last fetch.
type Store[T any] struct {
	fetchedAt time.Time
	fetch     FetchFunc[T]
	key       func(T) string
	kind      string
	items     []T
	staleness time.Duration
	group     singleflight.Group
	mu        sync.RWMutex
}

// NewStore creates a store for one entity kind. key extracts an entity's
// identifier; staleness <= 0 selects DefaultStaleness.
func NewStore[T any](kind string, staleness time.Duration, fetch FetchFunc[T], key func(T) string) *Store[T] {
	if staleness <= 0 {
		staleness = DefaultStaleness
	}

	return &Store[T]{
		kind:      kind,
		staleness: staleness,
		fetch:     fetch,
		key:       key,
	}
}

// Get returns the cached collection when it is younger than the
// staleness window. Otherwise it fetches the collection from the remote
// service, replaces the cached copy wholesale, and returns the fresh
// data. Concurrent stale reads share a single in-flight fetch. A failed
// fetch leaves the previous data untouched (and still stale) and is
// surfaced to every waiting caller.
func (s *Store[T]) Get(ctx context.Context) ([]T, error) {
	s.mu.RLock()
	if s.freshLocked() {
		items := snapshot(s.items)
		s.mu.RUnlock()
		return items, nil
	}
	s.mu.RUnlock()

	v, err, shared := s.group.Do("fetch", func() (any, error) {
		items, err := s.fetch(ctx)
		if err != nil {
			return nil, err
		}

		// Copy before publishing: once s.items is set, Remove may
		// compact its backing array in place under the lock.
		out := snapshot(items)

		s.mu.Lock()
		s.items = items
		s.fetchedAt = time.Now()
		s.mu.Unlock()

		return out, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", s.kind, err)
	}

	slog.Debug("Refreshed entity cache",
		"kind", s.kind,
		"count", len(v.([]T)),
		"shared", shared)

	return snapshot(v.([]T)), nil
}

// Lookup returns the cached entity with the given identifier, if any.
// It never triggers a fetch.
func (s *Store[T]) Lookup(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if s.key(item) == id {
			return item, true
		}
	}

	var zero T
	return zero, false
}

// Invalidate marks the collection stale so the next read refetches. The
// held data is kept for Lookup until then.
func (s *Store[T]) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchedAt = time.Time{}
}

// Remove patches the cached collection in place by dropping the entity
// with the given identifier. The freshness timestamp is untouched: a
// removal introduces no new state the server would need to confirm.
func (s *Store[T]) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.items[:0]
	for _, item := range s.items {
		if s.key(item) != id {
			kept = append(kept, item)
		}
	}
	s.items = kept
}

// Fresh reports whether the collection is within its staleness window.
func (s *Store[T]) Fresh() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.freshLocked()
}

// Len returns the number of cached entities.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store[T]) freshLocked() bool {
	return !s.fetchedAt.IsZero() && time.Since(s.fetchedAt) < s.staleness
}

// snapshot copies the collection so callers cannot mutate cached state.
func snapshot[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
