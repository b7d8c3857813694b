// Package store implements the reactive state container backing each
// primitive instance: one authoritative snapshot, replaced wholesale on
// every mutation, with synchronous subscriber notification.
package store

import "sync"

// Store holds the state snapshot for a single component instance. A Store
// is owned by exactly one instance, but component-owned timers fire on the
// system timer's goroutine, so snapshot access and subscriber bookkeeping
// are mutex-guarded. Subscribers are notified outside the lock.
//
// Subscribers always receive the committed snapshot as an argument. They
// must not reach back into the store during notification; everything a
// reaction needs is in the value it was handed.
type Store[S any] struct {
	mu     sync.Mutex
	name   string
	state  S
	subs   []*subscriber[S]
	nextID int
}

type subscriber[S any] struct {
	id     int
	fn     func(S)
	active bool
}

// New creates a Store for the named component type with its initial state.
func New[S any](name string, initial S) *Store[S] {
	return &Store[S]{name: name, state: initial}
}

// Name returns the component type this store was created for.
func (s *Store[S]) Name() string {
	return s.name
}

// Get returns the current snapshot. It is never stale relative to the last
// committed Set or Update.
func (s *Store[S]) Get() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Set commits next as the new snapshot and synchronously notifies every
// currently registered subscriber, in registration order. A panicking
// subscriber propagates to the caller.
func (s *Store[S]) Set(next S) {
	s.mu.Lock()
	pass := s.commitLocked(next)
	s.mu.Unlock()

	s.notify(pass, next)
}

// Update computes the new snapshot from the current one and commits it.
// The updater runs under the store lock so concurrent updates cannot
// interleave; it must be a pure function of its argument and must not call
// back into the store.
func (s *Store[S]) Update(fn func(S) S) {
	s.mu.Lock()
	next := fn(s.state)
	pass := s.commitLocked(next)
	s.mu.Unlock()

	s.notify(pass, next)
}

// Subscribe registers fn for future commits and returns an unsubscribe
// function. Registration never fires fn; only subsequent commits do.
// Unsubscribing is idempotent and takes effect immediately, even mid
// notification.
func (s *Store[S]) Subscribe(fn func(S)) func() {
	if fn == nil {
		return func() {}
	}

	s.mu.Lock()
	s.nextID++
	entry := &subscriber[S]{id: s.nextID, fn: fn, active: true}
	s.subs = append(s.subs, entry)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if !entry.active {
			return
		}
		entry.active = false
		for i, candidate := range s.subs {
			if candidate.id == entry.id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				break
			}
		}
	}
}

// commitLocked installs the snapshot and returns the subscribers registered
// at commit time. Subscribers added during the notification pass wait for
// the next commit; subscribers removed during the pass are skipped via
// their active flag.
func (s *Store[S]) commitLocked(next S) []*subscriber[S] {
	s.state = next
	pass := make([]*subscriber[S], len(s.subs))
	copy(pass, s.subs)
	return pass
}

func (s *Store[S]) notify(pass []*subscriber[S], next S) {
	for _, entry := range pass {
		s.mu.Lock()
		active := entry.active
		s.mu.Unlock()
		if active {
			entry.fn(next)
		}
	}
}
