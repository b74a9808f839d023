// Package store holds the in-memory reactive collections for one session:
// ideas, folders, and the settings record. All mutations are synchronous,
// perform no I/O, and are immediately visible to subscribers. I/O belongs to
// the orchestration layer, which updates a store only after the corresponding
// persistence call has resolved (write-after-confirm; no optimistic updates).
//
// Stores are constructed per session and passed by reference; there are no
// package-level singletons.
package store

import "sync"

// subscribers implements subscriber registration and notification shared by
// all three collections. Callbacks run synchronously on the mutating
// goroutine, outside the store lock.
type subscribers struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func()
}

// Subscribe registers fn to run after every mutation. The returned function
// unsubscribes it.
func (s *subscribers) Subscribe(fn func()) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subs == nil {
		s.subs = make(map[int]func())
	}
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *subscribers) notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
