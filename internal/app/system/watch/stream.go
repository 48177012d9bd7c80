// internal/app/system/watch/stream.go
package watch

import "sync"

// Stream is a push-based snapshot hub for one collection. Producers publish
// full point-in-time snapshots; subscribers receive the current snapshot
// immediately and every later one as it lands. Slow subscribers coalesce:
// when a subscriber's buffer is full the stale snapshot is dropped and
// replaced with the newest, so consumers only ever fall behind to "latest",
// never to an ordered backlog.
type Stream[T any] struct {
	mu        sync.Mutex
	subs      map[chan []T]struct{}
	latest    []T
	delivered bool
}

// NewStream returns an empty Stream. Latest reports ok=false until the first
// Publish, which is how callers distinguish "no matches" from "still loading".
func NewStream[T any]() *Stream[T] {
	return &Stream[T]{subs: make(map[chan []T]struct{})}
}

// Publish replaces the current snapshot and fans it out to all subscribers.
// The caller must not retain or mutate items after publishing.
func (s *Stream[T]) Publish(items []T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest = items
	s.delivered = true

	for ch := range s.subs {
		select {
		case ch <- items:
		default:
			// Buffer full: drop the queued snapshot and queue the newest.
			select {
			case <-ch:
			default:
			}
			ch <- items
		}
	}
}

// Subscribe registers a consumer. If a snapshot has already been delivered it
// is queued immediately. The returned cancel func stops delivery and closes
// the channel; it is safe to call more than once, and callers must call it on
// teardown or the subscriber entry leaks.
func (s *Stream[T]) Subscribe() (<-chan []T, func()) {
	ch := make(chan []T, 1)

	s.mu.Lock()
	s.subs[ch] = struct{}{}
	if s.delivered {
		ch <- s.latest
	}
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, ch)
			s.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Latest returns the current snapshot and whether any snapshot has been
// delivered yet.
func (s *Stream[T]) Latest() ([]T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest, s.delivered
}
