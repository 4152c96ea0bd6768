package observe

import "sync"

// A Subject is a multicast [Observable] that is fed by calling its
// [Observer] methods.
//
// Calling OnNext delivers the value to every current subscriber.
// OnError and OnCompleted are terminal: they are delivered once, further
// calls are ignored, and subscribers arriving after the terminal state
// receive the terminal notification immediately on subscription.
//
// Subscription and delivery are safe for concurrent use, but to preserve
// per-subscriber ordering the feeding side must not call OnNext
// concurrently with itself.
type Subject[T any] struct {
	mu        sync.Mutex
	listeners map[int]Observer[T]
	nextID    int
	done      bool
	err       error
}

// Subscribe implements the [Observable] interface.
func (s *Subject[T]) Subscribe(o Observer[T]) (stop func()) {
	s.mu.Lock()

	if s.done {
		err := s.err
		s.mu.Unlock()
		if err != nil {
			o.OnError(err)
		} else {
			o.OnCompleted()
		}
		return func() {}
	}

	if s.listeners == nil {
		s.listeners = make(map[int]Observer[T])
	}
	id := s.nextID
	s.nextID++
	s.listeners[id] = o
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// OnNext delivers v to every current subscriber.
// After a terminal notification, OnNext is a no-op.
func (s *Subject[T]) OnNext(v T) {
	s.mu.Lock()
	obs := s.collect()
	s.mu.Unlock()

	for _, o := range obs {
		o.OnNext(v)
	}
}

// OnError terminates s, delivering err to every current subscriber.
func (s *Subject[T]) OnError(err error) {
	if err == nil {
		panic("observe: Subject.OnError called with nil error")
	}
	for _, o := range s.terminate(err) {
		o.OnError(err)
	}
}

// OnCompleted terminates s, notifying every current subscriber that no
// further values will be produced.
func (s *Subject[T]) OnCompleted() {
	for _, o := range s.terminate(nil) {
		o.OnCompleted()
	}
}

// collect snapshots the current subscribers so delivery can run outside
// the lock. Returns nil once s is terminal.
func (s *Subject[T]) collect() []Observer[T] {
	if s.done {
		return nil
	}
	obs := make([]Observer[T], 0, len(s.listeners))
	for _, o := range s.listeners {
		obs = append(obs, o)
	}
	return obs
}

// terminate moves s into its terminal state and returns the subscribers to
// notify; every call but the first returns nil.
func (s *Subject[T]) terminate(err error) []Observer[T] {
	s.mu.Lock()
	defer s.mu.Unlock()

	obs := s.collect()
	if !s.done {
		s.done = true
		s.err = err
		s.listeners = nil
	}
	return obs
}
