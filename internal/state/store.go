package state

import (
	"context"
	"sync"
)

// Dispatcher is the write side of the store.
type Dispatcher interface {
	Dispatch(action Action)
}

// Store holds the header state of the application. All writes go through
// Dispatch; readers use State, Select or Subscribe.
type Store struct {
	mu     sync.RWMutex
	state  HeaderState
	nextID int
	subs   map[int]chan HeaderState
}

func NewStore() *Store {
	return &Store{
		state: InitialHeaderState(),
		subs:  make(map[int]chan HeaderState),
	}
}

func (s *Store) Dispatch(action Action) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = headerReducer(s.state, action)
	for _, ch := range s.subs {
		offer(ch, s.state)
	}
}

func (s *Store) State() HeaderState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Select applies a pure projection to the current state.
func Select[T any](s *Store, selector func(HeaderState) T) T {
	return selector(s.State())
}

// Subscribe delivers the current state followed by every change until ctx
// ends. A slow reader only observes the latest value.
func (s *Store) Subscribe(ctx context.Context) <-chan HeaderState {
	ch := make(chan HeaderState, 1)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	ch <- s.state
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, id)
		close(ch)
		s.mu.Unlock()
	}()

	return ch
}

// offer replaces any undelivered value with v. Callers hold s.mu.
func offer(ch chan HeaderState, v HeaderState) {
	select {
	case <-ch:
	default:
	}
	ch <- v
}
