package feed

import "sync"

// Store holds the current State and serialises actions
type Store struct {
	mu    sync.Mutex
	state State
}

func NewStore(initial State) *Store {
	return &Store{state: initial}
}

// State returns a snapshot of the current state
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Dispatch applies action and returns the states around it
func (s *Store) Dispatch(action Action) (before, after State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before = s.state
	s.state = Reduce(s.state, action)

	return before, s.state
}
