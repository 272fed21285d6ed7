package memory

import (
	"context"
	"sync"

	"totem-quiz-bot/internal/domain"
)

// StateStore is an in-memory implementation of app.StateRepository.
// Values are cloned on the way in and out so callers never share answer maps.
type StateStore struct {
	mu     sync.RWMutex
	states map[int64]domain.UserQuizState
}

func NewStateStore() *StateStore {
	return &StateStore{
		states: make(map[int64]domain.UserQuizState),
	}
}

func (s *StateStore) Get(_ context.Context, userID int64) (domain.UserQuizState, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[userID]
	if !ok {
		return domain.UserQuizState{}, false, nil
	}
	return state.Clone(), true, nil
}

func (s *StateStore) Put(_ context.Context, state domain.UserQuizState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state.UserID] = state.Clone()
	return nil
}

func (s *StateStore) RemoveAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states = make(map[int64]domain.UserQuizState)
	return nil
}

// Len is the number of users with stored progress.
func (s *StateStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.states)
}
