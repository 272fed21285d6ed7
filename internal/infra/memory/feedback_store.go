package memory

import (
	"context"
	"sync"

	"totem-quiz-bot/internal/domain"
)

// FeedbackStore keeps feedback per user in arrival order.
type FeedbackStore struct {
	mu    sync.RWMutex
	items map[int64][]domain.Feedback
}

func NewFeedbackStore() *FeedbackStore {
	return &FeedbackStore{items: make(map[int64][]domain.Feedback)}
}

func (s *FeedbackStore) Add(_ context.Context, fb domain.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[fb.UserID] = append(s.items[fb.UserID], fb)
	return nil
}

func (s *FeedbackStore) List(_ context.Context, userID int64) ([]domain.Feedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Feedback, len(s.items[userID]))
	copy(out, s.items[userID])
	return out, nil
}
