package app

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"totem-quiz-bot/internal/domain"
)

// FeedbackService accepts free-text messages from users.
type FeedbackService struct {
	repo FeedbackRepository
	now  func() time.Time
}

func NewFeedbackService(repo FeedbackRepository) *FeedbackService {
	return &FeedbackService{repo: repo, now: time.Now}
}

// Submit stores trimmed, non-empty feedback under a fresh id.
func (s *FeedbackService) Submit(ctx context.Context, userID int64, text string) (domain.Feedback, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Feedback{}, domain.ErrEmptyFeedback
	}
	fb := domain.Feedback{
		ID:        uuid.NewString(),
		UserID:    userID,
		Text:      text,
		CreatedAt: s.now(),
	}
	if err := s.repo.Add(ctx, fb); err != nil {
		return domain.Feedback{}, err
	}
	return fb, nil
}

func (s *FeedbackService) List(ctx context.Context, userID int64) ([]domain.Feedback, error) {
	return s.repo.List(ctx, userID)
}
