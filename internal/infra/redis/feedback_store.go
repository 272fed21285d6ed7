package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"totem-quiz-bot/internal/domain"
)

// FeedbackStore appends feedback to a per-user list: RPUSH quiz:feedback:{userID}.
type FeedbackStore struct {
	client *redis.Client
}

func NewFeedbackStore(client *redis.Client) *FeedbackStore {
	return &FeedbackStore{client: client}
}

func (s *FeedbackStore) Add(ctx context.Context, fb domain.Feedback) error {
	raw, err := json.Marshal(fb)
	if err != nil {
		return err
	}
	if err := s.client.RPush(ctx, feedbackKey(fb.UserID), raw).Err(); err != nil {
		return fmt.Errorf("add feedback: %w", err)
	}
	return nil
}

func (s *FeedbackStore) List(ctx context.Context, userID int64) ([]domain.Feedback, error) {
	values, err := s.client.LRange(ctx, feedbackKey(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	out := make([]domain.Feedback, 0, len(values))
	for _, v := range values {
		var fb domain.Feedback
		if err := json.Unmarshal([]byte(v), &fb); err != nil {
			return nil, fmt.Errorf("decode feedback: %w", err)
		}
		out = append(out, fb)
	}
	return out, nil
}

func feedbackKey(userID int64) string {
	return "quiz:feedback:" + strconv.FormatInt(userID, 10)
}
