package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"totem-quiz-bot/internal/domain"
)

const stateKeyPrefix = "quiz:state:"

// StateStore keeps quiz progress in Redis so it outlives a restart.
// Writes are plain GET/SET; the per-user lock lives in the engine, so only one
// bot process may serve a given user at a time.
// Each user is one JSON value under quiz:state:{userID}; the TTL is refreshed on
// every write, so abandoned quizzes simply expire.
type StateStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStateStore(client *redis.Client, ttl time.Duration) *StateStore {
	return &StateStore{client: client, ttl: ttl}
}

func (s *StateStore) Get(ctx context.Context, userID int64) (domain.UserQuizState, bool, error) {
	raw, err := s.client.Get(ctx, stateKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.UserQuizState{}, false, nil
	}
	if err != nil {
		return domain.UserQuizState{}, false, fmt.Errorf("get state %d: %w", userID, err)
	}
	var state domain.UserQuizState
	if err := json.Unmarshal(raw, &state); err != nil {
		return domain.UserQuizState{}, false, fmt.Errorf("decode state %d: %w", userID, err)
	}
	if state.Answers == nil {
		state.Answers = make(map[int]int)
	}
	return state, true, nil
}

func (s *StateStore) Put(ctx context.Context, state domain.UserQuizState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state %d: %w", state.UserID, err)
	}
	if err := s.client.Set(ctx, stateKey(state.UserID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("put state %d: %w", state.UserID, err)
	}
	return nil
}

// RemoveAll deletes every state key. It scans instead of using KEYS so a
// large keyspace does not block the server.
func (s *StateStore) RemoveAll(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, stateKeyPrefix+"*", 100).Iterator()
	var batch []string
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == 100 {
			if err := s.client.Del(ctx, batch...).Err(); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(batch) > 0 {
		return s.client.Del(ctx, batch...).Err()
	}
	return nil
}

func stateKey(userID int64) string {
	return stateKeyPrefix + strconv.FormatInt(userID, 10)
}
