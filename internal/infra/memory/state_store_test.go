package memory

import (
	"context"
	"testing"
	"time"

	"totem-quiz-bot/internal/domain"
)

func TestStateStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewStateStore()

	if _, ok, err := store.Get(ctx, 7); err != nil || ok {
		t.Fatalf("expected empty store, ok=%v err=%v", ok, err)
	}

	state := domain.NewUserQuizState(7, "Alice", time.Unix(100, 0))
	state.Answers[0] = 1
	if err := store.Put(ctx, state); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := store.Get(ctx, 7)
	if err != nil || !ok {
		t.Fatalf("expected state, ok=%v err=%v", ok, err)
	}
	if got.DisplayName != "Alice" || got.Answers[0] != 1 {
		t.Fatalf("unexpected state %+v", got)
	}

	if err := store.RemoveAll(ctx); err != nil {
		t.Fatalf("remove all: %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected store cleared, got %d", store.Len())
	}
}

func TestStateStoreDoesNotShareAnswers(t *testing.T) {
	ctx := context.Background()
	store := NewStateStore()

	state := domain.NewUserQuizState(1, "", time.Now())
	_ = store.Put(ctx, state)
	state.Answers[3] = 2

	got, _, _ := store.Get(ctx, 1)
	if len(got.Answers) != 0 {
		t.Fatalf("mutation after put leaked into store: %+v", got.Answers)
	}

	got.Answers[5] = 0
	again, _, _ := store.Get(ctx, 1)
	if len(again.Answers) != 0 {
		t.Fatalf("mutation after get leaked into store: %+v", again.Answers)
	}
}

func TestFeedbackStoreKeepsOrderPerUserViaAdd(t *testing.T) {
	ctx := context.Background()
	store := NewFeedbackStore()

	_ = store.Add(ctx, domain.Feedback{ID: "a", UserID: 1, Text: "first"})
	_ = store.Add(ctx, domain.Feedback{ID: "b", UserID: 2, Text: "other"})
	_ = store.Add(ctx, domain.Feedback{ID: "c", UserID: 1, Text: "second"})

	items, err := store.List(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 || items[0].ID != "a" || items[1].ID != "c" {
		t.Fatalf("unexpected feedback %+v", items)
	}
	if empty, _ := store.List(ctx, 99); len(empty) != 0 {
		t.Fatalf("expected no feedback for unknown user, got %+v", empty)
	}
}
