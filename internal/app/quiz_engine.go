package app

import (
	"context"
	"time"

	"totem-quiz-bot/internal/domain"
)

// QuizEngine owns the quiz lifecycle of every user: reset, answer, score.
// Operations on one user id are serialized; different users never block each other.
type QuizEngine struct {
	states  StateRepository
	catalog *domain.Catalog
	now     func() time.Time
	locks   *userLocks
}

func NewQuizEngine(states StateRepository, catalog *domain.Catalog) *QuizEngine {
	return NewQuizEngineWithClock(states, catalog, time.Now)
}

// NewQuizEngineWithClock is used by tests for deterministic timestamps.
func NewQuizEngineWithClock(states StateRepository, catalog *domain.Catalog, now func() time.Time) *QuizEngine {
	return &QuizEngine{
		states:  states,
		catalog: catalog,
		now:     now,
		locks:   newUserLocks(),
	}
}

// Catalog exposes the static quiz content the engine scores against.
func (e *QuizEngine) Catalog() *domain.Catalog {
	return e.catalog
}

// Reset replaces whatever the user had with a fresh state.
func (e *QuizEngine) Reset(ctx context.Context, userID int64, displayName string) (domain.UserQuizState, error) {
	unlock := e.locks.lock(userID)
	defer unlock()

	state := domain.NewUserQuizState(userID, displayName, e.now())
	if err := e.states.Put(ctx, state); err != nil {
		return domain.UserQuizState{}, err
	}
	return state, nil
}

// SubmitAnswer records an answer and tells the caller what comes next.
// Progress is set to questionIndex+1 unconditionally, so answering an earlier
// question again rewinds the user to the question after it.
func (e *QuizEngine) SubmitAnswer(ctx context.Context, userID int64, questionIndex, optionIndex int) (domain.Decision, error) {
	if _, err := e.catalog.Option(questionIndex, optionIndex); err != nil {
		return domain.Decision{}, err
	}

	unlock := e.locks.lock(userID)
	defer unlock()

	state, ok, err := e.states.Get(ctx, userID)
	if err != nil {
		return domain.Decision{}, err
	}
	if !ok {
		state = domain.NewUserQuizState(userID, "", e.now())
	}
	if state.Answers == nil {
		state.Answers = make(map[int]int)
	}

	state.Answers[questionIndex] = optionIndex
	state.CurrentQuestionIndex = questionIndex + 1

	if state.CurrentQuestionIndex < e.catalog.QuestionCount() {
		if err := e.states.Put(ctx, state); err != nil {
			return domain.Decision{}, err
		}
		return domain.NextQuestion(state.CurrentQuestionIndex), nil
	}

	result, err := e.completeLocked(ctx, state)
	if err != nil {
		return domain.Decision{}, err
	}
	return domain.Finished(result), nil
}

// ComputeOutcome scores the user's answers and marks the quiz completed.
// It returns domain.ErrNoAnswers when there is no state or nothing was answered.
func (e *QuizEngine) ComputeOutcome(ctx context.Context, userID int64) (domain.OutcomeResult, error) {
	unlock := e.locks.lock(userID)
	defer unlock()

	state, ok, err := e.states.Get(ctx, userID)
	if err != nil {
		return domain.OutcomeResult{}, err
	}
	if !ok {
		return domain.OutcomeResult{}, domain.ErrNoAnswers
	}
	return e.completeLocked(ctx, state)
}

// State returns a copy of the user's progress.
func (e *QuizEngine) State(ctx context.Context, userID int64) (domain.UserQuizState, bool, error) {
	unlock := e.locks.lock(userID)
	defer unlock()
	return e.states.Get(ctx, userID)
}

func (e *QuizEngine) completeLocked(ctx context.Context, state domain.UserQuizState) (domain.OutcomeResult, error) {
	result, err := e.catalog.Score(state.Answers)
	if err != nil {
		return domain.OutcomeResult{}, err
	}
	state.Completed = true
	state.ResultOutcome = result.Outcome.Key
	state.CompletedAt = e.now()
	if err := e.states.Put(ctx, state); err != nil {
		return domain.OutcomeResult{}, err
	}
	return result, nil
}
