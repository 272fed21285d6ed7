package app

import (
	"context"
	"errors"
	"fmt"

	"totem-quiz-bot/internal/domain"
	"totem-quiz-bot/internal/pkg/logger"
)

// ReplyKind is what the chat layer should show after a user action.
type ReplyKind int

const (
	ReplyQuestion ReplyKind = iota
	ReplyOutcome
	ReplyNoResult
	ReplyInvalidAction
)

func (k ReplyKind) String() string {
	switch k {
	case ReplyQuestion:
		return "question"
	case ReplyOutcome:
		return "outcome"
	case ReplyNoResult:
		return "no_result"
	case ReplyInvalidAction:
		return "invalid_action"
	default:
		return fmt.Sprintf("ReplyKind(%d)", int(k))
	}
}

// QuestionView is a question ready to be rendered with its options.
type QuestionView struct {
	Index   int      `json:"questionIndex"`
	Total   int      `json:"total"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

// Reply carries either a question or a final outcome, depending on Kind.
type Reply struct {
	Kind     ReplyKind
	Question QuestionView
	Result   domain.OutcomeResult
}

// ShareResult is a rendered card. Path is empty when no ArtifactStore is configured.
type ShareResult struct {
	Kind     ReplyKind
	Outcome  domain.OutcomeDefinition
	Artifact domain.Artifact
	Path     string
}

// QuizFlow maps chat events onto the engine and turns decisions into replies.
type QuizFlow struct {
	engine   *QuizEngine
	renderer CardRenderer
	store    ArtifactStore
	contact  domain.Contact
	log      *logger.Logger
}

func NewQuizFlow(engine *QuizEngine, renderer CardRenderer, store ArtifactStore, contact domain.Contact) *QuizFlow {
	return &QuizFlow{engine: engine, renderer: renderer, store: store, contact: contact, log: logger.NewNop()}
}

// SetLogger enables quiz event logging; the flow is silent by default.
func (f *QuizFlow) SetLogger(log *logger.Logger) {
	f.log = log.With("component", "QuizFlow")
}

// Start begins (or restarts) the quiz and returns the first question.
func (f *QuizFlow) Start(ctx context.Context, userID int64, displayName string) (QuestionView, error) {
	if _, err := f.engine.Reset(ctx, userID, displayName); err != nil {
		return QuestionView{}, err
	}
	f.log.Info("quiz started", "userId", userID)
	return f.question(0)
}

// Answer records a choice. Out-of-range indices yield ReplyInvalidAction, not an error.
func (f *QuizFlow) Answer(ctx context.Context, userID int64, questionIndex, optionIndex int) (Reply, error) {
	decision, err := f.engine.SubmitAnswer(ctx, userID, questionIndex, optionIndex)
	if errors.Is(err, domain.ErrInvalidIndex) {
		return Reply{Kind: ReplyInvalidAction}, nil
	}
	if err != nil {
		return Reply{}, err
	}
	f.log.Info("answer recorded", "userId", userID, "question", questionIndex, "option", optionIndex)
	if decision.IsFinished() {
		f.log.Info("quiz completed", "userId", userID, "outcome", decision.Result.Outcome.Key, "score", decision.Result.Score)
		return Reply{Kind: ReplyOutcome, Result: decision.Result}, nil
	}
	view, err := f.question(decision.NextQuestion)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Kind: ReplyQuestion, Question: view}, nil
}

// Current repeats what the user is looking at: their next question or their result.
func (f *QuizFlow) Current(ctx context.Context, userID int64) (Reply, error) {
	state, ok, err := f.engine.State(ctx, userID)
	if err != nil {
		return Reply{}, err
	}
	if !ok {
		return Reply{Kind: ReplyInvalidAction}, nil
	}
	if state.CurrentQuestionIndex >= f.engine.Catalog().QuestionCount() {
		result, err := f.storedResult(state)
		if errors.Is(err, domain.ErrNoAnswers) {
			return Reply{Kind: ReplyNoResult}, nil
		}
		if err != nil {
			return Reply{}, err
		}
		return Reply{Kind: ReplyOutcome, Result: result}, nil
	}
	view, err := f.question(state.CurrentQuestionIndex)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Kind: ReplyQuestion, Question: view}, nil
}

// Share renders the square social card for a finished quiz.
func (f *QuizFlow) Share(ctx context.Context, userID int64) (ShareResult, error) {
	return f.card(ctx, userID, f.renderer.RenderShareCard)
}

// ResultCard renders the detailed result card for a finished quiz.
func (f *QuizFlow) ResultCard(ctx context.Context, userID int64) (ShareResult, error) {
	return f.card(ctx, userID, f.renderer.RenderDetailCard)
}

// Guardianship is the informational passage with contacts filled in.
func (f *QuizFlow) Guardianship() string {
	return f.engine.Catalog().Guardianship(f.contact)
}

func (f *QuizFlow) Contact() domain.Contact {
	return f.contact
}

// Questions is the number of questions in the quiz.
func (f *QuizFlow) Questions() int {
	return f.engine.Catalog().QuestionCount()
}

func (f *QuizFlow) card(ctx context.Context, userID int64, draw func(string, string) (domain.Artifact, error)) (ShareResult, error) {
	state, ok, err := f.engine.State(ctx, userID)
	if err != nil {
		return ShareResult{}, err
	}
	if !ok || !state.Completed || state.ResultOutcome == "" {
		return ShareResult{Kind: ReplyNoResult}, nil
	}
	outcome, ok := f.engine.Catalog().Outcome(state.ResultOutcome)
	if !ok {
		return ShareResult{}, fmt.Errorf("%w: %s", domain.ErrUnknownOutcome, state.ResultOutcome)
	}

	res := ShareResult{Kind: ReplyOutcome, Outcome: outcome}
	artifact, err := draw(outcome.Key, state.DisplayName)
	if err != nil {
		return res, fmt.Errorf("render card: %w", err)
	}
	res.Artifact = artifact
	if f.store == nil {
		return res, nil
	}
	path, err := f.store.Save(artifact)
	if err != nil {
		return res, fmt.Errorf("save card: %w", err)
	}
	res.Path = path
	return res, nil
}

// storedResult reports the outcome recorded at completion, so it agrees with
// Share and ResultCard even if the tally would now differ.
func (f *QuizFlow) storedResult(state domain.UserQuizState) (domain.OutcomeResult, error) {
	result, err := f.engine.Catalog().Score(state.Answers)
	if err != nil || state.ResultOutcome == "" || state.ResultOutcome == result.Outcome.Key {
		return result, err
	}
	outcome, ok := f.engine.Catalog().Outcome(state.ResultOutcome)
	if !ok {
		return domain.OutcomeResult{}, fmt.Errorf("%w: %s", domain.ErrUnknownOutcome, state.ResultOutcome)
	}
	result.Outcome = outcome
	result.Score = 0
	for _, s := range result.Scores {
		if s.Outcome == outcome.Key {
			result.Score = s.Score
		}
	}
	return result, nil
}

func (f *QuizFlow) question(index int) (QuestionView, error) {
	q, err := f.engine.Catalog().Question(index)
	if err != nil {
		return QuestionView{}, err
	}
	options := make([]string, len(q.Options))
	for i, opt := range q.Options {
		options[i] = opt.Text
	}
	return QuestionView{
		Index:   index,
		Total:   f.engine.Catalog().QuestionCount(),
		Prompt:  q.Prompt,
		Options: options,
	}, nil
}
