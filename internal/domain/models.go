package domain

import "time"

// Weight is the number of points an option adds to one outcome.
type Weight struct {
	Outcome string `json:"outcome"`
	Points  int    `json:"points"`
}

// Weights keeps an option's contributions in declaration order. Order matters
// for tie-breaking, which is why this is a slice and not a map.
type Weights []Weight

// OptionDefinition is one selectable answer of a question.
type OptionDefinition struct {
	Text    string  `json:"text"`
	Weights Weights `json:"weights"`
}

// QuestionDefinition is a static quiz question. ID is 1-based and equals index+1.
type QuestionDefinition struct {
	ID      int                `json:"id"`
	Prompt  string             `json:"prompt"`
	Options []OptionDefinition `json:"options"`
}

// OutcomeDefinition describes a quiz result and its presentation strings.
type OutcomeDefinition struct {
	Key          string `json:"key"`
	DisplayName  string `json:"displayName"`
	Emoji        string `json:"emoji"`
	Description  string `json:"description"`
	ExtraFacts   string `json:"extraFacts"`
	GuardianInfo string `json:"guardianInfo"`
}

// UserQuizState is the transient per-user quiz progress.
type UserQuizState struct {
	UserID               int64       `json:"userId"`
	DisplayName          string      `json:"displayName"`
	CurrentQuestionIndex int         `json:"currentQuestionIndex"`
	Answers              map[int]int `json:"answers"`
	StartedAt            time.Time   `json:"startedAt"`
	Completed            bool        `json:"completed"`
	ResultOutcome        string      `json:"resultOutcome,omitempty"`
	CompletedAt          time.Time   `json:"completedAt,omitempty"`
}

// NewUserQuizState returns the lifecycle-start state for a user.
func NewUserQuizState(userID int64, displayName string, now time.Time) UserQuizState {
	return UserQuizState{
		UserID:      userID,
		DisplayName: displayName,
		Answers:     make(map[int]int),
		StartedAt:   now,
	}
}

// Clone returns a copy that shares no memory with s.
func (s UserQuizState) Clone() UserQuizState {
	answers := make(map[int]int, len(s.Answers))
	for q, o := range s.Answers {
		answers[q] = o
	}
	s.Answers = answers
	return s
}

// OutcomeScore is the accumulated score of one outcome.
type OutcomeScore struct {
	Outcome string `json:"outcome"`
	Score   int    `json:"score"`
}

// OutcomeResult is the computed winner of a quiz run.
type OutcomeResult struct {
	Outcome OutcomeDefinition `json:"outcome"`
	Score   int               `json:"score"`
	// Scores lists every touched outcome in first-accumulated order.
	Scores []OutcomeScore `json:"scores"`
}

// DecisionKind tells the caller what to show after an answer.
type DecisionKind int

const (
	DecisionNextQuestion DecisionKind = iota
	DecisionFinished
)

// Decision is the result of submitting an answer.
type Decision struct {
	Kind DecisionKind
	// NextQuestion is set when Kind is DecisionNextQuestion.
	NextQuestion int
	// Result is set when Kind is DecisionFinished.
	Result OutcomeResult
}

// NextQuestion builds a decision pointing at question index.
func NextQuestion(index int) Decision {
	return Decision{Kind: DecisionNextQuestion, NextQuestion: index}
}

// Finished builds a terminal decision.
func Finished(result OutcomeResult) Decision {
	return Decision{Kind: DecisionFinished, Result: result}
}

// IsFinished reports whether the quiz ended with this decision.
func (d Decision) IsFinished() bool {
	return d.Kind == DecisionFinished
}

// Contact holds the zoo contact strings substituted into informational text.
type Contact struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Feedback is a free-text message a user sent to the bot.
type Feedback struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"userId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// Artifact is a rendered PNG card together with its file name.
type Artifact struct {
	Name string
	Data []byte
}
