package app_test

import (
	"testing"
	"time"

	"totem-quiz-bot/internal/app"
	"totem-quiz-bot/internal/domain"
	"totem-quiz-bot/internal/infra/memory"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// foxOwlCatalog has three two-option questions:
// Q0 A{fox:2} B{owl:2}, Q1 A{owl:2} B{fox:1,owl:3}, Q2 A{owl:1} B{fox:1}.
func foxOwlCatalog(t *testing.T) *domain.Catalog {
	t.Helper()
	w := func(pairs ...any) domain.Weights {
		var out domain.Weights
		for i := 0; i < len(pairs); i += 2 {
			out = append(out, domain.Weight{Outcome: pairs[i].(string), Points: pairs[i+1].(int)})
		}
		return out
	}
	cat, err := domain.NewCatalog(domain.CatalogData{
		Questions: []domain.QuestionDefinition{
			{ID: 1, Prompt: "Morning or evening?", Options: []domain.OptionDefinition{
				{Text: "Morning", Weights: w("fox", 2)},
				{Text: "Evening", Weights: w("owl", 2)},
			}},
			{ID: 2, Prompt: "Forest or field?", Options: []domain.OptionDefinition{
				{Text: "Field", Weights: w("owl", 2)},
				{Text: "Forest", Weights: w("fox", 1, "owl", 3)},
			}},
			{ID: 3, Prompt: "Quiet or loud?", Options: []domain.OptionDefinition{
				{Text: "Quiet", Weights: w("owl", 1)},
				{Text: "Loud", Weights: w("fox", 1)},
			}},
		},
		Outcomes: []domain.OutcomeDefinition{
			{Key: "fox", DisplayName: "Fox", Emoji: "🦊", Description: "Clever and quick."},
			{Key: "owl", DisplayName: "Owl", Emoji: "🦉", Description: "Wise and patient."},
		},
		Guardianship: "Write to {email} or call {phone}.",
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return cat
}

func newTestEngine(t *testing.T) (*app.QuizEngine, *memory.StateStore) {
	t.Helper()
	store := memory.NewStateStore()
	return app.NewQuizEngineWithClock(store, foxOwlCatalog(t), func() time.Time { return fixedNow }), store
}
