package domain

import "testing"

func foxOwlCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog(CatalogData{
		Questions: []QuestionDefinition{
			{ID: 1, Prompt: "Q0", Options: []OptionDefinition{
				{Text: "A", Weights: Weights{{Outcome: "fox", Points: 2}}},
				{Text: "B", Weights: Weights{{Outcome: "owl", Points: 2}}},
			}},
			{ID: 2, Prompt: "Q1", Options: []OptionDefinition{
				{Text: "A", Weights: Weights{{Outcome: "owl", Points: 2}}},
				{Text: "B", Weights: Weights{{Outcome: "fox", Points: 1}, {Outcome: "owl", Points: 3}}},
			}},
			{ID: 3, Prompt: "Q2", Options: []OptionDefinition{
				{Text: "A", Weights: Weights{{Outcome: "owl", Points: 1}}},
				{Text: "B", Weights: Weights{{Outcome: "fox", Points: 1}}},
			}},
		},
		Outcomes: []OutcomeDefinition{
			{Key: "fox", DisplayName: "Fox", Emoji: "🦊"},
			{Key: "owl", DisplayName: "Owl", Emoji: "🦉"},
		},
		Guardianship: "Write to {email} or call {phone}.",
	})
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	return c
}
