package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestNewCatalogRejectsUnknownOutcome(t *testing.T) {
	_, err := NewCatalog(CatalogData{
		Questions: []QuestionDefinition{
			{ID: 1, Prompt: "Where do you swim?", Options: []OptionDefinition{
				{Text: "Sea", Weights: Weights{{Outcome: "dolphin", Points: 3}}},
				{Text: "River", Weights: Weights{{Outcome: "otter", Points: 2}}},
			}},
		},
		Outcomes: []OutcomeDefinition{{Key: "otter", DisplayName: "Otter"}},
	})
	if !errors.Is(err, ErrInvalidCatalog) {
		t.Fatalf("expected ErrInvalidCatalog, got %v", err)
	}
	if !strings.Contains(err.Error(), `"dolphin"`) {
		t.Fatalf("expected the missing key in the error, got %v", err)
	}
}

func TestValidateCatalogReportsEveryProblem(t *testing.T) {
	err := ValidateCatalog(CatalogData{
		Questions: []QuestionDefinition{
			{ID: 2, Prompt: "", Options: nil},
			{ID: 2, Prompt: "ok", Options: []OptionDefinition{
				{Text: "x", Weights: Weights{{Outcome: "fox", Points: 0}}},
				{Text: "y"},
			}},
		},
		Outcomes: []OutcomeDefinition{
			{Key: "fox", DisplayName: "Fox"},
			{Key: "fox", DisplayName: ""},
		},
	})
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	for _, want := range []string{
		"position 0 has id 2",
		"question 2 has no prompt",
		"question 2 has no options",
		"gives 0 points",
		"option 1 has no weights",
		`duplicate outcome "fox"`,
		`outcome "fox" has no display name`,
	} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %v", want, err)
		}
	}
}

func TestValidateCatalogRejectsRepeatedWeight(t *testing.T) {
	err := ValidateCatalog(CatalogData{
		Questions: []QuestionDefinition{
			{ID: 1, Prompt: "Pride or solitude?", Options: []OptionDefinition{
				{Text: "Pride", Weights: Weights{{Outcome: "lion", Points: 1}, {Outcome: "lion", Points: 2}}},
			}},
		},
		Outcomes: []OutcomeDefinition{{Key: "lion", DisplayName: "Lion"}},
	})
	if !errors.Is(err, ErrInvalidCatalog) {
		t.Fatalf("expected ErrInvalidCatalog, got %v", err)
	}
	if !strings.Contains(err.Error(), `question 1 option 0 weights "lion" twice`) {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestCatalogLookups(t *testing.T) {
	c := foxOwlCatalog(t)

	if c.QuestionCount() != 3 {
		t.Fatalf("expected 3 questions, got %d", c.QuestionCount())
	}
	if _, err := c.Question(-1); !errors.Is(err, ErrInvalidIndex) {
		t.Fatalf("expected ErrInvalidIndex, got %v", err)
	}
	if _, err := c.Option(1, 2); !errors.Is(err, ErrInvalidIndex) {
		t.Fatalf("expected ErrInvalidIndex, got %v", err)
	}
	if o, ok := c.Outcome("owl"); !ok || o.DisplayName != "Owl" {
		t.Fatalf("expected owl outcome, got %+v", o)
	}
	if _, ok := c.Outcome("dolphin"); ok {
		t.Fatalf("expected dolphin to be unknown")
	}
	if got := c.UnreachableOutcomes(); len(got) != 0 {
		t.Fatalf("expected every outcome reachable, got %v", got)
	}
}

func TestCatalogGuardianshipSubstitutesContacts(t *testing.T) {
	c := foxOwlCatalog(t)

	got := c.Guardianship(Contact{Email: "zoo@example.org", Phone: "+7 000"})
	if got != "Write to zoo@example.org or call +7 000." {
		t.Fatalf("unexpected guardianship text %q", got)
	}
}

func TestCatalogQuestionBounds(t *testing.T) {
	c := foxOwlCatalog(t)

	if err := c.CheckQuestionBounds(1, 10); err != nil {
		t.Fatalf("expected bounds to pass, got %v", err)
	}
	if err := c.CheckQuestionBounds(5, 10); !errors.Is(err, ErrInvalidCatalog) {
		t.Fatalf("expected too few questions, got %v", err)
	}
	if err := c.CheckQuestionBounds(0, 2); !errors.Is(err, ErrInvalidCatalog) {
		t.Fatalf("expected too many questions, got %v", err)
	}
}

func TestUnreachableOutcomes(t *testing.T) {
	c, err := NewCatalog(CatalogData{
		Questions: []QuestionDefinition{
			{ID: 1, Prompt: "p", Options: []OptionDefinition{{Text: "a", Weights: Weights{{Outcome: "fox", Points: 1}}}}},
		},
		Outcomes: []OutcomeDefinition{{Key: "fox", DisplayName: "Fox"}, {Key: "owl", DisplayName: "Owl"}},
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	got := c.UnreachableOutcomes()
	if len(got) != 1 || got[0] != "owl" {
		t.Fatalf("expected owl unreachable, got %v", got)
	}
}
