package content

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"totem-quiz-bot/internal/domain"
)

func TestDefaultCatalogIsConsistent(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	if c.QuestionCount() != 10 {
		t.Fatalf("expected 10 questions, got %d", c.QuestionCount())
	}
	if err := c.CheckQuestionBounds(5, 10); err != nil {
		t.Fatalf("bounds: %v", err)
	}
	if got := c.UnreachableOutcomes(); len(got) != 0 {
		t.Fatalf("unreachable outcomes: %v", got)
	}
	for _, q := range c.Data().Questions {
		for _, opt := range q.Options {
			for _, w := range opt.Weights {
				if _, ok := c.Outcome(w.Outcome); !ok {
					t.Fatalf("question %d references unknown %q", q.ID, w.Outcome)
				}
				if w.Points < 1 || w.Points > 3 {
					t.Fatalf("question %d weight %d out of range", q.ID, w.Points)
				}
			}
		}
	}
	text := c.Guardianship(domain.Contact{Email: "e@x", Phone: "123"})
	if !strings.Contains(text, "e@x") || !strings.Contains(text, "123") || strings.Contains(text, "{email}") {
		t.Fatalf("placeholders not substituted: %q", text)
	}
}

func TestParseKeepsWeightOrder(t *testing.T) {
	raw := []byte(`
outcomes:
  - {key: owl, name: Owl}
  - {key: fox, name: Fox}
questions:
  - id: 1
    question: Night or day?
    options:
      - text: Night
        weight: {owl: 1, fox: 1}
      - text: Day
        weight:
          - {outcome: fox, points: 2}
`)
	c, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	opt, _ := c.Option(0, 0)
	if len(opt.Weights) != 2 || opt.Weights[0].Outcome != "owl" || opt.Weights[1].Outcome != "fox" {
		t.Fatalf("weight order lost: %+v", opt.Weights)
	}
	opt, _ = c.Option(0, 1)
	if len(opt.Weights) != 1 || opt.Weights[0] != (domain.Weight{Outcome: "fox", Points: 2}) {
		t.Fatalf("sequence weights not decoded: %+v", opt.Weights)
	}

	result, err := c.Score(map[int]int{0: 0})
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if result.Outcome.Key != "owl" {
		t.Fatalf("expected owl on tie, got %s", result.Outcome.Key)
	}
}

func TestParseRejectsBrokenContent(t *testing.T) {
	if _, err := Parse([]byte("questions: [")); err == nil {
		t.Fatalf("expected decode error")
	}
	_, err := Parse([]byte(`
outcomes:
  - {key: otter, name: Otter}
questions:
  - id: 1
    question: Water?
    options:
      - text: Sea
        weight: {dolphin: 3}
`))
	if !errors.Is(err, domain.ErrInvalidCatalog) {
		t.Fatalf("expected ErrInvalidCatalog, got %v", err)
	}
	if _, err := Parse([]byte("questions:\n  - id: 1\n    question: q\n    options:\n      - text: a\n        weight: 3\n")); err == nil {
		t.Fatalf("expected scalar weights to be rejected")
	}
}

func TestFileLoader(t *testing.T) {
	ctx := context.Background()

	if _, err := NewFileLoader("").LoadCatalog(ctx); err != nil {
		t.Fatalf("embedded load: %v", err)
	}

	missing := filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := NewFileLoader(missing).LoadCatalog(ctx); !errors.Is(err, domain.ErrCatalogNotFound) {
		t.Fatalf("expected ErrCatalogNotFound, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, defaultCatalog, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := NewFileLoader(path).LoadCatalog(ctx)
	if err != nil {
		t.Fatalf("file load: %v", err)
	}
	if c.QuestionCount() != 10 {
		t.Fatalf("expected 10 questions, got %d", c.QuestionCount())
	}
}
