package domain

import (
	"errors"
	"fmt"
	"strings"
)

// CatalogData is the raw, serializable form of the quiz content.
type CatalogData struct {
	Questions []QuestionDefinition `json:"questions"`
	Outcomes  []OutcomeDefinition  `json:"outcomes"`
	// Guardianship is a template with {email} and {phone} placeholders.
	Guardianship string `json:"guardianship"`
}

// Catalog is validated, read-only quiz content shared by every request.
type Catalog struct {
	data     CatalogData
	outcomes map[string]int
}

// NewCatalog validates data and builds the lookup indexes.
func NewCatalog(data CatalogData) (*Catalog, error) {
	if err := ValidateCatalog(data); err != nil {
		return nil, err
	}
	outcomes := make(map[string]int, len(data.Outcomes))
	for i, o := range data.Outcomes {
		outcomes[o.Key] = i
	}
	return &Catalog{data: data, outcomes: outcomes}, nil
}

// ValidateCatalog cross-checks questions against outcomes and reports every
// problem it finds, each wrapping ErrInvalidCatalog.
func ValidateCatalog(data CatalogData) error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidCatalog, fmt.Sprintf(format, args...)))
	}

	if len(data.Questions) == 0 {
		invalid("no questions")
	}
	if len(data.Outcomes) == 0 {
		invalid("no outcomes")
	}

	known := make(map[string]struct{}, len(data.Outcomes))
	for i, o := range data.Outcomes {
		if strings.TrimSpace(o.Key) == "" {
			invalid("outcome %d has an empty key", i)
			continue
		}
		if _, dup := known[o.Key]; dup {
			invalid("duplicate outcome %q", o.Key)
		}
		if strings.TrimSpace(o.DisplayName) == "" {
			invalid("outcome %q has no display name", o.Key)
		}
		known[o.Key] = struct{}{}
	}

	for qi, q := range data.Questions {
		if q.ID != qi+1 {
			invalid("question at position %d has id %d, want %d", qi, q.ID, qi+1)
		}
		if strings.TrimSpace(q.Prompt) == "" {
			invalid("question %d has no prompt", q.ID)
		}
		if len(q.Options) == 0 {
			invalid("question %d has no options", q.ID)
		}
		for oi, opt := range q.Options {
			if strings.TrimSpace(opt.Text) == "" {
				invalid("question %d option %d has no text", q.ID, oi)
			}
			if len(opt.Weights) == 0 {
				invalid("question %d option %d has no weights", q.ID, oi)
			}
			seen := make(map[string]struct{}, len(opt.Weights))
			for _, w := range opt.Weights {
				if _, dup := seen[w.Outcome]; dup {
					invalid("question %d option %d weights %q twice", q.ID, oi, w.Outcome)
				}
				seen[w.Outcome] = struct{}{}
				if _, ok := known[w.Outcome]; !ok {
					invalid("question %d option %d references unknown outcome %q", q.ID, oi, w.Outcome)
				}
				if w.Points <= 0 {
					invalid("question %d option %d gives %d points to %q", q.ID, oi, w.Points, w.Outcome)
				}
			}
		}
	}
	return errors.Join(errs...)
}

// Data returns the raw content, e.g. for storing it elsewhere.
func (c *Catalog) Data() CatalogData {
	return c.data
}

// QuestionCount is the number of questions in the quiz.
func (c *Catalog) QuestionCount() int {
	return len(c.data.Questions)
}

// Question returns the question at a 0-based index.
func (c *Catalog) Question(index int) (QuestionDefinition, error) {
	if index < 0 || index >= len(c.data.Questions) {
		return QuestionDefinition{}, fmt.Errorf("%w: question %d", ErrInvalidIndex, index)
	}
	return c.data.Questions[index], nil
}

// Option returns an option of a question, both 0-based.
func (c *Catalog) Option(questionIndex, optionIndex int) (OptionDefinition, error) {
	q, err := c.Question(questionIndex)
	if err != nil {
		return OptionDefinition{}, err
	}
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return OptionDefinition{}, fmt.Errorf("%w: question %d option %d", ErrInvalidIndex, questionIndex, optionIndex)
	}
	return q.Options[optionIndex], nil
}

// Outcome looks up an outcome by key.
func (c *Catalog) Outcome(key string) (OutcomeDefinition, bool) {
	i, ok := c.outcomes[key]
	if !ok {
		return OutcomeDefinition{}, false
	}
	return c.data.Outcomes[i], true
}

// Outcomes returns the outcomes in declaration order.
func (c *Catalog) Outcomes() []OutcomeDefinition {
	return c.data.Outcomes
}

// UnreachableOutcomes lists outcomes no option gives points to.
func (c *Catalog) UnreachableOutcomes() []string {
	reached := make(map[string]struct{})
	for _, q := range c.data.Questions {
		for _, opt := range q.Options {
			for _, w := range opt.Weights {
				reached[w.Outcome] = struct{}{}
			}
		}
	}
	var out []string
	for _, o := range c.data.Outcomes {
		if _, ok := reached[o.Key]; !ok {
			out = append(out, o.Key)
		}
	}
	return out
}

// CheckQuestionBounds fails when the quiz length is outside [min, max].
// A non-positive bound is ignored.
func (c *Catalog) CheckQuestionBounds(min, max int) error {
	n := len(c.data.Questions)
	if min > 0 && n < min {
		return fmt.Errorf("%w: %d questions, at least %d required", ErrInvalidCatalog, n, min)
	}
	if max > 0 && n > max {
		return fmt.Errorf("%w: %d questions, at most %d allowed", ErrInvalidCatalog, n, max)
	}
	return nil
}

// Guardianship renders the guardianship passage with contact details.
func (c *Catalog) Guardianship(contact Contact) string {
	return strings.NewReplacer("{email}", contact.Email, "{phone}", contact.Phone).Replace(c.data.Guardianship)
}
