package content

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"totem-quiz-bot/internal/domain"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type document struct {
	Guardianship string             `yaml:"guardianship"`
	Outcomes     []outcomeDocument  `yaml:"outcomes"`
	Questions    []questionDocument `yaml:"questions"`
}

type outcomeDocument struct {
	Key          string `yaml:"key"`
	Name         string `yaml:"name"`
	Emoji        string `yaml:"emoji"`
	Description  string `yaml:"description"`
	ZooFacts     string `yaml:"zoo_facts"`
	GuardianInfo string `yaml:"guardian_info"`
}

type questionDocument struct {
	ID       int              `yaml:"id"`
	Question string           `yaml:"question"`
	Options  []optionDocument `yaml:"options"`
}

type optionDocument struct {
	Text   string         `yaml:"text"`
	Weight orderedWeights `yaml:"weight"`
}

// orderedWeights decodes `{lion: 3, tiger: 1}` keeping key order, which a Go
// map would lose. A sequence of {outcome, points} items is accepted too.
type orderedWeights domain.Weights

func (w *orderedWeights) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		out := make(orderedWeights, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			var points int
			if err := node.Content[i+1].Decode(&points); err != nil {
				return fmt.Errorf("weight %q: %w", node.Content[i].Value, err)
			}
			out = append(out, domain.Weight{Outcome: node.Content[i].Value, Points: points})
		}
		*w = out
	case yaml.SequenceNode:
		var items []struct {
			Outcome string `yaml:"outcome"`
			Points  int    `yaml:"points"`
		}
		if err := node.Decode(&items); err != nil {
			return err
		}
		out := make(orderedWeights, 0, len(items))
		for _, it := range items {
			out = append(out, domain.Weight{Outcome: it.Outcome, Points: it.Points})
		}
		*w = out
	default:
		return fmt.Errorf("line %d: weights must be a mapping or a sequence", node.Line)
	}
	return nil
}

func (d document) catalogData() domain.CatalogData {
	data := domain.CatalogData{
		Guardianship: d.Guardianship,
		Outcomes:     make([]domain.OutcomeDefinition, 0, len(d.Outcomes)),
		Questions:    make([]domain.QuestionDefinition, 0, len(d.Questions)),
	}
	for _, o := range d.Outcomes {
		data.Outcomes = append(data.Outcomes, domain.OutcomeDefinition{
			Key:          o.Key,
			DisplayName:  o.Name,
			Emoji:        o.Emoji,
			Description:  o.Description,
			ExtraFacts:   o.ZooFacts,
			GuardianInfo: o.GuardianInfo,
		})
	}
	for _, q := range d.Questions {
		question := domain.QuestionDefinition{
			ID:      q.ID,
			Prompt:  q.Question,
			Options: make([]domain.OptionDefinition, 0, len(q.Options)),
		}
		for _, opt := range q.Options {
			question.Options = append(question.Options, domain.OptionDefinition{
				Text:    opt.Text,
				Weights: domain.Weights(opt.Weight),
			})
		}
		data.Questions = append(data.Questions, question)
	}
	return data
}

// ParseData decodes a YAML catalog without validating it.
func ParseData(raw []byte) (domain.CatalogData, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return domain.CatalogData{}, fmt.Errorf("decode catalog: %w", err)
	}
	return doc.catalogData(), nil
}

// Parse decodes and validates a YAML catalog.
func Parse(raw []byte) (*domain.Catalog, error) {
	data, err := ParseData(raw)
	if err != nil {
		return nil, err
	}
	return domain.NewCatalog(data)
}

// Default returns the catalog compiled into the binary.
func Default() (*domain.Catalog, error) {
	return Parse(defaultCatalog)
}
