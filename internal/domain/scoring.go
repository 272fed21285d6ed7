package domain

import "sort"

// Tally sums option weights per outcome over the recorded answers.
// Answers are visited in ascending question index and each option's weights
// in declaration order; the returned slice keeps first-accumulated order.
func (c *Catalog) Tally(answers map[int]int) ([]OutcomeScore, error) {
	questions := make([]int, 0, len(answers))
	for q := range answers {
		questions = append(questions, q)
	}
	sort.Ints(questions)

	scores := make([]OutcomeScore, 0)
	position := make(map[string]int)
	for _, q := range questions {
		opt, err := c.Option(q, answers[q])
		if err != nil {
			return nil, err
		}
		for _, w := range opt.Weights {
			i, ok := position[w.Outcome]
			if !ok {
				i = len(scores)
				position[w.Outcome] = i
				scores = append(scores, OutcomeScore{Outcome: w.Outcome})
			}
			scores[i].Score += w.Points
		}
	}
	return scores, nil
}

// Winner returns the first entry holding the maximum score.
func Winner(scores []OutcomeScore) (OutcomeScore, bool) {
	if len(scores) == 0 {
		return OutcomeScore{}, false
	}
	best := scores[0]
	for _, s := range scores[1:] {
		if s.Score > best.Score {
			best = s
		}
	}
	return best, true
}

// Score computes the winning outcome for a set of answers.
func (c *Catalog) Score(answers map[int]int) (OutcomeResult, error) {
	if len(answers) == 0 {
		return OutcomeResult{}, ErrNoAnswers
	}
	scores, err := c.Tally(answers)
	if err != nil {
		return OutcomeResult{}, err
	}
	best, ok := Winner(scores)
	if !ok {
		return OutcomeResult{}, ErrNoAnswers
	}
	outcome, ok := c.Outcome(best.Outcome)
	if !ok {
		return OutcomeResult{}, ErrUnknownOutcome
	}
	return OutcomeResult{Outcome: outcome, Score: best.Score, Scores: scores}, nil
}
