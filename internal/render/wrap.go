package render

import "strings"

// Measurer reports the rendered size of a string. *gg.Context satisfies it.
type Measurer interface {
	MeasureString(s string) (w, h float64)
}

// WrapText greedily packs whitespace-separated words into lines no wider than
// maxWidth. A word wider than maxWidth gets a line of its own and is never split.
func WrapText(text string, m Measurer, maxWidth float64) []string {
	var lines []string
	current := ""
	for _, word := range strings.Fields(text) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if w, _ := m.MeasureString(candidate); w <= maxWidth {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
		}
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// truncateRunes cuts s to limit runes and appends an ellipsis when it was longer.
func truncateRunes(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}
