package render

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/fogleman/gg"
)

// runeWidth measures every rune as 10 units wide.
type runeWidth struct{}

func (runeWidth) MeasureString(s string) (float64, float64) {
	return float64(utf8.RuneCountInString(s) * 10), 10
}

func TestWrapTextGreedy(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		width float64
		want  []string
	}{
		{"empty", "", 100, nil},
		{"whitespace only", "  \n\t ", 100, nil},
		{"fits", "one two", 100, []string{"one two"}},
		{"breaks", "one two three four", 100, []string{"one two", "three four"}},
		{"exact width", "abcd efghi", 100, []string{"abcd efghi"}},
		{"long word alone", "supercalifragilistic", 50, []string{"supercalifragilistic"}},
		{"long word in middle", "a supercalifragilistic b", 50, []string{"a", "supercalifragilistic", "b"}},
		{"collapses spaces", "a   b\n\nc", 100, []string{"a b c"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := WrapText(c.text, runeWidth{}, c.width)
			if strings.Join(got, "|") != strings.Join(c.want, "|") || len(got) != len(c.want) {
				t.Fatalf("WrapText(%q) = %q, want %q", c.text, got, c.want)
			}
		})
	}
}

func TestWrapTextIsIdempotent(t *testing.T) {
	text := "Лев символизирует силу, смелость и лидерство. Ты прирожденный лидер, который не боится брать ответственность."
	for _, width := range []float64{60, 120, 250, 700} {
		first := WrapText(text, runeWidth{}, width)
		second := WrapText(strings.Join(first, " "), runeWidth{}, width)
		if strings.Join(first, "\n") != strings.Join(second, "\n") {
			t.Fatalf("width %v: rewrap changed lines\n%q\n%q", width, first, second)
		}
	}
}

func TestWrapTextWithFontMetrics(t *testing.T) {
	f, _, err := loadFont("")
	if err != nil {
		t.Fatalf("font: %v", err)
	}
	dc := gg.NewContext(DetailWidth, DetailHeight)
	dc.SetFontFace(face(f, 24))

	text := "The quick brown fox jumps over the lazy dog while the owl watches from an old oak tree at night."
	lines := WrapText(text, dc, 300)
	if len(lines) < 2 {
		t.Fatalf("expected several lines, got %q", lines)
	}
	for _, line := range lines {
		if w, _ := dc.MeasureString(line); w > 300 && strings.Contains(line, " ") {
			t.Fatalf("line %q is %v wide", line, w)
		}
	}
	if strings.Join(lines, " ") != text {
		t.Fatalf("wrapping lost words: %q", lines)
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := truncateRunes("короткий", 100); got != "короткий" {
		t.Fatalf("unexpected %q", got)
	}
	long := strings.Repeat("я", 120)
	got := truncateRunes(long, 100)
	if utf8.RuneCountInString(got) != 103 || !strings.HasSuffix(got, "...") {
		t.Fatalf("unexpected truncation %q", got)
	}
}
