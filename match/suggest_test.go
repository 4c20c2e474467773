package match

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dhamidi/docopt/usage"
)

func suggestionTexts(suggestions []Suggestion) []string {
	var out []string
	for _, s := range suggestions {
		out = append(out, s.Text)
	}
	return out
}

func TestSuggest(t *testing.T) {
	g := build(t, navalFate)
	tests := []struct {
		name string
		argv []string
		want []string
	}{
		{
			name: "start",
			argv: nil,
			want: []string{"ship", "mine", "--help", "--version"},
		},
		{
			name: "after ship",
			argv: []string{"ship"},
			want: []string{"new", "<name>", "shoot"},
		},
		{
			name: "after mine",
			argv: []string{"mine"},
			want: []string{"set", "remove"},
		},
		{
			name: "after move",
			argv: []string{"ship", "Guardian", "move", "1", "2"},
			want: []string{"--speed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := suggestionTexts(Suggest(g, tt.argv, DefaultFlags))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Suggest(%q) mismatch (-want +got):\n%s", tt.argv, diff)
			}
		})
	}
}

func TestSuggestDescriptions(t *testing.T) {
	g := build(t, navalFate)
	for _, s := range Suggest(g, []string{"ship", "Guardian", "move", "1", "2"}, DefaultFlags) {
		if s.Text == "--speed" {
			if s.Kind != usage.KindOption || s.Description != "Speed in knots [default: 10]." {
				t.Errorf("suggestion = %+v", s)
			}
			return
		}
	}
	t.Error("--speed not suggested")
}
