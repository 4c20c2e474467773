package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/docopt/match"
	"github.com/dhamidi/docopt/usage"
)

const navalFate = `Naval Fate.

Usage:
  naval_fate ship new <name>...
  naval_fate ship <name> move <x> <y> [--speed=<kn>]
  naval_fate ship shoot <x> <y>
  naval_fate mine (set|remove) <x> <y> [--moored|--drifting]
  naval_fate -h | --help
  naval_fate --version

Options:
  -h --help     Show this screen.
  --version     Show version.
  --speed=<kn>  Speed in knots [default: 10].
  --moored      Moored (anchored) mine.
  --drifting    Drifting mine.
`

func build(t *testing.T, doc string) *usage.Grammar {
	t.Helper()
	g, errs := usage.Build(doc)
	if len(errs) != 0 {
		t.Fatalf("Build errors: %v", errs)
	}
	return g
}

func TestJSONEncoder(t *testing.T) {
	g := build(t, navalFate)
	argv := []string{"ship", "new", "Guardian"}

	var buf bytes.Buffer
	if err := NewJSONEncoder(&buf, argv).Encode(match.Match(g, argv, match.DefaultFlags)); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var got struct {
		Tokens []struct {
			Text   string `json:"text"`
			Status string `json:"status"`
		} `json:"tokens"`
		Args     map[string]match.Argument `json:"args"`
		Usage    int                       `json:"usage"`
		Complete bool                      `json:"complete"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Unmarshal: %v\n%s", err, buf.String())
	}
	if !got.Complete || got.Usage != 0 {
		t.Errorf("complete = %v, usage = %d", got.Complete, got.Usage)
	}
	if diff := cmp.Diff([]string{"Guardian"}, got.Args["<name>"].Values); diff != "" {
		t.Errorf("<name> mismatch (-want +got):\n%s", diff)
	}
	for _, tok := range got.Tokens {
		if tok.Status != "valid" {
			t.Errorf("token %q status = %q, want valid", tok.Text, tok.Status)
		}
	}
	if !strings.Contains(buf.String(), `"unused": []`) {
		t.Errorf("unused not written as an empty list:\n%s", buf.String())
	}
}

func TestYAMLEncoder(t *testing.T) {
	g := build(t, navalFate)
	argv := []string{"sh"}

	var buf bytes.Buffer
	if err := NewYAMLEncoder(&buf, argv).Encode(match.Match(g, argv, match.DefaultFlags)); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var got struct {
		Tokens []struct {
			Text   string `yaml:"text"`
			Status string `yaml:"status"`
		} `yaml:"tokens"`
		Unused []int `yaml:"unused"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Unmarshal: %v\n%s", err, buf.String())
	}
	if len(got.Tokens) != 1 || got.Tokens[0].Status != "valid_prefix" {
		t.Errorf("tokens = %+v", got.Tokens)
	}
	if diff := cmp.Diff([]int{0}, got.Unused); diff != "" {
		t.Errorf("unused mismatch (-want +got):\n%s", diff)
	}
}

func TestTextEncoder(t *testing.T) {
	g := build(t, "Usage: prog [-v] <x>")
	argv := []string{"-v", "a", "b"}

	var buf bytes.Buffer
	enc := NewTextEncoder(&buf, argv).WithoutColor()
	if err := enc.Encode(match.Match(g, argv, match.DefaultFlags)); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	want := "-v a b\n" +
		"match\tincomplete\tusage=0\n" +
		"-v\t1\t\n" +
		"<x>\t1\ta\n" +
		"unused\t2\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestNew(t *testing.T) {
	for _, name := range []string{"json", "yaml", "text"} {
		if _, ok := New(name, &bytes.Buffer{}, nil); !ok {
			t.Errorf("New(%q) not found", name)
		}
	}
	if _, ok := New("xml", &bytes.Buffer{}, nil); ok {
		t.Error("New(xml) found")
	}
}

func TestLineEncoder(t *testing.T) {
	suggestions := []match.Suggestion{
		{Text: "new", Kind: usage.KindCommand},
		{Text: "--speed", Kind: usage.KindOption, Description: "Speed\tin knots."},
	}
	tests := []struct {
		name  string
		kinds bool
		want  string
	}{
		{"plain", false, "new\n--speed\tSpeed in knots.\n"},
		{"kinds", true, "new\tcommand\t\n--speed\toption\tSpeed in knots.\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			enc := NewLineEncoder(&buf)
			if tt.kinds {
				enc.WithKinds()
			}
			if err := enc.Encode(suggestions); err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if diff := cmp.Diff(tt.want, buf.String()); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTreeJSONEncoder(t *testing.T) {
	g, _ := usage.Build("Usage: prog [-v] <file>\n  prog (a\n")

	text, err := NewTreeJSONEncoder(&bytes.Buffer{}).MarshalText(g)
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	var got treeJSONGrammar
	if err := json.Unmarshal(text, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if got.Program != "prog" {
		t.Errorf("program = %q", got.Program)
	}
	if got.Root.Kind != "Alternation" || len(got.Root.Children) != 2 {
		t.Fatalf("root = %+v", got.Root)
	}
	first := got.Root.Children[0]
	if first.Kind != "Sequence" || first.Children[0].Kind != "Optional" || first.Children[1].Text != "<file>" {
		t.Errorf("first pattern = %+v", first)
	}
	if first.Span == nil || first.Span.Start != (treeJSONPosition{Line: 1, Column: 8}) {
		t.Errorf("first span = %+v", first.Span)
	}
	want := []treeJSONError{{Position: treeJSONPosition{Line: 2, Column: 8}, Message: `unclosed "("`}}
	if diff := cmp.Diff(want, got.Errors); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
	if len(got.Options) != 1 || got.Options[0].Short != "-v" || got.Options[0].Arity != "flag" {
		t.Errorf("options = %+v", got.Options)
	}
}
