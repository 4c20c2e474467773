package lsp

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const usageDoc = `Usage: prog [options] <file>
  prog --nope

Options:
  -q --quiet    Say less.
  --level=<n>   Log level [default: 2].
`

func TestWorkspace(t *testing.T) {
	ws := NewWorkspace()
	doc := ws.Update("file:///a.usage", usageDoc)
	if len(doc.Errors) != 1 || doc.Errors[0].Text != "unknown option --nope" {
		t.Fatalf("errors = %v", doc.Errors)
	}
	if ws.Get("file:///a.usage") != doc {
		t.Error("Get did not return the updated document")
	}

	doc = ws.Update("file:///a.usage", "Usage: prog\n")
	if len(doc.Errors) != 0 {
		t.Errorf("errors after fix = %v", doc.Errors)
	}
	if ws.Len() != 1 {
		t.Errorf("Len = %d, want 1", ws.Len())
	}

	ws.Close("file:///a.usage")
	if ws.Get("file:///a.usage") != nil || ws.Len() != 0 {
		t.Error("document still open after Close")
	}
}

func TestDiagnostics(t *testing.T) {
	doc := NewWorkspace().Update("file:///a.usage", usageDoc)
	got := Diagnostics(doc)
	if len(got) != 1 {
		t.Fatalf("diagnostics = %+v", got)
	}
	want := protocol.Range{
		Start: protocol.Position{Line: 1, Character: 7},
		End:   protocol.Position{Line: 1, Character: 13},
	}
	if diff := cmp.Diff(want, got[0].Range); diff != "" {
		t.Errorf("range mismatch (-want +got):\n%s", diff)
	}
	if got[0].Message != "unknown option --nope" {
		t.Errorf("message = %q", got[0].Message)
	}
}

func TestOptionAt(t *testing.T) {
	doc := NewWorkspace().Update("file:///a.usage", "Usage: prog --level=<n> -q\n\nOptions:\n  -q --quiet    Say less.\n  --level=<n>   Log level.\n")
	tests := []struct {
		name   string
		offset int
		want   string
	}{
		{"use in pattern", 14, "--level"},
		{"short use", 24, "--quiet"},
		{"declaration", 41, "--quiet"},
		{"program name", 8, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := doc.OptionAt(tt.offset)
			got := ""
			if spec != nil {
				got = spec.Name()
			}
			if got != tt.want {
				t.Errorf("OptionAt(%d) = %q, want %q", tt.offset, got, tt.want)
			}
		})
	}
}

func TestCompletions(t *testing.T) {
	doc := NewWorkspace().Update("file:///a.usage", usageDoc)
	var labels []string
	for _, item := range Completions(doc, "--") {
		labels = append(labels, item.Label)
	}
	if diff := cmp.Diff([]string{"--level", "--quiet"}, labels); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
	if got := Completions(doc, "prog"); got != nil {
		t.Errorf("completions for a word = %v", got)
	}
}

func TestWordAt(t *testing.T) {
	doc := &Document{Content: "prog [--qu"}
	word, start := doc.WordAt(len(doc.Content))
	if word != "--qu" || start != 6 {
		t.Errorf("WordAt = %q, %d", word, start)
	}
}

func TestPositionConversion(t *testing.T) {
	content := "ab\né𝄞x\n"
	tests := []struct {
		offset int
		pos    protocol.Position
	}{
		{0, protocol.Position{Line: 0, Character: 0}},
		{3, protocol.Position{Line: 1, Character: 0}},
		{5, protocol.Position{Line: 1, Character: 1}},
		{9, protocol.Position{Line: 1, Character: 3}},
		{11, protocol.Position{Line: 2, Character: 0}},
	}

	for _, tt := range tests {
		if got := toProtocolPosition(content, tt.offset); got != tt.pos {
			t.Errorf("toProtocolPosition(%d) = %+v, want %+v", tt.offset, got, tt.pos)
		}
		if got := toOffset(content, tt.pos); got != tt.offset {
			t.Errorf("toOffset(%+v) = %d, want %d", tt.pos, got, tt.offset)
		}
	}
}

func TestPositionInvalidUTF8(t *testing.T) {
	// A stray byte counts as one replacement character.
	content := "a\xffb"
	for offset := 0; offset <= len(content); offset++ {
		pos := toProtocolPosition(content, offset)
		if pos.Line != 0 || int(pos.Character) != offset {
			t.Errorf("toProtocolPosition(%d) = %+v", offset, pos)
		}
		if got := toOffset(content, pos); got != offset {
			t.Errorf("toOffset(%+v) = %d, want %d", pos, got, offset)
		}
	}
}

func TestDescribeOption(t *testing.T) {
	doc := NewWorkspace().Update("file:///a.usage", usageDoc)
	spec, _ := doc.Grammar.Options().Lookup("--level")
	want := "`--level` takes a value (default `2`)\n\nLog level [default: 2]."
	if got := describeOption(spec); got != want {
		t.Errorf("describeOption = %q, want %q", got, want)
	}
}
