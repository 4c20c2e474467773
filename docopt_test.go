package docopt

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dhamidi/docopt/usage"
)

const doc = `Usage: prog [-v...] <file>

Options:
  -v --verbose  Say more.
  --level=N     Log level [default: 2].
`

func TestParse(t *testing.T) {
	args, unused, err := Parse(doc, []string{"-vv", "a.txt", "b.txt"}, GenerateEmptyArgs)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := map[string]Argument{
		"--verbose": {Count: 2, Values: []string{}},
		"<file>":    {Count: 1, Values: []string{"a.txt"}},
		"--level":   {Count: 0, Values: []string{"2"}},
	}
	if diff := cmp.Diff(want, args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{2}, unused); diff != "" {
		t.Errorf("unused mismatch (-want +got):\n%s", diff)
	}
}

func TestParseBuildErrors(t *testing.T) {
	args, _, err := Parse("Usage: prog [a\n  prog )\n", nil, 0)
	if args != nil {
		t.Errorf("args = %v, want nil", args)
	}
	var list usage.ErrorList
	if !errors.As(err, &list) {
		t.Fatalf("err = %v, want an ErrorList", err)
	}
	if len(list) != 2 {
		t.Errorf("errors = %v, want two", list)
	}
}

func TestBuildAndMatch(t *testing.T) {
	g, errs := Build(doc)
	if len(errs) != 0 {
		t.Fatalf("Build errors: %v", errs)
	}
	res := Match(g, []string{"--verb"}, ResolveUnambiguousPrefixes)
	// --verb resolves to --verbose, but the line fails without <file>.
	if diff := cmp.Diff([]Status{StatusInvalid}, res.Status); diff != "" {
		t.Errorf("status mismatch (-want +got):\n%s", diff)
	}
	if res.Complete {
		t.Error("result complete without <file>")
	}
	if got := res.Args["--verbose"].Count; got != 1 {
		t.Errorf("--verbose count = %d, want 1", got)
	}
}
