package usage

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestBuildRegistry(t *testing.T) {
	doc := `Usage: prog [options]

Options:
  -s, --speed=<kn>  Speed in knots [default: 10].
  -v --verbose      Say more.
                    Really.
  -o FILE           Output file.
  --level LEVEL     Log level [Default:  info].
`
	g, errs := Build(doc)
	if len(errs) != 0 {
		t.Fatalf("Build errors: %v", errs)
	}

	want := []*OptionSpec{
		{ID: 0, Short: "-s", Long: "--speed", Arity: TakesValue, Default: "10", HasDefault: true, Description: "Speed in knots [default: 10]."},
		{ID: 1, Short: "-v", Long: "--verbose", Arity: Flag, Description: "Say more. Really."},
		{ID: 2, Short: "-o", Arity: TakesValue, Description: "Output file."},
		{ID: 3, Long: "--level", Arity: TakesValue, Default: "info", HasDefault: true, Description: "Log level [Default:  info]."},
	}
	got := g.Options().Specs()
	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(OptionSpec{}, "Range")); diff != "" {
		t.Errorf("specs mismatch (-want +got):\n%s", diff)
	}

	for _, alias := range []string{"-s", "--speed"} {
		spec, ok := g.Options().Lookup(alias)
		if !ok || spec.ID != 0 {
			t.Errorf("Lookup(%q) = %v, %v", alias, spec, ok)
		}
	}
	if _, ok := g.Options().Lookup("--output"); ok {
		t.Error("Lookup(--output) found an undeclared alias")
	}
}

func TestBuildRegistryNonASCIIDefault(t *testing.T) {
	doc := "Usage: prog [options]\n\nOptions:\n  --city=<c>  Straße İİ [default: abc]\n  --broken=<b>  ȺȺ[default:\n"
	g, errs := Build(doc)
	if len(errs) != 0 {
		t.Fatalf("Build errors: %v", errs)
	}
	city, ok := g.Options().Lookup("--city")
	if !ok || !city.HasDefault || city.Default != "abc" {
		t.Errorf("--city = %+v, want default abc", city)
	}
	broken, ok := g.Options().Lookup("--broken")
	if !ok || broken.HasDefault {
		t.Errorf("--broken = %+v, want no default", broken)
	}
}

func TestBuildRegistryArityConflict(t *testing.T) {
	doc := `Usage: prog [options]

Options:
  -v       A flag.
  -v FILE  A value.
`
	g, errs := Build(doc)
	if len(errs) != 1 {
		t.Fatalf("Build errors = %v, want exactly one", errs)
	}
	if want := "option -v redeclared as value, previously declared as flag"; errs[0].Text != want {
		t.Errorf("error = %q, want %q", errs[0].Text, want)
	}
	if got := g.Text(errs[0].Range); got != "-v FILE  A value." {
		t.Errorf("error covers %q", got)
	}

	spec, ok := g.Options().Lookup("-v")
	if !ok {
		t.Fatal("-v not registered")
	}
	if spec.Arity != Flag || spec.Description != "A flag." {
		t.Errorf("spec = %+v, want the first declaration", spec)
	}
	if g.Options().Len() != 1 {
		t.Errorf("Len = %d, want 1", g.Options().Len())
	}
}

func TestBuildRegistryMergesAliases(t *testing.T) {
	doc := `Usage: prog [options]

Options:
  --file=<f>     The file.
  -f --file=<f>  The file again [default: a.txt].
`
	g, errs := Build(doc)
	if len(errs) != 0 {
		t.Fatalf("Build errors: %v", errs)
	}
	if g.Options().Len() != 1 {
		t.Fatalf("Len = %d, want 1", g.Options().Len())
	}
	spec, _ := g.Options().Lookup("-f")
	if spec == nil || spec.Long != "--file" || spec.Default != "a.txt" || spec.Description != "The file." {
		t.Errorf("merged spec = %+v", spec)
	}
}

func TestBuildRegistryErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"bundled short", "-ab  Bad.", "short option -ab must be a single character"},
		{"two shorts", "-a -b  Bad.", "more than one short alias: -a and -b"},
		{"two longs", "--aa --bb  Bad.", "more than one long alias: --aa and --bb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := Build("Usage: prog\n\nOptions:\n  " + tt.line + "\n")
			var texts []string
			for _, e := range errs {
				texts = append(texts, e.Text)
			}
			if len(errs) != 1 || errs[0].Text != tt.want {
				t.Errorf("errors = %q, want [%q]", texts, tt.want)
			}
		})
	}
}

func TestLongPrefixMatches(t *testing.T) {
	doc := `Usage: prog [options]

Options:
  --verbose  Say more.
  --version  Show version.
  --quiet    Say less.
`
	g, _ := Build(doc)
	var names []string
	for _, spec := range g.Options().LongPrefixMatches("--ver") {
		names = append(names, spec.Long)
	}
	if got := strings.Join(names, ","); got != "--verbose,--version" {
		t.Errorf("LongPrefixMatches(--ver) = %s", got)
	}
	if got := g.Options().LongPrefixMatches("--quiet"); len(got) != 0 {
		t.Errorf("exact name is not a strict prefix, got %v", got)
	}
	if got := strings.Join(g.Options().Aliases(), ","); got != "--quiet,--verbose,--version" {
		t.Errorf("Aliases = %s", got)
	}
}

func TestFindDefault(t *testing.T) {
	tests := []struct {
		desc string
		want string
		ok   bool
	}{
		{"Speed [default: 10].", "10", true},
		{"Speed [DEFAULT: fast]", "fast", true},
		{"Path [default: ./a b]", "./a b", true},
		{"No default here.", "", false},
		{"Broken [default: 10", "", false},
		{"Straße İİ [default: abc]", "abc", true},
		{"ȺȺ[default:", "", false},
		{"ȺȺ [Default: x]", "x", true},
	}
	for _, tt := range tests {
		got, ok := findDefault(tt.desc)
		if got != tt.want || ok != tt.ok {
			t.Errorf("findDefault(%q) = %q, %v; want %q, %v", tt.desc, got, ok, tt.want, tt.ok)
		}
	}
}
