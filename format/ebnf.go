package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/docopt/usage"
)

// StartProduction is the production every exported grammar starts from.
const StartProduction = "Usage"

// EBNFEncoder renders a grammar in the EBNF dialect of golang.org/x/exp/ebnf.
// Options are written where the pattern names them; that they may appear
// anywhere on the command line is not expressible in EBNF.
type EBNFEncoder struct {
	w io.Writer
}

func NewEBNFEncoder(w io.Writer) *EBNFEncoder {
	return &EBNFEncoder{w: w}
}

func (e *EBNFEncoder) Encode(g *usage.Grammar) error {
	text, err := e.MarshalText(g)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *EBNFEncoder) MarshalText(g *usage.Grammar) ([]byte, error) {
	r := &ebnfRenderer{
		g:     g,
		names: make(map[string]string),
		taken: map[string]bool{StartProduction: true},
	}
	r.render()
	return []byte(r.sb.String()), nil
}

// VerifyEBNF parses text and checks that every production is defined and
// reachable from StartProduction.
func VerifyEBNF(filename string, text string) error {
	grammar, err := ebnf.Parse(filename, strings.NewReader(text))
	if err != nil {
		return fmt.Errorf("parse ebnf: %w", err)
	}
	if err := ebnf.Verify(grammar, StartProduction); err != nil {
		return fmt.Errorf("verify ebnf: %w", err)
	}
	return nil
}

type production struct {
	name string
	body string
}

type ebnfRenderer struct {
	g     *usage.Grammar
	sb    strings.Builder
	prods []production
	// names maps a variable key to its production name.
	names map[string]string
	taken map[string]bool
	value bool
}

func (r *ebnfRenderer) render() {
	var patterns []string
	for i, id := range r.g.Usages() {
		name := r.unique(fmt.Sprintf("Pattern%d", i+1))
		body := r.expr(id)
		r.prods = append(r.prods, production{name: name, body: body})
		patterns = append(patterns, name)
	}
	r.writeProduction(StartProduction, strings.Join(patterns, " | "))
	for _, p := range r.prods {
		r.writeProduction(p.name, p.body)
	}
	if r.value {
		r.writeProduction("value", `char { char }`)
		r.writeProduction("char", `"!" … "~"`)
	}
}

func (r *ebnfRenderer) writeProduction(name, body string) {
	if body == "" {
		fmt.Fprintf(&r.sb, "%s = .\n", name)
		return
	}
	fmt.Fprintf(&r.sb, "%s = %s .\n", name, body)
}

func (r *ebnfRenderer) unique(base string) string {
	name := base
	for i := 2; r.taken[name]; i++ {
		name = fmt.Sprintf("%s_%d", base, i)
	}
	r.taken[name] = true
	return name
}

// ident turns a variable name like "<ship-name>" into "Ship_name".
func ident(prefix, name string) string {
	var sb strings.Builder
	sep := false
	for _, ch := range name {
		switch {
		case ch < unicode.MaxASCII && (unicode.IsLetter(ch) || unicode.IsDigit(ch)):
			if sep && sb.Len() > 0 {
				sb.WriteByte('_')
			}
			sep = false
			sb.WriteRune(ch)
		default:
			sep = true
		}
	}
	s := sb.String()
	if s == "" || !unicode.IsLetter(rune(s[0])) {
		s = prefix + s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (r *ebnfRenderer) named(key, base string, body func() string) string {
	if name, ok := r.names[key]; ok {
		return name
	}
	name := r.unique(base)
	r.names[key] = name
	r.prods = append(r.prods, production{name: name, body: body()})
	return name
}

func (r *ebnfRenderer) option(id int) string {
	spec := r.g.Options().Spec(id)
	return r.named("option:"+spec.Name(), ident("Opt_", "Opt_"+spec.Name()), func() string {
		var aliases []string
		for _, a := range spec.Aliases() {
			aliases = append(aliases, strconv.Quote(a))
		}
		body := aliases[0]
		if len(aliases) > 1 {
			body = "( " + strings.Join(aliases, " | ") + " )"
		}
		if spec.Arity == usage.TakesValue {
			r.value = true
			body += " value"
		}
		return body
	})
}

func (r *ebnfRenderer) seq(ids []usage.NodeID) string {
	var parts []string
	for _, id := range ids {
		if s := r.expr(id); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

func (r *ebnfRenderer) expr(id usage.NodeID) string {
	n := r.g.Node(id)
	switch n.Kind {
	case usage.KindCommand:
		return strconv.Quote(n.Text)
	case usage.KindPositional:
		return r.named("positional:"+n.Text, ident("Arg_", n.Text), func() string {
			r.value = true
			return "value"
		})
	case usage.KindOption:
		return r.option(n.Option)
	case usage.KindSequence:
		return r.seq(n.Children)
	case usage.KindRequired:
		if body := r.seq(n.Children); body != "" {
			return "( " + body + " )"
		}
	case usage.KindOptional:
		var parts []string
		for _, child := range n.Children {
			if s := r.expr(child); s != "" {
				parts = append(parts, "[ "+s+" ]")
			}
		}
		return strings.Join(parts, " ")
	case usage.KindAlternation:
		var branches []string
		for _, child := range n.Children {
			if s := r.expr(child); s != "" {
				branches = append(branches, s)
			}
		}
		switch len(branches) {
		case 0:
			return ""
		case 1:
			return branches[0]
		}
		return "( " + strings.Join(branches, " | ") + " )"
	case usage.KindRepeated:
		if s := r.expr(n.Children[0]); s != "" {
			return s + " { " + s + " }"
		}
	case usage.KindOptionsShortcut:
		if len(n.Options) == 0 {
			return ""
		}
		name := r.unique("Options")
		var alts []string
		for _, opt := range n.Options {
			alts = append(alts, r.option(opt))
		}
		r.prods = append(r.prods, production{name: name, body: "{ " + strings.Join(alts, " | ") + " }"})
		return name
	}
	return ""
}
