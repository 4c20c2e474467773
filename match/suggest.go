package match

import "github.com/dhamidi/docopt/usage"

// placeholder stands in for a value the user has yet to type. It cannot
// collide with a command literal or an option.
const placeholder = "\x00"

// Suggestion is a token that could be typed next.
type Suggestion struct {
	Text        string
	Kind        usage.NodeKind
	Description string
}

// Suggest returns the tokens that would be accepted if appended to argv:
// command literals, option aliases and positional names, in the order the
// grammar declares them. Only the usage patterns that take the most of argv
// contribute.
func Suggest(g *usage.Grammar, argv []string, flags Flags) []Suggestion {
	flags &^= GenerateEmptyArgs
	base := newMatcher(g, argv, flags)

	var candidates []usage.NodeID
	before := make(map[usage.NodeID]*state)
	most := -1
	for _, id := range g.Usages() {
		s := base.single(id)
		before[id] = s
		switch {
		case s.count > most:
			most = s.count
			candidates = []usage.NodeID{id}
		case s.count == most:
			candidates = append(candidates, id)
		}
	}

	var out []Suggestion
	seen := make(map[string]bool)
	for _, id := range candidates {
		s0 := before[id]
		try := func(s Suggestion, name string, extra ...string) {
			if seen[s.Text] {
				return
			}
			extended := append(append([]string(nil), argv...), extra...)
			s1 := newMatcher(g, extended, flags).single(id)
			if s1.count <= s0.count || bindings(s1, name) <= bindings(s0, name) {
				return
			}
			seen[s.Text] = true
			out = append(out, s)
		}
		tryOption := func(spec *usage.OptionSpec) {
			alias := spec.Name()
			extra := []string{alias}
			if spec.Arity == usage.TakesValue {
				extra = append(extra, placeholder)
			}
			try(Suggestion{Text: alias, Kind: usage.KindOption, Description: spec.Description}, alias, extra...)
		}

		g.Walk(id, func(_ usage.NodeID, n usage.Node) bool {
			switch n.Kind {
			case usage.KindCommand:
				try(Suggestion{Text: n.Text, Kind: usage.KindCommand}, n.Text, n.Text)
			case usage.KindPositional:
				try(Suggestion{Text: n.Text, Kind: usage.KindPositional}, n.Text, placeholder)
			case usage.KindOption:
				tryOption(g.Options().Spec(n.Option))
			case usage.KindOptionsShortcut:
				for _, opt := range n.Options {
					tryOption(g.Options().Spec(opt))
				}
			}
			return true
		})
	}
	return out
}

func bindings(s *state, name string) int {
	n := 0
	for _, b := range s.bindings {
		if b.name == name {
			n++
		}
	}
	return n
}
