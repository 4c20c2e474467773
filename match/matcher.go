// Package match matches argument vectors against usage grammars.
//
// Matching is a deterministic backtracking search over the pattern tree.
// Beyond bound variables it classifies every argv token as valid, invalid,
// or a valid prefix of something longer, which is what shell completion and
// syntax highlighting need.
package match

import (
	"sort"
	"strings"

	"github.com/dhamidi/docopt/usage"
)

// maxStates bounds the states one node hands to its parent. Preferred
// choices come first, so the ones dropped are the least likely to win.
const maxStates = 1024

type binding struct {
	name     string
	value    string
	hasValue bool
}

// state is one way of assigning argv to the pattern so far. States are
// never modified once another node can see them; consuming clones.
type state struct {
	consumed []bool
	count    int
	bindings []binding
}

func newState(n int) *state {
	return &state{consumed: make([]bool, n)}
}

func (s *state) clone() *state {
	return &state{
		consumed: append([]bool(nil), s.consumed...),
		count:    s.count,
		bindings: append([]binding(nil), s.bindings...),
	}
}

func (s *state) key() string {
	var b strings.Builder
	for _, c := range s.consumed {
		if c {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	for _, x := range s.bindings {
		b.WriteByte(0)
		b.WriteString(x.name)
		b.WriteByte(0)
		if x.hasValue {
			b.WriteByte('=')
			b.WriteString(x.value)
		}
	}
	return b.String()
}

type matcher struct {
	g     *usage.Grammar
	units []unit
	// hints marks value units that are a strict prefix of a command
	// literal tried at their position. Hints survive backtracking.
	hints map[int]bool
	// furthest is the state that consumed the most while matching the
	// current usage pattern, whether or not it led anywhere.
	furthest *state
}

// Match matches argv against g. It never fails: a mismatch shows up as
// StatusInvalid tokens and an incomplete Result.
func Match(g *usage.Grammar, argv []string, flags Flags) *Result {
	m := newMatcher(g, argv, flags)
	best := outcome{state: newState(len(m.units)), index: -1}
	for i, id := range g.Usages() {
		o := m.line(id)
		o.index = i
		if i == 0 || m.better(o, best) {
			best = o
		}
	}

	res := &Result{
		Status:   make([]Status, len(argv)),
		Args:     make(map[string]Argument),
		Usage:    best.index,
		Complete: best.ok && best.state.count == len(m.units),
	}
	for _, b := range best.state.bindings {
		arg, seen := res.Args[b.name]
		if !seen {
			arg.Values = []string{}
		}
		arg.Count++
		if b.hasValue {
			arg.Values = append(arg.Values, b.value)
		}
		res.Args[b.name] = arg
	}
	m.classify(best, res)
	if flags&GenerateEmptyArgs != 0 {
		addEmptyArgs(g, res)
	}
	return res
}

func newMatcher(g *usage.Grammar, argv []string, flags Flags) *matcher {
	return &matcher{
		g:     g,
		units: splitArgv(g.Options(), argv, flags),
		hints: make(map[int]bool),
	}
}

type outcome struct {
	state *state
	ok    bool
	index int
}

// line matches one usage pattern. Of the states that match the whole
// pattern the best one wins; when there are none the pattern fails with
// the state that got furthest.
func (m *matcher) line(id usage.NodeID) outcome {
	start := newState(len(m.units))
	m.furthest = start
	best := outcome{state: start}
	for _, s := range m.match(id, []*state{start}) {
		o := outcome{state: s, ok: true}
		if !best.ok || m.better(o, best) {
			best = o
		}
	}
	if !best.ok {
		best.state = m.furthest
	}
	return best
}

// single matches one usage pattern on its own.
func (m *matcher) single(id usage.NodeID) *state {
	return m.line(id).state
}

// better reports whether a beats b: consuming all of argv successfully
// first, then success, then consuming more. Ties keep b, the earlier one.
func (m *matcher) better(a, b outcome) bool {
	ac := a.ok && a.state.count == len(m.units)
	bc := b.ok && b.state.count == len(m.units)
	if ac != bc {
		return ac
	}
	if a.ok != b.ok {
		return a.ok
	}
	return a.state.count > b.state.count
}

func (m *matcher) classify(best outcome, res *Result) {
	n := len(res.Status)
	total := make([]int, n)
	used := make([]int, n)
	hinted := make([]bool, n)
	referenced := referencedOptions(m.g)

	for i, u := range m.units {
		hint := m.hints[i] || u.kind == unitIncomplete && referenced[u.option]
		for _, id := range u.prefixOf {
			hint = hint || referenced[id]
		}
		for _, t := range u.tokens {
			total[t]++
			if best.state.consumed[i] {
				used[t]++
			}
			if hint {
				hinted[t] = true
			}
		}
	}
	for t := 0; t < n; t++ {
		switch {
		case best.ok && total[t] > 0 && used[t] == total[t]:
			res.Status[t] = StatusValid
		case hinted[t] && (used[t] == 0 || !best.ok):
			res.Status[t] = StatusValidPrefix
		default:
			res.Status[t] = StatusInvalid
		}
		if used[t] == 0 {
			res.Unused = append(res.Unused, t)
		}
	}
}

// referencedOptions returns the options some pattern can match, either
// explicitly or through an [options] shortcut.
func referencedOptions(g *usage.Grammar) map[int]bool {
	out := make(map[int]bool)
	g.Walk(g.Root(), func(_ usage.NodeID, n usage.Node) bool {
		switch n.Kind {
		case usage.KindOption:
			out[n.Option] = true
		case usage.KindOptionsShortcut:
			for _, id := range n.Options {
				out[id] = true
			}
		}
		return true
	})
	return out
}

func addEmptyArgs(g *usage.Grammar, res *Result) {
	for _, v := range g.Variables() {
		if _, ok := res.Args[v.Name]; ok {
			continue
		}
		arg := Argument{Values: []string{}}
		if v.Option != nil && v.Option.HasDefault {
			arg.Values = []string{v.Option.Default}
		}
		res.Args[v.Name] = arg
	}
}

// match returns every state that results from matching id starting from
// any of in, preferred ones first.
func (m *matcher) match(id usage.NodeID, in []*state) []*state {
	n := m.g.Node(id)
	switch n.Kind {
	case usage.KindSequence, usage.KindRequired:
		out := in
		for _, child := range n.Children {
			if out = m.match(child, out); len(out) == 0 {
				return nil
			}
		}
		return out
	case usage.KindOptional:
		out := in
		for _, child := range n.Children {
			out = m.optional(child, out)
		}
		return out
	case usage.KindOptionsShortcut:
		return m.each(in, func(s *state) *state {
			for _, opt := range n.Options {
				if next := m.option(opt, s); next != nil {
					s = next
				}
			}
			return s
		})
	case usage.KindAlternation:
		return m.alternatives(n.Children, in)
	case usage.KindRepeated:
		return m.repeated(n.Children[0], in)
	case usage.KindCommand:
		return m.each(in, func(s *state) *state { return m.command(n.Text, s) })
	case usage.KindPositional:
		return m.each(in, func(s *state) *state { return m.positional(n.Text, s) })
	case usage.KindOption:
		return m.each(in, func(s *state) *state { return m.option(n.Option, s) })
	}
	return nil
}

func (m *matcher) each(in []*state, f func(*state) *state) []*state {
	var out []*state
	for _, s := range in {
		if next := f(s); next != nil {
			out = append(out, next)
		}
	}
	return distinct(out)
}

// optional yields the states where child matched, then the state where it
// was skipped.
func (m *matcher) optional(child usage.NodeID, in []*state) []*state {
	var out []*state
	for _, s := range in {
		out = append(out, m.match(child, []*state{s})...)
		out = append(out, s)
	}
	return distinct(out)
}

// alternatives runs every branch from each state. Branches consuming more
// come first, then declaration order.
func (m *matcher) alternatives(branches []usage.NodeID, in []*state) []*state {
	var out []*state
	for _, s := range in {
		var results []*state
		for _, branch := range branches {
			results = append(results, m.match(branch, []*state{s})...)
		}
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].count > results[j].count
		})
		out = append(out, results...)
	}
	return distinct(out)
}

// repeated matches child one or more times and yields the state after
// every number of iterations, most first. Iterations after the first must
// consume something.
func (m *matcher) repeated(child usage.NodeID, in []*state) []*state {
	var levels [][]*state
	frontier := in
	for first := true; len(frontier) > 0; first = false {
		var next []*state
		for _, s := range frontier {
			for _, r := range m.match(child, []*state{s}) {
				if first || r.count > s.count {
					next = append(next, r)
				}
			}
		}
		next = distinct(next)
		if len(next) > 0 {
			levels = append(levels, next)
		}
		frontier = next
	}
	var out []*state
	for i := len(levels) - 1; i >= 0; i-- {
		out = append(out, levels[i]...)
	}
	return distinct(out)
}

func distinct(states []*state) []*state {
	if len(states) < 2 {
		return states
	}
	seen := make(map[string]bool, len(states))
	out := states[:0:0]
	for _, s := range states {
		k := s.key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, s)
		if len(out) == maxStates {
			break
		}
	}
	return out
}

func (m *matcher) consume(s *state, i int, b binding) *state {
	next := s.clone()
	next.consumed[i] = true
	next.count++
	next.bindings = append(next.bindings, b)
	if next.count > m.furthest.count {
		m.furthest = next
	}
	return next
}

func (m *matcher) firstValue(s *state) int {
	for i, u := range m.units {
		if !s.consumed[i] && u.kind == unitValue {
			return i
		}
	}
	return -1
}

func (m *matcher) command(literal string, s *state) *state {
	if strings.HasPrefix(literal, "-") && literal != "-" && literal != "--" {
		// Unknown options written in a pattern match their exact spelling.
		for i, u := range m.units {
			if !s.consumed[i] && u.kind == unitUnknown && u.text == literal {
				return m.consume(s, i, binding{name: literal})
			}
		}
		return nil
	}
	i := m.firstValue(s)
	if i < 0 {
		return nil
	}
	text := m.units[i].text
	if text == literal {
		return m.consume(s, i, binding{name: literal})
	}
	if text != "" && strings.HasPrefix(literal, text) {
		m.hints[i] = true
	}
	return nil
}

func (m *matcher) positional(name string, s *state) *state {
	i := m.firstValue(s)
	if i < 0 {
		return nil
	}
	return m.consume(s, i, binding{name: name, value: m.units[i].text, hasValue: true})
}

func (m *matcher) option(id int, s *state) *state {
	for i, u := range m.units {
		if !s.consumed[i] && u.kind == unitOption && u.option == id {
			spec := m.g.Options().Spec(id)
			return m.consume(s, i, binding{name: spec.Name(), value: u.value, hasValue: u.hasValue})
		}
	}
	return nil
}
