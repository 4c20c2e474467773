// Package usage turns docopt usage texts into grammars.
//
// A usage text has a "Usage:" section listing command-line patterns, one per
// program-name occurrence, and any number of "Options:" sections describing
// flags:
//
//	Usage:
//	  naval_fate ship new <name>...
//	  naval_fate ship <name> move <x> <y> [--speed=<kn>]
//	  naval_fate -h | --help
//
//	Options:
//	  -h --help     Show this screen.
//	  --speed=<kn>  Speed in knots [default: 10].
//
// Build never stops at the first problem. It returns a best-effort Grammar
// together with every Error found, each carrying the Range of the offending
// text. A built Grammar is immutable and safe for concurrent use.
package usage

import "strings"

// Grammar is a built usage text: a pattern tree stored as a node arena, the
// option registry, and the errors found while building.
type Grammar struct {
	program string
	nodes   []Node
	root    NodeID
	options *Registry
	errors  []Error
	src     string
	lines   *LineIndex
}

// Build parses doc into a Grammar. The returned errors are also available
// from Grammar.Errors.
func Build(doc string) (*Grammar, []Error) {
	g := &Grammar{
		src:   doc,
		lines: NewLineIndex(doc),
	}
	tokens := Tokenize(doc)
	sections := splitSections(tokens)

	var optionLines []optionLine
	var usageSections []section
	for _, s := range sections {
		switch s.kind {
		case SectionOptions:
			optionLines = append(optionLines, groupLines(doc, s.tokens)...)
		case SectionUsage:
			usageSections = append(usageSections, s)
		}
	}

	reg, errs := buildRegistry(doc, optionLines)
	g.options = reg
	g.errors = append(g.errors, errs...)

	implicit := true
	for _, s := range sections {
		if s.kind == SectionOptions {
			implicit = false
		}
	}

	root := g.add(Node{Kind: KindAlternation})
	g.root = root

	switch len(usageSections) {
	case 0:
		g.errorf(Range{}, `"usage:" section not found`)
	default:
		for _, extra := range usageSections[1:] {
			g.errorf(extra.header.Range, `more than one "usage:" section`)
		}
		g.parseUsage(usageSections[0], implicit)
	}

	return g, g.Errors()
}

// Program returns the program name of the usage patterns.
func (g *Grammar) Program() string {
	return g.program
}

func (g *Grammar) Root() NodeID {
	return g.root
}

func (g *Grammar) Node(id NodeID) Node {
	return g.nodes[id]
}

// Usages returns the top-level patterns, one per usage line.
func (g *Grammar) Usages() []NodeID {
	return append([]NodeID(nil), g.nodes[g.root].Children...)
}

func (g *Grammar) Options() *Registry {
	return g.options
}

func (g *Grammar) Errors() []Error {
	return append([]Error(nil), g.errors...)
}

func (g *Grammar) Source() string {
	return g.src
}

// Text returns the source text covered by r.
func (g *Grammar) Text(r Range) string {
	end, err := r.End()
	if err != nil || r.Start < 0 || end > len(g.src) {
		return ""
	}
	return g.src[r.Start:end]
}

// Position resolves a byte offset in the source to a line and column.
func (g *Grammar) Position(offset int) Position {
	return g.lines.Position(offset)
}

// Walk visits id and its descendants depth-first in declaration order.
// Returning false from fn skips the node's children.
func (g *Grammar) Walk(id NodeID, fn func(NodeID, Node) bool) {
	n := g.nodes[id]
	if !fn(id, n) {
		return
	}
	for _, child := range n.Children {
		g.Walk(child, fn)
	}
}

// Variable is a name a match can bind, in the order it is first declared.
type Variable struct {
	Name   string
	Kind   NodeKind
	Option *OptionSpec
}

// Variables lists every positional and command in the usage patterns
// followed by every registered option.
func (g *Grammar) Variables() []Variable {
	var out []Variable
	seen := make(map[string]bool)
	g.Walk(g.root, func(_ NodeID, n Node) bool {
		switch n.Kind {
		case KindCommand, KindPositional:
			if !seen[n.Text] {
				seen[n.Text] = true
				out = append(out, Variable{Name: n.Text, Kind: n.Kind})
			}
		}
		return true
	})
	for _, spec := range g.options.specs {
		name := spec.Name()
		if !seen[name] {
			seen[name] = true
			out = append(out, Variable{Name: name, Kind: KindOption, Option: spec})
		}
	}
	return out
}

func (g *Grammar) add(n Node) NodeID {
	g.nodes = append(g.nodes, n)
	return NodeID(len(g.nodes) - 1)
}

func (g *Grammar) errorf(r Range, text string) {
	g.errors = append(g.errors, Error{Range: r, Text: text})
}

type section struct {
	kind   string
	header Token
	tokens []Token
}

// splitSections groups tokens under their section headers. A usage section
// ends at the first blank line; an options section runs to the next header.
func splitSections(tokens []Token) []section {
	var out []section
	var cur *section
	flush := func() {
		if cur != nil {
			out = append(out, *cur)
			cur = nil
		}
	}
	for i, tok := range tokens {
		switch tok.Kind {
		case TokenEOF:
			flush()
			return out
		case TokenSection:
			flush()
			cur = &section{kind: tok.Literal, header: tok}
			continue
		case TokenNewline:
			if cur != nil && cur.kind == SectionUsage && i > 0 && tokens[i-1].Kind == TokenNewline {
				flush()
				continue
			}
		}
		if cur != nil {
			cur.tokens = append(cur.tokens, tok)
		}
	}
	flush()
	return out
}

// groupLines splits section tokens into physical lines. Blank lines are
// kept as empty entries so description continuations stop at them.
func groupLines(src string, tokens []Token) []optionLine {
	var out []optionLine
	var cur optionLine
	open := false
	for _, tok := range tokens {
		if tok.Kind == TokenNewline {
			out = append(out, cur)
			cur, open = optionLine{}, false
			continue
		}
		if !open {
			open = true
			cur.start = tok.Range.Start
			rest := src[cur.start:]
			if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
				rest = rest[:nl]
			}
			cur.text = strings.TrimRight(rest, "\r")
		}
		cur.tokens = append(cur.tokens, tok)
	}
	if open {
		out = append(out, cur)
	}
	return out
}
