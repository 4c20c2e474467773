package usage

import (
	"fmt"
	"unicode/utf8"
)

type patternParser struct {
	g         *Grammar
	tokens    []Token
	pos       int
	implicit  bool
	explicit  map[int]bool
	shortcuts []NodeID
	// closers holds the closing token of every group being parsed,
	// innermost last.
	closers []TokenKind
}

// parseUsage splits the usage section into patterns at each occurrence of
// the program name and parses every pattern into a branch of the root.
func (g *Grammar) parseUsage(s section, implicit bool) {
	first := -1
	for i, tok := range s.tokens {
		if tok.Kind != TokenNewline {
			first = i
			break
		}
	}
	if first < 0 {
		g.errorf(s.header.Range, "no usage patterns")
		return
	}
	if s.tokens[first].Kind != TokenWord {
		g.errorf(s.tokens[first].Range, fmt.Sprintf("expected program name, found %q", s.tokens[first].Literal))
		return
	}
	g.program = s.tokens[first].Literal

	type pattern struct {
		program Token
		tokens  []Token
	}
	var patterns []pattern
	depth := 0
	lineStart := true
	for _, tok := range s.tokens[first:] {
		if tok.Kind == TokenNewline {
			lineStart = true
			continue
		}
		if tok.Kind == TokenWord && tok.Literal == g.program && (depth == 0 || lineStart) {
			patterns = append(patterns, pattern{program: tok})
			depth = 0
			lineStart = false
			continue
		}
		lineStart = false
		switch tok.Kind {
		case TokenLBracket, TokenLParen:
			depth++
		case TokenRBracket, TokenRParen:
			if depth > 0 {
				depth--
			}
		}
		last := &patterns[len(patterns)-1]
		last.tokens = append(last.tokens, tok)
	}

	var lines []*patternParser
	for _, pat := range patterns {
		p := &patternParser{
			g:        g,
			tokens:   pat.tokens,
			implicit: implicit,
			explicit: make(map[int]bool),
		}
		id := p.parsePattern(pat.program)
		g.nodes[g.root].Children = append(g.nodes[g.root].Children, id)
		lines = append(lines, p)
	}
	g.nodes[g.root].Range = cover(patternRanges(g)...)

	// Shortcuts expand after every line is parsed so implicitly declared
	// options from later lines are included.
	for _, p := range lines {
		for _, id := range p.shortcuts {
			var ids []int
			for _, spec := range g.options.specs {
				if !p.explicit[spec.ID] {
					ids = append(ids, spec.ID)
				}
			}
			g.nodes[id].Options = ids
		}
	}
}

func patternRanges(g *Grammar) []Range {
	var out []Range
	for _, id := range g.nodes[g.root].Children {
		out = append(out, g.nodes[id].Range)
	}
	return out
}

func (p *patternParser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Kind: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *patternParser) peekN(n int) Token {
	if p.pos+n >= len(p.tokens) {
		return Token{Kind: TokenEOF}
	}
	return p.tokens[p.pos+n]
}

func (p *patternParser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *patternParser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *patternParser) errorf(r Range, format string, args ...any) {
	p.g.errorf(r, fmt.Sprintf(format, args...))
}

func (p *patternParser) add(n Node) NodeID {
	return p.g.add(n)
}

func (p *patternParser) rangeOf(ids []NodeID) Range {
	var r Range
	for _, id := range ids {
		r = cover(r, p.g.nodes[id].Range)
	}
	return r
}

func (p *patternParser) parsePattern(program Token) NodeID {
	id := p.parseExpr(TokenEOF)
	p.g.nodes[id].Range = cover(program.Range, p.g.nodes[id].Range)
	return id
}

// parseExpr parses alternatives up to closer and returns one node: a
// Sequence for a single branch, otherwise an Alternation.
func (p *patternParser) parseExpr(closer TokenKind) NodeID {
	branches := p.parseBranches(closer)
	if len(branches) == 1 {
		return p.add(Node{Kind: KindSequence, Children: branches[0], Range: p.rangeOf(branches[0])})
	}
	return p.alternation(branches)
}

func (p *patternParser) alternation(branches [][]NodeID) NodeID {
	var children []NodeID
	var r Range
	for _, b := range branches {
		var id NodeID
		if len(b) == 1 {
			id = b[0]
		} else {
			id = p.add(Node{Kind: KindSequence, Children: b, Range: p.rangeOf(b)})
		}
		children = append(children, id)
		r = cover(r, p.g.nodes[id].Range)
	}
	return p.add(Node{Kind: KindAlternation, Children: children, Range: r})
}

func (p *patternParser) parseBranches(closer TokenKind) [][]NodeID {
	seq := p.parseSeq(closer)
	branches := [][]NodeID{seq}
	for p.check(TokenPipe) {
		pipe := p.advance()
		if len(seq) == 0 {
			p.errorf(pipe.Range, "empty alternative before |")
		}
		seq = p.parseSeq(closer)
		if len(seq) == 0 {
			p.errorf(pipe.Range, "empty alternative after |")
		}
		branches = append(branches, seq)
	}
	return branches
}

func (p *patternParser) parseSeq(closer TokenKind) []NodeID {
	var seq []NodeID
	for {
		tok := p.peek()
		switch tok.Kind {
		case TokenEOF, TokenPipe:
			return seq
		case closer:
			return seq
		case TokenRBracket, TokenRParen:
			if p.encloses(tok.Kind) {
				// An outer group owns it; the inner one is unclosed.
				return seq
			}
			p.errorf(tok.Range, "unmatched %q", tok.Literal)
			p.advance()
		case TokenEllipsis:
			p.advance()
			if len(seq) == 0 {
				p.errorf(tok.Range, "%q must follow an element", tok.Literal)
				continue
			}
			last := seq[len(seq)-1]
			seq[len(seq)-1] = p.add(Node{
				Kind:     KindRepeated,
				Children: []NodeID{last},
				Range:    cover(p.g.nodes[last].Range, tok.Range),
			})
		case TokenLBracket, TokenLParen:
			seq = append(seq, p.parseGroup())
		case TokenWord:
			p.advance()
			kind := KindCommand
			if isPlaceholder(tok.Literal) {
				kind = KindPositional
			}
			seq = append(seq, p.add(Node{Kind: kind, Text: tok.Literal, Range: tok.Range}))
		case TokenLongOption:
			seq = append(seq, p.parseLongOption())
		case TokenShortOption:
			seq = append(seq, p.parseShortOptions()...)
		default:
			p.errorf(tok.Range, "unexpected %q", tok.Literal)
			p.advance()
		}
	}
}

func (p *patternParser) parseGroup() NodeID {
	open := p.advance()
	if open.Kind == TokenLBracket && p.peek().Kind == TokenWord && p.peek().Literal == "options" && p.peekN(1).Kind == TokenRBracket {
		p.advance()
		closeTok := p.advance()
		id := p.add(Node{Kind: KindOptionsShortcut, Range: cover(open.Range, closeTok.Range)})
		p.shortcuts = append(p.shortcuts, id)
		return id
	}

	kind, closer := KindOptional, TokenRBracket
	if open.Kind == TokenLParen {
		kind, closer = KindRequired, TokenRParen
	}
	p.closers = append(p.closers, closer)
	branches := p.parseBranches(closer)
	p.closers = p.closers[:len(p.closers)-1]
	var children []NodeID
	if len(branches) == 1 {
		children = branches[0]
	} else {
		children = []NodeID{p.alternation(branches)}
	}
	r := cover(open.Range, p.rangeOf(children))
	if p.check(closer) {
		r = cover(r, p.advance().Range)
	} else {
		p.errorf(open.Range, "unclosed %q", open.Literal)
	}
	return p.add(Node{Kind: kind, Children: children, Range: r})
}

func (p *patternParser) encloses(kind TokenKind) bool {
	for _, c := range p.closers {
		if c == kind {
			return true
		}
	}
	return false
}

func (p *patternParser) optionNode(spec *OptionSpec, r Range) NodeID {
	p.explicit[spec.ID] = true
	return p.add(Node{Kind: KindOption, Option: spec.ID, Text: spec.Name(), Range: r})
}

func (p *patternParser) parseLongOption() NodeID {
	tok := p.advance()
	spec, ok := p.g.options.Lookup(tok.Literal)
	hasValue := p.check(TokenEquals)
	if !ok && p.implicit {
		arity := Flag
		if hasValue {
			arity = TakesValue
		}
		spec, ok = p.g.options.add(OptionSpec{Long: tok.Literal, Arity: arity, Range: tok.Range}), true
	}
	if !ok {
		p.errorf(tok.Range, "unknown option %s", tok.Literal)
		literal, r := tok.Literal, tok.Range
		if hasValue {
			eq := p.advance()
			literal, r = literal+eq.Literal, cover(r, eq.Range)
			if p.check(TokenWord) {
				w := p.advance()
				literal, r = literal+w.Literal, cover(r, w.Range)
			}
		}
		return p.add(Node{Kind: KindCommand, Text: literal, Range: r})
	}
	return p.optionNode(spec, p.optionArgument(spec, tok.Range))
}

// optionArgument consumes the argument placeholder written after an option
// and returns the option's extended range.
func (p *patternParser) optionArgument(spec *OptionSpec, r Range) Range {
	if p.check(TokenEquals) {
		eq := p.advance()
		r = cover(r, eq.Range)
		if spec.Arity == Flag {
			p.errorf(eq.Range, "option %s does not take an argument", spec.Name())
		}
		if p.check(TokenWord) {
			r = cover(r, p.advance().Range)
		} else {
			p.errorf(eq.Range, "missing argument after %s=", spec.Name())
		}
		return r
	}
	if spec.Arity == TakesValue && p.peek().IsPlaceholder() {
		r = cover(r, p.advance().Range)
	}
	return r
}

// parseShortOptions expands a bundle like -abc into one option per letter.
// The letters after a value-taking option are its argument.
func (p *patternParser) parseShortOptions() []NodeID {
	tok := p.advance()
	var out []NodeID
	letters := tok.Literal[1:]
	for i, ch := range letters {
		size := utf8.RuneLen(ch)
		letterRange := Range{Start: tok.Range.Start + 1 + i, Length: size}
		alias := "-" + string(ch)
		last := i+size == len(letters)

		spec, ok := p.g.options.Lookup(alias)
		if !ok && p.implicit {
			arity := Flag
			if last && p.check(TokenEquals) {
				arity = TakesValue
			}
			spec, ok = p.g.options.add(OptionSpec{Short: alias, Arity: arity, Range: letterRange}), true
		}
		if !ok {
			p.errorf(letterRange, "unknown option %s", alias)
			out = append(out, p.add(Node{Kind: KindCommand, Text: alias, Range: letterRange}))
			continue
		}
		if i == 0 {
			letterRange = cover(Range{Start: tok.Range.Start, Length: 1}, letterRange)
		}
		if spec.Arity == TakesValue && !last {
			rest := Range{Start: letterRange.Start, Length: tok.Range.Start + tok.Range.Length - letterRange.Start}
			out = append(out, p.optionNode(spec, rest))
			return out
		}
		if last {
			letterRange = p.optionArgument(spec, letterRange)
		}
		out = append(out, p.optionNode(spec, letterRange))
	}
	return out
}
