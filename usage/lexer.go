package usage

import "strings"

type Lexer struct {
	input  string
	pos    int
	line   int
	tokens []Token
	// lineStart is true until the first non-space byte of a line is seen.
	lineStart bool
}

func NewLexer(input string) *Lexer {
	return &Lexer{
		input:     input,
		line:      1,
		lineStart: true,
	}
}

// Tokenize splits a usage text into tokens. It never fails: text that is not
// punctuation or an option becomes a word.
func Tokenize(input string) []Token {
	return NewLexer(input).All()
}

func (l *Lexer) All() []Token {
	for {
		tok := l.NextToken()
		l.tokens = append(l.tokens, tok)
		if tok.Kind == TokenEOF {
			return l.tokens
		}
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) token(kind TokenKind, start int) Token {
	return Token{
		Kind:    kind,
		Literal: l.input[start:l.pos],
		Range:   Range{Start: start, Length: l.pos - start},
		Line:    l.line,
	}
}

func (l *Lexer) skipSpace() {
	for {
		ch := l.peek()
		if ch == ' ' || ch == '\t' || ch == '\r' {
			l.pos++
		} else {
			return
		}
	}
}

func (l *Lexer) NextToken() Token {
	l.skipSpace()
	start := l.pos
	if l.pos >= len(l.input) {
		return l.token(TokenEOF, start)
	}

	if l.lineStart {
		l.lineStart = false
		if tok, ok := l.scanSection(); ok {
			return tok
		}
	}

	ch := l.peek()
	switch ch {
	case '\n':
		l.pos++
		tok := l.token(TokenNewline, start)
		l.line++
		l.lineStart = true
		return tok
	case '[':
		l.pos++
		return l.token(TokenLBracket, start)
	case ']':
		l.pos++
		return l.token(TokenRBracket, start)
	case '(':
		l.pos++
		return l.token(TokenLParen, start)
	case ')':
		l.pos++
		return l.token(TokenRParen, start)
	case '|':
		l.pos++
		return l.token(TokenPipe, start)
	case '=':
		if l.afterOption() {
			l.pos++
			return l.token(TokenEquals, start)
		}
	case ',':
		if l.afterOption() || l.afterPlaceholder() {
			l.pos++
			return l.token(TokenComma, start)
		}
	case '.':
		if l.peekN(1) == '.' && l.peekN(2) == '.' {
			l.pos += 3
			return l.token(TokenEllipsis, start)
		}
	case '-':
		if tok, ok := l.scanOption(); ok {
			return tok
		}
	}
	return l.scanWord()
}

func (l *Lexer) adjacent() (Token, bool) {
	if len(l.tokens) == 0 {
		return Token{}, false
	}
	prev := l.tokens[len(l.tokens)-1]
	end, err := prev.Range.End()
	return prev, err == nil && end == l.pos
}

func (l *Lexer) afterOption() bool {
	prev, ok := l.adjacent()
	return ok && prev.IsOption()
}

func (l *Lexer) afterPlaceholder() bool {
	prev, ok := l.adjacent()
	return ok && prev.IsPlaceholder()
}

// scanSection recognizes "usage:" and "... options:" at the start of a line.
func (l *Lexer) scanSection() (Token, bool) {
	rest := l.input[l.pos:]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}
	colon := strings.IndexByte(rest, ':')
	if colon < 0 {
		return Token{}, false
	}
	head := strings.ToLower(strings.TrimSpace(rest[:colon]))
	var kind string
	switch {
	case head == SectionUsage:
		kind = SectionUsage
	case strings.HasSuffix(head, SectionOptions) && !strings.HasPrefix(head, "-"):
		kind = SectionOptions
	default:
		return Token{}, false
	}
	start := l.pos
	l.pos += colon + 1
	tok := l.token(TokenSection, start)
	tok.Literal = kind
	return tok, true
}

func isDelimiter(ch byte) bool {
	switch ch {
	case 0, ' ', '\t', '\r', '\n', '[', ']', '(', ')', '|':
		return true
	}
	return false
}

func (l *Lexer) atEllipsis() bool {
	return l.peek() == '.' && l.peekN(1) == '.' && l.peekN(2) == '.'
}

func (l *Lexer) scanOption() (Token, bool) {
	start := l.pos
	kind := TokenShortOption
	body := 1
	if l.peekN(1) == '-' {
		kind = TokenLongOption
		body = 2
	}
	first := l.peekN(body)
	if isDelimiter(first) || first == '=' || first == ',' || first == '-' && kind == TokenLongOption {
		return Token{}, false
	}
	l.pos += body
	for {
		ch := l.peek()
		if isDelimiter(ch) || ch == '=' || ch == ',' || l.atEllipsis() {
			break
		}
		l.pos++
	}
	return l.token(kind, start), true
}

func (l *Lexer) scanWord() Token {
	start := l.pos
	if l.peek() == '<' {
		for {
			ch := l.peek()
			if ch == 0 || ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
				break
			}
			l.pos++
			if ch == '>' {
				return l.token(TokenWord, start)
			}
		}
		l.pos = start
	}
	for {
		ch := l.peek()
		if isDelimiter(ch) || l.atEllipsis() && l.pos > start {
			break
		}
		if ch == ',' && l.pos > start && isPlaceholder(l.input[start:l.pos]) {
			break
		}
		l.pos++
	}
	return l.token(TokenWord, start)
}
