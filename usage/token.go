package usage

import "fmt"

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenWord
	TokenShortOption
	TokenLongOption
	TokenEquals
	TokenComma
	TokenLBracket
	TokenRBracket
	TokenLParen
	TokenRParen
	TokenPipe
	TokenEllipsis
	TokenSection
	TokenNewline
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:         "EOF",
	TokenWord:        "Word",
	TokenShortOption: "ShortOption",
	TokenLongOption:  "LongOption",
	TokenEquals:      "=",
	TokenComma:       ",",
	TokenLBracket:    "[",
	TokenRBracket:    "]",
	TokenLParen:      "(",
	TokenRParen:      ")",
	TokenPipe:        "|",
	TokenEllipsis:    "...",
	TokenSection:     "Section",
	TokenNewline:     "Newline",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Section header literals.
const (
	SectionUsage   = "usage"
	SectionOptions = "options"
)

type Token struct {
	Kind    TokenKind
	Literal string
	Range   Range
	Line    int
}

func (t Token) String() string {
	return fmt.Sprintf("%d %s %q", t.Line, t.Kind, t.Literal)
}

func (t Token) IsOption() bool {
	return t.Kind == TokenShortOption || t.Kind == TokenLongOption
}

// IsPlaceholder reports whether a word names an argument: <name> or ALLCAPS.
func (t Token) IsPlaceholder() bool {
	return t.Kind == TokenWord && isPlaceholder(t.Literal)
}

func isPlaceholder(word string) bool {
	if len(word) >= 2 && word[0] == '<' && word[len(word)-1] == '>' {
		return true
	}
	return isAllCaps(word)
}

func isAllCaps(word string) bool {
	letters := 0
	for _, r := range word {
		switch {
		case r >= 'A' && r <= 'Z':
			letters++
		case r >= '0' && r <= '9', r == '_', r == '-':
		default:
			return false
		}
	}
	return letters > 0
}
