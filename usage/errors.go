package usage

import (
	"fmt"
	"strings"
)

// Error is a problem found while building a grammar.
type Error struct {
	Range Range
	Text  string
}

func (e Error) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Range.Start, e.Text)
}

// ErrorList collects every error found in a usage text.
type ErrorList []Error

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	var b strings.Builder
	for i, e := range l {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e.Error())
	}
	return b.String()
}

// Err returns nil for an empty list so callers can write `if err := l.Err()`.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
