package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/docopt/match"
)

// LineEncoder writes suggestions one per line as "text<TAB>description",
// the shape shell completion functions read.
type LineEncoder struct {
	w           io.Writer
	suggestions []match.Suggestion
	kinds       bool
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

// WithKinds adds the suggestion kind as a middle column.
func (e *LineEncoder) WithKinds() *LineEncoder {
	e.kinds = true
	return e
}

func (e *LineEncoder) Encode(suggestions []match.Suggestion) error {
	e.suggestions = suggestions
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	for _, s := range e.suggestions {
		desc := strings.ReplaceAll(s.Description, "\t", " ")
		if e.kinds {
			fmt.Fprintf(&sb, "%s\t%s\t%s\n", s.Text, strings.ToLower(s.Kind.String()), desc)
			continue
		}
		if desc == "" {
			fmt.Fprintln(&sb, s.Text)
			continue
		}
		fmt.Fprintf(&sb, "%s\t%s\n", s.Text, desc)
	}
	return []byte(sb.String()), nil
}
