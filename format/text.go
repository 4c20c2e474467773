package format

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/dhamidi/docopt/match"
)

// TextEncoder prints argv with each token colored by status, followed by
// the bound variables.
type TextEncoder struct {
	w      io.Writer
	argv   []string
	result *match.Result
	colors map[match.Status]*color.Color
}

func NewTextEncoder(w io.Writer, argv []string) *TextEncoder {
	return &TextEncoder{
		w:    w,
		argv: argv,
		colors: map[match.Status]*color.Color{
			match.StatusValid:       color.New(color.FgGreen),
			match.StatusValidPrefix: color.New(color.FgYellow),
			match.StatusInvalid:     color.New(color.FgRed, color.Underline),
		},
	}
}

// WithoutColor disables escape sequences regardless of the terminal.
func (e *TextEncoder) WithoutColor() *TextEncoder {
	for _, c := range e.colors {
		c.DisableColor()
	}
	return e
}

func (e *TextEncoder) Encode(res *match.Result) error {
	e.result = res
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TextEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	res := e.result

	words := make([]string, len(e.argv))
	for i, arg := range e.argv {
		words[i] = e.colors[res.Status[i]].Sprint(arg)
	}
	fmt.Fprintln(&sb, strings.Join(words, " "))

	verdict := "incomplete"
	if res.Valid() {
		verdict = "ok"
	}
	fmt.Fprintf(&sb, "match\t%s\tusage=%d\n", verdict, res.Usage)

	names := make([]string, 0, len(res.Args))
	for name := range res.Args {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		arg := res.Args[name]
		fmt.Fprintf(&sb, "%s\t%d\t%s\n", name, arg.Count, strings.Join(arg.Values, ","))
	}
	if len(res.Unused) > 0 {
		idx := make([]string, len(res.Unused))
		for i, u := range res.Unused {
			idx[i] = fmt.Sprint(u)
		}
		fmt.Fprintf(&sb, "unused\t%s\n", strings.Join(idx, ","))
	}
	return []byte(sb.String()), nil
}
