// Package format renders match results, suggestions and grammars.
package format

import (
	"encoding"
	"io"

	"github.com/dhamidi/docopt/match"
)

// Encoder writes one match result. Encoders are built around the argv the
// result came from, since statuses are parallel to it.
type Encoder interface {
	encoding.TextMarshaler
	Encode(res *match.Result) error
}

// New returns the result encoder registered under name: json, yaml or text.
func New(name string, w io.Writer, argv []string) (Encoder, bool) {
	switch name {
	case "json":
		return NewJSONEncoder(w, argv), true
	case "yaml":
		return NewYAMLEncoder(w, argv), true
	case "text":
		return NewTextEncoder(w, argv), true
	}
	return nil, false
}

type resultData struct {
	Tokens   []tokenData               `json:"tokens" yaml:"tokens"`
	Args     map[string]match.Argument `json:"args" yaml:"args"`
	Unused   []int                     `json:"unused" yaml:"unused"`
	Usage    int                       `json:"usage" yaml:"usage"`
	Complete bool                      `json:"complete" yaml:"complete"`
}

type tokenData struct {
	Index  int          `json:"index" yaml:"index"`
	Text   string       `json:"text" yaml:"text"`
	Status match.Status `json:"status" yaml:"status"`
}

func buildResultData(argv []string, res *match.Result) resultData {
	data := resultData{
		Tokens:   make([]tokenData, len(argv)),
		Args:     res.Args,
		Unused:   res.Unused,
		Usage:    res.Usage,
		Complete: res.Complete,
	}
	if data.Unused == nil {
		data.Unused = []int{}
	}
	for i, arg := range argv {
		data.Tokens[i] = tokenData{Index: i, Text: arg, Status: res.Status[i]}
	}
	return data
}
