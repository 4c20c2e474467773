package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/docopt/match"
)

type JSONEncoder struct {
	w      io.Writer
	argv   []string
	result *match.Result
}

func NewJSONEncoder(w io.Writer, argv []string) *JSONEncoder {
	return &JSONEncoder{w: w, argv: argv}
}

func (e *JSONEncoder) Encode(res *match.Result) error {
	e.result = res
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(buildResultData(e.argv, e.result), "", "  ")
}
