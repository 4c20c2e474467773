package format

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/docopt/match"
)

type YAMLEncoder struct {
	w      io.Writer
	argv   []string
	result *match.Result
}

func NewYAMLEncoder(w io.Writer, argv []string) *YAMLEncoder {
	return &YAMLEncoder{w: w, argv: argv}
}

func (e *YAMLEncoder) Encode(res *match.Result) error {
	e.result = res
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *YAMLEncoder) MarshalText() ([]byte, error) {
	return yaml.Marshal(buildResultData(e.argv, e.result))
}
