package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/docopt/usage"
)

// TreeJSONEncoder dumps a grammar's pattern tree, options and errors.
type TreeJSONEncoder struct {
	w io.Writer
}

func NewTreeJSONEncoder(w io.Writer) *TreeJSONEncoder {
	return &TreeJSONEncoder{w: w}
}

func (e *TreeJSONEncoder) Encode(g *usage.Grammar) error {
	text, err := e.MarshalText(g)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *TreeJSONEncoder) MarshalText(g *usage.Grammar) ([]byte, error) {
	return json.MarshalIndent(grammarToJSON(g), "", "  ")
}

type treeJSONGrammar struct {
	Program string           `json:"program"`
	Root    *treeJSONNode    `json:"root"`
	Options []treeJSONOption `json:"options,omitempty"`
	Errors  []treeJSONError  `json:"errors,omitempty"`
}

type treeJSONNode struct {
	Kind     string          `json:"kind"`
	Span     *treeJSONSpan   `json:"span,omitempty"`
	Text     string          `json:"text,omitempty"`
	Options  []string        `json:"options,omitempty"`
	Children []*treeJSONNode `json:"children,omitempty"`
}

type treeJSONSpan struct {
	Start treeJSONPosition `json:"start"`
	End   treeJSONPosition `json:"end"`
}

type treeJSONPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type treeJSONOption struct {
	Short       string `json:"short,omitempty"`
	Long        string `json:"long,omitempty"`
	Arity       string `json:"arity"`
	Default     string `json:"default,omitempty"`
	Description string `json:"description,omitempty"`
}

type treeJSONError struct {
	Position treeJSONPosition `json:"position"`
	Message  string           `json:"message"`
}

func grammarToJSON(g *usage.Grammar) treeJSONGrammar {
	out := treeJSONGrammar{
		Program: g.Program(),
		Root:    nodeToJSON(g, g.Root()),
	}
	for _, spec := range g.Options().Specs() {
		def := ""
		if spec.HasDefault {
			def = spec.Default
		}
		out.Options = append(out.Options, treeJSONOption{
			Short:       spec.Short,
			Long:        spec.Long,
			Arity:       spec.Arity.String(),
			Default:     def,
			Description: spec.Description,
		})
	}
	for _, e := range g.Errors() {
		out.Errors = append(out.Errors, treeJSONError{
			Position: position(g, e.Range.Start),
			Message:  e.Text,
		})
	}
	return out
}

func position(g *usage.Grammar, offset int) treeJSONPosition {
	p := g.Position(offset)
	return treeJSONPosition{Line: p.Line, Column: p.Column}
}

func nodeToJSON(g *usage.Grammar, id usage.NodeID) *treeJSONNode {
	n := g.Node(id)
	jn := &treeJSONNode{
		Kind: n.Kind.String(),
		Text: n.Text,
	}
	if !n.Range.Empty() {
		end, err := n.Range.End()
		if err == nil {
			jn.Span = &treeJSONSpan{Start: position(g, n.Range.Start), End: position(g, end)}
		}
	}
	for _, opt := range n.Options {
		jn.Options = append(jn.Options, g.Options().Spec(opt).Name())
	}
	if len(n.Children) > 0 {
		jn.Children = make([]*treeJSONNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = nodeToJSON(g, child)
		}
	}
	return jn
}
