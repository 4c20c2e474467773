// Package docopt parses command lines with the help text that documents
// them.
//
// Build turns a usage text into a reusable grammar; Match checks an argv
// against it and reports, per token, whether it is valid, invalid, or a
// valid prefix of something longer. Parse does both in one call.
//
//	doc := `Usage: prog [-v...] <file>
//
//	Options:
//	  -v --verbose  Say more.`
//	args, unused, err := docopt.Parse(doc, os.Args[1:], docopt.GenerateEmptyArgs)
package docopt

import (
	"github.com/dhamidi/docopt/match"
	"github.com/dhamidi/docopt/usage"
)

type (
	Grammar  = usage.Grammar
	Error    = usage.Error
	Argument = match.Argument
	Result   = match.Result
	Status   = match.Status
	Flags    = match.Flags
)

const (
	GenerateEmptyArgs          = match.GenerateEmptyArgs
	ResolveUnambiguousPrefixes = match.ResolveUnambiguousPrefixes

	StatusInvalid     = match.StatusInvalid
	StatusValid       = match.StatusValid
	StatusValidPrefix = match.StatusValidPrefix
)

// Build parses a usage text. The grammar is usable even when errors are
// returned; callers decide which errors are fatal.
func Build(doc string) (*Grammar, []Error) {
	return usage.Build(doc)
}

// Match matches argv against a built grammar.
func Match(g *Grammar, argv []string, flags Flags) *Result {
	return match.Match(g, argv, flags)
}

// Parse builds doc and matches argv against it. It returns the bound
// variables and the indices of arguments nothing matched. If doc has errors
// the map is nil and the error is a usage.ErrorList.
func Parse(doc string, argv []string, flags Flags) (map[string]Argument, []int, error) {
	g, errs := Build(doc)
	if err := usage.ErrorList(errs).Err(); err != nil {
		return nil, nil, err
	}
	res := Match(g, argv, flags)
	return res.Args, res.Unused, nil
}
