package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dhamidi/docopt/usage"
)

// loadGrammar reads and builds the usage text in filename. Build errors are
// returned alongside the grammar; only I/O failures produce an error.
func loadGrammar(filename string) (*usage.Grammar, []usage.Error, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("read usage file: %w", err)
	}
	g, errs := usage.Build(string(data))
	log.Debugf("%s: %d usage lines, %d options, %d errors", filename, len(g.Usages()), g.Options().Len(), len(errs))
	return g, errs, nil
}

func printErrors(w io.Writer, filename string, g *usage.Grammar, errs []usage.Error) {
	for _, e := range errs {
		fmt.Fprintf(w, "%s:%s: %s\n", filename, g.Position(e.Range.Start), e.Text)
	}
}

// requireGrammar is loadGrammar for commands that cannot work with a
// broken grammar.
func requireGrammar(filename string) (*usage.Grammar, error) {
	g, errs, err := loadGrammar(filename)
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		printErrors(os.Stderr, filename, g, errs)
		return nil, fmt.Errorf("build %s: %w", filename, usage.ErrorList(errs))
	}
	return g, nil
}
