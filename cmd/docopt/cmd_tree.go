package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/docopt/format"
)

func newTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree <file>",
		Short: "Dump the pattern tree of a usage text as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, _, err := loadGrammar(args[0])
			if err != nil {
				return err
			}
			if err := format.NewTreeJSONEncoder(os.Stdout).Encode(g); err != nil {
				return fmt.Errorf("encode json: %w", err)
			}
			return nil
		},
	}
}
