package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/docopt/format"
	"github.com/dhamidi/docopt/match"
)

func newCompleteCmd() *cobra.Command {
	var prefixes bool
	var kinds bool

	cmd := &cobra.Command{
		Use:   "complete <file> [-- args...]",
		Short: "List the tokens that may follow an argument vector",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := requireGrammar(args[0])
			if err != nil {
				return err
			}

			flags := match.DefaultFlags
			if prefixes {
				flags |= match.ResolveUnambiguousPrefixes
			}

			enc := format.NewLineEncoder(os.Stdout)
			if kinds {
				enc.WithKinds()
			}
			if err := enc.Encode(match.Suggest(g, args[1:], flags)); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&prefixes, "prefixes", false, "resolve unambiguous long option prefixes")
	cmd.Flags().BoolVar(&kinds, "kinds", false, "print the kind of each suggestion")

	return cmd
}
