package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/docopt/format"
	"github.com/dhamidi/docopt/match"
)

func newMatchCmd() *cobra.Command {
	var outputFormat string
	var emptyArgs bool
	var prefixes bool
	var noColor bool

	cmd := &cobra.Command{
		Use:   "match <file> [-- args...]",
		Short: "Match an argument vector against a usage text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := requireGrammar(args[0])
			if err != nil {
				return err
			}
			argv := args[1:]

			flags := match.DefaultFlags
			if emptyArgs {
				flags |= match.GenerateEmptyArgs
			}
			if prefixes {
				flags |= match.ResolveUnambiguousPrefixes
			}

			encoder, ok := format.New(outputFormat, os.Stdout, argv)
			if !ok {
				return fmt.Errorf("unknown format: %s", outputFormat)
			}
			if text, ok := encoder.(*format.TextEncoder); ok && noColor {
				text.WithoutColor()
			}

			res := match.Match(g, argv, flags)
			log.Debugf("match %v with %s: usage %d, complete %t", argv, flags, res.Usage, res.Complete)
			if err := encoder.Encode(res); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			if !res.Valid() {
				return fmt.Errorf("arguments do not match")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (json, yaml, text)")
	cmd.Flags().BoolVar(&emptyArgs, "empty", false, "include unmatched variables with a zero count")
	cmd.Flags().BoolVar(&prefixes, "prefixes", false, "resolve unambiguous long option prefixes")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored text output")

	return cmd
}
