package main

import (
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/spf13/cobra"

	"github.com/dhamidi/docopt/format"
)

func newEbnfCmd() *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:           "ebnf <file>",
		Short:         "Print a usage text as an EBNF grammar",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			g, err := requireGrammar(filename)
			if err != nil {
				return err
			}

			text, err := format.NewEBNFEncoder(os.Stdout).MarshalText(g)
			if err != nil {
				return fmt.Errorf("render ebnf: %w", err)
			}
			if verify {
				if err := format.VerifyEBNF(filename, string(text)); err != nil {
					printEBNFErrors(err)
					return err
				}
			}
			_, err = os.Stdout.Write(text)
			return err
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "verify the grammar with golang.org/x/exp/ebnf before printing")

	return cmd
}

func printEBNFErrors(err error) {
	if inner := errors.Unwrap(err); inner != nil {
		err = inner
	}
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(os.Stderr, v.Index(i).Interface())
		}
	} else {
		fmt.Fprintln(os.Stderr, err)
	}
}
