package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "check <file>",
		Short:         "Report errors in a usage text",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			g, errs, err := loadGrammar(filename)
			if err != nil {
				return err
			}
			printErrors(os.Stdout, filename, g, errs)
			if len(errs) > 0 {
				return fmt.Errorf("%s: %d errors", filename, len(errs))
			}
			return nil
		},
	}
}
