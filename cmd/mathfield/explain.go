package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/mathfield/internal/errors"
)

func explainCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "explain [code]",
		Short: "Describe an error code",
		Long: `Describe an error code, or list every code when none is given.

Examples:
  mathfield explain E300
  mathfield explain`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if len(args) == 0 {
				for _, code := range errors.Codes() {
					tmpl, _ := errors.Lookup(code)
					fmt.Fprintf(w, "%s  %-9s %s\n", code, tmpl.Category, tmpl.Message)
				}
				return nil
			}

			code := strings.ToUpper(args[0])
			if _, ok := errors.Lookup(code); !ok {
				return fmt.Errorf("unknown error code %q", args[0])
			}
			e := errors.New(code)
			if asJSON {
				fmt.Fprintln(w, e.FormatJSON())
				return nil
			}
			fmt.Fprint(w, e.Format())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	return cmd
}
