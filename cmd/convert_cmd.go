package main

import (
	"fmt"
	"io"
	"os"

	"ScoreSync/internal/sheet"

	"github.com/spf13/cobra"
)

func newConvertCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "convert RAW",
		Short: "Convert a raw session sheet (date, header, A/B rows) into the score sheet format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer in.Close()

			var out io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}

			report, err := sheet.Convert(in, out)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if len(report.BadRows) > 0 {
				errOut := cmd.ErrOrStderr()
				fmt.Fprintf(errOut, "encountered bad rows: %s\n", args[0])
				for _, row := range report.BadRows {
					fmt.Fprintf(errOut, "line %d: %v (%s)\n", row.Line, row.Cells, row.Reason)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the converted sheet here instead of stdout")
	return cmd
}
