package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/testnetlist/pkg/pipeline"
)

func newPadstacksCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "padstacks",
		Short: "List the padstack diameters used for the TP Diameter column",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := pipeline.NewRunner(pipeline.LoggerFromContext(cmd.Context()))

			set, err := runner.Locate(flags.inputFolder)
			if err != nil {
				return err
			}
			table, err := runner.Padstacks(set)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%d padstacks\n\n", table.Len())
			fmt.Fprintf(w, "%-30s %14s\n", "Padstack", "Diameter [mm]")
			fmt.Fprintln(w, "─────────────────────────────────────────────")
			for _, id := range table.IDs() {
				dim, _ := table.Lookup(id)
				fmt.Fprintf(w, "%-30s %14s\n", id, dim)
			}
			return nil
		},
	}
}
