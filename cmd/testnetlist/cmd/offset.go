package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/testnetlist/pkg/inputs"
	"github.com/OpenTraceLab/testnetlist/pkg/pipeline"
	"github.com/OpenTraceLab/testnetlist/pkg/units"
)

func newOffsetCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "offset",
		Short: "Show the offset between the IDF and P-CAD exports",
		Long: `Extract the component centers of the .brd and .PCB files and show
the component used to align them and the resulting offset.

Without a shared component the conversion runs with a zero offset.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner := pipeline.NewRunner(pipeline.LoggerFromContext(ctx))

			set, err := runner.Locate(flags.inputFolder)
			if err != nil {
				return err
			}
			alignment, err := runner.Align(ctx, set)
			if err != nil {
				return err
			}

			printAlignment(cmd.OutOrStdout(), set, alignment)
			return nil
		},
	}
}

func printAlignment(w io.Writer, set *inputs.Set, a *pipeline.Alignment) {
	fmt.Fprintf(w, "%s\n\n", StyleTitle.Render("Board "+set.BoardName()))
	fmt.Fprintf(w, "  Placement (%s): %d centers, units %s\n",
		set.Path(inputs.KindPlacement), a.Placement.Centers.Len(), a.Placement.Units)
	fmt.Fprintf(w, "  Pattern   (%s): %d centers scanned\n\n",
		set.Path(inputs.KindPattern), a.Pattern.Len())

	if a.Match == nil {
		fmt.Fprintf(w, "%s No component shared, offset (0.0, 0.0) mm\n", styleIconWarning.Render(iconWarning))
		return
	}

	m := a.Match
	fmt.Fprintf(w, "%-12s %12s %12s\n", "RefDes "+m.RefDes, "X", "Y")
	fmt.Fprintln(w, "──────────────────────────────────────")
	fmt.Fprintf(w, "%-12s %12s %12s\n", "placement", m.Placement.X, m.Placement.Y)
	fmt.Fprintf(w, "%-12s %12s %12s\n", "pattern", m.Pattern.X, m.Pattern.Y)
	fmt.Fprintf(w, "%-12s %12s %12s\n", "offset [mm]", units.Format(m.Offset.DX), units.Format(m.Offset.DY))
}
