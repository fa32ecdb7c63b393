package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/testnetlist/internal/config"
	nlerrors "github.com/OpenTraceLab/testnetlist/pkg/errors"
	"github.com/OpenTraceLab/testnetlist/pkg/netlist"
	"github.com/OpenTraceLab/testnetlist/pkg/pipeline"
)

// globalFlags are shared by every command.
type globalFlags struct {
	verbose     bool
	inputFolder string
	configPath  string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	var refdes string

	root := &cobra.Command{
		Use:   "testnetlist",
		Short: "Convert SiSoft, IDF and P-CAD exports into a test netlist",
		Long: `testnetlist builds the test-netlist file used by test engineers from
four board exports found in one folder:

  *_neutral_padstacks.csv   SiSoft padstack table
  *_neutral_pins.csv        SiSoft pin table
  *.brd                     IDF board (placement centers)
  *.PCB                     P-CAD ASCII board (pattern centers)

The pin coordinates are shifted by the offset between the IDF and P-CAD
centers of the first component both files share. The result is written to
output_<board>_test-netlist.csv in the same folder.

Examples:
  testnetlist --refdes TP                          # test points only
  testnetlist --refdes J,TP --input-folder exports # connectors and test points
  testnetlist offset --input-folder exports        # show the resolved offset`,
		Version:       "0.9.0",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if flags.verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(pipeline.WithLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, flags, refdes)
		},
	}

	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "verbose output")
	root.PersistentFlags().StringVar(&flags.inputFolder, "input-folder", config.DefaultInputFolder, "folder with the SiSoft, IDF and P-CAD export files")
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default: testnetlist.toml or testnetlist.yaml in the input folder)")

	root.Flags().StringVar(&refdes, "refdes", "", "reference designators to extract, comma separated (e.g. J,TP)")
	_ = root.MarkFlagRequired("refdes")

	root.AddCommand(newOffsetCmd(flags))
	root.AddCommand(newPadstacksCmd(flags))

	return root
}

// Execute runs the root command
func Execute() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, renderError(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	root := newRootCmd()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func runConvert(cmd *cobra.Command, flags *globalFlags, refdes string) error {
	ctx := cmd.Context()
	logger := pipeline.LoggerFromContext(ctx)

	cfg, err := config.Resolve(flags.configPath, flags.inputFolder)
	if err != nil {
		return err
	}
	if cfg.Path != "" {
		logger.Debug("Loaded config", "path", cfg.Path)
	}

	runner := pipeline.NewRunner(logger)
	res, err := runner.Run(ctx, pipeline.Options{
		Dir:    flags.inputFolder,
		Filter: netlist.ParseFilter(refdes),
		Class:  cfg.Classification,
	})
	if err != nil {
		return err
	}

	printSummary(cmd.OutOrStdout(), res)
	return nil
}

// renderError formats a fatal error for the terminal.
func renderError(err error) string {
	msg := nlerrors.UserMessage(err)
	if nlerrors.GetCode(err) == "" {
		return styleIconError.Render(iconError) + " " + msg
	}
	return styleIconError.Render(iconError) + " " + msg + StyleDim.Render(" ["+string(nlerrors.GetCode(err))+"]")
}
