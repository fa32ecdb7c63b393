package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/OpenTraceLab/testnetlist/pkg/pipeline"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorDim    = lipgloss.Color("240")
)

var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconArrow   = "→"
)

// printSummary reports a finished conversion.
func printSummary(w io.Writer, res *pipeline.Result) {
	fmt.Fprintf(w, "%s Wrote %s test points to output!\n",
		styleIconSuccess.Render(iconSuccess),
		StyleNumber.Render(fmt.Sprint(len(res.Rows))))
	fmt.Fprintf(w, "  %s %s\n", iconArrow, res.OutputPath)

	if res.Alignment.Match == nil {
		fmt.Fprintf(w, "  %s %s\n", styleIconWarning.Render(iconWarning),
			StyleWarning.Render("no component shared by .brd and .PCB, coordinates are not offset"))
	} else {
		fmt.Fprintf(w, "  %s\n", StyleDim.Render(fmt.Sprintf("offset %s from %s",
			res.Alignment.Match.Offset, res.Alignment.Match.RefDes)))
	}

	if n := len(res.Failures); n > 0 {
		fmt.Fprintf(w, "  %s %s\n", styleIconWarning.Render(iconWarning),
			StyleWarning.Render(fmt.Sprintf("%d pin(s) could not be converted", n)))
	}
}
