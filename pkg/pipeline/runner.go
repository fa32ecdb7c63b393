// Package pipeline runs a complete test-netlist conversion: locate the
// exports, build the padstack table, resolve the board offset, convert
// the pin table and write the output file.
//
// The run is sequential. Missing or unreadable inputs abort it before
// anything is written; a malformed pin only drops that pin.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/OpenTraceLab/testnetlist/pkg/align"
	nlerrors "github.com/OpenTraceLab/testnetlist/pkg/errors"
	"github.com/OpenTraceLab/testnetlist/pkg/idf"
	"github.com/OpenTraceLab/testnetlist/pkg/inputs"
	"github.com/OpenTraceLab/testnetlist/pkg/netlist"
	"github.com/OpenTraceLab/testnetlist/pkg/pcad"
	"github.com/OpenTraceLab/testnetlist/pkg/sisoft"
)

// User-facing messages of the fatal conditions.
const (
	MsgMissingInputs  = "Necessary export files are missing, please re-export!"
	MsgEmptyPadstacks = "No padstacks were extracted"
	MsgUnreadablePins = "unable to find necessary input file, please export data again"
)

// Options selects what a run converts.
type Options struct {
	Dir    string
	Filter netlist.Filter
	Class  netlist.Classification
}

// Result summarizes a finished run.
type Result struct {
	Inputs     *inputs.Set
	Padstacks  int
	Alignment  *Alignment
	Rows       []netlist.Row
	Rejected   int
	Failures   []netlist.Failure
	OutputPath string
}

// Runner executes conversions.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger uses log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Run performs one conversion.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	set, err := r.Locate(opts.Dir)
	if err != nil {
		return nil, err
	}

	padstacks, err := r.Padstacks(set)
	if err != nil {
		return nil, err
	}

	alignment, err := r.Align(ctx, set)
	if err != nil {
		return nil, err
	}

	pins, err := sisoft.ReadPins(set.Path(inputs.KindPins))
	if err != nil {
		return nil, nlerrors.Wrap(nlerrors.ErrCodeInvalidTable, err, MsgUnreadablePins)
	}
	r.Logger.Debug("Read pin table", "pins", len(pins))

	conv := &netlist.Converter{
		Filter:    opts.Filter,
		Padstacks: padstacks,
		Offset:    alignment.Offset(),
		Class:     opts.Class,
	}
	converted := conv.ConvertAll(pins)
	for _, f := range converted.Failures {
		r.Logger.Warn("Error converting", "refdes", f.RefDes, "err", f.Err)
	}
	r.Logger.Debug("Converted pins", "rows", len(converted.Rows), "filtered", converted.Rejected, "failed", len(converted.Failures))

	var buf bytes.Buffer
	if err := netlist.Write(&buf, converted.Rows); err != nil {
		return nil, nlerrors.Wrap(nlerrors.ErrCodeIO, err, "cannot render test netlist")
	}

	out := set.OutputPath()
	if err := writeFileAtomic(out, buf.Bytes()); err != nil {
		return nil, nlerrors.Wrap(nlerrors.ErrCodeIO, err, "cannot write %s", out)
	}

	return &Result{
		Inputs:     set,
		Padstacks:  padstacks.Len(),
		Alignment:  alignment,
		Rows:       converted.Rows,
		Rejected:   converted.Rejected,
		Failures:   converted.Failures,
		OutputPath: out,
	}, nil
}

// Locate scans dir and fails unless all four exports are present.
func (r *Runner) Locate(dir string) (*inputs.Set, error) {
	set, err := inputs.Scan(dir)
	if err != nil {
		return nil, nlerrors.Wrap(nlerrors.ErrCodeMissingInput, err, MsgMissingInputs)
	}

	if missing := set.Missing(); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, kind := range missing {
			names[i] = "*" + string(kind)
		}
		r.Logger.Debug("Missing exports", "dir", dir, "missing", strings.Join(names, ", "))
		return nil, nlerrors.New(nlerrors.ErrCodeMissingInput, "%s (missing %s)", MsgMissingInputs, strings.Join(names, ", "))
	}

	for _, kind := range inputs.Kinds {
		r.Logger.Debug("Found export", "kind", string(kind), "path", set.Path(kind))
	}
	return set, nil
}

// Padstacks reads the padstack table and fails when it has no usable entry.
func (r *Runner) Padstacks(set *inputs.Set) (*sisoft.PadstackTable, error) {
	table, err := sisoft.ReadPadstacks(set.Path(inputs.KindPadstacks))
	if err != nil {
		return nil, nlerrors.Wrap(nlerrors.ErrCodeInvalidTable, err, "cannot read padstack table")
	}
	for _, id := range table.Skipped {
		r.Logger.Warn("Skipping padstack with invalid dimension", "padstack", id)
	}
	if table.Len() == 0 {
		return nil, nlerrors.New(nlerrors.ErrCodeEmptyPadstacks, MsgEmptyPadstacks)
	}
	r.Logger.Debug("Built padstack table", "padstacks", table.Len())
	return table, nil
}

// Alignment is the outcome of reconciling the placement and pattern
// exports.
type Alignment struct {
	Placement *idf.Board
	Pattern   *align.Centers
	Match     *align.Match // nil when no designator is shared
}

// Offset returns the resolved offset, zero when nothing matched.
func (a *Alignment) Offset() align.Offset {
	if a == nil {
		return align.Offset{}
	}
	return align.OffsetOf(a.Match)
}

// Align extracts the centers of both board exports and resolves the
// offset between them.
func (r *Runner) Align(ctx context.Context, set *inputs.Set) (*Alignment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	board, err := idf.ParseFile(set.Path(inputs.KindPlacement))
	if err != nil {
		return nil, nlerrors.Wrap(nlerrors.ErrCodeParse, err, "cannot read placement file")
	}
	r.Logger.Debug("Extracted placement centers", "centers", board.Centers.Len(), "units", string(board.Units))

	parser, err := pcad.NewParser()
	if err != nil {
		return nil, nlerrors.Wrap(nlerrors.ErrCodeParse, err, "cannot build pattern parser")
	}
	pattern, err := parser.ExtractFile(set.Path(inputs.KindPattern), board.Centers)
	if err != nil {
		return nil, nlerrors.Wrap(nlerrors.ErrCodeParse, err, "cannot read pattern file")
	}
	r.Logger.Debug("Extracted pattern centers", "centers", pattern.Len())

	match, err := align.Resolve(board.Centers, pattern, board.Units.Scale())
	if err != nil {
		return nil, nlerrors.Wrap(nlerrors.ErrCodeParse, err, "cannot resolve board offset")
	}
	if match == nil {
		r.Logger.Debug("No component shared by placement and pattern files, using zero offset")
	} else {
		r.Logger.Debug("Resolved offset", "refdes", match.RefDes, "offset", match.Offset.String())
	}

	return &Alignment{Placement: board, Pattern: pattern, Match: match}, nil
}

// writeFileAtomic writes data next to path and renames it into place, so
// a failed run never leaves a partial output file.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".testnetlist-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
