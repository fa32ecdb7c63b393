package netlist

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/testnetlist/pkg/align"
	"github.com/OpenTraceLab/testnetlist/pkg/sisoft"
	"github.com/OpenTraceLab/testnetlist/pkg/units"
)

// PadstackLookup resolves a padstack identifier to its diameter in mm.
type PadstackLookup interface {
	Lookup(id string) (string, bool)
}

// Converter maps pin records to rows.
type Converter struct {
	Filter    Filter
	Padstacks PadstackLookup
	Offset    align.Offset
	Class     Classification
}

// Failure is a pin record that was accepted but could not be converted.
type Failure struct {
	RefDes string
	Err    error
}

// Result is the outcome of converting a whole pin table.
type Result struct {
	Rows     []Row
	Rejected int // pins filtered out by designator
	Failures []Failure
}

// Convert converts a single pin. ok is false when the filter rejects the
// pin. A short row or a malformed coordinate returns an error; it
// concerns this pin only.
func (c *Converter) Convert(pin sisoft.PinRecord) (row Row, ok bool, err error) {
	if !c.Filter.Accept(pin.RefDes) {
		return Row{}, false, nil
	}
	if len(pin.Missing) > 0 {
		return Row{}, true, fmt.Errorf("row ends before %s", strings.Join(pin.Missing, ", "))
	}

	x, err := units.InchToMM(pin.X)
	if err != nil {
		return Row{}, true, fmt.Errorf("x: %w", err)
	}
	y, err := units.InchToMM(pin.Y)
	if err != nil {
		return Row{}, true, fmt.Errorf("y: %w", err)
	}

	var diameter string
	if c.Padstacks != nil {
		diameter, _ = c.Padstacks.Lookup(pin.Padstack)
	}

	return Row{
		RefDes:   pin.RefDes + "." + pin.PinNumber,
		Net:      pin.Net,
		X:        units.Format(units.Round(x - c.Offset.DX)),
		Y:        units.Format(units.Round(y - c.Offset.DY)),
		Diameter: diameter,
		Class:    c.Class,
	}, true, nil
}

// ConvertAll converts every pin, collecting failures instead of stopping.
func (c *Converter) ConvertAll(pins []sisoft.PinRecord) Result {
	var res Result
	for _, pin := range pins {
		row, ok, err := c.Convert(pin)
		switch {
		case err != nil:
			res.Failures = append(res.Failures, Failure{RefDes: pin.RefDes, Err: err})
		case !ok:
			res.Rejected++
		default:
			res.Rows = append(res.Rows, row)
		}
	}
	return res
}
