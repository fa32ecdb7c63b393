package sisoft

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/OpenTraceLab/testnetlist/pkg/units"
)

// Padstack table columns
const (
	ColPadstack = "Padstack"
	ColShape    = "Shape"
	ColWidth    = "Width (in)"
	ColDiameter = "Diameter (in)"
)

// rectangleShape selects the width column instead of the diameter.
const rectangleShape = "Rectangle"

// PadstackTable maps padstack identifiers to their probe dimension in mm,
// already rendered for output. Only positive dimensions are kept.
type PadstackTable struct {
	dims  map[string]string
	order []string

	// Skipped lists identifiers whose dimension could not be parsed.
	Skipped []string
}

// Lookup returns the dimension of padstack id.
func (p *PadstackTable) Lookup(id string) (string, bool) {
	if p == nil {
		return "", false
	}
	d, ok := p.dims[id]
	return d, ok
}

// Len returns the number of usable padstacks.
func (p *PadstackTable) Len() int {
	if p == nil {
		return 0
	}
	return len(p.order)
}

// IDs returns the padstack identifiers in file order.
func (p *PadstackTable) IDs() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// ReadPadstacks reads a *_neutral_padstacks.csv file.
func ReadPadstacks(filename string) (*PadstackTable, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ParsePadstacks(file)
}

// ParsePadstacks builds the padstack table. Rectangular padstacks use
// their width, everything else its diameter. Zero or negative dimensions
// are export artifacts and are dropped.
func ParsePadstacks(r io.Reader) (*PadstackTable, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}
	if err := t.require(ColPadstack, ColShape, ColWidth, ColDiameter); err != nil {
		return nil, err
	}

	table := &PadstackTable{dims: make(map[string]string)}
	for _, row := range t.rows {
		id := t.get(row, ColPadstack)

		raw := t.get(row, ColDiameter)
		if strings.Contains(t.get(row, ColShape), rectangleShape) {
			raw = t.get(row, ColWidth)
		}

		dim, err := units.InchToMM(raw)
		if err != nil {
			table.Skipped = append(table.Skipped, id)
			continue
		}
		if dim <= 0 {
			continue
		}

		if _, seen := table.dims[id]; !seen {
			table.order = append(table.order, id)
		}
		table.dims[id] = units.Format(dim)
	}

	return table, nil
}
