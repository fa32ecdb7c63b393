// Package idf extracts component centers from IDF board files (.brd).
//
// Only the placement records are of interest. Each one spans two lines:
//
//	SOIC8 LM358 U1                       <- package, part, refdes
//	12.700 25.400 0.000 90.0 TOP PLACED  <- x, y, offset, rotation, side, status
//
// A record is recognized by the placement markers on its second line;
// the scan does not depend on the .PLACEMENT section delimiters.
package idf

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/OpenTraceLab/testnetlist/pkg/align"
	"github.com/OpenTraceLab/testnetlist/pkg/units"
)

// Unit is the length unit declared in the IDF header.
type Unit string

const (
	UnitMM   Unit = "MM"
	UnitThou Unit = "THOU"
)

// Scale returns the factor that converts u to millimeters.
func (u Unit) Scale() float64 {
	if u == UnitThou {
		return units.MMPerMil
	}
	return 1
}

// placementMarkers identify the dimension line of a placement record.
var placementMarkers = []string{"TOP", "BOTTOM", "PLACED"}

// Board holds the placement centers of an IDF board file.
type Board struct {
	Units   Unit
	Centers *align.Centers // refdes -> center, native units
}

// ParseFile reads and parses an IDF board file.
func ParseFile(filename string) (*Board, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads an IDF board from an io.Reader.
func Parse(r io.Reader) (*Board, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read board: %w", err)
	}

	return &Board{
		Units:   headerUnits(lines),
		Centers: ExtractCenters(lines),
	}, nil
}

// ExtractCenters pairs every line with its successor. When the successor
// carries a placement marker, the line's last token is the refdes and the
// successor's first two tokens are the center. Each line is considered as
// an identity line exactly once. Later duplicates overwrite earlier ones.
func ExtractCenters(lines []string) *align.Centers {
	centers := align.NewCenters()

	cur := &lineCursor{lines: lines}
	for {
		line, ok := cur.next()
		if !ok {
			break
		}
		dims, ok := cur.peek()
		if !ok || !isDimensionLine(dims) {
			continue
		}

		ident := strings.Fields(line)
		fields := strings.Fields(dims)
		if len(ident) == 0 || len(fields) < 2 {
			continue
		}
		centers.Set(ident[len(ident)-1], align.Point{X: fields[0], Y: fields[1]})
	}

	return centers
}

func isDimensionLine(line string) bool {
	for _, marker := range placementMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

// headerUnits reads the unit from the second record of the .HEADER
// section ("board_name MM"). Files without a header are taken as mm.
func headerUnits(lines []string) Unit {
	for i, line := range lines {
		if strings.TrimSpace(line) != ".HEADER" {
			continue
		}
		if i+2 >= len(lines) {
			break
		}
		fields := strings.Fields(lines[i+2])
		if len(fields) > 0 && strings.EqualFold(fields[len(fields)-1], string(UnitThou)) {
			return UnitThou
		}
		break
	}
	return UnitMM
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
