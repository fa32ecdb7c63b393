// Package pcad extracts component centers from P-CAD ASCII board files
// (.PCB).
//
// A placed component appears as a pattern expression:
//
//	(pattern (patternRef "SO8") (refDesRef "U1") (pt 50.8mm 38.1mm) (rotation 90.0)
//
// The reference designator and center point are read with a small
// participle grammar over the line, so a format change shows up as a
// parse error here instead of silently shifted substrings.
package pcad

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"

	"github.com/OpenTraceLab/testnetlist/pkg/align"
	"github.com/OpenTraceLab/testnetlist/pkg/units"
)

// Line markers of a placed pattern. All three must be present.
const (
	markerPattern    = "pattern"
	markerPatternRef = "patternRef"
	markerRefDesRef  = "refDesRef"
	markerPoint      = "pt"
)

// Parser reads pattern centers from P-CAD ASCII files.
type Parser struct {
	parser *participle.Parser[Line]
}

// NewParser creates a new P-CAD line parser.
func NewParser() (*Parser, error) {
	parser, err := participle.Build[Line](
		participle.Lexer(PatternLexer),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}

	return &Parser{parser: parser}, nil
}

// ParseLine parses a single line into expressions.
func (p *Parser) ParseLine(line string) (*Line, error) {
	parsed, err := p.parser.ParseString("", line)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return parsed, nil
}

// Center is the placement of one pattern, in millimeters.
type Center struct {
	RefDes string
	Point  align.Point
}

// IsPatternLine reports whether a line carries a placed pattern.
func IsPatternLine(line string) bool {
	return strings.Contains(line, markerPattern) &&
		strings.Contains(line, markerPatternRef) &&
		strings.Contains(line, markerRefDesRef)
}

// ParseCenter extracts the reference designator and center of a pattern
// line.
func (p *Parser) ParseCenter(line string) (Center, error) {
	parsed, err := p.ParseLine(line)
	if err != nil {
		return Center{}, err
	}

	ref := parsed.Find(markerRefDesRef)
	if ref == nil || len(ref.Atoms()) == 0 {
		return Center{}, fmt.Errorf("no (%s ...) value", markerRefDesRef)
	}
	refdes := ref.Atoms()[0].Text()

	pt := parsed.Find(markerPoint)
	if pt == nil {
		return Center{}, fmt.Errorf("%s: no (%s x y) value", refdes, markerPoint)
	}
	coords := pt.Atoms()
	if len(coords) < 2 {
		return Center{}, fmt.Errorf("%s: expected 2 coordinates, got %d", refdes, len(coords))
	}

	x, err := toMM(coords[0].Text())
	if err != nil {
		return Center{}, fmt.Errorf("%s: x: %w", refdes, err)
	}
	y, err := toMM(coords[1].Text())
	if err != nil {
		return Center{}, fmt.Errorf("%s: y: %w", refdes, err)
	}

	return Center{RefDes: refdes, Point: align.Point{X: x, Y: y}}, nil
}

// Extract scans r for pattern lines. When known is non-nil, the scan
// stops at the first designator that known also contains, since one
// shared component is enough to resolve the offset.
func (p *Parser) Extract(r io.Reader, known *align.Centers) (*align.Centers, error) {
	centers := align.NewCenters()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if !IsPatternLine(line) {
			continue
		}

		c, err := p.ParseCenter(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		centers.Set(c.RefDes, c.Point)

		if known.Has(c.RefDes) {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read board: %w", err)
	}

	return centers, nil
}

// ExtractFile opens filename and runs Extract on it.
func (p *Parser) ExtractFile(filename string, known *align.Centers) (*align.Centers, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return p.Extract(file, known)
}

// toMM strips the unit suffix of a P-CAD dimension. Millimeter and
// unitless values are returned verbatim; mil and inch are converted.
func toMM(dim string) (string, error) {
	i := len(dim)
	for i > 0 && isLetter(dim[i-1]) {
		i--
	}
	num, unit := dim[:i], strings.ToLower(dim[i:])

	var scale float64
	switch unit {
	case "", "mm":
		if _, err := strconv.ParseFloat(num, 64); err != nil {
			return "", fmt.Errorf("invalid dimension %q", dim)
		}
		return num, nil
	case "mil":
		scale = units.MMPerMil
	case "in":
		scale = units.MMPerInch
	default:
		return "", fmt.Errorf("unsupported unit %q in %q", unit, dim)
	}

	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return "", fmt.Errorf("invalid dimension %q", dim)
	}
	return strconv.FormatFloat(units.Round(v*scale), 'f', -1, 64), nil
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
