// Package units converts exported coordinate strings into millimeters.
//
// SiSoft exports write inch values with a comma as the decimal separator
// ("1,2500"). Everything downstream works in millimeters rounded to four
// decimal places.
package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Conversion constants
const (
	MMPerInch = 25.4   // 1 in = 25.4 mm
	MMPerMil  = 0.0254 // 1 mil (thou) = 0.0254 mm
	Precision = 4      // decimal places kept after every conversion
)

// ParseError reports a value that is not a number after decimal
// separator substitution.
type ParseError struct {
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid number %q: %v", e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseDecimal parses a locale-formatted decimal ("0,0400" or "0.0400").
func ParseDecimal(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
	if err != nil {
		return 0, &ParseError{Value: s, Err: err}
	}
	return v, nil
}

// InchToMM converts a comma-decimal inch string to millimeters, rounded
// to four decimal places. "1,0" -> 25.4
func InchToMM(s string) (float64, error) {
	v, err := ParseDecimal(s)
	if err != nil {
		return 0, err
	}
	return Round(v * MMPerInch), nil
}

// Round rounds v to four decimal places, correctly rounded from the exact
// binary value of v.
func Round(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', Precision, 64), 64)
	if r == 0 {
		// drop the sign of negative zero
		return 0
	}
	return r
}

// Format renders a millimeter value the way the test-netlist consumers
// expect: shortest exact decimal, always with a fractional part.
//
//	24.4  -> "24.4"
//	3     -> "3.0"
//	1.016 -> "1.016"
func Format(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
