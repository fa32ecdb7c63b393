package sisoft

import (
	"fmt"
	"io"
	"os"
)

// Pin table columns
const (
	ColRefDes    = "RefDes"
	ColNet       = "CAD Net"
	ColX         = "X (in)"
	ColY         = "Y (in)"
	ColPinNumber = "Pin Number"
)

// PinRecord is one measured test point of the pin table. Coordinates are
// kept as exported: inches, comma-decimal.
type PinRecord struct {
	RefDes    string
	PinNumber string
	Net       string
	X         string
	Y         string
	Padstack  string

	// Missing names the columns this row ended before.
	Missing []string
}

// ReadPins reads a *_neutral_pins.csv file.
func ReadPins(filename string) ([]PinRecord, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ParsePins(file)
}

// ParsePins reads every pin record. Field values are not validated here;
// malformed coordinates and short rows surface when the record is
// converted.
func ParsePins(r io.Reader) ([]PinRecord, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}
	if err := t.require(ColRefDes, ColNet, ColX, ColY, ColPinNumber, ColPadstack); err != nil {
		return nil, err
	}

	pins := make([]PinRecord, 0, len(t.rows))
	for _, row := range t.rows {
		var pin PinRecord
		for _, f := range []struct {
			col string
			dst *string
		}{
			{ColRefDes, &pin.RefDes},
			{ColPinNumber, &pin.PinNumber},
			{ColNet, &pin.Net},
			{ColX, &pin.X},
			{ColY, &pin.Y},
			{ColPadstack, &pin.Padstack},
		} {
			v, ok := t.lookup(row, f.col)
			if !ok {
				pin.Missing = append(pin.Missing, f.col)
			}
			*f.dst = v
		}
		pins = append(pins, pin)
	}
	return pins, nil
}
