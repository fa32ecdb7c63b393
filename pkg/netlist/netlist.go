// Package netlist turns SiSoft pin records into test-netlist rows.
//
// A row is produced for every pin whose reference designator passes the
// designator filter. Coordinates are converted to millimeters and shifted
// by the board offset; the probe diameter comes from the padstack table.
package netlist

import (
	"strings"
)

// Header is the first line of a test-netlist file.
var Header = []string{
	"RefDes",
	"Netname",
	"TP X [mm]",
	"TP Y [mm]",
	"TP Diameter [mm]",
	"TP Type",
	"VPC Destination",
	"Probe Size",
	"Requirements",
}

// Classification holds the fixed per-row fields that the test engineers
// fill in later.
type Classification struct {
	TPType         string `toml:"tp_type" yaml:"tp_type"`
	VPCDestination string `toml:"vpc_destination" yaml:"vpc_destination"`
	ProbeSize      string `toml:"probe_size" yaml:"probe_size"`
	Requirements   string `toml:"requirements" yaml:"requirements"`
}

// DefaultClassification returns the classification written when nothing
// is configured.
func DefaultClassification() Classification {
	return Classification{
		TPType:         "Normal",
		VPCDestination: "TBD",
		ProbeSize:      "100 mil",
		Requirements:   "None",
	}
}

// Row is one test point of the output file.
type Row struct {
	RefDes   string // designator and pin, e.g. "J1.2"
	Net      string
	X        string // mm
	Y        string // mm
	Diameter string // mm, empty when the padstack is unknown
	Class    Classification
}

// Record returns the row's fields in Header order.
func (r Row) Record() []string {
	return []string{
		r.RefDes,
		r.Net,
		r.X,
		r.Y,
		r.Diameter,
		r.Class.TPType,
		r.Class.VPCDestination,
		r.Class.ProbeSize,
		r.Class.Requirements,
	}
}

// Filter selects pins by reference designator. A pin is accepted when any
// entry occurs anywhere in its designator: "TP" accepts "TP12" and also
// "XTP1".
type Filter []string

// ParseFilter splits a comma separated designator list. A value without a
// comma is a single entry, kept verbatim.
func ParseFilter(arg string) Filter {
	if !strings.Contains(arg, ",") {
		return Filter{arg}
	}
	return Filter(strings.Split(arg, ","))
}

// Accept reports whether refdes passes the filter.
func (f Filter) Accept(refdes string) bool {
	for _, entry := range f {
		if strings.Contains(refdes, entry) {
			return true
		}
	}
	return false
}

func (f Filter) String() string {
	return strings.Join(f, ",")
}
