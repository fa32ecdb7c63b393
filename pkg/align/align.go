// Package align reconciles the coordinate systems of the placement (IDF)
// and pattern (P-CAD) board exports.
//
// Both exports describe the same components, but the pin table shares its
// origin with the pattern export only. The offset between the two is
// taken from the first component center present in both.
package align

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/testnetlist/pkg/units"
)

// Point is a component center as written in an export file, in that
// file's native unit.
type Point struct {
	X string
	Y string
}

// Float parses both coordinates.
func (p Point) Float() (x, y float64, err error) {
	x, err = strconv.ParseFloat(strings.TrimSpace(p.X), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("center x %q: %w", p.X, err)
	}
	y, err = strconv.ParseFloat(strings.TrimSpace(p.Y), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("center y %q: %w", p.Y, err)
	}
	return x, y, nil
}

// Centers maps reference designators to component centers.
// Iteration follows first-insertion order; re-setting a designator
// replaces its point but keeps its position.
type Centers struct {
	order  []string
	points map[string]Point
}

// NewCenters creates an empty center map.
func NewCenters() *Centers {
	return &Centers{points: make(map[string]Point)}
}

// Set stores p under refdes. Later values win.
func (c *Centers) Set(refdes string, p Point) {
	if _, ok := c.points[refdes]; !ok {
		c.order = append(c.order, refdes)
	}
	c.points[refdes] = p
}

// Get returns the center stored for refdes.
func (c *Centers) Get(refdes string) (Point, bool) {
	if c == nil {
		return Point{}, false
	}
	p, ok := c.points[refdes]
	return p, ok
}

// Has reports whether refdes has a center.
func (c *Centers) Has(refdes string) bool {
	_, ok := c.Get(refdes)
	return ok
}

// Len returns the number of designators.
func (c *Centers) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// RefDes returns the designators in iteration order.
func (c *Centers) RefDes() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Offset is the translation, in millimeters, applied to every pin
// coordinate of a run.
type Offset struct {
	DX float64
	DY float64
}

// IsZero reports whether the offset is (0, 0).
func (o Offset) IsZero() bool {
	return o.DX == 0 && o.DY == 0
}

func (o Offset) String() string {
	return fmt.Sprintf("(%s, %s) mm", units.Format(o.DX), units.Format(o.DY))
}

// Match is the component both exports agree on, with the resulting offset.
type Match struct {
	RefDes    string
	Placement Point
	Pattern   Point
	Offset    Offset
}

// Resolve walks placement in order and returns the first designator that
// pattern also knows. The offset is pattern minus placement, in mm, rounded
// to four places. placementScale converts placement coordinates to mm
// first, so for a board in thou the offset is taken against the scaled
// placement rather than the raw values.
//
// Resolve returns (nil, nil) when no designator is shared; callers then
// run with a zero offset.
func Resolve(placement, pattern *Centers, placementScale float64) (*Match, error) {
	for _, refdes := range placement.RefDes() {
		pat, ok := pattern.Get(refdes)
		if !ok {
			continue
		}
		pl, _ := placement.Get(refdes)

		plX, plY, err := pl.Float()
		if err != nil {
			return nil, fmt.Errorf("placement center of %s: %w", refdes, err)
		}
		patX, patY, err := pat.Float()
		if err != nil {
			return nil, fmt.Errorf("pattern center of %s: %w", refdes, err)
		}

		return &Match{
			RefDes:    refdes,
			Placement: pl,
			Pattern:   pat,
			Offset: Offset{
				DX: units.Round(patX - plX*placementScale),
				DY: units.Round(patY - plY*placementScale),
			},
		}, nil
	}
	return nil, nil
}

// OffsetOf returns the match's offset, or zero for a nil match.
func OffsetOf(m *Match) Offset {
	if m == nil {
		return Offset{}
	}
	return m.Offset
}
