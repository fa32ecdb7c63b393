// Package inputs locates the four exports a conversion needs in a
// directory.
package inputs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Kind identifies one of the required exports.
type Kind string

// Filename markers. A file matches a kind when its name contains the
// marker anywhere.
const (
	KindPadstacks Kind = "_neutral_padstacks.csv"
	KindPins      Kind = "_neutral_pins.csv"
	KindPlacement Kind = ".brd"
	KindPattern   Kind = ".PCB"
)

// Kinds lists the required exports in reporting order.
var Kinds = []Kind{KindPins, KindPadstacks, KindPlacement, KindPattern}

// Set describes which required exports were found, and where.
type Set struct {
	Dir   string
	Paths map[Kind]string
}

// Scan lists dir and records the path of each required export. When
// several files match one kind the lexically last one is used.
func Scan(dir string) (*Set, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	set := &Set{Dir: dir, Paths: make(map[Kind]string)}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		for _, kind := range Kinds {
			if strings.Contains(name, string(kind)) {
				set.Paths[kind] = filepath.Join(dir, name)
			}
		}
	}
	return set, nil
}

// Path returns the file found for kind, or "".
func (s *Set) Path(kind Kind) string {
	return s.Paths[kind]
}

// Missing returns the kinds that were not found.
func (s *Set) Missing() []Kind {
	var missing []Kind
	for _, kind := range Kinds {
		if s.Paths[kind] == "" {
			missing = append(missing, kind)
		}
	}
	return missing
}

// Complete reports whether all four exports were found.
func (s *Set) Complete() bool {
	return len(s.Missing()) == 0
}

// BoardName is the placement file name without its extension.
func (s *Set) BoardName() string {
	name := filepath.Base(s.Paths[KindPlacement])
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[:i]
	}
	return name
}

// OutputPath is where the test netlist for this set is written.
func (s *Set) OutputPath() string {
	return filepath.Join(s.Dir, "output_"+s.BoardName()+"_test-netlist.csv")
}
