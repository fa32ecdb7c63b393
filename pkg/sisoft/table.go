// Package sisoft reads the neutral CSV exports of the SiSoft
// signal-integrity tool: the padstack table and the pin table.
//
// Both are comma-delimited with a header row. Numeric fields are inch
// values with a comma as decimal separator, so they are always quoted.
package sisoft

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

const utf8BOM = "\ufeff"

// table is a CSV file addressed by header name.
type table struct {
	columns map[string]int
	rows    [][]string
}

func readTable(r io.Reader) (*table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("missing header row")
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	t := &table{columns: make(map[string]int, len(header))}
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		if _, dup := t.columns[name]; !dup {
			t.columns[name] = i
		}
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		t.rows = append(t.rows, record)
	}

	return t, nil
}

// require fails unless every named column is present.
func (t *table) require(names ...string) error {
	var missing []string
	for _, name := range names {
		if _, ok := t.columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

// lookup returns the named field of row. ok is false when the row ends
// before that column.
func (t *table) lookup(row []string, name string) (value string, ok bool) {
	i, known := t.columns[name]
	if !known || i >= len(row) {
		return "", false
	}
	return row[i], true
}

// get is lookup without the presence flag.
func (t *table) get(row []string, name string) string {
	v, _ := t.lookup(row, name)
	return v
}
