package netlist

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Delimiter separates the fields of a test-netlist file.
const Delimiter = ";"

const lineEnd = "\r\n"

// Write renders the header and rows as an unquoted, semicolon separated
// table. Fields containing the delimiter or a line break cannot be
// represented and are rejected before anything is written.
func Write(w io.Writer, rows []Row) error {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, Header)
	for _, row := range rows {
		records = append(records, row.Record())
	}

	for i, rec := range records {
		for _, field := range rec {
			if strings.ContainsAny(field, Delimiter+"\r\n") {
				return fmt.Errorf("row %d: field %q cannot be written unquoted", i, field)
			}
		}
	}

	bw := bufio.NewWriter(w)
	for _, rec := range records {
		if _, err := bw.WriteString(strings.Join(rec, Delimiter) + lineEnd); err != nil {
			return err
		}
	}
	return bw.Flush()
}
