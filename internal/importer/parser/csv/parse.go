// Package csv parses uploaded import files into raw rows keyed by header
// name.
package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledgera/backend/internal/importer"
)

// Parse reads a CSV file into raw rows. The first line is the header and
// determines the keys, empty lines are skipped. Cells of short records are
// treated as empty so trailing-comma sloppiness does not fail the upload.
func Parse(f io.Reader) ([]importer.RawRow, error) {
	reader := csv.NewReader(f)

	// Records can have trailing cells missing
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return []importer.RawRow{}, errors.New("the file is empty")
	}
	if err != nil {
		return csvReadError(reader, fmt.Errorf("could not read the header line: %w", err))
	}

	for i, name := range header {
		header[i] = strings.TrimSpace(name)
	}

	var rows []importer.RawRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return csvReadError(reader, fmt.Errorf("could not read line in CSV: %w", err))
		}

		empty := true
		row := make(importer.RawRow, len(header))
		for i, name := range header {
			value := ""
			if i < len(record) {
				value = strings.TrimSpace(record[i])
			}
			if value != "" {
				empty = false
			}
			row[name] = value
		}

		if !empty {
			rows = append(rows, row)
		}
	}

	return rows, nil
}

// csvReadError returns an error including the line of the input the error
// occurred in.
func csvReadError(r *csv.Reader, err error) ([]importer.RawRow, error) {
	// always use the first field, we are only interested in the line
	line, _ := r.FieldPos(1)

	return []importer.RawRow{}, fmt.Errorf("error in line %d of the CSV: %w", line, err)
}
