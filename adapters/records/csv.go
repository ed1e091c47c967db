package records

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"premium-quote/core/types"
	qerrors "premium-quote/internal/errors"
)

// CSVLoader reads a header row followed by one applicant per line.
// Empty cells are treated as missing fields.
type CSVLoader struct{}

// Name implements Loader
func (CSVLoader) Name() string { return "csv" }

// Load implements Loader
func (CSVLoader) Load(path string, data []byte) ([]Row, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, qerrors.Parsing("failed to read CSV header in "+path, err)
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var rows []Row
	for index := 0; ; index++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				rows = append(rows, brokenRow(index, perr.Line, "malformed CSV row: %v", perr.Err))
				continue
			}
			return nil, qerrors.Parsing("failed to read "+path, err)
		}
		line, _ := r.FieldPos(0)
		if len(record) != len(header) {
			rows = append(rows, brokenRow(index, line, "CSV row has %d fields, header has %d", len(record), len(header)))
			continue
		}

		raw := make(types.RawRecord, len(header))
		for i, key := range header {
			if key == "" {
				continue
			}
			if v := strings.TrimSpace(record[i]); v != "" {
				raw[key] = v
			}
		}
		rows = append(rows, Row{Index: index, Line: line, Raw: raw})
	}
	return rows, nil
}
