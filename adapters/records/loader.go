// Package records loads applicant records from batch files.
// Supported formats: CSV (header row), JSON, YAML and HCL.
package records

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"premium-quote/core/types"
	qerrors "premium-quote/internal/errors"
)

// Row is one record from a batch file. A row whose structure is unusable
// carries Err instead of Raw; it fails alone and the batch continues.
type Row struct {
	// Index is the 0-based position of the record in the file
	Index int

	// Line is the source line, when the format tracks one
	Line int

	// Raw is the untrusted applicant mapping
	Raw types.RawRecord

	// Err is a FatalPipelineError for a structurally broken row
	Err error
}

// Loader parses one file format
type Loader interface {
	// Name returns the format name
	Name() string

	// Load parses data read from path
	Load(path string, data []byte) ([]Row, error)
}

var loaders = map[string]Loader{
	".csv":  CSVLoader{},
	".json": JSONLoader{},
	".yaml": YAMLLoader{},
	".yml":  YAMLLoader{},
	".hcl":  HCLLoader{},
}

// ForPath returns the loader for a file extension
func ForPath(path string) (Loader, error) {
	ext := strings.ToLower(filepath.Ext(path))
	l, ok := loaders[ext]
	if !ok {
		return nil, qerrors.NotSupported("unsupported record file %q (want .csv, .json, .yaml, .yml or .hcl)", path)
	}
	return l, nil
}

// Load reads and parses a record file, choosing the format by extension
func Load(path string) ([]Row, error) {
	l, err := ForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, qerrors.Wrapf(qerrors.TypeInput, err, "failed to read %s", path)
	}
	return l.Load(path, data)
}

func brokenRow(index, line int, format string, args ...any) Row {
	return Row{
		Index: index,
		Line:  line,
		Err:   qerrors.FatalPipeline(fmt.Sprintf(format, args...), nil).WithContext("index", index),
	}
}

// fromObjects turns decoded documents into rows; non-objects become broken rows.
func fromObjects(items []any) []Row {
	rows := make([]Row, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			rows = append(rows, brokenRow(i, 0, "record %d is not a mapping (got %T)", i+1, item))
			continue
		}
		rows = append(rows, Row{Index: i, Raw: types.RawRecord(obj)})
	}
	return rows
}

// unwrapDocument accepts a list, a {"applicants": [...]} wrapper or a single object.
func unwrapDocument(doc any) ([]any, bool) {
	switch v := doc.(type) {
	case []any:
		return v, true
	case map[string]any:
		if list, ok := v["applicants"].([]any); ok {
			return list, true
		}
		return []any{v}, true
	default:
		return nil, false
	}
}
