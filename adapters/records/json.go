package records

import (
	"bytes"
	"encoding/json"

	qerrors "premium-quote/internal/errors"
)

// JSONLoader reads an array of applicant objects, an {"applicants": [...]}
// document or a single object. Numbers are kept as json.Number.
type JSONLoader struct{}

// Name implements Loader
func (JSONLoader) Name() string { return "json" }

// Load implements Loader
func (JSONLoader) Load(path string, data []byte) ([]Row, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, qerrors.Parsing("failed to parse JSON in "+path, err)
	}
	items, ok := unwrapDocument(doc)
	if !ok {
		return nil, qerrors.Newf(qerrors.TypeParsing, "%s: expected an array or object of applicants", path)
	}
	return fromObjects(items), nil
}
