package records

import (
	"gopkg.in/yaml.v3"

	qerrors "premium-quote/internal/errors"
)

// YAMLLoader reads a list of applicant mappings or an applicants: key
type YAMLLoader struct{}

// Name implements Loader
func (YAMLLoader) Name() string { return "yaml" }

// Load implements Loader
func (YAMLLoader) Load(path string, data []byte) ([]Row, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, qerrors.Parsing("failed to parse YAML in "+path, err)
	}
	if doc == nil {
		return nil, nil
	}
	items, ok := unwrapDocument(doc)
	if !ok {
		return nil, qerrors.Newf(qerrors.TypeParsing, "%s: expected a list or mapping of applicants", path)
	}
	return fromObjects(items), nil
}
