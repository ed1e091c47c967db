// Package output provides quote rendering.
// This package produces human and machine-readable outputs.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	qerrors "premium-quote/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatText is the human-readable quote
	FormatText Format = "text"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatYAML is machine-readable YAML
	FormatYAML Format = "yaml"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render writes one quote
	Render(w io.Writer, q *Quote) error
}

// Registry manages formatter registration
type Registry struct {
	formatters map[Format]Formatter
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{formatters: make(map[Format]Formatter)}
}

// DefaultRegistry returns a registry with text, json and yaml formatters
func DefaultRegistry(currencySymbol string) *Registry {
	r := NewRegistry()
	_ = r.Register(&TextFormatter{CurrencySymbol: currencySymbol})
	_ = r.Register(JSONFormatter{})
	_ = r.Register(YAMLFormatter{})
	return r
}

// Register adds a formatter to the registry
func (r *Registry) Register(f Formatter) error {
	if _, exists := r.formatters[f.Format()]; exists {
		return qerrors.Newf(qerrors.TypeConfig, "formatter already registered: %s", f.Format())
	}
	r.formatters[f.Format()] = f
	return nil
}

// Get returns the formatter for a format name
func (r *Registry) Get(name string) (Formatter, error) {
	f, ok := r.formatters[Format(strings.ToLower(name))]
	if !ok {
		return nil, qerrors.NotSupported("unknown output format %q (have %s)", name, strings.Join(r.Names(), ", "))
	}
	return f, nil
}

// Names lists registered formats, sorted
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.formatters))
	for f := range r.formatters {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}

// JSONFormatter renders indented JSON
type JSONFormatter struct{}

// Format implements Formatter
func (JSONFormatter) Format() Format { return FormatJSON }

// Render implements Formatter
func (JSONFormatter) Render(w io.Writer, q *Quote) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(q)
}

// YAMLFormatter renders a YAML document
type YAMLFormatter struct{}

// Format implements Formatter
func (YAMLFormatter) Format() Format { return FormatYAML }

// Render implements Formatter
func (YAMLFormatter) Render(w io.Writer, q *Quote) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(q); err != nil {
		return err
	}
	return enc.Close()
}

// QuoteSeparator divides quotes in a saved batch file
var QuoteSeparator = strings.Repeat("-", 80)

// WriteQuotes renders each quote followed by a separator line
func WriteQuotes(w io.Writer, f Formatter, quotes []*Quote) error {
	for _, q := range quotes {
		if err := f.Render(w, q); err != nil {
			return fmt.Errorf("rendering quote %s: %w", q.ID, err)
		}
		if _, err := fmt.Fprintln(w, QuoteSeparator); err != nil {
			return err
		}
	}
	return nil
}
