// Package explanation - Ordered explanation records
// Every rating stage explains its output as an ordered list of labeled
// entries that ends with the stage total. Renderers print the entries as-is.
package explanation

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Stage identifies the pipeline stage that produced a breakdown
type Stage string

const (
	StageRisk       Stage = "risk"
	StagePricing    Stage = "pricing"
	StageAdjustment Stage = "adjustment"
)

// Well-known total keys, one per stage
const (
	KeyTotalScore   = "total_score"
	KeyBasePremium  = "base_premium"
	KeyFinalPremium = "final_premium"
)

// Entry is one labeled contribution
type Entry struct {
	// Key is the snake_case label, e.g. "credit_score"
	Key string `json:"key" yaml:"key"`

	// Detail is the human-readable detail
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`

	// Value is the numeric contribution: sub-score, multiplier or total
	Value *decimal.Decimal `json:"value,omitempty" yaml:"value,omitempty"`
}

// Text returns the detail as rendered: Detail when set, otherwise Value.
func (e Entry) Text() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Value != nil {
		return Number(*e.Value)
	}
	return ""
}

// Label returns the entry key as a title
func (e Entry) Label() string {
	return Label(e.Key)
}

// Breakdown is an append-only, ordered list of entries closed by a total
type Breakdown struct {
	stage    Stage
	totalKey string
	entries  []Entry
	closed   bool
}

// New creates an empty breakdown whose total will be stored under totalKey
func New(stage Stage, totalKey string) *Breakdown {
	return &Breakdown{
		stage:    stage,
		totalKey: totalKey,
		entries:  make([]Entry, 0, 8),
	}
}

// Add appends a factor with a text detail and its numeric contribution
func (b *Breakdown) Add(key, detail string, value decimal.Decimal) *Breakdown {
	b.mustBeOpen()
	b.entries = append(b.entries, Entry{Key: key, Detail: detail, Value: &value})
	return b
}

// AddValue appends a factor whose detail is its numeric value
func (b *Breakdown) AddValue(key string, value decimal.Decimal) *Breakdown {
	b.mustBeOpen()
	b.entries = append(b.entries, Entry{Key: key, Value: &value})
	return b
}

// Close appends the total entry. No entries may be added afterwards.
func (b *Breakdown) Close(total decimal.Decimal) *Breakdown {
	b.mustBeOpen()
	b.entries = append(b.entries, Entry{Key: b.totalKey, Value: &total})
	b.closed = true
	return b
}

func (b *Breakdown) mustBeOpen() {
	if b.closed {
		panic("explanation: breakdown " + string(b.stage) + " already closed")
	}
}

// Stage returns the producing stage
func (b *Breakdown) Stage() Stage {
	return b.stage
}

// TotalKey returns the well-known total key
func (b *Breakdown) TotalKey() string {
	return b.totalKey
}

// Entries returns a copy of all entries in insertion order
func (b *Breakdown) Entries() []Entry {
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Factors returns every entry except the total
func (b *Breakdown) Factors() []Entry {
	out := make([]Entry, 0, len(b.entries))
	for _, e := range b.entries {
		if e.Key != b.totalKey {
			out = append(out, e)
		}
	}
	return out
}

// Get looks an entry up by key
func (b *Breakdown) Get(key string) (Entry, bool) {
	for _, e := range b.entries {
		if e.Key == key {
			return e, true
		}
	}
	return Entry{}, false
}

// Total returns the total entry
func (b *Breakdown) Total() (Entry, bool) {
	if !b.closed {
		return Entry{}, false
	}
	return b.entries[len(b.entries)-1], true
}

// TotalValue returns the total, or zero for an open breakdown
func (b *Breakdown) TotalValue() decimal.Decimal {
	e, ok := b.Total()
	if !ok || e.Value == nil {
		return decimal.Zero
	}
	return *e.Value
}

type breakdownDoc struct {
	Stage   Stage   `json:"stage" yaml:"stage"`
	Total   string  `json:"total_key" yaml:"total_key"`
	Entries []Entry `json:"entries" yaml:"entries"`
}

// MarshalJSON encodes the breakdown with its stage and ordered entries
func (b *Breakdown) MarshalJSON() ([]byte, error) {
	return json.Marshal(breakdownDoc{Stage: b.stage, Total: b.totalKey, Entries: b.entries})
}

// MarshalYAML encodes the breakdown for yaml.v3
func (b *Breakdown) MarshalYAML() (interface{}, error) {
	return breakdownDoc{Stage: b.stage, Total: b.totalKey, Entries: b.entries}, nil
}

// Concat joins breakdowns in the given order
func Concat(breakdowns ...*Breakdown) []Entry {
	var out []Entry
	for _, b := range breakdowns {
		if b != nil {
			out = append(out, b.entries...)
		}
	}
	return out
}

// Label turns a snake_case key into a title: "risk_score_factor" -> "Risk Score Factor".
// A Caser is stateful, so each call gets its own.
func Label(key string) string {
	return cases.Title(language.Und).String(strings.ReplaceAll(key, "_", " "))
}

// Number formats a decimal the way factors are quoted: shortest form, at
// least one fractional digit ("1.2", "1.0", "4.0").
func Number(d decimal.Decimal) string {
	s := d.String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
