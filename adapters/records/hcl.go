package records

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"
	"github.com/zclconf/go-cty/cty"

	"premium-quote/core/types"
	qerrors "premium-quote/internal/errors"
)

// HCLLoader reads applicant blocks:
//
//	applicant "Asha" {
//	  age          = 30
//	  vehicle_type = "car"
//	}
//
// The block label becomes the applicant name unless a name attribute is set.
type HCLLoader struct{}

// Name implements Loader
func (HCLLoader) Name() string { return "hcl" }

// Load implements Loader
func (HCLLoader) Load(path string, data []byte) ([]Row, error) {
	// hclparse caches files by name, so each load gets its own parser
	file, diags := hclparse.NewParser().ParseHCL(data, path)
	if diags.HasErrors() {
		return nil, qerrors.Parsing("failed to parse "+path, diagnosticsError(diags))
	}

	content, _, diags := file.Body.PartialContent(&hcl.BodySchema{
		Blocks: []hcl.BlockHeaderSchema{
			{Type: "applicant", LabelNames: []string{"name"}},
		},
	})
	if diags.HasErrors() {
		return nil, qerrors.Parsing("invalid applicant blocks in "+path, diagnosticsError(diags))
	}

	rows := make([]Row, 0, len(content.Blocks))
	for i, block := range content.Blocks {
		line := block.DefRange.Start.Line
		raw, err := blockRecord(block)
		if err != nil {
			rows = append(rows, brokenRow(i, line, "applicant %q: %v", block.Labels[0], err))
			continue
		}
		rows = append(rows, Row{Index: i, Line: line, Raw: raw})
	}
	return rows, nil
}

func blockRecord(block *hcl.Block) (types.RawRecord, error) {
	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diagnosticsError(diags)
	}

	raw := make(types.RawRecord, len(attrs)+1)
	if label := block.Labels[0]; label != "" {
		raw[types.FieldName] = label
	}
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("attribute %s: %w", name, diagnosticsError(diags))
		}
		v, ok, err := ctyValue(val)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", name, err)
		}
		if ok {
			raw[name] = v
		}
	}
	return raw, nil
}

// ctyValue converts a primitive cty value. Null values report ok=false so
// the field is treated as missing.
func ctyValue(val cty.Value) (any, bool, error) {
	if !val.IsKnown() {
		return nil, false, fmt.Errorf("value is not known")
	}
	if val.IsNull() {
		return nil, false, nil
	}

	switch val.Type() {
	case cty.String:
		return val.AsString(), true, nil
	case cty.Number:
		d, err := decimal.NewFromString(val.AsBigFloat().Text('f', -1))
		if err != nil {
			return nil, false, err
		}
		return d, true, nil
	case cty.Bool:
		return val.True(), true, nil
	default:
		return nil, false, fmt.Errorf("unsupported type %s", val.Type().FriendlyName())
	}
}

func diagnosticsError(diags hcl.Diagnostics) error {
	var msgs []string
	for _, d := range diags {
		if d.Severity != hcl.DiagError {
			continue
		}
		msg := d.Summary
		if d.Detail != "" {
			msg += ": " + d.Detail
		}
		if d.Subject != nil {
			msg = fmt.Sprintf("line %d: %s", d.Subject.Start.Line, msg)
		}
		msgs = append(msgs, msg)
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
