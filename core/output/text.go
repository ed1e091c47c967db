package output

import (
	"fmt"
	"io"
	"strings"

	"premium-quote/core/explanation"
)

// section describes how one stage is printed
type section struct {
	title      string
	totalLabel string
	monetary   bool
}

var sections = map[explanation.Stage]section{
	explanation.StageRisk:       {title: "Risk Assessment Factors:", totalLabel: "Risk Score"},
	explanation.StagePricing:    {title: "Base Premium Calculation:", totalLabel: "Base Premium", monetary: true},
	explanation.StageAdjustment: {title: "Market Adjustment Applied:", totalLabel: "Adjusted Final Premium", monetary: true},
}

// TextFormatter renders the human-readable quote
type TextFormatter struct {
	// CurrencySymbol is prefixed to monetary values
	CurrencySymbol string
}

// Format implements Formatter
func (f *TextFormatter) Format() Format { return FormatText }

// Render implements Formatter
func (f *TextFormatter) Render(w io.Writer, q *Quote) error {
	_, err := io.WriteString(w, f.String(q)+"\n")
	return err
}

// String returns the quote text without a trailing newline
func (f *TextFormatter) String(q *Quote) string {
	lines := []string{
		"Insurance Quote for: " + q.Name,
		"Vehicle Type: " + q.VehicleType,
		"Policy Type: " + q.PolicyType,
		"Final Premium: " + f.CurrencySymbol + q.FinalPremium,
		"",
	}

	for _, b := range q.Breakdowns {
		if b == nil {
			continue
		}
		s, ok := sections[b.Stage()]
		if !ok {
			continue
		}
		lines = append(lines, s.title)
		for _, e := range b.Factors() {
			lines = append(lines, fmt.Sprintf(" - %s: %s", e.Label(), e.Text()))
		}
		total := "?"
		if _, closed := b.Total(); closed {
			total = b.TotalValue().StringFixed(2)
			if s.monetary {
				total = f.CurrencySymbol + total
			}
		}
		lines = append(lines, fmt.Sprintf(" -> %s: %s", s.totalLabel, total), "")
	}

	lines = append(lines, "Thank you for choosing our insurance platform.")
	return strings.Join(lines, "\n")
}
