// Package ui - Batch quoting runner with live progress
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"premium-quote/adapters/records"
	"premium-quote/core/engine"
	"premium-quote/core/output"
)

// blockRule frames each quote printed to the console
var blockRule = strings.Repeat("-", 50)

// BatchRunner quotes a list of records and reports progress
type BatchRunner struct {
	out       *Writer
	status    *Writer
	pipeline  *engine.Pipeline
	formatter output.Formatter
	logger    *zap.Logger

	// Limit caps the number of records processed; 0 means all
	Limit int

	// ShowProgress enables the progress bar on the status writer
	ShowProgress bool
}

// NewBatchRunner creates a runner. Quotes go to out; progress, warnings
// and the summary go to status.
func NewBatchRunner(out, status *Writer, pipeline *engine.Pipeline, formatter output.Formatter, logger *zap.Logger) *BatchRunner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchRunner{
		out:       out,
		status:    status,
		pipeline:  pipeline,
		formatter: formatter,
		logger:    logger,
	}
}

// RowFailure is a record that could not be quoted
type RowFailure struct {
	Index int
	Line  int
	Err   error
}

// BatchResult is the result of a batch run
type BatchResult struct {
	Quotes     []*output.Quote
	Failures   []RowFailure
	Advisories int
	Total      decimal.Decimal
	Duration   time.Duration
}

// Run quotes rows in order. A failing row is reported and skipped; only
// context cancellation or a write error stops the batch.
func (r *BatchRunner) Run(ctx context.Context, rows []records.Row) (*BatchResult, error) {
	if r.Limit > 0 && len(rows) > r.Limit {
		rows = rows[:r.Limit]
	}

	result := &BatchResult{Total: decimal.Zero}
	start := time.Now()

	status := r.status
	if !r.ShowProgress {
		status = NewWriter(r.status.Out(), r.status.noColor)
		status.SetVerbosity(0)
	}
	bar := status.NewProgressBar(len(rows), "Quoting applicants")

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		q, err := r.quote(row)
		if err != nil {
			result.Failures = append(result.Failures, RowFailure{Index: row.Index, Line: row.Line, Err: err})
			r.logger.Warn("skipping record", zap.Int("index", row.Index), zap.Int("line", row.Line), zap.Error(err))
		} else {
			result.Quotes = append(result.Quotes, q)
			result.Advisories += len(q.Advisories)
			result.Total = result.Total.Add(q.Premium())

			if err := r.printQuote(row.Index, q); err != nil {
				return result, err
			}
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	for _, f := range result.Failures {
		r.status.Warning("Error processing applicant #%d: %v", f.Index+1, f.Err)
	}

	result.Duration = time.Since(start)
	return result, nil
}

func (r *BatchRunner) quote(row records.Row) (*output.Quote, error) {
	if row.Err != nil {
		return nil, row.Err
	}
	res, err := r.pipeline.Run(row.Raw)
	if err != nil {
		return nil, err
	}
	return output.NewQuote(res), nil
}

func (r *BatchRunner) printQuote(index int, q *output.Quote) error {
	w := r.out.Out()
	if _, err := fmt.Fprintf(w, "\nQuote for Applicant #%d\n%s\n", index+1, blockRule); err != nil {
		return err
	}
	if err := r.formatter.Render(w, q); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, blockRule)
	return err
}

// Summary renders the batch totals on the status writer
func (r *BatchRunner) Summary(result *BatchResult, currencySymbol, outputPath string) {
	s := r.status.NewBatchSummary()
	s.Processed = len(result.Quotes)
	s.Failed = len(result.Failures)
	s.Advisories = result.Advisories
	s.Total = currencySymbol + result.Total.StringFixed(2)
	s.OutputPath = outputPath
	s.Render()

	if len(result.Quotes) == 0 {
		return
	}
	t := r.status.NewTable("#", "Applicant", "Vehicle", "Policy", "Risk", "Final Premium")
	for i, q := range result.Quotes {
		t.AddRow(fmt.Sprint(i+1), q.Name, q.VehicleType, q.PolicyType, q.RiskScore, currencySymbol+q.FinalPremium)
	}
	r.status.Println("")
	t.Render()
}
