// Package engine wires the rating stages into a single quoting pipeline.
// CLI, batch and HTTP entry points are thin wrappers around Pipeline.Run.
package engine

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"premium-quote/core/explanation"
	"premium-quote/core/market"
	"premium-quote/core/normalize"
	"premium-quote/core/pricing"
	"premium-quote/core/risk"
	"premium-quote/core/types"
	qerrors "premium-quote/internal/errors"
	"premium-quote/internal/metrics"
)

// Pipeline runs normalize -> risk -> pricing -> market for one record.
// It holds no per-record state and is safe for concurrent use.
type Pipeline struct {
	diagnostics normalize.Diagnostics
	logger      *zap.Logger
	metrics     *metrics.Metrics
	source      string
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithDiagnostics routes normalizer advisories to d
func WithDiagnostics(d normalize.Diagnostics) Option {
	return func(p *Pipeline) {
		p.diagnostics = d
	}
}

// WithLogger sets the logger for stage-level debug output
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) {
		p.logger = l
	}
}

// WithMetrics records quote outcomes under the given source label
func WithMetrics(m *metrics.Metrics, source string) Option {
	return func(p *Pipeline) {
		p.metrics = m
		p.source = source
	}
}

// New creates a pipeline
func New(opts ...Option) *Pipeline {
	p := &Pipeline{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result is a fully computed quote. It is never partially filled.
type Result struct {
	ID           string
	Applicant    types.Applicant
	Advisories   []normalize.Advisory
	RiskScore    decimal.Decimal
	BasePremium  decimal.Decimal
	FinalPremium decimal.Decimal
	Risk         *explanation.Breakdown
	Pricing      *explanation.Breakdown
	Adjustment   *explanation.Breakdown
}

// Breakdowns returns the stage breakdowns in pipeline order
func (r *Result) Breakdowns() []*explanation.Breakdown {
	return []*explanation.Breakdown{r.Risk, r.Pricing, r.Adjustment}
}

// Run quotes one raw record. The only error is a FatalPipelineError for a
// record that is not a usable mapping; bad field values never fail.
func (p *Pipeline) Run(raw types.RawRecord) (*Result, error) {
	if raw == nil {
		p.metrics.IncrementQuote(metrics.OutcomeFatal, p.source)
		return nil, qerrors.FatalPipeline("applicant record is not a mapping", nil)
	}

	applicant, advisories := normalize.Normalize(raw)
	normalize.Emit(p.diagnostics, advisories)
	for _, a := range advisories {
		p.metrics.IncrementAdvisory(a.Field, string(a.Kind))
	}

	score, riskBreakdown := risk.Score(applicant)

	priced := pricing.Calculate(score, applicant)
	if priced.VehicleFallback {
		p.logger.Debug("unrecognized vehicle type, using fallback multiplier",
			zap.String("vehicle_type", applicant.VehicleType),
			zap.String("multiplier", priced.VehicleFactor.String()))
	}
	if priced.PolicyFallback {
		p.logger.Debug("unrecognized policy type, using fallback multiplier",
			zap.String("policy_type", applicant.PolicyType),
			zap.String("multiplier", priced.PolicyFactor.String()))
	}

	final, adjustment := market.Adjust(priced.Premium, applicant)

	p.logger.Debug("quote computed",
		zap.String("applicant", applicant.Name),
		zap.String("risk_score", score.String()),
		zap.String("base_premium", priced.Premium.StringFixed(2)),
		zap.String("final_premium", final.StringFixed(2)),
		zap.Int("advisories", len(advisories)))

	p.metrics.IncrementQuote(metrics.OutcomeQuoted, p.source)
	p.metrics.ObserveFinalPremium(final)

	return &Result{
		ID:           applicant.QuoteID(),
		Applicant:    applicant,
		Advisories:   advisories,
		RiskScore:    score,
		BasePremium:  priced.Premium,
		FinalPremium: final,
		Risk:         riskBreakdown,
		Pricing:      priced.Breakdown,
		Adjustment:   adjustment,
	}, nil
}
