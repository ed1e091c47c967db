// Package metrics provides Prometheus instrumentation for quoting.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

// Quote outcomes
const (
	OutcomeQuoted = "quoted"
	OutcomeFatal  = "fatal"
)

// Metrics holds the quoting collectors. A nil *Metrics records nothing.
type Metrics struct {
	// Quotes by outcome and source. Only the HTTP API records quotes, as "api";
	// CLI runs are one-shot processes with nothing to scrape.
	Quotes *prometheus.CounterVec

	// Normalization advisories by field and kind
	Advisories *prometheus.CounterVec

	// Distribution of final premiums
	FinalPremium prometheus.Histogram

	// HTTP request latency by route and status code
	RequestLatency *prometheus.HistogramVec
}

// New registers the collectors with reg. A nil reg creates unregistered
// collectors, which is what tests usually want.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Quotes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "premium_quote_quotes_total",
			Help: "Total quote attempts by outcome and source",
		}, []string{"outcome", "source"}),

		Advisories: f.NewCounterVec(prometheus.CounterOpts{
			Name: "premium_quote_advisories_total",
			Help: "Normalization advisories by field and kind",
		}, []string{"field", "kind"}),

		FinalPremium: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "premium_quote_final_premium",
			Help:    "Final premium of generated quotes",
			Buckets: []float64{2500, 5000, 7500, 10000, 15000, 20000, 30000, 50000},
		}),

		RequestLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "premium_quote_http_request_duration_seconds",
			Help:    "Duration of quote API requests",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
		}, []string{"route", "code"}),
	}
}

// IncrementQuote records one quote attempt.
func (m *Metrics) IncrementQuote(outcome, source string) {
	if m != nil {
		m.Quotes.WithLabelValues(outcome, source).Inc()
	}
}

// IncrementAdvisory records one normalization advisory.
func (m *Metrics) IncrementAdvisory(field, kind string) {
	if m != nil {
		m.Advisories.WithLabelValues(field, kind).Inc()
	}
}

// ObserveFinalPremium records a generated premium.
func (m *Metrics) ObserveFinalPremium(premium decimal.Decimal) {
	if m != nil {
		m.FinalPremium.Observe(premium.InexactFloat64())
	}
}

// ObserveRequest records the duration of one API request.
func (m *Metrics) ObserveRequest(route, code string, d time.Duration) {
	if m != nil {
		m.RequestLatency.WithLabelValues(route, code).Observe(d.Seconds())
	}
}
