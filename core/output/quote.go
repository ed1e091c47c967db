package output

import (
	"github.com/shopspring/decimal"

	"premium-quote/core/engine"
	"premium-quote/core/explanation"
	"premium-quote/core/normalize"
	"premium-quote/core/types"
)

// Quote is the external-facing aggregate: applicant identity, final
// premium and the stage breakdowns in pipeline order. Money is carried as
// fixed 2-place strings.
type Quote struct {
	ID           string                   `json:"id" yaml:"id"`
	Name         string                   `json:"name" yaml:"name"`
	VehicleType  string                   `json:"vehicle_type" yaml:"vehicle_type"`
	PolicyType   string                   `json:"policy_type" yaml:"policy_type"`
	Region       string                   `json:"region" yaml:"region"`
	RiskScore    string                   `json:"risk_score" yaml:"risk_score"`
	BasePremium  string                   `json:"base_premium" yaml:"base_premium"`
	FinalPremium string                   `json:"final_premium" yaml:"final_premium"`
	Applicant    types.Applicant          `json:"applicant" yaml:"applicant"`
	Advisories   []normalize.Advisory     `json:"advisories,omitempty" yaml:"advisories,omitempty"`
	Breakdowns   []*explanation.Breakdown `json:"breakdowns" yaml:"breakdowns"`
}

// NewQuote builds a quote from a pipeline result
func NewQuote(res *engine.Result) *Quote {
	a := res.Applicant
	return &Quote{
		ID:           res.ID,
		Name:         a.Name,
		VehicleType:  a.VehicleType,
		PolicyType:   a.PolicyType,
		Region:       a.Region,
		RiskScore:    res.RiskScore.StringFixed(2),
		BasePremium:  res.BasePremium.StringFixed(2),
		FinalPremium: res.FinalPremium.StringFixed(2),
		Applicant:    a,
		Advisories:   res.Advisories,
		Breakdowns:   res.Breakdowns(),
	}
}

// Entries returns every explanation entry in pipeline order
func (q *Quote) Entries() []explanation.Entry {
	return explanation.Concat(q.Breakdowns...)
}

// Premium returns the final premium as a decimal
func (q *Quote) Premium() decimal.Decimal {
	d, err := decimal.NewFromString(q.FinalPremium)
	if err != nil {
		return decimal.Zero
	}
	return d
}
