// Package pricing derives the base premium from the risk score and the
// applicant's vehicle and policy categories.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"premium-quote/core/explanation"
	"premium-quote/core/types"
)

// BaseAmount is the premium before any multiplier
var BaseAmount = decimal.NewFromInt(5000)

var riskStep = decimal.RequireFromString("0.05")

// Multiplier table keyed by normalized category
type table struct {
	rates    map[string]decimal.Decimal
	fallback decimal.Decimal
}

func mustTable(fallback string, rates map[string]string) table {
	t := table{rates: make(map[string]decimal.Decimal, len(rates)), fallback: decimal.RequireFromString(fallback)}
	for k, v := range rates {
		t.rates[k] = decimal.RequireFromString(v)
	}
	return t
}

// Lookup returns the multiplier for category and whether the table knew it.
func (t table) Lookup(category string) (decimal.Decimal, bool) {
	if r, ok := t.rates[category]; ok {
		return r, true
	}
	return t.fallback, false
}

// VehicleMultipliers: unknown vehicles price like a car. The "SUV" key is
// upper-case while lookups use the lower-cased vehicle type, so it never
// matches and SUVs price at 1.2. Kept as-is: changing it moves SUV premiums.
var VehicleMultipliers = mustTable("1.2", map[string]string{
	"bike":  "1.0",
	"car":   "1.2",
	"SUV":   "1.4",
	"truck": "1.6",
})

// PolicyMultipliers: unknown policies price like basic.
var PolicyMultipliers = mustTable("1.0", map[string]string{
	"basic":   "1.0",
	"premium": "1.3",
	"family":  "1.5",
})

// Quote is the pricing outcome with fallback flags for diagnostics
type Quote struct {
	Premium         decimal.Decimal
	VehicleFactor   decimal.Decimal
	PolicyFactor    decimal.Decimal
	RiskFactor      decimal.Decimal
	VehicleFallback bool
	PolicyFallback  bool
	Breakdown       *explanation.Breakdown
}

// Price returns the base premium, rounded to 2 places, and its breakdown.
func Price(riskScore decimal.Decimal, a types.Applicant) (decimal.Decimal, *explanation.Breakdown) {
	q := Calculate(riskScore, a)
	return q.Premium, q.Breakdown
}

// Calculate is Price with the intermediate factors exposed.
func Calculate(riskScore decimal.Decimal, a types.Applicant) Quote {
	b := explanation.New(explanation.StagePricing, explanation.KeyBasePremium)

	vehicle, vehicleKnown := VehicleMultipliers.Lookup(a.VehicleType)
	b.Add(types.FieldVehicleType, fmt.Sprintf("%s (x%s)", a.VehicleType, explanation.Number(vehicle)), vehicle)

	policy, policyKnown := PolicyMultipliers.Lookup(a.PolicyType)
	b.Add(types.FieldPolicyType, fmt.Sprintf("%s (x%s)", a.PolicyType, explanation.Number(policy)), policy)

	// Every risk point adds 5%.
	riskFactor := decimal.NewFromInt(1).Add(riskScore.Mul(riskStep))

	// Quoted amounts come from float64 products in this order; the explicit
	// conversion stops the compiler fusing the multiply-add.
	riskF := 1 + float64(riskScore.InexactFloat64()*riskStep.InexactFloat64())
	b.Add("risk_score_factor", fmt.Sprintf("Risk score %s → x%s",
		explanation.Number(riskScore), explanation.Number(types.RoundFloat(riskF, 2))), riskFactor)

	premium := types.RoundFloat(BaseAmount.InexactFloat64()*vehicle.InexactFloat64()*policy.InexactFloat64()*riskF, 2)
	b.Close(premium)

	return Quote{
		Premium:         premium,
		VehicleFactor:   vehicle,
		PolicyFactor:    policy,
		RiskFactor:      riskFactor,
		VehicleFallback: !vehicleKnown,
		PolicyFallback:  !policyKnown,
		Breakdown:       b,
	}
}
