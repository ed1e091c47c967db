package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"premium-quote/core/explanation"
	"premium-quote/core/types"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func applicant(vehicle, policy string) types.Applicant {
	return types.Applicant{VehicleType: vehicle, PolicyType: policy}
}

func TestPriceBaselineScenario(t *testing.T) {
	premium, b := Price(dec("4.00"), applicant("car", "basic"))

	assert.Equal(t, "7200.00", premium.StringFixed(2))

	factors := b.Factors()
	require.Len(t, factors, 3)
	assert.Equal(t, "vehicle_type", factors[0].Key)
	assert.Equal(t, "car (x1.2)", factors[0].Detail)
	assert.Equal(t, "policy_type", factors[1].Key)
	assert.Equal(t, "basic (x1.0)", factors[1].Detail)
	assert.Equal(t, "risk_score_factor", factors[2].Key)
	assert.Equal(t, "Risk score 4.0 → x1.2", factors[2].Detail)

	total, ok := b.Total()
	require.True(t, ok)
	assert.Equal(t, explanation.KeyBasePremium, total.Key)
}

func TestVehicleMultipliers(t *testing.T) {
	tests := []struct {
		vehicle  string
		want     string
		fallback bool
	}{
		{"bike", "1.0", false},
		{"car", "1.2", false},
		{"truck", "1.6", false},
		{"van", "1.2", true},
		// Normalized input is lower-case, so the upper-case SUV entry is never hit.
		{"suv", "1.2", true},
	}
	for _, tt := range tests {
		q := Calculate(decimal.Zero, applicant(tt.vehicle, "basic"))
		assert.True(t, q.VehicleFactor.Equal(dec(tt.want)), tt.vehicle)
		assert.Equal(t, tt.fallback, q.VehicleFallback, tt.vehicle)
	}

	suv, ok := VehicleMultipliers.Lookup("SUV")
	assert.True(t, ok)
	assert.Equal(t, "1.4", suv.String())
}

func TestPolicyMultipliers(t *testing.T) {
	tests := map[string]string{"basic": "1.0", "premium": "1.3", "family": "1.5", "gold": "1.0"}
	for policy, want := range tests {
		q := Calculate(decimal.Zero, applicant("bike", policy))
		assert.True(t, q.PolicyFactor.Equal(dec(want)), policy)
		assert.Equal(t, policy == "gold", q.PolicyFallback, policy)
	}
}

func TestUnknownVehicleFallsBackToCar(t *testing.T) {
	van, _ := Price(dec("4.00"), applicant("van", "basic"))
	car, _ := Price(dec("4.00"), applicant("car", "basic"))
	assert.True(t, van.Equal(car))
}

func TestPriceHasTwoDecimalPlaces(t *testing.T) {
	// 5000 * 1.6 * 1.3 * (1 + 7.37*0.05) = 14232.4
	premium, _ := Price(dec("7.37"), applicant("truck", "premium"))
	assert.Equal(t, "14232.40", premium.StringFixed(2))
	assert.True(t, premium.Equal(premium.Round(2)))
}

func TestFamilyBikeZeroRisk(t *testing.T) {
	premium, b := Price(decimal.Zero, applicant("bike", "family"))
	assert.Equal(t, "7500.00", premium.StringFixed(2))
	e, _ := b.Get("risk_score_factor")
	assert.Equal(t, "Risk score 0.0 → x1.0", e.Detail)
}

func TestRiskFactorDetailRoundsFloatValue(t *testing.T) {
	// 1 + 0.7*0.05 is just below 1.035 as float64.
	_, b := Price(dec("0.7"), applicant("car", "basic"))
	e, ok := b.Get("risk_score_factor")
	require.True(t, ok)
	assert.Equal(t, "Risk score 0.7 → x1.03", e.Detail)
}
