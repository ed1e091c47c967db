// Package market applies market volatility and regional risk to a base premium.
package market

import (
	"fmt"

	"github.com/shopspring/decimal"

	"premium-quote/core/explanation"
	"premium-quote/core/types"
)

var (
	volatilityWeight = decimal.RequireFromString("0.10")
	regionWeight     = decimal.RequireFromString("0.05")
	one              = decimal.NewFromInt(1)
)

// Adjust returns the final premium, rounded to 2 places, and its breakdown.
// multiplier = 1 + volatility*0.10 + regionRisk*0.05
func Adjust(basePremium decimal.Decimal, a types.Applicant) (decimal.Decimal, *explanation.Breakdown) {
	b := explanation.New(explanation.StageAdjustment, explanation.KeyFinalPremium)

	// Entries keep exact factors; displayed and quoted figures round float64
	// products. float64(...) keeps each product from fusing into the add.
	volatility := a.MarketVolatilityIndex.Mul(volatilityWeight)
	volatilityF := float64(a.MarketVolatilityIndex.InexactFloat64() * volatilityWeight.InexactFloat64())
	b.Add(types.FieldMarketVolatilityIndex, factorDetail(a.MarketVolatilityIndex, volatilityF), one.Add(volatility))

	region := a.RegionRiskScore.Mul(regionWeight)
	regionF := float64(a.RegionRiskScore.InexactFloat64() * regionWeight.InexactFloat64())
	b.Add(types.FieldRegionRiskScore, factorDetail(a.RegionRiskScore, regionF), one.Add(region))

	multiplierF := 1 + volatilityF + regionF
	b.AddValue("adjustment_multiplier", types.RoundFloat(multiplierF, 3))

	final := types.RoundFloat(basePremium.InexactFloat64()*multiplierF, 2)
	b.Close(final)
	return final, b
}

func factorDetail(input decimal.Decimal, factor float64) string {
	return fmt.Sprintf("%s (x%s)", explanation.Number(input), explanation.Number(types.RoundFloat(1+factor, 3)))
}
