// Package risk scores an applicant from seven fixed rating factors.
package risk

import (
	"fmt"

	"github.com/shopspring/decimal"

	"premium-quote/core/explanation"
	"premium-quote/core/types"
)

var (
	accidentWeight = decimal.RequireFromString("1.5")
	accidentCap    = decimal.NewFromInt(5)

	bmiUnderweight = decimal.RequireFromString("18.5")
	bmiHealthyTop  = decimal.RequireFromString("24.9")
	bmiOverweight  = decimal.NewFromInt(25)
	bmiOverTop     = decimal.RequireFromString("29.9")
)

// band is one scored tier of a factor
type band struct {
	score  decimal.Decimal
	detail string
}

func newBand(score, detail string) band {
	return band{score: decimal.RequireFromString(score), detail: detail}
}

var (
	ageYoung   = newBand("3", "High risk (young drivers)")
	ageAdult   = newBand("2", "Moderate risk")
	ageMiddle  = newBand("1", "Low risk")
	ageElderly = newBand("2", "Slightly elevated risk (elderly)")

	bmiLow     = newBand("2", "Underweight (health risk)")
	bmiHealthy = newBand("0.5", "Healthy BMI")
	bmiOver    = newBand("1.5", "Overweight")
	bmiObese   = newBand("3", "Obese (high health risk)")

	smokerYes = newBand("4", "Smoker")
	smokerNo  = newBand("0", "Non-smoker")

	creditExcellent = newBand("0.5", "Excellent credit")
	creditGood      = newBand("1.5", "Good credit")
	creditFair      = newBand("3", "Fair credit")
	creditPoor      = newBand("5", "Poor credit")

	experienceHigh     = newBand("0.2", "Highly experienced driver")
	experienceModerate = newBand("0.8", "Moderate experience")
	experienceLow      = newBand("1.5", "Low experience")
	experienceNone     = newBand("3", "Inexperienced driver")
)

// Score returns the total risk score, rounded to 2 places, and the ordered
// per-factor breakdown ending in total_score. The applicant must be normalized.
func Score(a types.Applicant) (decimal.Decimal, *explanation.Breakdown) {
	b := explanation.New(explanation.StageRisk, explanation.KeyTotalScore)
	total := decimal.Zero

	add := func(key string, bd band) {
		b.Add(key, bd.detail, bd.score)
		total = total.Add(bd.score)
	}

	add(types.FieldAge, ageBand(a.Age))
	add(types.FieldBMI, bmiBand(a.BMI))
	add(types.FieldSmoker, smokerBand(a.Smoker))
	add(types.FieldAccidentHistory, band{
		score:  AccidentScore(a.AccidentHistory),
		detail: fmt.Sprintf("%d accidents", a.AccidentHistory),
	})
	add(types.FieldCreditScore, creditBand(a.CreditScore))
	add(types.FieldRegionRiskScore, band{
		score:  a.RegionRiskScore,
		detail: a.RegionRiskScore.StringFixed(2),
	})
	add(types.FieldDrivingExperience, experienceBand(a.DrivingExperience))

	total = total.RoundBank(2)
	b.Close(total)
	return total, b
}

func ageBand(age int) band {
	switch {
	case age < 25:
		return ageYoung
	case age <= 40:
		return ageAdult
	case age <= 60:
		return ageMiddle
	default:
		return ageElderly
	}
}

// bmiBand uses closed ranges; a 1-dp BMI never falls between them.
func bmiBand(bmi decimal.Decimal) band {
	switch {
	case bmi.LessThan(bmiUnderweight):
		return bmiLow
	case bmi.LessThanOrEqual(bmiHealthyTop):
		return bmiHealthy
	case bmi.GreaterThanOrEqual(bmiOverweight) && bmi.LessThanOrEqual(bmiOverTop):
		return bmiOver
	default:
		return bmiObese
	}
}

func smokerBand(smoker string) band {
	if smoker == "yes" {
		return smokerYes
	}
	return smokerNo
}

// AccidentScore is 1.5 per accident, capped at 5.
func AccidentScore(accidents int) decimal.Decimal {
	return decimal.Min(decimal.NewFromInt(int64(accidents)).Mul(accidentWeight), accidentCap)
}

func creditBand(credit int) band {
	switch {
	case credit >= 750:
		return creditExcellent
	case credit >= 650:
		return creditGood
	case credit >= 550:
		return creditFair
	default:
		return creditPoor
	}
}

func experienceBand(years int) band {
	switch {
	case years >= 20:
		return experienceHigh
	case years >= 10:
		return experienceModerate
	case years >= 5:
		return experienceLow
	default:
		return experienceNone
	}
}
