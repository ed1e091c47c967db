// Package types defines the applicant records that flow through the rating pipeline.
package types

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RawRecord is one applicant as a mapping of named fields, straight from a
// prompt, a file row or an API body. Values are untrusted.
type RawRecord map[string]any

// Field names shared by every input source.
const (
	FieldName                  = "name"
	FieldRegion                = "region"
	FieldAge                   = "age"
	FieldSex                   = "sex"
	FieldBMI                   = "bmi"
	FieldSmoker                = "smoker"
	FieldVehicleType           = "vehicle_type"
	FieldPolicyType            = "policy_type"
	FieldAccidentHistory       = "accident_history"
	FieldCreditScore           = "credit_score"
	FieldRegionRiskScore       = "region_risk_score"
	FieldMarketVolatilityIndex = "market_volatility_index"
	FieldDrivingExperience     = "driving_experience"
	FieldChildren              = "children"
)

// Applicant is a normalized applicant record. Every field lies inside its
// documented domain; only the normalizer constructs one.
type Applicant struct {
	Name                  string          `json:"name" yaml:"name"`
	Region                string          `json:"region" yaml:"region"`
	Age                   int             `json:"age" yaml:"age"`
	Sex                   string          `json:"sex" yaml:"sex"`
	BMI                   decimal.Decimal `json:"bmi" yaml:"bmi"`
	Smoker                string          `json:"smoker" yaml:"smoker"`
	VehicleType           string          `json:"vehicle_type" yaml:"vehicle_type"`
	PolicyType            string          `json:"policy_type" yaml:"policy_type"`
	AccidentHistory       int             `json:"accident_history" yaml:"accident_history"`
	CreditScore           int             `json:"credit_score" yaml:"credit_score"`
	RegionRiskScore       decimal.Decimal `json:"region_risk_score" yaml:"region_risk_score"`
	MarketVolatilityIndex decimal.Decimal `json:"market_volatility_index" yaml:"market_volatility_index"`
	DrivingExperience     int             `json:"driving_experience" yaml:"driving_experience"`
	Children              int             `json:"children" yaml:"children"`
}

// Raw converts the applicant back into a RawRecord.
func (a Applicant) Raw() RawRecord {
	return RawRecord{
		FieldName:                  a.Name,
		FieldRegion:                a.Region,
		FieldAge:                   a.Age,
		FieldSex:                   a.Sex,
		FieldBMI:                   a.BMI,
		FieldSmoker:                a.Smoker,
		FieldVehicleType:           a.VehicleType,
		FieldPolicyType:            a.PolicyType,
		FieldAccidentHistory:       a.AccidentHistory,
		FieldCreditScore:           a.CreditScore,
		FieldRegionRiskScore:       a.RegionRiskScore,
		FieldMarketVolatilityIndex: a.MarketVolatilityIndex,
		FieldDrivingExperience:     a.DrivingExperience,
		FieldChildren:              a.Children,
	}
}

// Equal reports whether two applicants hold the same values.
// Decimals compare numerically, so 25 and 25.0 are equal.
func (a Applicant) Equal(b Applicant) bool {
	return a.Name == b.Name &&
		a.Region == b.Region &&
		a.Age == b.Age &&
		a.Sex == b.Sex &&
		a.BMI.Equal(b.BMI) &&
		a.Smoker == b.Smoker &&
		a.VehicleType == b.VehicleType &&
		a.PolicyType == b.PolicyType &&
		a.AccidentHistory == b.AccidentHistory &&
		a.CreditScore == b.CreditScore &&
		a.RegionRiskScore.Equal(b.RegionRiskScore) &&
		a.MarketVolatilityIndex.Equal(b.MarketVolatilityIndex) &&
		a.DrivingExperience == b.DrivingExperience &&
		a.Children == b.Children
}

// Fingerprint is a canonical, order-stable rendering of every field.
func (a Applicant) Fingerprint() string {
	parts := []string{
		a.Name,
		a.Region,
		fmt.Sprint(a.Age),
		a.Sex,
		a.BMI.StringFixed(1),
		a.Smoker,
		a.VehicleType,
		a.PolicyType,
		fmt.Sprint(a.AccidentHistory),
		fmt.Sprint(a.CreditScore),
		a.RegionRiskScore.StringFixed(2),
		a.MarketVolatilityIndex.StringFixed(2),
		fmt.Sprint(a.DrivingExperience),
		fmt.Sprint(a.Children),
	}
	return strings.Join(parts, "|")
}

// quoteNamespace scopes name-based quote IDs.
var quoteNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("premium-quote/quote"))

// QuoteID returns a deterministic ID for the applicant: identical records
// always receive the same ID.
func (a Applicant) QuoteID() string {
	return uuid.NewSHA1(quoteNamespace, []byte(a.Fingerprint())).String()
}
