// Package normalize turns untrusted applicant records into well-formed ones.
// Normalization never fails: a field that cannot be coerced or lies outside
// its domain is replaced by its default (or clamped) and an Advisory is
// returned alongside the record.
package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"

	"premium-quote/core/types"
)

// Kind classifies an advisory
type Kind string

const (
	KindMissing    Kind = "missing"
	KindInvalid    Kind = "invalid"
	KindOutOfRange Kind = "out_of_range"
	KindClamped    Kind = "clamped"
)

// Advisory is a non-fatal note that a field was defaulted or clamped
type Advisory struct {
	Field   string `json:"field" yaml:"field"`
	Kind    Kind   `json:"kind" yaml:"kind"`
	Message string `json:"message" yaml:"message"`
}

// Diagnostics receives advisory messages
type Diagnostics interface {
	Warn(msg string)
}

// Emit forwards every advisory message to d. A nil d drops them.
func Emit(d Diagnostics, advisories []Advisory) {
	if d == nil {
		return
	}
	for _, a := range advisories {
		d.Warn(a.Message)
	}
}

// Defaults for missing or invalid fields.
const (
	DefaultName              = "Applicant"
	DefaultRegion            = "unknown"
	DefaultAge               = 30
	DefaultSex               = "unknown"
	DefaultSmoker            = "no"
	DefaultVehicleType       = "car"
	DefaultPolicyType        = "basic"
	DefaultAccidentHistory   = 0
	DefaultCreditScore       = 700
	DefaultDrivingExperience = 5
	DefaultChildren          = 0
)

var (
	DefaultBMI                   = decimal.New(250, -1)
	DefaultRegionRiskScore       = decimal.New(5, -1)
	DefaultMarketVolatilityIndex = decimal.New(3, -1)
)

// Domain bounds.
const (
	MinAge             = 18
	MaxAge             = 100
	MinCreditScore     = 300
	MaxCreditScore     = 850
	MaxAccidents       = 10
	MaxChildren        = 10
	MinDrivingAgeShift = 16
)

var (
	minBMI = decimal.NewFromInt(10)
	maxBMI = decimal.NewFromInt(60)
	unit   = decimal.NewFromInt(1)
)

// Normalize validates raw and returns a well-formed applicant plus the
// advisories raised along the way. It is total and has no side effects.
func Normalize(raw types.RawRecord) (types.Applicant, []Advisory) {
	n := &normalizer{raw: raw}

	a := types.Applicant{
		Name:        n.text(types.FieldName, DefaultName, false, false),
		Region:      n.text(types.FieldRegion, DefaultRegion, true, false),
		Sex:         n.text(types.FieldSex, DefaultSex, true, true),
		Smoker:      n.smoker(),
		VehicleType: n.text(types.FieldVehicleType, DefaultVehicleType, true, true),
		PolicyType:  n.text(types.FieldPolicyType, DefaultPolicyType, true, true),
	}

	a.Age = n.resetInt(types.FieldAge, MinAge, MaxAge, DefaultAge, "Unusual age")
	a.BMI = n.bmi()
	a.Children = n.clampInt(types.FieldChildren, 0, MaxChildren, DefaultChildren)
	a.AccidentHistory = n.clampInt(types.FieldAccidentHistory, 0, MaxAccidents, DefaultAccidentHistory)
	a.CreditScore = n.resetInt(types.FieldCreditScore, MinCreditScore, MaxCreditScore, DefaultCreditScore, "Unusual credit score")
	a.RegionRiskScore = n.clampUnit(types.FieldRegionRiskScore, DefaultRegionRiskScore)
	a.MarketVolatilityIndex = n.clampUnit(types.FieldMarketVolatilityIndex, DefaultMarketVolatilityIndex)

	// Bounded by the normalized age, so age is resolved above.
	maxExperience := a.Age - MinDrivingAgeShift
	a.DrivingExperience = n.resetInt(types.FieldDrivingExperience, 0, maxExperience,
		min(DefaultDrivingExperience, maxExperience), "Invalid driving experience")

	return a, n.advisories
}

type normalizer struct {
	raw        types.RawRecord
	advisories []Advisory
}

func (n *normalizer) advise(field string, kind Kind, format string, args ...any) {
	n.advisories = append(n.advisories, Advisory{
		Field:   field,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	})
}

// lookup returns the field value; nil and blank strings count as missing.
func (n *normalizer) lookup(field string) (any, bool) {
	v, ok := n.raw[field]
	if !ok || v == nil {
		return nil, false
	}
	if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
		return nil, false
	}
	return v, true
}

func (n *normalizer) text(field, def string, lower, advised bool) string {
	v, ok := n.lookup(field)
	if !ok {
		if advised {
			n.advise(field, KindMissing, "Missing %s. Using default %q.", field, def)
		}
		return def
	}
	s := strings.TrimSpace(fmt.Sprint(v))
	if lower {
		s = strings.ToLower(s)
	}
	return s
}

func (n *normalizer) smoker() string {
	v, ok := n.lookup(types.FieldSmoker)
	if !ok {
		n.advise(types.FieldSmoker, KindMissing, "Missing smoker. Using default %q.", DefaultSmoker)
		return DefaultSmoker
	}
	if b, isBool := v.(bool); isBool {
		if b {
			return "yes"
		}
		return "no"
	}
	s := strings.ToLower(strings.TrimSpace(fmt.Sprint(v)))
	if s != "yes" && s != "no" {
		n.advise(types.FieldSmoker, KindInvalid, "Invalid smoker value: %q. Resetting to %q.", s, DefaultSmoker)
		return DefaultSmoker
	}
	return s
}

// number coerces the field, advising and reporting false when missing or unparsable.
func (n *normalizer) number(field string, def any) (decimal.Decimal, bool) {
	v, ok := n.lookup(field)
	if !ok {
		n.advise(field, KindMissing, "Missing %s. Using default %v.", field, def)
		return decimal.Zero, false
	}
	d, ok := toDecimal(v)
	if !ok {
		n.advise(field, KindInvalid, "Invalid %s: %v. Resetting to %v.", field, v, def)
		return decimal.Zero, false
	}
	return d, true
}

// resetInt truncates toward zero and substitutes def when outside [lo, hi].
func (n *normalizer) resetInt(field string, lo, hi, def int, what string) int {
	d, ok := n.number(field, def)
	if !ok {
		return def
	}
	t := d.Truncate(0)
	if t.LessThan(decimal.NewFromInt(int64(lo))) || t.GreaterThan(decimal.NewFromInt(int64(hi))) {
		n.advise(field, KindOutOfRange, "%s: %s. Resetting to %d.", what, t.String(), def)
		return def
	}
	return int(t.IntPart())
}

// clampInt truncates toward zero and clamps into [lo, hi].
func (n *normalizer) clampInt(field string, lo, hi, def int) int {
	d, ok := n.number(field, def)
	if !ok {
		return def
	}
	t := d.Truncate(0)
	c := decimal.Max(decimal.NewFromInt(int64(lo)), decimal.Min(t, decimal.NewFromInt(int64(hi))))
	if !c.Equal(t) {
		n.advise(field, KindClamped, "%s %s outside [%d, %d]. Clamped to %s.", field, t.String(), lo, hi, c.String())
	}
	return int(c.IntPart())
}

// clampUnit clamps into [0, 1] and rounds to 2 places.
func (n *normalizer) clampUnit(field string, def decimal.Decimal) decimal.Decimal {
	d, ok := n.number(field, def)
	if !ok {
		return def
	}
	c := decimal.Max(decimal.Zero, decimal.Min(d, unit))
	if !c.Equal(d) {
		n.advise(field, KindClamped, "%s %s outside [0, 1]. Clamped to %s.", field, d.String(), c.String())
	}
	return types.RoundFloat(c.InexactFloat64(), 2)
}

func (n *normalizer) bmi() decimal.Decimal {
	d, ok := n.number(types.FieldBMI, DefaultBMI.StringFixed(1))
	if !ok {
		return DefaultBMI
	}
	r := types.RoundFloat(d.InexactFloat64(), 1)
	if r.LessThan(minBMI) || r.GreaterThan(maxBMI) {
		n.advise(types.FieldBMI, KindOutOfRange, "Outlier BMI: %s. Resetting to %s.", r.String(), DefaultBMI.StringFixed(1))
		return DefaultBMI
	}
	return r
}

// maxScale bounds the exponent and coefficient length of numeric input.
// Rescaling costs grow with 10^|exponent|, so "1e-999999999" is rejected
// up front rather than truncated.
const maxScale = 64

// toDecimal coerces the value types produced by the supported input sources.
func toDecimal(v any) (decimal.Decimal, bool) {
	d, ok := coerce(v)
	if !ok {
		return decimal.Zero, false
	}
	if exp := d.Exponent(); exp < -maxScale || exp > maxScale || d.NumDigits() > maxScale {
		return decimal.Zero, false
	}
	return d, true
}

func coerce(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case decimal.Decimal:
		return x, true
	case int:
		return decimal.NewFromInt(int64(x)), true
	case int8:
		return decimal.NewFromInt(int64(x)), true
	case int16:
		return decimal.NewFromInt(int64(x)), true
	case int32:
		return decimal.NewFromInt(int64(x)), true
	case int64:
		return decimal.NewFromInt(x), true
	case uint:
		return fromUint(uint64(x)), true
	case uint8:
		return fromUint(uint64(x)), true
	case uint16:
		return fromUint(uint64(x)), true
	case uint32:
		return fromUint(uint64(x)), true
	case uint64:
		return fromUint(x), true
	case float32:
		return fromFloat(float64(x))
	case float64:
		return fromFloat(x)
	case json.Number:
		return fromString(x.String())
	case string:
		return fromString(x)
	default:
		return decimal.Zero, false
	}
}

func fromUint(u uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(u), 0)
}

func fromFloat(f float64) (decimal.Decimal, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(f), true
}

func fromString(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
