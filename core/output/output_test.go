package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"premium-quote/core/engine"
	"premium-quote/core/types"
	qerrors "premium-quote/internal/errors"
)

func scenarioQuote(t *testing.T) *Quote {
	t.Helper()
	res, err := engine.New().Run(types.RawRecord{
		"name":                    "Asha",
		"age":                     30,
		"sex":                     "female",
		"bmi":                     22.0,
		"smoker":                  "no",
		"vehicle_type":            "car",
		"policy_type":             "basic",
		"accident_history":        0,
		"credit_score":            800,
		"region_risk_score":       0.2,
		"market_volatility_index": 0.1,
		"driving_experience":      10,
		"children":                0,
	})
	require.NoError(t, err)
	return NewQuote(res)
}

const scenarioText = `Insurance Quote for: Asha
Vehicle Type: car
Policy Type: basic
Final Premium: ₹7344.00

Risk Assessment Factors:
 - Age: Moderate risk
 - Bmi: Healthy BMI
 - Smoker: Non-smoker
 - Accident History: 0 accidents
 - Credit Score: Excellent credit
 - Region Risk Score: 0.20
 - Driving Experience: Moderate experience
 -> Risk Score: 4.00

Base Premium Calculation:
 - Vehicle Type: car (x1.2)
 - Policy Type: basic (x1.0)
 - Risk Score Factor: Risk score 4.0 → x1.2
 -> Base Premium: ₹7200.00

Market Adjustment Applied:
 - Market Volatility Index: 0.1 (x1.01)
 - Region Risk Score: 0.2 (x1.01)
 - Adjustment Multiplier: 1.02
 -> Adjusted Final Premium: ₹7344.00

Thank you for choosing our insurance platform.
`

func TestTextFormatterScenario(t *testing.T) {
	var buf bytes.Buffer
	f := &TextFormatter{CurrencySymbol: "₹"}
	require.NoError(t, f.Render(&buf, scenarioQuote(t)))
	assert.Equal(t, scenarioText, buf.String())
}

func TestTextFormatterCurrencySymbol(t *testing.T) {
	text := (&TextFormatter{CurrencySymbol: "$"}).String(scenarioQuote(t))
	assert.Contains(t, text, "Final Premium: $7344.00")
	assert.Contains(t, text, " -> Base Premium: $7200.00")
	assert.Contains(t, text, " -> Risk Score: 4.00")
}

func TestQuoteCarriesPipelineOrder(t *testing.T) {
	q := scenarioQuote(t)
	entries := q.Entries()
	require.Len(t, entries, 16)
	assert.Equal(t, "age", entries[0].Key)
	assert.Equal(t, "total_score", entries[7].Key)
	assert.Equal(t, "base_premium", entries[11].Key)
	assert.Equal(t, "final_premium", entries[15].Key)
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSONFormatter{}.Render(&buf, scenarioQuote(t)))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "7344.00", doc["final_premium"])
	assert.Equal(t, "7200.00", doc["base_premium"])
	assert.Equal(t, "4.00", doc["risk_score"])
	assert.Len(t, doc["breakdowns"], 3)
	assert.NotContains(t, doc, "advisories")
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, YAMLFormatter{}.Render(&buf, scenarioQuote(t)))

	var doc struct {
		FinalPremium string `yaml:"final_premium"`
		Breakdowns   []struct {
			Stage   string `yaml:"stage"`
			Entries []struct {
				Key string `yaml:"key"`
			} `yaml:"entries"`
		} `yaml:"breakdowns"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "7344.00", doc.FinalPremium)
	require.Len(t, doc.Breakdowns, 3)
	assert.Equal(t, "adjustment", doc.Breakdowns[2].Stage)
	assert.Equal(t, "final_premium", doc.Breakdowns[2].Entries[3].Key)
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry("₹")
	assert.Equal(t, []string{"json", "text", "yaml"}, r.Names())

	f, err := r.Get("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f.Format())

	_, err = r.Get("html")
	require.Error(t, err)
	assert.True(t, qerrors.IsType(err, qerrors.TypeNotSupported))

	assert.Error(t, r.Register(YAMLFormatter{}))
}

func TestWriteQuotesSeparatesEntries(t *testing.T) {
	q := scenarioQuote(t)
	var buf bytes.Buffer
	require.NoError(t, WriteQuotes(&buf, &TextFormatter{CurrencySymbol: "₹"}, []*Quote{q, q}))

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, QuoteSeparator+"\n"))
	assert.True(t, strings.HasPrefix(out, "Insurance Quote for: Asha\n"))
}
