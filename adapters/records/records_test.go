package records

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"premium-quote/core/engine"
	qerrors "premium-quote/internal/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeFile(t, "applicants.csv", `name,age,sex,bmi,smoker,vehicle_type,policy_type,accident_history,credit_score,region_risk_score,market_volatility_index,driving_experience,children
Asha,30,female,22.0,no,car,basic,0,800,0.2,0.1,10,0
Ravi,,male,,yes,truck,premium,2,550,0.7,0.3,,1
`)

	rows, err := Load(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.NoError(t, rows[0].Err)
	assert.Equal(t, "Asha", rows[0].Raw["name"])
	assert.Equal(t, "30", rows[0].Raw["age"])
	assert.Equal(t, 2, rows[0].Line)

	_, hasAge := rows[1].Raw["age"]
	assert.False(t, hasAge, "empty cells are absent")
	assert.Equal(t, 1, rows[1].Index)
}

func TestLoadCSVQuotesScenario(t *testing.T) {
	path := writeFile(t, "one.csv", "name,age,sex,bmi,smoker,vehicle_type,policy_type,accident_history,credit_score,region_risk_score,market_volatility_index,driving_experience,children\n"+
		"Asha,30,female,22.0,no,car,basic,0,800,0.2,0.1,10,0\n")

	rows, err := Load(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	res, err := engine.New().Run(rows[0].Raw)
	require.NoError(t, err)
	assert.Equal(t, "7344.00", res.FinalPremium.StringFixed(2))
	assert.Empty(t, res.Advisories)
}

func TestLoadCSVRaggedRowFailsAlone(t *testing.T) {
	path := writeFile(t, "ragged.csv", "name,age\nAsha,30\nRavi,41,extra\nMeera,52\n")

	rows, err := Load(path)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.NoError(t, rows[0].Err)
	require.Error(t, rows[1].Err)
	assert.True(t, qerrors.IsType(rows[1].Err, qerrors.TypeFatalPipeline))
	assert.Nil(t, rows[1].Raw)
	assert.Equal(t, "Meera", rows[2].Raw["name"])
}

func TestLoadCSVEmpty(t *testing.T) {
	rows, err := Load(writeFile(t, "empty.csv", ""))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "applicants.json", `[
  {"name": "Asha", "age": 30, "bmi": 22.5, "smoker": false},
  42,
  {"name": "Ravi", "credit_score": 200}
]`)

	rows, err := Load(path)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, json.Number("30"), rows[0].Raw["age"])
	assert.Equal(t, false, rows[0].Raw["smoker"])

	require.Error(t, rows[1].Err)
	assert.True(t, qerrors.IsType(rows[1].Err, qerrors.TypeFatalPipeline))

	assert.Equal(t, "Ravi", rows[2].Raw["name"])
}

func TestLoadJSONWrapperAndSingleObject(t *testing.T) {
	rows, err := Load(writeFile(t, "wrapped.json", `{"applicants": [{"name": "A"}, {"name": "B"}]}`))
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = Load(writeFile(t, "single.json", `{"name": "Solo", "age": 44}`))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Solo", rows[0].Raw["name"])
}

func TestLoadJSONMalformed(t *testing.T) {
	_, err := Load(writeFile(t, "bad.json", `[{"name": `))
	require.Error(t, err)
	assert.True(t, qerrors.IsType(err, qerrors.TypeParsing))

	_, err = Load(writeFile(t, "scalar.json", `"nope"`))
	require.Error(t, err)
	assert.True(t, qerrors.IsType(err, qerrors.TypeParsing))
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "applicants.yaml", `applicants:
  - name: Asha
    age: 30
    bmi: 22.0
    smoker: "no"
  - just a string
`)

	rows, err := Load(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 30, rows[0].Raw["age"])
	assert.Equal(t, 22.0, rows[0].Raw["bmi"])
	assert.Error(t, rows[1].Err)
}

func TestLoadYMLList(t *testing.T) {
	rows, err := Load(writeFile(t, "list.yml", "- name: A\n- name: B\n"))
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestLoadHCL(t *testing.T) {
	path := writeFile(t, "applicants.hcl", `
applicant "Asha" {
  age                     = 30
  sex                     = "female"
  bmi                     = 22.0
  smoker                  = false
  vehicle_type            = "car"
  policy_type             = "basic"
  accident_history        = 0
  credit_score            = 800
  region_risk_score       = 0.2
  market_volatility_index = 0.1
  driving_experience      = 10
  children                = 0
}

applicant "Ravi" {
  name = "Ravi Kumar"
  tags = ["a", "b"]
}

applicant "Meera" {
  age = null
}
`)

	rows, err := Load(path)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	asha := rows[0]
	require.NoError(t, asha.Err)
	assert.Equal(t, "Asha", asha.Raw["name"])
	assert.Equal(t, false, asha.Raw["smoker"])
	assert.True(t, decimal.RequireFromString("0.2").Equal(asha.Raw["region_risk_score"].(decimal.Decimal)))
	assert.Equal(t, 2, asha.Line)

	res, err := engine.New().Run(asha.Raw)
	require.NoError(t, err)
	assert.Equal(t, "7344.00", res.FinalPremium.StringFixed(2))

	require.Error(t, rows[1].Err, "list attributes are not applicant fields")
	assert.True(t, qerrors.IsType(rows[1].Err, qerrors.TypeFatalPipeline))

	require.NoError(t, rows[2].Err)
	_, hasAge := rows[2].Raw["age"]
	assert.False(t, hasAge, "null is treated as missing")
}

func TestLoadHCLSyntaxError(t *testing.T) {
	_, err := Load(writeFile(t, "bad.hcl", `applicant "x" {`))
	require.Error(t, err)
	assert.True(t, qerrors.IsType(err, qerrors.TypeParsing))
}

func TestLoadUnsupportedExtension(t *testing.T) {
	_, err := Load(writeFile(t, "applicants.xlsx", ""))
	require.Error(t, err)
	assert.True(t, qerrors.IsType(err, qerrors.TypeNotSupported))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.True(t, qerrors.IsType(err, qerrors.TypeInput))
}
