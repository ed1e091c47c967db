package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"premium-quote/core/output"
	"premium-quote/internal/config"
)

var scenarioFlags = []string{
	"--name", "Asha",
	"--age", "30",
	"--sex", "female",
	"--bmi", "22.0",
	"--smoker", "no",
	"--vehicle-type", "car",
	"--policy-type", "basic",
	"--accident-history", "0",
	"--credit-score", "800",
	"--region-risk-score", "0.2",
	"--market-volatility-index", "0.1",
	"--driving-experience", "10",
	"--children", "0",
}

func run(t *testing.T, c *cobra.Command, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	c.SetOut(&stdout)
	c.SetErr(&stderr)
	c.SetIn(strings.NewReader(stdin))
	c.SetArgs(args)
	err := c.Execute()
	return stdout.String(), stderr.String(), err
}

func TestQuoteFromFlags(t *testing.T) {
	out, _, err := run(t, quoteCmd(), "", scenarioFlags...)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Insurance Quote for: Asha\n"))
	assert.Contains(t, out, "Final Premium: ₹7344.00")
	assert.Contains(t, out, "Thank you for choosing our insurance platform.")
}

func TestQuoteJSONFormat(t *testing.T) {
	out, _, err := run(t, quoteCmd(), "", append(scenarioFlags, "--format", "json")...)
	require.NoError(t, err)

	var q output.Quote
	require.NoError(t, json.Unmarshal([]byte(out), &q))
	assert.Equal(t, "7344.00", q.FinalPremium)
	assert.Empty(t, q.Advisories)
}

func TestQuoteUnsetFlagsAreMissing(t *testing.T) {
	out, _, err := run(t, quoteCmd(), "", "--format", "json", "--vehicle-type", "van")
	require.NoError(t, err)

	var q output.Quote
	require.NoError(t, json.Unmarshal([]byte(out), &q))
	assert.Equal(t, "Applicant", q.Name)
	assert.Equal(t, "van", q.VehicleType)
	assert.NotEmpty(t, q.Advisories)
	for _, a := range q.Advisories {
		assert.NotEqual(t, "vehicle_type", a.Field)
	}
}

func TestQuoteInteractive(t *testing.T) {
	answers := "Asha\n\n30\nfemale\n22.0\nno\ncar\nbasic\n0\n800\n0.2\n0.1\n10\n0\n"
	out, _, err := run(t, quoteCmd(), answers, "--interactive")
	require.NoError(t, err)
	assert.Contains(t, out, "Please enter applicant details:")
	assert.Contains(t, out, "Final Premium: ₹7344.00")
}

func TestQuoteUnknownFormat(t *testing.T) {
	_, _, err := run(t, quoteCmd(), "", "--format", "html")
	assert.Error(t, err)
}

func TestQuoteSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "quotes.txt")
	prev := config.Get()
	cfg := config.Default()
	cfg.Batch.OutputPath = path
	config.Set(cfg)
	t.Cleanup(func() { config.Set(prev) })

	_, _, err := run(t, quoteCmd(), "", append(scenarioFlags, "--save")...)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), output.QuoteSeparator+"\n"))
}

func TestBatchCSV(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "applicants.csv")
	require.NoError(t, os.WriteFile(input, []byte(
		"name,age,sex,bmi,smoker,vehicle_type,policy_type,accident_history,credit_score,region_risk_score,market_volatility_index,driving_experience,children\n"+
			"Asha,30,female,22.0,no,car,basic,0,800,0.2,0.1,10,0\n"+
			"Broken,1\n"+
			"Ravi,45,male,31.0,yes,truck,premium,2,550,0.7,0.3,20,2\n"), 0o644))
	outPath := filepath.Join(dir, "quotes.txt")

	out, stderr, err := run(t, batchCmd(), "", input, "--out", outPath, "--no-progress", "--limit", "0")
	require.NoError(t, err)

	assert.Contains(t, out, "Quote for Applicant #1\n")
	assert.Contains(t, out, "Quote for Applicant #3\n")
	assert.NotContains(t, out, "Quote for Applicant #2\n")
	assert.Contains(t, stderr, "Error processing applicant #2")
	assert.Contains(t, stderr, "Quotes generated: 2")
	assert.Contains(t, stderr, "Quotes saved to "+outPath)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), output.QuoteSeparator+"\n"))
	assert.True(t, strings.HasPrefix(string(data), "Insurance Quote for: Asha\n"))
}

func TestBatchLimit(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "applicants.yaml")
	require.NoError(t, os.WriteFile(input, []byte("- name: A\n- name: B\n- name: C\n"), 0o644))

	out, _, err := run(t, batchCmd(), "", input, "--out", filepath.Join(dir, "q.txt"), "--no-progress", "--limit", "2")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "Quote for Applicant #"))
}

func TestBatchUnsupportedFile(t *testing.T) {
	input := filepath.Join(t.TempDir(), "applicants.xlsx")
	require.NoError(t, os.WriteFile(input, nil, 0o644))
	_, _, err := run(t, batchCmd(), "", input)
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, versionCmd(), "")
	require.NoError(t, err)
	assert.Equal(t, "premium-quote version "+Version+"\n", out)
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "premium-quote.json")
	prev := cfgFile
	cfgFile = path
	t.Cleanup(func() { cfgFile = prev })

	out, _, err := run(t, configCmd(), "", "init")
	require.NoError(t, err)
	assert.Contains(t, out, path)

	_, _, err = run(t, configCmd(), "", "init")
	assert.Error(t, err, "existing file is not overwritten without --force")

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "₹", loaded.Quote.CurrencySymbol)

	out, _, err = run(t, configCmd(), "", "show")
	require.NoError(t, err)
	assert.Contains(t, out, `"currency_symbol": "₹"`)
}
