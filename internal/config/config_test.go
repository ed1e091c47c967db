package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qerrors "premium-quote/internal/errors"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := Default()
	cfg.Quote.CurrencySymbol = "$"
	cfg.Batch.Limit = 5
	cfg.Server.Addr = ":9090"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "$", loaded.Quote.CurrencySymbol)
	assert.Equal(t, 5, loaded.Batch.Limit)
	assert.Equal(t, ":9090", loaded.Server.Addr)
	assert.Equal(t, "text", loaded.Quote.Format)
}

func TestLoadYAMLPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("quote:\n  format: json\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Quote.Format)
	assert.Equal(t, "₹", cfg.Quote.CurrencySymbol)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("PREMIUM_QUOTE_QUOTE_CURRENCY_SYMBOL", "€")
	t.Setenv("PREMIUM_QUOTE_BATCH_LIMIT", "3")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "€", cfg.Quote.CurrencySymbol)
	assert.Equal(t, 3, cfg.Batch.Limit)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, qerrors.IsType(err, qerrors.TypeConfig))
}
