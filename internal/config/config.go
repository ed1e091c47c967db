// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	qerrors "premium-quote/internal/errors"
	"premium-quote/internal/logging"
)

// EnvPrefix is the prefix for environment overrides, e.g. PREMIUM_QUOTE_QUOTE_CURRENCY_SYMBOL.
const EnvPrefix = "PREMIUM_QUOTE"

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version" mapstructure:"version"`

	// Quote contains quote rendering configuration
	Quote QuoteConfig `json:"quote" mapstructure:"quote"`

	// Batch contains batch run configuration
	Batch BatchConfig `json:"batch" mapstructure:"batch"`

	// Server contains HTTP API configuration
	Server ServerConfig `json:"server" mapstructure:"server"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging" mapstructure:"logging"`
}

// QuoteConfig contains quote output settings
type QuoteConfig struct {
	// CurrencySymbol is prefixed to every monetary value in text quotes
	CurrencySymbol string `json:"currency_symbol" mapstructure:"currency_symbol"`

	// Format is the default output format (text, json, yaml)
	Format string `json:"format" mapstructure:"format"`
}

// BatchConfig contains batch-mode settings
type BatchConfig struct {
	// Limit caps the number of records quoted (0 = all)
	Limit int `json:"limit" mapstructure:"limit"`

	// OutputPath is where rendered quotes are saved
	OutputPath string `json:"output_path" mapstructure:"output_path"`

	// Progress shows a progress bar on stderr
	Progress bool `json:"progress" mapstructure:"progress"`
}

// ServerConfig contains HTTP API settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr" mapstructure:"addr"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Quote: QuoteConfig{
			CurrencySymbol: "₹",
			Format:         "text",
		},
		Batch: BatchConfig{
			Limit:      0,
			OutputPath: filepath.Join("output", "insurance_quotes.txt"),
			Progress:   true,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Logging: logging.DefaultConfig(),
	}
}

// DefaultPath returns $HOME/.premium-quote.json
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".premium-quote.json")
}

// Load loads configuration from a file, then applies PREMIUM_QUOTE_* environment overrides.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, qerrors.Config("failed to read config "+path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, qerrors.Config("failed to stat config "+path, err)
		}
	}

	config := Default()
	if err := v.Unmarshal(config); err != nil {
		return nil, qerrors.Config("failed to decode config", err)
	}

	return config, nil
}

func setDefaults(v *viper.Viper, c *Config) {
	v.SetDefault("version", c.Version)
	v.SetDefault("quote.currency_symbol", c.Quote.CurrencySymbol)
	v.SetDefault("quote.format", c.Quote.Format)
	v.SetDefault("batch.limit", c.Batch.Limit)
	v.SetDefault("batch.output_path", c.Batch.OutputPath)
	v.SetDefault("batch.progress", c.Batch.Progress)
	v.SetDefault("server.addr", c.Server.Addr)
	v.SetDefault("logging.level", c.Logging.Level)
	v.SetDefault("logging.format", c.Logging.Format)
	v.SetDefault("logging.output", c.Logging.Output)
	v.SetDefault("logging.development", c.Logging.Development)
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
