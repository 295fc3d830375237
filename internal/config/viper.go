// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/validation"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. EXPENSE_LOG_LEVEL.
const EnvPrefix = "EXPENSE"

// LogConfig controls the logging adapter.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// CSVConfig controls how expense files are read and exported.
type CSVConfig struct {
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
}

// RulesConfig points at the optional custom rules file.
type RulesConfig struct {
	File string `mapstructure:"file" yaml:"file"`
}

// OutliersConfig holds the unusual-expense threshold.
type OutliersConfig struct {
	ThresholdFactor float64 `mapstructure:"threshold_factor" yaml:"threshold_factor"`
}

// ReportConfig holds report rendering options.
type ReportConfig struct {
	File           string `mapstructure:"file" yaml:"file"`
	Format         string `mapstructure:"format" yaml:"format"`
	CurrencySymbol string `mapstructure:"currency_symbol" yaml:"currency_symbol"`
	TopN           int    `mapstructure:"top_n" yaml:"top_n"`
	UnusualLimit   int    `mapstructure:"unusual_limit" yaml:"unusual_limit"`
}

// AIConfig configures the language-model collaborator.
type AIConfig struct {
	Enabled           bool   `mapstructure:"enabled" yaml:"enabled"`
	Model             string `mapstructure:"model" yaml:"model"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute" yaml:"requests_per_minute"`
	TimeoutSeconds    int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	APIKey            string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
}

// BatchConfig bounds concurrent batch analysis.
type BatchConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// Config represents the complete application configuration
type Config struct {
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	CSV      CSVConfig      `mapstructure:"csv" yaml:"csv"`
	Rules    RulesConfig    `mapstructure:"rules" yaml:"rules"`
	Outliers OutliersConfig `mapstructure:"outliers" yaml:"outliers"`
	Report   ReportConfig   `mapstructure:"report" yaml:"report"`
	AI       AIConfig       `mapstructure:"ai" yaml:"ai"`
	Batch    BatchConfig    `mapstructure:"batch" yaml:"batch"`
}

// InitializeConfig loads configuration from defaults, an optional
// config.yaml and EXPENSE_* environment variables, in increasing precedence.
func InitializeConfig() (*Config, error) {
	return InitializeConfigFromFile("")
}

// InitializeConfigFromFile is InitializeConfig with an explicit config file.
// An empty path searches $HOME/.expense-tracker, .expense-tracker and the
// working directory for config.yaml.
func InitializeConfigFromFile(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.expense-tracker")
		v.AddConfigPath(".expense-tracker")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if path != "" {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// The API key is read unprefixed, matching the Gemini tooling convention.
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind GEMINI_API_KEY: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns the configuration produced by defaults alone.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	// Defaults are static and always decode.
	_ = v.Unmarshal(&config)
	return &config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("rules.file", "")

	v.SetDefault("outliers.threshold_factor", 2.0)

	v.SetDefault("report.file", "expense_report.txt")
	v.SetDefault("report.format", "text")
	v.SetDefault("report.currency_symbol", "$")
	v.SetDefault("report.top_n", 10)
	v.SetDefault("report.unusual_limit", 10)

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.requests_per_minute", 10)
	v.SetDefault("ai.timeout_seconds", 30)

	v.SetDefault("batch.workers", 4)
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len([]rune(config.CSV.Delimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if config.Outliers.ThresholdFactor <= 0 {
		return fmt.Errorf("outliers.threshold_factor must be positive, got: %f", config.Outliers.ThresholdFactor)
	}

	if err := validation.ReportFormat(config.Report.Format); err != nil {
		return fmt.Errorf("invalid report format: %w", err)
	}

	if config.Report.TopN < 1 || config.Report.TopN > 100 {
		return fmt.Errorf("report.top_n must be between 1 and 100, got: %d", config.Report.TopN)
	}

	if config.Report.UnusualLimit < 1 || config.Report.UnusualLimit > 100 {
		return fmt.Errorf("report.unusual_limit must be between 1 and 100, got: %d", config.Report.UnusualLimit)
	}

	if config.AI.Enabled {
		if config.AI.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY required when AI is enabled")
		}

		if config.AI.RequestsPerMinute < 1 || config.AI.RequestsPerMinute > 1000 {
			return fmt.Errorf("ai.requests_per_minute must be between 1 and 1000, got: %d", config.AI.RequestsPerMinute)
		}

		if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 300 {
			return fmt.Errorf("ai.timeout_seconds must be between 1 and 300, got: %d", config.AI.TimeoutSeconds)
		}
	}

	if config.Batch.Workers < 1 || config.Batch.Workers > 64 {
		return fmt.Errorf("batch.workers must be between 1 and 64, got: %d", config.Batch.Workers)
	}

	return nil
}

// ConfigureLoggingFromConfig builds the application logger from the Log section.
func ConfigureLoggingFromConfig(config *Config) logging.Logger {
	return logging.NewLogrusAdapter(config.Log.Level, config.Log.Format)
}
