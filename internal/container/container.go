// Package container provides dependency injection for the expense tracker.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"context"
	"fmt"
	"io"
	"time"

	"fjacquet/expense-tracker/internal/assistant"
	"fjacquet/expense-tracker/internal/config"
	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/store"
	"fjacquet/expense-tracker/internal/tracker"

	"github.com/shopspring/decimal"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation. Trackers are not shared: each call
// to NewTracker returns a fresh session wired with the same configuration.
type Container struct {
	logger   logging.Logger
	config   *config.Config
	store    store.RuleLoader
	aiClient assistant.AIClient
}

// Option customizes NewContainer.
type Option func(*Container)

// WithLogger replaces the logger built from configuration.
func WithLogger(logger logging.Logger) Option {
	return func(c *Container) { c.logger = logger }
}

// WithRuleLoader replaces the file-backed rule store.
func WithRuleLoader(loader store.RuleLoader) Option {
	return func(c *Container) { c.store = loader }
}

// WithAIClient installs client instead of connecting to Gemini.
func WithAIClient(client assistant.AIClient) Option {
	return func(c *Container) { c.aiClient = client }
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	c := &Container{config: cfg}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = config.ConfigureLoggingFromConfig(cfg)
	}
	if c.store == nil {
		c.store = store.NewRuleStore(cfg.Rules.File, c.logger)
	}

	if c.aiClient == nil && cfg.AI.Enabled && cfg.AI.APIKey != "" {
		client, err := assistant.NewGeminiClient(context.Background(), assistant.GeminiOptions{
			APIKey:            cfg.AI.APIKey,
			Model:             cfg.AI.Model,
			RequestsPerMinute: cfg.AI.RequestsPerMinute,
			Timeout:           time.Duration(cfg.AI.TimeoutSeconds) * time.Second,
		}, c.logger)
		if err != nil {
			return nil, err
		}
		c.aiClient = client
	}

	c.logger.Info("Container initialized successfully",
		logging.F("ai_enabled", c.aiClient != nil))

	return c, nil
}

// TrackerOptions translates configuration into tracker options.
func (c *Container) TrackerOptions() tracker.Options {
	var delimiter rune = ','
	if r := []rune(c.config.CSV.Delimiter); len(r) == 1 {
		delimiter = r[0]
	}
	return tracker.Options{
		Delimiter:      delimiter,
		Threshold:      decimal.NewFromFloat(c.config.Outliers.ThresholdFactor),
		CurrencySymbol: c.config.Report.CurrencySymbol,
		TopN:           c.config.Report.TopN,
		UnusualLimit:   c.config.Report.UnusualLimit,
	}
}

// NewTracker returns a fresh tracker with the configured custom rules
// already merged into its taxonomy.
func (c *Container) NewTracker() (*tracker.Tracker, error) {
	t := tracker.New(c.TrackerOptions(), c.logger)

	custom, err := c.store.LoadRules()
	if err != nil {
		return nil, fmt.Errorf("error loading custom rules: %w", err)
	}
	if len(custom) > 0 {
		t.AddCustomRules(custom)
	}
	return t, nil
}

// NewAssistant returns an assistant bound to the configured AI client,
// which may be nil.
func (c *Container) NewAssistant() *assistant.Assistant {
	return assistant.New(c.aiClient, c.config.Report.CurrencySymbol, c.logger)
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the container's rule store.
func (c *Container) GetStore() store.RuleLoader {
	return c.store
}

// GetAIClient returns the AI client, or nil if AI is not enabled.
func (c *Container) GetAIClient() assistant.AIClient {
	return c.aiClient
}

// Close releases the AI client connection, if any.
func (c *Container) Close() error {
	if closer, ok := c.aiClient.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("error closing AI client: %w", err)
		}
	}
	c.logger.Debug("Container closed")
	return nil
}
