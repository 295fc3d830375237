package container

import (
	"context"
	"errors"
	"strings"
	"testing"

	"fjacquet/expense-tracker/internal/assistant"
	"fjacquet/expense-tracker/internal/config"
	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/models"
	"fjacquet/expense-tracker/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContainer(t *testing.T) {
	tests := []struct {
		name        string
		config      *config.Config
		opts        []Option
		expectError bool
		errorMsg    string
		expectAI    bool
	}{
		{
			name:        "nil config",
			config:      nil,
			expectError: true,
			errorMsg:    "configuration cannot be nil",
		},
		{
			name:   "defaults without AI",
			config: config.Default(),
		},
		{
			name:     "injected AI client",
			config:   config.Default(),
			opts:     []Option{WithAIClient(&assistant.MockAIClient{Answer: "ok"})},
			expectAI: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := append([]Option{WithLogger(logging.NewMockLogger())}, tt.opts...)
			c, err := NewContainer(tt.config, opts...)

			if tt.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Nil(t, c)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, c)
			assert.NotNil(t, c.GetLogger())
			assert.Equal(t, tt.config, c.GetConfig())
			assert.NotNil(t, c.GetStore())
			if tt.expectAI {
				assert.NotNil(t, c.GetAIClient())
			} else {
				assert.Nil(t, c.GetAIClient())
			}
			assert.NoError(t, c.Close())
		})
	}
}

func TestContainer_DefaultStoreUsesConfiguredFile(t *testing.T) {
	cfg := config.Default()
	cfg.Rules.File = "my-rules.yaml"

	c, err := NewContainer(cfg, WithLogger(logging.NewMockLogger()))
	require.NoError(t, err)

	rs, ok := c.GetStore().(*store.RuleStore)
	require.True(t, ok)
	assert.Equal(t, "my-rules.yaml", rs.RulesFile)
}

func TestContainer_TrackerOptions(t *testing.T) {
	cfg := config.Default()
	cfg.CSV.Delimiter = ";"
	cfg.Outliers.ThresholdFactor = 3.5
	cfg.Report.CurrencySymbol = "€"
	cfg.Report.TopN = 5
	cfg.Report.UnusualLimit = 7

	c, err := NewContainer(cfg, WithLogger(logging.NewMockLogger()))
	require.NoError(t, err)

	opts := c.TrackerOptions()
	assert.Equal(t, ';', opts.Delimiter)
	assert.True(t, decimal.RequireFromString("3.5").Equal(opts.Threshold))
	assert.Equal(t, "€", opts.CurrencySymbol)
	assert.Equal(t, 5, opts.TopN)
	assert.Equal(t, 7, opts.UnusualLimit)
}

func TestContainer_NewTrackerAppliesCustomRules(t *testing.T) {
	rulesStore := &store.MockRuleStore{
		Rules: []models.CategoryRule{
			{Name: "pets", Keywords: []string{"vet"}},
			{Name: "groceries", Keywords: []string{"farmers market"}},
		},
	}
	c, err := NewContainer(config.Default(),
		WithLogger(logging.NewMockLogger()),
		WithRuleLoader(rulesStore))
	require.NoError(t, err)

	tr, err := c.NewTracker()
	require.NoError(t, err)

	_, ok := tr.Taxonomy().Lookup("pets")
	assert.True(t, ok)

	data := "date,amount,description\n2024-01-02,80.00,Vet visit\n2024-01-03,20.00,Farmers Market\n"
	_, err = tr.LoadReader(strings.NewReader(data), "inline")
	require.NoError(t, err)
	_, err = tr.Categorize()
	require.NoError(t, err)

	records := tr.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "pets", records[0].Category)
	assert.Equal(t, "groceries", records[1].Category)

	other, err := c.NewTracker()
	require.NoError(t, err)
	assert.NotEqual(t, tr.ID(), other.ID())
}

func TestContainer_NewTrackerRuleLoadError(t *testing.T) {
	c, err := NewContainer(config.Default(),
		WithLogger(logging.NewMockLogger()),
		WithRuleLoader(&store.MockRuleStore{LoadRulesError: errors.New("disk on fire")}))
	require.NoError(t, err)

	_, err = c.NewTracker()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")
}

func TestContainer_NewAssistant(t *testing.T) {
	client := &assistant.MockAIClient{Answer: "42"}
	c, err := NewContainer(config.Default(),
		WithLogger(logging.NewMockLogger()),
		WithAIClient(client))
	require.NoError(t, err)

	answer, err := c.NewAssistant().Ask(context.Background(), "What is the answer?", nil)
	require.NoError(t, err)
	assert.Equal(t, "42", answer)
	assert.Len(t, client.Prompts, 1)
}
