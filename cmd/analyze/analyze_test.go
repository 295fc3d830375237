package analyze

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fjacquet/expense-tracker/cmd/root"
	"fjacquet/expense-tracker/internal/config"
	"fjacquet/expense-tracker/internal/container"
	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const expensesCSV = `date,amount,description
2024-01-05,45.20,Supermarket run
2024-01-10,1200.00,Monthly Rent
2024-01-12,14.80,Grocery top-up
2024-02-03,9.99,Netflix
2024-02-10,300.00,Whole Foods Market
2024-02-11,abc,Mystery
`

func setup(t *testing.T) {
	t.Helper()
	input := filepath.Join(t.TempDir(), "expenses.csv")
	require.NoError(t, os.WriteFile(input, []byte(expensesCSV), 0600))

	c, err := container.NewContainer(config.Default(),
		container.WithLogger(logging.NewMockLogger()),
		container.WithRuleLoader(&store.MockRuleStore{}))
	require.NoError(t, err)
	root.SetContainer(c)
	root.SharedFlags = root.CommonFlags{Input: input}

	now = func() time.Time { return time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC) }
	t.Cleanup(func() {
		root.Teardown()
		root.SharedFlags = root.CommonFlags{}
		format, scope, budget = "text", "all", ""
		now = time.Now
	})
}

func run(t *testing.T) (string, error) {
	t.Helper()
	var out bytes.Buffer
	Cmd.SetOut(&out)
	defer Cmd.SetOut(nil)
	err := Cmd.RunE(Cmd, nil)
	return out.String(), err
}

func TestAnalyzeCommand_Metadata(t *testing.T) {
	assert.Equal(t, "analyze", Cmd.Use)
	assert.NotNil(t, Cmd.RunE)
	for _, name := range []string{"format", "scope", "budget"} {
		assert.NotNil(t, Cmd.Flags().Lookup(name), name)
	}
}

func TestAnalyzeText(t *testing.T) {
	setup(t)

	out, err := run(t)
	require.NoError(t, err)

	assert.Contains(t, out, "CATEGORY SUMMARY (all):")
	assert.Contains(t, out, "Housing")
	assert.Contains(t, out, "$1200.00")
	assert.Contains(t, out, "MONTHLY BREAKDOWN:")
	assert.Contains(t, out, "January 2024")
	assert.Contains(t, out, "February 2024")
	assert.Contains(t, out, "UNUSUAL EXPENSES:")
	assert.Contains(t, out, "Whole Foods Market")
	assert.NotContains(t, out, "BUDGET:")
}

func TestAnalyzeJSONWithBudget(t *testing.T) {
	setup(t)
	format = "json"
	scope = "present"
	budget = "500"

	out, err := run(t)
	require.NoError(t, err)

	var got Analysis
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, "present", got.Scope)
	require.Len(t, got.Categories, 2)
	assert.Equal(t, "groceries", got.Categories[0].Category)
	assert.True(t, decimal.RequireFromString("300").Equal(got.Categories[0].Total))

	require.NotNil(t, got.Budget)
	assert.True(t, decimal.RequireFromString("309.99").Equal(got.Budget.Total))
	assert.True(t, decimal.RequireFromString("190.01").Equal(got.Budget.Remaining))
	assert.True(t, decimal.RequireFromString("61.998").Equal(got.Budget.Percentage))
	assert.False(t, got.Budget.OverBudget)
}

func TestAnalyzeTextWithBudget(t *testing.T) {
	setup(t)
	scope = "present"
	budget = "500"

	out, err := run(t)
	require.NoError(t, err)
	assert.Contains(t, out, "BUDGET:")
	assert.Contains(t, out, "Spent $309.99 of $500.00 (62.0%)")
	assert.Contains(t, out, "Remaining $190.01")
}

func TestAnalyzeInvalidFlags(t *testing.T) {
	tests := []struct {
		name    string
		modify  func()
		wantErr string
	}{
		{"scope", func() { scope = "future" }, "invalid scope"},
		{"format", func() { format = "yaml" }, "invalid format"},
		{"budget", func() { budget = "lots" }, "invalid budget"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setup(t)
			tt.modify()
			_, err := run(t)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestAnalyzeRequiresInput(t *testing.T) {
	setup(t)
	root.SharedFlags.Input = ""

	_, err := run(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input file is required")
}
