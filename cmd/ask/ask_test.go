package ask

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/expense-tracker/cmd/root"
	"fjacquet/expense-tracker/internal/assistant"
	"fjacquet/expense-tracker/internal/config"
	"fjacquet/expense-tracker/internal/container"
	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, client assistant.AIClient) {
	t.Helper()
	input := filepath.Join(t.TempDir(), "expenses.csv")
	require.NoError(t, os.WriteFile(input, []byte(
		"date,amount,description\n2025-05-01,1200.00,Monthly Rent\n2025-05-03,80.50,Supermarket run\n2025-04-02,999.00,Laptop store\n"), 0600))

	opts := []container.Option{
		container.WithLogger(logging.NewMockLogger()),
		container.WithRuleLoader(&store.MockRuleStore{}),
	}
	if client != nil {
		opts = append(opts, container.WithAIClient(client))
	}
	c, err := container.NewContainer(config.Default(), opts...)
	require.NoError(t, err)
	root.SetContainer(c)
	root.SharedFlags = root.CommonFlags{Input: input}
	t.Cleanup(func() {
		root.Teardown()
		root.SharedFlags = root.CommonFlags{}
		month = ""
	})
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	Cmd.SetOut(&out)
	defer Cmd.SetOut(nil)
	err := Cmd.RunE(Cmd, args)
	return out.String(), err
}

func TestAskCommand_Metadata(t *testing.T) {
	assert.Equal(t, "ask <question>", Cmd.Use)
	assert.NotNil(t, Cmd.Flags().Lookup("month"))
	assert.Error(t, Cmd.Args(Cmd, nil))
}

func TestAskMonthSummary(t *testing.T) {
	setup(t, nil)

	out, err := run(t, "Give me a summary of", "May 2025")
	require.NoError(t, err)
	assert.Contains(t, out, "Summary for May 2025")
	assert.Contains(t, out, "- Total expenses: $1280.50")
	assert.Contains(t, out, "Housing: $1200.00")
}

func TestAskDelegatesWithMonthScope(t *testing.T) {
	client := &assistant.MockAIClient{Answer: "Cook at home more."}
	setup(t, client)
	month = "2025-05"

	out, err := run(t, "Where can I save money?")
	require.NoError(t, err)
	assert.Equal(t, "Cook at home more.\n", out)

	require.Len(t, client.Prompts, 1)
	assert.Contains(t, client.Prompts[0], "Monthly Rent")
	assert.NotContains(t, client.Prompts[0], "Laptop")
}

func TestAskWithoutAI(t *testing.T) {
	setup(t, nil)

	_, err := run(t, "Where can I save money?")
	require.Error(t, err)
	assert.ErrorIs(t, err, assistant.ErrAIUnavailable)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestAskInvalidMonth(t *testing.T) {
	setup(t, nil)
	month = "May"

	_, err := run(t, "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected YYYY-MM")
}
