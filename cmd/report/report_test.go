package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/expense-tracker/cmd/root"
	"fjacquet/expense-tracker/internal/config"
	"fjacquet/expense-tracker/internal/container"
	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	input := filepath.Join(dir, "expenses.csv")
	require.NoError(t, os.WriteFile(input, []byte(
		"date,amount,description\n2024-01-05,45.20,Supermarket run\n2024-01-10,1200.00,Monthly Rent\n"), 0600))

	cfg := config.Default()
	cfg.Report.File = filepath.Join(dir, "configured_report.txt")
	c, err := container.NewContainer(cfg,
		container.WithLogger(logging.NewMockLogger()),
		container.WithRuleLoader(&store.MockRuleStore{}))
	require.NoError(t, err)
	root.SetContainer(c)
	root.SharedFlags = root.CommonFlags{Input: input}
	t.Cleanup(func() {
		root.Teardown()
		root.SharedFlags = root.CommonFlags{}
		format = ""
	})
	return dir
}

func TestReportCommand_Metadata(t *testing.T) {
	assert.Equal(t, "report", Cmd.Use)
	assert.NotNil(t, Cmd.Flags().Lookup("format"))
	assert.NotNil(t, Cmd.RunE)
}

func TestReportUsesConfiguredFile(t *testing.T) {
	dir := setup(t)

	var out bytes.Buffer
	Cmd.SetOut(&out)
	defer Cmd.SetOut(nil)
	require.NoError(t, Cmd.RunE(Cmd, nil))

	path := filepath.Join(dir, "configured_report.txt")
	assert.Contains(t, out.String(), path)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "OVERALL SUMMARY:")
	assert.Contains(t, string(content), "TOP 10 LARGEST EXPENSES:")
}

func TestReportOutputAndFormat(t *testing.T) {
	dir := setup(t)
	path := filepath.Join(dir, "report.json")
	root.SharedFlags.Output = path
	format = "json"

	Cmd.SetOut(&bytes.Buffer{})
	defer Cmd.SetOut(nil)
	require.NoError(t, Cmd.RunE(Cmd, nil))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"report_id"`)
	assert.Contains(t, string(content), `"housing"`)
}

func TestReportInvalidFormat(t *testing.T) {
	setup(t)
	format = "pdf"

	err := Cmd.RunE(Cmd, nil)
	assert.Error(t, err)
}
