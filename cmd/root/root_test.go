package root_test

import (
	"testing"

	"fjacquet/expense-tracker/cmd/root"
	"fjacquet/expense-tracker/internal/config"
	"fjacquet/expense-tracker/internal/container"
	"fjacquet/expense-tracker/internal/logging"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "expense-tracker", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "categorize and analyze personal expenses")
	assert.NotNil(t, root.Cmd.Run)
	assert.NotNil(t, root.Cmd.PersistentPreRunE)
	assert.NotNil(t, root.Cmd.PersistentPostRun)
}

func TestRootCommand_Flags(t *testing.T) {
	root.Init()
	root.Init()

	tests := []struct {
		name      string
		shorthand string
	}{
		{"input", "i"},
		{"output", "o"},
		{"rules", "r"},
		{"rule", ""},
		{"config", ""},
		{"save-rules", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := root.Cmd.PersistentFlags().Lookup(tt.name)
			require.NotNil(t, flag)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
		})
	}
}

func TestRootCommand_Run(t *testing.T) {
	assert.NotPanics(t, func() {
		root.Cmd.Run(&cobra.Command{}, []string{})
	})
}

func TestSetContainer(t *testing.T) {
	logger := logging.NewMockLogger()
	c, err := container.NewContainer(config.Default(), container.WithLogger(logger))
	require.NoError(t, err)

	root.SetContainer(c)
	defer root.Teardown()

	assert.Same(t, c, root.GetContainer())
	assert.Equal(t, c.GetConfig(), root.GetConfig())
	assert.Equal(t, logger, root.GetLogger())

	root.Teardown()
	assert.Nil(t, root.GetContainer())
	assert.Nil(t, root.GetConfig())
}
