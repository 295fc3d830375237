// Package root contains the root command for the application
package root

import (
	"fmt"
	"sync"

	"fjacquet/expense-tracker/internal/config"
	"fjacquet/expense-tracker/internal/container"
	"fjacquet/expense-tracker/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input      string
	Output     string
	RulesFile  string
	Rules      []string
	ConfigFile string
	SaveRules  bool
}

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "expense-tracker",
		Short: "A CLI tool to categorize and analyze personal expenses from CSV files.",
		Long: `expense-tracker reads a CSV of expenses (date, amount, description),
assigns each one a category from an ordered keyword taxonomy and reports
category totals, monthly trends and unusually large expenses.

Custom keyword rules can be supplied as a file (--rules) or inline (--rule):
  expense-tracker analyze -i expenses.csv --rule "pets: vet, pet food"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to expense-tracker!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return Setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			Teardown()
		},
	}

	// SharedFlags holds the persistent flags accessible to all commands
	SharedFlags = CommonFlags{}

	appContainer *container.Container
	initOnce     sync.Once
)

// Init initializes the root command and all flags
func Init() {
	initOnce.Do(func() {
		Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file (or directory for batch)")
		Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (or directory for batch)")
		Cmd.PersistentFlags().StringVarP(&SharedFlags.RulesFile, "rules", "r", "", "Custom rules file (category: kw1, kw2 per line, or YAML)")
		Cmd.PersistentFlags().StringArrayVar(&SharedFlags.Rules, "rule", nil, "Inline custom rule, e.g. \"pets: vet, pet food\" (repeatable)")
		Cmd.PersistentFlags().BoolVar(&SharedFlags.SaveRules, "save-rules", false, "Merge --rule definitions into the --rules file")
		Cmd.PersistentFlags().StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default: search for config.yaml)")
	})
}

// Setup loads .env and configuration and builds the application container.
func Setup() error {
	config.LoadEnv(Log, ".")

	cfg, err := config.InitializeConfigFromFile(SharedFlags.ConfigFile)
	if err != nil {
		return err
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	SetContainer(c)
	return nil
}

// Teardown releases the container.
func Teardown() {
	if appContainer == nil {
		return
	}
	if err := appContainer.Close(); err != nil {
		Log.WithError(err).Warn("Failed to close application resources")
	}
	appContainer = nil
}

// SetContainer installs c as the application container and adopts its logger.
func SetContainer(c *container.Container) {
	appContainer = c
	if c != nil {
		Log = c.GetLogger()
	}
}

// GetContainer returns the application container, or nil before Setup.
func GetContainer() *container.Container {
	return appContainer
}

// GetConfig returns the loaded configuration, or nil before Setup.
func GetConfig() *config.Config {
	if appContainer == nil {
		return nil
	}
	return appContainer.GetConfig()
}

// GetLogger returns the logger commands should use.
func GetLogger() logging.Logger {
	return Log
}
