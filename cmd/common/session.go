// Package common contains shared functionality for command handlers
package common

import (
	"fmt"
	"io"
	"os"
	"strings"

	"fjacquet/expense-tracker/cmd/root"
	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/models"
	"fjacquet/expense-tracker/internal/rules"
	"fjacquet/expense-tracker/internal/store"
	"fjacquet/expense-tracker/internal/tracker"
	"fjacquet/expense-tracker/internal/validation"

	"github.com/spf13/cobra"
)

// CustomRules collects rules from a rules file and from inline definitions,
// in that order.
func CustomRules(file string, inline []string, logger logging.Logger) ([]models.CategoryRule, error) {
	var out []models.CategoryRule
	if file != "" {
		s := store.NewRuleStore(file, logger)
		if _, err := s.FindConfigFile(file); err != nil {
			return nil, fmt.Errorf("rules file not found: %s", file)
		}
		loaded, err := s.LoadRules()
		if err != nil {
			return nil, err
		}
		out = append(out, loaded...)
	}
	if len(inline) > 0 {
		out = append(out, rules.ParseCustomRules(strings.Join(inline, "\n"))...)
	}
	return out, nil
}

// SaveCustomRules merges inline rules into the rules file at path, creating
// it when missing, and returns the rules written.
func SaveCustomRules(path string, inline []string, logger logging.Logger) ([]models.CategoryRule, error) {
	s := store.NewRuleStore(path, logger)
	existing, err := s.LoadRules()
	if err != nil {
		return nil, err
	}
	merged := rules.MergeRules(existing, rules.ParseCustomRules(strings.Join(inline, "\n")))
	if err := s.SaveRules(merged); err != nil {
		return nil, err
	}
	logger.Info("Saved custom rules",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldCount, len(merged)))
	return merged, nil
}

// PersistRules saves the --rule definitions into the --rules file when
// --save-rules is set.
func PersistRules() error {
	if !root.SharedFlags.SaveRules {
		return nil
	}
	if root.SharedFlags.RulesFile == "" {
		return fmt.Errorf("--save-rules requires a rules file (--rules)")
	}
	_, err := SaveCustomRules(root.SharedFlags.RulesFile, root.SharedFlags.Rules, root.GetLogger())
	return err
}

// NewTracker returns a tracker from the application container with the
// command-line rules applied.
func NewTracker() (*tracker.Tracker, error) {
	c := root.GetContainer()
	if c == nil {
		return nil, fmt.Errorf("application not initialized")
	}

	t, err := c.NewTracker()
	if err != nil {
		return nil, err
	}

	custom, err := CustomRules(root.SharedFlags.RulesFile, root.SharedFlags.Rules, root.GetLogger())
	if err != nil {
		return nil, err
	}
	if len(custom) > 0 {
		t.AddCustomRules(custom)
	}
	return t, nil
}

// LoadSession builds a tracker and loads and categorizes input.
func LoadSession(input string) (*tracker.Tracker, error) {
	if input == "" {
		return nil, fmt.Errorf("input file is required (--input)")
	}
	if err := validation.InputFile(input); err != nil {
		return nil, err
	}
	if err := PersistRules(); err != nil {
		return nil, err
	}

	t, err := NewTracker()
	if err != nil {
		return nil, err
	}

	if _, err := t.Load(input); err != nil {
		return nil, err
	}

	if _, err := t.Categorize(); err != nil {
		return nil, err
	}
	return t, nil
}

// WriteOutput writes data to path, or to the command's output when path is
// empty.
func WriteOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, models.PermissionFile); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	root.GetLogger().Info("Output written", logging.F(logging.FieldOutputFile, path))
	return nil
}

// Output returns the destination writer for path and a function closing it.
func Output(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path) // #nosec G304 -- CLI tool requires user-provided output paths
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}
