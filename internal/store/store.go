// Package store loads and saves user category rules.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/models"
	"fjacquet/expense-tracker/internal/rules"

	"gopkg.in/yaml.v3"
)

// DefaultRulesFile is the file name searched when none is configured.
const DefaultRulesFile = "rules.yaml"

// RulesConfig is the YAML layout of a rules file.
type RulesConfig struct {
	Categories []models.CategoryRule `yaml:"categories"`
}

// RuleStore manages loading and saving of custom category rules.
//
// Files ending in .yaml or .yml hold a RulesConfig (or a bare list of
// rules); any other file is read as "category: kw1, kw2" lines.
type RuleStore struct {
	RulesFile string
	logger    logging.Logger
}

// NewRuleStore creates a store for rulesFile; an empty name means
// DefaultRulesFile.
func NewRuleStore(rulesFile string, logger logging.Logger) *RuleStore {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &RuleStore{RulesFile: rulesFile, logger: logger}
}

// FindConfigFile looks for filename as given, then under ./config, then under
// ~/.config/expense-tracker.
func (s *RuleStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config", "expense-tracker", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	return "", os.ErrNotExist
}

func (s *RuleStore) filename() string {
	if s.RulesFile == "" {
		return DefaultRulesFile
	}
	return s.RulesFile
}

// LoadRules reads the rules file. A missing file yields an empty list.
func (s *RuleStore) LoadRules() ([]models.CategoryRule, error) {
	filename := s.filename()

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		s.logger.Debug("Rules file not found, using built-in categories",
			logging.F(logging.FieldFile, filename))
		return []models.CategoryRule{}, nil
	}

	data, err := os.ReadFile(filePath) // #nosec G304 -- path is user-selected configuration
	if err != nil {
		return nil, fmt.Errorf("error reading rules file: %w", err)
	}

	var loaded []models.CategoryRule
	if isYAML(filePath) {
		loaded, err = parseYAMLRules(data)
		if err != nil {
			return nil, fmt.Errorf("error parsing rules file %s: %w", filePath, err)
		}
	} else {
		loaded = rules.ParseCustomRules(string(data))
	}

	s.logger.Debug("Loaded custom rules",
		logging.F(logging.FieldFile, filePath),
		logging.F(logging.FieldCount, len(loaded)))
	return loaded, nil
}

func parseYAMLRules(data []byte) ([]models.CategoryRule, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return []models.CategoryRule{}, nil
	}

	var cfg RulesConfig
	if err := yaml.Unmarshal(data, &cfg); err == nil && len(cfg.Categories) > 0 {
		return cfg.Categories, nil
	}

	var list []models.CategoryRule
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SaveRules writes rules to the configured file, creating its directory.
func (s *RuleStore) SaveRules(list []models.CategoryRule) error {
	filePath := s.filename()
	if found, err := s.FindConfigFile(filePath); err == nil {
		filePath = found
	}

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory for rules file: %w", err)
	}

	var data []byte
	if isYAML(filePath) {
		out, err := yaml.Marshal(RulesConfig{Categories: list})
		if err != nil {
			return fmt.Errorf("error marshaling rules: %w", err)
		}
		data = out
	} else {
		data = []byte(rules.FormatCustomRules(list))
	}

	if err := os.WriteFile(filePath, data, models.PermissionFile); err != nil {
		return fmt.Errorf("error writing rules file: %w", err)
	}

	s.logger.Info("Saved custom rules",
		logging.F(logging.FieldFile, filePath),
		logging.F(logging.FieldCount, len(list)))
	return nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
