package store

import (
	"fjacquet/expense-tracker/internal/models"
)

// RuleLoader is the read side of RuleStore.
type RuleLoader interface {
	LoadRules() ([]models.CategoryRule, error)
}

// MockRuleStore is a mock implementation of RuleStore for testing.
type MockRuleStore struct {
	Rules []models.CategoryRule
	Saved []models.CategoryRule

	LoadRulesError error
	SaveRulesError error
}

// LoadRules returns a copy of the mock rules.
func (m *MockRuleStore) LoadRules() ([]models.CategoryRule, error) {
	if m.LoadRulesError != nil {
		return nil, m.LoadRulesError
	}
	out := make([]models.CategoryRule, len(m.Rules))
	for i, r := range m.Rules {
		out[i] = r.Clone()
	}
	return out, nil
}

// SaveRules records the rules it was given.
func (m *MockRuleStore) SaveRules(list []models.CategoryRule) error {
	if m.SaveRulesError != nil {
		return m.SaveRulesError
	}
	m.Saved = list
	return nil
}
