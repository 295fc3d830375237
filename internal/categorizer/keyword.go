// Package categorizer assigns each expense to the first taxonomy category
// whose keyword occurs in its description.
package categorizer

import (
	"strings"

	"fjacquet/expense-tracker/internal/models"
	"fjacquet/expense-tracker/internal/rules"
)

// Match is the outcome of categorizing one description.
type Match struct {
	Category string
	Keyword  string // empty when nothing matched
}

// Matched reports whether a keyword selected the category.
func (m Match) Matched() bool {
	return m.Keyword != ""
}

// Assign returns the category for description under t. The description is
// lowercased and each category's keywords are tested in taxonomy order; the
// first keyword found as a substring wins. Descriptions matching nothing get
// miscellaneous. Assign has no side effects.
func Assign(description string, t *rules.Taxonomy) Match {
	lowered := strings.ToLower(description)
	match := Match{Category: models.CategoryMiscellaneous}
	if t == nil {
		return match
	}

	t.Each(func(name string, keywords []string) bool {
		for _, keyword := range keywords {
			if strings.Contains(lowered, keyword) {
				match = Match{Category: name, Keyword: keyword}
				return false
			}
		}
		return true
	})
	return match
}
