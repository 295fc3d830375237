// Package rules holds the ordered keyword taxonomy used to categorize
// expense descriptions.
package rules

import (
	"strings"

	"fjacquet/expense-tracker/internal/models"
)

// Taxonomy is an ordered list of category rules. Order is semantically
// significant: the first category with a matching keyword wins, so earlier
// categories shadow later ones. Names are unique and the last entry is always
// the keyword-less miscellaneous bucket.
//
// A Taxonomy is owned by a single tracker and is not safe for concurrent
// mutation.
type Taxonomy struct {
	rules []models.CategoryRule
	index map[string]int
}

var defaultRules = []models.CategoryRule{
	{Name: "groceries", Keywords: []string{"supermarket", "grocery", "food mart", "market"}},
	{Name: "dining", Keywords: []string{"restaurant", "cafe", "coffee", "dining", "bar", "pub"}},
	{Name: "transportation", Keywords: []string{"gas", "fuel", "uber", "lyft", "taxi", "bus", "train", "transport", "metro"}},
	{Name: "utilities", Keywords: []string{"electric", "water", "gas bill", "internet", "phone", "utility"}},
	{Name: "entertainment", Keywords: []string{"movie", "theater", "concert", "netflix", "spotify", "subscription"}},
	{Name: "shopping", Keywords: []string{"amazon", "mall", "retail", "clothing", "store", "online purchase"}},
	{Name: "healthcare", Keywords: []string{"doctor", "pharmacy", "hospital", "medical", "dental", "health"}},
	{Name: "housing", Keywords: []string{"rent", "mortgage", "lease", "property"}},
	{Name: "travel", Keywords: []string{"hotel", "flight", "airbnb", "vacation", "travel"}},
	{Name: "education", Keywords: []string{"tuition", "course", "book", "education", "school"}},
	{Name: "personal care", Keywords: []string{"haircut", "salon", "spa", "gym"}},
	{Name: models.CategoryMiscellaneous},
}

// Default returns a fresh copy of the built-in taxonomy.
func Default() *Taxonomy {
	return New(defaultRules)
}

// New builds a taxonomy from rules, normalizing names and keywords. Repeated
// names are merged into the first occurrence. A miscellaneous bucket is
// appended when rules lacks one, and moved to the end when present.
func New(rules []models.CategoryRule) *Taxonomy {
	t := &Taxonomy{index: make(map[string]int)}
	var misc []string
	for _, r := range rules {
		name := NormalizeName(r.Name)
		if name == "" {
			continue
		}
		if name == models.CategoryMiscellaneous {
			misc = appendKeywords(misc, r.Keywords)
			continue
		}
		if i, ok := t.index[name]; ok {
			t.rules[i].Keywords = appendKeywords(t.rules[i].Keywords, r.Keywords)
			continue
		}
		t.index[name] = len(t.rules)
		t.rules = append(t.rules, models.CategoryRule{Name: name, Keywords: appendKeywords(nil, r.Keywords)})
	}
	t.index[models.CategoryMiscellaneous] = len(t.rules)
	t.rules = append(t.rules, models.CategoryRule{Name: models.CategoryMiscellaneous, Keywords: misc})
	if t.rules[len(t.rules)-1].Keywords == nil {
		t.rules[len(t.rules)-1].Keywords = []string{}
	}
	return t
}

// AddCustomRules merges user rules into the taxonomy and returns the names of
// the categories it touched, in input order.
//
// Keywords for an existing category are appended after its current keywords.
// A new category is inserted just before miscellaneous, so every built-in
// category keeps precedence over it. Keywords are trimmed and lowercased;
// empty or already-present keywords are skipped. The taxonomy never shrinks.
func (t *Taxonomy) AddCustomRules(rules []models.CategoryRule) []string {
	var touched []string
	seen := make(map[string]bool)
	for _, r := range rules {
		name := NormalizeName(r.Name)
		if name == "" {
			continue
		}
		if i, ok := t.index[name]; ok {
			t.rules[i].Keywords = appendKeywords(t.rules[i].Keywords, r.Keywords)
		} else {
			t.insertBeforeMiscellaneous(models.CategoryRule{Name: name, Keywords: appendKeywords(nil, r.Keywords)})
		}
		if !seen[name] {
			seen[name] = true
			touched = append(touched, name)
		}
	}
	return touched
}

func (t *Taxonomy) insertBeforeMiscellaneous(rule models.CategoryRule) {
	last := len(t.rules) - 1
	misc := t.rules[last]
	t.rules[last] = rule
	t.rules = append(t.rules, misc)
	t.index[rule.Name] = last
	t.index[misc.Name] = last + 1
}

// Rules returns a deep copy of the ordered rules.
func (t *Taxonomy) Rules() []models.CategoryRule {
	out := make([]models.CategoryRule, len(t.rules))
	for i, r := range t.rules {
		out[i] = r.Clone()
	}
	return out
}

// Each calls fn for every category in order until fn returns false. The
// keyword slice must not be modified.
func (t *Taxonomy) Each(fn func(name string, keywords []string) bool) {
	for _, r := range t.rules {
		if !fn(r.Name, r.Keywords) {
			return
		}
	}
}

// Names returns category names in precedence order.
func (t *Taxonomy) Names() []string {
	names := make([]string, len(t.rules))
	for i, r := range t.rules {
		names[i] = r.Name
	}
	return names
}

// Len is the number of categories, miscellaneous included.
func (t *Taxonomy) Len() int {
	return len(t.rules)
}

// Lookup returns a copy of the named category rule.
func (t *Taxonomy) Lookup(name string) (models.CategoryRule, bool) {
	i, ok := t.index[NormalizeName(name)]
	if !ok {
		return models.CategoryRule{}, false
	}
	return t.rules[i].Clone(), true
}

// Clone returns an independent copy.
func (t *Taxonomy) Clone() *Taxonomy {
	return New(t.rules)
}

// NormalizeName trims and lowercases a category name.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NormalizeKeyword trims and lowercases a keyword.
func NormalizeKeyword(keyword string) string {
	return strings.ToLower(strings.TrimSpace(keyword))
}

func appendKeywords(existing, keywords []string) []string {
	have := make(map[string]bool, len(existing)+len(keywords))
	for _, k := range existing {
		have[k] = true
	}
	for _, k := range keywords {
		k = NormalizeKeyword(k)
		if k == "" || have[k] {
			continue
		}
		have[k] = true
		existing = append(existing, k)
	}
	return existing
}
