package rules

import (
	"bufio"
	"strings"

	"fjacquet/expense-tracker/internal/models"
)

// ParseCustomRules reads one rule per line in the form
//
//	category: keyword1, keyword2
//
// Lines without a colon or with an empty category name are ignored. A
// category named on several lines has its keywords merged in order.
func ParseCustomRules(text string) []models.CategoryRule {
	var out []models.CategoryRule
	index := make(map[string]int)

	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := scanner.Text()
		name, list, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		name = NormalizeName(name)
		if name == "" {
			continue
		}

		var keywords []string
		for _, k := range strings.Split(list, ",") {
			if k = NormalizeKeyword(k); k != "" {
				keywords = append(keywords, k)
			}
		}

		if i, ok := index[name]; ok {
			out[i].Keywords = append(out[i].Keywords, keywords...)
			continue
		}
		index[name] = len(out)
		out = append(out, models.CategoryRule{Name: name, Keywords: keywords})
	}
	return out
}

// FormatCustomRules renders rules in the line format ParseCustomRules reads.
func FormatCustomRules(rules []models.CategoryRule) string {
	var b strings.Builder
	for _, r := range rules {
		b.WriteString(r.Name)
		b.WriteString(": ")
		b.WriteString(strings.Join(r.Keywords, ", "))
		b.WriteByte('\n')
	}
	return b.String()
}

// MergeRules combines rule lists by category name. Categories keep the order
// they first appear in; repeated keywords are dropped.
func MergeRules(lists ...[]models.CategoryRule) []models.CategoryRule {
	var out []models.CategoryRule
	index := make(map[string]int)
	seen := make(map[string]map[string]bool)

	for _, list := range lists {
		for _, r := range list {
			name := NormalizeName(r.Name)
			if name == "" {
				continue
			}
			i, ok := index[name]
			if !ok {
				i = len(out)
				index[name] = i
				seen[name] = make(map[string]bool)
				out = append(out, models.CategoryRule{Name: name, Keywords: []string{}})
			}
			for _, k := range r.Keywords {
				if k = NormalizeKeyword(k); k != "" && !seen[name][k] {
					seen[name][k] = true
					out[i].Keywords = append(out[i].Keywords, k)
				}
			}
		}
	}
	return out
}
