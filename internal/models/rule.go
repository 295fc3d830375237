package models

// CategoryRule is one taxonomy entry: a category name and its ordered
// lowercase keywords.
type CategoryRule struct {
	Name     string   `json:"name" yaml:"name"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// Clone returns a copy that shares no slice with r.
func (r CategoryRule) Clone() CategoryRule {
	kw := make([]string, len(r.Keywords))
	copy(kw, r.Keywords)
	return CategoryRule{Name: r.Name, Keywords: kw}
}
