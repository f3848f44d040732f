package entity

import (
	"strings"
	"time"
)

// Symptom catalog entry
type Symptom struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// SymptomCatalog the full catalog plus where it came from
type SymptomCatalog struct {
	Symptoms  []Symptom
	UpdatedAt time.Time
	Source    string // "builtin" or the uploaded file name
}

// SymptomFilter search term and category. The zero value matches every symptom.
type SymptomFilter struct {
	Search   string
	Category string
}

// Matches reports whether s passes both the search term and the category.
func (f SymptomFilter) Matches(s Symptom) bool {
	if f.Category != "" && s.Category != f.Category {
		return false
	}
	if f.Search == "" {
		return true
	}
	term := strings.ToLower(f.Search)
	return strings.Contains(strings.ToLower(s.Name), term) ||
		strings.Contains(strings.ToLower(s.Description), term)
}

// FilterSymptoms returns the symptoms accepted by f, keeping catalog order.
func FilterSymptoms(catalog []Symptom, f SymptomFilter) []Symptom {
	result := make([]Symptom, 0, len(catalog))
	for _, s := range catalog {
		if f.Matches(s) {
			result = append(result, s)
		}
	}
	return result
}

// CategoriesOf distinct categories in order of first appearance
func CategoriesOf(catalog []Symptom) []string {
	seen := make(map[string]bool)
	var categories []string
	for _, s := range catalog {
		if s.Category == "" || seen[s.Category] {
			continue
		}
		seen[s.Category] = true
		categories = append(categories, s.Category)
	}
	return categories
}
