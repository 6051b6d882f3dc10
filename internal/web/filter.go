package web

import (
	"strings"

	"school-directory/internal/domains/school/model"
)

// Matches reports whether a school matches the search query.
// The query is matched case-insensitively as a substring of the
// school's name, city or state. An empty query matches everything.
func Matches(s *model.School, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s.Name), q) ||
		strings.Contains(strings.ToLower(s.City), q) ||
		strings.Contains(strings.ToLower(s.State), q)
}

// Filter returns the schools matching the query, preserving order.
func Filter(schools []model.School, query string) []model.School {
	filtered := make([]model.School, 0, len(schools))
	for i := range schools {
		if Matches(&schools[i], query) {
			filtered = append(filtered, schools[i])
		}
	}
	return filtered
}
