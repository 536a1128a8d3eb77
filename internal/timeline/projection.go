package timeline

import "strings"

// Search returns the cues whose text contains the query, case-insensitively,
// sorted by start time. An empty query matches everything. The projection is
// derived on every call; nothing is cached.
func Search(s *Store, query string) []Interval {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return s.All()
	}
	return s.Query(func(iv Interval) bool {
		return strings.Contains(strings.ToLower(iv.Text), query)
	})
}
